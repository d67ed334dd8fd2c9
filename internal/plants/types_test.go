package plants

import (
	"errors"
	"testing"
	"time"
)

// --- Canonical ---

func TestCanonical(t *testing.T) {
	tests := []struct {
		in     Type
		want   Type
		wantOK bool
	}{
		{"tomato", TypeTomato, true},
		{"tomate", TypeTomato, true},
		{"  Tomate ", TypeTomato, true},
		{"salade", TypeLettuce, true},
		{"BASIL", TypeBasil, true},
		{"épinard", TypeSpinach, true},
		{"thym", TypeThyme, true},
		{"romarin", "romarin", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Canonical(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Canonical(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestKnownTypes_AllHaveProfiles(t *testing.T) {
	for _, k := range KnownTypes {
		p, found := ProfileFor(k)
		if !found {
			t.Errorf("ProfileFor(%s) not found", k)
		}
		if p.Type != k {
			t.Errorf("ProfileFor(%s).Type = %s", k, p.Type)
		}
	}
}

// --- Profiles ---

func TestProfileFor_UnknownFallsBackToDefault(t *testing.T) {
	p, found := ProfileFor("cactus")
	if found {
		t.Error("cactus should not be recognized")
	}
	if p.Type != DefaultType {
		t.Errorf("fallback profile = %s, want %s", p.Type, DefaultType)
	}
	if p != DefaultProfile() {
		t.Error("fallback should equal DefaultProfile()")
	}
}

func TestProfileFor_FrenchAlias(t *testing.T) {
	p, found := ProfileFor("radis")
	if !found || p.Type != TypeRadish {
		t.Fatalf("ProfileFor(radis) = %s, %v", p.Type, found)
	}
	if p.Temperature.Min != 10 || p.Temperature.Max != 18 {
		t.Errorf("radish temperature = %v", p.Temperature)
	}
}

func TestRange_String(t *testing.T) {
	if got := (Range{Min: 2, Max: 3, Unit: "L/week"}).String(); got != "2-3 L/week" {
		t.Errorf("String = %q", got)
	}
	if got := (Range{Min: 1, Max: 1, Unit: "L/week"}).String(); got != "1 L/week" {
		t.Errorf("String = %q", got)
	}
	if got := (Range{Min: 1, Max: 1.5, Unit: "L/week"}).String(); got != "1-1.5 L/week" {
		t.Errorf("String = %q", got)
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{Min: 60, Max: 80}
	for v, want := range map[float64]bool{59.9: false, 60: true, 70: true, 80: true, 80.1: false} {
		if got := r.Contains(v); got != want {
			t.Errorf("Contains(%v) = %v, want %v", v, got, want)
		}
	}
}

// --- Validation ---

func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name      string
		draft     Draft
		wantField string
	}{
		{"valid", Draft{Name: "Tomato 1", AgeDays: 0, WateringFrequencyDays: 1}, ""},
		{"blank name", Draft{Name: "   ", WateringFrequencyDays: 1}, "name"},
		{"negative age", Draft{Name: "x", AgeDays: -1, WateringFrequencyDays: 1}, "ageDays"},
		{"zero frequency", Draft{Name: "x", WateringFrequencyDays: 0}, "wateringFrequencyDays"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.wantField {
				t.Errorf("field = %v, want %s", err, tt.wantField)
			}
		})
	}
}

func TestPatch_ValidateOnlyChangedFields(t *testing.T) {
	if err := (Patch{}).Validate(); err != nil {
		t.Errorf("empty patch should be valid: %v", err)
	}
	zero := 0
	if err := (Patch{WateringFrequencyDays: &zero}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("zero frequency patch err = %v", err)
	}
	blank := ""
	if err := (Patch{Name: &blank}).Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("blank name patch err = %v", err)
	}
}

// --- Watering schedule ---

func TestDaysSince(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		then time.Time
		want int
	}{
		{now, 0},
		{now.Add(-23 * time.Hour), 0},
		{now.Add(-24 * time.Hour), 1},
		{now.Add(-4 * 24 * time.Hour), 4},
		{now.Add(48 * time.Hour), 0},
		{now.Add(5 * 24 * time.Hour), 0},
	}
	for _, tt := range tests {
		if got := DaysSince(tt.then, now); got != tt.want {
			t.Errorf("DaysSince(%v) = %d, want %d", tt.then, got, tt.want)
		}
	}
}

func TestNeedsWater(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	p := Plant{WateringFrequencyDays: 3}

	p.LastWateredAt = now.Add(-4 * 24 * time.Hour)
	if !p.NeedsWater(now) {
		t.Error("watered 4 days ago with frequency 3 should need water")
	}

	p.LastWateredAt = now.Add(-3 * 24 * time.Hour)
	if !p.NeedsWater(now) {
		t.Error("watered exactly 3 days ago should need water")
	}

	p.LastWateredAt = now.Add(-2 * 24 * time.Hour)
	if p.NeedsWater(now) {
		t.Error("watered 2 days ago should not need water")
	}

	p.LastWateredAt = now.Add(5 * 24 * time.Hour)
	if p.NeedsWater(now) {
		t.Error("a watering date in the future should not make watering due")
	}
}

// --- Errors ---

func TestErrorKinds(t *testing.T) {
	nf := &NotFoundError{ID: "42"}
	if !errors.Is(nf, ErrNotFound) || errors.Is(nf, ErrValidation) {
		t.Error("NotFoundError should match only ErrNotFound")
	}

	cause := errors.New("disk full")
	pe := &PersistenceError{Op: "add", Err: cause}
	if !errors.Is(pe, ErrPersistence) {
		t.Error("PersistenceError should match ErrPersistence")
	}
	if !errors.Is(pe, cause) {
		t.Error("PersistenceError should unwrap to its cause")
	}
}
