// Package plants owns the user's plant collection.
//
// The Registry is the only writer of the collection. It keeps exactly one
// plant active whenever the collection is non-empty, persists the whole
// collection on every mutation and pushes the result to subscribers.
//
// Layout:
//   - types.go: Plant, Draft, Patch and field validation
//   - profiles.go: static reference ranges per plant type
//   - registry.go: the serialized, persisted collection
//   - errors.go: error kinds surfaced to callers
package plants

import (
	"strings"
	"time"
)

// --- Plant type enum ---

// Type is a plant kind. Unknown values are kept verbatim and resolve
// to the default profile.
type Type string

const (
	TypeTomato   Type = "tomato"
	TypeLettuce  Type = "lettuce"
	TypeBasil    Type = "basil"
	TypePepper   Type = "pepper"
	TypeZucchini Type = "zucchini"
	TypeRadish   Type = "radish"
	TypeCarrot   Type = "carrot"
	TypeSpinach  Type = "spinach"
	TypeParsley  Type = "parsley"
	TypeMint     Type = "mint"
	TypeThyme    Type = "thyme"
)

// KnownTypes lists the canonical kinds in display order.
var KnownTypes = []Type{
	TypeTomato, TypeLettuce, TypeBasil, TypePepper, TypeZucchini, TypeRadish,
	TypeCarrot, TypeSpinach, TypeParsley, TypeMint, TypeThyme,
}

// typeAliases maps the French names written by the mobile app to the
// canonical kinds, so records persisted by it keep their profiles.
var typeAliases = map[string]Type{
	"tomate":    TypeTomato,
	"salade":    TypeLettuce,
	"laitue":    TypeLettuce,
	"basilic":   TypeBasil,
	"poivron":   TypePepper,
	"courgette": TypeZucchini,
	"radis":     TypeRadish,
	"carotte":   TypeCarrot,
	"epinard":   TypeSpinach,
	"épinard":   TypeSpinach,
	"persil":    TypeParsley,
	"menthe":    TypeMint,
	"thym":      TypeThyme,
}

// Canonical resolves t to a known kind. ok is false for unknown types.
func Canonical(t Type) (Type, bool) {
	key := strings.ToLower(strings.TrimSpace(string(t)))
	if alias, found := typeAliases[key]; found {
		return alias, true
	}
	for _, k := range KnownTypes {
		if string(k) == key {
			return k, true
		}
	}
	return t, false
}

// --- Core data structures ---

// Plant is a user-owned record. JSON names match the layout the mobile
// app persisted, so existing stores load unchanged.
type Plant struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Type                  Type      `json:"type"`
	AgeDays               int       `json:"age"`
	WateringFrequencyDays int       `json:"wateringFrequency"`
	LastWateredAt         time.Time `json:"lastWatered"`
	Notes                 string    `json:"notes"`
	IsActive              bool      `json:"isActive"`
}

// Draft is a plant before the registry assigns its ID and active flag.
type Draft struct {
	Name                  string
	Type                  Type
	AgeDays               int
	WateringFrequencyDays int
	// LastWateredAt defaults to the registry clock when zero.
	LastWateredAt time.Time
	Notes         string
}

// Patch holds partial update fields. Nil fields are left untouched.
type Patch struct {
	Name                  *string
	Type                  *Type
	AgeDays               *int
	WateringFrequencyDays *int
	LastWateredAt         *time.Time
	Notes                 *string
	IsActive              *bool
}

// --- Validation ---

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}

func validateAge(age int) error {
	if age < 0 {
		return &ValidationError{Field: "ageDays", Reason: "must be zero or positive"}
	}
	return nil
}

func validateFrequency(days int) error {
	if days < 1 {
		return &ValidationError{Field: "wateringFrequencyDays", Reason: "must be at least 1 day"}
	}
	return nil
}

// Validate checks the draft fields.
func (d Draft) Validate() error {
	if err := validateName(d.Name); err != nil {
		return err
	}
	if err := validateAge(d.AgeDays); err != nil {
		return err
	}
	return validateFrequency(d.WateringFrequencyDays)
}

// Validate checks only the fields being changed.
func (p Patch) Validate() error {
	if p.Name != nil {
		if err := validateName(*p.Name); err != nil {
			return err
		}
	}
	if p.AgeDays != nil {
		if err := validateAge(*p.AgeDays); err != nil {
			return err
		}
	}
	if p.WateringFrequencyDays != nil {
		if err := validateFrequency(*p.WateringFrequencyDays); err != nil {
			return err
		}
	}
	return nil
}

// apply merges the patch into p. IsActive is handled by the registry.
func (p Patch) apply(plant *Plant) {
	if p.Name != nil {
		plant.Name = strings.TrimSpace(*p.Name)
	}
	if p.Type != nil {
		plant.Type = *p.Type
	}
	if p.AgeDays != nil {
		plant.AgeDays = *p.AgeDays
	}
	if p.WateringFrequencyDays != nil {
		plant.WateringFrequencyDays = *p.WateringFrequencyDays
	}
	if p.LastWateredAt != nil {
		plant.LastWateredAt = p.LastWateredAt.UTC()
	}
	if p.Notes != nil {
		plant.Notes = *p.Notes
	}
}

// --- Watering schedule ---

// DaysSince returns the whole days elapsed from t to now. A t in the
// future counts as 0.
func DaysSince(t, now time.Time) int {
	d := now.Sub(t)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// NeedsWater reports whether the schedule says the plant is due.
// This is independent of the sensor-derived water need.
func (p Plant) NeedsWater(now time.Time) bool {
	return DaysSince(p.LastWateredAt, now) >= p.WateringFrequencyDays
}
