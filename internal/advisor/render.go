package advisor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/HendryAvila/plantcare/internal/plants"
	"github.com/HendryAvila/plantcare/internal/telemetry"
)

// Intent is the purpose of a user query.
type Intent string

const (
	IntentStatus      Intent = "status"
	IntentWatering    Intent = "watering"
	IntentTemperature Intent = "temperature"
	IntentHumidity    Intent = "humidity"
	IntentDiagnostic  Intent = "diagnostic"
	IntentFallback    Intent = "fallback"
)

// Input is everything Render needs for one answer.
type Input struct {
	Intent         Intent
	Snapshot       telemetry.Snapshot
	Classification Classification
	// Plant is the active plant, nil when none is active.
	Plant   *plants.Plant
	Profile plants.Profile
	// Now drives the watering schedule lines; zero omits them.
	Now time.Time
}

// NewInput classifies snap and resolves the profile for plant.
func NewInput(intent Intent, snap telemetry.Snapshot, plant *plants.Plant, now time.Time) Input {
	profile := plants.DefaultProfile()
	if plant != nil {
		profile, _ = plants.ProfileFor(plant.Type)
	}
	return Input{
		Intent:         intent,
		Snapshot:       snap,
		Classification: Classify(snap),
		Plant:          plant,
		Profile:        profile,
		Now:            now,
	}
}

// Render composes the guidance text for in.Intent. Advisory lines appear
// only when their condition holds.
func Render(in Input) string {
	switch in.Intent {
	case IntentStatus:
		return renderStatus(in)
	case IntentWatering:
		return renderWatering(in)
	case IntentTemperature:
		return renderTemperature(in)
	case IntentHumidity:
		return renderHumidity(in)
	case IntentDiagnostic:
		return renderDiagnostic(in)
	default:
		return renderFallback(in)
	}
}

// --- Intent renderers ---

func renderStatus(in Input) string {
	s, c := in.Snapshot, in.Classification
	var d doc

	d.line(fmt.Sprintf("📊 **Current state of %s:**", in.subject()))
	d.gap()
	d.line(fmt.Sprintf("🌡️ Temperature: %s°C (%s)", num(s.TemperatureC), c.Temperature))
	d.line(fmt.Sprintf("💧 Soil humidity: %s%% (%s)", num(s.SoilHumidityPct), c.SoilHumidity))
	d.line(fmt.Sprintf("🌬️ Air humidity: %s%% (%s)", num(s.AirHumidityPct), c.AirHumidity))
	d.line(fmt.Sprintf("💦 Water need: %s L (%s)", num(s.WaterNeedLiters), c.WaterUrgency))
	d.gap()

	d.lineIf(c.Temperature == TempHigh, "🔥 Too hot! Provide shade and keep a close eye on watering.")
	d.lineIf(c.Temperature == TempLow, "🥶 Too cold! Protect the plant and cut back on watering.")
	d.lineIf(c.Temperature == TempNormal && s.TemperatureC > WarmTipAbove, "⚠️ It's warm, keep an eye on watering.")
	d.lineIf(c.SoilHumidity == MoistureDry, "🚨 Soil is dry, water urgently!")
	d.lineIf(c.SoilHumidity == MoistureSaturated, "⚠️ Soil is saturated, watch out for over-watering!")
	d.lineIf(c.AirHumidity == MoistureDry, "🌵 Air is dry, consider misting or mulching.")
	d.lineIf(c.AirHumidity == MoistureSaturated, "🌫️ Air is very humid, watch for mildew.")
	d.lineIf(c.WaterUrgency == UrgencyUrgent, fmt.Sprintf("💦 Water need is urgent: %s L.", num(s.WaterNeedLiters)))
	d.lineIf(c.WaterUrgency == UrgencySoon, fmt.Sprintf("💦 Watering needed soon: %s L.", num(s.WaterNeedLiters)))
	if days, due, ok := in.schedule(); ok && due {
		d.line(fmt.Sprintf("📅 Watering is due: last watered %s ago (every %s).",
			pluralDays(days), pluralDays(in.Plant.WateringFrequencyDays)))
	}
	return d.String()
}

func renderWatering(in Input) string {
	s := in.Snapshot
	var d doc

	d.line(fmt.Sprintf("💧 **Watering advice for %s:**", in.subject()))
	d.gap()
	d.line(fmt.Sprintf("Normal needs: %s", in.Profile.WaterNeeds))
	d.line(fmt.Sprintf("Right now: %s L recommended", num(s.WaterNeedLiters)))
	d.gap()
	d.line(fmt.Sprintf("With soil humidity at %s%%:", num(s.SoilHumidityPct)))
	switch {
	case in.Classification.SoilHumidity == MoistureDry:
		d.line("🔴 Urgent watering needed!")
	case s.SoilHumidityPct < SoilSoonBelow:
		d.line("🟡 Watering needed soon")
	default:
		d.line("🟢 Humidity level is fine")
	}
	if days, due, ok := in.schedule(); ok {
		d.gap()
		d.line(fmt.Sprintf("📅 Last watered %s ago, scheduled every %s.",
			pluralDays(days), pluralDays(in.Plant.WateringFrequencyDays)))
		d.lineIf(due, "⏰ Watering is due by schedule.")
	}
	d.gap()
	if s.TemperatureC > WarmTipAbove {
		d.line("💡 Tip: In this heat, water early in the morning or in the evening.")
	} else {
		d.line("💡 Tip: Water preferably in the morning.")
	}
	return d.String()
}

func renderTemperature(in Input) string {
	s := in.Snapshot
	var d doc

	d.line(fmt.Sprintf("🌡️ **Temperature analysis for %s:**", in.subject()))
	d.gap()
	d.line(fmt.Sprintf("Current temperature: %s°C", num(s.TemperatureC)))
	d.line(fmt.Sprintf("Optimal range: %s", in.Profile.Temperature))
	d.gap()
	switch in.Classification.Temperature {
	case TempHigh:
		d.line("🔥 Too hot! Increase watering and provide shade if possible.")
	case TempLow:
		d.line("🥶 Too cold! Protect your plants and reduce watering.")
	default:
		if in.Profile.Temperature.Contains(s.TemperatureC) {
			d.line("✅ Temperature is in the optimal range!")
		} else {
			d.line(fmt.Sprintf("🙂 Temperature is acceptable but outside the ideal %s band for %s.",
				in.Profile.Temperature, in.Profile.Name))
		}
	}
	d.gap()
	d.lineIf(s.TemperatureC > WarmTipAbove, "💡 Tip: Water more often and check soil humidity.")
	return d.String()
}

func renderHumidity(in Input) string {
	s, c := in.Snapshot, in.Classification
	var d doc

	d.line(fmt.Sprintf("💨 **Humidity analysis for %s:**", in.subject()))
	d.gap()
	d.line(fmt.Sprintf("Soil humidity: %s%% (ideal: %s)", num(s.SoilHumidityPct), in.Profile.Humidity))
	d.line(fmt.Sprintf("Air humidity: %s%%", num(s.AirHumidityPct)))
	d.gap()
	switch c.SoilHumidity {
	case MoistureDry:
		d.line("🚨 Soil too dry - watering needed!")
	case MoistureSaturated:
		d.line("⚠️ Soil too wet - risk of root rot!")
	default:
		d.line("✅ Soil humidity is fine")
	}
	d.lineIf(c.AirHumidity == MoistureDry, "🌵 Air is dry, plants will lose water faster.")
	d.lineIf(c.AirHumidity == MoistureSaturated, "🌫️ Air is very humid, improve ventilation to avoid mildew.")
	d.gap()
	d.line(fmt.Sprintf("💡 %s prefers soil humidity between %s.", in.Profile.Name, in.Profile.Humidity))
	return d.String()
}

func renderDiagnostic(in Input) string {
	s, c := in.Snapshot, in.Classification
	var d doc

	d.line(fmt.Sprintf("🌱 **Full diagnostic for %s:**", in.subject()))
	d.gap()
	d.line("📊 Current conditions:")
	d.line(fmt.Sprintf("- Temperature: %s°C %s", num(s.TemperatureC), tempVerdict(c.Temperature)))
	d.line(fmt.Sprintf("- Soil humidity: %s%% %s", num(s.SoilHumidityPct), soilVerdict(c.SoilHumidity)))
	d.line(fmt.Sprintf("- Water need: %s L", num(s.WaterNeedLiters)))
	d.gap()
	d.line("🎯 Recommended actions:")
	if s.WaterNeedLiters > WaterNowAbove {
		d.line(fmt.Sprintf("• Water now (%s L)", num(s.WaterNeedLiters)))
	} else {
		d.line("• No watering needed")
	}
	d.lineIf(s.TemperatureC > WarmTipAbove, "• Provide shade during the hottest hours")
	d.lineIf(c.SoilHumidity == MoistureDry, "• Monitor soil humidity closely")
	if days, due, ok := in.schedule(); ok && due {
		d.line(fmt.Sprintf("• Watering is overdue by schedule (%s since the last one)", pluralDays(days)))
	}
	d.gap()
	d.line("❓ Ask me specific questions about watering, temperature or care!")
	return d.String()
}

func renderFallback(in Input) string {
	s := in.Snapshot
	var d doc

	d.line(fmt.Sprintf("🤖 I can help you with %s!", in.subject()))
	d.gap()
	d.line("Type:")
	d.line(`- "state" to see the current conditions`)
	d.line(`- "watering" for irrigation advice`)
	d.line(`- "temperature" for the thermal analysis`)
	d.line(`- "humidity" for soil and air humidity`)
	d.line(`- "problem" for a full diagnostic`)
	d.gap()
	d.line(fmt.Sprintf("Your sensors show: %s°C, %s%% soil humidity, %s L of water recommended.",
		num(s.TemperatureC), num(s.SoilHumidityPct), num(s.WaterNeedLiters)))
	return d.String()
}

// --- Helpers ---

// subject names the plant in headings.
func (in Input) subject() string {
	if in.Plant == nil {
		return "your plants"
	}
	return strconv.Quote(in.Plant.Name)
}

// schedule reports days since the last watering and whether it is due.
// ok is false without a plant or a clock.
func (in Input) schedule() (days int, due bool, ok bool) {
	if in.Plant == nil || in.Now.IsZero() {
		return 0, false, false
	}
	return plants.DaysSince(in.Plant.LastWateredAt, in.Now), in.Plant.NeedsWater(in.Now), true
}

func tempVerdict(t TemperatureStatus) string {
	switch t {
	case TempHigh:
		return "(too hot)"
	case TempLow:
		return "(too cold)"
	default:
		return "(OK)"
	}
}

func soilVerdict(m MoistureStatus) string {
	switch m {
	case MoistureDry:
		return "(too dry)"
	case MoistureSaturated:
		return "(too wet)"
	default:
		return "(OK)"
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// doc accumulates lines. gap inserts at most one blank line between
// blocks, so omitted advisory lines never leave empty placeholders.
type doc struct {
	lines []string
}

func (d *doc) line(s string) {
	d.lines = append(d.lines, s)
}

func (d *doc) lineIf(cond bool, s string) {
	if cond {
		d.line(s)
	}
}

func (d *doc) gap() {
	if n := len(d.lines); n > 0 && d.lines[n-1] != "" {
		d.lines = append(d.lines, "")
	}
}

func (d *doc) String() string {
	lines := d.lines
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
