// Package advisor turns a sensor snapshot into care guidance.
//
// Everything here is a pure function of its inputs: Classify maps raw
// readings to per-axis statuses using fixed thresholds, and Render composes
// the guidance text for one conversational intent. Nothing is stored and
// nothing fails; any float input yields a classification.
package advisor

import "github.com/HendryAvila/plantcare/internal/telemetry"

// Classification thresholds. Boundaries are exclusive: exactly 30 °C is
// normal, exactly 40 % soil humidity is normal, exactly 1.5 L is "soon".
const (
	TempHighAbove    = 30.0
	TempLowBelow     = 15.0
	MoistureDryBelow = 40.0
	MoistureWetAbove = 80.0
	WaterUrgentAbove = 1.5
	WaterSoonAbove   = 0.5
)

// Render-only thresholds. These never change a classification; they only
// decide whether a tip line appears.
const (
	// WarmTipAbove triggers "it's warm, water early" tips.
	WarmTipAbove = 25.0
	// SoilSoonBelow is the upper edge of the "water soon" band in the
	// watering answer.
	SoilSoonBelow = 60.0
	// WaterNowAbove is the diagnostic's own "water now" cutoff, separate
	// from the urgency classification.
	WaterNowAbove = 1.0
)

// TemperatureStatus classifies the air temperature.
type TemperatureStatus string

const (
	TempLow    TemperatureStatus = "low"
	TempNormal TemperatureStatus = "normal"
	TempHigh   TemperatureStatus = "high"
)

// MoistureStatus classifies a humidity reading (soil or air).
type MoistureStatus string

const (
	MoistureDry       MoistureStatus = "dry"
	MoistureNormal    MoistureStatus = "normal"
	MoistureSaturated MoistureStatus = "saturated"
)

// WaterUrgency classifies the sensor-derived water need.
type WaterUrgency string

const (
	UrgencyNone   WaterUrgency = "none"
	UrgencySoon   WaterUrgency = "soon"
	UrgencyUrgent WaterUrgency = "urgent"
)

// Classification holds the four independent axis statuses.
type Classification struct {
	Temperature  TemperatureStatus `json:"temperature"`
	SoilHumidity MoistureStatus    `json:"soil_humidity"`
	AirHumidity  MoistureStatus    `json:"air_humidity"`
	WaterUrgency WaterUrgency      `json:"water_urgency"`
}

// Classify applies the fixed thresholds to a snapshot. NaN compares false
// against every threshold and so lands on normal/none.
func Classify(s telemetry.Snapshot) Classification {
	return Classification{
		Temperature:  ClassifyTemperature(s.TemperatureC),
		SoilHumidity: ClassifyMoisture(s.SoilHumidityPct),
		AirHumidity:  ClassifyMoisture(s.AirHumidityPct),
		WaterUrgency: ClassifyWaterNeed(s.WaterNeedLiters),
	}
}

// ClassifyTemperature: > 30 high, < 15 low, otherwise normal.
func ClassifyTemperature(c float64) TemperatureStatus {
	switch {
	case c > TempHighAbove:
		return TempHigh
	case c < TempLowBelow:
		return TempLow
	default:
		return TempNormal
	}
}

// ClassifyMoisture: < 40 dry, > 80 saturated, otherwise normal.
func ClassifyMoisture(pct float64) MoistureStatus {
	switch {
	case pct < MoistureDryBelow:
		return MoistureDry
	case pct > MoistureWetAbove:
		return MoistureSaturated
	default:
		return MoistureNormal
	}
}

// ClassifyWaterNeed: > 1.5 urgent, > 0.5 soon, otherwise none.
func ClassifyWaterNeed(liters float64) WaterUrgency {
	switch {
	case liters > WaterUrgentAbove:
		return UrgencyUrgent
	case liters > WaterSoonAbove:
		return UrgencySoon
	default:
		return UrgencyNone
	}
}
