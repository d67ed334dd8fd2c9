// Package telemetry holds the latest sensor reading.
//
// Readings arrive as JSON objects pushed over a NATS subject by the
// irrigation controller. Every push replaces the previous snapshot; there
// is no history. Field normalization lives here and nowhere else: absent,
// null or garbage values become 0 so the advisory rules never see them.
package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Wire field names used by the sensor controller.
const (
	FieldTemperature  = "temperature"
	FieldAirHumidity  = "humidite_air"
	FieldSoilHumidity = "humidite_sol"
	FieldWaterNeed    = "besoin_eau"
)

// Snapshot is one full set of sensor readings.
type Snapshot struct {
	TemperatureC    float64   `json:"temperature_c"`
	AirHumidityPct  float64   `json:"air_humidity_pct"`
	SoilHumidityPct float64   `json:"soil_humidity_pct"`
	WaterNeedLiters float64   `json:"water_need_liters"`
	ReceivedAt      time.Time `json:"received_at,omitzero"`
}

// ErrNotObject is returned by Decode for payloads that are not a JSON object.
var ErrNotObject = errors.New("telemetry payload is not a JSON object")

// Decode parses a pushed payload into a Snapshot. Individual fields are
// coerced; only a payload that is not a JSON object at all is rejected.
func Decode(data []byte) (Snapshot, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	if raw == nil {
		return Snapshot{}, ErrNotObject
	}
	return Normalize(raw), nil
}

// Normalize builds a Snapshot from loosely typed fields.
func Normalize(raw map[string]any) Snapshot {
	return Snapshot{
		TemperatureC:    number(raw[FieldTemperature]),
		AirHumidityPct:  number(raw[FieldAirHumidity]),
		SoilHumidityPct: number(raw[FieldSoilHumidity]),
		WaterNeedLiters: number(raw[FieldWaterNeed]),
	}
}

// number coerces a decoded JSON value to a finite float, or 0.
func number(v any) float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
