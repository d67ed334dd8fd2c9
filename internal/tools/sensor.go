package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/HendryAvila/plantcare/internal/advisor"
	"github.com/HendryAvila/plantcare/internal/telemetry"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- sensor_status ---

// SensorStatusTool handles the sensor_status MCP tool.
type SensorStatusTool struct {
	feed SnapshotFeed
}

// NewSensorStatusTool creates a SensorStatusTool.
func NewSensorStatusTool(feed SnapshotFeed) *SensorStatusTool {
	return &SensorStatusTool{feed: feed}
}

// Definition returns the MCP tool definition for registration.
func (t *SensorStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("sensor_status",
		mcp.WithDescription(
			"Show the latest sensor reading (temperature, air and soil humidity, water need) "+
				"and how each value classifies against the care thresholds.",
		),
	)
}

// Handle processes the sensor_status tool call.
func (t *SensorStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := t.feed.Latest()
	c := advisor.Classify(snap)

	var sb strings.Builder
	sb.WriteString("# 📡 Sensor Status\n\n")
	if !t.feed.Received() {
		sb.WriteString("⚠️ No reading received yet; all values read as 0.\n\n")
	}
	sb.WriteString("| Reading | Value | Status |\n")
	sb.WriteString("|---------|-------|--------|\n")
	fmt.Fprintf(&sb, "| 🌡️ Temperature | %s°C | %s |\n", num(snap.TemperatureC), c.Temperature)
	fmt.Fprintf(&sb, "| 💨 Air humidity | %s%% | %s |\n", num(snap.AirHumidityPct), c.AirHumidity)
	fmt.Fprintf(&sb, "| 🌱 Soil humidity | %s%% | %s |\n", num(snap.SoilHumidityPct), c.SoilHumidity)
	fmt.Fprintf(&sb, "| 💧 Water need | %s L | %s |\n", num(snap.WaterNeedLiters), c.WaterUrgency)
	if !snap.ReceivedAt.IsZero() {
		fmt.Fprintf(&sb, "\n_Received at %s (%d reading(s) since start)_\n",
			snap.ReceivedAt.Format(time.RFC3339), t.feed.Count())
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- sensor_update ---

// sensorArgs maps tool argument names onto the controller's wire fields,
// so manual pushes go through the same normalization as NATS payloads.
var sensorArgs = map[string]string{
	"temperature":   telemetry.FieldTemperature,
	"air_humidity":  telemetry.FieldAirHumidity,
	"soil_humidity": telemetry.FieldSoilHumidity,
	"water_need":    telemetry.FieldWaterNeed,
}

// SensorUpdateTool handles the sensor_update MCP tool, a manual snapshot
// push for setups without a NATS controller.
type SensorUpdateTool struct {
	feed SnapshotFeed
}

// NewSensorUpdateTool creates a SensorUpdateTool.
func NewSensorUpdateTool(feed SnapshotFeed) *SensorUpdateTool {
	return &SensorUpdateTool{feed: feed}
}

// Definition returns the MCP tool definition for registration.
func (t *SensorUpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("sensor_update",
		mcp.WithDescription(
			"Push a sensor reading by hand. The reading fully replaces the previous one: "+
				"omitted values read as 0.",
		),
		mcp.WithNumber("temperature",
			mcp.Description("Air temperature in °C"),
		),
		mcp.WithNumber("air_humidity",
			mcp.Description("Air humidity in %"),
		),
		mcp.WithNumber("soil_humidity",
			mcp.Description("Soil humidity in %"),
		),
		mcp.WithNumber("water_need",
			mcp.Description("Estimated water need in litres"),
		),
	)
}

// Handle processes the sensor_update tool call.
func (t *SensorUpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	raw := make(map[string]any, len(sensorArgs))
	for arg, field := range sensorArgs {
		if v, ok := args[arg]; ok {
			raw[field] = v
		}
	}
	if len(raw) == 0 {
		return mcp.NewToolResultError(
			"provide at least one of: temperature, air_humidity, soil_humidity, water_need",
		), nil
	}

	snap := telemetry.Normalize(raw)
	t.feed.Publish(snap)
	c := advisor.Classify(snap)

	return mcp.NewToolResultText(fmt.Sprintf(
		"# 📡 Reading Recorded\n\n"+
			"- Temperature: %s°C (%s)\n"+
			"- Air humidity: %s%% (%s)\n"+
			"- Soil humidity: %s%% (%s)\n"+
			"- Water need: %s L (%s)\n",
		num(snap.TemperatureC), c.Temperature,
		num(snap.AirHumidityPct), c.AirHumidity,
		num(snap.SoilHumidityPct), c.SoilHumidity,
		num(snap.WaterNeedLiters), c.WaterUrgency,
	)), nil
}

// num prints a reading exactly, so a value never rounds across a threshold.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
