package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// PlantWaterTool handles the plant_water MCP tool. It only records the
// event; no irrigation hardware is driven.
type PlantWaterTool struct {
	registry PlantRegistry
}

// NewPlantWaterTool creates a PlantWaterTool.
func NewPlantWaterTool(registry PlantRegistry) *PlantWaterTool {
	return &PlantWaterTool{registry: registry}
}

// Definition returns the MCP tool definition for registration.
func (t *PlantWaterTool) Definition() mcp.Tool {
	return mcp.NewTool("plant_water",
		mcp.WithDescription(
			"Record that a plant was watered just now. Defaults to the active plant when no id is given.",
		),
		mcp.WithString("id",
			mcp.Description("Plant ID (default: the active plant)"),
		),
	)
}

// Handle processes the plant_water tool call.
func (t *PlantWaterTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		active, ok := t.registry.GetActive()
		if !ok {
			return mcp.NewToolResultError("no plants registered — use plant_add first"), nil
		}
		id = active.ID
	}

	p, err := t.registry.Water(ctx, id)
	if err != nil {
		return registryError("watering plant", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# 💧 Watered\n\n**%s** watered at %s. Next watering in %d days.",
		p.Name, p.LastWateredAt.Format(time.RFC3339), p.WateringFrequencyDays,
	)), nil
}
