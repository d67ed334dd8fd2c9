package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// PlantListTool handles the plant_list MCP tool.
type PlantListTool struct {
	registry PlantRegistry
	now      func() time.Time
}

// NewPlantListTool creates a PlantListTool.
func NewPlantListTool(registry PlantRegistry) *PlantListTool {
	return &PlantListTool{registry: registry, now: time.Now}
}

// Definition returns the MCP tool definition for registration.
func (t *PlantListTool) Definition() mcp.Tool {
	return mcp.NewTool("plant_list",
		mcp.WithDescription(
			"List every plant in insertion order with its watering schedule. "+
				"The active plant is marked with ⭐. Plants whose schedule says they are due are flagged.",
		),
	)
}

// Handle processes the plant_list tool call.
func (t *PlantListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := t.registry.List()
	if len(list) == 0 {
		return mcp.NewToolResultText(
			"# 🪴 Your Plants\n\nNo plants yet. Use `plant_add` to register your first plant.",
		), nil
	}

	now := t.now()
	due := 0
	var sb strings.Builder
	fmt.Fprintf(&sb, "# 🪴 Your Plants (%d)\n\n", len(list))
	for _, p := range list {
		formatPlant(&sb, p, now)
		sb.WriteString("\n")
		if p.NeedsWater(now) {
			due++
		}
	}
	if due > 0 {
		fmt.Fprintf(&sb, "💧 %d plant(s) due for watering. Use `plant_water` once done.\n", due)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
