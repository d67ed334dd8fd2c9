package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// PlantReloadTool handles the plant_reload MCP tool. It picks up changes
// written to a shared store by another PlantCare process.
type PlantReloadTool struct {
	registry PlantRegistry
	now      func() time.Time
}

// NewPlantReloadTool creates a PlantReloadTool.
func NewPlantReloadTool(registry PlantRegistry) *PlantReloadTool {
	return &PlantReloadTool{registry: registry, now: time.Now}
}

// Definition returns the MCP tool definition for registration.
func (t *PlantReloadTool) Definition() mcp.Tool {
	return mcp.NewTool("plant_reload",
		mcp.WithDescription(
			"Re-read the plant collection from storage. Use when plants were changed "+
				"from another device or process sharing the same store.",
		),
	)
}

// Handle processes the plant_reload tool call.
func (t *PlantReloadTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := t.registry.Reload(ctx); err != nil {
		return registryError("reloading plants", err)
	}

	list := t.registry.List()
	var sb strings.Builder
	fmt.Fprintf(&sb, "# 🔄 Plants Reloaded\n\nReloaded %d plant(s) from storage.\n", len(list))
	if active, ok := t.registry.GetActive(); ok {
		fmt.Fprintf(&sb, "\n⭐ Active plant: **%s**\n", active.Name)
	}
	now := t.now()
	due := 0
	for _, p := range list {
		if p.NeedsWater(now) {
			due++
		}
	}
	if due > 0 {
		fmt.Fprintf(&sb, "\n💧 %d plant(s) due for watering.\n", due)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
