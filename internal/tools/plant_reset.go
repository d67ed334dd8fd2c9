package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// PlantResetTool handles the plant_reset MCP tool.
type PlantResetTool struct {
	registry PlantRegistry
}

// NewPlantResetTool creates a PlantResetTool.
func NewPlantResetTool(registry PlantRegistry) *PlantResetTool {
	return &PlantResetTool{registry: registry}
}

// Definition returns the MCP tool definition for registration.
func (t *PlantResetTool) Definition() mcp.Tool {
	return mcp.NewTool("plant_reset",
		mcp.WithDescription(
			"Delete ALL plants and clear the stored collection. This cannot be undone. "+
				"Requires confirm=true.",
		),
		mcp.WithBoolean("confirm",
			mcp.Required(),
			mcp.Description("Must be true to proceed"),
		),
	)
}

// Handle processes the plant_reset tool call.
func (t *PlantResetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !boolArg(req, "confirm", false) {
		return mcp.NewToolResultError("refusing to reset without confirm=true"), nil
	}

	count := len(t.registry.List())
	if err := t.registry.Reset(ctx); err != nil {
		return registryError("resetting plants", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# 🧹 Garden Reset\n\nRemoved %d plant(s). Use `plant_add` to start over.", count,
	)), nil
}
