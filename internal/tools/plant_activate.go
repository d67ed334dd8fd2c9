package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// PlantActivateTool handles the plant_activate MCP tool.
type PlantActivateTool struct {
	registry PlantRegistry
}

// NewPlantActivateTool creates a PlantActivateTool.
func NewPlantActivateTool(registry PlantRegistry) *PlantActivateTool {
	return &PlantActivateTool{registry: registry}
}

// Definition returns the MCP tool definition for registration.
func (t *PlantActivateTool) Definition() mcp.Tool {
	return mcp.NewTool("plant_activate",
		mcp.WithDescription(
			"Make a plant the active one. Exactly one plant is active at a time; "+
				"chat advice is tailored to the active plant's profile and schedule.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Plant ID (see plant_list)"),
		),
	)
}

// Handle processes the plant_activate tool call.
func (t *PlantActivateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError("'id' is required — use plant_list to find plant IDs"), nil
	}

	if err := t.registry.SetActive(ctx, id); err != nil {
		return registryError("activating plant", err)
	}
	p, err := t.registry.Get(id)
	if err != nil {
		return registryError("activating plant", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"# ⭐ Active Plant\n\n**%s** (`%s`) is now the active plant.", p.Name, p.ID,
	)), nil
}
