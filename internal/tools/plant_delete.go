package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// PlantDeleteTool handles the plant_delete MCP tool.
type PlantDeleteTool struct {
	registry PlantRegistry
}

// NewPlantDeleteTool creates a PlantDeleteTool.
func NewPlantDeleteTool(registry PlantRegistry) *PlantDeleteTool {
	return &PlantDeleteTool{registry: registry}
}

// Definition returns the MCP tool definition for registration.
func (t *PlantDeleteTool) Definition() mcp.Tool {
	return mcp.NewTool("plant_delete",
		mcp.WithDescription(
			"Remove a plant. If it was the active plant, the first remaining plant becomes active.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Plant ID (see plant_list)"),
		),
	)
}

// Handle processes the plant_delete tool call.
func (t *PlantDeleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError("'id' is required — use plant_list to find plant IDs"), nil
	}

	removed, err := t.registry.Get(id)
	if err != nil {
		return registryError("deleting plant", err)
	}
	if err := t.registry.Delete(ctx, id); err != nil {
		return registryError("deleting plant", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# 🗑️ Plant Removed\n\n**%s** (`%s`) was removed.\n", removed.Name, removed.ID)
	if active, ok := t.registry.GetActive(); ok {
		if removed.IsActive {
			fmt.Fprintf(&sb, "\n⭐ **%s** is now the active plant.\n", active.Name)
		}
	} else {
		sb.WriteString("\nNo plants left. Use `plant_add` to register one.\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}
