package tools

import (
	"context"
	"strings"
	"time"

	"github.com/HendryAvila/plantcare/internal/plants"
	"github.com/mark3labs/mcp-go/mcp"
)

// PlantUpdateTool handles the plant_update MCP tool.
// Only the fields present in the call are changed.
type PlantUpdateTool struct {
	registry PlantRegistry
	now      func() time.Time
}

// NewPlantUpdateTool creates a PlantUpdateTool.
func NewPlantUpdateTool(registry PlantRegistry) *PlantUpdateTool {
	return &PlantUpdateTool{registry: registry, now: time.Now}
}

// Definition returns the MCP tool definition for registration.
func (t *PlantUpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("plant_update",
		mcp.WithDescription(
			"Update fields of an existing plant. Omitted fields are left unchanged. "+
				"Setting is_active=true makes the plant the active one; "+
				"the active plant cannot be deactivated directly (activate another plant instead).",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Plant ID (see plant_list)"),
		),
		mcp.WithString("name",
			mcp.Description("New display name"),
		),
		mcp.WithString("type",
			mcp.Description("New plant kind"),
		),
		mcp.WithNumber("age_days",
			mcp.Description("New age in days"),
		),
		mcp.WithNumber("watering_frequency_days",
			mcp.Description("New days between waterings (at least 1)"),
		),
		mcp.WithString("last_watered",
			mcp.Description("Corrected last watering time, RFC3339 or YYYY-MM-DD"),
		),
		mcp.WithString("notes",
			mcp.Description("Replacement notes"),
		),
		mcp.WithBoolean("is_active",
			mcp.Description("true to make this the active plant"),
		),
	)
}

// Handle processes the plant_update tool call.
func (t *PlantUpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return mcp.NewToolResultError("'id' is required — use plant_list to find plant IDs"), nil
	}

	patch, errMsg := t.buildPatch(req)
	if errMsg != "" {
		return mcp.NewToolResultError(errMsg), nil
	}

	p, err := t.registry.Update(ctx, id, patch)
	if err != nil {
		return registryError("updating plant", err)
	}

	var sb strings.Builder
	sb.WriteString("# ✏️ Plant Updated\n\n")
	formatPlant(&sb, p, t.now())
	return mcp.NewToolResultText(sb.String()), nil
}

// buildPatch collects the supplied fields. A non-empty message means the
// arguments were malformed.
func (t *PlantUpdateTool) buildPatch(req mcp.CallToolRequest) (plants.Patch, string) {
	var patch plants.Patch

	if hasArg(req, "name") {
		name := req.GetString("name", "")
		patch.Name = &name
	}
	if hasArg(req, "type") {
		kind := plants.Type(strings.TrimSpace(req.GetString("type", "")))
		patch.Type = &kind
	}
	if hasArg(req, "age_days") {
		age, ok := intArg(req, "age_days", 0)
		if !ok {
			return patch, "'age_days' must be a whole number"
		}
		patch.AgeDays = &age
	}
	if hasArg(req, "watering_frequency_days") {
		freq, ok := intArg(req, "watering_frequency_days", 0)
		if !ok {
			return patch, "'watering_frequency_days' must be a whole number"
		}
		patch.WateringFrequencyDays = &freq
	}
	if hasArg(req, "last_watered") {
		at, err := timeArg(req, "last_watered")
		if err != nil {
			return patch, err.Error()
		}
		patch.LastWateredAt = &at
	}
	if hasArg(req, "notes") {
		notes := req.GetString("notes", "")
		patch.Notes = &notes
	}
	if hasArg(req, "is_active") {
		active := boolArg(req, "is_active", false)
		patch.IsActive = &active
	}
	return patch, ""
}
