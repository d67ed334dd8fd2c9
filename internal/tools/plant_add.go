package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/plantcare/internal/plants"
	"github.com/mark3labs/mcp-go/mcp"
)

// PlantAddTool handles the plant_add MCP tool.
type PlantAddTool struct {
	registry PlantRegistry
	now      func() time.Time
}

// NewPlantAddTool creates a PlantAddTool.
func NewPlantAddTool(registry PlantRegistry) *PlantAddTool {
	return &PlantAddTool{registry: registry, now: time.Now}
}

// Definition returns the MCP tool definition for registration.
func (t *PlantAddTool) Definition() mcp.Tool {
	return mcp.NewTool("plant_add",
		mcp.WithDescription(
			"Add a plant to the garden. The first plant added becomes the active plant; "+
				"later plants are added inactive (use plant_activate to switch). "+
				"Known types get tailored reference ranges; any other type uses the tomato profile.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Display name, e.g. 'Balcony tomato'"),
		),
		mcp.WithString("type",
			mcp.Description("Plant kind: "+knownTypeList()+". Default: tomato"),
		),
		mcp.WithNumber("age_days",
			mcp.Description("Age in days (default: 0)"),
		),
		mcp.WithNumber("watering_frequency_days",
			mcp.Required(),
			mcp.Description("Days between waterings (at least 1)"),
		),
		mcp.WithString("last_watered",
			mcp.Description("When the plant was last watered, RFC3339 or YYYY-MM-DD (default: now)"),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes"),
		),
	)
}

// Handle processes the plant_add tool call.
func (t *PlantAddTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !hasArg(req, "watering_frequency_days") {
		return mcp.NewToolResultError("'watering_frequency_days' is required"), nil
	}
	age, ok := intArg(req, "age_days", 0)
	if !ok {
		return mcp.NewToolResultError("'age_days' must be a whole number"), nil
	}
	freq, ok := intArg(req, "watering_frequency_days", 0)
	if !ok {
		return mcp.NewToolResultError("'watering_frequency_days' must be a whole number"), nil
	}

	kind := strings.TrimSpace(req.GetString("type", ""))
	if kind == "" {
		kind = string(plants.DefaultType)
	}

	draft := plants.Draft{
		Name:                  req.GetString("name", ""),
		Type:                  plants.Type(kind),
		AgeDays:               age,
		WateringFrequencyDays: freq,
		Notes:                 req.GetString("notes", ""),
	}
	if hasArg(req, "last_watered") {
		at, err := timeArg(req, "last_watered")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		draft.LastWateredAt = at
	}

	p, err := t.registry.Add(ctx, draft)
	if err != nil {
		return registryError("adding plant", err)
	}

	var sb strings.Builder
	sb.WriteString("# 🌱 Plant Added\n\n")
	formatPlant(&sb, p, t.now())
	if _, known := plants.Canonical(p.Type); !known {
		fmt.Fprintf(&sb, "\nℹ️ Type %q is not in the reference table; advice uses the %s profile.\n",
			p.Type, plants.DefaultProfile().Name)
	}
	if p.IsActive {
		sb.WriteString("\nThis is now your active plant. Advice from `chat_ask` is tailored to it.\n")
	} else {
		fmt.Fprintf(&sb, "\nUse `plant_activate` with id `%s` to get advice for this plant.\n", p.ID)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func knownTypeList() string {
	names := make([]string, len(plants.KnownTypes))
	for i, kt := range plants.KnownTypes {
		names[i] = string(kt)
	}
	return strings.Join(names, ", ")
}
