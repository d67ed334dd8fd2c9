// Package tools implements the PlantCare MCP tool handlers.
//
// Each tool is a struct that receives its dependencies through the
// constructor and exposes Definition() for registration and Handle() for
// calls:
// - one file per tool family (plants, sensors, chat)
// - tools depend on the small interfaces below, not on concrete types
// - validation and not-found errors become tool-level error results;
// storage failures are returned as Go errors
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/plantcare/internal/chat"
	"github.com/HendryAvila/plantcare/internal/plants"
	"github.com/HendryAvila/plantcare/internal/telemetry"
	"github.com/mark3labs/mcp-go/mcp"
)

// PlantRegistry is the subset of *plants.Registry the plant tools use.
type PlantRegistry interface {
	List() []plants.Plant
	GetActive() (plants.Plant, bool)
	Get(id string) (plants.Plant, error)
	Add(ctx context.Context, d plants.Draft) (plants.Plant, error)
	Update(ctx context.Context, id string, patch plants.Patch) (plants.Plant, error)
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string) error
	Water(ctx context.Context, id string) (plants.Plant, error)
	Reload(ctx context.Context) error
	Reset(ctx context.Context) error
}

// SnapshotFeed is the subset of *telemetry.Feed the sensor tools use.
type SnapshotFeed interface {
	Latest() telemetry.Snapshot
	Publish(s telemetry.Snapshot)
	Received() bool
	Count() uint64
}

// Conversation is the subset of *chat.Session the chat tools use.
type Conversation interface {
	Start(plant *plants.Plant) chat.Message
	Ask(text string) chat.Message
	Messages() []chat.Message
}

// registryError maps a registry error onto the MCP result convention.
func registryError(op string, err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, plants.ErrValidation) || errors.Is(err, plants.ErrNotFound) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, fmt.Errorf("%s: %w", op, err)
}

// hasArg reports whether the caller supplied key at all.
func hasArg(req mcp.CallToolRequest, key string) bool {
	_, ok := req.GetArguments()[key]
	return ok
}

// intArg extracts an integer argument (JSON numbers are float64).
// A missing key yields defaultVal; ok is false only for non-integral values.
func intArg(req mcp.CallToolRequest, key string, defaultVal int) (int, bool) {
	v, present := req.GetArguments()[key]
	if !present {
		return defaultVal, true
	}
	f, isNum := v.(float64)
	if !isNum || f != float64(int(f)) {
		return defaultVal, false
	}
	return int(f), true
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// timeArg parses an RFC3339 or YYYY-MM-DD argument.
func timeArg(req mcp.CallToolRequest, key string) (time.Time, error) {
	raw := strings.TrimSpace(req.GetString(key, ""))
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("'%s' must be an RFC3339 timestamp or a YYYY-MM-DD date, got %q", key, raw)
}

// formatPlant renders one plant as a Markdown block.
func formatPlant(sb *strings.Builder, p plants.Plant, now time.Time) {
	marker := ""
	if p.IsActive {
		marker = " ⭐ (active)"
	}
	profile, found := plants.ProfileFor(p.Type)
	kind := string(p.Type)
	if found {
		kind = profile.Name
	}

	fmt.Fprintf(sb, "### %s%s\n", p.Name, marker)
	fmt.Fprintf(sb, "- **ID:** `%s`\n", p.ID)
	fmt.Fprintf(sb, "- **Type:** %s\n", kind)
	fmt.Fprintf(sb, "- **Age:** %d days\n", p.AgeDays)

	days := plants.DaysSince(p.LastWateredAt, now)
	fmt.Fprintf(sb, "- **Watering:** every %d days, last watered %d days ago (%s)\n",
		p.WateringFrequencyDays, days, p.LastWateredAt.Format(time.DateOnly))
	if p.NeedsWater(now) {
		sb.WriteString("- 💧 **Watering is due**\n")
	}
	if p.Notes != "" {
		fmt.Fprintf(sb, "- **Notes:** %s\n", p.Notes)
	}
}
