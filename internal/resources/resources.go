// Package resources implements MCP resource handlers for PlantCare.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (plantcare://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/plantcare/internal/advisor"
	"github.com/HendryAvila/plantcare/internal/plants"
	"github.com/HendryAvila/plantcare/internal/telemetry"
	"github.com/mark3labs/mcp-go/mcp"
)

// Resource URIs.
const (
	PlantsURI    = "plantcare://plants"
	TelemetryURI = "plantcare://telemetry/latest"
)

// PlantLister is the read side of the plant registry.
type PlantLister interface {
	List() []plants.Plant
}

// SnapshotSource is the read side of the telemetry feed.
type SnapshotSource interface {
	Latest() telemetry.Snapshot
	Received() bool
}

// Handler manages PlantCare resource endpoints.
type Handler struct {
	plants PlantLister
	feed   SnapshotSource
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(plants PlantLister, feed SnapshotSource) *Handler {
	return &Handler{plants: plants, feed: feed}
}

// PlantsResource returns the MCP resource definition for the collection.
func (h *Handler) PlantsResource() mcp.Resource {
	return mcp.NewResource(
		PlantsURI,
		"Plants",
		mcp.WithResourceDescription("All registered plants in insertion order, with the active flag"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandlePlants returns the plant collection as JSON, in the persisted layout.
func (h *Handler) HandlePlants(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	list := h.plants.List()
	if list == nil {
		list = []plants.Plant{}
	}
	return jsonResource(req.Params.URI, list)
}

// telemetryView is the JSON shape of the telemetry resource.
type telemetryView struct {
	Received       bool                   `json:"received"`
	Snapshot       telemetry.Snapshot     `json:"snapshot"`
	Classification advisor.Classification `json:"classification"`
}

// TelemetryResource returns the MCP resource definition for the latest reading.
func (h *Handler) TelemetryResource() mcp.Resource {
	return mcp.NewResource(
		TelemetryURI,
		"Latest Sensor Reading",
		mcp.WithResourceDescription("Most recent sensor snapshot and its classification"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleTelemetry returns the latest snapshot and its classification.
func (h *Handler) HandleTelemetry(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snap := h.feed.Latest()
	return jsonResource(req.Params.URI, telemetryView{
		Received:       h.feed.Received(),
		Snapshot:       snap,
		Classification: advisor.Classify(snap),
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
