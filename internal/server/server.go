// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it opens the configured store, loads the
// registry, creates the telemetry feed and chat session, and injects them
// into the tools, prompts and resources. No business logic lives here,
// only wiring.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/HendryAvila/plantcare/internal/chat"
	"github.com/HendryAvila/plantcare/internal/config"
	"github.com/HendryAvila/plantcare/internal/kvstore"
	"github.com/HendryAvila/plantcare/internal/plants"
	"github.com/HendryAvila/plantcare/internal/prompts"
	"github.com/HendryAvila/plantcare/internal/resources"
	"github.com/HendryAvila/plantcare/internal/telemetry"
	"github.com/HendryAvila/plantcare/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Runtime holds the wired components. Commands other than serve use the
// registry and session directly without going through MCP.
type Runtime struct {
	MCP      *server.MCPServer
	Registry *plants.Registry
	Feed     *telemetry.Feed
	Session  *chat.Session

	// Subscriber is nil when no NATS URL is configured.
	Subscriber *telemetry.Subscriber
}

// openStore is replaced in tests.
var openStore = kvstore.Open

// New creates and configures every component. This is the single place
// where all dependencies are resolved.
//
// The returned cleanup function unsubscribes the session from the registry
// and closes the store. It is always non-nil and safe to call on error.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Runtime, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// --- Storage and registry ---

	store, err := openStore(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, noop, fmt.Errorf("opening %s store: %w", cfg.Storage.Driver, err)
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing store", zap.Error(err))
		}
	}

	registry, err := plants.Open(ctx, store, plants.WithKey(cfg.Storage.Key))
	if err != nil {
		closeStore()
		return nil, noop, fmt.Errorf("loading plants: %w", err)
	}
	logger.Info("plant registry loaded",
		zap.String("driver", cfg.Storage.Driver),
		zap.Int("plants", len(registry.List())),
	)

	// --- Telemetry and conversation ---

	feed := telemetry.NewFeed()
	session := chat.NewSession(feed)

	var sub *telemetry.Subscriber
	if cfg.Telemetry.NATSURL != "" {
		sub = telemetry.NewSubscriber(cfg.Telemetry.NATSURL, cfg.Telemetry.Subject, feed, logger.Named("telemetry"))
	}

	// Keep the session's active-plant snapshot in step with the registry.
	if active, ok := registry.GetActive(); ok {
		session.Start(&active)
	} else {
		session.Start(nil)
	}
	unsubscribe := registry.Subscribe(func(list []plants.Plant) {
		active := activePlant(list)
		if msg, switched := session.SetPlant(active); switched {
			logger.Debug("active plant changed", zap.String("message_id", msg.ID))
		}
		logger.Debug("plants changed", zap.Int("plants", len(list)))
	})

	cleanup := func() {
		unsubscribe()
		closeStore()
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"plantcare",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(loggingMiddleware(logger.Named("tools"))),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register plant tools ---

	addTool := tools.NewPlantAddTool(registry)
	s.AddTool(addTool.Definition(), addTool.Handle)

	listTool := tools.NewPlantListTool(registry)
	s.AddTool(listTool.Definition(), listTool.Handle)

	updateTool := tools.NewPlantUpdateTool(registry)
	s.AddTool(updateTool.Definition(), updateTool.Handle)

	deleteTool := tools.NewPlantDeleteTool(registry)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	activateTool := tools.NewPlantActivateTool(registry)
	s.AddTool(activateTool.Definition(), activateTool.Handle)

	waterTool := tools.NewPlantWaterTool(registry)
	s.AddTool(waterTool.Definition(), waterTool.Handle)

	resetTool := tools.NewPlantResetTool(registry)
	s.AddTool(resetTool.Definition(), resetTool.Handle)

	reloadTool := tools.NewPlantReloadTool(registry)
	s.AddTool(reloadTool.Definition(), reloadTool.Handle)

	// --- Register sensor tools ---

	statusTool := tools.NewSensorStatusTool(feed)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	sensorUpdateTool := tools.NewSensorUpdateTool(feed)
	s.AddTool(sensorUpdateTool.Definition(), sensorUpdateTool.Handle)

	// --- Register chat tools ---

	askTool := tools.NewChatAskTool(session, cfg.Chat.MaxInputLength)
	s.AddTool(askTool.Definition(), askTool.Handle)

	historyTool := tools.NewChatHistoryTool(session)
	s.AddTool(historyTool.Definition(), historyTool.Handle)

	startTool := tools.NewChatStartTool(session, registry)
	s.AddTool(startTool.Definition(), startTool.Handle)

	// --- Register prompts ---

	setupPrompt := prompts.NewSetupPrompt()
	s.AddPrompt(setupPrompt.Definition(), setupPrompt.Handle)

	checkupPrompt := prompts.NewCheckupPrompt()
	s.AddPrompt(checkupPrompt.Definition(), checkupPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(registry, feed)
	s.AddResource(resourceHandler.PlantsResource(), resourceHandler.HandlePlants)
	s.AddResource(resourceHandler.TelemetryResource(), resourceHandler.HandleTelemetry)

	return &Runtime{
		MCP:        s,
		Registry:   registry,
		Feed:       feed,
		Session:    session,
		Subscriber: sub,
	}, cleanup, nil
}

// noop is the cleanup returned when construction fails.
func noop() {}

func activePlant(list []plants.Plant) *plants.Plant {
	for i := range list {
		if list[i].IsActive {
			return &list[i]
		}
	}
	return nil
}

// loggingMiddleware records every tool call. Tool-level errors are logged
// at info, protocol-level failures at error.
func loggingMiddleware(logger *zap.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			result, err := next(ctx, req)
			fields := []zap.Field{
				zap.String("tool", req.Params.Name),
				zap.Duration("took", time.Since(start)),
			}
			switch {
			case err != nil:
				logger.Error("tool call failed", append(fields, zap.Error(err))...)
			case result != nil && result.IsError:
				logger.Info("tool call rejected", fields...)
			default:
				logger.Debug("tool call", fields...)
			}
			return result, err
		}
	}
}

func serverInstructions() string {
	return `You have access to PlantCare, a plant care assistant backed by live sensor data.

## WHEN TO USE PlantCare

Use PlantCare whenever the user talks about their plants: watering,
temperature, humidity, a plant looking unwell, or adding a new plant.

## PLANTS

- plant_add registers a plant. The first plant becomes the active one.
- plant_list shows every plant, marks the active one and flags plants
  whose watering schedule is due.
- plant_activate switches the active plant. Exactly one plant is active
  whenever any exist; advice is tailored to it.
- plant_water records a watering (it does not drive any hardware).
- plant_update and plant_delete edit or remove plants. plant_reset wipes
  everything and requires confirm=true: never call it without asking.
- plant_reload re-reads the collection when another device or process
  shares the same store.

## SENSORS

Sensor readings arrive continuously from the irrigation controller.
sensor_status shows the latest reading and how each value classifies.
If no controller is connected, the user can give you readings and you
can record them with sensor_update.

## CONVERSATION

Pass the user's plant questions to chat_ask verbatim (max 500 characters).
It understands questions about state/condition, watering, temperature,
humidity and problems/advice, in English or French. Show its answer as-is:
it is already formatted. chat_start begins a new conversation.

## PROMPTS

- /plant-setup walks through registering a plant.
- /plant-checkup runs a full health check of the active plant.`
}
