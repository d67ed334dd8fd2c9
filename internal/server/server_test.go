package server

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/HendryAvila/plantcare/internal/config"
	"github.com/HendryAvila/plantcare/internal/kvstore"
	"github.com/HendryAvila/plantcare/internal/plants"
	"go.uber.org/zap"
)

func memoryConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Storage.Driver = kvstore.DriverMemory
	return cfg
}

// call sends one JSON-RPC request through the MCP server and returns the
// raw response.
func call(t *testing.T, rt *Runtime, method string, params any) string {
	t.Helper()
	msg, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp := rt.MCP.HandleMessage(context.Background(), msg)
	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return string(out)
}

func TestNew_RegistersEverything(t *testing.T) {
	rt, cleanup, err := New(context.Background(), memoryConfig(t), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	toolsResp := call(t, rt, "tools/list", map[string]any{})
	for _, name := range []string{
		"plant_add", "plant_list", "plant_update", "plant_delete", "plant_activate",
		"plant_water", "plant_reset", "plant_reload", "sensor_status", "sensor_update",
		"chat_ask", "chat_history", "chat_start",
	} {
		if !strings.Contains(toolsResp, `"`+name+`"`) {
			t.Errorf("tool %s not registered", name)
		}
	}

	promptsResp := call(t, rt, "prompts/list", map[string]any{})
	for _, name := range []string{"plant-setup", "plant-checkup"} {
		if !strings.Contains(promptsResp, name) {
			t.Errorf("prompt %s not registered", name)
		}
	}

	resourcesResp := call(t, rt, "resources/list", map[string]any{})
	for _, uri := range []string{"plantcare://plants", "plantcare://telemetry/latest"} {
		if !strings.Contains(resourcesResp, uri) {
			t.Errorf("resource %s not registered", uri)
		}
	}

	if rt.Subscriber != nil {
		t.Error("no NATS URL configured, subscriber should be nil")
	}
}

func TestNew_SubscriberWhenNATSConfigured(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Telemetry.NATSURL = "nats://127.0.0.1:4222"

	rt, cleanup, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()
	if rt.Subscriber == nil {
		t.Error("subscriber should be created when a NATS URL is set")
	}
}

func TestNew_ToolCallThroughServer(t *testing.T) {
	rt, cleanup, err := New(context.Background(), memoryConfig(t), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	resp := call(t, rt, "tools/call", map[string]any{
		"name": "plant_add",
		"arguments": map[string]any{
			"name":                    "Basil",
			"type":                    "basil",
			"watering_frequency_days": 2,
		},
	})
	if !strings.Contains(resp, "Plant Added") {
		t.Fatalf("unexpected response: %s", resp)
	}
	if len(rt.Registry.List()) != 1 {
		t.Errorf("registry len = %d, want 1", len(rt.Registry.List()))
	}
}

func TestNew_SessionFollowsActivePlant(t *testing.T) {
	rt, cleanup, err := New(context.Background(), memoryConfig(t), zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	if rt.Session.Plant() != nil {
		t.Fatal("no plant should be active initially")
	}

	ctx := context.Background()
	first, err := rt.Registry.Add(ctx, plants.Draft{Name: "Tomato", Type: plants.TypeTomato, WateringFrequencyDays: 3})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p := rt.Session.Plant(); p == nil || p.ID != first.ID {
		t.Fatalf("session plant = %+v, want %s", p, first.ID)
	}

	second, _ := rt.Registry.Add(ctx, plants.Draft{Name: "Mint", Type: plants.TypeMint, WateringFrequencyDays: 2})
	if err := rt.Registry.SetActive(ctx, second.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if p := rt.Session.Plant(); p == nil || p.ID != second.ID {
		t.Errorf("session plant = %+v, want %s", p, second.ID)
	}

	msgs := rt.Session.Messages()
	last := msgs[len(msgs)-1]
	if !strings.Contains(last.Text, `"Mint"`) {
		t.Errorf("switch should append a confirmation, last = %q", last.Text)
	}

	if err := rt.Registry.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if rt.Session.Plant() != nil {
		t.Error("session plant should clear after reset")
	}
}

func TestNew_ReloadToolSeesOtherRuntime(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Storage.Driver = kvstore.DriverSQLite

	rt, cleanup, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer cleanup()

	other, cleanupOther, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New (second runtime): %v", err)
	}
	defer cleanupOther()
	if _, err := other.Registry.Add(context.Background(), plants.Draft{Name: "Mint", Type: plants.TypeMint, WateringFrequencyDays: 2}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	resp := call(t, rt, "tools/call", map[string]any{"name": "plant_reload", "arguments": map[string]any{}})
	if !strings.Contains(resp, "Reloaded 1 plant(s)") {
		t.Fatalf("unexpected response: %s", resp)
	}
	if p := rt.Session.Plant(); p == nil || p.Name != "Mint" {
		t.Errorf("session should follow the reloaded active plant, got %+v", p)
	}
}

func TestNew_StoreOpenFailure(t *testing.T) {
	orig := openStore
	defer func() { openStore = orig }()
	openStore = func(context.Context, kvstore.Options) (kvstore.Store, error) {
		return nil, errors.New("boom")
	}

	_, cleanup, err := New(context.Background(), memoryConfig(t), zap.NewNop())
	if err == nil {
		t.Fatal("expected error")
	}
	cleanup() // must be safe
}

func TestNew_PersistsAcrossRuntimes(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Storage.Driver = kvstore.DriverSQLite

	rt, cleanup, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := rt.Registry.Add(context.Background(), plants.Draft{Name: "Thyme", Type: plants.TypeThyme, WateringFrequencyDays: 7}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	cleanup()

	rt2, cleanup2, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New (reopen): %v", err)
	}
	defer cleanup2()
	list := rt2.Registry.List()
	if len(list) != 1 || list[0].Name != "Thyme" || !list[0].IsActive {
		t.Errorf("reloaded = %+v", list)
	}
	if p := rt2.Session.Plant(); p == nil || p.Name != "Thyme" {
		t.Errorf("session should start with the persisted active plant, got %+v", p)
	}
}
