package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/plantcare/internal/config"
	"github.com/HendryAvila/plantcare/internal/plants"
	pcserver "github.com/HendryAvila/plantcare/internal/server"
	"github.com/HendryAvila/plantcare/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setupCLI points the CLI at a fresh data directory.
func setupCLI(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	dir := t.TempDir()
	t.Setenv(config.EnvDataDir, dir)
	t.Setenv(config.EnvStorageDriver, "")
	t.Setenv(config.EnvStorageDSN, "")
	t.Setenv(config.EnvNATSURL, "")
	t.Setenv(config.EnvNATSSubject, "")
	configPath = filepath.Join(dir, "absent.yaml")
	askReading = telemetry.Snapshot{}
	t.Cleanup(func() { configPath = "" })
}

func seedPlant(t *testing.T, d plants.Draft) {
	t.Helper()
	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("setup: load config: %v", err)
	}
	rt, cleanup, err := pcserver.New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("setup: new runtime: %v", err)
	}
	defer cleanup()
	if _, err := rt.Registry.Add(context.Background(), d); err != nil {
		t.Fatalf("setup: add plant: %v", err)
	}
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestPlantsCmd_Empty(t *testing.T) {
	setupCLI(t)
	cmd, out := newTestCmd()
	if err := runPlants(cmd, nil); err != nil {
		t.Fatalf("runPlants: %v", err)
	}
	if !strings.Contains(out.String(), "No plants yet") {
		t.Errorf("output = %q", out.String())
	}
}

func TestPlantsCmd_ListsPersistedPlants(t *testing.T) {
	setupCLI(t)
	seedPlant(t, plants.Draft{Name: "Kitchen basil", Type: "basilic", WateringFrequencyDays: 2})

	cmd, out := newTestCmd()
	if err := runPlants(cmd, nil); err != nil {
		t.Fatalf("runPlants: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Kitchen basil") || !strings.Contains(text, "Basil") {
		t.Errorf("output missing plant:\n%s", text)
	}
	if !strings.Contains(text, "*") {
		t.Errorf("the only plant should be marked active:\n%s", text)
	}
}

func TestAskCmd_UsesFlagsAndActivePlant(t *testing.T) {
	setupCLI(t)
	seedPlant(t, plants.Draft{Name: "Balcony tomato", Type: plants.TypeTomato, WateringFrequencyDays: 3})
	askReading = telemetry.Snapshot{TemperatureC: 34, SoilHumidityPct: 30, WaterNeedLiters: 2}

	cmd, out := newTestCmd()
	if err := runAsk(cmd, []string{"how", "is", "my", "plant?"}); err != nil {
		t.Fatalf("runAsk: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Balcony tomato") {
		t.Errorf("answer should name the active plant:\n%s", text)
	}
	if !strings.Contains(text, "Too hot") {
		t.Errorf("answer should use the flag readings:\n%s", text)
	}
}

func TestAskCmd_RejectsBlankAndLong(t *testing.T) {
	setupCLI(t)
	cmd, _ := newTestCmd()
	if err := runAsk(cmd, []string{"   "}); err == nil {
		t.Error("blank question should fail")
	}
	if err := runAsk(cmd, []string{strings.Repeat("a", 501)}); err == nil {
		t.Error("over-long question should fail")
	}
}

func TestConfigInitCmd_WritesLoadableFile(t *testing.T) {
	setupCLI(t)
	t.Setenv(config.EnvStorageDriver, "memory")
	configForce = false
	t.Cleanup(func() { configForce = false })

	cmd, out := newTestCmd()
	if err := runConfigInit(cmd, nil); err != nil {
		t.Fatalf("runConfigInit: %v", err)
	}
	if !strings.Contains(out.String(), "Wrote "+configPath) {
		t.Errorf("output = %q", out.String())
	}

	t.Setenv(config.EnvStorageDriver, "")
	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load written file: %v", err)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("driver = %q, want the env override captured in the file", cfg.Storage.Driver)
	}
	if cfg.Chat.MaxInputLength != 500 {
		t.Errorf("max input length = %d, want 500", cfg.Chat.MaxInputLength)
	}
}

func TestConfigInitCmd_RefusesOverwriteWithoutForce(t *testing.T) {
	setupCLI(t)
	configForce = false
	t.Cleanup(func() { configForce = false })

	cmd, _ := newTestCmd()
	if err := runConfigInit(cmd, nil); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if err := runConfigInit(cmd, nil); err == nil {
		t.Error("second init without --force should fail")
	}

	configForce = true
	if err := runConfigInit(cmd, nil); err != nil {
		t.Errorf("init with --force: %v", err)
	}
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)
	versionCmd.Run(versionCmd, nil)
	if !strings.Contains(buf.String(), "plantcare v"+pcserver.Version) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	want := map[string]bool{"serve": false, "ask": false, "plants": false, "version": false, "config": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}
