package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/HendryAvila/plantcare/internal/config"
	pcserver "github.com/HendryAvila/plantcare/internal/server"
	"github.com/HendryAvila/plantcare/internal/telemetry"
	"github.com/spf13/cobra"
)

// askReading holds the sensor values given on the command line.
var askReading telemetry.Snapshot

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-off care question",
	Long: `Answers a single question using the stored plants and the sensor
values passed as flags.

Example:
  plantcare ask "should I water?" --soil-humidity 35 --water-need 1.8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return errors.New("question must not be empty")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if n := utf8.RuneCountInString(question); n > cfg.Chat.MaxInputLength {
		return fmt.Errorf("question is %d characters long; the limit is %d", n, cfg.Chat.MaxInputLength)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, cleanup, err := pcserver.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	rt.Feed.Publish(askReading)
	reply := rt.Session.Ask(question)
	fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
	return nil
}
