package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/HendryAvila/plantcare/internal/config"
	"github.com/HendryAvila/plantcare/internal/plants"
	pcserver "github.com/HendryAvila/plantcare/internal/server"
	"github.com/spf13/cobra"
)

var plantsCmd = &cobra.Command{
	Use:   "plants",
	Short: "List registered plants",
	Args:  cobra.NoArgs,
	RunE:  runPlants,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "plantcare v%s\n", pcserver.Version)
	},
}

func runPlants(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
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

	list := rt.Registry.List()
	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No plants yet.")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACTIVE\tNAME\tTYPE\tAGE\tEVERY\tLAST WATERED\tDUE\tID")
	for _, p := range list {
		active := ""
		if p.IsActive {
			active = "*"
		}
		due := ""
		if p.NeedsWater(now) {
			due = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%dd\t%dd\t%dd ago\t%s\t%s\n",
			active, p.Name, typeLabel(p.Type), p.AgeDays, p.WateringFrequencyDays,
			plants.DaysSince(p.LastWateredAt, now), due, p.ID)
	}
	return w.Flush()
}

func typeLabel(t plants.Type) string {
	if profile, found := plants.ProfileFor(t); found {
		return profile.Name
	}
	return string(t)
}
