package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aldermoor/weatherlog/internal/domain/records"
)

type queryFlags struct {
	unit      string
	startDate string
	endDate   string
	save      bool
	lat       float64
	lon       float64
	here      bool
}

func newQueryCmd() *cobra.Command {
	var flags queryFlags

	cmd := &cobra.Command{
		Use:   "query <location>",
		Short: "Look up current weather and forecast",
		Long: "Looks up weather for a city, landmark, zip code or a \"lat, lon\" pair.\n" +
			"A start/end date pair bounds the daily series to that range.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := ""
			if len(args) > 0 {
				location = args[0]
			}
			return runQuery(cmd, location, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.unit, "unit", "u", "celsius", "Temperature unit (celsius, fahrenheit)")
	cmd.Flags().StringVar(&flags.startDate, "start", "", "Range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.endDate, "end", "", "Range end date (YYYY-MM-DD)")
	cmd.Flags().BoolVarP(&flags.save, "save", "s", false, "Save the result to history")
	cmd.Flags().Float64Var(&flags.lat, "lat", 0, "Latitude (with --here)")
	cmd.Flags().Float64Var(&flags.lon, "lon", 0, "Longitude (with --here)")
	cmd.Flags().BoolVar(&flags.here, "here", false, "Query by explicit coordinates instead of a location name")

	return cmd
}

func runQuery(cmd *cobra.Command, location string, flags queryFlags) error {
	ctx := cmd.Context()

	unit, err := normalizeUnit(flags.unit)
	if err != nil {
		return err
	}

	if !flags.here && location == "" {
		return fmt.Errorf("specify a location or use --here with --lat/--lon")
	}

	return withDeps(func(d *Deps) error {
		var snap *records.Snapshot
		if flags.here {
			snap, err = d.Query.HandleCoordinates(ctx, flags.lat, flags.lon, unit)
		} else {
			snap, err = d.Query.HandleQuery(ctx, location, unit, flags.startDate, flags.endDate)
		}
		if err != nil {
			return fmt.Errorf("querying weather: %w", err)
		}

		printSnapshot(snap)

		if flags.save {
			rec, err := d.History.HandleSave(ctx, snap, flags.startDate, flags.endDate)
			if err != nil {
				return fmt.Errorf("saving record: %w", err)
			}
			fmt.Printf("\nSaved to history: %s\n", rec.ID)
		}
		return nil
	})
}
