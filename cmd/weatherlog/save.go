package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type saveFlags struct {
	unit      string
	startDate string
	endDate   string
}

func newSaveCmd() *cobra.Command {
	var flags saveFlags

	cmd := &cobra.Command{
		Use:   "save <location>",
		Short: "Query weather and save it to history",
		Long:  "Fetches current conditions for a location and persists them as a history record.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.unit, "unit", "u", "celsius", "Temperature unit (celsius, fahrenheit)")
	cmd.Flags().StringVar(&flags.startDate, "start", "", "Range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.endDate, "end", "", "Range end date (YYYY-MM-DD)")

	return cmd
}

func runSave(cmd *cobra.Command, location string, flags saveFlags) error {
	ctx := cmd.Context()

	unit, err := normalizeUnit(flags.unit)
	if err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		snap, err := d.Query.HandleQuery(ctx, location, unit, flags.startDate, flags.endDate)
		if err != nil {
			return fmt.Errorf("querying weather: %w", err)
		}

		rec, err := d.History.HandleSave(ctx, snap, flags.startDate, flags.endDate)
		if err != nil {
			return fmt.Errorf("saving record: %w", err)
		}

		fmt.Printf("Saved to history: %s\n", rec.ID)
		printRecord(*rec)
		return nil
	})
}
