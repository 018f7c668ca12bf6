package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aldermoor/weatherlog/internal/application/handlers"
)

func newEditCmd() *cobra.Command {
	var (
		note      string
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "edit <record-id>",
		Short: "Edit a saved record",
		Long: "Edits a record's note and date range. Location, temperature and\n" +
			"conditions are fixed at save time and cannot be changed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changes := handlers.EditChanges{}
			if cmd.Flags().Changed("note") {
				changes.Note = &note
			}
			if cmd.Flags().Changed("start") {
				changes.StartDate = &startDate
			}
			if cmd.Flags().Changed("end") {
				changes.EndDate = &endDate
			}
			return runEdit(cmd, args[0], changes)
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "Note text (max 60 characters, empty clears)")
	cmd.Flags().StringVar(&startDate, "start", "", "Range start date (YYYY-MM-DD, empty clears)")
	cmd.Flags().StringVar(&endDate, "end", "", "Range end date (YYYY-MM-DD, empty clears)")

	return cmd
}

func runEdit(cmd *cobra.Command, id string, changes handlers.EditChanges) error {
	ctx := cmd.Context()

	if changes.Note == nil && changes.StartDate == nil && changes.EndDate == nil {
		return fmt.Errorf("nothing to change, use --note, --start or --end")
	}

	return withDeps(func(d *Deps) error {
		updated, err := d.History.HandleEdit(ctx, id, changes)
		if err != nil {
			return fmt.Errorf("editing record: %w", err)
		}

		fmt.Println("Record updated:")
		printRecord(*updated)
		return nil
	})
}
