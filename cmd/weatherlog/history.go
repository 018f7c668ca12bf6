package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List saved history records",
		Long:  "Lists all saved weather records, newest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd)
		},
	}
}

func runHistory(cmd *cobra.Command) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		recs, err := d.History.HandleList(ctx)
		if err != nil {
			return fmt.Errorf("listing history: %w", err)
		}

		if len(recs) == 0 {
			fmt.Println("No saved records.")
			return nil
		}

		fmt.Printf("%d saved records:\n\n", len(recs))
		for _, rec := range recs {
			printRecord(rec)
			fmt.Println()
		}
		return nil
	})
}
