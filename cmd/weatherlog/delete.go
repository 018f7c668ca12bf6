package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aldermoor/weatherlog/internal/domain/services"
)

func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Delete a saved record",
		Long: "Deletes a record after confirmation. The confirmation expires after\n" +
			"a few seconds; answering too late leaves the record in place.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, id string, force bool) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		outcome, err := d.History.HandleRequestDelete(ctx, id)
		if err != nil {
			return fmt.Errorf("deleting record: %w", err)
		}
		if outcome != services.DeletePending {
			return fmt.Errorf("unexpected delete state for %s", id)
		}

		if !force && !confirmAction(fmt.Sprintf("Delete record %s?", id)) {
			d.History.HandleCancelDelete()
			fmt.Println("Cancelled.")
			return nil
		}

		outcome, err = d.History.HandleRequestDelete(ctx, id)
		if err != nil {
			return fmt.Errorf("deleting record: %w", err)
		}
		if outcome != services.DeleteConfirmed {
			// The confirmation timer lapsed while waiting for input.
			d.History.HandleCancelDelete()
			fmt.Println("Confirmation expired, record kept. Run the command again.")
			return nil
		}

		fmt.Printf("Deleted record: %s\n", id)
		return nil
	})
}

func confirmAction(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", prompt)
	response, _ := reader.ReadString('\n') // Error ignored: EOF/error treated as "no"
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
