package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rollcall/internal/application/commands"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Revert the last applied rename batch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewUndoCommand(repo, journal).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, r := range result.Results {
			if r.Err != nil {
				fmt.Fprintf(os.Stderr, "failed: %s: %v\n", r.Entry.SourcePath, r.Err)
			}
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(undoCmd)
}
