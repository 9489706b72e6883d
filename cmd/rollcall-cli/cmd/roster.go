package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rollcall/internal/application/commands"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Load and validate the roster, listing its identities",
	Long: `Read the roster spreadsheet, validate it, and print every identity.
Useful for checking a spreadsheet before running a batch.

Examples:
  rollcall-cli roster -r roster.csv
  rollcall-cli roster -r roster.xlsx --names A2:A40 --ids C2:C40`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := newSource()
		if err != nil {
			return err
		}

		result, err := commands.NewRosterCommand(source).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, ident := range result.Roster.All() {
			line := fmt.Sprintf("%s %s", ident.ID, ident.DisplayName)
			if len(ident.Aliases) > 0 {
				line += " (" + strings.Join(ident.Aliases, ", ") + ")"
			}
			fmt.Println(line)
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rosterCmd)
}
