package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rollcall/internal/application/commands"
)

var matchCmd = &cobra.Command{
	Use:   "match <filename>",
	Short: "Explain how one filename would be matched",
	Long: `Classify a single filename against the roster and show the working:
the normalized stem, the name windows tried, any ID digit runs, and the
final result.

Examples:
  rollcall-cli match "HW1-JaneDoe.docx" -r roster.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := newSource()
		if err != nil {
			return err
		}

		explanation, err := commands.NewMatchCommand(source, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("File:            %s\n", explanation.File.OriginalPath)
		fmt.Printf("Normalized stem: %q\n", explanation.File.NormalizedStem)
		if len(explanation.IDRuns) > 0 {
			fmt.Printf("ID digit runs:   %s\n", strings.Join(explanation.IDRuns, ", "))
		}
		if len(explanation.Candidates) > 0 {
			fmt.Println("Windows tried (longest first):")
			for _, c := range explanation.Candidates {
				fmt.Printf("  %q\n", c.Text)
			}
		}

		fmt.Printf("Result: %s", explanation.Result.Status)
		if ident := explanation.Result.Identity(); ident != nil {
			fmt.Printf(" -> %s %s", ident.ID, ident.DisplayName)
		}
		if explanation.Result.Reason != "" {
			fmt.Printf(" (%s)", explanation.Result.Reason)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}
