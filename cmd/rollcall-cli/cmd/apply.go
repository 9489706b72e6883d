package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rollcall/internal/application/commands"
)

var applyYes bool

var applyCmd = &cobra.Command{
	Use:   "apply <directory>",
	Short: "Plan and execute renames for a directory",
	Long: `Compute the rename plan, show it, and execute it. Only unambiguous
matches are renamed; everything else is skipped and reported. The applied
batch is journaled and can be reverted with "rollcall-cli undo".

Examples:
  rollcall-cli apply ./submissions -r roster.csv
  rollcall-cli apply ./submissions -r roster.csv --yes
  rollcall-cli apply ./submissions -r roster.csv --resolve "HW1-Doe.docx=002"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		plan, err := runPlan(cmd.Context(), dir)
		if err != nil {
			return err
		}

		renderPlanTable(plan.Entries)
		fmt.Println(plan.Summary)

		if !applyYes && !confirm(fmt.Sprintf("Rename %d files?", plan.Summary.Renames)) {
			fmt.Println("Aborted.")
			return nil
		}

		result, err := commands.NewApplyCommand(repo, journal, dir, plan.Entries).Execute(cmd.Context())
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
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVarP(&applyYes, "yes", "y", false, "apply without asking for confirmation")
	applyCmd.Flags().StringArrayVar(&planResolutions, "resolve", nil,
		"resolve an ambiguous file, as filename=identity-id (repeatable)")
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
