package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"rollcall/internal/application/commands"
	"rollcall/internal/domain"
)

var planResolutions []string

var planCmd = &cobra.Command{
	Use:   "plan <directory>",
	Short: "Show what would be renamed, without touching anything",
	Long: `Compute and display the rename plan for a directory of submissions.

Examples:
  rollcall-cli plan ./submissions -r roster.csv
  rollcall-cli plan ./submissions -r roster.xlsx --names A2:A40 --ids C2:C40
  rollcall-cli plan ./submissions -r roster.csv --resolve "HW1-Doe.docx=002"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runPlan(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		renderPlanTable(result.Entries)
		fmt.Println(result.Summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringArrayVar(&planResolutions, "resolve", nil,
		"resolve an ambiguous file, as filename=identity-id (repeatable)")
}

func runPlan(ctx context.Context, dir string) (*commands.PlanResult, error) {
	source, err := newSource()
	if err != nil {
		return nil, err
	}

	resolutions, err := parseResolutions(planResolutions)
	if err != nil {
		return nil, err
	}

	c := commands.NewPlanCommand(source, repo, dir, template)
	c.Extensions = extensions
	c.Resolutions = resolutions
	return c.Execute(ctx)
}

func parseResolutions(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, id, ok := strings.Cut(pair, "=")
		if !ok || name == "" || id == "" {
			return nil, fmt.Errorf("invalid --resolve %q: want filename=identity-id", pair)
		}
		out[name] = id
	}
	return out, nil
}

func renderPlanTable(entries []domain.PlanEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"File", "Action", "Target / Reason"})

	for _, e := range entries {
		detail := e.Reason
		if e.Action == domain.ActionRename {
			detail = e.TargetPath
			if e.NoOp {
				detail += " (already named)"
			}
		}
		t.AppendRow(table.Row{e.SourcePath, e.Action, detail})
	}

	if isatty.IsTerminal(os.Stdout.Fd()) {
		t.SetStyle(table.StyleRounded)
		t.SetColumnConfigs([]table.ColumnConfig{
			{Name: "Action", Transformer: actionColor},
		})
	} else {
		t.SetStyle(table.StyleDefault)
		t.Style().Options.DrawBorder = false
		t.Style().Options.SeparateColumns = false
	}
	t.Render()
}

func actionColor(val interface{}) string {
	s := fmt.Sprint(val)
	switch s {
	case domain.ActionRename.String():
		return text.FgGreen.Sprint(s)
	case domain.ActionSkipAmbiguous.String():
		return text.FgYellow.Sprint(s)
	case domain.ActionSkipUnmatched.String():
		return text.Faint.Sprint(s)
	default:
		return text.FgRed.Sprint(s)
	}
}
