package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"rollcall/internal/application/commands"
	"rollcall/internal/domain"
	"rollcall/internal/ports"
)

// SourceFactory builds a roster source for a spreadsheet path and optional
// cell ranges. Injected so the server package does not depend on a concrete
// spreadsheet reader.
type SourceFactory func(path, nameRange, idRange string) (ports.RosterSource, error)

// Deps carries the collaborators the MCP tools operate through.
type Deps struct {
	Repo      ports.SubmissionRepository
	Journal   ports.BatchJournal
	NewSource SourceFactory
	Template  string
	Exts      []string
}

// RegisterReadTools adds the read-only tools to the MCP server. None of
// them touch the filesystem beyond listing directories.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(planTool(), planHandler(deps))
	s.AddTool(listRosterTool(), listRosterHandler(deps))
	s.AddTool(explainMatchTool(), explainMatchHandler(deps))
}

// --- plan_renames ---

func planTool() mcp.Tool {
	return mcp.NewTool("plan_renames",
		mcp.WithDescription("Compute a rename plan for a directory of submission files against a roster spreadsheet. Nothing is renamed; each file is reported as rename, unmatched, ambiguous, conflicting, or collision."),
		mcp.WithString("roster_path",
			mcp.Description("Path to the roster spreadsheet (.csv, .xlsx, .xlsm)"),
			mcp.Required(),
		),
		mcp.WithString("directory",
			mcp.Description("Directory containing the submission files"),
			mcp.Required(),
		),
		mcp.WithString("name_range",
			mcp.Description("Cell range holding names, e.g. A2:A40. Omit to read name,id columns."),
		),
		mcp.WithString("id_range",
			mcp.Description("Cell range holding IDs, e.g. C2:C40. Requires name_range."),
		),
		mcp.WithString("template",
			mcp.Description("Rename template, e.g. \"{id} {name}{seq}{originalExt}\". Omit for the configured default."),
		),
	)
}

func planHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := runPlan(ctx, deps, req)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Plan for %s (%d files): %s\n\n",
			req.GetString("directory", ""), len(result.Entries), result.Summary)
		for _, e := range result.Entries {
			sb.WriteString(formatEntry(e))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func runPlan(ctx context.Context, deps Deps, req mcp.CallToolRequest) (*commands.PlanResult, error) {
	source, err := deps.NewSource(
		req.GetString("roster_path", ""),
		req.GetString("name_range", ""),
		req.GetString("id_range", ""),
	)
	if err != nil {
		return nil, err
	}

	template := req.GetString("template", "")
	if template == "" {
		template = deps.Template
	}

	cmd := commands.NewPlanCommand(source, deps.Repo, req.GetString("directory", ""), template)
	cmd.Extensions = deps.Exts
	return cmd.Execute(ctx)
}

// --- list_roster ---

func listRosterTool() mcp.Tool {
	return mcp.NewTool("list_roster",
		mcp.WithDescription("Load and validate a roster spreadsheet, listing every identity it contains."),
		mcp.WithString("roster_path",
			mcp.Description("Path to the roster spreadsheet"),
			mcp.Required(),
		),
		mcp.WithString("name_range",
			mcp.Description("Cell range holding names, e.g. A2:A40"),
		),
		mcp.WithString("id_range",
			mcp.Description("Cell range holding IDs, e.g. C2:C40"),
		),
	)
}

func listRosterHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		source, err := deps.NewSource(
			req.GetString("roster_path", ""),
			req.GetString("name_range", ""),
			req.GetString("id_range", ""),
		)
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewRosterCommand(source).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(result.Message)
		sb.WriteByte('\n')
		for _, ident := range result.Roster.All() {
			fmt.Fprintf(&sb, "%s  %s", ident.ID, ident.DisplayName)
			if len(ident.Aliases) > 0 {
				fmt.Fprintf(&sb, "  (%s)", strings.Join(ident.Aliases, ", "))
			}
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- explain_match ---

func explainMatchTool() mcp.Tool {
	return mcp.NewTool("explain_match",
		mcp.WithDescription("Explain how a single filename would be matched against the roster: the name windows tried, ID digit runs found, and the final classification."),
		mcp.WithString("roster_path",
			mcp.Description("Path to the roster spreadsheet"),
			mcp.Required(),
		),
		mcp.WithString("filename",
			mcp.Description("Filename to classify, e.g. HW1-JaneDoe.docx"),
			mcp.Required(),
		),
		mcp.WithString("name_range",
			mcp.Description("Cell range holding names"),
		),
		mcp.WithString("id_range",
			mcp.Description("Cell range holding IDs"),
		),
	)
}

func explainMatchHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		source, err := deps.NewSource(
			req.GetString("roster_path", ""),
			req.GetString("name_range", ""),
			req.GetString("id_range", ""),
		)
		if err != nil {
			return toolError(err)
		}

		explanation, err := commands.NewMatchCommand(source, req.GetString("filename", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "File: %s\nNormalized stem: %q\n", explanation.File.OriginalPath, explanation.File.NormalizedStem)
		if len(explanation.IDRuns) > 0 {
			fmt.Fprintf(&sb, "ID digit runs: %s\n", strings.Join(explanation.IDRuns, ", "))
		}
		if len(explanation.Candidates) > 0 {
			sb.WriteString("Windows tried (longest first):\n")
			for _, c := range explanation.Candidates {
				fmt.Fprintf(&sb, "  %q\n", c.Text)
			}
		}
		fmt.Fprintf(&sb, "Result: %s", explanation.Result.Status)
		if ident := explanation.Result.Identity(); ident != nil {
			fmt.Fprintf(&sb, " -> %s %s", ident.ID, ident.DisplayName)
		}
		if explanation.Result.Reason != "" {
			fmt.Fprintf(&sb, " (%s)", explanation.Result.Reason)
		}
		sb.WriteByte('\n')
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntry(e domain.PlanEntry) string {
	switch {
	case e.Action == domain.ActionRename && e.NoOp:
		return fmt.Sprintf("= %s (already named)", e.SourcePath)
	case e.Action == domain.ActionRename:
		return fmt.Sprintf("+ %s -> %s", e.SourcePath, e.TargetPath)
	default:
		return fmt.Sprintf("- %s [%s] %s", e.SourcePath, e.Action, e.Reason)
	}
}
