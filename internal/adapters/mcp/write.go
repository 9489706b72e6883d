package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"rollcall/internal/application/commands"
)

// RegisterWriteTools adds the tools that rename files on disk.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(applyTool(), applyHandler(deps))
	s.AddTool(undoTool(), undoHandler(deps))
}

// --- apply_renames ---

func applyTool() mcp.Tool {
	return mcp.NewTool("apply_renames",
		mcp.WithDescription("Plan and execute renames for a directory of submission files. Only unambiguous matches are renamed; every other file is skipped and reported. The applied batch is journaled and can be undone with undo_last_batch."),
		mcp.WithString("roster_path",
			mcp.Description("Path to the roster spreadsheet (.csv, .xlsx, .xlsm)"),
			mcp.Required(),
		),
		mcp.WithString("directory",
			mcp.Description("Directory containing the submission files"),
			mcp.Required(),
		),
		mcp.WithString("name_range",
			mcp.Description("Cell range holding names, e.g. A2:A40"),
		),
		mcp.WithString("id_range",
			mcp.Description("Cell range holding IDs, e.g. C2:C40"),
		),
		mcp.WithString("template",
			mcp.Description("Rename template. Omit for the configured default."),
		),
	)
}

func applyHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		plan, err := runPlan(ctx, deps, req)
		if err != nil {
			return toolError(err)
		}

		dir := req.GetString("directory", "")
		result, err := commands.NewApplyCommand(deps.Repo, deps.Journal, dir, plan.Entries).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(result.Message)
		sb.WriteByte('\n')
		for _, r := range result.Results {
			switch {
			case r.Err != nil:
				fmt.Fprintf(&sb, "! %s: %v\n", r.Entry.SourcePath, r.Err)
			case r.Renamed:
				fmt.Fprintf(&sb, "+ %s -> %s\n", r.Entry.SourcePath, r.Entry.TargetPath)
			default:
				sb.WriteString(formatEntry(r.Entry))
				sb.WriteByte('\n')
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- undo_last_batch ---

func undoTool() mcp.Tool {
	return mcp.NewTool("undo_last_batch",
		mcp.WithDescription("Revert the most recently applied rename batch, restoring original filenames."),
	)
}

func undoHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewUndoCommand(deps.Repo, deps.Journal).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(result.Message)
		sb.WriteByte('\n')
		for _, r := range result.Results {
			if r.Err != nil {
				fmt.Fprintf(&sb, "! %s: %v\n", r.Entry.SourcePath, r.Err)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}
