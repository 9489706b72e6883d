package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"rollcall/internal/adapters/filesystem"
	mcpadapter "rollcall/internal/adapters/mcp"
	"rollcall/internal/adapters/spreadsheet"
	"rollcall/internal/adapters/sqlite"
	"rollcall/internal/config"
	"rollcall/internal/ports"
)

func main() {
	configFlag := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("rollcall-mcp: %v", err)
	}

	journal := sqlite.NewJournal()
	if err := journal.Open(cfg.JournalPath); err != nil {
		log.Fatalf("rollcall-mcp: %v", err)
	}
	defer journal.Close()

	deps := mcpadapter.Deps{
		Repo:    filesystem.NewRepository(),
		Journal: journal,
		NewSource: func(path, nameRange, idRange string) (ports.RosterSource, error) {
			return spreadsheet.New(path, nameRange, idRange)
		},
		Template: cfg.Template,
		Exts:     cfg.Extensions,
	}

	mcpServer := server.NewMCPServer(
		"rollcall-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("rollcall-mcp: %v", err)
	}
}
