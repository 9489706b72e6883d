package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rollcall/internal/adapters/filesystem"
	"rollcall/internal/adapters/spreadsheet"
	"rollcall/internal/adapters/sqlite"
	"rollcall/internal/adapters/tui"
	"rollcall/internal/config"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: rollcall <roster.csv|xlsx> <directory> [name-range [id-range]]")
		os.Exit(2)
	}

	cfg, err := config.Load("")
	if err != nil {
		fatal(err)
	}

	nameRange, idRange := cfg.NameRange, cfg.IDRange
	if len(os.Args) > 3 {
		nameRange = os.Args[3]
	}
	if len(os.Args) > 4 {
		idRange = os.Args[4]
	}

	source, err := spreadsheet.New(os.Args[1], nameRange, idRange)
	if err != nil {
		fatal(err)
	}

	journal := sqlite.NewJournal()
	if err := journal.Open(cfg.JournalPath); err != nil {
		fatal(err)
	}
	defer journal.Close()

	app := tui.NewApp(tui.Controller{
		Source:   source,
		Repo:     filesystem.NewRepository(),
		Journal:  journal,
		Dir:      os.Args[2],
		Template: cfg.Template,
		Exts:     cfg.Extensions,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
