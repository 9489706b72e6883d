package main

import (
	"flag"
	"log"

	"rollcall/internal/adapters/filesystem"
	"rollcall/internal/adapters/httpapi"
	"rollcall/internal/adapters/spreadsheet"
	"rollcall/internal/adapters/sqlite"
	"rollcall/internal/config"
	"rollcall/internal/ports"
)

func main() {
	configFlag := flag.String("config", "", "path to config file")
	bindFlag := flag.String("bind", "", "listen address, e.g. 127.0.0.1:8321")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("rollcall-server: %v", err)
	}
	bind := cfg.ServerBind
	if *bindFlag != "" {
		bind = *bindFlag
	}

	journal := sqlite.NewJournal()
	if err := journal.Open(cfg.JournalPath); err != nil {
		log.Fatalf("rollcall-server: %v", err)
	}
	defer journal.Close()

	api := &httpapi.Server{
		Repo:    filesystem.NewRepository(),
		Journal: journal,
		NewSource: func(path, nameRange, idRange string) (ports.RosterSource, error) {
			return spreadsheet.New(path, nameRange, idRange)
		},
		Template: cfg.Template,
		Exts:     cfg.Extensions,
	}

	srv := httpapi.NewServer(bind, api)
	log.Printf("rollcall-server listening on %s", bind)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("rollcall-server: %v", err)
	}
}
