// Package httpapi exposes the rename engine over a small JSON API, for
// scripting batches from grading tools that cannot shell out to the CLI.
package httpapi

import (
	"net/http"
	"time"

	"rollcall/internal/ports"
)

// SourceFactory builds a roster source for a spreadsheet path and optional
// cell ranges.
type SourceFactory func(path, nameRange, idRange string) (ports.RosterSource, error)

// Server holds the collaborators the API handlers operate through.
type Server struct {
	Repo      ports.SubmissionRepository
	Journal   ports.BatchJournal
	NewSource SourceFactory
	Template  string
	Exts      []string
}

// NewServer returns an http.Server bound to addr, serving the API routes.
func NewServer(addr string, s *Server) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
