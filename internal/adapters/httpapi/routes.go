package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"rollcall/internal/application"
	"rollcall/internal/application/commands"
	"rollcall/internal/domain"
)

// RegisterRoutes builds the API router.
func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Post("/rename", s.handleRename)
		api.Post("/roster", s.handleRoster)
		api.Post("/undo", s.handleUndo)
	})

	return r
}

type renameRequest struct {
	RosterPath  string            `json:"roster_path"`
	NameRange   string            `json:"name_range,omitempty"`
	IDRange     string            `json:"id_range,omitempty"`
	Directory   string            `json:"directory"`
	Template    string            `json:"template,omitempty"`
	Extensions  []string          `json:"extensions,omitempty"`
	Apply       bool              `json:"apply"`
	Resolutions map[string]string `json:"resolutions,omitempty"`
}

type renameEntry struct {
	Original string `json:"original"`
	New      string `json:"new,omitempty"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
	Renamed  bool   `json:"renamed"`
	Error    string `json:"error,omitempty"`
}

type renameReport struct {
	Applied bool          `json:"applied"`
	BatchID string        `json:"batch_id,omitempty"`
	Summary string        `json:"summary"`
	Entries []renameEntry `json:"entries"`
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	source, err := s.NewSource(req.RosterPath, req.NameRange, req.IDRange)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	template := req.Template
	if template == "" {
		template = s.Template
	}
	extensions := req.Extensions
	if extensions == nil {
		extensions = s.Exts
	}

	cmd := commands.NewPlanCommand(source, s.Repo, req.Directory, template)
	cmd.Extensions = extensions
	cmd.Resolutions = req.Resolutions

	plan, err := cmd.Execute(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	report := renameReport{Summary: plan.Summary.String()}

	if !req.Apply {
		for _, e := range plan.Entries {
			report.Entries = append(report.Entries, planEntryJSON(e))
		}
		writeJSON(w, http.StatusOK, report)
		return
	}

	result, err := commands.NewApplyCommand(s.Repo, s.Journal, req.Directory, plan.Entries).Execute(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	report.Applied = true
	report.BatchID = result.BatchID
	report.Summary = result.Message
	for _, res := range result.Results {
		entry := planEntryJSON(res.Entry)
		entry.Renamed = res.Renamed
		if res.Err != nil {
			entry.Error = res.Err.Error()
		}
		report.Entries = append(report.Entries, entry)
	}
	writeJSON(w, http.StatusOK, report)
}

type rosterRequest struct {
	RosterPath string `json:"roster_path"`
	NameRange  string `json:"name_range,omitempty"`
	IDRange    string `json:"id_range,omitempty"`
}

type rosterIdentity struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	var req rosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	source, err := s.NewSource(req.RosterPath, req.NameRange, req.IDRange)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := commands.NewRosterCommand(source).Execute(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	identities := make([]rosterIdentity, 0, result.Roster.Len())
	for _, ident := range result.Roster.All() {
		identities = append(identities, rosterIdentity{
			ID:      ident.ID,
			Name:    ident.DisplayName,
			Aliases: ident.Aliases,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"source":     result.Source,
		"identities": identities,
	})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	result, err := commands.NewUndoCommand(s.Repo, s.Journal).Execute(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"batch_id": result.BatchID,
		"reverted": result.Reverted,
		"failed":   result.Failed,
		"message":  result.Message,
	})
}

func planEntryJSON(e domain.PlanEntry) renameEntry {
	entry := renameEntry{
		Original: e.SourcePath,
		Status:   e.Action.String(),
		Reason:   e.Reason,
	}
	if e.Action == domain.ActionRename {
		entry.New = e.TargetPath
	}
	return entry
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrNoSubmissions),
		errors.Is(err, application.ErrNothingToUndo):
		return http.StatusNotFound
	case errors.Is(err, application.ErrEmptyPlan),
		errors.Is(err, application.ErrCannotResolve),
		errors.Is(err, domain.ErrInvalidTemplate),
		errors.Is(err, domain.ErrMalformedRoster):
		return http.StatusBadRequest
	default:
		var validation *application.ValidationError
		if errors.As(err, &validation) {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
