package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"rollcall/internal/adapters/filesystem"
	"rollcall/internal/adapters/spreadsheet"
	"rollcall/internal/adapters/sqlite"
	"rollcall/internal/ports"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	journal := sqlite.NewJournal()
	if err := journal.Open(filepath.Join(t.TempDir(), "journal.db")); err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { journal.Close() })

	s := &Server{
		Repo:    filesystem.NewRepository(),
		Journal: journal,
		NewSource: func(path, nameRange, idRange string) (ports.RosterSource, error) {
			return spreadsheet.New(path, nameRange, idRange)
		},
		Template: "{id} {name}{seq}{originalExt}",
	}
	server := httptest.NewServer(s.RegisterRoutes())
	t.Cleanup(server.Close)
	return server
}

func writeFixtures(t *testing.T) (roster, dir string) {
	t.Helper()
	base := t.TempDir()

	roster = filepath.Join(base, "roster.csv")
	if err := os.WriteFile(roster, []byte("name,id\nJane Doe,001\nJohn Smith,002\n"), 0644); err != nil {
		t.Fatalf("write roster: %v", err)
	}

	dir = filepath.Join(base, "submissions")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"HW1-JaneDoe.docx", "random.pdf"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write submission: %v", err)
		}
	}
	return roster, dir
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestRename_PlanOnly(t *testing.T) {
	server := setupTestServer(t)
	roster, dir := writeFixtures(t)

	resp := postJSON(t, server.URL+"/api/rename", renameRequest{
		RosterPath: roster,
		Directory:  dir,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var report renameReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Applied {
		t.Error("plan-only request must not apply")
	}
	if len(report.Entries) != 2 {
		t.Fatalf("entries = %+v", report.Entries)
	}

	// Nothing on disk changed.
	if _, err := os.Stat(filepath.Join(dir, "HW1-JaneDoe.docx")); err != nil {
		t.Errorf("source file touched by plan: %v", err)
	}
}

func TestRename_Apply(t *testing.T) {
	server := setupTestServer(t)
	roster, dir := writeFixtures(t)

	resp := postJSON(t, server.URL+"/api/rename", renameRequest{
		RosterPath: roster,
		Directory:  dir,
		Apply:      true,
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var report renameReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !report.Applied || report.BatchID == "" {
		t.Errorf("report = %+v", report)
	}

	if _, err := os.Stat(filepath.Join(dir, "001 Jane Doe.docx")); err != nil {
		t.Errorf("renamed file missing: %v", err)
	}

	// Undo restores the original name.
	undoResp := postJSON(t, server.URL+"/api/undo", struct{}{})
	defer undoResp.Body.Close()
	if undoResp.StatusCode != http.StatusOK {
		t.Fatalf("undo status = %d", undoResp.StatusCode)
	}
	if _, err := os.Stat(filepath.Join(dir, "HW1-JaneDoe.docx")); err != nil {
		t.Errorf("undo did not restore original: %v", err)
	}
}

func TestRename_BadRequest(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/rename", renameRequest{
		RosterPath: "roster.ods",
		Directory:  "/tmp",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUndo_NothingToUndo(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/api/undo", struct{}{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRoster(t *testing.T) {
	server := setupTestServer(t)
	roster, _ := writeFixtures(t)

	resp := postJSON(t, server.URL+"/api/roster", rosterRequest{RosterPath: roster})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var result struct {
		Identities []rosterIdentity `json:"identities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Identities) != 2 {
		t.Errorf("identities = %+v", result.Identities)
	}
}
