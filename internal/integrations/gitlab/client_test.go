// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

package gitlab

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newFakeAPI serves a minimal slice of the GitLab REST API: project 42
// with issue iid 7 carrying note 99. Mutating request bodies are
// recorded by method+path.
func newFakeAPI(t *testing.T) (*httptest.Server, map[string]string) {
	t.Helper()
	recorded := map[string]string{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v4/projects", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("search") == "" {
			t.Error("expected search query parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id": 43, "name": "myrepo-fork", "path": "myrepo-fork"},
			{"id": 42, "name": "My Repo", "path": "myrepo"}
		]`)
	})
	mux.HandleFunc("/api/v4/projects/42/issues", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			recorded["POST issues"] = string(body)
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"id": 2, "iid": 8, "project_id": 42, "title": "Bug Y"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id": 1, "iid": 7, "project_id": 42, "title": "Bug X", "state": "opened"}
		]`)
	})
	mux.HandleFunc("/api/v4/projects/42/issues/7", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		recorded[r.Method+" issues/7"] = string(body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": 1, "iid": 7, "project_id": 42, "state": "closed"}`)
	})
	mux.HandleFunc("/api/v4/projects/42/issues/7/notes", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			recorded["POST notes"] = string(body)
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"id": 100, "body": "new note"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id": 99, "body": "hello"}]`)
	})
	mux.HandleFunc("/api/v4/projects/42/issues/7/notes/99", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		recorded[r.Method+" notes/99"] = string(body)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": 99, "body": "updated"}`)
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, recorded
}

func newTestClient(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient("gitlab", ts.URL, "token")
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestProjectFromNameExactMatch(t *testing.T) {
	ts, _ := newFakeAPI(t)
	client := newTestClient(t, ts)

	// The search API returns fuzzy matches; only an exact path or
	// name match counts.
	project, err := client.ProjectFromName(context.Background(), "myrepo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project == nil {
		t.Fatal("expected project match")
	}
	if project.(*Project).id != 42 {
		t.Errorf("expected project 42, got %d", project.(*Project).id)
	}

	missing, err := client.ProjectFromName(context.Background(), "myrep")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for fuzzy-only match")
	}
}

func TestProjectFromNameEmpty(t *testing.T) {
	ts, _ := newFakeAPI(t)
	client := newTestClient(t, ts)

	project, err := client.ProjectFromName(context.Background(), "")
	if err != nil || project != nil {
		t.Fatalf("expected nil, nil for empty name, got %v, %v", project, err)
	}
}

func TestIssueFromTitle(t *testing.T) {
	ts, _ := newFakeAPI(t)
	client := newTestClient(t, ts)

	project, _ := client.ProjectFromName(context.Background(), "myrepo")

	issue, err := project.IssueFromTitle(context.Background(), "Bug X")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issue == nil {
		t.Fatal("expected issue match")
	}

	missing, err := project.IssueFromTitle(context.Background(), "Bug Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unmatched title")
	}
}

func TestSetStateMapsToStateEvents(t *testing.T) {
	ts, recorded := newFakeAPI(t)
	client := newTestClient(t, ts)

	project, _ := client.ProjectFromName(context.Background(), "myrepo")
	issue, _ := project.IssueFromTitle(context.Background(), "Bug X")

	tests := []struct {
		state string
		event string
	}{
		{"opened", "reopen"},
		{"closed", "close"},
	}
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			if err := issue.SetState(context.Background(), tt.state); err != nil {
				t.Fatal(err)
			}
			var update struct {
				StateEvent string `json:"state_event"`
			}
			if err := json.Unmarshal([]byte(recorded["PUT issues/7"]), &update); err != nil {
				t.Fatal(err)
			}
			if update.StateEvent != tt.event {
				t.Errorf("expected state event %q, got %q", tt.event, update.StateEvent)
			}
		})
	}
}

func TestCommentLifecycle(t *testing.T) {
	ts, recorded := newFakeAPI(t)
	client := newTestClient(t, ts)

	project, _ := client.ProjectFromName(context.Background(), "myrepo")
	issue, _ := project.IssueFromTitle(context.Background(), "Bug X")

	comment, err := issue.CommentFromBody(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment == nil {
		t.Fatal("expected note match")
	}

	if err := comment.SetBody(context.Background(), "updated"); err != nil {
		t.Fatal(err)
	}
	var update struct {
		Body string `json:"body"`
	}
	if err := json.Unmarshal([]byte(recorded["PUT notes/99"]), &update); err != nil {
		t.Fatal(err)
	}
	if update.Body != "updated" {
		t.Errorf("expected body updated, got %q", update.Body)
	}

	if err := comment.Delete(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, ok := recorded["DELETE notes/99"]; !ok {
		t.Error("expected DELETE request for note 99")
	}

	if _, err := issue.CreateComment(context.Background(), "new note"); err != nil {
		t.Fatal(err)
	}
	var note struct {
		Body string `json:"body"`
	}
	if err := json.Unmarshal([]byte(recorded["POST notes"]), &note); err != nil {
		t.Fatal(err)
	}
	if note.Body != "new note" {
		t.Errorf("expected note body, got %q", note.Body)
	}
}

func TestCreateIssue(t *testing.T) {
	ts, recorded := newFakeAPI(t)
	client := newTestClient(t, ts)

	project, _ := client.ProjectFromName(context.Background(), "myrepo")

	if _, err := project.CreateIssue(context.Background(), "Bug Y", "details"); err != nil {
		t.Fatal(err)
	}
	var created struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(recorded["POST issues"]), &created); err != nil {
		t.Fatal(err)
	}
	if created.Title != "Bug Y" || created.Description != "details" {
		t.Errorf("unexpected create payload: %+v", created)
	}
}

func TestClientHost(t *testing.T) {
	client, err := NewClient("gitlab", "", "token")
	if err != nil {
		t.Fatal(err)
	}
	if client.Host() != "gitlab.com" {
		t.Errorf("expected gitlab.com, got %q", client.Host())
	}

	selfHosted, err := NewClient("internal", "https://gitlab.myurl.cloud", "token")
	if err != nil {
		t.Fatal(err)
	}
	if selfHosted.Host() != "gitlab.myurl.cloud" {
		t.Errorf("expected gitlab.myurl.cloud, got %q", selfHosted.Host())
	}
}
