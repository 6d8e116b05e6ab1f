package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"artes-cli/internal/model"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// backendStub records the last request per route so tests can assert on the
// wire shape the commands produce.
type backendStub struct {
	lastPath   string
	lastMethod string
	lastQuery  map[string]string
	lastBody   map[string]any
}

func newBackend(t *testing.T) (*backendStub, string) {
	t.Helper()

	stub := &backendStub{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.lastPath = r.URL.Path
		stub.lastMethod = r.Method
		stub.lastQuery = map[string]string{}
		for k := range r.URL.Query() {
			stub.lastQuery[k] = r.URL.Query().Get(k)
		}
		stub.lastBody = nil
		if r.Header.Get("Content-Type") == "application/json" {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				stub.lastBody = body
			}
		}

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/token":
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-cli"})
		case r.URL.Path == "/register":
			json.NewEncoder(w).Encode(model.User{ID: 7, Username: "alice"})
		case r.URL.Path == "/me":
			json.NewEncoder(w).Encode(model.User{ID: 7, Username: "alice", Role: model.RoleAdmin})
		case r.URL.Path == "/activities" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(model.ActivityPage{
				Total: 2, Page: 1, PerPage: 10,
				Items: []model.Activity{
					{ID: 1, Title: "Montar exposición", Status: model.StatusOnTrack},
					{ID: 2, Title: "Cerrar presupuesto", Status: model.StatusDone},
				},
			})
		case r.URL.Path == "/activities" && r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(model.Activity{ID: 3, Title: "Nueva", Status: model.StatusOnTrack})
		case r.URL.Path == "/invite/sec-tok":
			json.NewEncoder(w).Encode(model.InvitationPreview{ActivityID: 9, InvitedEmail: "g@x.es"})
		case r.URL.Path == "/invite/sec-tok/accept-login":
			json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-guest"})
		default:
			// Mutations and everything else echo a minimal success body.
			json.NewEncoder(w).Encode(model.Activity{ID: 5, Status: model.StatusDone})
		}
	}))
	t.Cleanup(srv.Close)
	return stub, srv.URL
}

// loginCLI establishes a persisted session against the stub backend.
func loginCLI(t *testing.T, baseURL string) {
	t.Helper()
	if _, stderr, err := runCLI(t, []string{"--base-url", baseURL, "login", "alice", "--password", "pw"}); err != nil {
		t.Fatalf("login: %v\nstderr:\n%s", err, string(stderr))
	}
}

func TestLogin_PersistsSessionForLaterCommands(t *testing.T) {
	t.Setenv("ARTES_CONFIG_DIR", t.TempDir())
	stub, baseURL := newBackend(t)

	loginCLI(t, baseURL)

	stdout, stderr, err := runCLI(t, []string{"--base-url", baseURL, "whoami"})
	if err != nil {
		t.Fatalf("whoami after login: %v\nstderr:\n%s", err, string(stderr))
	}
	if stub.lastPath != "/me" {
		t.Fatalf("expected whoami to hit /me; got %s", stub.lastPath)
	}
	var u model.User
	if err := json.Unmarshal(stdout, &u); err != nil {
		t.Fatalf("unmarshal whoami output: %v\nstdout:\n%s", err, string(stdout))
	}
	if u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestWhoami_RequiresSession(t *testing.T) {
	t.Setenv("ARTES_CONFIG_DIR", t.TempDir())
	_, baseURL := newBackend(t)

	if _, _, err := runCLI(t, []string{"--base-url", baseURL, "whoami"}); err == nil {
		t.Fatal("expected whoami without a session to fail")
	}
}

func TestActivitiesList_SendsFilterAndPagination(t *testing.T) {
	t.Setenv("ARTES_CONFIG_DIR", t.TempDir())
	stub, baseURL := newBackend(t)
	loginCLI(t, baseURL)

	stdout, stderr, err := runCLI(t, []string{
		"--base-url", baseURL,
		"activities", "list", "--status", "En Curso", "--page", "2",
	})
	if err != nil {
		t.Fatalf("activities list: %v\nstderr:\n%s", err, string(stderr))
	}
	if stub.lastQuery["status"] != "En Curso" || stub.lastQuery["page"] != "2" || stub.lastQuery["per_page"] != "10" {
		t.Fatalf("unexpected query: %v", stub.lastQuery)
	}

	var page model.ActivityPage
	if err := json.Unmarshal(stdout, &page); err != nil {
		t.Fatalf("unmarshal list output: %v\nstdout:\n%s", err, string(stdout))
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestActivitiesSetStatus_SendsPartialUpdate(t *testing.T) {
	t.Setenv("ARTES_CONFIG_DIR", t.TempDir())
	stub, baseURL := newBackend(t)
	loginCLI(t, baseURL)

	_, stderr, err := runCLI(t, []string{
		"--base-url", baseURL,
		"activities", "set-status", "5", "Completada",
	})
	if err != nil {
		t.Fatalf("set-status: %v\nstderr:\n%s", err, string(stderr))
	}
	if stub.lastMethod != http.MethodPatch || stub.lastPath != "/activities/5" {
		t.Fatalf("expected PATCH /activities/5; got %s %s", stub.lastMethod, stub.lastPath)
	}
	if got := stub.lastBody["status"]; got != "Completada" {
		t.Fatalf("unexpected body: %v", stub.lastBody)
	}
	if _, ok := stub.lastBody["title"]; ok {
		t.Fatalf("partial update must omit untouched fields; got %v", stub.lastBody)
	}
}

func TestActivitiesSetStatus_RejectsUnknownStatus(t *testing.T) {
	t.Setenv("ARTES_CONFIG_DIR", t.TempDir())
	_, baseURL := newBackend(t)
	loginCLI(t, baseURL)

	if _, _, err := runCLI(t, []string{"--base-url", baseURL, "activities", "set-status", "5", "Hecha"}); err == nil {
		t.Fatal("expected an unknown status to be rejected before any request")
	}
}

func TestActivitiesDelete_RequiresConfirmation(t *testing.T) {
	t.Setenv("ARTES_CONFIG_DIR", t.TempDir())
	stub, baseURL := newBackend(t)
	loginCLI(t, baseURL)

	if _, _, err := runCLI(t, []string{"--base-url", baseURL, "activities", "delete", "5"}); err == nil {
		t.Fatal("expected delete without --yes to fail")
	}

	_, stderr, err := runCLI(t, []string{"--base-url", baseURL, "activities", "delete", "5", "--yes"})
	if err != nil {
		t.Fatalf("delete --yes: %v\nstderr:\n%s", err, string(stderr))
	}
	if stub.lastMethod != http.MethodDelete || stub.lastPath != "/activities/5" {
		t.Fatalf("expected DELETE /activities/5; got %s %s", stub.lastMethod, stub.lastPath)
	}
}

func TestInviteShow_NeedsNoSession(t *testing.T) {
	t.Setenv("ARTES_CONFIG_DIR", t.TempDir())
	_, baseURL := newBackend(t)

	stdout, stderr, err := runCLI(t, []string{"--base-url", baseURL, "invite", "show", "sec-tok"})
	if err != nil {
		t.Fatalf("invite show: %v\nstderr:\n%s", err, string(stderr))
	}
	var p model.InvitationPreview
	if err := json.Unmarshal(stdout, &p); err != nil {
		t.Fatalf("unmarshal preview: %v\nstdout:\n%s", err, string(stdout))
	}
	if p.ActivityID != 9 || p.InvitedEmail != "g@x.es" {
		t.Fatalf("unexpected preview: %+v", p)
	}
}

func TestInviteAccept_PersistsGuestSession(t *testing.T) {
	t.Setenv("ARTES_CONFIG_DIR", t.TempDir())
	stub, baseURL := newBackend(t)

	_, stderr, err := runCLI(t, []string{
		"--base-url", baseURL,
		"invite", "accept", "sec-tok", "--username", "guest", "--password", "pw",
	})
	if err != nil {
		t.Fatalf("invite accept: %v\nstderr:\n%s", err, string(stderr))
	}
	if stub.lastPath != "/invite/sec-tok/accept-login" {
		t.Fatalf("expected the accept-login exchange; got %s", stub.lastPath)
	}

	// The guest session must be usable straight away.
	if _, stderr, err := runCLI(t, []string{"--base-url", baseURL, "whoami"}); err != nil {
		t.Fatalf("whoami with guest session: %v\nstderr:\n%s", err, string(stderr))
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	t.Setenv("ARTES_CONFIG_DIR", t.TempDir())
	_, baseURL := newBackend(t)
	loginCLI(t, baseURL)

	if _, stderr, err := runCLI(t, []string{"--base-url", baseURL, "logout"}); err != nil {
		t.Fatalf("logout: %v\nstderr:\n%s", err, string(stderr))
	}
	if _, _, err := runCLI(t, []string{"--base-url", baseURL, "whoami"}); err == nil {
		t.Fatal("expected whoami after logout to fail")
	}
}
