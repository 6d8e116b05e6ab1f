package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"artes-cli/internal/api"
	"artes-cli/internal/model"
	"artes-cli/internal/session"
)

func testModel(t *testing.T, sess session.Session) appModel {
	t.Helper()
	t.Setenv("ARTES_CONFIG_DIR", t.TempDir())
	return newAppModel(api.New("http://127.0.0.1:0"), sess, "")
}

func loggedInModel(t *testing.T) appModel {
	t.Helper()
	return testModel(t, session.Session{Token: "tok", Username: "alice"})
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewAppModel_ViewFollowsSession(t *testing.T) {
	if m := testModel(t, session.Session{}); m.view != viewLogin {
		t.Fatalf("expected login view without a session; got %v", m.view)
	}
	if m := loggedInModel(t); m.view != viewActivities {
		t.Fatalf("expected activities view with a session; got %v", m.view)
	}
}

func TestUpdate_PollDiesWithoutSession(t *testing.T) {
	m := testModel(t, session.Session{})
	_, cmd := m.Update(pollTickMsg{})
	if cmd != nil {
		t.Fatal("poll tick while logged out must not reschedule")
	}
}

func TestUpdate_PollContinuesWhileLoggedIn(t *testing.T) {
	m := loggedInModel(t)
	_, cmd := m.Update(pollTickMsg{})
	if cmd == nil {
		t.Fatal("poll tick while logged in must fetch and reschedule")
	}
}

func TestUpdate_FilterKeyResetsPageAndInvalidatesInFlight(t *testing.T) {
	m := loggedInModel(t)
	m.list.page = 3
	m.list.totalPages = 5
	seqBefore := m.list.seq

	res, cmd := m.Update(keyRune('f'))
	m2 := res.(appModel)
	if m2.list.page != 1 {
		t.Fatalf("filter change must reset to page 1; got %d", m2.list.page)
	}
	if m2.list.filter != model.StatusOnTrack {
		t.Fatalf("expected first filter cycle value; got %q", m2.list.filter)
	}
	if m2.list.seq == seqBefore {
		t.Fatal("filter change must bump seq so in-flight responses drop")
	}
	if cmd == nil {
		t.Fatal("filter change must refetch")
	}
}

func TestUpdate_PageFlipAtBoundIsNoop(t *testing.T) {
	m := loggedInModel(t)
	m.list.page = 1
	m.list.totalPages = 1

	res, cmd := m.Update(keyRune('n'))
	m2 := res.(appModel)
	if cmd != nil || m2.list.page != 1 {
		t.Fatalf("next page on last page must be a no-op; page=%d", m2.list.page)
	}
	res, cmd = m2.Update(keyRune('p'))
	m2 = res.(appModel)
	if cmd != nil || m2.list.page != 1 {
		t.Fatalf("prev page on page 1 must be a no-op; page=%d", m2.list.page)
	}
}

func TestUpdate_MutationRefetchesListAndDashboard(t *testing.T) {
	m := loggedInModel(t)
	m.list.page = 2
	m.list.totalPages = 3
	seqBefore := m.list.seq

	res, cmd := m.Update(mutationDoneMsg{})
	m2 := res.(appModel)
	if cmd == nil {
		t.Fatal("mutation completion must refetch")
	}
	if m2.list.seq == seqBefore {
		t.Fatal("mutation refetch must bump seq")
	}
	if m2.list.page != 2 {
		t.Fatalf("plain mutation must keep the page; got %d", m2.list.page)
	}

	// Creation jumps back to page one where the new activity sorts.
	res, _ = m2.Update(mutationDoneMsg{resetPage: true})
	m3 := res.(appModel)
	if m3.list.page != 1 {
		t.Fatalf("create must reset to page 1; got %d", m3.list.page)
	}
}

func TestUpdate_ExpansionFetchesOnceAndCollapses(t *testing.T) {
	m := loggedInModel(t)

	// Install a page so the list has a selectable row.
	res, _ := m.Update(activitiesMsg{
		seq: m.list.seq,
		page: model.ActivityPage{Total: 1, Page: 1, PerPage: 10,
			Items: []model.Activity{{ID: 42, Title: "Obra", Status: model.StatusOnTrack}}},
	})
	m = res.(appModel)

	res, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = res.(appModel)
	if m.nested.expanded != 42 {
		t.Fatalf("expected activity 42 expanded; got %d", m.nested.expanded)
	}
	if cmd == nil {
		t.Fatal("first expansion must fetch the nested collections")
	}

	res, _ = m.Update(nestedMsg{activityID: 42, subtasks: []model.Subtask{{ID: 1, Title: "boceto"}}})
	m = res.(appModel)

	// Collapse, re-expand: cached, no fetch.
	res, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = res.(appModel)
	if m.nested.expanded != 0 {
		t.Fatal("second enter must collapse")
	}
	res, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = res.(appModel)
	if m.nested.expanded != 42 {
		t.Fatal("third enter must re-expand")
	}
	if cmd != nil {
		t.Fatal("re-expansion of a cached activity must not refetch")
	}
}

func TestUpdate_NestedMutationInvalidatesAndRefetches(t *testing.T) {
	m := loggedInModel(t)
	m.nested.toggle(7)
	m.nested.store(nestedMsg{activityID: 7, subtasks: []model.Subtask{{ID: 1}}})

	res, cmd := m.Update(nestedMutationDoneMsg{activityID: 7})
	m2 := res.(appModel)
	if m2.nested.loaded(7) {
		t.Fatal("nested mutation must invalidate the cache")
	}
	if cmd == nil {
		t.Fatal("nested mutation must refetch the collections")
	}
}

func TestUpdate_LogoutPurgesEverything(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ARTES_CONFIG_DIR", dir)
	if err := session.Persist("tok", "alice"); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	m := newAppModel(api.New("http://127.0.0.1:0"), session.Session{Token: "tok", Username: "alice"}, "")
	m.list.items = []model.Activity{{ID: 1}}
	m.list.page = 4
	u := model.User{ID: 1, Username: "alice"}
	m.me = &u
	m.dash = &model.WeeklyDashboard{Total: 3}
	m.collaborators = []model.User{u}
	m.nested.toggle(1)
	m.nested.store(nestedMsg{activityID: 1})

	res, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'L'}})
	m2 := res.(appModel)

	if m2.view != viewLogin {
		t.Fatalf("expected login view after logout; got %v", m2.view)
	}
	if m2.sess.Active() || m2.me != nil || m2.dash != nil || m2.collaborators != nil {
		t.Fatal("logout must drop user, dashboard and collaborators")
	}
	if len(m2.list.items) != 0 || m2.list.page != 1 {
		t.Fatal("logout must reset the activity list state")
	}
	if m2.nested.expanded != 0 || m2.nested.loaded(1) {
		t.Fatal("logout must drop the nested caches")
	}
	if _, err := os.Stat(filepath.Join(dir, "session.json")); !os.IsNotExist(err) {
		t.Fatalf("logout must remove the session file; stat err=%v", err)
	}
}

func TestUpdate_FailedLoginLeavesSessionUntouched(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ARTES_CONFIG_DIR", dir)

	m := newAppModel(api.New("http://127.0.0.1:0"), session.Session{}, "")
	res, cmd := m.Update(loginDoneMsg{err: "credenciales incorrectas"})
	m2 := res.(appModel)

	if m2.view != viewLogin {
		t.Fatal("failed login must stay on the login view")
	}
	if m2.statusText == "" {
		t.Fatal("failed login must surface the error")
	}
	if cmd != nil {
		t.Fatal("failed login must not start polling")
	}
	if _, err := os.Stat(filepath.Join(dir, "session.json")); !os.IsNotExist(err) {
		t.Fatalf("failed login must not write a session file; stat err=%v", err)
	}
}

func TestUpdate_SuccessfulLoginPersistsAndStartsPolling(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ARTES_CONFIG_DIR", dir)

	m := newAppModel(api.New("http://127.0.0.1:0"), session.Session{}, "")
	res, cmd := m.Update(loginDoneMsg{token: "tok", username: "guest"})
	m2 := res.(appModel)

	if m2.view != viewActivities {
		t.Fatalf("expected activities view; got %v", m2.view)
	}
	if !m2.sess.Active() || m2.sess.Username != "guest" {
		t.Fatalf("session not installed: %+v", m2.sess)
	}
	if cmd == nil {
		t.Fatal("login must kick off the initial loads and the poll")
	}
	restored, err := session.Restore()
	if err != nil || restored.Token != "tok" {
		t.Fatalf("session not persisted: %+v err=%v", restored, err)
	}
}

func TestUpdate_CreateSubmitClearsInputs(t *testing.T) {
	m := loggedInModel(t)

	// Open the create modal and fill it in.
	res, _ := m.Update(keyRune('c'))
	m = res.(appModel)
	if m.modal != modalCreate {
		t.Fatalf("expected create modal; got %v", m.modal)
	}
	m.titleInput.SetValue("Exposición")
	m.descInput.SetValue("sala 3")
	m.dueInput.SetValue("2026-09-15")

	res, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m2 := res.(appModel)
	if m2.modal != modalNone {
		t.Fatal("submit must close the modal")
	}
	if m2.titleInput.Value() != "" || m2.descInput.Value() != "" || m2.dueInput.Value() != "" {
		t.Fatal("submit must clear the form inputs")
	}
	if cmd == nil {
		t.Fatal("submit must issue the create request")
	}
}

func TestUpdate_CreateRejectsEmptyTitle(t *testing.T) {
	m := loggedInModel(t)
	res, _ := m.Update(keyRune('c'))
	m = res.(appModel)

	res, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m2 := res.(appModel)
	if m2.modal != modalCreate {
		t.Fatal("empty title must keep the modal open")
	}
	if cmd != nil {
		t.Fatal("empty title must not issue a request")
	}
	if m2.statusText == "" {
		t.Fatal("empty title must surface a message")
	}
}

func TestUpdate_StaleActivitiesResponseIgnored(t *testing.T) {
	m := loggedInModel(t)
	m.list.items = []model.Activity{{ID: 1, Title: "vigente"}}
	m.list.bump()

	res, _ := m.Update(activitiesMsg{
		seq:  m.list.seq - 1,
		page: model.ActivityPage{Total: 1, Page: 1, PerPage: 10, Items: []model.Activity{{ID: 99, Title: "viejo"}}},
	})
	m2 := res.(appModel)
	if len(m2.list.items) != 1 || m2.list.items[0].ID != 1 {
		t.Fatalf("stale response overwrote the list: %+v", m2.list.items)
	}
}

func TestNewAppModel_InviteTokenArmsFlowOnce(t *testing.T) {
	t.Setenv("ARTES_CONFIG_DIR", t.TempDir())

	m := newAppModel(api.New("http://127.0.0.1:0"), session.Session{}, "inv-tok")
	if m.view != viewLogin {
		t.Fatalf("invite token must show the credential prompt; got view %v", m.view)
	}
	if m.invite.stage != inviteCaptured || m.invite.token != "inv-tok" {
		t.Fatalf("flow not armed: %+v", m.invite)
	}
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init must fetch the invitation preview")
	}
}

func TestNewAppModel_InviteTokenIgnoredWithActiveSession(t *testing.T) {
	t.Setenv("ARTES_CONFIG_DIR", t.TempDir())

	m := newAppModel(api.New("http://127.0.0.1:0"), session.Session{Token: "tok", Username: "a"}, "inv-tok")
	if m.view != viewActivities {
		t.Fatalf("a live session must keep the activities view; got view %v", m.view)
	}
	if m.invite.stage != inviteIdle || m.invite.token != "" {
		t.Fatalf("guest flow armed despite an active session: %+v", m.invite)
	}
}
