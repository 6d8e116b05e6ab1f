package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"artes-cli/internal/api"
	"artes-cli/internal/model"
	"artes-cli/internal/session"
)

func (m appModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.invite.stage == inviteCaptured {
		cmds = append(cmds, m.invitePreviewCmd())
	}
	if m.loggedIn() {
		cmds = append(cmds,
			m.fetchMeCmd(),
			m.fetchActivitiesCmd(m.list.seq),
			m.fetchDashboardCmd(),
			m.fetchCollaboratorsCmd(),
			tickPoll(),
		)
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case pollTickMsg:
		// The poll dies with the session: no reschedule when logged out.
		if !m.loggedIn() {
			return m, nil
		}
		return m, tea.Batch(
			m.fetchActivitiesCmd(m.list.seq),
			m.fetchDashboardCmd(),
			tickPoll(),
		)

	case activitiesMsg:
		applied, refetch := m.list.apply(msg)
		if msg.err != "" && msg.seq == m.list.seq {
			m.statusText = msg.err
		}
		if applied {
			m.syncActivityRows()
		}
		if refetch {
			return m, m.fetchActivitiesCmd(m.list.bump())
		}
		return m, nil

	case dashboardMsg:
		if msg.err == "" {
			m.dash = msg.dash
		}
		return m, nil

	case meMsg:
		if msg.err == "" {
			u := msg.user
			m.me = &u
		}
		return m, nil

	case collaboratorsMsg:
		if msg.err != "" {
			m.statusText = msg.err
			return m, nil
		}
		m.collaborators = msg.users
		m.syncAssignRows()
		return m, nil

	case nestedMsg:
		if msg.err != "" {
			m.statusText = msg.err
			return m, nil
		}
		m.nested.store(msg)
		m.clampSubtaskIdx()
		m.syncActivityRows()
		return m, nil

	case historyMsg:
		if msg.err != "" {
			m.statusText = msg.err
			return m, nil
		}
		m.historyFor = msg.activityID
		m.historyRecords = msg.records
		return m, nil

	case webhooksMsg:
		if msg.err != "" {
			m.statusText = msg.err
			return m, nil
		}
		m.webhooks = msg.hooks
		return m, nil

	case mutationDoneMsg:
		if msg.err != "" {
			m.statusText = msg.err
		}
		if msg.resetPage {
			m.list.page = 1
		}
		return m, tea.Batch(
			m.fetchActivitiesCmd(m.list.bump()),
			m.fetchDashboardCmd(),
		)

	case nestedMutationDoneMsg:
		if msg.err != "" {
			m.statusText = msg.err
		}
		m.nested.invalidate(msg.activityID)
		return m, m.fetchNestedCmd(msg.activityID)

	case adminDoneMsg:
		if msg.err != "" {
			m.statusText = msg.err
		}
		return m, m.fetchCollaboratorsCmd()

	case filesSavedMsg:
		if msg.err != "" {
			m.statusText = msg.err
			return m, nil
		}
		m.statusText = fmt.Sprintf("%d archivo(s) guardado(s)", msg.count)
		return m, nil

	case loginDoneMsg:
		return m.applyLogin(msg.token, msg.username, msg.err)

	case invitePreviewMsg:
		if msg.err != "" {
			m.invite.finish(msg.err)
			m.statusText = "invitación no válida: " + msg.err
			return m, nil
		}
		m.invite.previewLoaded(msg.preview)
		return m, nil

	case inviteExchangedMsg:
		m.invite.finish(msg.err)
		return m.applyLogin(msg.token, msg.username, msg.err)

	case tea.KeyMsg:
		m.statusText = ""
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		switch m.view {
		case viewLogin:
			return m.updateLogin(msg)
		case viewActivities:
			return m.updateActivities(msg)
		}
	}

	return m, nil
}

// applyLogin finishes login and invite-exchange alike. On failure nothing is
// persisted and the login form stays up.
func (m appModel) applyLogin(token, username, errText string) (tea.Model, tea.Cmd) {
	m.loginBusy = false
	if errText != "" {
		m.statusText = errText
		return m, nil
	}
	if err := session.Persist(token, username); err != nil {
		m.statusText = err.Error()
		return m, nil
	}
	m.sess = session.Session{Token: token, Username: username}
	m.client.SetToken(token)
	m.view = viewActivities
	m.passInput.SetValue("")
	return m, tea.Batch(
		m.fetchMeCmd(),
		m.fetchActivitiesCmd(m.list.bump()),
		m.fetchDashboardCmd(),
		m.fetchCollaboratorsCmd(),
		tickPoll(),
	)
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		// Abort an in-progress invitation back to the plain login; the
		// token stays consumed. Otherwise quit.
		if m.invite.active() {
			m.invite.abort()
			return m, nil
		}
		return m, tea.Quit

	case "ctrl+r":
		username := strings.TrimSpace(m.userInput.Value())
		password := m.passInput.Value()
		if username == "" || password == "" || m.loginBusy || m.invite.active() {
			return m, nil
		}
		m.loginBusy = true
		return m, m.registerCmd(username, password)

	case "tab", "shift+tab", "up", "down":
		if m.loginFocus == 0 {
			m.loginFocus = 1
			m.userInput.Blur()
			return m, m.passInput.Focus()
		}
		m.loginFocus = 0
		m.passInput.Blur()
		return m, m.userInput.Focus()

	case "enter":
		if m.loginFocus == 0 {
			m.loginFocus = 1
			m.userInput.Blur()
			return m, m.passInput.Focus()
		}
		username := strings.TrimSpace(m.userInput.Value())
		password := m.passInput.Value()
		if username == "" || password == "" || m.loginBusy {
			if m.invite.active() && !m.loginBusy {
				// Submitting without credentials gives up on the invitation.
				m.invite.abort()
			}
			return m, nil
		}
		m.loginBusy = true
		if m.invite.beginExchange() {
			return m, m.inviteExchangeCmd(username, password)
		}
		return m, m.loginCmd(username, password)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.userInput, cmd = m.userInput.Update(msg)
	} else {
		m.passInput, cmd = m.passInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateActivities(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "r":
		return m, tea.Batch(
			m.fetchActivitiesCmd(m.list.bump()),
			m.fetchDashboardCmd(),
		)

	case "f":
		m.list.cycleFilter()
		return m, m.fetchActivitiesCmd(m.list.bump())

	case "left", "p":
		if !m.list.prevPage() {
			return m, nil
		}
		return m, m.fetchActivitiesCmd(m.list.bump())

	case "right", "n":
		if !m.list.nextPage() {
			return m, nil
		}
		return m, m.fetchActivitiesCmd(m.list.bump())

	case "enter", "tab":
		a, ok := m.selectedActivity()
		if !ok {
			return m, nil
		}
		fetch := m.nested.toggle(a.ID)
		m.subtaskIdx = 0
		m.resizeLists()
		m.syncActivityRows()
		if fetch {
			return m, m.fetchNestedCmd(a.ID)
		}
		return m, nil

	case "s":
		a, ok := m.selectedActivity()
		if !ok {
			return m, nil
		}
		return m, m.setStatusCmd(a.ID, nextStatus(a.Status))

	case "c":
		m.modal = modalCreate
		m.createFocus = 0
		m.titleInput.SetValue("")
		m.descInput.SetValue("")
		m.dueInput.SetValue("")
		return m, m.titleInput.Focus()

	case "d":
		a, ok := m.selectedActivity()
		if !ok {
			return m, nil
		}
		m.modal = modalConfirmDelete
		m.modalForID = a.ID
		m.confirmFocus = confirmFocusCancel
		return m, nil

	case "a":
		a, ok := m.selectedActivity()
		if !ok {
			return m, nil
		}
		m.modal = modalAssign
		m.modalForID = a.ID
		if len(m.collaborators) == 0 {
			return m, m.fetchCollaboratorsCmd()
		}
		return m, nil

	case "v":
		a, ok := m.selectedActivity()
		if !ok {
			return m, nil
		}
		m.modal = modalHistory
		m.historyRecords = nil
		return m, m.fetchHistoryCmd(a.ID)

	case "w":
		m.modal = modalWebhooks
		return m, m.fetchWebhooksCmd()

	case "t":
		if m.nested.expanded == 0 {
			return m, nil
		}
		m.modal = modalSubtask
		m.subtaskInput.SetValue("")
		return m, m.subtaskInput.Focus()

	case "i":
		a, ok := m.selectedActivity()
		if !ok {
			return m, nil
		}
		m.modal = modalInvite
		m.modalForID = a.ID
		m.inviteInput.SetValue("")
		return m, m.inviteInput.Focus()

	case "+", "=":
		if m.nested.expanded != 0 {
			m.subtaskIdx++
			m.clampSubtaskIdx()
		}
		return m, nil

	case "-":
		if m.nested.expanded != 0 {
			m.subtaskIdx--
			m.clampSubtaskIdx()
		}
		return m, nil

	case "x":
		st, ok := m.selectedSubtask()
		if !ok {
			return m, nil
		}
		next := model.StatusDone
		if st.Status == model.StatusDone {
			next = model.StatusOnTrack
		}
		return m, m.setSubtaskStatusCmd(m.nested.expanded, st.ID, next)

	case "X":
		st, ok := m.selectedSubtask()
		if !ok {
			return m, nil
		}
		return m, m.deleteSubtaskCmd(m.nested.expanded, st.ID)

	case "o":
		if m.nested.expanded == 0 || !m.nested.loaded(m.nested.expanded) {
			return m, nil
		}
		files := m.nested.files[m.nested.expanded]
		if len(files) == 0 {
			return m, nil
		}
		return m, m.downloadFilesCmd(m.nested.expanded, files)

	case "A":
		if m.me == nil || !m.me.IsAdmin() {
			return m, nil
		}
		m.modal = modalAdmin
		return m, m.fetchCollaboratorsCmd()

	case "L":
		return m.logout()

	case "esc":
		if m.nested.expanded != 0 {
			m.nested.collapse()
			m.resizeLists()
			m.syncActivityRows()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.activitiesList, cmd = m.activitiesList.Update(msg)
	return m, cmd
}

// logout purges every piece of server-derived state; the next login starts
// from scratch. The running poll dies because pollTickMsg checks loggedIn.
func (m appModel) logout() (tea.Model, tea.Cmd) {
	if err := session.Clear(); err != nil {
		m.statusText = err.Error()
		return m, nil
	}
	m.sess = session.Session{}
	m.client.SetToken("")
	m.me = nil
	m.dash = nil
	m.collaborators = nil
	m.webhooks = nil
	m.historyRecords = nil
	m.list = newListState()
	m.nested = newNestedState()
	m.activitiesList.SetItems(nil)
	m.assignList.SetItems(nil)
	m.view = viewLogin
	m.loginFocus = 0
	m.userInput.SetValue("")
	m.passInput.SetValue("")
	m.modal = modalNone
	return m, m.userInput.Focus()
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" || msg.String() == "ctrl+g" {
		m.modal = modalNone
		return m, nil
	}

	switch m.modal {
	case modalConfirmDelete:
		switch msg.String() {
		case "tab", "left", "right":
			if m.confirmFocus == confirmFocusConfirm {
				m.confirmFocus = confirmFocusCancel
			} else {
				m.confirmFocus = confirmFocusConfirm
			}
			return m, nil
		case "enter":
			id := m.modalForID
			m.modal = modalNone
			if m.confirmFocus == confirmFocusConfirm {
				return m, m.deleteActivityCmd(id)
			}
			return m, nil
		}
		return m, nil

	case modalAssign:
		if msg.String() == "enter" {
			if it, ok := m.assignList.SelectedItem().(collaboratorItem); ok {
				id := m.modalForID
				m.modal = modalNone
				return m, m.assignCmd(id, it.user.ID)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.assignList, cmd = m.assignList.Update(msg)
		return m, cmd

	case modalCreate:
		return m.updateCreateModal(msg)

	case modalSubtask:
		if msg.String() == "enter" {
			title := strings.TrimSpace(m.subtaskInput.Value())
			if title == "" {
				return m, nil
			}
			id := m.nested.expanded
			m.modal = modalNone
			return m, m.createSubtaskCmd(id, title)
		}
		var cmd tea.Cmd
		m.subtaskInput, cmd = m.subtaskInput.Update(msg)
		return m, cmd

	case modalInvite:
		if msg.String() == "enter" {
			email := strings.TrimSpace(m.inviteInput.Value())
			if email == "" {
				return m, nil
			}
			id := m.modalForID
			m.modal = modalNone
			return m, m.createInvitationCmd(id, email)
		}
		var cmd tea.Cmd
		m.inviteInput, cmd = m.inviteInput.Update(msg)
		return m, cmd

	case modalAdmin:
		switch msg.String() {
		case "enter":
			if it, ok := m.assignList.SelectedItem().(collaboratorItem); ok {
				role := model.RoleAdmin
				if it.user.IsAdmin() {
					role = "collaborator"
				}
				return m, m.setRoleCmd(it.user.ID, role)
			}
			return m, nil
		case "d":
			if it, ok := m.assignList.SelectedItem().(collaboratorItem); ok {
				return m, m.deleteUserCmd(it.user.ID)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.assignList, cmd = m.assignList.Update(msg)
		return m, cmd

	case modalHistory, modalWebhooks:
		// View-only; any other key closes them too.
		if msg.String() == "q" || msg.String() == "enter" {
			m.modal = modalNone
		}
		return m, nil
	}

	return m, nil
}

func (m appModel) updateCreateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	submit := func() (tea.Model, tea.Cmd) {
		title := strings.TrimSpace(m.titleInput.Value())
		if title == "" {
			m.statusText = "el título es obligatorio"
			return m, nil
		}
		req := api.CreateActivityRequest{
			Title:       title,
			Description: strings.TrimSpace(m.descInput.Value()),
			InjectedBy:  m.sess.Username,
		}
		if raw := strings.TrimSpace(m.dueInput.Value()); raw != "" {
			d, err := time.Parse("2006-01-02", raw)
			if err != nil {
				m.statusText = "fecha inválida (YYYY-MM-DD)"
				return m, nil
			}
			req.DueDate = model.NewTimestamp(d)
		}
		m.modal = modalNone
		m.titleInput.SetValue("")
		m.descInput.SetValue("")
		m.dueInput.SetValue("")
		return m, m.createActivityCmd(req)
	}

	switch msg.String() {
	case "ctrl+s":
		return submit()
	case "tab":
		m.createFocus = (m.createFocus + 1) % 3
		return m.focusCreateField()
	case "shift+tab":
		m.createFocus = (m.createFocus + 2) % 3
		return m.focusCreateField()
	case "enter":
		// Enter advances through the single-line fields and submits from
		// the last one; the textarea keeps Enter for newlines.
		switch m.createFocus {
		case 0:
			m.createFocus = 1
			return m.focusCreateField()
		case 2:
			return submit()
		}
	}

	var cmd tea.Cmd
	switch m.createFocus {
	case 0:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case 1:
		m.descInput, cmd = m.descInput.Update(msg)
	case 2:
		m.dueInput, cmd = m.dueInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) focusCreateField() (tea.Model, tea.Cmd) {
	m.titleInput.Blur()
	m.descInput.Blur()
	m.dueInput.Blur()
	switch m.createFocus {
	case 0:
		return m, m.titleInput.Focus()
	case 1:
		return m, m.descInput.Focus()
	default:
		return m, m.dueInput.Focus()
	}
}

func nextStatus(s model.Status) model.Status {
	order := model.AllStatuses()
	for i, st := range order {
		if st == s {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

func (m appModel) selectedSubtask() (model.Subtask, bool) {
	if m.nested.expanded == 0 {
		return model.Subtask{}, false
	}
	subs := m.nested.subtasks[m.nested.expanded]
	if m.subtaskIdx < 0 || m.subtaskIdx >= len(subs) {
		return model.Subtask{}, false
	}
	return subs[m.subtaskIdx], true
}

func (m *appModel) clampSubtaskIdx() {
	subs := m.nested.subtasks[m.nested.expanded]
	if m.subtaskIdx >= len(subs) {
		m.subtaskIdx = len(subs) - 1
	}
	if m.subtaskIdx < 0 {
		m.subtaskIdx = 0
	}
}

func (m *appModel) resizeLists() {
	h := m.height - 8
	if h < 6 {
		h = 6
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	listW := w
	if m.nested.expanded != 0 {
		listW = w / 2
	}
	m.activitiesList.SetSize(listW, h)
	m.assignList.SetSize(modalBodyWidth(w), 10)
}
