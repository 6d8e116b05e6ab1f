package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"artes-cli/internal/api"
	"artes-cli/internal/model"
	"artes-cli/internal/session"
)

// pollInterval matches the refresh cadence the tracker has always used.
const pollInterval = 20 * time.Second

type appModel struct {
	client *api.Client
	// now is injectable so deadline rendering is deterministic in tests.
	now func() time.Time

	width  int
	height int

	view view
	sess session.Session
	me   *model.User

	list   listState
	nested nestedState
	invite inviteFlow

	activitiesList list.Model
	assignList     list.Model
	collaborators  []model.User
	dash           *model.WeeklyDashboard

	modal        modalKind
	modalForID   int
	confirmFocus confirmModalFocus

	historyFor     int
	historyRecords []model.HistoryRecord
	webhooks       []model.Webhook

	// Login form (also reused by the guest-invitation credential prompt).
	userInput  textinput.Model
	passInput  textinput.Model
	loginFocus int
	loginBusy  bool

	// Create-activity form.
	titleInput  textinput.Model
	descInput   textarea.Model
	dueInput    textinput.Model
	createFocus int

	// Single-line inputs for subtask titles and invitation emails.
	subtaskInput textinput.Model
	inviteInput  textinput.Model

	// Cursor into the expanded activity's subtask list.
	subtaskIdx int

	statusText string
}

func newAppModel(client *api.Client, sess session.Session, inviteToken string) appModel {
	m := appModel{
		client: client,
		now:    time.Now,
		sess:   sess,
		list:   newListState(),
		nested: newNestedState(),
	}

	m.view = viewLogin
	if sess.Active() {
		m.view = viewActivities
	}

	m.activitiesList = newList("Actividades", []list.Item{})
	m.assignList = newList("Colaboradores", []list.Item{})

	m.userInput = textinput.New()
	m.userInput.Placeholder = "usuario"
	m.userInput.CharLimit = 80
	m.userInput.Width = 32
	m.userInput.Focus()

	m.passInput = textinput.New()
	m.passInput.Placeholder = "contraseña"
	m.passInput.CharLimit = 200
	m.passInput.Width = 32
	m.passInput.EchoMode = textinput.EchoPassword

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Título"
	m.titleInput.CharLimit = 200
	m.titleInput.Width = 48

	m.descInput = textarea.New()
	m.descInput.Placeholder = "Descripción…"
	m.descInput.CharLimit = 0
	m.descInput.SetWidth(48)
	m.descInput.SetHeight(5)
	m.descInput.ShowLineNumbers = false

	m.dueInput = textinput.New()
	m.dueInput.Placeholder = "YYYY-MM-DD (opcional)"
	m.dueInput.CharLimit = 10
	m.dueInput.Width = 22

	m.subtaskInput = textinput.New()
	m.subtaskInput.Placeholder = "Subtarea"
	m.subtaskInput.CharLimit = 200
	m.subtaskInput.Width = 40

	m.inviteInput = textinput.New()
	m.inviteInput.Placeholder = "correo@ejemplo.com"
	m.inviteInput.CharLimit = 120
	m.inviteInput.Width = 40

	// An invite token takes over the login screen: preview first, then
	// credentials, then the token exchange. Arms at most once, and only
	// when nobody is logged in; with a live session the token is ignored.
	if !sess.Active() && m.invite.arm(inviteToken) {
		m.view = viewLogin
	}

	return m
}

func (m appModel) loggedIn() bool { return m.sess.Active() }

// selectedActivity returns the activity under the cursor, if any.
func (m appModel) selectedActivity() (model.Activity, bool) {
	if it, ok := m.activitiesList.SelectedItem().(activityRowItem); ok {
		return it.activity, true
	}
	return model.Activity{}, false
}

// syncActivityRows rebuilds the bubble list from listState, preserving the
// selection by activity ID when possible.
func (m *appModel) syncActivityRows() {
	curID := 0
	if a, ok := m.selectedActivity(); ok {
		curID = a.ID
	}
	now := m.now()
	items := make([]list.Item, 0, len(m.list.items))
	for _, a := range m.list.items {
		items = append(items, activityRowItem{
			activity: a,
			expanded: m.nested.expanded == a.ID,
			now:      now,
		})
	}
	m.activitiesList.SetItems(items)
	if curID != 0 {
		selectActivityByID(&m.activitiesList, curID)
	}
}

func (m *appModel) syncAssignRows() {
	items := make([]list.Item, 0, len(m.collaborators))
	for _, u := range m.collaborators {
		items = append(items, collaboratorItem{user: u})
	}
	m.assignList.SetItems(items)
}
