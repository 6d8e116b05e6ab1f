package tui

import (
	"artes-cli/internal/model"
)

type view int

const (
	viewLogin view = iota
	viewActivities
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
	modalHistory
	modalWebhooks
	modalAssign
	modalCreate
	modalSubtask
	modalInvite
	modalAdmin
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type pollTickMsg struct{}

// activitiesMsg carries one page of the activity list. seq ties the response
// to the request that produced it so stale responses can be discarded.
type activitiesMsg struct {
	seq  int
	page model.ActivityPage
	err  string
}

type dashboardMsg struct {
	dash *model.WeeklyDashboard
	err  string
}

type meMsg struct {
	user model.User
	err  string
}

type collaboratorsMsg struct {
	users []model.User
	err   string
}

// nestedMsg carries the lazily loaded collections for one expanded activity.
type nestedMsg struct {
	activityID  int
	subtasks    []model.Subtask
	files       []model.ActivityFile
	invitations []model.Invitation
	err         string
}

type historyMsg struct {
	activityID int
	records    []model.HistoryRecord
	err        string
}

type webhooksMsg struct {
	hooks []model.Webhook
	err   string
}

// mutationDoneMsg reports completion of any top-level activity mutation.
// The list and dashboard are refetched regardless of err. resetPage is set
// by creation: new activities sort first, so the view jumps to page one.
type mutationDoneMsg struct {
	err       string
	resetPage bool
}

// nestedMutationDoneMsg reports completion of a subtask/file/invitation
// mutation; the parent's collections are invalidated and refetched.
type nestedMutationDoneMsg struct {
	activityID int
	err        string
}

// adminDoneMsg reports completion of a role change or user deletion; the
// collaborator list is refetched afterwards.
type adminDoneMsg struct {
	err string
}

// filesSavedMsg reports how many attachments of the expanded activity were
// written to the working directory.
type filesSavedMsg struct {
	count int
	err   string
}

type loginDoneMsg struct {
	token    string
	username string
	err      string
}

type invitePreviewMsg struct {
	preview model.InvitationPreview
	err     string
}

type inviteExchangedMsg struct {
	token    string
	username string
	err      string
}
