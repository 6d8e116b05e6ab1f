package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"artes-cli/internal/api"
	"artes-cli/internal/model"
)

// All commands run on background contexts: the API client enforces its own
// per-request timeout, and Bubble Tea delivers the resulting msg whenever it
// lands. Staleness is handled by seq checks, not cancellation.

func tickPoll() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollTickMsg{} })
}

func (m appModel) fetchActivitiesCmd(seq int) tea.Cmd {
	c := m.client
	filter := m.list.filter
	page := m.list.page
	return func() tea.Msg {
		pg, err := c.ListActivities(context.Background(), filter, "", page, activitiesPerPage)
		if err != nil {
			return activitiesMsg{seq: seq, err: err.Error()}
		}
		return activitiesMsg{seq: seq, page: pg}
	}
}

func (m appModel) fetchDashboardCmd() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		d, err := c.WeeklyDashboard(context.Background())
		if err != nil {
			return dashboardMsg{err: err.Error()}
		}
		return dashboardMsg{dash: d}
	}
}

func (m appModel) fetchMeCmd() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		u, err := c.Me(context.Background())
		if err != nil {
			return meMsg{err: err.Error()}
		}
		return meMsg{user: u}
	}
}

func (m appModel) fetchCollaboratorsCmd() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		users, err := c.ListCollaborators(context.Background())
		if err != nil {
			return collaboratorsMsg{err: err.Error()}
		}
		return collaboratorsMsg{users: users}
	}
}

// fetchNestedCmd loads the three nested collections for one activity in a
// single command so the expanded panel appears all at once.
func (m appModel) fetchNestedCmd(activityID int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx := context.Background()
		subs, err := c.ListSubtasks(ctx, activityID)
		if err != nil {
			return nestedMsg{activityID: activityID, err: err.Error()}
		}
		files, err := c.ListFiles(ctx, activityID)
		if err != nil {
			return nestedMsg{activityID: activityID, err: err.Error()}
		}
		invs, err := c.ListInvitations(ctx, activityID)
		if err != nil {
			return nestedMsg{activityID: activityID, err: err.Error()}
		}
		return nestedMsg{activityID: activityID, subtasks: subs, files: files, invitations: invs}
	}
}

func (m appModel) fetchHistoryCmd(activityID int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		recs, err := c.ActivityHistory(context.Background(), activityID)
		if err != nil {
			return historyMsg{activityID: activityID, err: err.Error()}
		}
		return historyMsg{activityID: activityID, records: recs}
	}
}

func (m appModel) fetchWebhooksCmd() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		hooks, err := c.ListWebhooks(context.Background())
		if err != nil {
			return webhooksMsg{err: err.Error()}
		}
		return webhooksMsg{hooks: hooks}
	}
}

func (m appModel) registerCmd(username, password string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := c.Register(ctx, username, password); err != nil {
			return loginDoneMsg{err: err.Error()}
		}
		// Registration chains straight into a login.
		token, err := c.Login(ctx, username, password)
		if err != nil {
			return loginDoneMsg{err: err.Error()}
		}
		return loginDoneMsg{token: token, username: username}
	}
}

func (m appModel) loginCmd(username, password string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		token, err := c.Login(context.Background(), username, password)
		if err != nil {
			return loginDoneMsg{err: err.Error()}
		}
		return loginDoneMsg{token: token, username: username}
	}
}

func (m appModel) invitePreviewCmd() tea.Cmd {
	c := m.client
	token := m.invite.token
	return func() tea.Msg {
		p, err := c.GetInvitation(context.Background(), token)
		if err != nil {
			return invitePreviewMsg{err: err.Error()}
		}
		return invitePreviewMsg{preview: p}
	}
}

func (m appModel) inviteExchangeCmd(username, password string) tea.Cmd {
	c := m.client
	token := m.invite.token
	return func() tea.Msg {
		sessToken, err := c.AcceptInvitation(context.Background(), token, username, password)
		if err != nil {
			return inviteExchangedMsg{err: err.Error()}
		}
		return inviteExchangedMsg{token: sessToken, username: username}
	}
}

func (m appModel) createActivityCmd(req api.CreateActivityRequest) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		if _, err := c.CreateActivity(context.Background(), req); err != nil {
			return mutationDoneMsg{err: err.Error()}
		}
		return mutationDoneMsg{resetPage: true}
	}
}

func (m appModel) setStatusCmd(activityID int, status model.Status) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		if _, err := c.UpdateActivity(context.Background(), activityID, api.ActivityUpdate{Status: &status}); err != nil {
			return mutationDoneMsg{err: err.Error()}
		}
		return mutationDoneMsg{}
	}
}

func (m appModel) deleteActivityCmd(activityID int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		if err := c.DeleteActivity(context.Background(), activityID); err != nil {
			return mutationDoneMsg{err: err.Error()}
		}
		return mutationDoneMsg{}
	}
}

func (m appModel) assignCmd(activityID, collaboratorID int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		if _, err := c.AssignActivity(context.Background(), activityID, collaboratorID); err != nil {
			return mutationDoneMsg{err: err.Error()}
		}
		return mutationDoneMsg{}
	}
}

func (m appModel) createSubtaskCmd(activityID int, title string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		if _, err := c.CreateSubtask(context.Background(), activityID, api.SubtaskRequest{Title: title}); err != nil {
			return nestedMutationDoneMsg{activityID: activityID, err: err.Error()}
		}
		return nestedMutationDoneMsg{activityID: activityID}
	}
}

func (m appModel) setSubtaskStatusCmd(activityID, subtaskID int, status model.Status) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		if _, err := c.UpdateSubtask(context.Background(), activityID, subtaskID, api.SubtaskUpdate{Status: &status}); err != nil {
			return nestedMutationDoneMsg{activityID: activityID, err: err.Error()}
		}
		return nestedMutationDoneMsg{activityID: activityID}
	}
}

func (m appModel) deleteSubtaskCmd(activityID, subtaskID int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		if err := c.DeleteSubtask(context.Background(), activityID, subtaskID); err != nil {
			return nestedMutationDoneMsg{activityID: activityID, err: err.Error()}
		}
		return nestedMutationDoneMsg{activityID: activityID}
	}
}

func (m appModel) createInvitationCmd(activityID int, email string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		if _, err := c.CreateInvitation(context.Background(), activityID, email); err != nil {
			return nestedMutationDoneMsg{activityID: activityID, err: err.Error()}
		}
		return nestedMutationDoneMsg{activityID: activityID}
	}
}

func (m appModel) setRoleCmd(userID int, role string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		if err := c.UpdateUserRole(context.Background(), userID, role); err != nil {
			return adminDoneMsg{err: err.Error()}
		}
		return adminDoneMsg{}
	}
}

func (m appModel) deleteUserCmd(userID int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		if err := c.DeleteUser(context.Background(), userID); err != nil {
			return adminDoneMsg{err: err.Error()}
		}
		return adminDoneMsg{}
	}
}

// downloadFilesCmd saves every attachment of one activity into the working
// directory. Each file is fetched fully before anything is written, and the
// write goes through a temp file + rename so a failure never leaves a
// partial download behind.
func (m appModel) downloadFilesCmd(activityID int, files []model.ActivityFile) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		n := 0
		for _, f := range files {
			b, err := c.DownloadFile(context.Background(), activityID, f.ID)
			if err != nil {
				return filesSavedMsg{count: n, err: err.Error()}
			}
			if err := saveDownload(f.Filename, b); err != nil {
				return filesSavedMsg{count: n, err: err.Error()}
			}
			n++
		}
		return filesSavedMsg{count: n}
	}
}

// saveDownload writes into the working directory under the bare base name.
// The server-supplied filename is never trusted as a path.
func saveDownload(filename string, b []byte) error {
	name := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == ".." || name == "/" || name == "" {
		return fmt.Errorf("unusable filename %q", filename)
	}
	f, err := os.CreateTemp(".", name+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, name)
}
