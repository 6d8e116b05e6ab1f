package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"artes-cli/internal/api"
	"artes-cli/internal/session"
)

func Run(client *api.Client, sess session.Session, inviteToken string) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(client, sess, inviteToken)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
