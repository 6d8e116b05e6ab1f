package cli

import (
	"errors"
	"fmt"
	"os"

	"artes-cli/internal/api"
	"artes-cli/internal/config"
	"artes-cli/internal/format"
	"artes-cli/internal/session"
	"artes-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	BaseURL     string
	PrettyJSON  bool
	Format      string
	InviteToken string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "artes",
		Short:        "Terminal client for the Gestión de las Artes activity tracker",
		SilenceUsage: true,
		Example: `  # Start the interactive TUI
  artes

  # Arrive via an emailed invitation link
  artes --invite-token 3fa8c0de

  # Scriptable commands
  artes login alice
  artes activities list --status "En Curso" --page 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cfg := config.Load()
	cmd.PersistentFlags().StringVar(&app.BaseURL, "base-url", envOr("ARTES_API_BASE", cfg.BaseURL), "Backend base URL")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("ARTES_FORMAT", "json"), "Output format (json|edn)")
	cmd.PersistentFlags().StringVar(&app.InviteToken, "invite-token", "", "Invitation token from an invite link (consumed once, starts the guest flow)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newActivitiesCmd(app))
	cmd.AddCommand(newSubtasksCmd(app))
	cmd.AddCommand(newFilesCmd(app))
	cmd.AddCommand(newInviteCmd(app))
	cmd.AddCommand(newWebhooksCmd(app))
	cmd.AddCommand(newDashboardCmd(app))
	cmd.AddCommand(newCollaboratorsCmd(app))
	cmd.AddCommand(newAdminCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	sess, err := session.Restore()
	if err != nil {
		return err
	}
	client := api.New(app.BaseURL)
	if sess.Active() {
		client.SetToken(sess.Token)
	}
	return tui.Run(client, sess, app.InviteToken)
}

// client returns an API client with the persisted session token installed
// (if any). Commands that require authentication use authedClient instead.
func client(app *App) (*api.Client, session.Session, error) {
	sess, err := session.Restore()
	if err != nil {
		return nil, session.Session{}, err
	}
	c := api.New(app.BaseURL)
	if sess.Active() {
		c.SetToken(sess.Token)
	}
	return c, sess, nil
}

func authedClient(app *App) (*api.Client, session.Session, error) {
	c, sess, err := client(app)
	if err != nil {
		return nil, session.Session{}, err
	}
	if !sess.Active() {
		return nil, session.Session{}, errors.New("not logged in; run `artes login <username>` first")
	}
	return c, sess, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
