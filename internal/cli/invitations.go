package cli

import (
	"errors"
	"strings"

	"artes-cli/internal/model"
	"artes-cli/internal/session"

	"github.com/spf13/cobra"
)

func newInviteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Guest invitation commands",
	}

	cmd.AddCommand(newInviteCreateCmd(app))
	cmd.AddCommand(newInviteListCmd(app))
	cmd.AddCommand(newInviteShowCmd(app))
	cmd.AddCommand(newInviteAcceptCmd(app))

	return cmd
}

func newInviteCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <activity-id> <email>",
		Short: "Invite a guest to an activity by email",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			email := strings.TrimSpace(args[1])
			if email == "" {
				return writeErr(cmd, errors.New("empty email"))
			}
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			inv, err := c.CreateInvitation(cmd.Context(), id, email)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, inv)
		},
	}
}

func newInviteListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <activity-id>",
		Short: "List an activity's invitations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			invs, err := c.ListInvitations(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if invs == nil {
				invs = []model.Invitation{}
			}
			return writeOut(cmd, app, invs)
		},
	}
}

func newInviteShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <token>",
		Short: "Preview an invitation before accepting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := client(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := c.GetInvitation(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, p)
		},
	}
}

func newInviteAcceptCmd(app *App) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "accept <token>",
		Short: "Accept an invitation and start a guest session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := strings.TrimSpace(args[0])
			if username == "" {
				return writeErr(cmd, errors.New("missing --username"))
			}
			pw, err := resolvePassword(cmd, password)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := client(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			access, err := c.AcceptInvitation(cmd.Context(), token, username, pw)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := session.Persist(access, username); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]string{"status": "invitation accepted", "username": username})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Desired guest username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Guest password (prompted when omitted)")
	return cmd
}
