package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the weekly status dashboard (admin only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := c.WeeklyDashboard(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if d == nil {
				// The endpoint degrades for non-admins; in the CLI that
				// deserves an explicit message rather than empty output.
				return writeErr(cmd, errors.New("no dashboard available (admin only)"))
			}
			return writeOut(cmd, app, d)
		},
	}
}

func newCollaboratorsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "collaborators",
		Short: "List collaborators eligible for assignment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			users, err := c.ListCollaborators(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, users)
		},
	}
}
