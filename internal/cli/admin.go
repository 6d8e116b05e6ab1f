package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"artes-cli/internal/api"
	"artes-cli/internal/model"
)

func newAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative user management",
	}
	cmd.AddCommand(newAdminSetRoleCmd(app))
	cmd.AddCommand(newAdminDeleteUserCmd(app))
	cmd.AddCommand(newAdminCreateCmd(app, "create-admin", "Create a new admin user", (*api.Client).CreateAdminUser))
	cmd.AddCommand(newAdminCreateCmd(app, "create-core", "Create a new core-team user", (*api.Client).CreateCoreUser))
	return cmd
}

func newAdminSetRoleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <user-id> <role>",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.UpdateUserRole(cmd.Context(), id, args[1]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"id": id, "role": args[1]})
		},
	}
}

func newAdminDeleteUserCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete-user <user-id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes {
				return writeErr(cmd, errors.New("deleting a user cannot be undone; re-run with --yes"))
			}
			if err := c.DeleteUser(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation check")
	return cmd
}

func newAdminCreateCmd(app *App, use, short string, create func(*api.Client, context.Context, api.NewUserRequest) (model.User, error)) *cobra.Command {
	var email, fullName, password string
	cmd := &cobra.Command{
		Use:   use + " <username>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			pw, err := resolvePassword(cmd, password)
			if err != nil {
				return writeErr(cmd, err)
			}
			u, err := create(c, cmd.Context(), api.NewUserRequest{
				Username: args[0],
				Password: pw,
				Email:    email,
				FullName: fullName,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, u)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&fullName, "full-name", "", "full display name")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}
