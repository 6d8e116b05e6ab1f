package cli

import (
	"errors"
	"strings"

	"artes-cli/internal/model"

	"github.com/spf13/cobra"
)

func newWebhooksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "Webhook commands",
	}

	cmd.AddCommand(newWebhooksListCmd(app))
	cmd.AddCommand(newWebhooksCreateCmd(app))
	cmd.AddCommand(newWebhooksDeleteCmd(app))

	return cmd
}

func newWebhooksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered webhooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			hooks, err := c.ListWebhooks(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if hooks == nil {
				hooks = []model.Webhook{}
			}
			return writeOut(cmd, app, hooks)
		},
	}
}

func newWebhooksCreateCmd(app *App) *cobra.Command {
	var event string

	cmd := &cobra.Command{
		Use:   "create <url>",
		Short: "Register a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := strings.TrimSpace(args[0])
			if u == "" {
				return writeErr(cmd, errors.New("empty webhook url"))
			}
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			w, err := c.CreateWebhook(cmd.Context(), u, event)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, w)
		},
	}
	cmd.Flags().StringVar(&event, "event", "*", `Event to subscribe to ("*" for all)`)
	return cmd
}

func newWebhooksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <webhook-id>",
		Short: "Delete a webhook",
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
			if err := c.DeleteWebhook(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"status": "deleted", "id": id})
		},
	}
}
