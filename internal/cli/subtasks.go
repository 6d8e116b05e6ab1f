package cli

import (
	"errors"
	"strings"

	"artes-cli/internal/api"
	"artes-cli/internal/model"

	"github.com/spf13/cobra"
)

func newSubtasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtasks",
		Short: "Subtask commands",
	}

	cmd.AddCommand(newSubtasksListCmd(app))
	cmd.AddCommand(newSubtasksCreateCmd(app))
	cmd.AddCommand(newSubtasksSetStatusCmd(app))
	cmd.AddCommand(newSubtasksDeleteCmd(app))

	return cmd
}

func newSubtasksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <activity-id>",
		Short: "List an activity's subtasks",
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
			subs, err := c.ListSubtasks(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if subs == nil {
				subs = []model.Subtask{}
			}
			return writeOut(cmd, app, subs)
		},
	}
}

func newSubtasksCreateCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <activity-id> <title>",
		Short: "Add a subtask to an activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			title := strings.TrimSpace(args[1])
			if title == "" {
				return writeErr(cmd, errors.New("empty subtask title"))
			}
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := c.CreateSubtask(cmd.Context(), id, api.SubtaskRequest{Title: title, Description: description})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, s)
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Subtask description")
	return cmd
}

func newSubtasksSetStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <activity-id> <subtask-id> <status>",
		Short: "Set a subtask's status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			activityID, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			subtaskID, err := parseID(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := parseStatus(args[2])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := c.UpdateSubtask(cmd.Context(), activityID, subtaskID, api.SubtaskUpdate{Status: &st})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, s)
		},
	}
}

func newSubtasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <activity-id> <subtask-id>",
		Short: "Delete a subtask",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			activityID, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			subtaskID, err := parseID(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.DeleteSubtask(cmd.Context(), activityID, subtaskID); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"status": "deleted", "id": subtaskID})
		},
	}
}
