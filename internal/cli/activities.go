package cli

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"artes-cli/internal/api"
	"artes-cli/internal/model"

	"github.com/spf13/cobra"
)

func newActivitiesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Activity commands",
	}

	cmd.AddCommand(newActivitiesListCmd(app))
	cmd.AddCommand(newActivitiesCreateCmd(app))
	cmd.AddCommand(newActivitiesSetStatusCmd(app))
	cmd.AddCommand(newActivitiesSetDueCmd(app))
	cmd.AddCommand(newActivitiesAssignCmd(app))
	cmd.AddCommand(newActivitiesDeleteCmd(app))
	cmd.AddCommand(newActivitiesHistoryCmd(app))
	cmd.AddCommand(newActivitiesDueCmd(app))
	cmd.AddCommand(newActivitiesRemindCmd(app))
	cmd.AddCommand(newActivitiesExportCmd(app))

	return cmd
}

func newActivitiesListCmd(app *App) *cobra.Command {
	var status string
	var assignedTo string
	var page int
	var perPage int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities (paginated)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := c.ListActivities(cmd.Context(), model.Status(status), assignedTo, page, perPage)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, out)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", `Filter by status ("En Curso"|"Completada"|"Cancelada")`)
	cmd.Flags().StringVar(&assignedTo, "assigned-to", "", "Filter by assignee")
	cmd.Flags().IntVar(&page, "page", 1, "Page (1-based)")
	cmd.Flags().IntVar(&perPage, "per-page", 10, "Page size")
	return cmd
}

func newActivitiesCreateCmd(app *App) *cobra.Command {
	var title string
	var description string
	var due string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" {
				return writeErr(cmd, errors.New("missing --title"))
			}
			c, sess, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			req := api.CreateActivityRequest{
				Title:       strings.TrimSpace(title),
				Description: description,
				InjectedBy:  sess.Username,
			}
			if strings.TrimSpace(due) != "" {
				d, err := parseDueDate(due)
				if err != nil {
					return writeErr(cmd, err)
				}
				req.DueDate = model.NewTimestamp(d)
			}
			a, err := c.CreateActivity(cmd.Context(), req)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, a)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Activity title (required)")
	cmd.Flags().StringVar(&description, "description", "", "Activity description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	return cmd
}

func newActivitiesSetStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <activity-id> <status>",
		Short: `Set an activity's status ("En Curso"|"Completada"|"Cancelada")`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := parseStatus(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a, err := c.UpdateActivity(cmd.Context(), id, api.ActivityUpdate{Status: &st})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, a)
		},
	}
}

func newActivitiesSetDueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-due <activity-id> <YYYY-MM-DD>",
		Short: "Set an activity's due date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := parseDueDate(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			a, err := c.UpdateActivity(cmd.Context(), id, api.ActivityUpdate{DueDate: model.NewTimestamp(d)})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, a)
		},
	}
}

func newActivitiesAssignCmd(app *App) *cobra.Command {
	var collaboratorID int
	var assignee string

	cmd := &cobra.Command{
		Use:   "assign <activity-id>",
		Short: "Assign an activity to a collaborator (by id) or free-form assignee",
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
			if collaboratorID > 0 {
				a, err := c.AssignActivity(cmd.Context(), id, collaboratorID)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, a)
			}
			if strings.TrimSpace(assignee) == "" {
				return writeErr(cmd, errors.New("pass --collaborator or --to"))
			}
			to := strings.TrimSpace(assignee)
			a, err := c.UpdateActivity(cmd.Context(), id, api.ActivityUpdate{AssignedTo: &to})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, a)
		},
	}
	cmd.Flags().IntVar(&collaboratorID, "collaborator", 0, "Collaborator user id")
	cmd.Flags().StringVar(&assignee, "to", "", "Free-form assignee (name or email)")
	return cmd
}

func newActivitiesDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <activity-id>",
		Short: "Delete an activity (admin only, irreversible)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes {
				return writeErr(cmd, errors.New("deleting an activity cannot be undone; re-run with --yes"))
			}
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := c.DeleteActivity(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"status": "deleted", "id": id})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the irreversible delete")
	return cmd
}

func newActivitiesHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history <activity-id>",
		Short: "Show an activity's change history",
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
			recs, err := c.ActivityHistory(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			if recs == nil {
				recs = []model.HistoryRecord{}
			}
			return writeOut(cmd, app, recs)
		},
	}
}

func newActivitiesDueCmd(app *App) *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List activities due soon",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := c.DueActivities(cmd.Context(), hours)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, out)
		},
	}
	cmd.Flags().IntVar(&hours, "hours", 24, "Look-ahead window in hours")
	return cmd
}

func newActivitiesRemindCmd(app *App) *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send email reminders for activities due soon",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := c.SendDueReminders(cmd.Context(), hours)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, out)
		},
	}
	cmd.Flags().IntVar(&hours, "hours", 24, "Look-ahead window in hours")
	return cmd
}

func newActivitiesExportCmd(app *App) *cobra.Command {
	var status string
	var weekly bool
	var days int
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the CSV report",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := authedClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var b []byte
			if weekly {
				b, err = c.ExportWeeklyCSV(cmd.Context(), days)
			} else {
				b, err = c.ExportCSV(cmd.Context(), model.Status(status))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			path := out
			if path == "" {
				path = "actividades.csv"
			}
			if err := os.WriteFile(path, b, 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"status": "exported", "path": path, "bytes": len(b)})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (full export only)")
	cmd.Flags().BoolVar(&weekly, "weekly", false, "Export the recent-days report instead")
	cmd.Flags().IntVar(&days, "days", 7, "Days covered by the weekly export")
	cmd.Flags().StringVar(&out, "out", "", "Output path (default actividades.csv)")
	return cmd
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id: " + s)
	}
	return id, nil
}

func parseStatus(s string) (model.Status, error) {
	st := model.Status(strings.TrimSpace(s))
	for _, valid := range model.AllStatuses() {
		if st == valid {
			return st, nil
		}
	}
	return "", errors.New(`invalid status (want "En Curso", "Completada" or "Cancelada")`)
}

func parseDueDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, errors.New("invalid due date (want YYYY-MM-DD)")
	}
	return d, nil
}
