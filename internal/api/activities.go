package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"artes-cli/internal/model"
)

// CreateActivityRequest is the POST /activities payload.
type CreateActivityRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	DueDate     *model.Timestamp `json:"due_date,omitempty"`
	InjectedBy  string           `json:"injected_by"`
}

// ActivityUpdate carries the partial fields of a PATCH /activities/{id}.
// Nil fields are left untouched by the server.
type ActivityUpdate struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Status      *model.Status    `json:"status,omitempty"`
	AssignedTo  *string          `json:"assigned_to,omitempty"`
	DueDate     *model.Timestamp `json:"due_date,omitempty"`
}

// ListActivities fetches one page of the (optionally filtered) activity
// list. Best-effort: a non-2xx response degrades to an empty envelope so
// the list view keeps rendering.
func (c *Client) ListActivities(ctx context.Context, status model.Status, assignedTo string, page, perPage int) (model.ActivityPage, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	if assignedTo != "" {
		q.Set("assigned_to", assignedTo)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var out model.ActivityPage
	err := c.doJSON(ctx, http.MethodGet, "/activities", q, nil, &out)
	if err := bestEffort("list activities", err); err != nil {
		return model.ActivityPage{}, err
	}
	if out.Page == 0 {
		out = model.ActivityPage{Total: 0, Page: page, PerPage: perPage, Items: nil}
	}
	return out, nil
}

func (c *Client) CreateActivity(ctx context.Context, req CreateActivityRequest) (model.Activity, error) {
	var a model.Activity
	err := c.doJSON(ctx, http.MethodPost, "/activities", nil, req, &a)
	return a, err
}

func (c *Client) UpdateActivity(ctx context.Context, id int, update ActivityUpdate) (model.Activity, error) {
	var a model.Activity
	err := c.doJSON(ctx, http.MethodPatch, activityPath(id), nil, update, &a)
	return a, err
}

func (c *Client) DeleteActivity(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, activityPath(id), nil, nil, nil)
}

// ActivityHistory returns the audit trail of an activity. Best-effort.
func (c *Client) ActivityHistory(ctx context.Context, id int) ([]model.HistoryRecord, error) {
	var out []model.HistoryRecord
	err := c.doJSON(ctx, http.MethodGet, activityPath(id)+"/history", nil, nil, &out)
	if err := bestEffort("activity history", err); err != nil {
		return nil, err
	}
	return out, nil
}

// AssignActivity assigns an activity to a registered collaborator.
func (c *Client) AssignActivity(ctx context.Context, id, collaboratorID int) (model.Activity, error) {
	body := map[string]int{"collaborator_id": collaboratorID}
	var a model.Activity
	err := c.doJSON(ctx, http.MethodPost, activityPath(id)+"/assign", nil, body, &a)
	return a, err
}

// ListCollaborators lists the non-admin users eligible for assignment.
func (c *Client) ListCollaborators(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := c.doJSON(ctx, http.MethodGet, "/collaborators", nil, nil, &out)
	return out, err
}

// DueActivities lists activities due within the next `hours` hours.
func (c *Client) DueActivities(ctx context.Context, hours int) ([]model.DueActivity, error) {
	q := url.Values{"hours": {strconv.Itoa(hours)}}
	var out []model.DueActivity
	err := c.doJSON(ctx, http.MethodGet, "/activities/due", q, nil, &out)
	return out, err
}

// SendDueReminders asks the backend to email reminders for activities due
// within the next `hours` hours.
func (c *Client) SendDueReminders(ctx context.Context, hours int) (model.ReminderSummary, error) {
	q := url.Values{"hours": {strconv.Itoa(hours)}}
	var out model.ReminderSummary
	err := c.doJSON(ctx, http.MethodPost, "/activities/due/send-reminders", q, nil, &out)
	return out, err
}

// ExportCSV downloads the activity report, optionally filtered by status.
func (c *Client) ExportCSV(ctx context.Context, status model.Status) ([]byte, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	return c.doRaw(ctx, http.MethodGet, "/activities/export/csv", q)
}

// ExportWeeklyCSV downloads the report of activities from the last `days`
// days.
func (c *Client) ExportWeeklyCSV(ctx context.Context, days int) ([]byte, error) {
	q := url.Values{"days": {strconv.Itoa(days)}}
	return c.doRaw(ctx, http.MethodGet, "/activities/export/weekly", q)
}

func activityPath(id int) string {
	return fmt.Sprintf("/activities/%d", id)
}
