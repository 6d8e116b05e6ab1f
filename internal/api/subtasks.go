package api

import (
	"context"
	"fmt"
	"net/http"

	"artes-cli/internal/model"
)

type SubtaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// SubtaskUpdate carries the partial fields of a subtask PATCH.
type SubtaskUpdate struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      *model.Status `json:"status,omitempty"`
}

func (c *Client) CreateSubtask(ctx context.Context, activityID int, req SubtaskRequest) (model.Subtask, error) {
	var s model.Subtask
	err := c.doJSON(ctx, http.MethodPost, subtasksPath(activityID), nil, req, &s)
	return s, err
}

// ListSubtasks returns an activity's subtasks. Best-effort: the subtask
// panel is optional and must not block the list view.
func (c *Client) ListSubtasks(ctx context.Context, activityID int) ([]model.Subtask, error) {
	var out []model.Subtask
	err := c.doJSON(ctx, http.MethodGet, subtasksPath(activityID), nil, nil, &out)
	if err := bestEffort("list subtasks", err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateSubtask(ctx context.Context, activityID, subtaskID int, req SubtaskUpdate) (model.Subtask, error) {
	var s model.Subtask
	err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("%s/%d", subtasksPath(activityID), subtaskID), nil, req, &s)
	return s, err
}

func (c *Client) DeleteSubtask(ctx context.Context, activityID, subtaskID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", subtasksPath(activityID), subtaskID), nil, nil, nil)
}

func subtasksPath(activityID int) string {
	return fmt.Sprintf("/activities/%d/subtasks", activityID)
}
