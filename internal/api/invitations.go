package api

import (
	"context"
	"fmt"
	"net/http"

	"artes-cli/internal/model"
)

// CreateInvitation emails a guest invitation for an activity and returns
// the created invitation, including its one-use token.
func (c *Client) CreateInvitation(ctx context.Context, activityID int, invitedEmail string) (model.Invitation, error) {
	body := map[string]string{"invited_email": invitedEmail}
	var inv model.Invitation
	err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/activities/%d/invite", activityID), nil, body, &inv)
	return inv, err
}

// ListInvitations returns an activity's invitations. Best-effort.
func (c *Client) ListInvitations(ctx context.Context, activityID int) ([]model.Invitation, error) {
	var out []model.Invitation
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/activities/%d/invitations", activityID), nil, nil, &out)
	if err := bestEffort("list invitations", err); err != nil {
		return nil, err
	}
	return out, nil
}
