package api

import (
	"context"
	"net/http"

	"artes-cli/internal/model"
)

// WeeklyDashboard fetches the last-7-days status aggregate. Best-effort:
// the backend answers 403 for non-admins and the dashboard panel simply
// stays absent, so a nil dashboard with no error is a valid outcome.
func (c *Client) WeeklyDashboard(ctx context.Context) (*model.WeeklyDashboard, error) {
	var d model.WeeklyDashboard
	err := c.doJSON(ctx, http.MethodGet, "/dashboard/weekly", nil, nil, &d)
	if err := bestEffort("weekly dashboard", err); err != nil {
		return nil, err
	}
	if err != nil {
		return nil, nil
	}
	return &d, nil
}
