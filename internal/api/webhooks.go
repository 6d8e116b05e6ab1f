package api

import (
	"context"
	"fmt"
	"net/http"

	"artes-cli/internal/model"
)

// CreateWebhook registers a URL to be notified on activity events. Event
// "*" subscribes to everything.
func (c *Client) CreateWebhook(ctx context.Context, url, event string) (model.Webhook, error) {
	body := map[string]string{"url": url, "event": event}
	var w model.Webhook
	err := c.doJSON(ctx, http.MethodPost, "/webhooks", nil, body, &w)
	return w, err
}

// ListWebhooks returns the registered webhooks. Best-effort.
func (c *Client) ListWebhooks(ctx context.Context) ([]model.Webhook, error) {
	var out []model.Webhook
	err := c.doJSON(ctx, http.MethodGet, "/webhooks", nil, nil, &out)
	if err := bestEffort("list webhooks", err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteWebhook(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/webhooks/%d", id), nil, nil, nil)
}
