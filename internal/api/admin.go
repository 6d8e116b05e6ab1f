package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"artes-cli/internal/model"
)

// NewUserRequest is the payload for the admin user-creation endpoints.
type NewUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// UpdateUserRole changes a user's role. Admin only.
func (c *Client) UpdateUserRole(ctx context.Context, userID int, role string) error {
	q := url.Values{"role": {role}}
	return c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/admin/users/%d/role", userID), q, nil, nil)
}

// DeleteUser removes a user account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%d", userID), nil, nil, nil)
}

// CreateAdminUser creates a user with the admin role. Admin only.
func (c *Client) CreateAdminUser(ctx context.Context, req NewUserRequest) (model.User, error) {
	var u model.User
	err := c.doJSON(ctx, http.MethodPost, "/admin/admin-users", nil, req, &u)
	return u, err
}

// CreateCoreUser creates a core-team user. Admin only.
func (c *Client) CreateCoreUser(ctx context.Context, req NewUserRequest) (model.User, error) {
	var u model.User
	err := c.doJSON(ctx, http.MethodPost, "/admin/core-users", nil, req, &u)
	return u, err
}
