package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"artes-cli/internal/model"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new collaborator account. No token required.
func (c *Client) Register(ctx context.Context, username, password string) (model.User, error) {
	var u model.User
	err := c.doJSON(ctx, http.MethodPost, "/register", nil, credentials{Username: username, Password: password}, &u)
	return u, err
}

// Login exchanges credentials for a bearer token. The backend speaks the
// OAuth2 password flow, so this is form-encoded rather than JSON.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/token", nil, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeError(resp)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := decodeJSONBody(resp, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Me returns the authenticated user, including the role that gates
// admin-only actions.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var u model.User
	err := c.doJSON(ctx, http.MethodGet, "/me", nil, nil, &u)
	return u, err
}

// GetInvitation previews an invitation before accepting it. No token
// required; an invalid or expired token yields an *APIError.
func (c *Client) GetInvitation(ctx context.Context, token string) (model.InvitationPreview, error) {
	var p model.InvitationPreview
	err := c.doJSON(ctx, http.MethodGet, "/invite/"+url.PathEscape(token)+"", nil, nil, &p)
	return p, err
}

// AcceptInvitation exchanges an invitation token plus desired credentials
// for a session token. The guest account is created on the fly when the
// username is new.
func (c *Client) AcceptInvitation(ctx context.Context, token, username, password string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/invite/"+url.PathEscape(token)+"/accept-login", nil,
		credentials{Username: username, Password: password}, &out)
	if err != nil {
		return "", err
	}
	return out.AccessToken, nil
}
