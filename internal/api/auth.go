package api

import (
	"context"
	"net/http"

	"kale-admin/internal/model"
)

// LoginResult is the service's login payload: the bearer token plus the
// authenticated user's snapshot.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, creds model.Credentials) (LoginResult, error) {
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, epLogin, creds, &out); err != nil {
		return LoginResult{}, err
	}
	return out, nil
}

// Profile fetches the current user. It doubles as token verification: a stored
// token that no longer works fails here with Unauthorized.
func (c *Client) Profile(ctx context.Context) (model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodGet, epProfile, nil, &out); err != nil {
		return model.User{}, err
	}
	return out, nil
}

type ProfileUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (model.User, error) {
	var out struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, epProfile, upd, &out); err != nil {
		return model.User{}, err
	}
	return out.User, nil
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (c *Client) ChangePassword(ctx context.Context, chg PasswordChange) error {
	return c.do(ctx, http.MethodPut, epChangePassword, chg, nil)
}

// SeedAdmin asks the service to create its initial admin account. Only useful
// against a freshly provisioned backend.
func (c *Client) SeedAdmin(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, epSeedAdmin, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
