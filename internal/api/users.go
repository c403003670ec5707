package api

import (
	"context"
	"net/http"
	"strings"

	"kale-admin/internal/model"
)

func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.do(ctx, http.MethodGet, epUsers, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type UserPayload struct {
	Username string     `json:"username,omitempty"`
	Email    string     `json:"email,omitempty"`
	Password string     `json:"password,omitempty"`
	Role     model.Role `json:"role,omitempty"`
	IsActive *bool      `json:"isActive,omitempty"`
}

func (c *Client) CreateUser(ctx context.Context, p UserPayload) error {
	return c.do(ctx, http.MethodPost, epUsers, p, nil)
}

func (c *Client) UpdateUser(ctx context.Context, id string, p UserPayload) error {
	return c.do(ctx, http.MethodPut, epUserByID(strings.TrimSpace(id)), p, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, epUserByID(strings.TrimSpace(id)), nil, nil)
}
