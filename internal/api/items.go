package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"kale-admin/internal/model"
)

// MenuItems fetches one kind's items. Category references arrive either as
// bare ids or populated objects; model.CategoryRef normalizes both.
func (c *Client) MenuItems(ctx context.Context, kind model.MenuKind) ([]model.MenuItem, error) {
	var out []model.MenuItem
	if err := c.do(ctx, http.MethodGet, epMenuItems(kind), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type MenuItemPayload struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
}

func (c *Client) AddMenuItem(ctx context.Context, kind model.MenuKind, p MenuItemPayload) error {
	return c.do(ctx, http.MethodPost, epAddMenuItem(kind), p, nil)
}

func (c *Client) UpdateMenuItem(ctx context.Context, kind model.MenuKind, id string, p MenuItemPayload) error {
	return c.do(ctx, http.MethodPut, epUpdateMenuItem(kind, strings.TrimSpace(id)), p, nil)
}

func (c *Client) DeleteMenuItem(ctx context.Context, kind model.MenuKind, id string) error {
	return c.do(ctx, http.MethodDelete, epDeleteMenuItem(kind, strings.TrimSpace(id)), nil, nil)
}

// SearchDrinks is the one server-side search the service offers.
func (c *Client) SearchDrinks(ctx context.Context, query string) ([]model.MenuItem, error) {
	var out []model.MenuItem
	path := epSearchDrink + "?q=" + url.QueryEscape(strings.TrimSpace(query))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
