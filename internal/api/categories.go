package api

import (
	"context"
	"net/http"
	"strings"

	"kale-admin/internal/model"
)

// Categories fetches every category across all menu kinds.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := c.do(ctx, http.MethodGet, epCategories, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CategoriesByKind fetches one kind's categories in the service's own order.
func (c *Client) CategoriesByKind(ctx context.Context, kind model.MenuKind) ([]model.Category, error) {
	var out []model.Category
	if err := c.do(ctx, http.MethodGet, epKindCategories(kind), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type CategoryPayload struct {
	Name     string         `json:"name"`
	Type     model.MenuKind `json:"type"`
	Order    *int           `json:"order,omitempty"`
	IsActive *bool          `json:"isActive,omitempty"`
}

func (c *Client) AddCategory(ctx context.Context, p CategoryPayload) error {
	return c.do(ctx, http.MethodPost, epAddCategory, p, nil)
}

type CategoryUpdate struct {
	Name     *string `json:"name,omitempty"`
	Order    *int    `json:"order,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func (c *Client) UpdateCategory(ctx context.Context, id string, upd CategoryUpdate) error {
	return c.do(ctx, http.MethodPut, epUpdateCategory(strings.TrimSpace(id)), upd, nil)
}

// UpdateCategoryOrder writes one category's order value. The service has no
// batch variant; the reorder engine fans out one call per category.
func (c *Client) UpdateCategoryOrder(ctx context.Context, id string, order int) error {
	return c.UpdateCategory(ctx, id, CategoryUpdate{Order: &order})
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, epDeleteCategory(strings.TrimSpace(id)), nil, nil)
}

// SeedCategories asks the service to install its default category set.
func (c *Client) SeedCategories(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, epSeedCategories, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
