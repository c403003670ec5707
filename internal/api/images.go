package api

import (
	"context"
	"io"
	"net/http"
	"strings"

	"kale-admin/internal/model"
)

func (c *Client) Images(ctx context.Context, scope ImageScope) ([]model.ImageAsset, error) {
	var out []model.ImageAsset
	if err := c.do(ctx, http.MethodGet, epImages(scope), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadImage posts one image as multipart/form-data. categoryID and
// displayName are optional; special images carry no category.
func (c *Client) UploadImage(ctx context.Context, scope ImageScope, filename string, file io.Reader, categoryID, displayName string) error {
	fields := map[string]string{
		"category": strings.TrimSpace(categoryID),
		"name":     strings.TrimSpace(displayName),
	}
	return c.upload(ctx, epAddImage(scope), filename, file, fields, nil)
}

func (c *Client) DeleteImage(ctx context.Context, scope ImageScope, id string) error {
	return c.do(ctx, http.MethodDelete, epDeleteImage(scope, strings.TrimSpace(id)), nil, nil)
}
