package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListCustomData returns every custom data definition across all sites.
func (c *Client) ListCustomData(ctx context.Context, token string) ([]CustomData, error) {
	var list []CustomData
	if err := c.do(ctx, token, http.MethodGet, "/custom-datas", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetCustomData fetches one custom data definition by numeric ID.
func (c *Client) GetCustomData(ctx context.Context, token string, id int) (*CustomData, error) {
	var cd CustomData
	if err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/custom-datas/%d", id), nil, nil, &cd); err != nil {
		return nil, asNotFound(err, "custom data", id)
	}
	return &cd, nil
}

// CreateCustomData creates a new custom data definition.
func (c *Client) CreateCustomData(ctx context.Context, token string, req CreateCustomDataRequest) (*CustomData, error) {
	var cd CustomData
	if err := c.do(ctx, token, http.MethodPost, "/custom-datas", nil, req, &cd); err != nil {
		return nil, err
	}
	return &cd, nil
}

// UpdateCustomData performs a full update of a custom data definition.
func (c *Client) UpdateCustomData(ctx context.Context, token string, id int, req UpdateCustomDataRequest) (*CustomData, error) {
	var cd CustomData
	if err := c.do(ctx, token, http.MethodPut, fmt.Sprintf("/custom-datas/%d", id), nil, req, &cd); err != nil {
		return nil, asNotFound(err, "custom data", id)
	}
	return &cd, nil
}

// PatchCustomData performs a partial update of a custom data definition.
func (c *Client) PatchCustomData(ctx context.Context, token string, id int, req UpdateCustomDataRequest) (*CustomData, error) {
	var cd CustomData
	if err := c.do(ctx, token, http.MethodPatch, fmt.Sprintf("/custom-datas/%d", id), nil, req, &cd); err != nil {
		return nil, asNotFound(err, "custom data", id)
	}
	return &cd, nil
}

// DeleteCustomData permanently deletes a custom data definition.
func (c *Client) DeleteCustomData(ctx context.Context, token string, id int) error {
	if err := c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/custom-datas/%d", id), nil, nil, nil); err != nil {
		return asNotFound(err, "custom data", id)
	}
	return nil
}
