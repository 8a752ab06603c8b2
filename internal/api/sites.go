package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	json "github.com/goccy/go-json"
)

// ListSites returns every site visible to the token.
func (c *Client) ListSites(ctx context.Context, token string) ([]Site, error) {
	var sites []Site
	if err := c.do(ctx, token, http.MethodGet, "/sites", nil, nil, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

// GetSite fetches one site by numeric ID.
func (c *Client) GetSite(ctx context.Context, token string, id int) (*Site, error) {
	var site Site
	if err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/sites/%d", id), nil, nil, &site); err != nil {
		return nil, asNotFound(err, "site", id)
	}
	return &site, nil
}

// GetSiteByCode fetches a site by its code via a collection filter. The
// remote may answer with a single object or an array; for an array the first
// element wins. An empty array is a not-found.
func (c *Client) GetSiteByCode(ctx context.Context, token, code string) (*Site, error) {
	query := url.Values{}
	query.Set("code", code)

	var raw json.RawMessage
	if err := c.do(ctx, token, http.MethodGet, "/sites", query, nil, &raw); err != nil {
		return nil, asNotFound(err, "site", code)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var sites []Site
		if err := json.Unmarshal(trimmed, &sites); err != nil {
			return nil, fmt.Errorf("failed to decode site list: %w", err)
		}
		if len(sites) == 0 {
			return nil, &NotFoundError{Resource: "site", ID: code}
		}
		return &sites[0], nil
	}

	var site Site
	if err := json.Unmarshal(trimmed, &site); err != nil {
		return nil, fmt.Errorf("failed to decode site: %w", err)
	}
	if site.ID == 0 {
		return nil, &NotFoundError{Resource: "site", ID: code}
	}
	return &site, nil
}

// CreateSite creates a new site.
func (c *Client) CreateSite(ctx context.Context, token string, req CreateSiteRequest) (*Site, error) {
	var site Site
	if err := c.do(ctx, token, http.MethodPost, "/sites", nil, req, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

// UpdateSite performs a full update of a site.
func (c *Client) UpdateSite(ctx context.Context, token string, id int, req UpdateSiteRequest) (*Site, error) {
	var site Site
	if err := c.do(ctx, token, http.MethodPut, fmt.Sprintf("/sites/%d", id), nil, req, &site); err != nil {
		return nil, asNotFound(err, "site", id)
	}
	return &site, nil
}

// PatchSite performs a partial update of a site.
func (c *Client) PatchSite(ctx context.Context, token string, id int, req UpdateSiteRequest) (*Site, error) {
	var site Site
	if err := c.do(ctx, token, http.MethodPatch, fmt.Sprintf("/sites/%d", id), nil, req, &site); err != nil {
		return nil, asNotFound(err, "site", id)
	}
	return &site, nil
}

// UpdateTrackingScript replaces only the site's tracking script.
func (c *Client) UpdateTrackingScript(ctx context.Context, token string, id int, script string) (*Site, error) {
	body := struct {
		TrackingScript string `json:"trackingScript"`
	}{TrackingScript: script}

	var site Site
	if err := c.do(ctx, token, http.MethodPatch, fmt.Sprintf("/sites/%d", id), nil, body, &site); err != nil {
		return nil, asNotFound(err, "site", id)
	}
	return &site, nil
}

// DeleteSite permanently deletes a site.
func (c *Client) DeleteSite(ctx context.Context, token string, id int) error {
	if err := c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/sites/%d", id), nil, nil, nil); err != nil {
		return asNotFound(err, "site", id)
	}
	return nil
}
