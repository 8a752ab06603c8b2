package api

import (
	"context"
	"fmt"
	"net/http"
)

// GetSegment fetches one audience segment by numeric ID.
func (c *Client) GetSegment(ctx context.Context, token string, id int) (*Segment, error) {
	var segment Segment
	if err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/segments/%d", id), nil, nil, &segment); err != nil {
		return nil, asNotFound(err, "segment", id)
	}
	return &segment, nil
}

// CreateSegment creates a new audience segment.
func (c *Client) CreateSegment(ctx context.Context, token string, req CreateSegmentRequest) (*Segment, error) {
	var segment Segment
	if err := c.do(ctx, token, http.MethodPost, "/segments", nil, req, &segment); err != nil {
		return nil, err
	}
	return &segment, nil
}
