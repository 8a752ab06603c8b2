package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListGoals returns every goal across all sites.
func (c *Client) ListGoals(ctx context.Context, token string) ([]Goal, error) {
	var goals []Goal
	if err := c.do(ctx, token, http.MethodGet, "/goals", nil, nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// GetGoal fetches one goal by numeric ID.
func (c *Client) GetGoal(ctx context.Context, token string, id int) (*Goal, error) {
	var goal Goal
	if err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/goals/%d", id), nil, nil, &goal); err != nil {
		return nil, asNotFound(err, "goal", id)
	}
	return &goal, nil
}

// CreateGoal creates a new goal.
func (c *Client) CreateGoal(ctx context.Context, token string, req CreateGoalRequest) (*Goal, error) {
	var goal Goal
	if err := c.do(ctx, token, http.MethodPost, "/goals", nil, req, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal performs a full update of a goal.
func (c *Client) UpdateGoal(ctx context.Context, token string, id int, req UpdateGoalRequest) (*Goal, error) {
	var goal Goal
	if err := c.do(ctx, token, http.MethodPut, fmt.Sprintf("/goals/%d", id), nil, req, &goal); err != nil {
		return nil, asNotFound(err, "goal", id)
	}
	return &goal, nil
}

// PatchGoal performs a partial update of a goal.
func (c *Client) PatchGoal(ctx context.Context, token string, id int, req UpdateGoalRequest) (*Goal, error) {
	var goal Goal
	if err := c.do(ctx, token, http.MethodPatch, fmt.Sprintf("/goals/%d", id), nil, req, &goal); err != nil {
		return nil, asNotFound(err, "goal", id)
	}
	return &goal, nil
}

// DeleteGoal permanently deletes a goal.
func (c *Client) DeleteGoal(ctx context.Context, token string, id int) error {
	if err := c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/goals/%d", id), nil, nil, nil); err != nil {
		return asNotFound(err, "goal", id)
	}
	return nil
}
