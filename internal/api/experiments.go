package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// experimentActions maps a target experiment status to the action token the
// API expects as a query parameter on a partial update.
var experimentActions = map[string]string{
	ExperimentStatusActive:      "ACTIVATE",
	ExperimentStatusPaused:      "PAUSE",
	ExperimentStatusStopped:     "STOP",
	ExperimentStatusDeactivated: "DEACTIVATE",
}

// ListExperiments returns every experiment across all sites.
func (c *Client) ListExperiments(ctx context.Context, token string) ([]Experiment, error) {
	var experiments []Experiment
	if err := c.do(ctx, token, http.MethodGet, "/experiments", nil, nil, &experiments); err != nil {
		return nil, err
	}
	return experiments, nil
}

// GetExperiment fetches one experiment by numeric ID.
func (c *Client) GetExperiment(ctx context.Context, token string, id int) (*Experiment, error) {
	var experiment Experiment
	if err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/experiments/%d", id), nil, nil, &experiment); err != nil {
		return nil, asNotFound(err, "experiment", id)
	}
	return &experiment, nil
}

// CreateExperiment creates a new experiment.
func (c *Client) CreateExperiment(ctx context.Context, token string, req CreateExperimentRequest) (*Experiment, error) {
	var experiment Experiment
	if err := c.do(ctx, token, http.MethodPost, "/experiments", nil, req, &experiment); err != nil {
		return nil, err
	}
	return &experiment, nil
}

// UpdateExperiment performs a partial update. A status change is translated
// into the corresponding ?action= query parameter and stripped from the body;
// callers always pass the target status, never the action.
func (c *Client) UpdateExperiment(ctx context.Context, token string, id int, req UpdateExperimentRequest) (*Experiment, error) {
	var query url.Values
	if req.Status != "" {
		if action, ok := experimentActions[req.Status]; ok {
			query = url.Values{}
			query.Set("action", action)
		}
		req.Status = ""
	}

	var experiment Experiment
	if err := c.do(ctx, token, http.MethodPatch, fmt.Sprintf("/experiments/%d", id), query, req, &experiment); err != nil {
		return nil, asNotFound(err, "experiment", id)
	}
	return &experiment, nil
}

// UpdateExperimentStatus changes only the experiment's status.
func (c *Client) UpdateExperimentStatus(ctx context.Context, token string, id int, status string) (*Experiment, error) {
	return c.UpdateExperiment(ctx, token, id, UpdateExperimentRequest{Status: status})
}

// RestartExperiment restarts a stopped or completed experiment, resetting
// its collected data. The endpoint path differs from the other verbs.
func (c *Client) RestartExperiment(ctx context.Context, token string, id int) error {
	if err := c.do(ctx, token, http.MethodPost, fmt.Sprintf("/experiments/restart/%d", id), nil, struct{}{}, nil); err != nil {
		return asNotFound(err, "experiment", id)
	}
	return nil
}

// DeleteExperiment permanently deletes an experiment.
func (c *Client) DeleteExperiment(ctx context.Context, token string, id int) error {
	if err := c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/experiments/%d", id), nil, nil, nil); err != nil {
		return asNotFound(err, "experiment", id)
	}
	return nil
}
