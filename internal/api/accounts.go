package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListAccounts returns every account visible to the token.
func (c *Client) ListAccounts(ctx context.Context, token string) ([]Account, error) {
	var accounts []Account
	if err := c.do(ctx, token, http.MethodGet, "/accounts", nil, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAccount fetches one account by numeric ID.
func (c *Client) GetAccount(ctx context.Context, token string, id int) (*Account, error) {
	var account Account
	if err := c.do(ctx, token, http.MethodGet, fmt.Sprintf("/accounts/%d", id), nil, nil, &account); err != nil {
		return nil, asNotFound(err, "account", id)
	}
	return &account, nil
}

// CreateAccount creates a new user account.
func (c *Client) CreateAccount(ctx context.Context, token string, req CreateAccountRequest) (*Account, error) {
	var account Account
	if err := c.do(ctx, token, http.MethodPost, "/accounts", nil, req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccount performs a partial update of an account.
func (c *Client) UpdateAccount(ctx context.Context, token string, id int, req UpdateAccountRequest) (*Account, error) {
	var account Account
	if err := c.do(ctx, token, http.MethodPatch, fmt.Sprintf("/accounts/%d", id), nil, req, &account); err != nil {
		return nil, asNotFound(err, "account", id)
	}
	return &account, nil
}

// DeleteAccount permanently deletes an account.
func (c *Client) DeleteAccount(ctx context.Context, token string, id int) error {
	if err := c.do(ctx, token, http.MethodDelete, fmt.Sprintf("/accounts/%d", id), nil, nil, nil); err != nil {
		return asNotFound(err, "account", id)
	}
	return nil
}
