/**
 * @description
 * This package provides a client for the core-banking account API, the remote
 * authority behind the back-office dashboard. It encapsulates authenticated
 * HTTP calls for the account CRUD and status endpoints.
 *
 * Key features:
 * - Manages the API base URL and key.
 * - One method per core endpoint; a shared `do` helper handles JSON
 *   serialization, headers and error decoding.
 * - Non-2xx responses become a typed *APIError carrying the status code and
 *   the server's message body, so callers can distinguish transport failures,
 *   server-reported failures and not-found.
 *
 * @dependencies
 * - bytes, context, encoding/json, fmt, io, net/http, time: Standard Go libraries.
 * - The service's internal domain package for the account models.
 */
package corebank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/atharibank/backoffice-service/internal/domain"
)

// APIError is a non-2xx response from the core-banking API.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("core-banking API error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("core-banking API error: status %d", e.StatusCode)
}

// IsNotFound reports whether err is an APIError with a 404 status.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client is a client for the core-banking account API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new core-banking API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListAccounts fetches the full account list.
func (c *Client) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	url := fmt.Sprintf("%s/accounts", c.baseURL)
	var accounts []domain.Account
	if err := c.do(ctx, http.MethodGet, url, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAccount fetches a single account by id.
func (c *Client) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	url := fmt.Sprintf("%s/accounts/%s", c.baseURL, id)
	var account domain.Account
	if err := c.do(ctx, http.MethodGet, url, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount opens a new account.
func (c *Client) CreateAccount(ctx context.Context, payload domain.CreateAccountPayload) (*domain.Account, error) {
	url := fmt.Sprintf("%s/accounts", c.baseURL)
	var account domain.Account
	if err := c.do(ctx, http.MethodPost, url, payload, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccount applies a partial update to an existing account.
func (c *Client) UpdateAccount(ctx context.Context, id string, payload domain.UpdateAccountPayload) (*domain.Account, error) {
	url := fmt.Sprintf("%s/accounts/%s", c.baseURL, id)
	var account domain.Account
	if err := c.do(ctx, http.MethodPut, url, payload, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteAccount removes an account.
func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/accounts/%s", c.baseURL, id)
	return c.do(ctx, http.MethodDelete, url, nil, nil)
}

// UpdateAccountStatus transitions an account to a new lifecycle status. The
// core is the authority on which transitions are allowed.
func (c *Client) UpdateAccountStatus(ctx context.Context, id string, status domain.AccountStatus) (*domain.Account, error) {
	url := fmt.Sprintf("%s/accounts/%s/status", c.baseURL, id)
	body := struct {
		Status domain.AccountStatus `json:"status"`
	}{Status: status}
	var account domain.Account
	if err := c.do(ctx, http.MethodPatch, url, body, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// errorBody is the shape the core uses for failure responses. Some endpoints
// use "message", older ones "error".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do is a helper to make HTTP requests to the core-banking API.
func (c *Client) do(ctx context.Context, method, url string, body, target interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("level=warn component=corebank msg=\"non-success response\" method=%s url=%s status=%d", method, url, resp.StatusCode)
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var decoded errorBody
		if json.Unmarshal(respBody, &decoded) == nil {
			if decoded.Message != "" {
				apiErr.Message = decoded.Message
			} else {
				apiErr.Message = decoded.Error
			}
		}
		return apiErr
	}

	if target != nil {
		if err := json.Unmarshal(respBody, target); err != nil {
			return fmt.Errorf("failed to unmarshal response body: %w", err)
		}
	}

	return nil
}
