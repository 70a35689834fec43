// Package api is the typed HTTP client for the FasalMitra backend. Every
// call except login/register carries the stored credentials as HTTP Basic
// auth.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrNoCredentials means an authenticated call was attempted while
	// logged out.
	ErrNoCredentials = errors.New("no credentials available")

	// ErrMalformedCredentials means the stored credential string has no
	// "email:password" separator. The client fails closed rather than
	// sending a garbage auth header.
	ErrMalformedCredentials = errors.New("stored credentials are malformed")
)

// CredentialSource yields the stored "email:password" string.
type CredentialSource interface {
	Load() (string, error)
}

// APIError is a server-reported failure with the human-readable detail
// already extracted from the response body.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Detail)
}

type Client struct {
	baseURL string
	httpc   *http.Client
	creds   CredentialSource
}

func New(baseURL string, creds CredentialSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
		creds:   creds,
	}
}

// splitCredentials separates the stored string into the Basic auth
// username/password pair. Everything after the first colon is the
// password, so passwords may themselves contain colons.
func splitCredentials(credentials string) (string, string, error) {
	email, password, found := strings.Cut(credentials, ":")
	if !found || email == "" {
		return "", "", ErrMalformedCredentials
	}
	return email, password, nil
}

// do performs one JSON round trip. When authed is true the stored
// credentials are attached as Basic auth; malformed or missing
// credentials reject the request before it reaches the network.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authed {
		credentials, err := c.creds.Load()
		if err != nil {
			return ErrNoCredentials
		}
		email, password, err := splitCredentials(credentials)
		if err != nil {
			return err
		}
		req.SetBasicAuth(email, password)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Detail: extractDetail(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// extractDetail pulls a human-readable message out of an error body, in
// priority order: structured "detail" field, structured error.message,
// the raw body, then a generic fallback.
func extractDetail(body []byte) string {
	var structured struct {
		Detail string `json:"detail"`
		Error  struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &structured); err == nil {
		if structured.Detail != "" {
			return structured.Detail
		}
		if structured.Error.Message != "" {
			return structured.Error.Message
		}
	}

	if raw := strings.TrimSpace(string(body)); raw != "" {
		return raw
	}

	return "Something went wrong. Please try again."
}
