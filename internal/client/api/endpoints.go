package api

import (
	"context"
	"net/http"

	"fasalmitra/internal/models"
)

// Register creates an account. No auth is attached; the returned token is
// what the caller should persist.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.TokenResponse, error) {
	req := models.RegisterRequest{Name: name, Email: email, Password: password}
	var resp models.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	req := models.LoginRequest{Email: email, Password: password}
	var resp models.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me validates the stored credentials against the server and returns the
// account they belong to.
func (c *Client) Me(ctx context.Context) (*models.UserResponse, error) {
	var resp models.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendMessage submits a chat message. seasonID may be empty, in which case
// the server resolves or creates a season and reports its id back.
func (c *Client) SendMessage(ctx context.Context, message, seasonID string) (*models.ChatResponse, error) {
	req := models.ChatRequest{Message: message, SeasonID: seasonID}
	var resp models.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat/", req, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) History(ctx context.Context) (*models.HistoryResponse, error) {
	var resp models.HistoryResponse
	if err := c.do(ctx, http.MethodGet, "/api/chat/history", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateSeason(ctx context.Context, req models.CreateSeasonRequest) (*models.SeasonResponse, error) {
	var resp models.SeasonResponse
	if err := c.do(ctx, http.MethodPost, "/api/seasons/", req, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListSeasons(ctx context.Context) (*models.SeasonsResponse, error) {
	var resp models.SeasonsResponse
	if err := c.do(ctx, http.MethodGet, "/api/seasons/", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CurrentSeason(ctx context.Context) (*models.CurrentSeasonResponse, error) {
	var resp models.CurrentSeasonResponse
	if err := c.do(ctx, http.MethodGet, "/api/crop/current-season", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}
