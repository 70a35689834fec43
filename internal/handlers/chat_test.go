package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"fasalmitra/internal/models"
)

type stubChatService struct {
	sendResp    *models.ChatResponse
	historyResp *models.HistoryResponse
	lastReq     models.ChatRequest
}

func (s *stubChatService) Send(ctx context.Context, userID uuid.UUID, req models.ChatRequest) (*models.ChatResponse, error) {
	s.lastReq = req
	return s.sendResp, nil
}

func (s *stubChatService) History(ctx context.Context, userID uuid.UUID) (*models.HistoryResponse, error) {
	return s.historyResp, nil
}

func TestChatSend_EmptyMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewChatHandler(&stubChatService{})

			body, _ := json.Marshal(models.ChatRequest{Message: tc.message})
			req := httptest.NewRequest(http.MethodPost, "/api/chat/", bytes.NewReader(body))
			rr := httptest.NewRecorder()

			h.Send(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Detail != "Message is required" {
				t.Errorf("Expected 'Message is required', got %q", resp.Detail)
			}
		})
	}
}

func TestChatSend_ReturnsSeasonID(t *testing.T) {
	stub := &stubChatService{
		sendResp: &models.ChatResponse{
			Success:        true,
			Response:       "Loamy soil suits wheat well.",
			ConversationID: "c1",
			MessageID:      "m1",
			SeasonID:       "season-123",
		},
	}
	h := NewChatHandler(stub)

	body, _ := json.Marshal(models.ChatRequest{Message: "What should I grow?", SeasonID: "season-123"})
	req := httptest.NewRequest(http.MethodPost, "/api/chat/", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.Send(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if stub.lastReq.SeasonID != "season-123" {
		t.Errorf("Expected season id forwarded to service, got %q", stub.lastReq.SeasonID)
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.SeasonID != "season-123" {
		t.Errorf("Expected season_id in response, got %q", resp.SeasonID)
	}
	if !resp.Success {
		t.Error("Expected success true")
	}
}

func TestChatHistory(t *testing.T) {
	h := NewChatHandler(&stubChatService{
		historyResp: &models.HistoryResponse{
			Success: true,
			Conversations: []models.HistoryItem{
				{ID: "c2", Message: "latest", Response: "r2"},
				{ID: "c1", Message: "older", Response: "r1"},
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history", nil)
	rr := httptest.NewRecorder()

	h.History(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp models.HistoryResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Conversations) != 2 {
		t.Fatalf("Expected 2 conversations, got %d", len(resp.Conversations))
	}
	if resp.Conversations[0].ID != "c2" {
		t.Errorf("Expected newest conversation first, got %q", resp.Conversations[0].ID)
	}
}
