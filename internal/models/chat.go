package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is one stored exchange: the farmer's message and the
// advisor's response sharing a single timestamp.
type Conversation struct {
	ID           uuid.UUID `json:"id"`
	SeasonID     uuid.UUID `json:"season_id"`
	UserID       uuid.UUID `json:"user_id"`
	Message      string    `json:"message"`
	Response     string    `json:"response"`
	ActiveAgents []string  `json:"active_agents"`
	Phase        string    `json:"phase"`
	CreatedAt    time.Time `json:"created_at"`
}

type ChatRequest struct {
	Message  string `json:"message"`
	SeasonID string `json:"season_id,omitempty"`
}

// ChatResponse always carries the effective season id so the client can
// adopt a server-issued one.
type ChatResponse struct {
	Success        bool   `json:"success"`
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id,omitempty"`
	MessageID      string `json:"message_id,omitempty"`
	SeasonID       string `json:"season_id,omitempty"`
}

type HistoryItem struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
	SeasonID  string    `json:"season_id"`
}

type HistoryResponse struct {
	Success       bool          `json:"success"`
	Conversations []HistoryItem `json:"conversations"`
}
