// Package chat maintains the client-side conversation thread and the
// optimistic-send flow around the chat endpoint.
package chat

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fasalmitra/internal/models"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one bubble in the thread.
type Message struct {
	ID        string
	Text      string
	Sender    string
	Timestamp time.Time
}

type sender interface {
	SendMessage(ctx context.Context, message, seasonID string) (*models.ChatResponse, error)
	History(ctx context.Context) (*models.HistoryResponse, error)
}

// Thread is the in-memory transcript plus the active season id. It is not
// safe for concurrent use; the REPL drives it from one goroutine.
type Thread struct {
	api      sender
	messages []Message
	seasonID string
	sending  bool

	// seams for deterministic tests
	now     func() time.Time
	randInt func(n int) int
}

func NewThread(api sender) *Thread {
	return &Thread{
		api:     api,
		now:     time.Now,
		randInt: rand.Intn,
	}
}

func (t *Thread) Messages() []Message { return t.messages }

func (t *Thread) SeasonID() string { return t.seasonID }

// Hydrate replaces the thread with the server-side history. Each stored
// exchange becomes a user message followed by the bot reply, both stamped
// with the exchange's timestamp, oldest first.
func (t *Thread) Hydrate(ctx context.Context) error {
	resp, err := t.api.History(ctx)
	if err != nil {
		return err
	}

	// History arrives newest first; the thread continues the most recent
	// season, so adopt its id before rebuilding chronologically.
	if t.seasonID == "" && len(resp.Conversations) > 0 {
		t.seasonID = resp.Conversations[0].SeasonID
	}
	thread := make([]Message, 0, len(resp.Conversations)*2)
	for i := len(resp.Conversations) - 1; i >= 0; i-- {
		record := resp.Conversations[i]
		thread = append(thread,
			Message{
				ID:        record.ID + ":user",
				Text:      record.Message,
				Sender:    SenderUser,
				Timestamp: record.CreatedAt,
			},
			Message{
				ID:        record.ID + ":bot",
				Text:      record.Response,
				Sender:    SenderBot,
				Timestamp: record.CreatedAt,
			},
		)
	}
	t.messages = thread
	return nil
}

// Send posts a message and appends the reply. The user's message is shown
// immediately and retracted if the request fails. A season id is
// synthesized before the first send; if the server resolves the message to
// a different season, the server's id wins.
func (t *Thread) Send(ctx context.Context, text string) (*Message, error) {
	if text == "" || t.sending {
		return nil, nil
	}
	t.sending = true
	defer func() { t.sending = false }()

	if t.seasonID == "" {
		t.seasonID = t.newSeasonID()
	}

	optimistic := Message{
		ID:        fmt.Sprintf("local-%d", t.now().UnixMilli()),
		Text:      text,
		Sender:    SenderUser,
		Timestamp: t.now(),
	}
	t.messages = append(t.messages, optimistic)

	resp, err := t.api.SendMessage(ctx, text, t.seasonID)
	if err != nil {
		t.messages = t.messages[:len(t.messages)-1]
		return nil, err
	}

	if resp.SeasonID != "" && resp.SeasonID != t.seasonID {
		t.seasonID = resp.SeasonID
	}

	reply := Message{
		ID:        resp.MessageID,
		Text:      resp.Response,
		Sender:    SenderBot,
		Timestamp: t.now(),
	}
	t.messages = append(t.messages, reply)
	return &reply, nil
}

// newSeasonID mints a client-side placeholder id: unix millis plus a short
// random suffix. The server may replace it with a real season id.
func (t *Thread) newSeasonID() string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = letters[t.randInt(len(letters))]
	}
	return fmt.Sprintf("season-%d-%s", t.now().UnixMilli(), suffix)
}
