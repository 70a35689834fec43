package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fasalmitra/internal/models"
)

type stubSender struct {
	sendResp    *models.ChatResponse
	sendErr     error
	historyResp *models.HistoryResponse
	lastMessage string
	lastSeason  string
	sendCalls   int
}

func (s *stubSender) SendMessage(ctx context.Context, message, seasonID string) (*models.ChatResponse, error) {
	s.sendCalls++
	s.lastMessage = message
	s.lastSeason = seasonID
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return s.sendResp, nil
}

func (s *stubSender) History(ctx context.Context) (*models.HistoryResponse, error) {
	return s.historyResp, nil
}

func fixedThread(api *stubSender) *Thread {
	t := NewThread(api)
	t.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	t.randInt = func(n int) int { return 0 }
	return t
}

func TestHydrate_BuildsChronologicalPairs(t *testing.T) {
	older := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 7, 2, 10, 0, 0, 0, time.UTC)

	// The server returns history newest first.
	api := &stubSender{historyResp: &models.HistoryResponse{
		Success: true,
		Conversations: []models.HistoryItem{
			{ID: "c2", Message: "q2", Response: "a2", CreatedAt: newer, SeasonID: "s1"},
			{ID: "c1", Message: "q1", Response: "a1", CreatedAt: older, SeasonID: "s1"},
		},
	}}
	thread := fixedThread(api)

	require.NoError(t, thread.Hydrate(context.Background()))

	messages := thread.Messages()
	require.Len(t, messages, 4)

	assert.Equal(t, "q1", messages[0].Text)
	assert.Equal(t, SenderUser, messages[0].Sender)
	assert.Equal(t, "a1", messages[1].Text)
	assert.Equal(t, SenderBot, messages[1].Sender)
	assert.Equal(t, "q2", messages[2].Text)
	assert.Equal(t, "a2", messages[3].Text)

	// Question and answer share the exchange timestamp.
	assert.Equal(t, older, messages[0].Timestamp)
	assert.Equal(t, older, messages[1].Timestamp)

	assert.Equal(t, "s1", thread.SeasonID())
}

func TestHydrate_AdoptsLatestSeason(t *testing.T) {
	older := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 7, 2, 10, 0, 0, 0, time.UTC)

	// Two seasons in the history; the thread must continue the newest one.
	api := &stubSender{historyResp: &models.HistoryResponse{
		Success: true,
		Conversations: []models.HistoryItem{
			{ID: "c2", Message: "q2", Response: "a2", CreatedAt: newer, SeasonID: "s-new"},
			{ID: "c1", Message: "q1", Response: "a1", CreatedAt: older, SeasonID: "s-old"},
		},
	}}
	thread := fixedThread(api)

	require.NoError(t, thread.Hydrate(context.Background()))
	assert.Equal(t, "s-new", thread.SeasonID())

	// Sends after hydration stay in that season.
	api.sendResp = &models.ChatResponse{Success: true, Response: "ok", SeasonID: "s-new"}
	_, err := thread.Send(context.Background(), "next question")
	require.NoError(t, err)
	assert.Equal(t, "s-new", api.lastSeason)
}

func TestSend_AppendsUserThenBot(t *testing.T) {
	api := &stubSender{sendResp: &models.ChatResponse{
		Success:   true,
		Response:  "Sow wheat in November.",
		MessageID: "m1",
		SeasonID:  "season-from-server",
	}}
	thread := fixedThread(api)

	reply, err := thread.Send(context.Background(), "when to sow wheat?")
	require.NoError(t, err)
	require.NotNil(t, reply)

	messages := thread.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, SenderUser, messages[0].Sender)
	assert.Equal(t, "when to sow wheat?", messages[0].Text)
	assert.Equal(t, SenderBot, messages[1].Sender)
	assert.Equal(t, "Sow wheat in November.", messages[1].Text)
}

func TestSend_SynthesizesSeasonIDBeforeCall(t *testing.T) {
	api := &stubSender{sendResp: &models.ChatResponse{Success: true, Response: "ok"}}
	thread := fixedThread(api)

	_, err := thread.Send(context.Background(), "hello")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(api.lastSeason, "season-"), "season id sent to server: %q", api.lastSeason)
	assert.Contains(t, api.lastSeason, "aaaaaa", "suffix comes from the random seam")
}

func TestSend_AdoptsServerSeasonID(t *testing.T) {
	api := &stubSender{sendResp: &models.ChatResponse{Success: true, Response: "ok", SeasonID: "real-season"}}
	thread := fixedThread(api)

	_, err := thread.Send(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, "real-season", thread.SeasonID())

	// The adopted id is reused on the next send.
	_, err = thread.Send(context.Background(), "again")
	require.NoError(t, err)
	assert.Equal(t, "real-season", api.lastSeason)
}

func TestSend_RetractsOptimisticMessageOnFailure(t *testing.T) {
	api := &stubSender{sendErr: assert.AnError}
	thread := fixedThread(api)

	_, err := thread.Send(context.Background(), "hello")

	assert.Error(t, err)
	assert.Empty(t, thread.Messages(), "failed sends leave no trace in the thread")
}

func TestSend_EmptyMessageIsNoOp(t *testing.T) {
	api := &stubSender{}
	thread := fixedThread(api)

	reply, err := thread.Send(context.Background(), "")

	assert.NoError(t, err)
	assert.Nil(t, reply)
	assert.Zero(t, api.sendCalls)
}

func TestSend_IgnoredWhileRequestInFlight(t *testing.T) {
	api := &stubSender{}
	thread := fixedThread(api)
	thread.sending = true

	reply, err := thread.Send(context.Background(), "hello")

	assert.NoError(t, err)
	assert.Nil(t, reply)
	assert.Zero(t, api.sendCalls)
	assert.Empty(t, thread.Messages())
}
