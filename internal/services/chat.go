package services

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fasalmitra/internal/advisor"
	"fasalmitra/internal/models"
	"fasalmitra/internal/repository"
)

const (
	// fallbackResponse is returned when the advisor team fails outright.
	fallbackResponse = "I'm analyzing your question about farming. To give you the best advice, could you share: your location, soil type, and what crops you're interested in?"

	// emptyResponse covers the rare case of a successful run with no text.
	emptyResponse = "Thank you for sharing that information. Can you tell me more about what specific farming challenge you'd like help with?"

	historyContextLimit = 100
	historyListLimit    = 50
)

// orchestrator is the slice of the advisor the chat service needs.
type orchestrator interface {
	Consult(ctx context.Context, seasonID, phase string, history []advisor.Exchange, message string) (*advisor.Result, error)
}

// translator moves non-English messages through the English-only agents.
type translator interface {
	ToEnglish(ctx context.Context, text, lang string) (string, bool, error)
	FromEnglish(ctx context.Context, text, lang string) (string, error)
}

type ChatService struct {
	convRepo   *repository.ConversationRepo
	seasonRepo *repository.SeasonRepo
	advisor    orchestrator
	translator translator
}

func NewChatService(convRepo *repository.ConversationRepo, seasonRepo *repository.SeasonRepo, adv orchestrator) *ChatService {
	return &ChatService{convRepo: convRepo, seasonRepo: seasonRepo, advisor: adv}
}

// WithTranslator enables multilingual chat. Without it, messages go to the
// agents untouched.
func (s *ChatService) WithTranslator(t translator) *ChatService {
	s.translator = t
	return s
}

// Send processes one farmer message: resolve (or create) the season, run
// the advisor, persist the exchange, and return the response. Advisor
// failures degrade to a fixed fallback text, never an error.
func (s *ChatService) Send(ctx context.Context, userID uuid.UUID, req models.ChatRequest) (*models.ChatResponse, error) {
	season, err := s.resolveSeason(ctx, userID, req.SeasonID)
	if err != nil {
		return nil, err
	}

	history, err := s.convRepo.ListBySeason(ctx, season.ID, historyContextLimit)
	if err != nil {
		return nil, err
	}

	exchanges := make([]advisor.Exchange, 0, len(history))
	for _, c := range history {
		exchanges = append(exchanges, advisor.Exchange{Message: c.Message, Response: c.Response})
	}

	message, lang := s.toAgentLanguage(ctx, req.Message)

	var (
		response     string
		activeAgents []string
	)

	result, err := s.advisor.Consult(ctx, season.ID.String(), season.CurrentPhase, exchanges, message)
	if err != nil {
		log.Printf("chat: advisor failed for season %s: %v", season.ID, err)
		response = fallbackResponse
	} else {
		response = result.Response
		activeAgents = result.ActiveAgents
	}
	if response == "" {
		response = emptyResponse
	}

	if lang != "en" {
		translated, err := s.translator.FromEnglish(ctx, response, lang)
		if err != nil {
			log.Printf("chat: failed to translate response to %s: %v", lang, err)
		} else {
			response = translated
		}
	}

	conversation := &models.Conversation{
		SeasonID:     season.ID,
		UserID:       userID,
		Message:      req.Message,
		Response:     response,
		ActiveAgents: activeAgents,
		Phase:        season.CurrentPhase,
	}
	if err := s.convRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}

	return &models.ChatResponse{
		Success:        true,
		Response:       response,
		ConversationID: conversation.ID.String(),
		MessageID:      conversation.ID.String(),
		SeasonID:       season.ID.String(),
	}, nil
}

// toAgentLanguage translates the message to English when a translator is
// configured and the script looks non-English. It returns the text the
// agents should see and the language to answer in.
func (s *ChatService) toAgentLanguage(ctx context.Context, message string) (string, string) {
	if s.translator == nil {
		return message, "en"
	}

	lang := advisor.DetectLanguage(message)
	if lang == "en" {
		return message, "en"
	}

	english, trusted, err := s.translator.ToEnglish(ctx, message, lang)
	if err != nil {
		log.Printf("chat: translation from %s failed, passing message through: %v", lang, err)
		return message, "en"
	}
	if !trusted {
		log.Printf("chat: low-confidence translation from %s", lang)
	}
	return english, lang
}

// History returns the user's conversations newest first.
func (s *ChatService) History(ctx context.Context, userID uuid.UUID) (*models.HistoryResponse, error) {
	conversations, err := s.convRepo.ListByUser(ctx, userID, historyListLimit)
	if err != nil {
		return nil, err
	}

	items := make([]models.HistoryItem, 0, len(conversations))
	for _, c := range conversations {
		items = append(items, models.HistoryItem{
			ID:        c.ID.String(),
			Message:   c.Message,
			Response:  c.Response,
			CreatedAt: c.CreatedAt,
			SeasonID:  c.SeasonID.String(),
		})
	}

	return &models.HistoryResponse{Success: true, Conversations: items}, nil
}

// resolveSeason looks up the requested season or creates a default one
// when the client sent none. The server is the identifier authority: the
// effective season id always flows back in the chat response.
func (s *ChatService) resolveSeason(ctx context.Context, userID uuid.UUID, seasonID string) (*models.Season, error) {
	if seasonID != "" {
		id, err := uuid.Parse(seasonID)
		if err == nil {
			season, err := s.seasonRepo.GetByID(ctx, id)
			if err == nil && season.UserID == userID {
				return season, nil
			}
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return nil, err
			}
		}
		// Unknown or client-synthesized id: fall through and mint a real one.
	}

	season := &models.Season{
		UserID:       userID,
		CropType:     "unknown",
		FarmerType:   "normal",
		CurrentPhase: models.PhasePreSowing,
		Status:       models.SeasonStatusActive,
	}
	if err := s.seasonRepo.Create(ctx, season); err != nil {
		return nil, err
	}
	return season, nil
}
