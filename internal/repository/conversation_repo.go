package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"fasalmitra/internal/models"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

func (r *ConversationRepo) Create(ctx context.Context, c *models.Conversation) error {
	query := `
		INSERT INTO conversations (id, season_id, farmer_id, message, response, active_agents, phase)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	c.ID = uuid.New()
	if c.ActiveAgents == nil {
		c.ActiveAgents = []string{}
	}

	return r.pool.QueryRow(ctx, query,
		c.ID, c.SeasonID, c.UserID, c.Message, c.Response, c.ActiveAgents, c.Phase,
	).Scan(&c.CreatedAt)
}

// ListByUser returns a user's conversations newest first, capped at limit.
func (r *ConversationRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Conversation, error) {
	query := `SELECT id, season_id, farmer_id, message, response, active_agents, phase, created_at
		FROM conversations WHERE farmer_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanConversations(rows)
}

// ListBySeason returns a season's conversations oldest first, capped at
// limit. Used to rebuild advisor context.
func (r *ConversationRepo) ListBySeason(ctx context.Context, seasonID uuid.UUID, limit int) ([]models.Conversation, error) {
	query := `SELECT id, season_id, farmer_id, message, response, active_agents, phase, created_at
		FROM conversations WHERE season_id = $1 ORDER BY created_at ASC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, seasonID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanConversations(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanConversations(rows pgxRows) ([]models.Conversation, error) {
	conversations := make([]models.Conversation, 0)
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(
			&c.ID, &c.SeasonID, &c.UserID, &c.Message, &c.Response, &c.ActiveAgents, &c.Phase, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}
