package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"fasalmitra/internal/models"
)

type SeasonRepo struct {
	pool *pgxpool.Pool
}

func NewSeasonRepo(pool *pgxpool.Pool) *SeasonRepo {
	return &SeasonRepo{pool: pool}
}

func (r *SeasonRepo) Create(ctx context.Context, s *models.Season) error {
	query := `
		INSERT INTO crop_seasons (id, farmer_id, crop_type, variety, farmer_type, soil_type, previous_crop, current_phase, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	s.ID = uuid.New()
	if s.CurrentPhase == "" {
		s.CurrentPhase = models.PhasePreSowing
	}
	if s.Status == "" {
		s.Status = models.SeasonStatusActive
	}

	return r.pool.QueryRow(ctx, query,
		s.ID, s.UserID, s.CropType, s.Variety, s.FarmerType, s.SoilType, s.PreviousCrop, s.CurrentPhase, s.Status,
	).Scan(&s.CreatedAt)
}

func (r *SeasonRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	s := &models.Season{}
	query := `SELECT id, farmer_id, crop_type, variety, farmer_type, soil_type, previous_crop, current_phase, status, created_at
		FROM crop_seasons WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.CropType, &s.Variety, &s.FarmerType, &s.SoilType, &s.PreviousCrop,
		&s.CurrentPhase, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SeasonRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Season, error) {
	query := `SELECT id, farmer_id, crop_type, variety, farmer_type, soil_type, previous_crop, current_phase, status, created_at
		FROM crop_seasons WHERE farmer_id = $1 ORDER BY created_at DESC LIMIT 100`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seasons := make([]models.Season, 0)
	for rows.Next() {
		var s models.Season
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.CropType, &s.Variety, &s.FarmerType, &s.SoilType, &s.PreviousCrop,
			&s.CurrentPhase, &s.Status, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}

	return seasons, rows.Err()
}

// CurrentActive returns the most recently created active season for a user.
func (r *SeasonRepo) CurrentActive(ctx context.Context, userID uuid.UUID) (*models.Season, error) {
	s := &models.Season{}
	query := `SELECT id, farmer_id, crop_type, variety, farmer_type, soil_type, previous_crop, current_phase, status, created_at
		FROM crop_seasons WHERE farmer_id = $1 AND status = $2 ORDER BY created_at DESC LIMIT 1`

	err := r.pool.QueryRow(ctx, query, userID, models.SeasonStatusActive).Scan(
		&s.ID, &s.UserID, &s.CropType, &s.Variety, &s.FarmerType, &s.SoilType, &s.PreviousCrop,
		&s.CurrentPhase, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
