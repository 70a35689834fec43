package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"fasalmitra/internal/middleware"
	"fasalmitra/internal/models"
)

type seasonStore interface {
	Create(ctx context.Context, s *models.Season) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Season, error)
	CurrentActive(ctx context.Context, userID uuid.UUID) (*models.Season, error)
}

type SeasonHandler struct {
	seasons seasonStore
}

func NewSeasonHandler(seasons seasonStore) *SeasonHandler {
	return &SeasonHandler{seasons: seasons}
}

func (h *SeasonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSeasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body"))
		return
	}

	if req.CropType == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "crop_type is required"))
		return
	}
	if req.FarmerType == "" {
		req.FarmerType = "normal"
	}

	season := &models.Season{
		UserID:       middleware.GetUserID(r.Context()),
		CropType:     req.CropType,
		Variety:      req.Variety,
		FarmerType:   req.FarmerType,
		SoilType:     req.SoilType,
		PreviousCrop: req.PreviousCrop,
		CurrentPhase: models.PhasePreSowing,
		Status:       models.SeasonStatusActive,
	}

	if err := h.seasons.Create(r.Context(), season); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create season"))
		return
	}

	writeJSON(w, http.StatusOK, models.SeasonResponse{
		ID:           season.ID.String(),
		FarmerID:     season.UserID.String(),
		CropType:     season.CropType,
		CurrentPhase: season.CurrentPhase,
		Status:       season.Status,
		CreatedAt:    season.CreatedAt,
	})
}

func (h *SeasonHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	seasons, err := h.seasons.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list seasons"))
		return
	}

	items := make([]models.SeasonListItem, 0, len(seasons))
	for _, s := range seasons {
		items = append(items, models.SeasonListItem{
			ID:           s.ID.String(),
			CropType:     s.CropType,
			CurrentPhase: s.CurrentPhase,
			Status:       s.Status,
			CreatedAt:    s.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, models.SeasonsResponse{Success: true, Seasons: items})
}

// Current returns the latest active season, or success:false with a null
// season when the user has none.
func (h *SeasonHandler) Current(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	season, err := h.seasons.CurrentActive(r.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusOK, models.CurrentSeasonResponse{Success: false, Season: nil})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load current season"))
		return
	}

	writeJSON(w, http.StatusOK, models.CurrentSeasonResponse{
		Success: true,
		Season: &models.CurrentSeason{
			ID:       season.ID.String(),
			CropType: season.CropType,
			Phase:    season.CurrentPhase,
			Status:   season.Status,
		},
	})
}
