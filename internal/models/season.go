package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PhasePreSowing = "pre_sowing"
	PhaseGrowth    = "growth"
	PhaseHarvest   = "harvest"

	SeasonStatusActive = "active"
)

type Season struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"farmer_id"`
	CropType     string    `json:"crop_type"`
	Variety      *string   `json:"variety,omitempty"`
	FarmerType   string    `json:"farmer_type"`
	SoilType     *string   `json:"soil_type,omitempty"`
	PreviousCrop *string   `json:"previous_crop,omitempty"`
	CurrentPhase string    `json:"current_phase"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateSeasonRequest struct {
	CropType     string  `json:"crop_type"`
	Variety      *string `json:"variety,omitempty"`
	FarmerType   string  `json:"farmer_type"`
	SoilType     *string `json:"soil_type,omitempty"`
	PreviousCrop *string `json:"previous_crop,omitempty"`
}

type SeasonResponse struct {
	ID           string    `json:"id"`
	FarmerID     string    `json:"farmer_id"`
	CropType     string    `json:"crop_type"`
	CurrentPhase string    `json:"current_phase"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type SeasonListItem struct {
	ID           string    `json:"id"`
	CropType     string    `json:"crop_type"`
	CurrentPhase string    `json:"current_phase"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type SeasonsResponse struct {
	Success bool             `json:"success"`
	Seasons []SeasonListItem `json:"seasons"`
}

// CurrentSeason is the condensed shape returned by /crop/current-season.
type CurrentSeason struct {
	ID       string `json:"id"`
	CropType string `json:"crop_type"`
	Phase    string `json:"phase"`
	Status   string `json:"status"`
}

type CurrentSeasonResponse struct {
	Success bool           `json:"success"`
	Season  *CurrentSeason `json:"season"`
}
