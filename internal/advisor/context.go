package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// FarmerContext is what the advisor has learned about a farmer within one
// season. It is rebuilt from stored conversations and cached in Redis so
// agents stop re-asking questions the farmer already answered.
type FarmerContext struct {
	SoilType     string `json:"soil_type,omitempty"`
	Location     string `json:"location,omitempty"`
	FarmerType   string `json:"farmer_type,omitempty"`
	PreviousCrop string `json:"previous_crop,omitempty"`
}

var (
	soilTypes = []string{"sandy", "loamy", "clay", "black", "red", "alluvial"}

	locations = []string{
		"punjab", "jalgaon", "maharashtra", "delhi", "mumbai", "bangalore", "ludhiana",
		"nashik", "karnataka", "tamil nadu", "haryana", "uttar pradesh", "madhya pradesh",
		"rajasthan", "telangana", "andhra pradesh", "patna", "indore", "nagpur",
	}

	crops = []string{
		"tomatoes", "tomato", "wheat", "rice", "cotton", "maize", "moong", "dal",
		"banana", "bananas", "sugarcane", "onion", "onions", "potato", "potatoes",
		"millet", "soybean", "groundnut", "cabbage", "brinjal", "chili", "chilli",
		"cumin", "coriander", "turmeric", "garlic", "carrot",
	}
)

// Absorb scans a farmer message for known soil types, locations, farmer
// types and crops, updating the context in place. Later mentions win.
func (fc *FarmerContext) Absorb(message string) {
	lower := strings.ToLower(message)

	for _, soil := range soilTypes {
		if strings.Contains(lower, soil) {
			fc.SoilType = soil
			break
		}
	}

	for _, loc := range locations {
		if strings.Contains(lower, loc) {
			fc.Location = loc
			break
		}
	}

	if strings.Contains(lower, "greenhouse") {
		fc.FarmerType = "greenhouse"
	} else if strings.Contains(lower, "traditional") {
		fc.FarmerType = "traditional"
	}

	for _, crop := range crops {
		if strings.Contains(lower, crop) {
			fc.PreviousCrop = crop
			break
		}
	}
}

// Summary renders the known facts as a prompt fragment. Empty when nothing
// has been learned yet.
func (fc *FarmerContext) Summary() string {
	var parts []string
	if fc.Location != "" {
		parts = append(parts, "Location: "+fc.Location)
	}
	if fc.SoilType != "" {
		parts = append(parts, "Soil type: "+fc.SoilType)
	}
	if fc.FarmerType != "" {
		parts = append(parts, "Farming setup: "+fc.FarmerType)
	}
	if fc.PreviousCrop != "" {
		parts = append(parts, "Previous crop: "+fc.PreviousCrop)
	}
	if len(parts) == 0 {
		return ""
	}
	return "KNOWN FARMER DETAILS (do not ask again):\n" + strings.Join(parts, "\n")
}

// ContextStore caches per-season farmer context in Redis.
type ContextStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewContextStore(client *redis.Client) *ContextStore {
	return &ContextStore{redis: client, ttl: 24 * time.Hour}
}

func contextKey(seasonID string) string {
	return "advisor_ctx:" + seasonID
}

func (s *ContextStore) Load(ctx context.Context, seasonID string) (*FarmerContext, bool) {
	data, err := s.redis.Get(ctx, contextKey(seasonID)).Bytes()
	if err != nil {
		return nil, false
	}
	fc := &FarmerContext{}
	if err := json.Unmarshal(data, fc); err != nil {
		return nil, false
	}
	return fc, true
}

func (s *ContextStore) Save(ctx context.Context, seasonID string, fc *FarmerContext) error {
	data, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("failed to marshal farmer context: %w", err)
	}
	return s.redis.Set(ctx, contextKey(seasonID), data, s.ttl).Err()
}
