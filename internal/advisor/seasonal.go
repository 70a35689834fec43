package advisor

import (
	"fmt"
	"strings"
	"time"
)

// regionPattern describes one state's agricultural calendar. The tables
// cover the major farming states; anything unrecognized falls back to the
// Punjab pattern as a generic North India baseline.
type regionPattern struct {
	State   string
	Region  string
	Seasons []seasonPattern
}

type seasonPattern struct {
	Name          string
	Months        []int
	RainfallMM    float64
	TempMin       float64
	TempMax       float64
	HumidityAvg   float64
	SuitableCrops []string
	Description   string
}

func (p regionPattern) seasonFor(month int) seasonPattern {
	for _, s := range p.Seasons {
		for _, m := range s.Months {
			if m == month {
				return s
			}
		}
	}
	// Months outside the listed seasons behave like the first season.
	return p.Seasons[0]
}

var regionPatterns = []regionPattern{
	{
		State:  "punjab",
		Region: "North India",
		Seasons: []seasonPattern{
			{
				Name: "Kharif/Monsoon", Months: []int{6, 7, 8, 9, 10},
				RainfallMM: 800, TempMin: 25, TempMax: 38, HumidityAvg: 75,
				SuitableCrops: []string{"rice", "cotton", "maize", "sugarcane", "millet"},
				Description:   "heavy monsoon rains, high humidity, warm temperatures",
			},
			{
				Name: "Rabi/Winter", Months: []int{11, 12, 1, 2, 3},
				RainfallMM: 100, TempMin: 5, TempMax: 25, HumidityAvg: 55,
				SuitableCrops: []string{"wheat", "barley", "mustard", "chickpea", "peas"},
				Description:   "cool dry weather, occasional winter rain, ideal for wheat",
			},
			{
				Name: "Zaid/Summer", Months: []int{4, 5},
				RainfallMM: 50, TempMin: 30, TempMax: 45, HumidityAvg: 40,
				SuitableCrops: []string{"watermelon", "cucumber", "muskmelon", "vegetables"},
				Description:   "hot and dry, requires irrigation",
			},
		},
	},
	{
		State:  "haryana",
		Region: "North India",
		Seasons: []seasonPattern{
			{
				Name: "Kharif/Monsoon", Months: []int{6, 7, 8, 9},
				RainfallMM: 600, TempMin: 25, TempMax: 38, HumidityAvg: 70,
				SuitableCrops: []string{"rice", "cotton", "bajra", "jowar"},
				Description:   "monsoon dependent, moderate rainfall",
			},
			{
				Name: "Rabi/Winter", Months: []int{11, 12, 1, 2, 3},
				RainfallMM: 80, TempMin: 7, TempMax: 23, HumidityAvg: 60,
				SuitableCrops: []string{"wheat", "barley", "mustard", "gram"},
				Description:   "cool winters, wheat belt region",
			},
		},
	},
	{
		State:  "maharashtra",
		Region: "West India",
		Seasons: []seasonPattern{
			{
				Name: "Kharif/Monsoon", Months: []int{6, 7, 8, 9, 10},
				RainfallMM: 1200, TempMin: 24, TempMax: 32, HumidityAvg: 80,
				SuitableCrops: []string{"rice", "cotton", "soybean", "sugarcane", "millet"},
				Description:   "heavy western ghats monsoon, high rainfall",
			},
			{
				Name: "Rabi/Winter", Months: []int{11, 12, 1, 2},
				RainfallMM: 50, TempMin: 15, TempMax: 28, HumidityAvg: 50,
				SuitableCrops: []string{"wheat", "chickpea", "jowar", "vegetables"},
				Description:   "mild winter, less rainfall",
			},
		},
	},
	{
		State:  "uttar pradesh",
		Region: "North India",
		Seasons: []seasonPattern{
			{
				Name: "Kharif/Monsoon", Months: []int{6, 7, 8, 9},
				RainfallMM: 900, TempMin: 25, TempMax: 38, HumidityAvg: 75,
				SuitableCrops: []string{"rice", "sugarcane", "cotton", "millet"},
				Description:   "good monsoon coverage, fertile plains",
			},
			{
				Name: "Rabi/Winter", Months: []int{11, 12, 1, 2, 3},
				RainfallMM: 120, TempMin: 8, TempMax: 25, HumidityAvg: 60,
				SuitableCrops: []string{"wheat", "barley", "peas", "mustard"},
				Description:   "major wheat producing region",
			},
		},
	},
	{
		State:  "karnataka",
		Region: "South India",
		Seasons: []seasonPattern{
			{
				Name: "Southwest Monsoon", Months: []int{6, 7, 8, 9},
				RainfallMM: 800, TempMin: 22, TempMax: 32, HumidityAvg: 75,
				SuitableCrops: []string{"rice", "ragi", "maize", "cotton"},
				Description:   "moderate monsoon, varied topography",
			},
			{
				Name: "Northeast Monsoon", Months: []int{10, 11, 12},
				RainfallMM: 400, TempMin: 18, TempMax: 28, HumidityAvg: 65,
				SuitableCrops: []string{"ragi", "pulses", "oilseeds"},
				Description:   "post-monsoon crops, winter rain",
			},
		},
	},
	{
		State:  "tamil nadu",
		Region: "South India",
		Seasons: []seasonPattern{
			{
				Name: "Southwest Monsoon", Months: []int{6, 7, 8, 9},
				RainfallMM: 400, TempMin: 26, TempMax: 35, HumidityAvg: 70,
				SuitableCrops: []string{"rice", "cotton", "millet"},
				Description:   "less rain from the southwest monsoon",
			},
			{
				Name: "Northeast Monsoon", Months: []int{10, 11, 12, 1},
				RainfallMM: 900, TempMin: 22, TempMax: 30, HumidityAvg: 75,
				SuitableCrops: []string{"rice", "pulses", "sugarcane"},
				Description:   "main rainy season, northeast monsoon critical",
			},
		},
	},
}

// cityStates maps recognized cities onto the state whose pattern applies.
var cityStates = map[string]string{
	"ludhiana":  "punjab",
	"jalandhar": "punjab",
	"amritsar":  "punjab",
	"mumbai":    "maharashtra",
	"pune":      "maharashtra",
	"nashik":    "maharashtra",
	"nagpur":    "maharashtra",
	"jalgaon":   "maharashtra",
	"bangalore": "karnataka",
}

func patternForLocation(location string) regionPattern {
	lower := strings.ToLower(location)
	if state, ok := cityStates[lower]; ok {
		lower = state
	}
	for _, p := range regionPatterns {
		if strings.Contains(lower, p.State) {
			return p
		}
	}
	return regionPatterns[0]
}

var seasonalPatternsTool = Tool{
	Name: "seasonal_patterns",
	Run: func(fc *FarmerContext, _ string, now time.Time) string {
		pattern := patternForLocation(fc.Location)
		season := pattern.seasonFor(int(now.Month()))

		var sb strings.Builder
		fmt.Fprintf(&sb, "Seasonal pattern (%s, %s):\n", pattern.Region, season.Name)
		fmt.Fprintf(&sb, "- Typical rainfall %.0fmm over the season, temperatures %.0f-%.0f C\n",
			season.RainfallMM, season.TempMin, season.TempMax)
		fmt.Fprintf(&sb, "- Crops suited to this season: %s\n", strings.Join(season.SuitableCrops, ", "))
		fmt.Fprintf(&sb, "- Character: %s", season.Description)
		return sb.String()
	},
}

// soilCompatibility is keyed by the soil types the context extractor
// recognizes.
var soilCompatibility = map[string][]string{
	"sandy":    {"moong dal", "groundnut", "millet", "watermelon"},
	"loamy":    {"rice", "wheat", "maize", "moong dal", "sugarcane"},
	"clay":     {"rice", "wheat", "cotton"},
	"black":    {"cotton", "chickpea", "soybean"},
	"red":      {"groundnut", "millet", "ragi", "pulses"},
	"alluvial": {"rice", "wheat", "sugarcane", "maize"},
}

var soilSuitabilityTool = Tool{
	Name: "soil_suitability",
	Run: func(fc *FarmerContext, _ string, _ time.Time) string {
		if fc.SoilType == "" {
			return ""
		}
		crops, ok := soilCompatibility[fc.SoilType]
		if !ok {
			return ""
		}

		out := fmt.Sprintf("Soil suitability: %s soil supports %s well.",
			fc.SoilType, strings.Join(crops, ", "))
		if fc.PreviousCrop != "" {
			out += fmt.Sprintf(" Rotating away from %s helps break pest cycles and restore nutrients.",
				fc.PreviousCrop)
		}
		return out
	},
}
