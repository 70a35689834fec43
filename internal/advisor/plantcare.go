package advisor

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Plant health analysis turns a farmer's own words into likely causes and
// treatments. The symptom table maps the phrases farmers actually use onto
// candidate issues; causes seen across several symptoms rank higher.

type symptom struct {
	Name      string
	Keywords  []string
	Causes    []string
	Questions []string
}

var symptomTable = []symptom{
	{
		Name:     "yellowing",
		Keywords: []string{"yellow", "yellowing", "pale", "light colored"},
		Causes:   []string{"nitrogen deficiency", "overwatering", "root rot", "iron deficiency"},
		Questions: []string{
			"Are the older leaves or newer leaves turning yellow?",
			"Is the soil very wet or waterlogged?",
		},
	},
	{
		Name:     "browning",
		Keywords: []string{"brown", "browning", "dark spots", "burnt"},
		Causes:   []string{"fungal infection", "underwatering", "nutrient burn", "leaf spot"},
		Questions: []string{
			"Are the brown spots dry or wet?",
			"Did you recently apply fertilizer?",
		},
	},
	{
		Name:     "wilting",
		Keywords: []string{"wilting", "drooping", "limp", "sagging"},
		Causes:   []string{"underwatering", "root damage", "bacterial wilt", "heat stress"},
		Questions: []string{
			"When did you last water the plants?",
			"Has the weather been very hot?",
		},
	},
	{
		Name:     "curling",
		Keywords: []string{"curling", "curled", "twisted", "deformed"},
		Causes:   []string{"aphids", "virus", "herbicide damage", "calcium deficiency"},
		Questions: []string{
			"Do you see any small insects on the leaves?",
			"Were any chemicals sprayed nearby?",
		},
	},
	{
		Name:     "stunted growth",
		Keywords: []string{"not growing", "stunted", "too short", "very small"},
		Causes:   []string{"nutrient deficiency", "poor soil", "pest damage"},
		Questions: []string{
			"How old are the plants?",
			"What fertilizer have you been using?",
		},
	},
	{
		Name:     "holes in leaves",
		Keywords: []string{"holes", "eaten", "chewed"},
		Causes:   []string{"caterpillars", "beetles", "grasshoppers"},
		Questions: []string{
			"Can you see any insects on the plants?",
			"Are the holes small or large?",
		},
	},
	{
		Name:     "sticky residue",
		Keywords: []string{"sticky", "honeydew", "shiny leaves"},
		Causes:   []string{"aphids", "whiteflies", "scale insects"},
		Questions: []string{
			"Do you see small insects underneath the leaves?",
			"Are there ants on the plants?",
		},
	},
	{
		Name:     "foul smell",
		Keywords: []string{"smell", "odor", "stink", "rotten"},
		Causes:   []string{"root rot", "bacterial infection", "overwatering"},
		Questions: []string{
			"Is the smell coming from the soil or the plant?",
			"Is the soil staying wet for days?",
		},
	},
}

var treatments = map[string][]string{
	"nitrogen deficiency": {
		"apply nitrogen-rich fertilizer (urea or ammonium sulfate), 50-100g per plant",
		"organic options: cow dung, compost, neem cake",
	},
	"overwatering": {
		"stop watering immediately and let the soil dry",
		"improve drainage before the next irrigation",
	},
	"root rot": {
		"stop watering and remove severely affected plants",
		"improve drainage before the next irrigation",
	},
	"underwatering": {
		"water deeply in the early morning, then keep a regular schedule",
	},
	"aphids": {
		"spray neem oil solution on the underside of leaves",
		"introduce ladybugs if available",
	},
	"fungal infection": {
		"remove affected leaves and spray a copper-based fungicide",
		"avoid wetting the foliage when watering",
	},
	"caterpillars": {
		"hand-pick visible caterpillars and apply neem-based spray",
	},
	"heat stress": {
		"provide shade during peak afternoon hours and mulch the soil",
	},
}

type plantAnalysis struct {
	Symptoms  []string
	Causes    []string // most likely first
	Questions []string
}

func analyzePlantReport(description string) plantAnalysis {
	lower := strings.ToLower(description)

	var analysis plantAnalysis
	causeCounts := map[string]int{}
	for _, s := range symptomTable {
		for _, kw := range s.Keywords {
			if strings.Contains(lower, kw) {
				analysis.Symptoms = append(analysis.Symptoms, s.Name)
				for _, cause := range s.Causes {
					causeCounts[cause]++
				}
				analysis.Questions = append(analysis.Questions, s.Questions...)
				break
			}
		}
	}

	causes := make([]string, 0, len(causeCounts))
	for cause := range causeCounts {
		causes = append(causes, cause)
	}
	sort.Slice(causes, func(i, j int) bool {
		if causeCounts[causes[i]] != causeCounts[causes[j]] {
			return causeCounts[causes[i]] > causeCounts[causes[j]]
		}
		return causes[i] < causes[j]
	})
	if len(causes) > 3 {
		causes = causes[:3]
	}
	analysis.Causes = causes
	if len(analysis.Questions) > 3 {
		analysis.Questions = analysis.Questions[:3]
	}
	return analysis
}

var (
	heightPattern = regexp.MustCompile(`(\d+)\s*(cm|centimeter|inch)`)
	agePattern    = regexp.MustCompile(`(\d+)\s*days?`)
)

// extractHeightCM pulls a reported plant height out of free text,
// converting inches to centimeters.
func extractHeightCM(description string) (float64, bool) {
	m := heightPattern.FindStringSubmatch(strings.ToLower(description))
	if m == nil {
		return 0, false
	}
	var height float64
	fmt.Sscanf(m[1], "%f", &height)
	if strings.HasPrefix(m[2], "inch") {
		height *= 2.54
	}
	return height, true
}

// extractAgeDays pulls a reported plant age ("20 days old") out of free text.
func extractAgeDays(description string) (int, bool) {
	m := agePattern.FindStringSubmatch(strings.ToLower(description))
	if m == nil {
		return 0, false
	}
	var days int
	fmt.Sscanf(m[1], "%d", &days)
	return days, days > 0
}

// Daily growth in cm under normal conditions, used to judge whether a
// reported height is on track for the crop's age.
var cropGrowthRates = map[string]float64{
	"tomato":    2.0,
	"moong dal": 1.5,
	"rice":      1.8,
	"wheat":     1.2,
	"cucumber":  2.5,
}

func growthAssessment(crop string, heightCM float64, daysOld int) string {
	rate, ok := cropGrowthRates[normalizeCrop(crop)]
	if !ok {
		rate = 1.5
	}
	expected := rate * float64(daysOld)
	if expected == 0 {
		return ""
	}
	deviation := (heightCM - expected) / expected * 100
	switch {
	case deviation > 20:
		return fmt.Sprintf("at %.0fcm the plant is growing faster than the %.0fcm expected at %d days", heightCM, expected, daysOld)
	case deviation < -20:
		return fmt.Sprintf("at %.0fcm the plant is behind the %.0fcm expected at %d days; check nutrition and water", heightCM, expected, daysOld)
	default:
		return fmt.Sprintf("at %.0fcm the plant matches the %.0fcm expected at %d days", heightCM, expected, daysOld)
	}
}

var plantAnalysisTool = Tool{
	Name: "plant_analysis",
	Run: func(fc *FarmerContext, message string, _ time.Time) string {
		analysis := analyzePlantReport(message)

		var growth string
		if height, okH := extractHeightCM(message); okH {
			if days, okD := extractAgeDays(message); okD {
				growth = growthAssessment(fc.PreviousCrop, height, days)
			}
		}

		if len(analysis.Symptoms) == 0 && growth == "" {
			return ""
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Plant health analysis of the farmer's description:\n")
		if len(analysis.Symptoms) > 0 {
			fmt.Fprintf(&sb, "- Symptoms noticed: %s\n", strings.Join(analysis.Symptoms, ", "))
			fmt.Fprintf(&sb, "- Most likely causes: %s\n", strings.Join(analysis.Causes, ", "))
			for _, cause := range analysis.Causes {
				for _, step := range treatments[cause] {
					fmt.Fprintf(&sb, "- Treatment (%s): %s\n", cause, step)
				}
			}
		}
		if growth != "" {
			fmt.Fprintf(&sb, "- Growth check: %s\n", growth)
		}
		if len(analysis.Questions) > 0 {
			fmt.Fprintf(&sb, "- Worth asking: %s", strings.Join(analysis.Questions, " "))
		}
		return strings.TrimRight(sb.String(), "\n")
	},
}

// Greenhouse readings are simulated around each crop's optimal band. The
// demo greenhouse has no live sensors, so readings drift a fixed step off
// optimal and the briefing flags what the controller should correct.
type cropEnvironment struct {
	TempMin, TempMax         float64
	HumidityMin, HumidityMax float64
	MoistureMin, MoistureMax float64
}

var cropEnvironments = map[string]cropEnvironment{
	"tomato":    {TempMin: 20, TempMax: 25, HumidityMin: 60, HumidityMax: 80, MoistureMin: 60, MoistureMax: 75},
	"moong dal": {TempMin: 25, TempMax: 30, HumidityMin: 60, HumidityMax: 70, MoistureMin: 50, MoistureMax: 65},
	"lettuce":   {TempMin: 15, TempMax: 20, HumidityMin: 50, HumidityMax: 70, MoistureMin: 65, MoistureMax: 80},
	"cucumber":  {TempMin: 22, TempMax: 28, HumidityMin: 70, HumidityMax: 85, MoistureMin: 70, MoistureMax: 85},
}

var greenhouseReadingsTool = Tool{
	Name: "greenhouse_readings",
	Run: func(fc *FarmerContext, _ string, now time.Time) string {
		crop := normalizeCrop(fc.PreviousCrop)
		env, ok := cropEnvironments[crop]
		if !ok {
			crop = "tomato"
			env = cropEnvironments[crop]
		}

		// Afternoon hours run warm and dry, nights cool and humid.
		temp := (env.TempMin + env.TempMax) / 2
		humidity := (env.HumidityMin + env.HumidityMax) / 2
		moisture := env.MoistureMin - 5
		if hour := now.Hour(); hour >= 12 && hour < 18 {
			temp = env.TempMax + 3
			humidity = env.HumidityMin - 5
		} else if hour < 6 {
			temp = env.TempMin - 2
			humidity = env.HumidityMax + 5
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Greenhouse sensor readings (%s):\n", crop)
		fmt.Fprintf(&sb, "- Temperature %.1f C (optimal %.0f-%.0f)\n", temp, env.TempMin, env.TempMax)
		fmt.Fprintf(&sb, "- Humidity %.0f%% (optimal %.0f-%.0f)\n", humidity, env.HumidityMin, env.HumidityMax)
		fmt.Fprintf(&sb, "- Soil moisture %.0f%% (optimal %.0f-%.0f)\n", moisture, env.MoistureMin, env.MoistureMax)
		if temp > env.TempMax {
			sb.WriteString("- Action: increase cooling or ventilation\n")
		}
		if temp < env.TempMin {
			sb.WriteString("- Action: increase heating\n")
		}
		if humidity < env.HumidityMin {
			sb.WriteString("- Action: run the humidifier\n")
		}
		if moisture < env.MoistureMin {
			sb.WriteString("- Action: irrigate\n")
		}
		return strings.TrimRight(sb.String(), "\n")
	},
}
