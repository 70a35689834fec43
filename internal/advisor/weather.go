package advisor

import (
	"fmt"
	"strings"
	"time"
)

// Weather data is simulated from the regional seasonal tables. The free
// OpenWeatherMap tier the mobile app targets has no historical endpoint,
// so the advisor works from typical values for the farmer's region and
// month instead of live readings.

type weatherOutlook struct {
	Location     string
	TempMin      float64
	TempMax      float64
	HumidityAvg  float64
	RainMM       float64
	RainyDays    int
	Description  string
	FrostWarning bool
	HeatWarning  bool
}

func currentOutlook(location string, now time.Time) weatherOutlook {
	pattern := patternForLocation(location)
	season := pattern.seasonFor(int(now.Month()))

	// Spread the season's rainfall evenly across its months and assume a
	// rainy day per 40mm, capped at the 5-day window.
	monthlyRain := season.RainfallMM / float64(len(season.Months))
	weeklyRain := monthlyRain / 4
	rainyDays := int(weeklyRain / 40)
	if rainyDays > 5 {
		rainyDays = 5
	}

	loc := location
	if loc == "" {
		loc = "your region"
	}

	return weatherOutlook{
		Location:     loc,
		TempMin:      season.TempMin,
		TempMax:      season.TempMax,
		HumidityAvg:  season.HumidityAvg,
		RainMM:       weeklyRain,
		RainyDays:    rainyDays,
		Description:  season.Description,
		FrostWarning: season.TempMin < 5,
		HeatWarning:  season.TempMax > 38,
	}
}

var weatherOutlookTool = Tool{
	Name: "weather_outlook",
	Run: func(fc *FarmerContext, _ string, now time.Time) string {
		o := currentOutlook(fc.Location, now)

		var sb strings.Builder
		fmt.Fprintf(&sb, "Weather outlook for %s (next 5 days):\n", o.Location)
		fmt.Fprintf(&sb, "- Temperature %.0f-%.0f C, humidity around %.0f%%\n", o.TempMin, o.TempMax, o.HumidityAvg)
		fmt.Fprintf(&sb, "- Expected rainfall %.0fmm across %d rainy day(s)\n", o.RainMM, o.RainyDays)
		fmt.Fprintf(&sb, "- Conditions: %s\n", o.Description)
		if o.RainMM < 10 {
			sb.WriteString("- Irrigation will be needed this week\n")
		}
		if o.HeatWarning {
			sb.WriteString("- HIGH TEMPERATURE WARNING: protect young plants from heat stress\n")
		}
		if o.FrostWarning {
			sb.WriteString("- FROST WARNING: night temperatures may damage sensitive crops\n")
		}
		return strings.TrimRight(sb.String(), "\n")
	},
}
