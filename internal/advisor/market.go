package advisor

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Mandi prices are simulated: a base price per quintal adjusted by where
// the month sits in the crop's supply cycle. Harvest months flood the
// market and depress prices, pre-harvest months do the opposite.

type cropMarket struct {
	BasePrice  float64 // INR per quintal
	Volatility float64
	PeakMonths []int // harvest glut, prices dip
	LowMonths  []int // scarce supply, prices rise
}

var cropMarkets = map[string]cropMarket{
	"rice":      {BasePrice: 2500, Volatility: 0.15, PeakMonths: []int{10, 11, 12}, LowMonths: []int{6, 7, 8}},
	"wheat":     {BasePrice: 2100, Volatility: 0.12, PeakMonths: []int{4, 5}, LowMonths: []int{11, 12}},
	"cotton":    {BasePrice: 6200, Volatility: 0.20, PeakMonths: []int{11, 12, 1}, LowMonths: []int{6, 7}},
	"moong dal": {BasePrice: 7000, Volatility: 0.18, PeakMonths: []int{3, 4, 5}, LowMonths: []int{10, 11}},
	"sugarcane": {BasePrice: 350, Volatility: 0.10, PeakMonths: []int{12, 1, 2}, LowMonths: []int{7, 8}},
	"tomato":    {BasePrice: 1500, Volatility: 0.35, PeakMonths: []int{12, 1, 2}, LowMonths: []int{6, 7, 8}},
	"potato":    {BasePrice: 800, Volatility: 0.25, PeakMonths: []int{3, 4}, LowMonths: []int{10, 11}},
	"onion":     {BasePrice: 1200, Volatility: 0.30, PeakMonths: []int{11, 12}, LowMonths: []int{6, 7}},
	"maize":     {BasePrice: 1800, Volatility: 0.15, PeakMonths: []int{10, 11}, LowMonths: []int{5, 6}},
	"millet":    {BasePrice: 2000, Volatility: 0.14, PeakMonths: []int{10, 11}, LowMonths: []int{6, 7}},
}

// normalizeCrop maps the context extractor's crop spellings onto market
// table keys.
func normalizeCrop(crop string) string {
	switch crop {
	case "tomatoes":
		return "tomato"
	case "potatoes":
		return "potato"
	case "onions":
		return "onion"
	case "bananas":
		return "banana"
	case "moong", "dal":
		return "moong dal"
	}
	return crop
}

type priceQuote struct {
	Crop     string
	Price    float64
	Trend    string
	Regional float64
}

func currentPrice(crop, location string, now time.Time) (priceQuote, bool) {
	crop = normalizeCrop(strings.ToLower(crop))
	market, ok := cropMarkets[crop]
	if !ok {
		return priceQuote{}, false
	}

	month := int(now.Month())
	seasonal := 1.0
	trend := "stable"
	if containsMonth(market.PeakMonths, month) {
		seasonal = 1 - market.Volatility*0.5
		trend = "decreasing"
	} else if containsMonth(market.LowMonths, month) {
		seasonal = 1 + market.Volatility*0.5
		trend = "increasing"
	}

	regional := 1.0
	lower := strings.ToLower(location)
	if strings.Contains(lower, "punjab") || strings.Contains(lower, "haryana") {
		regional = 1.05
	} else if strings.Contains(lower, "maharashtra") || strings.Contains(lower, "karnataka") {
		regional = 0.95
	}

	return priceQuote{
		Crop:     crop,
		Price:    market.BasePrice * seasonal * regional,
		Trend:    trend,
		Regional: regional,
	}, true
}

func containsMonth(months []int, month int) bool {
	for _, m := range months {
		if m == month {
			return true
		}
	}
	return false
}

// quoteCrops picks what to price: the farmer's crop first, padded with
// staples so pre-sowing comparisons have something to compare against.
func quoteCrops(fc *FarmerContext) []string {
	crops := []string{}
	if fc.PreviousCrop != "" {
		crops = append(crops, normalizeCrop(fc.PreviousCrop))
	}
	for _, staple := range []string{"wheat", "rice", "moong dal"} {
		if len(crops) >= 3 {
			break
		}
		if len(crops) == 0 || crops[0] != staple {
			crops = append(crops, staple)
		}
	}
	return crops
}

var marketPricesTool = Tool{
	Name: "market_prices",
	Run: func(fc *FarmerContext, _ string, now time.Time) string {
		var lines []string
		for _, crop := range quoteCrops(fc) {
			quote, ok := currentPrice(crop, fc.Location, now)
			if !ok {
				continue
			}
			lines = append(lines, fmt.Sprintf("- %s: Rs %.0f/quintal (%s)", quote.Crop, quote.Price, quote.Trend))
		}
		if len(lines) == 0 {
			return ""
		}
		return "Current mandi prices:\n" + strings.Join(lines, "\n")
	},
}

var priceForecastTool = Tool{
	Name: "price_forecast",
	Run: func(fc *FarmerContext, _ string, now time.Time) string {
		crop := "wheat"
		if fc.PreviousCrop != "" {
			crop = normalizeCrop(fc.PreviousCrop)
		}
		market, ok := cropMarkets[crop]
		if !ok {
			return ""
		}

		var lines []string
		for i := 1; i <= 3; i++ {
			future := now.AddDate(0, i, 0)
			month := int(future.Month())
			seasonal := 1.0
			trend := "stable"
			if containsMonth(market.PeakMonths, month) {
				seasonal = 1 - market.Volatility*0.5
				trend = "decreasing"
			} else if containsMonth(market.LowMonths, month) {
				seasonal = 1 + market.Volatility*0.5
				trend = "increasing"
			}
			lines = append(lines, fmt.Sprintf("- %s: Rs %.0f/quintal (%s)",
				future.Format("January 2006"), market.BasePrice*seasonal, trend))
		}
		return fmt.Sprintf("Price forecast for %s (next 3 months):\n%s", crop, strings.Join(lines, "\n"))
	},
}

type marketplace struct {
	Name          string
	DistanceKM    float64
	TransportRate float64 // INR per km per quintal trip share
	Discount      float64 // local traders pay below mandi rates
}

var regionMarketplaces = map[string][]marketplace{
	"punjab": {
		{Name: "Ludhiana Mandi", DistanceKM: 15, TransportRate: 3},
		{Name: "Jalandhar Grain Market", DistanceKM: 30, TransportRate: 3},
		{Name: "Amritsar Agricultural Market", DistanceKM: 45, TransportRate: 3},
		{Name: "Local Trader (Village)", Discount: 0.10},
	},
	"maharashtra": {
		{Name: "Pune Mandi", DistanceKM: 20, TransportRate: 4},
		{Name: "Mumbai APMC", DistanceKM: 80, TransportRate: 4},
		{Name: "Nashik Market", DistanceKM: 40, TransportRate: 4},
		{Name: "Local Trader", Discount: 0.12},
	},
	"default": {
		{Name: "District Mandi", DistanceKM: 15, TransportRate: 3},
		{Name: "Regional Market", DistanceKM: 35, TransportRate: 3},
		{Name: "Local Trader", Discount: 0.10},
	},
}

type marketplaceOption struct {
	Name     string
	NetPrice float64
	Payment  string
}

// rankMarketplaces computes the net per-quintal price at each outlet after
// transport and trader discounts, best first.
func rankMarketplaces(crop, location string, now time.Time) []marketplaceOption {
	quote, ok := currentPrice(crop, location, now)
	if !ok {
		return nil
	}

	region := "default"
	lower := strings.ToLower(location)
	for _, r := range []string{"punjab", "maharashtra"} {
		if strings.Contains(lower, r) {
			region = r
			break
		}
	}
	if state, ok := cityStates[lower]; ok {
		if _, known := regionMarketplaces[state]; known {
			region = state
		}
	}

	options := make([]marketplaceOption, 0, len(regionMarketplaces[region]))
	for _, m := range regionMarketplaces[region] {
		price := quote.Price * (1 - m.Discount)
		net := price - m.DistanceKM*m.TransportRate
		payment := "within 2-3 days"
		if strings.Contains(m.Name, "Trader") {
			payment = "immediate"
		}
		options = append(options, marketplaceOption{Name: m.Name, NetPrice: net, Payment: payment})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].NetPrice > options[j].NetPrice })
	return options
}

var marketplacesTool = Tool{
	Name: "marketplaces",
	Run: func(fc *FarmerContext, _ string, now time.Time) string {
		crop := "wheat"
		if fc.PreviousCrop != "" {
			crop = normalizeCrop(fc.PreviousCrop)
		}
		options := rankMarketplaces(crop, fc.Location, now)
		if len(options) == 0 {
			return ""
		}

		var lines []string
		for _, opt := range options {
			lines = append(lines, fmt.Sprintf("- %s: net Rs %.0f/quintal after transport, payment %s",
				opt.Name, opt.NetPrice, opt.Payment))
		}
		return fmt.Sprintf("Where to sell %s (best net price first):\n%s", crop, strings.Join(lines, "\n"))
	},
}

type profitEstimate struct {
	Revenue       float64
	Costs         float64
	NetProfit     float64
	MarginPercent float64
	ROIPercent    float64
	Profitability string
}

func estimateProfit(yieldQuintals, pricePerQuintal, totalCosts float64) profitEstimate {
	revenue := yieldQuintals * pricePerQuintal
	net := revenue - totalCosts

	est := profitEstimate{Revenue: revenue, Costs: totalCosts, NetProfit: net}
	if revenue > 0 {
		est.MarginPercent = net / revenue * 100
	}
	if totalCosts > 0 {
		est.ROIPercent = net / totalCosts * 100
	}
	switch {
	case est.MarginPercent > 30:
		est.Profitability = "high"
	case est.MarginPercent > 15:
		est.Profitability = "medium"
	default:
		est.Profitability = "low"
	}
	return est
}

var profitEstimateTool = Tool{
	Name: "profit_estimate",
	Run: func(fc *FarmerContext, _ string, now time.Time) string {
		crop := "wheat"
		if fc.PreviousCrop != "" {
			crop = normalizeCrop(fc.PreviousCrop)
		}
		quote, ok := currentPrice(crop, fc.Location, now)
		if !ok {
			return ""
		}

		// Illustrative one-acre season: 20 quintals against typical input
		// costs (seed, fertilizer, labor, irrigation).
		est := estimateProfit(20, quote.Price, 22000)
		return fmt.Sprintf(
			"Profit estimate for %s (20 quintals at today's Rs %.0f/quintal, Rs 22000 input costs): "+
				"revenue Rs %.0f, net Rs %.0f, margin %.0f%%, ROI %.0f%% (%s profitability).",
			crop, quote.Price, est.Revenue, est.NetProfit, est.MarginPercent, est.ROIPercent, est.Profitability)
	},
}
