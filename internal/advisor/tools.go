package advisor

import (
	"strings"
	"time"

	"fasalmitra/internal/models"
)

// Tool produces a field-data briefing for an agent. Briefings are built
// from the advisory datasets and the farmer's own words, then folded into
// the agent's system prompt so answers cite real numbers instead of
// inventing them.
type Tool struct {
	Name string
	Run  func(fc *FarmerContext, message string, now time.Time) string
}

// agentTools returns the tools wired to an agent. The growth expert's kit
// depends on the farming setup: greenhouse farmers get sensor readings,
// everyone else gets plant health analysis.
func agentTools(agent Agent, fc *FarmerContext) []Tool {
	switch agent.Phase {
	case models.PhasePreSowing:
		return []Tool{
			weatherOutlookTool,
			seasonalPatternsTool,
			soilSuitabilityTool,
			marketPricesTool,
			priceForecastTool,
		}
	case models.PhaseGrowth:
		if fc.FarmerType == "greenhouse" {
			return []Tool{weatherOutlookTool, greenhouseReadingsTool}
		}
		return []Tool{weatherOutlookTool, plantAnalysisTool}
	case models.PhaseHarvest:
		return []Tool{
			marketPricesTool,
			marketplacesTool,
			profitEstimateTool,
			priceForecastTool,
		}
	}
	return nil
}

// runTools collects the non-empty briefings under a single heading.
func runTools(tools []Tool, fc *FarmerContext, message string, now time.Time) string {
	var sections []string
	for _, tool := range tools {
		if out := tool.Run(fc, message, now); out != "" {
			sections = append(sections, out)
		}
	}
	if len(sections) == 0 {
		return ""
	}
	return "FIELD DATA (from advisory tools, cite it where relevant):\n" +
		strings.Join(sections, "\n\n")
}
