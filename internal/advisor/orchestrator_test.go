package advisor

import (
	"strings"
	"testing"

	"fasalmitra/internal/models"
)

const longAdvice = "For wheat in loamy soil you should apply a balanced NPK dose before sowing and irrigate lightly after."

func TestSelectReply_KeywordMatch(t *testing.T) {
	replies := []agentReply{
		{agent: Agent{Name: "HarvestExpert", Phase: models.PhaseHarvest, Keywords: []string{"harvest", "storage"}}, text: longAdvice},
		{agent: Agent{Name: "PreSowingExpert", Phase: models.PhasePreSowing, Keywords: []string{"seed", "sowing", "soil"}}, text: longAdvice},
	}

	best := selectReply(replies, "Which seed should I buy for my soil?", models.PhaseHarvest)

	if best.agent.Name != "PreSowingExpert" {
		t.Errorf("Expected keyword matches to outweigh phase, got %s", best.agent.Name)
	}
}

func TestSelectReply_PhaseBreaksTie(t *testing.T) {
	replies := []agentReply{
		{agent: Agent{Name: "GrowthExpert", Phase: models.PhaseGrowth}, text: longAdvice},
		{agent: Agent{Name: "HarvestExpert", Phase: models.PhaseHarvest}, text: longAdvice},
	}

	best := selectReply(replies, "hello", models.PhaseHarvest)

	if best.agent.Name != "HarvestExpert" {
		t.Errorf("Expected the phase-matching agent to win a tie, got %s", best.agent.Name)
	}
}

func TestSelectReply_PenalizesShortReplies(t *testing.T) {
	replies := []agentReply{
		{agent: Agent{Name: "Short", Phase: models.PhaseGrowth}, text: "Use urea."},
		{agent: Agent{Name: "Long", Phase: models.PhaseHarvest}, text: longAdvice},
	}

	best := selectReply(replies, "hello", models.PhaseGrowth)

	if best.agent.Name != "Long" {
		t.Errorf("Expected the short reply to be penalized, got %s", best.agent.Name)
	}
}

func TestSelectReply_RewardsRecommendations(t *testing.T) {
	filler := strings.Repeat("The weather is typical for this time of year. ", 3)
	replies := []agentReply{
		{agent: Agent{Name: "Plain"}, text: filler},
		{agent: Agent{Name: "Actionable"}, text: "I would recommend drip irrigation for your field given the current heat. " + filler},
	}

	best := selectReply(replies, "hello", models.PhaseGrowth)

	if best.agent.Name != "Actionable" {
		t.Errorf("Expected the recommending agent to win, got %s", best.agent.Name)
	}
}

func TestBuildPrompt_IncludesRecentHistoryOnly(t *testing.T) {
	history := make([]Exchange, 15)
	for i := range history {
		history[i] = Exchange{Message: "question", Response: "answer"}
	}
	history[0] = Exchange{Message: "the very first question", Response: "a"}

	prompt := buildPrompt(&FarmerContext{}, history, "what now?")

	if strings.Contains(prompt, "the very first question") {
		t.Error("Expected old exchanges to be dropped from the prompt")
	}
	if !strings.Contains(prompt, "FARMER'S CURRENT QUESTION:\nwhat now?") {
		t.Errorf("Expected current question at the end, got %q", prompt)
	}
}

func TestBuildPrompt_IncludesContextSummary(t *testing.T) {
	fc := &FarmerContext{Location: "punjab", SoilType: "loamy"}

	prompt := buildPrompt(fc, nil, "what to sow?")

	if !strings.Contains(prompt, "KNOWN FARMER DETAILS") {
		t.Errorf("Expected context summary in prompt, got %q", prompt)
	}
}

func TestDefaultAgents_CoverAllPhases(t *testing.T) {
	agents := defaultAgents()
	phases := map[string]bool{}
	for _, a := range agents {
		phases[a.Phase] = true
	}
	for _, phase := range []string{models.PhasePreSowing, models.PhaseGrowth, models.PhaseHarvest} {
		if !phases[phase] {
			t.Errorf("Expected an agent for phase %s", phase)
		}
	}
}
