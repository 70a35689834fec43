package advisor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// Exchange is one past message/response pair used to rebuild context.
type Exchange struct {
	Message  string
	Response string
}

// Result is the orchestrator's answer to one farmer message.
type Result struct {
	Response      string
	SelectedAgent string
	ActiveAgents  []string
}

type agentReply struct {
	agent Agent
	text  string
}

// Orchestrator consults every agent concurrently (bounded by a token
// bucket) and selects the most relevant reply by keyword, phase and
// quality scoring. Each agent is briefed with field data from its tools
// before answering.
type Orchestrator struct {
	client   ChatClient
	agents   []Agent
	store    *ContextStore
	rateChan chan struct{}
}

func NewOrchestrator(client ChatClient, store *ContextStore, concurrency int) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	rateChan := make(chan struct{}, concurrency)
	for i := 0; i < concurrency; i++ {
		rateChan <- struct{}{}
	}

	return &Orchestrator{
		client:   client,
		agents:   defaultAgents(),
		store:    store,
		rateChan: rateChan,
	}
}

// Consult answers one farmer message within a season. History is the
// season's stored conversation; it is only scanned when no cached context
// exists for the season yet.
func (o *Orchestrator) Consult(ctx context.Context, seasonID, phase string, history []Exchange, message string) (*Result, error) {
	fc, ok := o.store.Load(ctx, seasonID)
	if !ok {
		fc = &FarmerContext{}
		for _, ex := range history {
			fc.Absorb(ex.Message)
		}
	}
	fc.Absorb(message)
	if err := o.store.Save(ctx, seasonID, fc); err != nil {
		log.Printf("advisor: failed to cache context for season %s: %v", seasonID, err)
	}

	prompt := buildPrompt(fc, history, message)

	replies := o.fanOut(ctx, fc, message, prompt)
	if len(replies) == 0 {
		return nil, fmt.Errorf("no agent produced a response")
	}

	best := selectReply(replies, message, phase)

	active := make([]string, 0, len(replies))
	for _, r := range replies {
		active = append(active, r.agent.Name)
	}

	return &Result{
		Response:      best.text,
		SelectedAgent: best.agent.Name,
		ActiveAgents:  active,
	}, nil
}

func (o *Orchestrator) fanOut(ctx context.Context, fc *FarmerContext, message, prompt string) []agentReply {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		replies []agentReply
	)

	now := time.Now()
	for _, agent := range o.agents {
		wg.Add(1)
		go func(agent Agent) {
			defer wg.Done()

			select {
			case <-o.rateChan:
				defer func() { o.rateChan <- struct{}{} }()
			case <-ctx.Done():
				return
			}

			system := agent.SystemPrompt
			if summary := fc.Summary(); summary != "" {
				system = system + "\n\n" + summary
			}
			if briefing := runTools(agentTools(agent, fc), fc, message, now); briefing != "" {
				system = system + "\n\n" + briefing
			}

			text, err := o.client.Complete(ctx, system, prompt)
			if err != nil {
				log.Printf("advisor: %s failed: %v", agent.Name, err)
				return
			}

			mu.Lock()
			replies = append(replies, agentReply{agent: agent, text: text})
			mu.Unlock()
		}(agent)
	}

	wg.Wait()
	return replies
}

func buildPrompt(fc *FarmerContext, history []Exchange, message string) string {
	var sb strings.Builder

	if summary := fc.Summary(); summary != "" {
		sb.WriteString(summary)
		sb.WriteString("\n\n")
	}

	if len(history) > 0 {
		sb.WriteString("PREVIOUS CONVERSATION:\n")
		// Only the most recent exchanges matter for continuity.
		start := 0
		if len(history) > 10 {
			start = len(history) - 10
		}
		for _, ex := range history[start:] {
			sb.WriteString("Farmer: " + ex.Message + "\n")
			sb.WriteString("Advisor: " + ex.Response + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("FARMER'S CURRENT QUESTION:\n")
	sb.WriteString(message)
	return sb.String()
}

// selectReply scores each agent's reply: +10 per topic keyword present in
// the farmer's message, +5 when the agent matches the season phase, -20
// for very short replies, +3 for clarifying questions, +5 for concrete
// recommendations. Highest score wins.
func selectReply(replies []agentReply, message, phase string) agentReply {
	lower := strings.ToLower(message)

	best := replies[0]
	bestScore := -1 << 31

	for _, r := range replies {
		score := 0

		for _, kw := range r.agent.Keywords {
			if strings.Contains(lower, kw) {
				score += 10
			}
		}

		if r.agent.Phase == phase {
			score += 5
		}

		if len(r.text) < 50 {
			score -= 20
		}
		if strings.Contains(r.text, "?") {
			score += 3
		}
		textLower := strings.ToLower(r.text)
		for _, word := range []string{"recommend", "suggest", "should", "would advise"} {
			if strings.Contains(textLower, word) {
				score += 5
				break
			}
		}

		if score > bestScore {
			bestScore = score
			best = r
		}
	}

	return best
}
