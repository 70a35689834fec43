// Package advisor runs farmer questions through a small team of
// specialist agents (pre-sowing, growth, harvest) backed by a chat
// completion provider, and picks the most relevant answer.
package advisor

import "context"

// ChatClient is the minimal surface the orchestrator needs from an LLM
// provider.
type ChatClient interface {
	// Complete answers a single prompt under the given system instruction.
	Complete(ctx context.Context, system, prompt string) (string, error)
}
