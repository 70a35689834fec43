package advisor

import (
	"context"
	"fmt"

	"fasalmitra/internal/config"
)

// NewChatClient builds the configured provider. Groq is the default;
// Gemini is selected with ADVISOR_PROVIDER=gemini.
func NewChatClient(ctx context.Context, cfg *config.Config) (ChatClient, error) {
	switch cfg.AdvisorProvider {
	case "", "groq":
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is not set")
		}
		return NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
		return NewGeminiClient(ctx, cfg.GeminiAPIKey)
	default:
		return nil, fmt.Errorf("unknown advisor provider %q", cfg.AdvisorProvider)
	}
}

// NewTranslatorFromConfig builds the dual-model translator. Translation
// always rides on Groq, whichever provider answers the farming questions.
// Returns nil when translation is disabled or no Groq key is configured.
func NewTranslatorFromConfig(cfg *config.Config) *Translator {
	if !cfg.TranslationEnabled || cfg.GroqAPIKey == "" {
		return nil
	}
	primary := NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.TranslatePrimary)
	secondary := NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.TranslateSecondary)
	return NewTranslator(primary, secondary)
}
