package advisor

import (
	"context"
	"strings"
	"unicode"
)

const translatorSystemPrompt = "You are a translator. Provide only the translated text."

// Translator moves farmer messages into English for the agents and the
// advice back into the farmer's language. Two models translate in
// parallel-distrust: when their outputs diverge too much, the shorter one
// is taken as less likely to have hallucinated.
type Translator struct {
	primary   ChatClient
	secondary ChatClient
}

func NewTranslator(primary, secondary ChatClient) *Translator {
	return &Translator{primary: primary, secondary: secondary}
}

// DetectLanguage guesses the language from the script of the text. Latin
// text is treated as English; agents handle romanized Hindi well enough
// that no model call is spent on it.
func DetectLanguage(text string) string {
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Devanagari, r):
			return "hi"
		case unicode.Is(unicode.Gurmukhi, r):
			return "pa"
		case unicode.Is(unicode.Tamil, r):
			return "ta"
		case unicode.Is(unicode.Telugu, r):
			return "te"
		case unicode.Is(unicode.Bengali, r):
			return "bn"
		case unicode.Is(unicode.Gujarati, r):
			return "gu"
		case unicode.Is(unicode.Kannada, r):
			return "kn"
		case unicode.Is(unicode.Malayalam, r):
			return "ml"
		}
	}
	return "en"
}

// Translate converts text between languages. Both models run; their
// results are reconciled by word overlap.
func (t *Translator) Translate(ctx context.Context, text, src, tgt string) (string, error) {
	if src == tgt {
		return text, nil
	}

	prompt := "Translate from " + src + " to " + tgt + ".\nOnly provide the translated text, nothing else.\n\nText:\n" + text

	first, err := t.primary.Complete(ctx, translatorSystemPrompt, prompt)
	if err != nil {
		return "", err
	}
	first = strings.TrimSpace(first)

	second, err := t.secondary.Complete(ctx, translatorSystemPrompt, prompt)
	if err != nil {
		// One good translation is enough.
		return first, nil
	}
	second = strings.TrimSpace(second)

	if wordSimilarity(first, second) >= 0.6 {
		return first, nil
	}
	if len(second) < len(first) {
		return second, nil
	}
	return first, nil
}

// ToEnglish translates the farmer's message and reports whether a
// back-translation resembles the original closely enough to trust it.
func (t *Translator) ToEnglish(ctx context.Context, text, lang string) (string, bool, error) {
	if lang == "en" {
		return text, true, nil
	}

	english, err := t.Translate(ctx, text, lang, "en")
	if err != nil {
		return "", false, err
	}

	back, err := t.Translate(ctx, english, "en", lang)
	if err != nil {
		// Could not verify; accept the translation rather than block the chat.
		return english, true, nil
	}
	return english, wordSimilarity(text, back) >= 0.45, nil
}

// FromEnglish translates the advisor's response back to the farmer's
// language.
func (t *Translator) FromEnglish(ctx context.Context, text, lang string) (string, error) {
	return t.Translate(ctx, text, "en", lang)
}

// wordSimilarity is the Jaccard index over lowercase word sets.
func wordSimilarity(a, b string) float64 {
	aSet := wordSet(a)
	bSet := wordSet(b)
	if len(aSet) == 0 || len(bSet) == 0 {
		return 0
	}

	intersection := 0
	for w := range aSet {
		if bSet[w] {
			intersection++
		}
	}
	union := len(aSet) + len(bSet) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}
