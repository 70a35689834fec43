package advisor

import (
	"context"
	"testing"
)

type scriptedClient struct {
	replies []string
	err     error
	calls   int
}

func (c *scriptedClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	reply := c.replies[0]
	if len(c.replies) > 1 {
		c.replies = c.replies[1:]
	}
	return reply, nil
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"What should I plant this season?", "en"},
		{"मुझे गेहूं के बारे में बताओ", "hi"},
		{"ਮੇਰੀ ਫ਼ਸਲ ਕਿਵੇਂ ਹੈ", "pa"},
		{"என் பயிர் எப்படி உள்ளது", "ta"},
		{"kya lagayein is season me", "en"},
	}

	for _, tc := range tests {
		if got := DetectLanguage(tc.text); got != tc.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestTranslate_SameLanguagePassthrough(t *testing.T) {
	primary := &scriptedClient{replies: []string{"unused"}}
	tr := NewTranslator(primary, &scriptedClient{replies: []string{"unused"}})

	got, err := tr.Translate(context.Background(), "hello", "en", "en")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "hello" {
		t.Errorf("Expected passthrough, got %q", got)
	}
	if primary.calls != 0 {
		t.Error("Expected no model call for same-language translation")
	}
}

func TestTranslate_AgreementPrefersPrimary(t *testing.T) {
	primary := &scriptedClient{replies: []string{"sow wheat in november"}}
	secondary := &scriptedClient{replies: []string{"sow wheat in november please"}}
	tr := NewTranslator(primary, secondary)

	got, err := tr.Translate(context.Background(), "x", "hi", "en")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "sow wheat in november" {
		t.Errorf("Expected primary result on agreement, got %q", got)
	}
}

func TestTranslate_DisagreementPrefersShorter(t *testing.T) {
	primary := &scriptedClient{replies: []string{"a very long and entirely different rendering of the sentence"}}
	secondary := &scriptedClient{replies: []string{"short version"}}
	tr := NewTranslator(primary, secondary)

	got, err := tr.Translate(context.Background(), "x", "hi", "en")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "short version" {
		t.Errorf("Expected the shorter result on disagreement, got %q", got)
	}
}

func TestTranslate_SecondaryFailureUsesPrimary(t *testing.T) {
	primary := &scriptedClient{replies: []string{"sow wheat"}}
	secondary := &scriptedClient{err: context.DeadlineExceeded}
	tr := NewTranslator(primary, secondary)

	got, err := tr.Translate(context.Background(), "x", "hi", "en")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "sow wheat" {
		t.Errorf("Expected primary result, got %q", got)
	}
}

func TestToEnglish_EnglishPassthrough(t *testing.T) {
	tr := NewTranslator(&scriptedClient{replies: []string{"x"}}, &scriptedClient{replies: []string{"x"}})

	got, trusted, err := tr.ToEnglish(context.Background(), "hello", "en")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "hello" || !trusted {
		t.Errorf("Expected trusted passthrough, got %q trusted=%v", got, trusted)
	}
}

func TestWordSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		min  float64
		max  float64
	}{
		{"sow wheat now", "sow wheat now", 1.0, 1.0},
		{"sow wheat now", "harvest rice later", 0, 0},
		{"", "anything", 0, 0},
	}

	for _, tc := range tests {
		got := wordSimilarity(tc.a, tc.b)
		if got < tc.min || got > tc.max {
			t.Errorf("wordSimilarity(%q, %q) = %f, want [%f, %f]", tc.a, tc.b, got, tc.min, tc.max)
		}
	}
}
