package sentiment

import (
	"testing"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

func TestClassify_Positive(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("Acme", "", "You should try Acme, it has excellent support.")
	if got.Sentiment != model.SentimentPositive {
		t.Errorf("sentiment = %s, want positive", got.Sentiment)
	}
	if got.Confidence <= 0 || got.Confidence > 0.9 {
		t.Errorf("confidence = %f, want (0, 0.9]", got.Confidence)
	}
}

func TestClassify_Negative(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("TechCorp", "", "Some avoid TechCorp due to pricing issues.")
	if got.Sentiment != model.SentimentNegative {
		t.Errorf("sentiment = %s, want negative", got.Sentiment)
	}
}

func TestClassify_Neutral(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("Acme", "", "Acme was also listed in the report.")
	if got.Sentiment != model.SentimentNeutral {
		t.Errorf("sentiment = %s, want neutral", got.Sentiment)
	}
	if got.Confidence != 0.5 {
		t.Errorf("neutral confidence = %f, want 0.5", got.Confidence)
	}
}

func TestClassify_NegationOverridesPositiveWords(t *testing.T) {
	c := NewClassifier()

	// Positive-word count exceeds negative-word count, but the negation
	// pattern must win
	got := c.Classify("X", "", "I would not recommend X, it's the best known but great only on paper.")
	if got.Sentiment != model.SentimentNegative {
		t.Errorf("sentiment = %s, want negative (negation override)", got.Sentiment)
	}
	if got.Confidence > 0.8 {
		t.Errorf("confidence = %f, want <= 0.8", got.Confidence)
	}
}

func TestClassify_PicksFirstSentenceWithBrand(t *testing.T) {
	c := NewClassifier()

	response := "Many tools exist. Acme excels at automation. Acme is also expensive."
	got := c.Classify("Acme", "", response)
	if got.Sentiment != model.SentimentPositive {
		t.Errorf("sentiment = %s, want positive from first brand sentence", got.Sentiment)
	}
}

func TestClassify_FallsBackToMentionContext(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("Acme", "teams love Acme for this", "Nothing about that brand here.")
	if got.Sentiment != model.SentimentPositive {
		t.Errorf("sentiment = %s, want positive from fallback context", got.Sentiment)
	}
}

func TestClassifyContext_Priority(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		sentence string
		want     model.MentionContext
	}{
		{"I recommend Acme for small teams", model.ContextRecommendation},
		// Recommendation wins even when comparison words are present
		{"I recommend Acme, it is better than TechCorp", model.ContextRecommendation},
		{"Acme versus TechCorp is a common debate", model.ContextComparison},
		{"such as Acme and a few others", model.ContextExample},
		{"Acme appeared in the results", model.ContextMention},
	}

	for _, tc := range cases {
		if got := c.classifyContext(tc.sentence); got != tc.want {
			t.Errorf("classifyContext(%q) = %s, want %s", tc.sentence, got, tc.want)
		}
	}
}

func TestClassify_TwoBrandsOneSentence(t *testing.T) {
	c := NewClassifier()
	response := "You should try Acme Corp, though some avoid TechCorp due to pricing issues."

	acme := c.Classify("Acme Corp", "", response)
	if acme.Sentiment != model.SentimentPositive || acme.Context != model.ContextRecommendation {
		t.Errorf("Acme Corp = %s/%s, want positive/recommendation", acme.Sentiment, acme.Context)
	}

	tech := c.Classify("TechCorp", "", response)
	if tech.Sentiment != model.SentimentNegative || tech.Context != model.ContextMention {
		t.Errorf("TechCorp = %s/%s, want negative/mention", tech.Sentiment, tech.Context)
	}
}

func TestClassify_EmptyInputs(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("Acme", "", "")
	if got.Sentiment != model.SentimentNeutral {
		t.Errorf("sentiment = %s, want neutral for empty response", got.Sentiment)
	}
}
