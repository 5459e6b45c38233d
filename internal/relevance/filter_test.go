package relevance

import (
	"testing"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

func mention(brand, context string, pos ...int) model.BrandMention {
	p := 0
	if len(pos) > 0 {
		p = pos[0]
	}
	return model.BrandMention{
		Brand:         brand,
		Confidence:    1.0,
		MatchType:     model.MatchExact,
		Position:      p,
		ContextWindow: context,
	}
}

func TestScoreRelevance_DenylistedWord(t *testing.T) {
	f := NewFilter(0)

	got := f.ScoreRelevance(mention("Platform", "the best platform for teams"), Context{})
	if got != 0 {
		t.Errorf("denylisted word scored %f, want 0", got)
	}
}

func TestScoreRelevance_ShortCandidateNeedsStrongContext(t *testing.T) {
	f := NewFilter(0)

	weak := f.ScoreRelevance(mention("X1", "something vague about X1 here"), Context{})
	if weak != 0 {
		t.Errorf("short candidate without indicators scored %f, want 0", weak)
	}

	strong := f.ScoreRelevance(mention("X1", "X1 is a company founded in 2020"), Context{})
	if strong == 0 {
		t.Error("short candidate with strong indicators should survive")
	}
}

func TestScoreRelevance_ExamplePenalty(t *testing.T) {
	f := NewFilter(0)

	plain := f.ScoreRelevance(mention("Acme", "Acme handles this well"), Context{})
	example := f.ScoreRelevance(mention("Acme", "for example, Acme handles this"), Context{})

	if example >= plain {
		t.Errorf("example context %f should score below plain context %f", example, plain)
	}
}

func TestScoreRelevance_IndustryBoost(t *testing.T) {
	f := NewFilter(0)

	base := f.ScoreRelevance(mention("Salesforce", "Salesforce handles pipelines"), Context{})
	boosted := f.ScoreRelevance(mention("Salesforce", "Salesforce handles pipelines"), Context{Industry: "crm"})

	if boosted <= base {
		t.Errorf("industry boost should raise score: base %f, boosted %f", base, boosted)
	}
}

func TestScoreRelevance_IndicatorsCompound(t *testing.T) {
	f := NewFilter(0)

	// Both positive ("recommend") and negative ("refers to") fire: the
	// adjustments compound (x1.3 * x0.3) rather than cancel
	ctx := "we recommend this, though the term refers to a broader category"
	both := f.ScoreRelevance(mention("Acme", ctx), Context{})
	neutral := f.ScoreRelevance(mention("Acme", "Acme ships software"), Context{})

	if both >= neutral {
		t.Errorf("compounded indicators %f should land below neutral %f", both, neutral)
	}
}

func TestScoreRelevance_PositionDecay(t *testing.T) {
	f := NewFilter(0)

	early := f.ScoreRelevance(mention("Acme", "Acme ships software", 0), Context{})
	late := f.ScoreRelevance(mention("Acme", "Acme ships software", 900), Context{})
	veryLate := f.ScoreRelevance(mention("Acme", "Acme ships software", 5000), Context{})

	if late >= early {
		t.Errorf("later mention %f should score below earlier %f", late, early)
	}
	// Decay saturates at the 1000-char normalization window
	if veryLate <= 0 {
		t.Error("decay must never zero out a mention on its own")
	}
}

func TestScoreRelevance_DomainBonus(t *testing.T) {
	f := NewFilter(0)

	plain := f.ScoreRelevance(mention("acmetool", "acmetool ships software"), Context{})
	domain := f.ScoreRelevance(mention("acmetool.io", "acmetool.io ships software"), Context{})

	if domain <= plain {
		t.Errorf("domain-looking candidate %f should score above plain %f", domain, plain)
	}
}

func TestScoreRelevance_Bounds(t *testing.T) {
	f := NewFilter(0)

	// Stack every boost: industry brand, positive indicator, domain-ish, early
	m := mention("salesforce.com", "we recommend salesforce.com, a trusted provider", 0)
	got := f.ScoreRelevance(m, Context{Industry: "crm"})
	if got < 0 || got > 1 {
		t.Errorf("score %f outside [0,1]", got)
	}
}

func TestFilterRelevantBrands_ThresholdAndOrder(t *testing.T) {
	f := NewFilter(0.3)

	mentions := []model.BrandMention{
		mention("Acme", "we recommend Acme, a trusted provider", 0),
		mention("Platform", "the platform for teams", 10),
		mention("Beta", "for example, Beta is one such option", 800),
	}

	got := f.FilterRelevantBrands(mentions, Context{})
	for _, sm := range got {
		if sm.Relevance < 0.3 {
			t.Errorf("mention %q below threshold: %f", sm.Mention.Brand, sm.Relevance)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Relevance > got[i-1].Relevance {
			t.Error("results not ranked by relevance descending")
		}
	}
}

func TestApplyBrandFilters(t *testing.T) {
	in := []string{
		"Acme", "platform", "Nike", "42", "x", "ACME", "TechCorp",
	}
	want := []string{"Acme", "TechCorp"}

	got := ApplyBrandFilters(in)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
