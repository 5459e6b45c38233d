package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/citation"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/match"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/relevance"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/sentiment"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/visibility"
)

// Engine orchestrates the analysis of one assistant response: brand
// matching, relevance filtering, sentiment classification, visibility
// scoring, and citation extraction. The whole pass is pure computation
// with no I/O; engines are safe for concurrent use across responses.
type Engine struct {
	matcher    *match.Matcher
	filter     *relevance.Filter
	classifier *sentiment.Classifier
	strategy   visibility.Strategy
	citations  *citation.Analyzer
	config     *model.Config
}

// NewEngine creates an engine from configuration
func NewEngine(cfg *model.Config) *Engine {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	return &Engine{
		matcher:    match.NewMatcher(),
		filter:     relevance.NewFilter(cfg.Relevance.Threshold),
		classifier: sentiment.NewClassifier(),
		strategy:   visibility.ForName(cfg.Scoring.Strategy, cfg.Scoring.Weights),
		citations:  citation.NewAnalyzer(),
		config:     cfg,
	}
}

// Request is one response to analyze. Catalog is read-only; the engine
// never mutates it.
type Request struct {
	ResponseID   string
	Provider     string
	ResponseText string
	RawPayload   []byte // Provider payload for citation extraction, may be nil
	Catalog      model.Catalog
}

// brandPresence aggregates the surviving mentions of one distinct brand
type brandPresence struct {
	name     string
	isOrg    bool
	firstPos int
	count    int
	first    model.BrandMention
}

// Analyze runs the full pass and returns the analysis bundle
func (e *Engine) Analyze(req Request) (*model.Analysis, error) {
	if !req.Catalog.Valid() {
		return nil, fmt.Errorf("catalog contains an entry with an empty name")
	}
	if len(req.Catalog.OrgBrands()) == 0 {
		return nil, fmt.Errorf("catalog has no org brand")
	}

	// 1. Detect every catalog brand in the response
	mentions := e.matcher.FindMatches(req.ResponseText, req.Catalog)

	// 2. Drop likely false positives
	scored := e.filter.FilterRelevantBrands(mentions, relevance.Context{
		Industry:       e.config.Relevance.Industry,
		ResponseLength: len(req.ResponseText),
	})
	kept := make([]model.BrandMention, 0, len(scored))
	for _, sm := range scored {
		kept = append(kept, sm.Mention)
	}

	// 3. Aggregate per distinct brand, ordered by first appearance
	brands := aggregateBrands(kept, req.Catalog)

	// 4. One sentiment verdict per distinct brand
	sentiments := make([]model.BrandSentiment, 0, len(brands))
	for _, b := range brands {
		sentiments = append(sentiments, e.classifier.Classify(b.name, b.first.ContextWindow, req.ResponseText))
	}

	// 5. Score the tracked brand's visibility
	vis, orgPresent := e.scoreVisibility(brands, sentiments, len(req.ResponseText))

	// 6. Extract and enrich citations
	citations := e.citations.Analyze(req.Provider, req.RawPayload, req.ResponseText, req.Catalog)

	return &model.Analysis{
		ResponseID:      req.ResponseID,
		Provider:        req.Provider,
		AnalyzedAt:      time.Now().UTC(),
		Mentions:        kept,
		Sentiments:      sentiments,
		Visibility:      vis,
		Citations:       citations,
		OrgBrandPresent: orgPresent,
	}, nil
}

// aggregateBrands groups mentions by brand, ordered by earliest position
func aggregateBrands(mentions []model.BrandMention, catalog model.Catalog) []brandPresence {
	byBrand := make(map[string]*brandPresence)
	for _, m := range mentions {
		b, ok := byBrand[m.Brand]
		if !ok {
			entry, _ := catalog.Lookup(m.Brand)
			b = &brandPresence{name: m.Brand, isOrg: entry.IsOrgBrand, firstPos: m.Position, first: m}
			byBrand[m.Brand] = b
		}
		b.count++
		if m.Position < b.firstPos {
			b.firstPos = m.Position
			b.first = m
		}
	}

	out := make([]brandPresence, 0, len(byBrand))
	for _, b := range byBrand {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].firstPos < out[j].firstPos })
	return out
}

// scoreVisibility builds the strategy input for the tracked brand and runs
// the configured strategy
func (e *Engine) scoreVisibility(brands []brandPresence, sentiments []model.BrandSentiment, responseLen int) (model.VisibilityScore, bool) {
	orgIdx := -1
	competitors := 0
	for i, b := range brands {
		if b.isOrg {
			if orgIdx < 0 {
				orgIdx = i
			}
		} else {
			competitors++
		}
	}

	in := visibility.Input{
		OrgPresent:      orgIdx >= 0,
		ProminenceIndex: orgIdx,
		Position:        orgIdx,
		CompetitorCount: competitors,
		Sentiment:       model.SentimentNeutral,
	}

	if orgIdx >= 0 {
		org := brands[orgIdx]
		for _, s := range sentiments {
			if s.Brand == org.name {
				in.Sentiment = s.Sentiment
				in.SentimentConfidence = s.Confidence
				in.Context = s.Context
				break
			}
		}
		in.Prominence = visibility.Prominence(org.count, len(brands), org.firstPos, responseLen)
	}

	return e.strategy.Score(in), orgIdx >= 0
}
