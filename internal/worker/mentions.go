package worker

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/cache"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/match"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

var errRobotsDisallowed = errors.New("robots.txt disallows fetch")

// RobotsGate is the robots.txt decision the checker consults before each
// fetch; satisfied by util.RobotsChecker
type RobotsGate interface {
	Allowed(ctx context.Context, rawURL string) bool
}

// TextFetcher retrieves a page's visible text; satisfied by PageFetcher
type TextFetcher interface {
	FetchText(ctx context.Context, rawURL string) (string, error)
}

// MentionChecker revisits citations whose brand-mention verdict is still
// unknown, fetching the live page and re-running brand detection. Failures
// of any kind leave the verdict unknown; re-runs on the same citations are
// idempotent, so an external scheduler may safely retry.
type MentionChecker struct {
	robots        RobotsGate
	pages         TextFetcher
	limiter       *Limiter
	store         cache.Cache
	cacheTTL      time.Duration
	concurrency   int
	batchDelay    time.Duration
	contentBudget int
	logger        *zap.Logger
}

// CheckerOptions bundles the checker's collaborators and bounds
type CheckerOptions struct {
	Robots        RobotsGate
	Pages         TextFetcher
	Limiter       *Limiter    // nil disables per-domain pacing
	Cache         cache.Cache // nil disables caching
	CacheTTL      time.Duration
	Concurrency   int
	BatchDelay    time.Duration
	ContentBudget int
	Logger        *zap.Logger
}

// NewMentionChecker assembles a checker from explicit collaborators. The
// cache is injected rather than process-global so multi-instance
// deployments can share a backend.
func NewMentionChecker(opts CheckerOptions) *MentionChecker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 3
	}
	if opts.ContentBudget <= 0 {
		opts.ContentBudget = 50_000
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &MentionChecker{
		robots:        opts.Robots,
		pages:         opts.Pages,
		limiter:       opts.Limiter,
		store:         opts.Cache,
		cacheTTL:      opts.CacheTTL,
		concurrency:   opts.Concurrency,
		batchDelay:    opts.BatchDelay,
		contentBudget: opts.ContentBudget,
		logger:        opts.Logger,
	}
}

// cachedVerdict is the serialized per-URL verification result
type cachedVerdict struct {
	Verdict    model.MentionVerdict `json:"verdict"`
	Confidence float64              `json:"confidence"`
	Brand      string               `json:"brand,omitempty"`
}

// Process verifies every unknown-verdict citation in the list and returns
// the enriched copy. Citations are processed in fixed-size batches with a
// pause between batches to bound request rate.
func (m *MentionChecker) Process(ctx context.Context, citations []model.Citation, catalog model.Catalog) []model.Citation {
	out := make([]model.Citation, len(citations))
	copy(out, citations)

	// Indexes of citations that still need a verdict
	pending := make([]int, 0, len(out))
	for i, c := range out {
		if c.BrandMention == model.VerdictUnknown {
			pending = append(pending, i)
		}
	}

	for start := 0; start < len(pending); start += m.concurrency {
		if ctx.Err() != nil {
			return out
		}

		end := start + m.concurrency
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		pool := NewPool(m.concurrency)
		pool.Start()
		for _, idx := range batch {
			pool.Submit(&verdictJob{checker: m, index: idx, citation: out[idx], catalog: catalog})
		}
		for _, res := range pool.Wait() {
			vr, ok := res.(*verdictResult)
			if !ok || vr.err != nil {
				continue // verdict stays unknown
			}
			out[vr.index].BrandMention = vr.verdict.Verdict
			out[vr.index].BrandMentionConfidence = vr.verdict.Confidence
			out[vr.index].MatchedBrand = vr.verdict.Brand
		}

		if end < len(pending) && m.batchDelay > 0 {
			select {
			case <-ctx.Done():
				return out
			case <-time.After(m.batchDelay):
			}
		}
	}

	return out
}

// verdictJob verifies one citation URL
type verdictJob struct {
	checker  *MentionChecker
	index    int
	citation model.Citation
	catalog  model.Catalog
}

type verdictResult struct {
	index   int
	verdict cachedVerdict
	err     error
}

func (r *verdictResult) GetError() error { return r.err }

func (j *verdictJob) Execute(ctx context.Context) Result {
	v, err := j.checker.checkURL(ctx, j.citation.URL, j.catalog)
	return &verdictResult{index: j.index, verdict: v, err: err}
}

// checkURL produces a verdict for one URL, consulting the cache first
func (m *MentionChecker) checkURL(ctx context.Context, rawURL string, catalog model.Catalog) (cachedVerdict, error) {
	key := cache.Key(rawURL)
	if m.store != nil {
		if data, found := m.store.Get(key); found {
			var v cachedVerdict
			if err := json.Unmarshal(data, &v); err == nil {
				return v, nil
			}
		}
	}

	if m.limiter != nil {
		if err := m.limiter.Wait(ctx, rawURL); err != nil {
			return cachedVerdict{}, err
		}
	}

	if !m.robots.Allowed(ctx, rawURL) {
		m.logger.Debug("robots disallowed", zap.String("url", rawURL))
		return cachedVerdict{}, errRobotsDisallowed
	}

	text, err := m.pages.FetchText(ctx, rawURL)
	if err != nil {
		m.logger.Debug("fetch failed", zap.String("url", rawURL), zap.Error(err))
		return cachedVerdict{}, err
	}
	if len(text) > m.contentBudget {
		text = text[:m.contentBudget]
	}

	v := verdictFor(text, catalog)

	if m.store != nil {
		if data, err := json.Marshal(v); err == nil {
			if err := m.store.Set(key, data, m.cacheTTL); err != nil {
				m.logger.Debug("cache write failed", zap.String("url", rawURL), zap.Error(err))
			}
		}
	}

	return v, nil
}

// verdictFor counts word-boundary brand matches in page text
func verdictFor(text string, catalog model.Catalog) cachedVerdict {
	lower := strings.ToLower(text)

	total := 0
	first := ""
	for _, entry := range catalog {
		matched := false
		for _, term := range entry.Terms() {
			if len(term) < 2 {
				continue
			}
			n := len(match.BoundaryPattern(strings.ToLower(term)).FindAllStringIndex(lower, -1))
			if n > 0 {
				matched = true
				total += n
			}
		}
		if matched && first == "" {
			first = entry.Name
		}
	}

	if total == 0 {
		return cachedVerdict{Verdict: model.VerdictNo, Confidence: 0.85}
	}

	conf := math.Log(1+float64(total)) / 2
	if conf > 1.0 {
		conf = 1.0
	}
	return cachedVerdict{Verdict: model.VerdictYes, Confidence: conf, Brand: first}
}
