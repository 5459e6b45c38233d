package pipeline

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
)

// Renderer formats analysis bundles for the CLI
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON renders the analysis as indented JSON
func (r *Renderer) RenderJSON(a *model.Analysis) (string, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal analysis: %w", err)
	}
	return string(data), nil
}

// RenderMarkdown renders a human-readable report
func (r *Renderer) RenderMarkdown(a *model.Analysis) string {
	var sb strings.Builder

	sb.WriteString("# Brand Visibility Report\n\n")
	if a.ResponseID != "" {
		sb.WriteString(fmt.Sprintf("Response: `%s`", a.ResponseID))
		if a.Provider != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", a.Provider))
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString(fmt.Sprintf("## Visibility Score: %.0f/100\n\n", a.Visibility.Score))
	if !a.OrgBrandPresent {
		sb.WriteString("The tracked brand was not mentioned in this response.\n\n")
	}

	if len(a.Visibility.Breakdown) > 0 {
		sb.WriteString("| Factor | Contribution |\n|---|---|\n")
		factors := make([]string, 0, len(a.Visibility.Breakdown))
		for f := range a.Visibility.Breakdown {
			factors = append(factors, f)
		}
		sort.Strings(factors)
		for _, f := range factors {
			sb.WriteString(fmt.Sprintf("| %s | %+.1f |\n", f, a.Visibility.Breakdown[f]))
		}
		sb.WriteString("\n")
	}

	for _, insight := range a.Visibility.Insights {
		sb.WriteString(fmt.Sprintf("- %s\n", insight))
	}
	if len(a.Visibility.Insights) > 0 {
		sb.WriteString("\n")
	}

	if len(a.Mentions) > 0 {
		sb.WriteString(fmt.Sprintf("## Mentions (%d)\n\n", len(a.Mentions)))
		sb.WriteString("| Brand | Type | Confidence | Position |\n|---|---|---|---|\n")
		for _, m := range a.Mentions {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.2f | %d |\n", m.Brand, m.MatchType, m.Confidence, m.Position))
		}
		sb.WriteString("\n")
	}

	if len(a.Sentiments) > 0 {
		sb.WriteString("## Sentiment\n\n")
		for _, s := range a.Sentiments {
			sb.WriteString(fmt.Sprintf("- **%s**: %s (%s, confidence %.2f)\n", s.Brand, s.Sentiment, s.Context, s.Confidence))
			if s.Reasoning != "" {
				sb.WriteString(fmt.Sprintf("  > %s\n", s.Reasoning))
			}
		}
		sb.WriteString("\n")
	}

	if len(a.Citations) > 0 {
		sb.WriteString(fmt.Sprintf("## Citations (%d)\n\n", len(a.Citations)))
		sb.WriteString("| URL | Quality | Brand mention |\n|---|---|---|\n")
		for _, c := range a.Citations {
			verdict := string(c.BrandMention)
			if c.BrandMention == model.VerdictYes && c.MatchedBrand != "" {
				verdict = fmt.Sprintf("yes (%s)", c.MatchedBrand)
			}
			sb.WriteString(fmt.Sprintf("| %s | %d | %s |\n", c.URL, c.QualityScore, verdict))
		}
		sb.WriteString("\n")
	}

	if r.includeFooter {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("Analyzed at %s\n", a.AnalyzedAt.Format("2006-01-02 15:04:05 UTC")))
	}

	return sb.String()
}
