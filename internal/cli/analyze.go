package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/pipeline"
)

var (
	catalogPath  string
	providerName string
	payloadPath  string
	industry     string
	strategyName string
	format       string
	noFooter     bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [response-file]",
	Short: "Analyze one assistant response for brand visibility",
	Long: `Analyze runs the full pipeline over one response: brand matching,
relevance filtering, sentiment classification, visibility scoring, and
citation extraction.

The response text comes from the positional file argument, or stdin when
omitted (or "-"). The brand catalog is a YAML file:

  - name: Acme Corp
    variants: [acme, acme.com]
    is_org_brand: true
  - name: TechCorp

Example:
  lumos analyze response.txt --catalog brands.yaml
  cat response.txt | lumos analyze --catalog brands.yaml --format md
  lumos analyze response.txt --catalog brands.yaml --payload payload.json --provider perplexity`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&catalogPath, "catalog", "", "brand catalog YAML file (required)")
	analyzeCmd.Flags().StringVar(&providerName, "provider", "", "assistant provider the response came from")
	analyzeCmd.Flags().StringVar(&payloadPath, "payload", "", "raw provider payload JSON file (for citation extraction)")
	analyzeCmd.Flags().StringVar(&industry, "industry", "", "organization industry (enables known-brand relevance boost)")
	analyzeCmd.Flags().StringVar(&strategyName, "strategy", "multifactor", "visibility scoring strategy (simple, multifactor)")
	analyzeCmd.Flags().StringVar(&format, "format", "json", "output format (json, md)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown output")
	_ = analyzeCmd.MarkFlagRequired("catalog")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}

	text, err := readTextArg(args)
	if err != nil {
		return err
	}

	var payload []byte
	if payloadPath != "" {
		payload, err = os.ReadFile(payloadPath)
		if err != nil {
			return fmt.Errorf("read payload: %w", err)
		}
	}

	cfg := model.DefaultConfig()
	cfg.Scoring.Strategy = strategyName
	cfg.Relevance.Industry = industry
	cfg.Output.IncludeFooter = !noFooter

	engine := pipeline.NewEngine(cfg)
	analysis, err := engine.Analyze(pipeline.Request{
		ResponseID:   uuid.NewString(),
		Provider:     providerName,
		ResponseText: text,
		RawPayload:   payload,
		Catalog:      catalog,
	})
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %d mentions across %d brands\n", len(analysis.Mentions), len(analysis.Sentiments))
		fmt.Fprintf(os.Stderr, "✓ Visibility score: %.0f/100\n", analysis.Visibility.Score)
		fmt.Fprintf(os.Stderr, "✓ %d citations\n\n", len(analysis.Citations))
	}

	return renderAnalysis(analysis, format, !noFooter)
}

// renderAnalysis writes one analysis to stdout in the requested format
func renderAnalysis(analysis *model.Analysis, format string, footer bool) error {
	renderer := pipeline.NewRenderer(footer)
	switch format {
	case "json":
		out, err := renderer.RenderJSON(analysis)
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "md", "markdown":
		fmt.Print(renderer.RenderMarkdown(analysis))
	default:
		return fmt.Errorf("unknown format: %s (supported: json, md)", format)
	}
	return nil
}
