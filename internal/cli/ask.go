package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/assistant"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/pipeline"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/store"
)

var (
	askCatalogPath string
	askProvider    string
	askModel       string
	askFormat      string
	askStorePath   string
	askOrgID       string
	askTimeout     time.Duration
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <prompt>",
	Short: "Ask an assistant a question and analyze the response",
	Long: `Ask sends one prompt to the configured assistant provider, stores the
response, and immediately analyzes it for brand visibility.

API keys come from the environment: OPENAI_API_KEY or PERPLEXITY_API_KEY.
Rate-limit errors are retried with exponential backoff; authentication
errors fail immediately.

Example:
  lumos ask "What are the best CRM tools?" --catalog brands.yaml --provider perplexity`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askCatalogPath, "catalog", "", "brand catalog YAML file (required)")
	askCmd.Flags().StringVar(&askProvider, "provider", "openai", "assistant provider (openai, perplexity)")
	askCmd.Flags().StringVar(&askModel, "model", "", "model name (provider default when empty)")
	askCmd.Flags().StringVar(&askFormat, "format", "md", "output format (json, md)")
	askCmd.Flags().StringVar(&askStorePath, "store", "", "sqlite database to persist the response (optional)")
	askCmd.Flags().StringVar(&askOrgID, "org", "default", "organization id for stored responses")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 90*time.Second, "overall ask timeout")
	_ = askCmd.MarkFlagRequired("catalog")
}

func runAsk(cmd *cobra.Command, args []string) error {
	prompt := args[0]

	catalog, err := loadCatalog(askCatalogPath)
	if err != nil {
		return err
	}

	cfg := model.DefaultConfig()
	cfg.Assistant.Provider = askProvider
	cfg.Assistant.Model = askModel
	cfg.Assistant.APIKey = apiKeyFromEnv(askProvider)
	if cfg.Assistant.APIKey == "" {
		return fmt.Errorf("no API key set for provider %s", askProvider)
	}

	provider, err := assistant.NewProvider(cfg.Assistant)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Asking %s...\n", provider.Name())
	}

	resp, err := assistant.AskWithRetry(ctx, provider, assistant.AskRequest{Prompt: prompt}, cfg.Assistant.MaxRetries)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	stored := model.StoredResponse{
		ID:           uuid.NewString(),
		OrgID:        askOrgID,
		Provider:     provider.Name(),
		PromptText:   prompt,
		ResponseText: resp.Text,
		RawPayload:   resp.RawPayload,
		CreatedAt:    time.Now().UTC(),
	}

	engine := pipeline.NewEngine(cfg)
	analysis, err := engine.Analyze(pipeline.Request{
		ResponseID:   stored.ID,
		Provider:     stored.Provider,
		ResponseText: stored.ResponseText,
		RawPayload:   stored.RawPayload,
		Catalog:      catalog,
	})
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	stored.Citations = analysis.Citations

	if askStorePath != "" {
		st, err := store.NewSQLiteStore(askStorePath)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		if err := st.SaveCatalog(ctx, askOrgID, catalog); err != nil {
			return err
		}
		if err := st.SaveResponse(ctx, stored); err != nil {
			return err
		}
		if err := st.SaveAnalysis(ctx, *analysis); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Stored response %s\n", stored.ID)
		}
	}

	return renderAnalysis(analysis, askFormat, true)
}

// apiKeyFromEnv resolves the provider's API key
func apiKeyFromEnv(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "perplexity":
		return os.Getenv("PERPLEXITY_API_KEY")
	default:
		return ""
	}
}
