package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/store"
)

var (
	verifyStorePath string
	verifyTimeout   time.Duration
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <response-id>",
	Short: "Verify brand mentions on a stored response's citation pages",
	Long: `Verify fetches each unresolved citation page for a stored response,
scans the visible text for catalog brands, and writes the verdicts back
to the store. Robots.txt is honored; pages that cannot be fetched keep
their unknown verdict.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyStorePath, "store", "lumos.db", "sqlite database path")
	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 5*time.Minute, "overall verification timeout")
}

func runVerify(cmd *cobra.Command, args []string) error {
	responseID := args[0]

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := store.NewSQLiteStore(verifyStorePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
	defer cancel()

	resp, err := st.GetResponse(ctx, responseID)
	if err != nil {
		return fmt.Errorf("load response: %w", err)
	}
	if len(resp.Citations) == 0 {
		fmt.Println("No citations to verify")
		return nil
	}

	catalog, err := st.GetCatalog(ctx, resp.OrgID)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	cfg := model.DefaultConfig()
	urlCache, err := buildCache(cfg)
	if err != nil {
		return err
	}

	checker := buildMentionChecker(cfg, urlCache, logger)
	enriched := checker.Process(ctx, resp.Citations, catalog)

	if err := st.UpdateCitations(ctx, responseID, enriched); err != nil {
		return fmt.Errorf("save citations: %w", err)
	}

	for _, c := range enriched {
		line := fmt.Sprintf("%-8s %.2f  %s", c.BrandMention, c.BrandMentionConfidence, c.URL)
		if c.BrandMention == model.VerdictYes && c.MatchedBrand != "" {
			line += fmt.Sprintf("  (%s)", c.MatchedBrand)
		}
		fmt.Println(line)
	}

	settled := 0
	for _, c := range enriched {
		if c.BrandMention != model.VerdictUnknown {
			settled++
		}
	}
	if settled < len(enriched) {
		fmt.Fprintf(os.Stderr, "%d of %d citations still unresolved\n", len(enriched)-settled, len(enriched))
	}
	return nil
}
