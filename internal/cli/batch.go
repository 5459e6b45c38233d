package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/pipeline"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/worker"
)

var (
	batchCatalogPath string
	batchIndustry    string
	batchStrategy    string
	batchConcurrency int
	batchOut         string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <responses.jsonl>",
	Short: "Analyze many stored responses concurrently",
	Long: `Batch analyzes a JSONL file of stored responses, one JSON object per
line with at minimum {"id": ..., "response_text": ...}; "provider" and
"raw_payload" are honored when present.

Results are written as JSONL to --out (default stdout), one analysis
bundle per input line.

Example:
  lumos batch responses.jsonl --catalog brands.yaml --concurrency 8 --out analyses.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchCatalogPath, "catalog", "", "brand catalog YAML file (required)")
	batchCmd.Flags().StringVar(&batchIndustry, "industry", "", "organization industry")
	batchCmd.Flags().StringVar(&batchStrategy, "strategy", "multifactor", "visibility scoring strategy")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "responses analyzed in parallel")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "output JSONL path (default stdout)")
	_ = batchCmd.MarkFlagRequired("catalog")
}

// analyzeJob analyzes one stored response in the pool
type analyzeJob struct {
	engine  *pipeline.Engine
	resp    model.StoredResponse
	catalog model.Catalog
}

type analyzeResult struct {
	analysis *model.Analysis
	err      error
}

func (r *analyzeResult) GetError() error { return r.err }

func (j *analyzeJob) Execute(ctx context.Context) worker.Result {
	analysis, err := j.engine.Analyze(pipeline.Request{
		ResponseID:   j.resp.ID,
		Provider:     j.resp.Provider,
		ResponseText: j.resp.ResponseText,
		RawPayload:   j.resp.RawPayload,
		Catalog:      j.catalog,
	})
	return &analyzeResult{analysis: analysis, err: err}
}

func runBatch(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog(batchCatalogPath)
	if err != nil {
		return err
	}

	responses, err := readResponses(args[0])
	if err != nil {
		return err
	}
	if len(responses) == 0 {
		return fmt.Errorf("no responses in %s", args[0])
	}

	cfg := model.DefaultConfig()
	cfg.Scoring.Strategy = batchStrategy
	cfg.Relevance.Industry = batchIndustry
	engine := pipeline.NewEngine(cfg)

	pool := worker.NewPool(batchConcurrency)
	pool.Start()
	for _, resp := range responses {
		pool.Submit(&analyzeJob{engine: engine, resp: resp, catalog: catalog})
	}
	results := pool.Wait()

	out := os.Stdout
	if batchOut != "" {
		f, err := os.Create(batchOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	enc := json.NewEncoder(out)
	failed := 0
	for _, res := range results {
		ar := res.(*analyzeResult)
		if ar.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Error: %v\n", ar.err)
			continue
		}
		if err := enc.Encode(ar.analysis); err != nil {
			return fmt.Errorf("write analysis: %w", err)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Analyzed %d responses (%d failed)\n", len(results)-failed, failed)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d responses failed", failed, len(results))
	}
	return nil
}

// readResponses parses one StoredResponse per JSONL line
func readResponses(path string) ([]model.StoredResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open responses: %w", err)
	}
	defer func() { _ = f.Close() }()

	var out []model.StoredResponse
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var resp model.StoredResponse
		if err := json.Unmarshal(text, &resp); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, resp)
	}
	return out, scanner.Err()
}
