package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/cache"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/util"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/worker"
)

// loadCatalog reads a brand catalog from a YAML file
func loadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var catalog model.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if !catalog.Valid() {
		return nil, fmt.Errorf("catalog contains an entry with an empty name")
	}
	if len(catalog.OrgBrands()) == 0 {
		return nil, fmt.Errorf("catalog must mark at least one entry with is_org_brand: true")
	}
	return catalog, nil
}

// readTextArg resolves response text from a positional file argument or stdin
func readTextArg(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read response file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// newLogger builds the process logger
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// buildCache constructs the worker cache backend from configuration
func buildCache(cfg *model.Config) (cache.Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	switch cfg.Cache.Backend {
	case "", "memory":
		return cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute), nil
	case "redis":
		return cache.NewRedisCache(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB, cfg.Cache.TTL)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: memory, redis)", cfg.Cache.Backend)
	}
}

// buildMentionChecker assembles the citation mention worker from configuration
func buildMentionChecker(cfg *model.Config, store cache.Cache, logger *zap.Logger) *worker.MentionChecker {
	return worker.NewMentionChecker(worker.CheckerOptions{
		Robots:        util.NewRobotsChecker(cfg.Worker.UserAgent, cfg.Worker.RobotsTimeout),
		Pages:         worker.NewPageFetcher(cfg.Worker.FetchTimeout, cfg.Worker.UserAgent, cfg.Worker.MaxBodyBytes),
		Limiter:       worker.NewLimiter(1, 3),
		Cache:         store,
		CacheTTL:      cfg.Cache.TTL,
		Concurrency:   cfg.Worker.Concurrency,
		BatchDelay:    cfg.Worker.BatchDelay,
		ContentBudget: cfg.Worker.ContentBudget,
		Logger:        logger,
	})
}
