package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/model"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/server"
	"github.com/Cabouraad/lumos-ai-optimize-sub004/internal/store"
)

var (
	serveAddr      string
	serveStorePath string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the citation mention worker HTTP server",
	Long: `Serve starts the HTTP server exposing the citation mention worker.

POST /v1/worker/citation-mentions with {"response_id": "..."} verifies each
unresolved citation's page for brand mentions and writes the enriched
citation list back to the store. Requests must carry the configured bearer
secret (set LUMOS_SERVER_BEARER_SECRET).`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().StringVar(&serveStorePath, "store", "", "sqlite database path (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	if addr := viper.GetString("server.addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if secret := viper.GetString("server.bearer_secret"); secret != "" {
		cfg.Server.BearerSecret = secret
	}
	if path := viper.GetString("store.path"); path != "" {
		cfg.Store.Path = path
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveStorePath != "" {
		cfg.Store.Path = serveStorePath
	}
	if cfg.Server.BearerSecret == "" {
		fmt.Fprintln(os.Stderr, "warning: no bearer secret configured, worker endpoint will refuse requests")
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	st, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	urlCache, err := buildCache(cfg)
	if err != nil {
		return err
	}

	checker := buildMentionChecker(cfg, urlCache, logger)
	srv := server.New(st, checker, cfg.Server.BearerSecret, logger)

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("store", cfg.Store.Path),
	)
	return httpSrv.ListenAndServe()
}
