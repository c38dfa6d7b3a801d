package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dealdesk/loi-parser/internal/extract"
	"github.com/dealdesk/loi-parser/pkg/anthropic"
	"github.com/dealdesk/loi-parser/pkg/docgen"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the LOI parser HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Anthropic.Key == "" {
			return eris.New("anthropic API key is required (set LOI_ANTHROPIC_KEY)")
		}

		llm := anthropic.NewClient(cfg.Anthropic.Key)
		svc := extract.NewService(llm, cfg.Anthropic)
		doc := docgen.NewClient(cfg.DocService.BaseURL,
			docgen.WithTimeout(time.Duration(cfg.DocService.TimeoutSecs)*time.Second),
		)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(cfg, svc, doc),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("model", cfg.Anthropic.Model),
			zap.String("document_service", cfg.DocService.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
