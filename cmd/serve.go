package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Aashish23092/gst-bank-api/client"
	"github.com/Aashish23092/gst-bank-api/config"
	"github.com/Aashish23092/gst-bank-api/handler"
	"github.com/Aashish23092/gst-bank-api/logger"
	"github.com/Aashish23092/gst-bank-api/metrics"
	"github.com/Aashish23092/gst-bank-api/service"
)

const (
	serverReadHeaderTimeout = 10 * time.Second
	serverReadTimeout       = 30 * time.Second // uploads up to max_file_size
	serverIdleTimeout       = 60 * time.Second
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v)
		},
	}

	cmd.Flags().String("port", "", "Port to listen on (default "+config.DefaultServerPort+")")
	mustBind(v, "server_port", cmd.Flags().Lookup("port"))

	return cmd
}

func newLookupService(cfg *config.Config, log *zap.Logger, m *metrics.Metrics) *service.LookupService {
	// one pooled transport for both providers
	opts := []client.Option{
		client.WithHTTPClient(client.NewHTTPClient(cfg.UpstreamTimeout)),
		client.WithTimeout(cfg.UpstreamTimeout),
		client.WithLogger(log),
		client.WithMetrics(m),
	}

	return service.NewLookupService(
		client.NewGSTClient(cfg.GSTAPIBaseURL, cfg.GSTAPIKey, opts...),
		client.NewIFSCClient(cfg.IFSCAPIBaseURL, opts...),
		service.WithMaxBatchSize(cfg.MaxBatchSize),
		service.WithBatchConcurrency(cfg.BatchConcurrency),
		service.WithLookupLogger(log),
	)
}

// writeTimeout must cover the slowest request: a document extraction with
// lookup runs a full GST batch and then a full IFSC batch.
func writeTimeout(cfg *config.Config) time.Duration {
	perItem := cfg.UpstreamTimeout
	rounds := (cfg.MaxBatchSize + cfg.BatchConcurrency - 1) / cfg.BatchConcurrency
	return 2*time.Duration(rounds)*perItem + 15*time.Second
}

func runServe(ctx context.Context, v *viper.Viper) error {
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.GinMode)

	m, err := metrics.New()
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	if cfg.GSTAPIKey == "" {
		log.Warn("GST_API_KEY is not set, GST lookups will fail at the provider")
	}

	lookup := newLookupService(cfg, log, m)

	ocr := client.NewTesseractClient(cfg.TesseractDataPath, log)
	defer ocr.Close()
	documents := service.NewDocumentService(service.NewPDFProcessor(), ocr, lookup, log)

	router := handler.NewRouter(handler.Handlers{
		Info:     handler.NewInfoHandler(getVersionInfo().Version),
		Validate: handler.NewValidateHandler(),
		GST:      handler.NewGSTHandler(lookup, log),
		Bank:     handler.NewBankHandler(lookup, log),
		Document: handler.NewDocumentHandler(documents, cfg.MaxFileSize, log),
	}, m, log, cfg.MaxFileSize)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: serverReadHeaderTimeout,
		ReadTimeout:       serverReadTimeout,
		WriteTimeout:      writeTimeout(cfg),
		IdleTimeout:       serverIdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("address", server.Addr),
			zap.String("gst_provider", cfg.GSTAPIBaseURL),
			zap.String("ifsc_provider", cfg.IFSCAPIBaseURL),
			zap.Int("max_batch_size", cfg.MaxBatchSize))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	log.Info("server shutdown complete")
	return nil
}
