package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/eventhub/eventhub/config"
	"github.com/eventhub/eventhub/internal/adapters/email"
	"github.com/eventhub/eventhub/internal/app"
	"github.com/eventhub/eventhub/internal/backend"
	deliveryhttp "github.com/eventhub/eventhub/internal/delivery/http"
	"github.com/eventhub/eventhub/internal/delivery/http/middleware"
	"github.com/eventhub/eventhub/internal/metrics"
	"github.com/eventhub/eventhub/internal/services"
)

const shutdownTimeout = 10 * time.Second

var serverPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server and begin accepting requests.

The server will:
- Load configuration from environment variables (and .env outside production)
- Open the remote store named by BACKEND_URL and apply its migrations
- Run degraded, answering every remote call as uninitialized, when BACKEND_URL or BACKEND_KEY is missing
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with an embedded database
  BACKEND_URL=sqlite://eventhub.db BACKEND_KEY=secret eventhub serve

  # Start on a specific port
  eventhub serve --port 9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverPort, "port", "", "server port (default: $PORT or 8080)")
}

func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if serverPort != "" {
		cfg.Port = serverPort
	}

	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("starting eventhub", "version", Version, "env", cfg.Environment)

	remote, err := backend.Open(ctx, backend.Config{
		URL:         cfg.BackendURL,
		Key:         cfg.BackendKey,
		TokenExpiry: cfg.AuthTokenExpiry,
		AdminEmails: cfg.AdminEmails,
	}, logger)
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	defer func() {
		if err := remote.Close(); err != nil {
			logger.Error("close backend", "err", err)
		}
	}()
	metrics.Init(Version, string(remote.Driver()))

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	registry := app.NewRegistry(ctx, app.NewFactory(app.Deps{
		Remote:       remote,
		EmailService: emailService,
		Logger:       logger,
	}), cfg.ClientIdleTimeout, logger)
	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		registry.Run(ctx, sweepInterval(cfg.ClientIdleTimeout))
	}()

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
			Clients:     registry,
			Health:      remote,
			Cookies:     middleware.Cookies{Secure: cfg.CookieSecure},
			CORSOrigins: cfg.CORSOrigins,
			Logger:      logger,
		}),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr, "backend", remote.Driver())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	<-sweepDone
	return nil
}

// sweepInterval checks for idle clients a few times per idle timeout.
func sweepInterval(idle time.Duration) time.Duration {
	interval := idle / 4
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}
