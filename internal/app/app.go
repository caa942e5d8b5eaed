package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fraudwatch/internal/classifier"
	"github.com/fraudwatch/internal/config"
	"github.com/fraudwatch/internal/encoder"
	"github.com/fraudwatch/internal/feature"
	"github.com/fraudwatch/internal/inference"
	"github.com/fraudwatch/internal/mailer"
	"github.com/fraudwatch/internal/upload"
)

// App owns the long-lived collaborators: configuration, model artifacts,
// encoders, the mailer and the upload store. All are loaded once at
// startup and injected into handlers; nothing here mutates after New.
type App struct {
	config      *config.Config
	logger      *slog.Logger
	inference   *inference.Client
	imageScorer *classifier.ImageScorer
	tabular     classifier.TransactionScorer
	featurizer  *feature.Featurizer
	mailer      *mailer.Mailer
	uploads     *upload.Store
}

// New loads configuration and every model artifact. Any missing artifact
// refuses startup.
func New(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg)

	if !strings.Contains(cfg.BodyTemplate, "{details}") {
		logger.Warn("body_template has no {details} token; notifications go out unsubstituted")
	}

	accountEnc, err := encoder.Load("account", cfg.AccountEncoderPath)
	if err != nil {
		return nil, err
	}
	receiverEnc, err := encoder.Load("account1", cfg.Account1EncoderPath)
	if err != nil {
		return nil, err
	}
	paymentEnc, err := encoder.Load("payment", cfg.PaymentEncoderPath)
	if err != nil {
		return nil, err
	}

	tabular, err := classifier.LoadTabular(cfg.TabularModelPath)
	if err != nil {
		return nil, err
	}

	inf := inference.New(cfg.ImageModelURL, 0)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := inf.Ping(pingCtx); err != nil {
		// The server may come up after us; requests against it fail as
		// model errors until it does.
		logger.Warn("invoice model server unreachable", "url", cfg.ImageModelURL, "err", err)
	}

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	m := mailer.New(mailer.Config{
		Host:         cfg.SMTPHost,
		Port:         cfg.SMTPPort,
		User:         cfg.GmailUser,
		Password:     cfg.GmailPassword,
		Subject:      cfg.Subject,
		BodyTemplate: cfg.BodyTemplate,
		Timeout:      cfg.SMTPTimeout,
	})

	return &App{
		config:      cfg,
		logger:      logger,
		inference:   inf,
		imageScorer: classifier.NewImageScorer(inf),
		tabular:     tabular,
		featurizer:  feature.New(accountEnc, receiverEnc, paymentEnc),
		mailer:      m,
		uploads:     uploads,
	}, nil
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *App) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", app.config.Port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	g.Go(func() error {
		app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	app.logger.Info("stopped server")
	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	slog.SetDefault(logger)
	return logger
}
