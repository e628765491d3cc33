package cli

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/goto/intake/internal/server"
	"github.com/goto/intake/pkg/audit"
	"github.com/goto/intake/pkg/i18n"
	"github.com/goto/intake/pkg/log"
	"github.com/goto/intake/pkg/opentelemetry"
)

// app is everything a command needs once the config is loaded.
type app struct {
	ctx        context.Context
	config     server.Config
	logger     log.Logger
	translator *i18n.Translator
	services   *server.Services
	printer    *printer

	shutdown func() error
}

func newApp(cmd *cobra.Command) (*app, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("getting config flag value: %w", err)
	}
	cfg, err := server.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if locale, _ := cmd.Flags().GetString("locale"); locale != "" {
		cfg.Locale = locale
	}
	if actor, _ := cmd.Flags().GetString("actor"); actor != "" {
		cfg.Actor = actor
	}
	output, _ := cmd.Flags().GetString("output")
	switch output {
	case outputTable, outputYAML, outputJSON:
	default:
		return nil, fmt.Errorf("unsupported output format %q", output)
	}

	logger := log.NewCtxLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr(), log.DefaultContextKeys...)

	translator, err := i18n.New(cfg.Locale)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Actor != "" {
		ctx = audit.WithActor(ctx, cfg.Actor)
		ctx = log.WithValue(ctx, log.KeyActor, cfg.Actor)
	}

	shutdown := func() error { return nil }
	if cfg.Telemetry.Enabled {
		if shutdown, err = opentelemetry.Init(ctx, cfg.Telemetry, cmd.ErrOrStderr()); err != nil {
			return nil, fmt.Errorf("initializing telemetry: %w", err)
		}
	}

	services, err := server.InitServices(server.ServiceDeps{
		Config:    &cfg,
		Logger:    logger,
		Validator: validator.New(),
	})
	if err != nil {
		shutdown() //nolint:errcheck
		return nil, fmt.Errorf("initializing services: %w", err)
	}

	return &app{
		ctx:        ctx,
		config:     cfg,
		logger:     logger,
		translator: translator,
		services:   services,
		printer:    newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), output, translator),
		shutdown:   shutdown,
	}, nil
}

func (a *app) Close() {
	if err := a.services.Close(); err != nil {
		a.logger.Warn(a.ctx, "closing audit store", "error", err)
	}
	if err := a.shutdown(); err != nil {
		a.logger.Warn(a.ctx, "shutting down telemetry", "error", err)
	}
}

// run wraps a remote call with a spinner when stderr is a terminal.
func (a *app) run(fn func(ctx context.Context) error) error {
	stop := a.printer.spin(a.translator.T(a.ctx, "message.working"))
	defer stop()
	return fn(a.ctx)
}

// withApp builds the app for cmd and tears it down after fn.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
