package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-faster/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"whocall-bot/api/internal/config"
	"whocall-bot/api/internal/httpserver"
	"whocall-bot/api/internal/logger"
	"whocall-bot/api/internal/phone"
	"whocall-bot/api/internal/telegram"
)

func serveCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Starts the bot and the health/metrics server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return errors.Wrap(err, "missing or invalid configuration")
			}

			log, err := logger.New(cfg.Environment)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(logger.WithLogger(ctx, log), cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return errors.Wrap(err, "connect to telegram")
	}
	bot.Debug = cfg.Telegram.Debug
	logger.Info(ctx, "authorized", zap.String("bot", bot.Self.UserName))

	locale := cfg.Locale()
	router := telegram.NewRouter(telegram.Options{
		Sender:     bot,
		Classifier: phone.New(phone.Options{Language: phone.DefaultLanguage}),
		Locale:     locale,
		Logger:     log,
	})
	dispatcher := telegram.NewDispatcher(router, cfg.Telegram.Workers)

	g, gctx := errgroup.WithContext(ctx)

	var (
		routes  []httpserver.Route
		updates <-chan tgbotapi.Update
	)
	if cfg.Telegram.WebhookURL != "" {
		path := telegram.WebhookPath(bot.Token)
		public, err := telegram.RegisterWebhook(bot, cfg.Telegram.WebhookURL, path)
		if err != nil {
			return err
		}
		handler, ch := telegram.NewWebhookHandler(bot.HandleUpdate, log)
		routes = append(routes, httpserver.Route{Pattern: path, Handler: handler})
		updates = ch
		logger.Info(ctx, "webhook mode", zap.String("url", public))
	} else {
		if err := telegram.DeleteWebhook(bot); err != nil {
			return err
		}
		updates = telegram.NewPoller(bot, telegram.PollerOptions{
			Timeout: cfg.Telegram.PollTimeout,
			Logger:  log,
		}).Run(gctx)
		logger.Info(ctx, "polling mode")
	}

	srv := httpserver.New(httpserver.Options{
		Addr:              cfg.HTTP.Addr,
		MetricsPath:       cfg.HTTP.MetricsPath,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}, routes...)

	g.Go(func() error {
		logger.Info(ctx, "http server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info(ctx, "stopping http server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		logger.Info(ctx, "WhoCall bot started, waiting for messages...", zap.String("language", locale.Tag))
		dispatcher.Run(gctx, updates)
		logger.Info(ctx, "dispatcher stopped")
		return nil
	})

	return g.Wait()
}
