package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"heroes-marathon-bot/internal/adapters/distance"
	"heroes-marathon-bot/internal/adapters/telegram"
	"heroes-marathon-bot/internal/api"
	"heroes-marathon-bot/internal/domain"
	"heroes-marathon-bot/internal/platform/clock"
	"heroes-marathon-bot/internal/platform/config"
	"heroes-marathon-bot/internal/platform/logging"
	"heroes-marathon-bot/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "marathon-bot",
		Short:         "Heroes Marathon registration and timing bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configFile)
		},
	}
	root.Flags().StringVar(&configFile, "config", "", "YAML config file (overrides CONFIG_FILE)")

	root.AddCommand(newCheckConfigCmd(&configFile))
	return root
}

func newCheckConfigCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Load and validate the configuration, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "config ok: sink=%s sessions=%s workers=%d\n",
				cfg.Sink, cfg.SessionBackend, cfg.Workers)
			return err
		},
	}
}

func loadConfig(configFile string) (config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	if configFile != "" {
		if err := os.Setenv("CONFIG_FILE", configFile); err != nil {
			return config.Config{}, err
		}
	}
	return config.Load()
}

// run is the composition root: it wires stores, sinks and the transport behind
// ports and supervises the receive loop and the ops API.
func run(parent context.Context, configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sink, err := openResultSink(cfg)
	if err != nil {
		return err
	}
	defer sink.close()

	bot, err := telegram.Connect(cfg.BotToken, cfg.BotDebug, cfg.PollTimeout, logger.Named("telegram"))
	if err != nil {
		return err
	}

	registration, err := services.NewRegistrationService(
		store,
		sink.repo,
		distance.NewHaversineProvider(),
		bot,
		clock.SystemClock{},
		logger.Named("registration"),
		services.RegistrationOptions{
			MinNameLength:   cfg.MinNameLength,
			StartRetryDelay: cfg.StartRetryDelay,
			WebsiteURLs: map[domain.Language]string{
				domain.Ukrainian: cfg.WebsiteURLUK,
				domain.English:   cfg.WebsiteURLEN,
			},
		},
	)
	if err != nil {
		return err
	}

	dispatcher := services.NewDispatcher(registration, cfg.Workers, logger.Named("dispatcher"))

	logger.Info("bot starting",
		zap.String("sink", cfg.Sink),
		zap.String("sessions", cfg.SessionBackend),
		zap.Int("workers", cfg.Workers),
		zap.Duration("start_retry_delay", cfg.StartRetryDelay),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return bot.Run(gctx, dispatcher.Submit)
	})

	if cfg.HTTPAddr != "" {
		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           api.NewRouter(sink.reader, logger.Named("http")),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		g.Go(func() error {
			logger.Info("ops api listening", zap.String("addr", cfg.HTTPAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("ops api: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()

	// Let in-flight conversations finish writing their results before the sinks close.
	dispatcher.Wait()
	logger.Info("bot stopped")

	return err
}
