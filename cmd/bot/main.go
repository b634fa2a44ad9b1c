// Command bot runs the sales-report service: the Telegram front-end, the
// scheduled report pushes, and the HTTP surface, all over one Google Sheets
// order ledger.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"preetosbot/internal/bot"
	"preetosbot/internal/config"
	"preetosbot/internal/infrastructure"
	"preetosbot/internal/insights"
	"preetosbot/internal/ledger"
	"preetosbot/internal/report"
	"preetosbot/internal/scheduler"
	"preetosbot/internal/session"
	transport "preetosbot/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFile := flag.String("config", "config.yaml", "path to the optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := ledger.NewSource(ctx, cfg.Ledger, logger)
	if err != nil {
		return fmt.Errorf("initialize ledger source: %w", err)
	}

	builder := report.NewBuilder(source, cfg.Ledger.SheetName, cfg.Ledger.CellRange, report.DefaultFormats, logger)
	summarizer := insights.New(cfg.Anthropic, logger)
	if summarizer == nil {
		logger.Warn("no anthropic key configured, reports go out without AI insights")
	}

	loc := cfg.Location()
	sessions := session.NewStore()

	tgBot, err := bot.New(cfg.Telegram, loc, builder, asSummarizer(summarizer), sessions, logger)
	if err != nil {
		return fmt.Errorf("initialize telegram bot: %w", err)
	}

	handler := transport.NewHandler(builder, loc, logger)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("telegram bot running")
		if err := tgBot.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("telegram bot: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.Schedule.Enabled && cfg.Telegram.ReportChatID != 0 {
		sched, err := scheduler.New(cfg.Schedule, func(jobCtx context.Context) {
			tgBot.SendScheduledReport(jobCtx, cfg.Telegram.ReportChatID)
		}, logger)
		if err != nil {
			return fmt.Errorf("initialize scheduler: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	} else {
		logger.Info("scheduled reports disabled")
	}

	if err := group.Wait(); err != nil {
		return err
	}

	logger.Info("shutdown complete")
	return nil
}

// asSummarizer keeps a nil *insights.Client from becoming a non-nil
// interface value.
func asSummarizer(c *insights.Client) insights.Summarizer {
	if c == nil {
		return nil
	}
	return c
}
