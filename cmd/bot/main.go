package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thirdcoast.systems/fetchbot/internal/bot"
	"thirdcoast.systems/fetchbot/internal/config"
	"thirdcoast.systems/fetchbot/internal/status"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting bot service")

	conf, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(conf.ScratchDir, 0o755); err != nil {
		slog.Error("failed to create scratch dir", "dir", conf.ScratchDir, "error", err)
		os.Exit(1)
	}

	// Best effort: stale yt-dlp versions break against extractor changes.
	updateClient := bot.NewYtdlpClient(conf.YtdlpPath)
	updateCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	if err := updateClient.Update(updateCtx); err != nil {
		slog.Warn("failed to update yt-dlp", "error", err)
	} else {
		slog.Info("yt-dlp updated successfully")
	}
	if v, err := updateClient.Version(updateCtx); err != nil {
		slog.Warn("failed to determine yt-dlp version", "error", err)
	} else {
		slog.Info("yt-dlp version", "version", v)
	}
	cancel()

	b, err := bot.New(conf)
	if err != nil {
		slog.Error("failed to connect to telegram", "error", err)
		os.Exit(1)
	}

	if conf.StatusPort > 0 {
		srv := status.NewServer(b)
		go func() {
			addr := fmt.Sprintf(":%d", conf.StatusPort)
			slog.Info("Status endpoint listening", "addr", addr)
			if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("status server stopped", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if err := b.Run(ctx); err != nil {
		slog.Error("bot stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("Bot service stopping")
}
