// Package bot drives the conversation: it receives Telegram updates,
// resolves video links through yt-dlp, renders format menus, and relays the
// downloaded file back to the chat.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/semaphore"

	"thirdcoast.systems/fetchbot/internal/cache"
	"thirdcoast.systems/fetchbot/internal/config"
	"thirdcoast.systems/fetchbot/internal/resolver"
	"thirdcoast.systems/fetchbot/internal/videoid"
	"thirdcoast.systems/fetchbot/pkg/ytdlp"
)

// urlMarker is the substring that makes a free-text message worth parsing
// as a video link.
const urlMarker = "youtu"

// sender is the slice of the Telegram API the handlers use. The concrete
// *tgbotapi.BotAPI satisfies it; tests substitute a recorder.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// downloader is the slice of the yt-dlp client the download step uses.
type downloader interface {
	Download(ctx context.Context, url string, outTmpl string, formatSpec string, extraArgs ...string) (string, error)
}

type Bot struct {
	client   *tgbotapi.BotAPI
	api      sender
	cfg      *config.Config
	ids      videoid.Extractor
	resolver *resolver.Resolver
	dl       downloader
	store    *cache.Store

	// sem bounds concurrent yt-dlp invocations so a burst of requests
	// can't fork an unbounded number of downloads.
	sem      *semaphore.Weighted
	inFlight atomic.Int64
	started  time.Time
}

// NewYtdlpClient builds a yt-dlp client whose output is streamed into the
// process log line by line. Extractor chatter and progress land at debug
// level so normal operation stays quiet.
func NewYtdlpClient(path string) *ytdlp.Client {
	client := ytdlp.New()
	client.Path = path
	client.LogCallback = func(stream string, line string) {
		slog.Debug("ytdlp output", "stream", stream, "line", line)
	}
	return client
}

// New connects to the Telegram Bot API and wires up the bot. A self-hosted
// API base URL from the config lifts the public endpoint's upload limits.
func New(cfg *config.Config) (*Bot, error) {
	var api *tgbotapi.BotAPI
	var err error
	if base := strings.TrimRight(cfg.TelegramAPIURL, "/"); base != "" {
		api, err = tgbotapi.NewBotAPIWithAPIEndpoint(cfg.BotToken, base+"/bot%s/%s")
	} else {
		api, err = tgbotapi.NewBotAPI(cfg.BotToken)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	slog.Info("Authorized on Telegram", "username", api.Self.UserName)

	client := NewYtdlpClient(cfg.YtdlpPath)

	return &Bot{
		client: api,
		api:    api,
		cfg:    cfg,
		ids:    videoid.NewExtractor(cfg.VideoIDLength),
		resolver: &resolver.Resolver{
			Client:              client,
			PreferredResolution: cfg.PreferredResolution,
		},
		dl:      client,
		store:   cache.New(cfg.CacheCapacity),
		sem:     semaphore.NewWeighted(int64(cfg.DownloadWorkers)),
		started: time.Now(),
	}, nil
}

// Run consumes updates until ctx is cancelled. Each update is handled on its
// own goroutine so a long extraction never stalls the long-poll loop.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.client.GetUpdatesChan(u)

	slog.Info("Bot is listening for updates")
	for {
		select {
		case <-ctx.Done():
			b.client.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			switch {
			case update.Message != nil:
				go b.handleMessage(ctx, update.Message)
			case update.CallbackQuery != nil:
				go b.handleCallback(ctx, update.CallbackQuery)
			}
		}
	}
}

// Uptime reports how long the bot has been running.
func (b *Bot) Uptime() time.Duration { return time.Since(b.started) }

// CacheLen reports the number of cached resolutions.
func (b *Bot) CacheLen() int { return b.store.Len() }

// InFlight reports the number of requests currently resolving or downloading.
func (b *Bot) InFlight() int64 { return b.inFlight.Load() }

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}
