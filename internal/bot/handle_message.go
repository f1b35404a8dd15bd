package bot

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"thirdcoast.systems/fetchbot/pkg/utils/format"
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		if msg.Command() == "start" {
			name := ""
			if msg.From != nil {
				name = strings.TrimSpace(msg.From.FirstName)
			}
			greeting := "Hi!"
			if name != "" {
				greeting = "Hi, " + name + "!"
			}
			b.reply(msg.Chat.ID, greeting+"\nSend me a YouTube video link and I'll fetch it for you.")
		}
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" || !strings.Contains(text, urlMarker) {
		return
	}

	b.handleVideoURL(ctx, msg.Chat.ID, text)
}

func (b *Bot) handleVideoURL(ctx context.Context, chatID int64, url string) {
	log := slog.With("request_id", uuid.NewString(), "chat_id", chatID)

	id, ok := b.ids.Extract(url)
	if !ok {
		log.Warn("no video id in message", "url", url)
		b.reply(chatID, "❌ Invalid URL: could not find a video ID")
		return
	}
	log = log.With("video_id", id)

	b.reply(chatID, "🔍 Fetching video info...")

	// yt-dlp calls block; keep them bounded and off the update loop.
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return
	}
	defer b.sem.Release(1)
	b.inFlight.Add(1)
	defer b.inFlight.Add(-1)

	rv, err := b.resolver.Resolve(ctx, url)
	if err != nil {
		log.Error("resolution failed", "error", err)
		b.reply(chatID, "❌ Failed to fetch video info: "+format.Truncate(err.Error(), 300))
		return
	}
	log.Info("resolved video", "title", rv.Title, "formats", len(rv.Formats))

	// Cache only after a successful resolution.
	b.store.Put(id, rv)

	if b.cfg.AutoSelect {
		f, ok := b.resolver.AutoSelect(rv.Formats)
		if !ok {
			b.reply(chatID, "❌ No downloadable formats found")
			return
		}
		b.reply(chatID, "📹 "+rv.Title+"\n⏳ Downloading video...")
		b.download(ctx, log, chatID, id, rv, f.ID)
		return
	}

	if len(rv.Formats) == 0 {
		b.reply(chatID, "❌ No downloadable formats found")
		return
	}

	menu := tgbotapi.NewMessage(chatID, "📹 "+rv.Title+"\nSelect a format:")
	menu.ReplyMarkup = selectionKeyboard(id, rv.Formats)
	if _, err := b.api.Send(menu); err != nil {
		log.Error("failed to send format menu", "error", err)
	}
}
