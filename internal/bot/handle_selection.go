package bot

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"thirdcoast.systems/fetchbot/internal/cache"
	"thirdcoast.systems/fetchbot/internal/resolver"
	"thirdcoast.systems/fetchbot/pkg/utils/filename"
	"thirdcoast.systems/fetchbot/pkg/utils/format"
)

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Ack first so the client stops showing a spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		slog.Warn("failed to ack callback", "error", err)
	}
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	log := slog.With("request_id", uuid.NewString(), "chat_id", chatID)

	sel, err := parseSelection(cb.Data)
	if err != nil {
		log.Warn("malformed callback payload", "data", cb.Data, "error", err)
		b.reply(chatID, "❌ Invalid selection")
		return
	}
	log = log.With("video_id", sel.VideoID, "format_id", sel.FormatID)

	rv, err := b.store.Get(sel.VideoID)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			log.Warn("selection for unknown video")
			b.reply(chatID, "❌ Video data not found. Send the link again.")
			return
		}
		log.Error("cache lookup failed", "error", err)
		b.reply(chatID, "❌ Something went wrong. Send the link again.")
		return
	}

	if err := b.sem.Acquire(ctx, 1); err != nil {
		return
	}
	defer b.sem.Release(1)
	b.inFlight.Add(1)
	defer b.inFlight.Add(-1)

	b.reply(chatID, "⏳ Downloading video...")
	b.download(ctx, log, chatID, sel.VideoID, rv, sel.FormatID)
}

// download materializes the chosen format in the scratch directory, uploads
// it, and deletes the file no matter how the upload went. The caller holds a
// semaphore slot.
func (b *Bot) download(ctx context.Context, log *slog.Logger, chatID int64, videoID string, rv *resolver.ResolvedVideo, formatID string) {
	// The format token comes from a client-supplied payload; only tokens the
	// menu actually offered are accepted.
	chosen, ok := findFormat(rv.Formats, formatID)
	if !ok {
		log.Warn("selection names unknown format")
		b.reply(chatID, "❌ Invalid selection")
		return
	}

	name := filename.Sanitize(rv.Title, 0)
	if name == "" {
		name = videoID
	}
	tmpl := filepath.Join(b.cfg.ScratchDir, name+".%(ext)s")

	spec := resolver.FormatSpec(chosen)
	path, err := b.dl.Download(ctx, rv.URL, tmpl, spec)
	if err != nil {
		log.Error("download failed", "error", err)
		b.reply(chatID, "❌ Download failed: "+format.Truncate(err.Error(), 300))
		return
	}

	// The scratch file goes away regardless of the upload outcome.
	defer func() {
		if err := os.Remove(path); err != nil {
			log.Warn("failed to remove scratch file", "path", path, "error", err)
		}
	}()

	if st, err := os.Stat(path); err == nil {
		log.Info("download complete", "path", path, "size", humanize.IBytes(uint64(st.Size())))
	}

	b.reply(chatID, "📤 Uploading to Telegram...")

	upload := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(path))
	upload.Caption = "📹 " + rv.Title
	if _, err := b.api.Send(upload); err != nil {
		log.Error("upload failed", "error", err)
		b.reply(chatID, "❌ Failed to send video: "+format.Truncate(err.Error(), 300))
		return
	}
	log.Info("upload complete", "title", rv.Title)
}

func findFormat(formats []resolver.Format, id string) (resolver.Format, bool) {
	for _, f := range formats {
		if f.ID == id {
			return f, true
		}
	}
	return resolver.Format{}, false
}
