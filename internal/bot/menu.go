package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"thirdcoast.systems/fetchbot/internal/resolver"
	"thirdcoast.systems/fetchbot/pkg/utils/format"
)

// formatLabel renders one menu row: "720p (mp4) 🔊 - 12.3 MB".
func formatLabel(f resolver.Format) string {
	resolution := f.Resolution
	if resolution == "" {
		resolution = "unknown"
	}

	audio := ""
	if f.HasAudio {
		audio = "🔊"
	}

	size := "size unavailable"
	if f.Filesize != nil {
		size = format.Bytes(*f.Filesize)
	}

	return fmt.Sprintf("%s (%s) %s - %s", resolution, f.Ext, audio, size)
}

// selectionKeyboard builds the inline keyboard for a resolved video, one
// format per row. Formats whose tokens can't be encoded into a callback
// payload are skipped rather than rendered with a broken payload.
func selectionKeyboard(videoID string, formats []resolver.Format) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(formats))
	for _, f := range formats {
		data, err := encodeSelection(videoID, f.ID)
		if err != nil {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(formatLabel(f), data),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
