package bot

import (
	"fmt"
	"strings"
)

// Callback payloads are a tagged triple "dl|<video-id>|<format-id>".
// Telegram caps callback data at 64 bytes, and the delimiter must never
// appear inside a token, so both are validated at encode time rather than
// trusted at parse time.
const (
	callbackTag   = "dl"
	callbackDelim = "|"

	// maxCallbackData is Telegram's limit for callback_data.
	maxCallbackData = 64
)

// Selection names the format a user picked from a rendered menu.
type Selection struct {
	VideoID  string
	FormatID string
}

func encodeSelection(videoID string, formatID string) (string, error) {
	if videoID == "" || formatID == "" {
		return "", fmt.Errorf("callback: empty token")
	}
	if strings.Contains(videoID, callbackDelim) || strings.Contains(formatID, callbackDelim) {
		return "", fmt.Errorf("callback: token contains delimiter %q", callbackDelim)
	}

	data := callbackTag + callbackDelim + videoID + callbackDelim + formatID
	if len(data) > maxCallbackData {
		return "", fmt.Errorf("callback: payload exceeds %d bytes", maxCallbackData)
	}
	return data, nil
}

func parseSelection(data string) (Selection, error) {
	parts := strings.Split(data, callbackDelim)
	if len(parts) != 3 {
		return Selection{}, fmt.Errorf("callback: expected 3 parts, got %d", len(parts))
	}
	if parts[0] != callbackTag {
		return Selection{}, fmt.Errorf("callback: unknown tag %q", parts[0])
	}
	if parts[1] == "" || parts[2] == "" {
		return Selection{}, fmt.Errorf("callback: empty token")
	}
	return Selection{VideoID: parts[1], FormatID: parts[2]}, nil
}
