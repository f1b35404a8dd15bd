package ytdlp

import "strings"

// Format is one entry of yt-dlp's "formats" array. Fields mirror the JSON
// names yt-dlp emits; Filesize is a pointer because many extractors omit it.
type Format struct {
	FormatID   string `json:"format_id"`
	Ext        string `json:"ext"`
	Resolution string `json:"resolution"`
	Height     int    `json:"height"`
	Vcodec     string `json:"vcodec"`
	Acodec     string `json:"acodec"`
	Filesize   *int64 `json:"filesize"`
}

// HasVideo reports whether the format carries a video stream.
func (f Format) HasVideo() bool {
	return codecPresent(f.Vcodec)
}

// HasAudio reports whether the format carries an audio stream.
func (f Format) HasAudio() bool {
	return codecPresent(f.Acodec)
}

// yt-dlp reports absent codecs as "none" (or leaves the field empty).
func codecPresent(codec string) bool {
	c := strings.TrimSpace(strings.ToLower(codec))
	return c != "" && c != "none"
}
