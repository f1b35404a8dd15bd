// Package resolver turns raw yt-dlp metadata into a deduplicated, ranked
// list of downloadable formats.
package resolver

import (
	"context"
	"fmt"
	"sort"

	"thirdcoast.systems/fetchbot/pkg/ytdlp"
)

// Format is one candidate encoding of a video.
type Format struct {
	ID         string
	Ext        string
	Resolution string
	Height     int
	HasAudio   bool
	// Filesize in bytes; nil when the extractor doesn't report one.
	Filesize *int64
}

// ResolvedVideo is the outcome of a successful info fetch: a title and the
// eligible formats, deduplicated and sorted best-first.
type ResolvedVideo struct {
	Title   string
	URL     string
	Formats []Format
}

// InfoClient is the slice of the yt-dlp client Resolve needs.
type InfoClient interface {
	GetInfo(ctx context.Context, url string, extraArgs ...string) (*ytdlp.Info, error)
}

type Resolver struct {
	Client InfoClient

	// PreferredResolution is the label AutoSelect reaches for first
	// (e.g. "720p").
	PreferredResolution string
}

// Resolve fetches metadata for url and returns the eligible formats.
//
// Only formats carrying both a video and an audio stream are eligible; the
// bot never muxes separate streams for the menu. An empty format list is a
// valid result, not an error.
func (r *Resolver) Resolve(ctx context.Context, url string) (*ResolvedVideo, error) {
	info, err := r.Client.GetInfo(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch video info: %w", err)
	}

	eligible := make([]Format, 0, len(info.Formats))
	for _, f := range info.Formats {
		if !f.HasVideo() || !f.HasAudio() {
			continue
		}
		eligible = append(eligible, fromYtdlp(f))
	}

	return &ResolvedVideo{
		Title:   info.Title,
		URL:     url,
		Formats: SortByHeight(Dedupe(eligible)),
	}, nil
}

// AutoSelect picks the format for the no-menu path: the first one whose
// resolution label matches PreferredResolution, else the first format at all.
func (r *Resolver) AutoSelect(formats []Format) (Format, bool) {
	for _, f := range formats {
		if f.Resolution == r.PreferredResolution {
			return f, true
		}
	}
	if len(formats) > 0 {
		return formats[0], true
	}
	return Format{}, false
}

// Dedupe collapses formats sharing a (resolution, container) pair. The first
// occurrence wins; later entries are dropped even if other attributes differ.
func Dedupe(formats []Format) []Format {
	type key struct{ resolution, ext string }
	seen := make(map[key]struct{}, len(formats))
	out := make([]Format, 0, len(formats))
	for _, f := range formats {
		k := key{f.Resolution, f.Ext}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, f)
	}
	return out
}

// SortByHeight orders formats by descending vertical resolution. Unknown
// heights sort as 0, so they land at the end; ties keep discovery order.
func SortByHeight(formats []Format) []Format {
	out := append([]Format(nil), formats...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Height > out[j].Height
	})
	return out
}

// FormatSpec builds the yt-dlp selector for a chosen format: its video plus
// the best m4a audio stream, falling back to the overall best if that
// combination is unavailable.
func FormatSpec(f Format) string {
	return f.ID + "+bestaudio[ext=m4a]/best"
}

func fromYtdlp(f ytdlp.Format) Format {
	return Format{
		ID:         f.FormatID,
		Ext:        f.Ext,
		Resolution: f.Resolution,
		Height:     f.Height,
		HasAudio:   f.HasAudio(),
		Filesize:   f.Filesize,
	}
}
