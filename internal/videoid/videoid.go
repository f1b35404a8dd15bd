// Package videoid extracts a video identifier from the URL shapes YouTube
// hands out: watch links, youtu.be shortlinks, and embed paths.
package videoid

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DefaultIDLength is the token length YouTube uses for video IDs.
const DefaultIDLength = 11

// siSuffixRe strips the share-tracking suffix some clients append
// (e.g. "?si=AbC123"). It must run before structural parsing so the
// suffix never leaks into a captured token.
var siSuffixRe = regexp.MustCompile(`\?si=.*$`)

// Extractor pulls video identifiers out of arbitrary input strings.
//
// The fallback path patterns only match tokens of exactly IDLength
// characters; the ?v= query parameter accepts any non-empty value.
type Extractor struct {
	patterns []*regexp.Regexp
}

// NewExtractor returns an Extractor for identifiers of idLength
// characters. idLength <= 0 falls back to DefaultIDLength.
func NewExtractor(idLength int) Extractor {
	if idLength <= 0 {
		idLength = DefaultIDLength
	}
	token := fmt.Sprintf(`([0-9A-Za-z_-]{%d})`, idLength)
	return Extractor{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?:v=|/)` + token + `.*`),
			regexp.MustCompile(`(?:youtu\.be/)` + token),
			regexp.MustCompile(`(?:youtube\.com/embed/)` + token),
		},
	}
}

// Extract returns the video identifier contained in raw, or ok=false if
// none can be found. Malformed input never panics.
//
// The ?v= query parameter wins over any path pattern.
func (e Extractor) Extract(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	raw = siSuffixRe.ReplaceAllString(raw, "")

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	if v := u.Query().Get("v"); v != "" {
		return v, true
	}

	for _, p := range e.patterns {
		if m := p.FindStringSubmatch(u.Path); m != nil {
			return m[1], true
		}
	}

	return "", false
}
