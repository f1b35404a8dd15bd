// Package filename turns video titles into filesystem-safe scratch names.
package filename

import (
	"regexp"
	"strings"
)

// unsafeRe matches characters that are unsafe in filenames on at least one
// major OS, plus control characters.
var unsafeRe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// dashRunRe collapses runs of dashes/underscores left behind by replacement.
var dashRunRe = regexp.MustCompile(`[-_]{2,}`)

// Sanitize converts an arbitrary title into a safe filename slug. Unsafe
// characters and whitespace become dashes, runs collapse, and leading or
// trailing dashes/dots are stripped (hidden files, trailing dots on
// Windows). The result is truncated to maxLen bytes; maxLen <= 0 means 120.
//
// The empty string is a possible result; callers need their own fallback.
func Sanitize(name string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 120
	}

	s := strings.TrimSpace(name)
	if s == "" {
		return ""
	}

	s = unsafeRe.ReplaceAllString(s, "-")
	s = strings.Join(strings.Fields(s), "-")
	s = dashRunRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-.")

	if len(s) > maxLen {
		s = s[:maxLen]
		// Don't leave a partial dash/dot from the cut.
		s = strings.TrimRight(s, "-.")
	}

	return s
}
