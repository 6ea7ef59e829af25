// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips markup from user-submitted text before it
// is stored. Board posts, comments, and suggestions are plain text on
// the wire, so the strict policy (no elements at all) applies.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes every HTML element and attribute from s and trims the
// surrounding whitespace. The result is safe to store and to echo back
// into any client surface.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
