// Package slug derives URL-safe identifiers for blog posts.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	gosimpleslug "github.com/gosimple/slug"
	"github.com/gosimple/unidecode"
)

// FallbackPrefix starts synthetic slugs generated for titles with no usable characters
const FallbackPrefix = "post"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// Derive returns the slug for a post. An explicit slug wins over the title
// when it normalizes to something non-empty. The result is never empty.
func Derive(title, explicit string) string {
	return DeriveAt(title, explicit, time.Now())
}

// DeriveAt is Derive with a fixed clock for the synthetic fallback
func DeriveAt(title, explicit string, now time.Time) string {
	if s := Normalize(explicit); s != "" {
		return s
	}
	if s := Normalize(title); s != "" {
		return s
	}
	return FallbackPrefix + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// Normalize lowercases s, turns whitespace runs into single hyphens and
// drops everything outside [a-z0-9-]. Accented and non-Latin letters are
// transliterated first so "Café" keeps its letters.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(unidecode.Unidecode(s))
	s = whitespaceRun.ReplaceAllString(strings.TrimSpace(s), "-")
	s = disallowed.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WithSuffix returns base with a numeric disambiguation suffix, n >= 2
func WithSuffix(base string, n int) string {
	return base + "-" + strconv.Itoa(n)
}

// Valid reports whether s is already in canonical slug form
func Valid(s string) bool {
	return gosimpleslug.IsSlug(s)
}
