package sanitizer

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// maxPasses bounds the fixed-point loop. Eight levels of nested entity
// encoding is far beyond anything the catalog emits.
const maxPasses = 8

var (
	strictPolicy = bluemonday.StrictPolicy()
	validate     = validator.New()
)

// CleanText turns an untrusted string into plain display text. Entities are
// decoded, markup is removed, control characters are dropped, whitespace runs
// collapse to one space and the result is NFC-normalized. The steps repeat
// until the value stops changing, so CleanText(CleanText(s)) == CleanText(s).
func CleanText(s string) string {
	for range maxPasses {
		next := cleanOnce(s)
		if next == s {
			return next
		}
		s = next
	}
	return s
}

func cleanOnce(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = html.UnescapeString(s)
	// StrictPolicy escapes the text it keeps; undo that.
	s = html.UnescapeString(strictPolicy.Sanitize(s))
	s = collapseSpace(s)
	return norm.NFC.String(s)
}

func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case unicode.IsControl(r), r == unicode.ReplacementChar:
			continue
		default:
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanURL returns the cleaned value when it is an absolute http(s) URL with
// a host, and "" otherwise.
func CleanURL(s string) string {
	s = CleanText(s)
	if s == "" {
		return ""
	}
	if err := validate.Var(s, "http_url"); err != nil {
		return ""
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return s
	default:
		return ""
	}
}
