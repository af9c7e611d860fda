// Package sanitize cleans user-entered labels before they are drawn onto a
// card or echoed back into a page. Uses bluemonday's strict policy to strip
// all markup, then collapses whitespace so a label renders on one line.
package sanitize

import (
	"html"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton strict policy: no elements or attributes survive.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// PlainText strips markup from a label and returns the bare text with runs of
// whitespace collapsed to single spaces and control characters removed.
//
// bluemonday escapes entities in its output (& becomes &amp;). The card is a
// raster image, not HTML, so the text is unescaped again here; templates
// escape it on output.
func PlainText(input string) string {
	if input == "" {
		return ""
	}
	text := html.UnescapeString(getPolicy().Sanitize(input))
	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// Filename turns a label into a safe download file name stem. Path
// separators, quotes and control characters are dropped and spaces become
// dashes. Returns fallback when nothing usable is left.
func Filename(label, fallback string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"' || r == ':' || r == '*' || r == '?' || r == '<' || r == '>' || r == '|':
			return -1
		case unicode.IsControl(r):
			return -1
		case unicode.IsSpace(r):
			return '-'
		}
		return r
	}, PlainText(label))
	name = strings.Trim(name, ".-")
	if name == "" {
		return fallback
	}
	return name
}
