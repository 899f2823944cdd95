package tui

import (
	"html"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// markupPolicy strips every tag from API-supplied text; the API was built for a web UI.
var markupPolicy = bluemonday.StrictPolicy()

// cleanText makes remote text safe to print: no markup, no control sequences.
// Newlines survive; other control runes are dropped.
func cleanText(raw string) string {
	s := html.UnescapeString(markupPolicy.Sanitize(raw))
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// oneLine cleans raw and collapses it onto a single line for list rows.
func oneLine(raw string) string {
	return strings.Join(strings.Fields(cleanText(raw)), " ")
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// formatYear renders a release year, leaving unknown years blank.
func formatYear(y int) string {
	if y <= 0 {
		return "—"
	}
	return strconv.Itoa(y)
}
