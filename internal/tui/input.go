package tui

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// maxInputLen is the maximum number of runes allowed in form and comment inputs.
const maxInputLen = 2000

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	if key == "backspace" {
		if text == "" {
			return text
		}
		runes := []rune(text)
		return string(runes[:len(runes)-1])
	}
	if utf8.RuneCountInString(key) != 1 {
		return text
	}
	if utf8.RuneCountInString(text) >= maxInputLen {
		return text
	}
	return text + key
}

// editKey applies a key message to text. Unlike editRune it accepts pasted
// runs of runes, dropping newlines and anything past maxInputLen.
func editKey(text string, msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyBackspace:
		return editRune(text, "backspace")
	case tea.KeySpace:
		return editRune(text, " ")
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return editRune(text, string(msg.Runes))
		}
		var b strings.Builder
		b.WriteString(text)
		n := utf8.RuneCountInString(text)
		for _, r := range msg.Runes {
			if n >= maxInputLen {
				break
			}
			if r == '\n' || r == '\r' {
				continue
			}
			b.WriteRune(r)
			n++
		}
		return b.String()
	}
	return text
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '\n' {
			continue
		}
		n++
		if n >= maxLines {
			return s[:i+1]
		}
	}
	return s
}

// renderInput renders a single labelled text input with a blinking cursor.
// Masked inputs show one bullet per rune.
func renderInput(label, value, placeholder string, focused, masked bool, frame int) string {
	shown := value
	if masked {
		shown = strings.Repeat("•", utf8.RuneCountInString(value))
	}

	prefix := "  "
	labelPart := dimStyle.Render(label)
	if focused {
		prefix = accentStyle.Render("› ")
		labelPart = inputPromptStyle.Render(label)
	}

	var field string
	switch {
	case shown == "" && !focused:
		field = inputPlaceholderStyle.Render(placeholder)
	case !focused:
		field = dimStyle.Render(shown)
	default:
		cursor := " "
		if (frame/4)%2 == 0 {
			cursor = accentStyle.Render("█")
		}
		field = selectedStyle.Render(shown) + cursor
	}
	return prefix + labelPart + "  " + field
}
