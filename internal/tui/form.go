package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	label       string
	placeholder string
	masked      bool
	value       string
}

// formModel is a vertical list of text inputs shared by the login, register
// and movie editor screens.
type formModel struct {
	fields []formField
	focus  int
}

func newFormModel(fields ...formField) formModel {
	return formModel{fields: fields}
}

// update applies a key. submit is true when the user asked to send the form:
// ctrl+s anywhere, or enter on the last field.
func (f formModel) update(msg tea.KeyMsg) (m formModel, submit bool) {
	n := len(f.fields)
	if n == 0 {
		return f, false
	}
	switch msg.String() {
	case "ctrl+s":
		return f, true
	case "tab", "down":
		f.focus = (f.focus + 1) % n
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + n) % n
	case "enter":
		if f.focus == n-1 {
			return f, true
		}
		f.focus++
	default:
		// Copy before editing; the slice is shared with the previous value.
		fields := make([]formField, n)
		copy(fields, f.fields)
		fields[f.focus].value = editKey(fields[f.focus].value, msg)
		f.fields = fields
	}
	return f, false
}

func (f formModel) value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return f.fields[i].value
}

// setValue returns a copy of the form with field i set to v.
func (f formModel) setValue(i int, v string) formModel {
	if i < 0 || i >= len(f.fields) {
		return f
	}
	fields := make([]formField, len(f.fields))
	copy(fields, f.fields)
	fields[i].value = v
	f.fields = fields
	return f
}

// reset clears every value and focuses the first field.
func (f formModel) reset() formModel {
	fields := make([]formField, len(f.fields))
	copy(fields, f.fields)
	for i := range fields {
		fields[i].value = ""
	}
	f.fields = fields
	f.focus = 0
	return f
}

func (f formModel) View(frame int) string {
	width := 0
	for _, fd := range f.fields {
		width = max(width, len(fd.label))
	}
	var b strings.Builder
	for i, fd := range f.fields {
		label := fd.label + strings.Repeat(" ", width-len(fd.label))
		b.WriteString(renderInput(label, fd.value, fd.placeholder, i == f.focus, fd.masked, frame))
		b.WriteString("\n")
	}
	return b.String()
}

func formHelp() string {
	return helpEntry("tab", "next") + "  " + helpEntry("enter", "next/submit") + "  " +
		helpEntry("ctrl+s", "submit") + "  " + helpEntry("esc", "back")
}
