package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// noticeTTL is how long a toast stays on screen.
const noticeTTL = 3 * time.Second

// maxNotices caps the stack; the oldest toast is dropped first.
const maxNotices = 4

type noticeKind int

const (
	noticeSuccess noticeKind = iota
	noticeError
)

type notice struct {
	id   uuid.UUID
	kind noticeKind
	text string
}

// notifyMsg asks the App to show a toast.
type notifyMsg struct {
	kind noticeKind
	text string
}

type noticeExpiredMsg struct{ id uuid.UUID }

func notifySuccess(text string) tea.Cmd {
	return func() tea.Msg { return notifyMsg{kind: noticeSuccess, text: text} }
}

func notifyError(text string) tea.Cmd {
	return func() tea.Msg { return notifyMsg{kind: noticeError, text: text} }
}

// notices is the toast stack shown under the nav bar.
type notices struct {
	items []notice
}

// push adds a toast and returns the tick that will expire it.
func (n *notices) push(kind noticeKind, text string) tea.Cmd {
	id := uuid.New()
	n.items = append(n.items, notice{id: id, kind: kind, text: text})
	if len(n.items) > maxNotices {
		n.items = n.items[len(n.items)-maxNotices:]
	}
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

func (n *notices) expire(id uuid.UUID) {
	for i, it := range n.items {
		if it.id == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

func (n notices) View() string {
	if len(n.items) == 0 {
		return ""
	}
	var b strings.Builder
	for _, it := range n.items {
		switch it.kind {
		case noticeError:
			b.WriteString("  " + errorStyle.Render("✗ "+it.text) + "\n")
		default:
			b.WriteString("  " + successStyle.Render("✓ "+it.text) + "\n")
		}
	}
	return b.String()
}
