package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/naveenspark/moviemania/internal/browser"
	"github.com/naveenspark/moviemania/internal/guard"
	"github.com/naveenspark/moviemania/pkg/client"
	"github.com/naveenspark/moviemania/pkg/domain"
)

const (
	msgCommentAdded  = "Comment added successfully!"
	msgCommentFailed = "Could not add comment. Please try again later."
	msgCopyFailed    = "Could not copy to clipboard."
	msgBrowserFailed = "Could not open a browser."
)

// Swapped out in tests; CI has no clipboard or browser.
var (
	writeClipboard = clipboard.WriteAll
	openBrowser    = browser.Open
)

type commentSavedMsg struct {
	owner uuid.UUID
	err   error
}

type catalogModel struct {
	id      uuid.UUID
	client  *client.Client
	session SessionReader

	movies  []domain.Movie
	cursor  int
	loading bool
	err     string

	detail        *domain.Movie
	detailLoading bool

	commenting    bool
	commentMovie  domain.Movie
	commentText   string
	commentSaving bool

	frame  int
	width  int
	height int
}

func newCatalogModel(c *client.Client, s SessionReader) catalogModel {
	return catalogModel{id: uuid.New(), client: c, session: s, loading: true}
}

func (m catalogModel) Init() tea.Cmd {
	return fetchMoviesCmd(m.client, m.id)
}

// editing reports whether keystrokes belong to the comment input.
func (m catalogModel) editing() bool { return m.commenting }

func (m catalogModel) canComment() bool {
	return guard.CanComment(m.session.Read().Role())
}

func (m catalogModel) Update(msg tea.Msg) (catalogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case moviesLoadedMsg:
		if msg.owner != m.id {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msgFetchMoviesFailed
			return m, nil
		}
		m.err = ""
		m.movies = msg.movies
		m.cursor = min(m.cursor, max(len(m.movies)-1, 0))
		return m, nil

	case movieDetailMsg:
		if msg.owner != m.id || !m.detailLoading {
			return m, nil
		}
		m.detailLoading = false
		if msg.err != nil || msg.movie == nil {
			return m, notifyError(msgFetchDetailFailed)
		}
		m.detail = msg.movie
		return m, nil

	case commentSavedMsg:
		if msg.owner != m.id {
			return m, nil
		}
		m.commentSaving = false
		if msg.err != nil {
			return m, notifyError(msgCommentFailed)
		}
		m.commenting = false
		m.commentText = ""
		return m, notifySuccess(msgCommentAdded)

	case marqueeTickMsg:
		m.frame++

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.commenting {
			return m.updateComment(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m catalogModel) updateKeys(msg tea.KeyMsg) (catalogModel, tea.Cmd) {
	if m.detail != nil || m.detailLoading {
		if msg.String() == "esc" {
			m.detail = nil
			m.detailLoading = false
		}
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.movies)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if mv, ok := m.selected(); ok {
			m.detailLoading = true
			return m, fetchMovieCmd(m.client, m.id, mv.ID)
		}
	case "c":
		if mv, ok := m.selected(); ok && m.canComment() {
			m.commenting = true
			m.commentMovie = mv
			m.commentText = ""
		}
	case "y":
		if mv, ok := m.selected(); ok {
			if err := writeClipboard(movieClipboardText(mv)); err != nil {
				return m, notifyError(msgCopyFailed)
			}
			return m, notifySuccess(fmt.Sprintf("Copied %q to clipboard", oneLine(mv.Title)))
		}
	case "o":
		if mv, ok := m.selected(); ok {
			if err := openBrowser(browser.TrailerSearchURL(oneLine(mv.Title), mv.Year)); err != nil {
				return m, notifyError(msgBrowserFailed)
			}
			return m, notifySuccess(fmt.Sprintf("Opened trailer search for %q", oneLine(mv.Title)))
		}
	}
	return m, nil
}

func (m catalogModel) updateComment(msg tea.KeyMsg) (catalogModel, tea.Cmd) {
	if m.commentSaving {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.commenting = false
		m.commentText = ""
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.commentText)
		if text == "" {
			return m, nil
		}
		// The role may have changed while the modal was open.
		if !m.canComment() {
			m.commenting = false
			return m, nil
		}
		m.commentSaving = true
		c, owner, movieID := m.client, m.id, m.commentMovie.ID
		return m, func() tea.Msg {
			err := c.AddComment(context.Background(), movieID, text)
			return commentSavedMsg{owner: owner, err: err}
		}
	}
	m.commentText = editKey(m.commentText, msg)
	return m, nil
}

func (m catalogModel) selected() (domain.Movie, bool) {
	if m.cursor < 0 || m.cursor >= len(m.movies) {
		return domain.Movie{}, false
	}
	return m.movies[m.cursor], true
}

// visibleRows is how many two-line cards fit in the body.
func (m catalogModel) visibleRows() int {
	if m.height <= 0 {
		return len(m.movies)
	}
	return max((m.height-8)/3, 3)
}

func (m catalogModel) View() string {
	if m.commenting {
		return "\n" + m.commentView()
	}
	if m.detail != nil {
		return "\n" + renderMovieDetails(*m.detail, m.width)
	}

	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Movies") + "\n\n")
	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("loading movies...") + "\n")
		return b.String()
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
		return b.String()
	case len(m.movies) == 0:
		b.WriteString(" " + dimStyle.Render("No movies available") + "\n")
		return b.String()
	}

	rows := m.visibleRows()
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(m.movies))
	descWidth := max(m.width-8, 20)
	canComment := m.canComment()

	for i := start; i < end; i++ {
		mv := m.movies[i]
		marker := "  "
		title := normalStyle.Render(oneLine(mv.Title))
		if i == m.cursor {
			marker = accentStyle.Render("▸ ")
			title = selectedStyle.Render(oneLine(mv.Title))
		}
		b.WriteString(" " + marker + title + "\n")
		if d := oneLine(mv.Description); d != "" {
			b.WriteString("    " + dimStyle.Render(truncStr(d, descWidth)) + "\n")
		}
		if i == m.cursor {
			actions := actionStyle.Render("[enter] View Details")
			if canComment {
				actions += "  " + commentActionStyle.Render("[c] Add Comment")
			}
			b.WriteString("    " + actions + "\n")
		}
		b.WriteString("\n")
	}
	if len(m.movies) > rows {
		b.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(m.movies))) + "\n")
	}
	if m.detailLoading {
		b.WriteString(" " + dimStyle.Render("loading details...") + "\n")
	}
	return b.String()
}

func (m catalogModel) commentView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add Comment") + "\n")
	b.WriteString(dimStyle.Render(oneLine(m.commentMovie.Title)) + "\n\n")
	b.WriteString(renderInput("Comment", m.commentText, "Share your thoughts...", !m.commentSaving, false, m.frame) + "\n\n")
	if m.commentSaving {
		b.WriteString(dimStyle.Render("saving...") + "\n")
	} else {
		b.WriteString(helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel") + "\n")
	}
	return modalStyle(m.width).Render(b.String())
}

func (m catalogModel) helpBar() string {
	switch {
	case m.commenting:
		return helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel")
	case m.detail != nil || m.detailLoading:
		return helpEntry("esc", "close")
	}
	bar := helpEntry("j/k", "move") + "  " + helpEntry("enter", "details")
	if m.canComment() {
		bar += "  " + helpEntry("c", "comment")
	}
	return bar + "  " + helpEntry("y", "copy") + "  " + helpEntry("o", "trailer")
}
