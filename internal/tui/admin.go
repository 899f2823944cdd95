package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"

	"github.com/naveenspark/moviemania/internal/guard"
	"github.com/naveenspark/moviemania/pkg/client"
	"github.com/naveenspark/moviemania/pkg/domain"
)

type adminMode int

const (
	adminBrowse adminMode = iota
	adminAdding
	adminEditing
	adminConfirmDelete
)

type movieOp int

const (
	opAdd movieOp = iota
	opUpdate
	opDelete
)

func (o movieOp) verb() string {
	switch o {
	case opUpdate:
		return "update"
	case opDelete:
		return "delete"
	default:
		return "add"
	}
}

func (o movieOp) successText() string { return "Movie " + o.verb() + "d successfully" }
func (o movieOp) failureText() string { return "Failed to " + o.verb() + " movie" }

const (
	movieTitle = iota
	movieDirector
	movieYear
	movieDescription
	movieGenre
)

var (
	errYearNotNumber = errors.New("year must be a number")
	errYearCleared   = errors.New("year cannot be cleared")
)

type movieSavedMsg struct {
	owner uuid.UUID
	op    movieOp
	err   error
}

func newMovieForm() formModel {
	return newFormModel(
		formField{label: "Title", placeholder: "Dune"},
		formField{label: "Director", placeholder: "Denis Villeneuve"},
		formField{label: "Year", placeholder: "2021"},
		formField{label: "Description", placeholder: "A noble family becomes embroiled in a war..."},
		formField{label: "Genre", placeholder: "Science Fiction"},
	)
}

func movieFormFrom(mv domain.Movie) formModel {
	in := mv.Input()
	f := newMovieForm()
	f = f.setValue(movieTitle, in.Title)
	f = f.setValue(movieDirector, in.Director)
	if in.Year > 0 {
		f = f.setValue(movieYear, strconv.Itoa(in.Year))
	}
	f = f.setValue(movieDescription, in.Description)
	return f.setValue(movieGenre, in.Genre)
}

// movieInput parses and validates the editor fields.
func (f formModel) movieInput() (domain.MovieInput, error) {
	in := domain.MovieInput{
		Title:       strings.TrimSpace(f.value(movieTitle)),
		Director:    strings.TrimSpace(f.value(movieDirector)),
		Description: strings.TrimSpace(f.value(movieDescription)),
		Genre:       strings.TrimSpace(f.value(movieGenre)),
	}
	if y := strings.TrimSpace(f.value(movieYear)); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil {
			return in, errYearNotNumber
		}
		in.Year = n
	}
	return in, in.Validate()
}

type adminModel struct {
	id      uuid.UUID
	client  *client.Client
	session SessionReader

	movies  []domain.Movie
	cursor  int
	loading bool
	err     string

	mode     adminMode
	form     formModel
	editID   string
	editYear int // year of the movie being edited; an update cannot unset it
	saving   bool
	formErr string
	opErr   string

	frame  int
	width  int
	height int
}

func newAdminModel(c *client.Client, s SessionReader) adminModel {
	return adminModel{id: uuid.New(), client: c, session: s, loading: true}
}

func (m adminModel) Init() tea.Cmd {
	return fetchMoviesCmd(m.client, m.id)
}

func (m adminModel) editing() bool { return m.mode != adminBrowse }

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
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

	case movieSavedMsg:
		if msg.owner != m.id {
			return m, nil
		}
		m.saving = false
		if msg.err != nil {
			m.opErr = msg.op.failureText()
			if msg.op == opDelete {
				m.mode = adminBrowse
			}
			return m, notifyError(msg.op.failureText())
		}
		m.mode = adminBrowse
		m.opErr = ""
		m.formErr = ""
		m.editID, m.editYear = "", 0
		m.loading = true
		return m, tea.Batch(notifySuccess(msg.op.successText()), fetchMoviesCmd(m.client, m.id))

	case marqueeTickMsg:
		m.frame++

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}
		switch m.mode {
		case adminAdding, adminEditing:
			return m.updateForm(msg)
		case adminConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m adminModel) updateKeys(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.movies)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a":
		m.mode = adminAdding
		m.form = newMovieForm()
		m.formErr, m.opErr = "", ""
	case "e":
		if mv, ok := m.selected(); ok {
			m.mode = adminEditing
			m.editID = mv.ID
			m.form = movieFormFrom(mv)
			m.formErr, m.opErr = "", ""
		}
	case "d":
		if mv, ok := m.selected(); ok {
			m.mode = adminConfirmDelete
			m.editID = mv.ID
			m.opErr = ""
		}
	}
	return m, nil
}

func (m adminModel) updateForm(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	if msg.String() == "esc" {
		m.mode = adminBrowse
		m.editID, m.editYear = "", 0
		m.formErr, m.opErr = "", ""
		return m, nil
	}
	var submit bool
	m.form, submit = m.form.update(msg)
	if !submit {
		return m, nil
	}

	in, err := m.form.movieInput()
	if err == nil && m.mode == adminEditing && m.editYear > 0 && in.Year == 0 {
		err = errYearCleared
	}
	if err != nil {
		m.formErr = err.Error()
		return m, nil
	}
	if !guard.CanManage(m.session.Read().Role()) {
		m.mode = adminBrowse
		return m, nil
	}
	m.formErr = ""
	m.saving = true

	c, owner, id := m.client, m.id, m.editID
	if m.mode == adminEditing {
		return m, func() tea.Msg {
			err := c.UpdateMovie(context.Background(), id, in)
			return movieSavedMsg{owner: owner, op: opUpdate, err: err}
		}
	}
	return m, func() tea.Msg {
		err := c.AddMovie(context.Background(), in)
		return movieSavedMsg{owner: owner, op: opAdd, err: err}
	}
}

func (m adminModel) updateConfirm(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if !guard.CanManage(m.session.Read().Role()) {
			m.mode = adminBrowse
			return m, nil
		}
		m.saving = true
		c, owner, id := m.client, m.id, m.editID
		return m, func() tea.Msg {
			err := c.DeleteMovie(context.Background(), id)
			return movieSavedMsg{owner: owner, op: opDelete, err: err}
		}
	case "n", "N", "esc":
		m.mode = adminBrowse
		m.editID = ""
	}
	return m, nil
}

func (m adminModel) selected() (domain.Movie, bool) {
	if m.cursor < 0 || m.cursor >= len(m.movies) {
		return domain.Movie{}, false
	}
	return m.movies[m.cursor], true
}

func (m adminModel) titleOf(id string) string {
	for _, mv := range m.movies {
		if mv.ID == id {
			return oneLine(mv.Title)
		}
	}
	return id
}

func (m adminModel) View() string {
	switch m.mode {
	case adminAdding, adminEditing:
		return "\n" + m.formView()
	}

	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Admin Dashboard") + "\n\n")
	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("loading movies...") + "\n")
		return b.String()
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
		return b.String()
	}

	// Prompts sit above the table so they survive body truncation.
	if m.mode == adminConfirmDelete {
		prompt := fmt.Sprintf("Delete %q? ", m.titleOf(m.editID))
		status := ""
		if m.saving {
			status = "  " + dimStyle.Render("deleting...")
		}
		b.WriteString(" " + errorStyle.Render(prompt) + helpEntry("y", "yes") + "  " + helpEntry("n", "no") + status + "\n\n")
	}
	if m.opErr != "" {
		b.WriteString(" " + errorStyle.Render(m.opErr) + "\n\n")
	}

	if len(m.movies) == 0 {
		b.WriteString(" " + dimStyle.Render("No movies available") + "\n")
	} else {
		b.WriteString(m.tableView() + "\n")
	}
	return b.String()
}

// visibleRows is how many table rows fit in the body next to the title,
// a prompt line and the table borders.
func (m adminModel) visibleRows() int {
	if m.height <= 0 {
		return len(m.movies)
	}
	return max(m.height-10, 3)
}

func (m adminModel) tableView() string {
	n := m.visibleRows()
	start := 0
	if m.cursor >= n {
		start = m.cursor - n + 1
	}
	end := min(start+n, len(m.movies))

	descWidth := max((m.width-60)/2, 16)
	rows := make([][]string, 0, end-start)
	for _, mv := range m.movies[start:end] {
		rows = append(rows, []string{
			truncStr(oneLine(mv.Title), 28),
			truncStr(oneLine(mv.Director), 22),
			formatYear(mv.Year),
			truncStr(oneLine(mv.Description), descWidth),
			truncStr(oneLine(mv.Genre), 16),
		})
	}

	cursor := m.cursor - start
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers("Title", "Director", "Year", "Description", "Genre").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Inherit(sectionHeaderStyle).Bold(true)
			case row == cursor:
				return s.Inherit(selectedStyle).Inherit(selectedRowBg)
			default:
				return s.Inherit(normalStyle)
			}
		})
	return t.Render()
}

func (m adminModel) formView() string {
	heading := "Add Movie"
	if m.mode == adminEditing {
		heading = "Update Movie"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(heading) + "\n\n")
	b.WriteString(m.form.View(m.frame) + "\n")
	switch {
	case m.saving:
		b.WriteString(dimStyle.Render("saving...") + "\n")
	case m.formErr != "":
		b.WriteString(errorStyle.Render(m.formErr) + "\n")
	case m.opErr != "":
		b.WriteString(errorStyle.Render(m.opErr) + "\n")
	}
	return modalStyle(m.width).Render(b.String())
}

func (m adminModel) helpBar() string {
	switch m.mode {
	case adminAdding, adminEditing:
		return formHelp()
	case adminConfirmDelete:
		return helpEntry("y", "confirm") + "  " + helpEntry("n", "cancel")
	}
	return helpEntry("j/k", "move") + "  " + helpEntry("a", "add") + "  " +
		helpEntry("e", "update") + "  " + helpEntry("d", "delete")
}
