package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/naveenspark/moviemania/pkg/client"
	"github.com/naveenspark/moviemania/pkg/domain"
)

// SessionReader is the read side of the session store handed to views.
type SessionReader interface {
	Read() domain.Session
}

// Result messages carry the owning view instance; a view drops results
// addressed to an instance that has since been replaced.
type moviesLoadedMsg struct {
	owner  uuid.UUID
	movies []domain.Movie
	err    error
}

type movieDetailMsg struct {
	owner uuid.UUID
	movie *domain.Movie
	err   error
}

func fetchMoviesCmd(c *client.Client, owner uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		movies, err := c.ListMovies(context.Background())
		return moviesLoadedMsg{owner: owner, movies: movies, err: err}
	}
}

func fetchMovieCmd(c *client.Client, owner uuid.UUID, id string) tea.Cmd {
	return func() tea.Msg {
		movie, err := c.GetMovie(context.Background(), id)
		return movieDetailMsg{owner: owner, movie: movie, err: err}
	}
}

// renderMovieDetails renders the detail overlay body for one movie.
func renderMovieDetails(m domain.Movie, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(oneLine(m.Title)) + "\n\n")

	row := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", dimStyle.Render(fmt.Sprintf("%-12s", label)), normalStyle.Render(value))
	}
	row("Director:", oneLine(m.Director))
	row("Year:", formatYear(m.Year))
	row("Genre:", oneLine(m.Genre))
	b.WriteString("\n" + dimStyle.Render("Description:") + "\n")
	b.WriteString(normalStyle.Render(cleanText(m.Description)) + "\n")

	b.WriteString("\n" + sectionHeaderStyle.Render("Comments") + "\n")
	if len(m.Comments) == 0 {
		b.WriteString(metaStyle.Render("No comments available") + "\n")
	} else {
		for _, c := range m.Comments {
			b.WriteString(commentTextStyle.Render("• "+oneLine(c.Comment)) + "\n")
		}
	}
	b.WriteString("\n" + helpEntry("esc", "close"))

	return modalStyle(width).Render(b.String())
}

// movieClipboardText is what `y` copies: a plain-text summary of the movie.
func movieClipboardText(m domain.Movie) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", oneLine(m.Title), formatYear(m.Year))
	if m.Director != "" {
		fmt.Fprintf(&b, "Director: %s\n", oneLine(m.Director))
	}
	if m.Genre != "" {
		fmt.Fprintf(&b, "Genre: %s\n", oneLine(m.Genre))
	}
	if d := strings.TrimSpace(cleanText(m.Description)); d != "" {
		b.WriteString("\n" + d + "\n")
	}
	return b.String()
}
