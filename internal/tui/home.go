package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/naveenspark/moviemania/pkg/client"
	"github.com/naveenspark/moviemania/pkg/domain"
)

// defaultFeaturedCount is how many movies Home shows when unset.
const defaultFeaturedCount = 6

const (
	msgFetchMoviesFailed = "Could not fetch movies. Please try again later."
	msgFetchDetailFailed = "Could not fetch movie details. Please try again later."
)

type homeModel struct {
	id     uuid.UUID
	client *client.Client
	count  int

	movies  []domain.Movie
	cursor  int
	loading bool
	err     string

	detail        *domain.Movie
	detailLoading bool
	detailErr     string

	width  int
	height int
}

func newHomeModel(c *client.Client, featured int) homeModel {
	if featured <= 0 {
		featured = defaultFeaturedCount
	}
	return homeModel{id: uuid.New(), client: c, count: featured, loading: true}
}

func (m homeModel) Init() tea.Cmd {
	return fetchMoviesCmd(m.client, m.id)
}

// pickFeatured returns up to n movies in random order without touching all.
func pickFeatured(all []domain.Movie, n int) []domain.Movie {
	picked := make([]domain.Movie, len(all))
	copy(picked, all)
	rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	if len(picked) > n {
		picked = picked[:n]
	}
	return picked
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
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
		m.movies = pickFeatured(msg.movies, m.count)
		m.cursor = 0
		return m, nil

	case movieDetailMsg:
		if msg.owner != m.id || !m.detailLoading {
			return m, nil
		}
		m.detailLoading = false
		if msg.err != nil || msg.movie == nil {
			m.detailErr = msgFetchDetailFailed
			return m, nil
		}
		m.detail = msg.movie
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m homeModel) updateKeys(msg tea.KeyMsg) (homeModel, tea.Cmd) {
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
		if m.cursor < len(m.movies) {
			m.detailErr = ""
			m.detailLoading = true
			return m, fetchMovieCmd(m.client, m.id, m.movies[m.cursor].ID)
		}
	}
	return m, nil
}

func (m homeModel) View() string {
	var b strings.Builder

	banner := titleStyle.Render("Welcome to MovieMania!")
	tagline := taglineStyle.Render("Find a film worth talking about.")
	if m.width > 0 {
		banner = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, banner)
		tagline = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tagline)
	}
	b.WriteString("\n" + banner + "\n" + tagline + "\n\n")

	if m.detail != nil {
		b.WriteString(renderMovieDetails(*m.detail, m.width) + "\n")
		return b.String()
	}
	if m.detailLoading {
		b.WriteString(" " + dimStyle.Render("loading details...") + "\n")
		return b.String()
	}

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

	b.WriteString(" " + sectionHeaderStyle.Render("Featured") + "\n\n")
	descWidth := max(m.width-10, 20)
	for i, mv := range m.movies {
		marker := "  "
		title := normalStyle.Render(oneLine(mv.Title))
		if i == m.cursor {
			marker = accentStyle.Render("▸ ")
			title = selectedStyle.Render(oneLine(mv.Title))
		}
		fmt.Fprintf(&b, " %s%s %s\n", marker, title, metaStyle.Render(formatYear(mv.Year)))
		if d := oneLine(mv.Description); d != "" {
			b.WriteString("     " + dimStyle.Render(truncStr(d, descWidth)) + "\n")
		}
	}
	if m.detailErr != "" {
		b.WriteString("\n " + errorStyle.Render(m.detailErr) + "\n")
	}
	return b.String()
}

func (m homeModel) helpBar() string {
	if m.detail != nil || m.detailLoading {
		return helpEntry("esc", "close")
	}
	return helpEntry("j/k", "move") + "  " + helpEntry("enter", "view details")
}
