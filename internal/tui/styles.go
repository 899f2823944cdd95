package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/moviemania/pkg/domain"
)

// Marquee animation for the MOVIEMANIA logo.
type marqueeTickMsg time.Time

func marqueeTickCmd() tea.Cmd {
	return tea.Tick(90*time.Millisecond, func(t time.Time) tea.Msg {
		return marqueeTickMsg(t)
	})
}

// renderMarqueeLogo renders the wordmark as a travelling wave of marquee light.
// Dim amber (#3a2a10) -> bright gold (#fbbf24), letters spaced apart.
func renderMarqueeLogo(frame int) string {
	const text = "MOVIEMANIA"
	n := len(text)
	t := float64(frame)

	var b strings.Builder
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		phase := t*0.12 - x*3.5
		lum := math.Sin(phase)*0.5 + 0.5
		lum = math.Pow(lum, 1.4)*0.8 + 0.2

		r := clampByte(58 + lum*(251-58))
		g := clampByte(42 + lum*(191-42))
		bl := clampByte(16 + lum*(36-16))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		b.WriteString(s.Render(string(text[i])))
		if i < n-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles, neutral palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24")).
			Bold(true)

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c8a84c")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a0e0"))

	commentActionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f0944a"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878"))

	commentTextStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a0a4b0"))

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fbbf24")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	// Surface colors
	borderColor  = lipgloss.Color("#2a2a36")
	surfaceColor = lipgloss.Color("#111118")

	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))

	roleColors = map[domain.Role]lipgloss.Color{
		domain.RoleAnonymous: lipgloss.Color("#8890a0"),
		domain.RoleUser:      lipgloss.Color("#60a0e0"),
		domain.RoleAdmin:     lipgloss.Color("#f0944a"),
	}
)

// RoleStyle returns a bold style colored for the session tier.
func RoleStyle(role domain.Role) lipgloss.Style {
	if c, ok := roleColors[role]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#8890a0")).Bold(true)
}

// modalStyle frames overlays (details, comment, movie forms).
func modalStyle(width int) lipgloss.Style {
	w := min(64, width-4)
	if w < 30 {
		w = 30
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Background(surfaceColor).
		Padding(1, 2).
		Width(w)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpView renders the key reference overlay for the given role.
func helpView(role domain.Role, version string) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fbbf24")).
		Bold(true).
		Render("M O V I E M A N I A")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	type entry struct{ key, desc string }
	keys := []entry{
		{"1 / 2", "Home / Movies"},
		{"j / k", "Move selection"},
		{"enter", "View details"},
		{"y", "Copy movie details"},
		{"o", "Search for the trailer"},
	}
	switch role {
	case domain.RoleAnonymous:
		keys = append(keys, entry{"l / r", "Login / Register"})
	case domain.RoleUser:
		keys = append(keys, entry{"c", "Add comment"}, entry{"x", "Logout"})
	case domain.RoleAdmin:
		keys = append(keys,
			entry{"3", "Admin Dashboard"},
			entry{"a / e / d", "Add / update / delete movie"},
			entry{"x", "Logout"},
		)
	}
	keys = append(keys, entry{"?", "Toggle this help"}, entry{"q", "Quit"})

	commands := []entry{
		{"moviemania", "Open the catalog (interactive TUI)"},
		{"moviemania login", "Log in from the shell"},
		{"moviemania logout", "Clear your session"},
		{"moviemania movies list", "Print the catalog"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s  %s\n", title, metaStyle.Render(version))
	fmt.Fprintf(&b, "  %s\n\n", RoleStyle(role).Render("signed in as "+role.String()))

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Keys"))
	for _, k := range keys {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-12s", k.key)), descStyle.Render(k.desc))
	}
	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-24s", c.key)), descStyle.Render(c.desc))
	}
	return b.String()
}
