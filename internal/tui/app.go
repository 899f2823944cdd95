package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/moviemania/internal/guard"
	"github.com/naveenspark/moviemania/internal/session"
	"github.com/naveenspark/moviemania/pkg/client"
	"github.com/naveenspark/moviemania/pkg/domain"
)

const msgLoggedOut = "Logged out"

// sessionChangedMsg is sent by WatchSession after every Login/Logout.
type sessionChangedMsg struct{}

// Settings tunes the App. Zero values fall back to defaults.
type Settings struct {
	FeaturedCount int
	Version       string
	Logger        *slog.Logger
}

// App is the root Bubbletea model. It is the only writer of the session store.
type App struct {
	client   *client.Client
	store    *session.Store
	settings Settings
	logger   *slog.Logger

	view     guard.View
	home     homeModel
	login    loginModel
	register registerModel
	catalog  catalogModel
	admin    adminModel

	notices  notices
	helpOpen bool
	width    int
	height   int
	frame    int // logo animation frame
}

// NewApp creates a new TUI application on Home.
func NewApp(c *client.Client, store *session.Store, s Settings) App {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.FeaturedCount <= 0 {
		s.FeaturedCount = defaultFeaturedCount
	}
	return App{
		client:   c,
		store:    store,
		settings: s,
		logger:   s.Logger,
		view:     guard.Home,
		home:     newHomeModel(c, s.FeaturedCount),
	}
}

// WatchSession forwards store changes into p so the App re-checks the
// current view. The returned func stops forwarding.
func WatchSession(p *tea.Program, store *session.Store) func() {
	return store.Subscribe(func(domain.Session) {
		// Subscribers run inside Update; Send would block the event loop.
		go p.Send(sessionChangedMsg{})
	})
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.home.Init(), marqueeTickCmd())
}

func (a App) role() domain.Role {
	return a.store.Read().Role()
}

// CurrentView reports which screen is showing.
func (a App) CurrentView() guard.View { return a.view }

func (a App) bodySize() tea.WindowSizeMsg {
	// Chrome: header(2) + nav(1) + blank(1) + help(1) = 5 lines
	return tea.WindowSizeMsg{Width: a.width, Height: max(a.height-5-len(a.notices.items), 0)}
}

// switchTo replaces the active view with a fresh instance of v, or of Home
// when the guard forbids v. Staying on the same view keeps its state.
func (a App) switchTo(v guard.View) (App, tea.Cmd) {
	var cmds []tea.Cmd
	target := guard.Resolve(a.role(), v)
	if target != v {
		a.logger.Debug("navigation denied", "view", v.String(), "role", a.role().String())
		cmds = append(cmds, a.notices.push(noticeError, v.String()+" is not available."))
	}
	if target == a.view {
		return a, tea.Batch(cmds...)
	}

	a.logger.Debug("navigate", "from", a.view.String(), "to", target.String())
	a.view = target
	size := a.bodySize()
	switch target {
	case guard.Home:
		a.home = newHomeModel(a.client, a.settings.FeaturedCount)
		a.home, _ = a.home.Update(size)
		cmds = append(cmds, a.home.Init())
	case guard.Login:
		a.login = newLoginModel(a.client)
		cmds = append(cmds, a.login.Init())
	case guard.Register:
		a.register = newRegisterModel(a.client)
		cmds = append(cmds, a.register.Init())
	case guard.Catalog:
		a.catalog = newCatalogModel(a.client, a.store)
		a.catalog, _ = a.catalog.Update(size)
		cmds = append(cmds, a.catalog.Init())
	case guard.Admin:
		a.admin = newAdminModel(a.client, a.store)
		a.admin, _ = a.admin.Update(size)
		cmds = append(cmds, a.admin.Init())
	}
	return a, tea.Batch(cmds...)
}

func (a App) logout() (App, tea.Cmd) {
	a.store.Logout()
	a.logger.Info("logged out")
	notify := a.notices.push(noticeSuccess, msgLoggedOut)
	next, cmd := a.switchTo(guard.Home)
	return next, tea.Batch(notify, cmd)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		size := a.bodySize()
		a.home, _ = a.home.Update(size)
		a.catalog, _ = a.catalog.Update(size)
		a.admin, _ = a.admin.Update(size)
		return a, nil

	case marqueeTickMsg:
		a.frame++
		a = a.forward(msg)
		return a, marqueeTickCmd()

	case notifyMsg:
		return a, a.notices.push(msg.kind, msg.text)

	case noticeExpiredMsg:
		a.notices.expire(msg.id)
		return a, nil

	case navigateMsg:
		return a.switchTo(msg.view)

	case loginSucceededMsg:
		a.store.Login(msg.token, msg.isAdmin)
		a.logger.Info("logged in", "role", a.role().String())
		notify := a.notices.push(noticeSuccess, msgLoginSucceeded)
		next, cmd := a.switchTo(guard.Home)
		return next, tea.Batch(notify, cmd)

	case sessionChangedMsg:
		// Privileges changed underneath the current view.
		if !guard.Permitted(a.role(), a.view) {
			return a.switchTo(guard.Home)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.helpOpen {
			switch msg.String() {
			case "?", "esc":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			}
			return a, nil
		}
		if !a.isEditing() {
			if next, cmd, handled := a.globalKey(msg.String()); handled {
				return next, cmd
			}
		}
	}

	return a.route(msg)
}

// globalKey handles nav bar keys, help and quit.
func (a App) globalKey(key string) (App, tea.Cmd, bool) {
	switch key {
	case "?":
		a.helpOpen = true
		return a, nil, true
	case "q":
		return a, tea.Quit, true
	}

	var cmd tea.Cmd
	if item, ok := guard.Lookup(a.role(), key); ok {
		if item.Action == guard.ActionLogout {
			a, cmd = a.logout()
		} else {
			a, cmd = a.switchTo(item.View)
		}
		return a, cmd, true
	}

	// Keys of nav items hidden for this role still explain themselves.
	for _, role := range []domain.Role{domain.RoleAnonymous, domain.RoleUser, domain.RoleAdmin} {
		if item, ok := guard.Lookup(role, key); ok && item.Action == guard.ActionNavigate {
			a, cmd = a.switchTo(item.View)
			return a, cmd, true
		}
	}
	return a, nil, false
}

// route delivers msg to the active view.
func (a App) route(msg tea.Msg) (App, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case guard.Home:
		a.home, cmd = a.home.Update(msg)
	case guard.Login:
		a.login, cmd = a.login.Update(msg)
	case guard.Register:
		a.register, cmd = a.register.Update(msg)
	case guard.Catalog:
		a.catalog, cmd = a.catalog.Update(msg)
	case guard.Admin:
		a.admin, cmd = a.admin.Update(msg)
	}
	return a, cmd
}

func (a App) forward(msg tea.Msg) App {
	a, _ = a.route(msg)
	return a
}

func (a App) isEditing() bool {
	switch a.view {
	case guard.Login, guard.Register:
		return true
	case guard.Catalog:
		return a.catalog.editing()
	case guard.Admin:
		return a.admin.editing()
	}
	return false
}

func (a App) View() string {
	role := a.role()

	logo := renderMarqueeLogo(a.frame)
	badge := RoleStyle(role).Render(role.String())
	header := logo
	sub := badge
	if a.width > 0 {
		header = lipgloss.PlaceHorizontal(a.width, lipgloss.Center, logo)
		sub = lipgloss.PlaceHorizontal(a.width, lipgloss.Center, badge)
	}

	var nav strings.Builder
	for i, item := range guard.NavItems(role) {
		if i > 0 {
			nav.WriteString("   ")
		}
		active := item.Action == guard.ActionNavigate && item.View == a.view
		if active {
			nav.WriteString(accentStyle.Render(item.Key) + " " + selectedStyle.Underline(true).Render(item.Label))
		} else {
			nav.WriteString(metaStyle.Render(item.Key) + " " + dimStyle.Render(item.Label))
		}
	}
	navBar := nav.String()
	if a.width > 0 {
		navBar = lipgloss.PlaceHorizontal(a.width, lipgloss.Center, navBar)
	}

	var body, help string
	switch a.view {
	case guard.Home:
		body = a.home.View()
		help = a.home.helpBar()
	case guard.Login:
		body = a.login.View()
		help = formHelp()
	case guard.Register:
		body = a.register.View()
		help = formHelp()
	case guard.Catalog:
		body = a.catalog.View()
		help = a.catalog.helpBar()
	case guard.Admin:
		body = a.admin.View()
		help = a.admin.helpBar()
	}
	if !a.isEditing() {
		help += "  " + helpEntry("?", "help") + "  " + helpEntry("q", "quit")
	}

	if a.helpOpen {
		body = helpView(role, a.settings.Version)
		help = helpEntry("esc", "close")
	}

	if h := a.bodySize().Height; h > 0 {
		body = truncateToHeight(body, h)
	}
	body = strings.TrimRight(body, "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s%s\n %s", header, sub, navBar, a.notices.View(), body, help)
}
