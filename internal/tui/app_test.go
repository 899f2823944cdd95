package tui

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/moviemania/internal/guard"
	"github.com/naveenspark/moviemania/pkg/domain"
)

var (
	dune = domain.Movie{ID: "m1", Title: "Dune", Director: "Denis Villeneuve", Year: 2021,
		Description: "Spice must flow.", Genre: "Sci-Fi"}
	heat = domain.Movie{ID: "m2", Title: "Heat", Director: "Michael Mann", Year: 1995,
		Description: "Cops and robbers.", Genre: "Crime",
		Comments: []domain.Comment{{ID: "c1", UserID: "u1", Comment: "Best shootout ever"}}}
)

func TestAppStartsOnHomeWithFeatured(t *testing.T) {
	api := newFakeAPI(t, dune, heat)
	a, _ := newTestApp(t, api, domain.Session{})
	a = start(t, a)

	if a.CurrentView() != guard.Home {
		t.Fatalf("view = %v, want Home", a.CurrentView())
	}
	view := a.View()
	for _, want := range []string{"Welcome to MovieMania!", "Dune", "Heat", "Login", "Register"} {
		if !strings.Contains(view, want) {
			t.Errorf("home view missing %q", want)
		}
	}
	if strings.Contains(view, "Admin Dashboard") || strings.Contains(view, "Logout") {
		t.Error("anonymous nav bar shows privileged items")
	}
}

func TestAppNavBarPerRole(t *testing.T) {
	tests := []struct {
		name    string
		sess    domain.Session
		want    []string
		notWant []string
	}{
		{"anonymous", domain.Session{}, []string{"Home", "Movies", "Login", "Register"}, []string{"Logout", "Admin Dashboard"}},
		{"user", domain.Session{Token: "abc"}, []string{"Home", "Movies", "Logout"}, []string{"Register", "Admin Dashboard"}},
		{"admin", domain.Session{Token: "abc", IsAdmin: true}, []string{"Home", "Movies", "Admin Dashboard", "Logout"}, []string{"Register"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := newFakeAPI(t)
			a, _ := newTestApp(t, api, tc.sess)
			a = start(t, a)
			view := a.View()
			for _, w := range tc.want {
				if !strings.Contains(view, w) {
					t.Errorf("nav missing %q", w)
				}
			}
			for _, w := range tc.notWant {
				if strings.Contains(view, w) {
					t.Errorf("nav should not show %q", w)
				}
			}
		})
	}
}

func TestAppAdminDashboardGated(t *testing.T) {
	tests := []struct {
		name string
		sess domain.Session
		want guard.View
	}{
		{"anonymous lands home", domain.Session{}, guard.Home},
		{"user lands home", domain.Session{Token: "abc"}, guard.Home},
		{"admin opens dashboard", domain.Session{Token: "abc", IsAdmin: true}, guard.Admin},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := newFakeAPI(t, dune)
			a, _ := newTestApp(t, api, tc.sess)
			a = start(t, a)
			a = press(t, a, "3").(App)
			if a.CurrentView() != tc.want {
				t.Errorf("view = %v, want %v", a.CurrentView(), tc.want)
			}
			if tc.want == guard.Home && !strings.Contains(a.View(), "Admin Dashboard is not available.") {
				t.Error("denied navigation should explain itself")
			}
		})
	}
}

func TestAppLoginFlow(t *testing.T) {
	api := newFakeAPI(t, dune)
	api.token = "jwt-1"
	api.isAdmin = true
	a, store := newTestApp(t, api, domain.Session{})
	a = start(t, a)

	a = press(t, a, "l").(App)
	if a.CurrentView() != guard.Login {
		t.Fatalf("view = %v, want Login", a.CurrentView())
	}
	a = typeText(t, a, "admin@example.com").(App)
	a = press(t, a, "tab").(App)
	a = typeText(t, a, "pw").(App)
	a = press(t, a, "enter").(App)

	got := store.Read()
	if got.Token != "jwt-1" || !got.IsAdmin {
		t.Fatalf("session = %+v, want admin jwt-1", got)
	}
	if a.CurrentView() != guard.Home {
		t.Errorf("view after login = %v, want Home", a.CurrentView())
	}
	if !strings.Contains(a.View(), msgLoginSucceeded) {
		t.Error("missing login success notification")
	}

	details := api.callsTo(http.MethodGet, "/users/details")
	if len(details) != 1 || details[0].auth != "Bearer jwt-1" {
		t.Errorf("details calls = %+v", details)
	}
	login := api.callsTo(http.MethodPost, "/users/login")
	if len(login) != 1 || login[0].body["email"] != "admin@example.com" || login[0].body["password"] != "pw" {
		t.Errorf("login calls = %+v", login)
	}
}

func TestAppLoginFailure(t *testing.T) {
	api := newFakeAPI(t)
	api.fail("/users/login", http.StatusUnauthorized)
	a, store := newTestApp(t, api, domain.Session{})
	a = start(t, a)

	a = press(t, a, "l").(App)
	a = typeText(t, a, "a@b.c").(App)
	a = press(t, a, "tab").(App)
	a = typeText(t, a, "wrong").(App)
	a = press(t, a, "enter").(App)

	if store.Read().LoggedIn() {
		t.Error("failed login changed the session")
	}
	if a.CurrentView() != guard.Login {
		t.Errorf("view = %v, want Login", a.CurrentView())
	}
	if !strings.Contains(a.View(), msgLoginFailed) {
		t.Error("missing login failure notification")
	}
}

func TestAppLoginRequiresBothFields(t *testing.T) {
	api := newFakeAPI(t)
	a, _ := newTestApp(t, api, domain.Session{})
	a = start(t, a)
	a = press(t, a, "l").(App)
	a = typeText(t, a, "a@b.c").(App)
	a = press(t, a, "ctrl+s").(App)

	if len(api.callsTo(http.MethodPost, "/users/login")) != 0 {
		t.Error("login called with empty password")
	}
	if !strings.Contains(a.View(), msgFieldsRequired) {
		t.Error("missing inline validation message")
	}
}

func TestAppFormKeysDoNotNavigate(t *testing.T) {
	api := newFakeAPI(t)
	a, _ := newTestApp(t, api, domain.Session{})
	a = start(t, a)
	a = press(t, a, "l").(App)
	a = typeText(t, a, "q2r1?").(App)

	if a.CurrentView() != guard.Login {
		t.Fatalf("typing in the login form navigated to %v", a.CurrentView())
	}
	if a.login.form.value(credEmail) != "q2r1?" {
		t.Errorf("email field = %q", a.login.form.value(credEmail))
	}

	a = press(t, a, "esc").(App)
	if a.CurrentView() != guard.Home {
		t.Errorf("esc from login = %v, want Home", a.CurrentView())
	}
}

func TestAppRegisterFlow(t *testing.T) {
	api := newFakeAPI(t)
	a, store := newTestApp(t, api, domain.Session{})
	a = start(t, a)

	a = press(t, a, "r").(App)
	if a.CurrentView() != guard.Register {
		t.Fatalf("view = %v, want Register", a.CurrentView())
	}
	a = typeText(t, a, "new@example.com").(App)
	a = press(t, a, "tab").(App)
	a = typeText(t, a, "secret").(App)
	a = press(t, a, "enter").(App)

	if a.CurrentView() != guard.Login {
		t.Errorf("view after register = %v, want Login", a.CurrentView())
	}
	if !strings.Contains(a.View(), msgRegisterSucceeded) {
		t.Error("missing registration success notification")
	}
	if store.Read().LoggedIn() {
		t.Error("registration should not log in")
	}
}

func TestAppRegisterFailure(t *testing.T) {
	api := newFakeAPI(t)
	api.fail("/users/register", http.StatusConflict)
	a, _ := newTestApp(t, api, domain.Session{})
	a = start(t, a)

	a = press(t, a, "r").(App)
	a = typeText(t, a, "dup@example.com").(App)
	a = press(t, a, "tab").(App)
	a = typeText(t, a, "secret").(App)
	a = press(t, a, "enter").(App)

	if a.CurrentView() != guard.Register {
		t.Errorf("view = %v, want Register", a.CurrentView())
	}
	if !strings.Contains(a.View(), msgRegisterFailed) {
		t.Error("missing registration failure notification")
	}
}

func TestAppLogoutFromDashboard(t *testing.T) {
	api := newFakeAPI(t, dune)
	a, store := newTestApp(t, api, domain.Session{Token: "abc", IsAdmin: true})
	a = start(t, a)
	a = press(t, a, "3").(App)
	if a.CurrentView() != guard.Admin {
		t.Fatalf("view = %v, want Admin", a.CurrentView())
	}

	a = press(t, a, "x").(App)
	if store.Read().LoggedIn() {
		t.Error("logout left a session")
	}
	if a.CurrentView() != guard.Home {
		t.Errorf("view after logout = %v, want Home", a.CurrentView())
	}
	view := a.View()
	if !strings.Contains(view, msgLoggedOut) || !strings.Contains(view, "Login") {
		t.Errorf("view after logout missing notification or login nav:\n%s", view)
	}
}

func TestAppSessionChangeRedirects(t *testing.T) {
	api := newFakeAPI(t, dune)
	a, store := newTestApp(t, api, domain.Session{Token: "abc", IsAdmin: true})
	a = start(t, a)
	a = press(t, a, "3").(App)

	// Another writer logs out while the dashboard is open.
	store.Logout()
	m, cmd := a.Update(sessionChangedMsg{})
	a = settle(t, m, cmd).(App)

	if a.CurrentView() != guard.Home {
		t.Errorf("view = %v, want Home after privileges dropped", a.CurrentView())
	}
}

func TestAppHelpOverlay(t *testing.T) {
	api := newFakeAPI(t)
	a, _ := newTestApp(t, api, domain.Session{Token: "abc"})
	a = start(t, a)

	a = press(t, a, "?").(App)
	view := a.View()
	if !strings.Contains(view, "Add comment") || !strings.Contains(view, "signed in as user") {
		t.Errorf("help overlay missing user keys:\n%s", view)
	}
	a = press(t, a, "esc").(App)
	if a.helpOpen {
		t.Error("esc should close help")
	}
}

func TestAppQuitKeys(t *testing.T) {
	api := newFakeAPI(t)
	a, _ := newTestApp(t, api, domain.Session{})

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not produce QuitMsg")
	}

	a = press(t, a, "l").(App)
	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit from a form")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not produce QuitMsg")
	}
}

func TestAppDropsLateResults(t *testing.T) {
	api := newFakeAPI(t, dune)
	a, _ := newTestApp(t, api, domain.Session{})
	a = start(t, a)

	stale := a.home.id
	a = press(t, a, "2").(App)
	a = press(t, a, "1").(App)
	if a.home.id == stale {
		t.Fatal("returning to Home should create a fresh view")
	}

	m, _ := a.Update(moviesLoadedMsg{owner: stale, err: errors.New("late")})
	if strings.Contains(m.View(), msgFetchMoviesFailed) {
		t.Error("late result from a replaced view was applied")
	}
}
