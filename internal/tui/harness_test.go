package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/moviemania/internal/session"
	"github.com/naveenspark/moviemania/pkg/client"
	"github.com/naveenspark/moviemania/pkg/domain"
)

// cmdWait bounds how long a command may run before it is treated as a timer
// (marquee and toast ticks) and skipped.
const cmdWait = 250 * time.Millisecond

type apiCall struct {
	method string
	path   string
	auth   string
	body   map[string]any
}

// fakeAPI is an in-memory movie catalog behind httptest.
type fakeAPI struct {
	t   *testing.T
	srv *httptest.Server

	mu       sync.Mutex
	movies   []domain.Movie
	calls    []apiCall
	failPath map[string]int
	token    string
	isAdmin  bool
}

func newFakeAPI(t *testing.T, movies ...domain.Movie) *fakeAPI {
	t.Helper()
	f := &fakeAPI{t: t, movies: movies, failPath: map[string]int{}, token: "tok"}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

// fail makes every request whose path starts with prefix answer status.
func (f *fakeAPI) fail(prefix string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPath[prefix] = status
}

func (f *fakeAPI) recorded() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiCall(nil), f.calls...)
}

func (f *fakeAPI) callsTo(method, prefix string) []apiCall {
	var out []apiCall
	for _, c := range f.recorded() {
		if c.method == method && strings.HasPrefix(c.path, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, apiCall{
		method: r.Method,
		path:   r.URL.Path,
		auth:   r.Header.Get("Authorization"),
		body:   body,
	})
	for prefix, status := range f.failPath {
		if strings.HasPrefix(r.URL.Path, prefix) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"error": "nope"}) //nolint:errcheck
			return
		}
	}

	path := r.URL.Path
	switch {
	case r.Method == http.MethodGet && path == "/movies/getMovies":
		json.NewEncoder(w).Encode(map[string]any{"movies": f.movies}) //nolint:errcheck
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/movies/getMovie/"):
		id := strings.TrimPrefix(path, "/movies/getMovie/")
		for _, m := range f.movies {
			if m.ID == id {
				json.NewEncoder(w).Encode(m) //nolint:errcheck
				return
			}
		}
		http.NotFound(w, r)
	case r.Method == http.MethodPost && path == "/movies/addMovie":
		m := domain.Movie{ID: "new" + string(rune('0'+len(f.movies)))}
		m.Title, _ = body["title"].(string)
		m.Director, _ = body["director"].(string)
		if y, ok := body["year"].(float64); ok {
			m.Year = int(y)
		}
		f.movies = append(f.movies, m)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(m) //nolint:errcheck
	case r.Method == http.MethodPatch && strings.HasPrefix(path, "/movies/updateMovie/"):
		id := strings.TrimPrefix(path, "/movies/updateMovie/")
		for i := range f.movies {
			if f.movies[i].ID == id {
				f.movies[i].Title, _ = body["title"].(string)
			}
		}
		w.Write([]byte(`{}`)) //nolint:errcheck
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "/movies/deleteMovie/"):
		id := strings.TrimPrefix(path, "/movies/deleteMovie/")
		kept := f.movies[:0]
		for _, m := range f.movies {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		f.movies = kept
		w.Write([]byte(`{}`)) //nolint:errcheck
	case r.Method == http.MethodPatch && strings.HasPrefix(path, "/movies/addComment/"):
		w.Write([]byte(`{}`)) //nolint:errcheck
	case r.Method == http.MethodPost && path == "/users/login":
		json.NewEncoder(w).Encode(map[string]string{"access": f.token}) //nolint:errcheck
	case r.Method == http.MethodPost && path == "/users/register":
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`)) //nolint:errcheck
	case r.Method == http.MethodGet && path == "/users/details":
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"user": map[string]any{"_id": "u1", "email": "a@b.c", "isAdmin": f.isAdmin},
		})
	default:
		http.NotFound(w, r)
	}
}

// newTestApp wires an App to the fake API with an in-memory session.
func newTestApp(t *testing.T, api *fakeAPI, sess domain.Session) (App, *session.Store) {
	t.Helper()
	store := session.New(session.NewMemoryStorage(), nil)
	if sess.Token != "" {
		store.Login(sess.Token, sess.IsAdmin)
	}
	c := client.New(api.srv.URL, store)
	a := NewApp(c, store, Settings{Version: "test"})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return m.(App), store
}

// collect runs cmd and returns the messages it produced, flattening batches.
// Commands still running after cmdWait are timers and are dropped.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(cmdWait):
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// settle feeds cmd's messages back into m until nothing but timers is left.
func settle(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		if i > 100 {
			t.Fatal("settle: command loop did not converge")
		}
		next := queue[0]
		queue = queue[1:]
		for _, msg := range collect(next) {
			switch msg.(type) {
			case marqueeTickMsg, noticeExpiredMsg:
				continue
			}
			var c tea.Cmd
			m, c = m.Update(msg)
			if c != nil {
				queue = append(queue, c)
			}
		}
	}
	return m
}

// press sends one key and settles the resulting commands.
func press(t *testing.T, m tea.Model, key string) tea.Model {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	case "backspace":
		msg = tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, cmd := m.Update(msg)
	return settle(t, m, cmd)
}

// typeText types s one key at a time.
func typeText(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	for _, r := range s {
		key := string(r)
		m = press(t, m, key)
	}
	return m
}

func start(t *testing.T, a App) App {
	t.Helper()
	return settle(t, a, a.Init()).(App)
}
