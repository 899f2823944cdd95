// Package session holds the client-side authentication state and its
// persisted copy.
package session

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/naveenspark/moviemania/pkg/domain"
)

// Store owns the current session. It is the only writer of its Storage.
type Store struct {
	mu        sync.RWMutex
	current   domain.Session
	storage   Storage
	logger    *slog.Logger
	observers map[int]func(domain.Session)
	nextID    int
}

// New creates a Store with an empty session. Call Restore to adopt the persisted one.
func New(storage Storage, logger *slog.Logger) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		storage:   storage,
		logger:    logger,
		observers: make(map[int]func(domain.Session)),
	}
}

// Restore adopts the persisted session. Any read or parse failure yields
// the empty session; Restore never fails.
func (s *Store) Restore() domain.Session {
	sess := s.load()
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return sess
}

func (s *Store) load() domain.Session {
	data, err := s.storage.Load()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("session restore: storage unreadable", "error", err)
		}
		return domain.Session{}
	}
	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Debug("session restore: malformed content", "error", err)
		return domain.Session{}
	}
	if sess.Token == "" {
		return domain.Session{}
	}
	return sess
}

// Login replaces the whole session and persists it. An empty token logs out.
func (s *Store) Login(token string, isAdmin bool) {
	if token == "" {
		s.Logout()
		return
	}
	sess := domain.Session{Token: token, IsAdmin: isAdmin}
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	if data, err := json.Marshal(sess); err != nil {
		s.logger.Warn("session persist: marshal", "error", err)
	} else if err := s.storage.Save(data); err != nil {
		s.logger.Warn("session persist failed", "error", err)
	}
	s.logger.Info("session started", "role", sess.Role().String())
	s.notify(sess)
}

// Logout clears the session and its persisted entry. Safe to call repeatedly.
func (s *Store) Logout() {
	s.mu.Lock()
	wasLoggedIn := s.current.LoggedIn()
	s.current = domain.Session{}
	s.mu.Unlock()

	if err := s.storage.Remove(); err != nil {
		s.logger.Warn("session remove failed", "error", err)
	}
	if wasLoggedIn {
		s.logger.Info("session ended")
	}
	s.notify(domain.Session{})
}

// Read returns the current session.
func (s *Store) Read() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token implements client.TokenSource.
func (s *Store) Token() string {
	return s.Read().Token
}

// Subscribe registers fn to run after every Login and Logout.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(domain.Session)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(sess domain.Session) {
	s.mu.RLock()
	fns := make([]func(domain.Session), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(sess)
	}
}
