package session

import (
	"sync"

	"go.uber.org/zap"
)

// Session bundles the per-operator store and its coordinator.
type Session struct {
	Store       *Store
	Coordinator *Coordinator
}

// MutatorFactory builds the backend mutator for one session, bound to that
// session's opaque bearer credential.
type MutatorFactory func(token string) Mutator

// Manager hands out one Session per bearer credential. Orders never leak
// between operators because each session owns its store.
type Manager struct {
	factory MutatorFactory
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager.
func NewManager(factory MutatorFactory, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		factory:  factory,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for token, creating it on first use.
func (m *Manager) Get(token string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[token]; ok {
		return s
	}
	store := NewStore()
	s := &Session{
		Store:       store,
		Coordinator: NewCoordinator(store, m.factory(token), m.logger),
	}
	m.sessions[token] = s
	return s
}

// Drop tears down the session for token, if any.
func (m *Manager) Drop(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}
