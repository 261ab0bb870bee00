// Package session tracks each user's ephemeral chat state: which account
// is active and whether the bot is waiting for an account name.
//
// Sessions are never persisted. Idle sessions fall out of the LRU after
// the TTL, which simply resets the user to a fresh Idle session on their
// next message.
package session

import (
	"strconv"
	"sync"
	"time"

	"tally/internal/cache"
)

// State is the per-user conversation state machine.
type State int

const (
	// Idle means plain text is interpreted as a transaction.
	Idle State = iota
	// AwaitingAccountName means the next plain text names a new account.
	AwaitingAccountName
)

// Session is one user's pointer into the ledger. Active == "" means no
// account is selected.
type Session struct {
	UserID int64
	Active string
	State  State
}

type Manager struct {
	mu       sync.Mutex
	sessions *cache.LRU[Session]
}

const (
	defaultCapacity = 1024
	defaultTTL      = 24 * time.Hour
)

func NewManager() *Manager {
	return &Manager{sessions: cache.New[Session](defaultCapacity, defaultTTL)}
}

// Get returns the user's session, lazily creating an Idle one.
func (m *Manager) Get(userID int64) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.get(userID)
}

// Update applies fn to the user's session under the manager lock, so
// read-modify-write cycles for one user never interleave.
func (m *Manager) Update(userID int64, fn func(*Session)) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.get(userID)
	fn(&s)
	m.sessions.Set(key(userID), s)
	return s
}

// DropActive clears the active-account pointer of every session that
// references name. Called after an account is deleted so no user is left
// pointing at a dead account.
func (m *Manager) DropActive(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range m.sessions.Keys() {
		s, ok := m.sessions.Get(k)
		if !ok || s.Active != name {
			continue
		}
		s.Active = ""
		m.sessions.Set(k, s)
	}
}

func (m *Manager) get(userID int64) Session {
	if s, ok := m.sessions.Get(key(userID)); ok {
		return s
	}
	s := Session{UserID: userID, State: Idle}
	m.sessions.Set(key(userID), s)
	return s
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
