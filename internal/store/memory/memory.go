// Package memory holds the volatile ledger store. It backs local runs and
// tests; nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tally/internal/core"
	"tally/internal/store"
)

type Store struct {
	mu       sync.RWMutex
	accounts map[string][]core.Entry
	order    []string
}

func New() *Store {
	return &Store{accounts: make(map[string][]core.Entry)}
}

func (s *Store) CreateAccount(_ context.Context, name string) error {
	name = strings.TrimSpace(name)
	if err := core.ValidateAccountName(name); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[name]; ok {
		return fmt.Errorf("%w: %q", store.ErrDuplicate, name)
	}
	s.accounts[name] = nil
	s.order = append(s.order, name)
	return nil
}

func (s *Store) AppendEntry(_ context.Context, account string, e core.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entries, ok := s.accounts[account]
	if !ok {
		return fmt.Errorf("%w: %q", store.ErrNotFound, account)
	}
	s.accounts[account] = append(entries, e)
	return nil
}

func (s *Store) Entries(_ context.Context, account string) ([]core.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, ok := s.accounts[account]
	if !ok {
		return nil, fmt.Errorf("%w: %q", store.ErrNotFound, account)
	}
	out := make([]core.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

func (s *Store) ClearEntries(_ context.Context, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account]; !ok {
		return fmt.Errorf("%w: %q", store.ErrNotFound, account)
	}
	s.accounts[account] = nil
	return nil
}

func (s *Store) DeleteAccount(_ context.Context, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account]; !ok {
		return fmt.Errorf("%w: %q", store.ErrNotFound, account)
	}
	delete(s.accounts, account)
	for i, name := range s.order {
		if name == account {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) ListAccounts(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out, nil
}
