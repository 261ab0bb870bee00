package core

import (
	"errors"
	"strings"
)

type (
	// Entry is a single labeled signed amount appended to an account.
	// Entries are immutable once created; identity is positional within
	// the owning account.
	Entry struct {
		Label  string
		Amount int64
	}

	// Account is a named, ordered collection of entries. The balance is
	// always derived from the entry sequence, never stored.
	Account struct {
		Name    string
		Entries []Entry
	}
)

var (
	ErrEmptyLabel       = errors.New("empty label")
	ErrEmptyAccountName = errors.New("empty account name")
)

const maxLabelLength = 200

func (e Entry) Validate() error {
	if len(strings.TrimSpace(e.Label)) == 0 {
		return ErrEmptyLabel
	}
	if len(e.Label) > maxLabelLength {
		return errors.New("label too long (max 200 characters)")
	}
	return nil
}

// ValidateAccountName checks that name can identify an account.
func ValidateAccountName(name string) error {
	if len(strings.TrimSpace(name)) == 0 {
		return ErrEmptyAccountName
	}
	if len(name) > maxLabelLength {
		return errors.New("account name too long (max 200 characters)")
	}
	return nil
}

// Balance returns the signed sum of all entry amounts. An empty sequence
// has balance 0.
func Balance(entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Amount
	}
	return total
}

func (a Account) Balance() int64 {
	return Balance(a.Entries)
}
