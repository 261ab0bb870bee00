// Package store defines the ledger storage contract shared by the
// in-memory and sqlite implementations.
package store

import (
	"context"
	"errors"

	"tally/internal/core"
)

var (
	ErrNotFound  = errors.New("account not found")
	ErrDuplicate = errors.New("account already exists")
	ErrInvalid   = errors.New("invalid input")
)

// LedgerStore is the narrow contract the router depends on.
//
// Implementations serialize mutations so that concurrent appends to the
// same account never lose an entry or reorder the sequence: the balance
// must always equal a fold over the entries read back.
type LedgerStore interface {
	// CreateAccount registers a new empty account. ErrDuplicate when the
	// name is taken, ErrInvalid when the name is empty.
	CreateAccount(ctx context.Context, name string) error

	// AppendEntry adds e to the end of the account's entry sequence.
	AppendEntry(ctx context.Context, account string, e core.Entry) error

	// Entries returns the account's entries in append order.
	Entries(ctx context.Context, account string) ([]core.Entry, error)

	// ClearEntries removes all entries but keeps the account.
	ClearEntries(ctx context.Context, account string) error

	// DeleteAccount removes the account and all its entries.
	DeleteAccount(ctx context.Context, account string) error

	// ListAccounts returns account names in creation order.
	ListAccounts(ctx context.Context) ([]string, error)
}
