// Package sqlite holds the persisted ledger store, backed by an embedded
// sqlite database (modernc, cgo-free).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tally/internal/core"
	"tally/internal/events"
	"tally/internal/store"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func Open(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// sqlite serializes writers; a single connection keeps appends in
	// submission order and avoids SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) CreateAccount(ctx context.Context, name string) error {
	if err := core.ValidateAccountName(name); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO accounts (name) VALUES (?)`, name)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", store.ErrDuplicate, name)
	}

	slog.InfoContext(ctx, "Account created", "name", name)
	return nil
}

func (r *Repository) AppendEntry(ctx context.Context, account string, e core.Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalid, err)
	}

	id, err := r.accountID(ctx, account)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO entries (account_id, label, amount) VALUES (?, ?, ?)`,
		id, e.Label, e.Amount); err != nil {
		return fmt.Errorf("append entry: %w", err)
	}

	slog.InfoContext(ctx, "Entry appended",
		"account", account,
		"label", e.Label,
		"amount", e.Amount)
	return nil
}

func (r *Repository) Entries(ctx context.Context, account string) ([]core.Entry, error) {
	id, err := r.accountID(ctx, account)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT label, amount FROM entries WHERE account_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		var e core.Entry
		if err := rows.Scan(&e.Label, &e.Amount); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

func (r *Repository) ClearEntries(ctx context.Context, account string) error {
	id, err := r.accountID(ctx, account)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM entries WHERE account_id = ?`, id); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	return nil
}

func (r *Repository) DeleteAccount(ctx context.Context, account string) error {
	id, err := r.accountID(ctx, account)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE account_id = ?`, id); err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}

	slog.InfoContext(ctx, "Account deleted", "name", account)
	return nil
}

func (r *Repository) ListAccounts(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return names, nil
}

// RecordAudit persists one entry event into the audit log. Used by the
// audit worker, not by the request path.
func (r *Repository) RecordAudit(ctx context.Context, ev events.EntryEvent) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (account, action, label, amount, occurred_at)
		 VALUES (?, ?, ?, ?, ?)`,
		ev.Account, string(ev.Action), ev.Label, ev.Amount, ev.OccurredAt); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}
	return nil
}

// AuditCount reports how many events have been recorded, mainly for
// worker health checks and tests.
func (r *Repository) AuditCount(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count audit events: %w", err)
	}
	return n, nil
}

func (r *Repository) accountID(ctx context.Context, account string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM accounts WHERE name = ?`, account).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %q", store.ErrNotFound, account)
	}
	if err != nil {
		return 0, fmt.Errorf("look up account: %w", err)
	}
	return id, nil
}
