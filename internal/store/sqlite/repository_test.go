package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tally/internal/core"
	"tally/internal/events"
	"tally/internal/store"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestCreateAppendRead(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	if err := repo.CreateAccount(ctx, "groceries"); err != nil {
		t.Fatal(err)
	}

	appended := []core.Entry{
		{Label: "milk", Amount: -25},
		{Label: "bread", Amount: -15},
	}
	for _, e := range appended {
		if err := repo.AppendEntry(ctx, "groceries", e); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := repo.Entries(ctx, "groceries")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(appended) {
		t.Fatalf("got %d entries, want %d", len(entries), len(appended))
	}
	for i := range appended {
		if entries[i] != appended[i] {
			t.Fatalf("entries[%d] = %+v, want %+v (append order)", i, entries[i], appended[i])
		}
	}
	if core.Balance(entries) != -40 {
		t.Fatalf("balance = %d, want -40", core.Balance(entries))
	}
}

func TestDuplicateAccount(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	if err := repo.CreateAccount(ctx, "wallet"); err != nil {
		t.Fatal(err)
	}
	if err := repo.CreateAccount(ctx, "wallet"); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("error = %v, want ErrDuplicate", err)
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	if _, err := repo.Entries(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Entries error = %v, want ErrNotFound", err)
	}
	if err := repo.AppendEntry(ctx, "nope", core.Entry{Label: "x", Amount: 1}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("AppendEntry error = %v, want ErrNotFound", err)
	}
	if err := repo.DeleteAccount(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("DeleteAccount error = %v, want ErrNotFound", err)
	}
}

func TestInvalidInput(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	if err := repo.CreateAccount(ctx, "  "); !errors.Is(err, store.ErrInvalid) {
		t.Fatalf("CreateAccount error = %v, want ErrInvalid", err)
	}
	if err := repo.CreateAccount(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendEntry(ctx, "a", core.Entry{Label: "", Amount: 1}); !errors.Is(err, store.ErrInvalid) {
		t.Fatalf("AppendEntry error = %v, want ErrInvalid", err)
	}
}

func TestClearAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	if err := repo.CreateAccount(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendEntry(ctx, "a", core.Entry{Label: "x", Amount: 5}); err != nil {
		t.Fatal(err)
	}

	if err := repo.ClearEntries(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	entries, err := repo.Entries(ctx, "a")
	if err != nil {
		t.Fatalf("account must survive a clear, got %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries after clear, want 0", len(entries))
	}

	if err := repo.DeleteAccount(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Entries(ctx, "a"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound after delete", err)
	}
}

func TestListAccountsCreationOrder(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	want := []string{"zulu", "alpha", "mike"}
	for _, name := range want {
		if err := repo.CreateAccount(ctx, name); err != nil {
			t.Fatal(err)
		}
	}

	names, err := repo.ListAccounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != len(want) {
		t.Fatalf("got %d accounts, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestRecordAudit(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	ev := events.EntryEvent{
		Account:    "groceries",
		Action:     events.ActionAppended,
		Label:      "milk",
		Amount:     -25,
		OccurredAt: time.Now().UTC(),
	}
	if err := repo.RecordAudit(ctx, ev); err != nil {
		t.Fatal(err)
	}
	if err := repo.RecordAudit(ctx, events.NewDeleted("groceries")); err != nil {
		t.Fatal(err)
	}

	n, err := repo.AuditCount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("audit count = %d, want 2", n)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "tally.db")

	repo, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.CreateAccount(ctx, "persistent"); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendEntry(ctx, "persistent", core.Entry{Label: "kept", Amount: 7}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Close(); err != nil {
		t.Fatal(err)
	}

	repo, err = Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Close()

	entries, err := repo.Entries(ctx, "persistent")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Label != "kept" || entries[0].Amount != 7 {
		t.Fatalf("entries after reopen = %+v", entries)
	}
}
