package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tally/internal/core"
	"tally/internal/store"
)

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, name := range []string{"wallet", "groceries", "travel"} {
		if err := s.CreateAccount(ctx, name); err != nil {
			t.Fatalf("CreateAccount(%q) error = %v", name, err)
		}
	}

	names, err := s.ListAccounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"wallet", "groceries", "travel"}
	if len(names) != len(want) {
		t.Fatalf("got %d accounts, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names[%d] = %q, want %q (creation order)", i, names[i], want[i])
		}
	}
}

func TestCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.CreateAccount(ctx, "wallet"); err != nil {
		t.Fatal(err)
	}
	err := s.CreateAccount(ctx, "wallet")
	if !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("error = %v, want ErrDuplicate", err)
	}
}

func TestCreateInvalidName(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, name := range []string{"", "   "} {
		if err := s.CreateAccount(ctx, name); !errors.Is(err, store.ErrInvalid) {
			t.Fatalf("CreateAccount(%q) error = %v, want ErrInvalid", name, err)
		}
	}
}

func TestAppendOrderAndBalance(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.CreateAccount(ctx, "groceries"); err != nil {
		t.Fatal(err)
	}

	appended := []core.Entry{
		{Label: "milk", Amount: -25},
		{Label: "bread", Amount: -15},
		{Label: "refund", Amount: 5},
	}
	for _, e := range appended {
		if err := s.AppendEntry(ctx, "groceries", e); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.Entries(ctx, "groceries")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(appended) {
		t.Fatalf("got %d entries, want %d", len(entries), len(appended))
	}
	for i := range appended {
		if entries[i] != appended[i] {
			t.Fatalf("entries[%d] = %+v, want %+v", i, entries[i], appended[i])
		}
	}
	if core.Balance(entries) != -35 {
		t.Fatalf("balance = %d, want -35", core.Balance(entries))
	}
}

func TestAppendToMissingAccount(t *testing.T) {
	ctx := context.Background()
	s := New()
	err := s.AppendEntry(ctx, "nope", core.Entry{Label: "x", Amount: 1})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestAppendInvalidEntry(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.CreateAccount(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	err := s.AppendEntry(ctx, "a", core.Entry{Label: "  ", Amount: 1})
	if !errors.Is(err, store.ErrInvalid) {
		t.Fatalf("error = %v, want ErrInvalid", err)
	}
	entries, _ := s.Entries(ctx, "a")
	if len(entries) != 0 {
		t.Fatal("rejected entry must not be stored")
	}
}

func TestClearKeepsAccount(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.CreateAccount(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendEntry(ctx, "a", core.Entry{Label: "x", Amount: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearEntries(ctx, "a"); err != nil {
		t.Fatal(err)
	}

	entries, err := s.Entries(ctx, "a")
	if err != nil {
		t.Fatalf("account must survive a clear, got %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("got %d entries after clear, want 0", len(entries))
	}
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.CreateAccount(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteAccount(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Entries(ctx, "a"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound after delete", err)
	}
	if err := s.DeleteAccount(ctx, "a"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.CreateAccount(ctx, "shared"); err != nil {
		t.Fatal(err)
	}

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if err := s.AppendEntry(ctx, "shared", core.Entry{Label: "tick", Amount: 1}); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	entries, err := s.Entries(ctx, "shared")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != workers*perWorker {
		t.Fatalf("got %d entries, want %d (no lost appends)", len(entries), workers*perWorker)
	}
	if core.Balance(entries) != workers*perWorker {
		t.Fatalf("balance = %d, want %d (no double counting)", core.Balance(entries), workers*perWorker)
	}
}
