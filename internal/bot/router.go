// Package bot routes inbound chat events to the ledger. Commands mutate
// accounts and sessions; plain text is parsed as a transaction and
// appended to the user's active account.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tally/internal/core"
	"tally/internal/events"
	applog "tally/internal/log"
	"tally/internal/parse"
	"tally/internal/report"
	"tally/internal/session"
	"tally/internal/store"
)

type Router struct {
	store    store.LedgerStore
	sessions *session.Manager
	events   events.Publisher
	logger   *applog.Logger
	allowed  map[int64]struct{} // empty means everyone
}

func NewRouter(st store.LedgerStore, sessions *session.Manager, pub events.Publisher, logger *applog.Logger, allowedUsers []int64) *Router {
	allowed := make(map[int64]struct{}, len(allowedUsers))
	for _, id := range allowedUsers {
		allowed[id] = struct{}{}
	}
	return &Router{
		store:    st,
		sessions: sessions,
		events:   pub,
		logger:   logger.WithComponent(applog.ComponentRouter),
		allowed:  allowed,
	}
}

// HandleCommand processes one command event and returns the reply text.
// Every failure maps to a user-facing message; nothing escalates past a
// single request.
func (r *Router) HandleCommand(ctx context.Context, userID int64, command string, args []string) string {
	if !r.isAllowed(userID) {
		return msgNotAllowed
	}

	command = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(command), "/"))
	switch command {
	case "start":
		return msgWelcome
	case "new":
		return r.cmdNew(ctx, userID, strings.TrimSpace(strings.Join(args, " ")))
	case "switch":
		return r.cmdSwitch(ctx, userID, strings.TrimSpace(strings.Join(args, " ")))
	case "list":
		return r.cmdList(ctx, userID)
	case "current":
		return r.cmdCurrent(ctx, userID)
	case "clear":
		return r.cmdClear(ctx, userID, strings.TrimSpace(strings.Join(args, " ")))
	case "delete":
		return r.cmdDelete(ctx, userID, strings.TrimSpace(strings.Join(args, " ")))
	default:
		return msgUnknownCommand(command)
	}
}

// HandleText processes one plain message. Depending on session state it
// either names a new account or records a transaction on the active one.
func (r *Router) HandleText(ctx context.Context, userID int64, text string) string {
	if !r.isAllowed(userID) {
		return msgNotAllowed
	}

	sess := r.sessions.Get(userID)
	if sess.State == session.AwaitingAccountName {
		return r.createAndActivate(ctx, userID, strings.TrimSpace(text))
	}

	if sess.Active == "" {
		return msgNoActive
	}

	tx, err := parse.Parse(text)
	if err != nil {
		// ParseRejected: no state change, show the grammar instead.
		return msgFormatHelp
	}

	entry := core.Entry{Label: tx.Label, Amount: tx.Amount}
	if err := r.store.AppendEntry(ctx, sess.Active, entry); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			// Active account was deleted underneath the session.
			r.sessions.Update(userID, func(s *session.Session) { s.Active = "" })
			return report.NotFound(sess.Active)
		case errors.Is(err, store.ErrInvalid):
			return msgFormatHelp
		default:
			r.logger.ErrorContext(ctx, "Append failed",
				applog.FieldUserID, userID,
				applog.FieldAccount, sess.Active,
				applog.FieldError, err)
			return msgStoreFailure
		}
	}

	r.publish(ctx, events.NewAppended(sess.Active, entry.Label, entry.Amount))

	return r.renderReport(ctx, sess.Active)
}

func (r *Router) cmdNew(ctx context.Context, userID int64, name string) string {
	if name == "" {
		r.sessions.Update(userID, func(s *session.Session) { s.State = session.AwaitingAccountName })
		return msgAskAccountName
	}
	return r.createAndActivate(ctx, userID, name)
}

func (r *Router) cmdSwitch(ctx context.Context, userID int64, name string) string {
	if name == "" {
		return `Usage: switch <name>`
	}

	// Accounts are created on first reference.
	err := r.store.CreateAccount(ctx, name)
	switch {
	case err == nil:
		r.activate(userID, name)
		return fmt.Sprintf("Created account %q and switched to it.", name)
	case errors.Is(err, store.ErrDuplicate):
		r.activate(userID, name)
		return fmt.Sprintf("Switched to account %q.", name)
	case errors.Is(err, store.ErrInvalid):
		return "Account names cannot be empty."
	default:
		r.logger.ErrorContext(ctx, "Switch failed",
			applog.FieldUserID, userID,
			applog.FieldAccount, name,
			applog.FieldError, err)
		return msgStoreFailure
	}
}

func (r *Router) cmdList(ctx context.Context, userID int64) string {
	names, err := r.store.ListAccounts(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "List failed", applog.FieldUserID, userID, applog.FieldError, err)
		return msgStoreFailure
	}
	if len(names) == 0 {
		return `No accounts yet. Use "new <name>" to create one.`
	}

	active := r.sessions.Get(userID).Active
	var b strings.Builder
	b.WriteString("Accounts:\n")
	for _, name := range names {
		if name == active {
			fmt.Fprintf(&b, "- %s (active)\n", name)
		} else {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (r *Router) cmdCurrent(ctx context.Context, userID int64) string {
	active := r.sessions.Get(userID).Active
	if active == "" {
		return msgNoActive
	}
	return r.renderReport(ctx, active)
}

func (r *Router) cmdClear(ctx context.Context, userID int64, name string) string {
	name = r.orActive(userID, name)
	if name == "" {
		return msgNoActive
	}

	if err := r.store.ClearEntries(ctx, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return report.NotFound(name)
		}
		r.logger.ErrorContext(ctx, "Clear failed",
			applog.FieldUserID, userID,
			applog.FieldAccount, name,
			applog.FieldError, err)
		return msgStoreFailure
	}

	r.publish(ctx, events.NewCleared(name))
	return fmt.Sprintf("Cleared account %q.", name)
}

func (r *Router) cmdDelete(ctx context.Context, userID int64, name string) string {
	name = r.orActive(userID, name)
	if name == "" {
		return msgNoActive
	}

	if err := r.store.DeleteAccount(ctx, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return report.NotFound(name)
		}
		r.logger.ErrorContext(ctx, "Delete failed",
			applog.FieldUserID, userID,
			applog.FieldAccount, name,
			applog.FieldError, err)
		return msgStoreFailure
	}

	// No session may keep pointing at a deleted account.
	r.sessions.DropActive(name)
	r.publish(ctx, events.NewDeleted(name))
	return fmt.Sprintf("Deleted account %q.", name)
}

func (r *Router) createAndActivate(ctx context.Context, userID int64, name string) string {
	err := r.store.CreateAccount(ctx, name)
	switch {
	case err == nil:
		r.activate(userID, name)
		return fmt.Sprintf("Created account %q and made it active.", name)
	case errors.Is(err, store.ErrDuplicate):
		r.sessions.Update(userID, func(s *session.Session) { s.State = session.Idle })
		return fmt.Sprintf("Account %q already exists. Use \"switch %s\" to select it.", name, name)
	case errors.Is(err, store.ErrInvalid):
		// Stay in AwaitingAccountName if that's where we were.
		return "Account names cannot be empty, try again."
	default:
		r.logger.ErrorContext(ctx, "Create failed",
			applog.FieldUserID, userID,
			applog.FieldAccount, name,
			applog.FieldError, err)
		return msgStoreFailure
	}
}

func (r *Router) renderReport(ctx context.Context, name string) string {
	entries, err := r.store.Entries(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return report.NotFound(name)
		}
		r.logger.ErrorContext(ctx, "Read failed", applog.FieldAccount, name, applog.FieldError, err)
		return msgStoreFailure
	}
	return report.Render(name, entries)
}

func (r *Router) activate(userID int64, name string) {
	r.sessions.Update(userID, func(s *session.Session) {
		s.Active = name
		s.State = session.Idle
	})
}

func (r *Router) orActive(userID int64, name string) string {
	if name != "" {
		return name
	}
	return r.sessions.Get(userID).Active
}

// publish is best-effort: the entry is already durable, a lost audit
// event must not fail the user's request.
func (r *Router) publish(ctx context.Context, ev events.EntryEvent) {
	if err := r.events.PublishEntryEvent(ctx, ev); err != nil {
		r.logger.ErrorContext(ctx, "Publish failed",
			applog.FieldAccount, ev.Account,
			applog.FieldAction, string(ev.Action),
			applog.FieldError, err)
	}
}

func (r *Router) isAllowed(userID int64) bool {
	if len(r.allowed) == 0 {
		return true
	}
	_, ok := r.allowed[userID]
	return ok
}
