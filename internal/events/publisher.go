package events

import "context"

// Publisher is the outbound side of the audit stream. Publishing is
// best-effort from the router's point of view: a failed publish is logged
// by the caller and never fails the user's request.
type Publisher interface {
	PublishEntryEvent(ctx context.Context, ev EntryEvent) error
}

// NopPublisher drops every event. Used by the memory backend and tests.
type NopPublisher struct{}

func (NopPublisher) PublishEntryEvent(context.Context, EntryEvent) error { return nil }
