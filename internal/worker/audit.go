// Package worker persists entry events from the audit stream into the
// audit_log table, out of the request path.
package worker

import (
	"context"

	"tally/internal/events"
	applog "tally/internal/log"
)

// AuditSink is the slice of the sqlite repository the worker needs.
type AuditSink interface {
	RecordAudit(ctx context.Context, ev events.EntryEvent) error
}

type AuditWorker struct {
	sink   AuditSink
	logger *applog.Logger
}

func NewAuditWorker(sink AuditSink, logger *applog.Logger) *AuditWorker {
	return &AuditWorker{
		sink:   sink,
		logger: logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleEvent records one event. Returning an error makes the consumer
// nack and requeue the delivery.
func (w *AuditWorker) HandleEvent(ctx context.Context, ev events.EntryEvent) error {
	if err := w.sink.RecordAudit(ctx, ev); err != nil {
		return err
	}

	w.logger.InfoContext(ctx, "Audit event recorded",
		applog.FieldAccount, ev.Account,
		applog.FieldAction, string(ev.Action),
		applog.FieldAmount, ev.Amount)
	return nil
}
