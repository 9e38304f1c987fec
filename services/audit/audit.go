// File: services/audit/audit.go
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chairside/models"

	"github.com/hibiken/asynq"
)

// TypeRecord is the asynq task type for audit entries.
const TypeRecord = "audit:record"

// EnqueueTimeout bounds how long a caller may block handing an entry to the
// queue. Side-effect logging must never stall a booking.
const EnqueueTimeout = 8 * time.Second

// Sink accepts best-effort audit entries. Implementations must be safe to
// call from request paths; failures are for the caller to swallow.
type Sink interface {
	Record(ctx context.Context, entry models.AuditEntry) error
}

// AsynqSink hands entries to the background worker via asynq.
type AsynqSink struct {
	client *asynq.Client
}

// NewAsynqSink wraps an asynq client as an audit sink.
func NewAsynqSink(client *asynq.Client) *AsynqSink {
	return &AsynqSink{client: client}
}

func (s *AsynqSink) Record(ctx context.Context, entry models.AuditEntry) error {
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, EnqueueTimeout)
	defer cancel()

	task := asynq.NewTask(TypeRecord, payload)
	if _, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue audit entry: %w", err)
	}
	return nil
}
