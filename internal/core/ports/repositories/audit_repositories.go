package repositories

import (
	"context"

	"github.com/hostelworks/housing_ops_app/internal/core/domain"
)

// DeletionLogSink is the append-only write target for pre-deletion snapshots.
// Records are write-once: there are no update or delete operations.
type DeletionLogSink interface {
	AppendDeletionRecord(ctx context.Context, record domain.DeletionRecord) error
}

// AuditLogSink is the append-only write target for operation summaries and
// archival snapshots. Records are write-once.
type AuditLogSink interface {
	AppendAuditRecord(ctx context.Context, record domain.AuditRecord) error
}
