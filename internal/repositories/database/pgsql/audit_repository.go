package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelworks/housing_ops_app/internal/apperrors"
	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	portsrepo "github.com/hostelworks/housing_ops_app/internal/core/ports/repositories"
)

// PgxDeletionLogRepository writes pre-deletion snapshots. Append-only: the table
// has no update or delete path in code.
type PgxDeletionLogRepository struct {
	BaseRepository
}

func newPgxDeletionLogRepository(pool *pgxpool.Pool) portsrepo.DeletionLogSink {
	return &PgxDeletionLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DeletionLogSink = (*PgxDeletionLogRepository)(nil)

// AppendDeletionRecord inserts a deletion record.
func (r *PgxDeletionLogRepository) AppendDeletionRecord(ctx context.Context, record domain.DeletionRecord) error {
	query := `
		INSERT INTO deletion_log (record_id, entity_kind, entity_id, snapshot, actor, reason, link_metadata, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	linkMeta := record.LinkMetadata
	if linkMeta == nil {
		linkMeta = map[string]string{}
	}
	_, err := r.conn(ctx).Exec(ctx, query,
		record.RecordID,
		string(record.EntityKind),
		record.EntityID,
		record.Snapshot,
		record.Actor,
		record.Reason,
		linkMeta,
		record.DeletedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to append deletion record for "+record.EntityID, err)
	}
	return nil
}

// PgxAuditLogRepository writes operation summaries and archival snapshots.
// Append-only like the deletion log.
type PgxAuditLogRepository struct {
	BaseRepository
}

func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogSink {
	return &PgxAuditLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AuditLogSink = (*PgxAuditLogRepository)(nil)

// AppendAuditRecord inserts an audit record.
func (r *PgxAuditLogRepository) AppendAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	query := `
		INSERT INTO audit_log (record_id, entity_kind, entity_id, action, detail, actor, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	detail := record.Detail
	if len(detail) == 0 {
		detail = []byte("{}")
	}
	_, err := r.conn(ctx).Exec(ctx, query,
		record.RecordID,
		string(record.EntityKind),
		record.EntityID,
		record.Action,
		detail,
		record.Actor,
		record.RecordedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to append audit record for "+record.EntityID, err)
	}
	return nil
}
