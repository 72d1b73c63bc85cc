package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hostelworks/housing_ops_app/internal/apperrors"
	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	portsrepo "github.com/hostelworks/housing_ops_app/internal/core/ports/repositories"
	"github.com/hostelworks/housing_ops_app/internal/models"
	"github.com/hostelworks/housing_ops_app/internal/utils/mapping"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entry and line data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const entryColumns = `
	entry_id, transaction_reference, entry_date, description, status,
	source_kind, source_id, total_debit, total_credit,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `
	line_id, entry_id, line_position, account_code, account_name, account_type,
	debit, credit, description, metadata,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveEntry persists an entry header with its lines.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	conn := r.conn(ctx)

	modelEntry := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := conn.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.TransactionReference,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.Status,
		modelEntry.SourceKind,
		modelEntry.SourceID,
		modelEntry.TotalDebit,
		modelEntry.TotalCredit,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert entry "+modelEntry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO entry_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, line := range entry.Lines {
		modelLine := mapping.ToModelEntryLine(line)
		if modelLine.Metadata == nil {
			modelLine.Metadata = map[string]string{}
		}
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.Position,
			modelLine.AccountCode,
			modelLine.AccountName,
			modelLine.AccountType,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.Description,
			modelLine.Metadata,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}
	br := conn.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+modelEntry.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves an entry with its lines by exact id.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	conn := r.conn(ctx)

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	var m models.JournalEntry
	err := conn.QueryRow(ctx, query, entryID).Scan(
		&m.EntryID,
		&m.TransactionReference,
		&m.EntryDate,
		&m.Description,
		&m.Status,
		&m.SourceKind,
		&m.SourceID,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	lines, err := r.loadLines(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entryID]
	return &entry, nil
}

// FindReversalOf returns the posted entry whose lines link back to
// originalEntryID with the reversal flag, or nil when none exists.
func (r *PgxEntryRepository) FindReversalOf(ctx context.Context, originalEntryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT DISTINCT e.entry_id
		FROM journal_entries e
		JOIN entry_lines l ON l.entry_id = e.entry_id
		WHERE l.metadata ->> $2 = $1
		  AND l.metadata ->> $3 = $4
		  AND e.status = $5
		LIMIT 1;
	`
	var entryID string
	err := r.conn(ctx).QueryRow(ctx, query,
		originalEntryID,
		domain.MetaOriginalEntryID,
		domain.MetaIsReversal,
		domain.MetaTrue,
		string(domain.Posted),
	).Scan(&entryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to find reversal of entry "+originalEntryID, err)
	}
	return r.FindEntryByID(ctx, entryID)
}

// FindEntriesBySource retrieves entries whose explicit source reference matches.
func (r *PgxEntryRepository) FindEntriesBySource(ctx context.Context, kind domain.SourceKind, sourceID string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE source_kind = $1 AND source_id = $2 ORDER BY created_at;`
	return r.queryEntries(ctx, query, string(kind), sourceID)
}

// FindEntriesByReference retrieves entries whose transaction reference exactly
// equals reference.
func (r *PgxEntryRepository) FindEntriesByReference(ctx context.Context, reference string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE transaction_reference = $1 ORDER BY created_at;`
	return r.queryEntries(ctx, query, reference)
}

// FindEntriesByLineMetadata retrieves entries having at least one line whose
// metadata value for key exactly equals value.
func (r *PgxEntryRepository) FindEntriesByLineMetadata(ctx context.Context, key, value string) ([]domain.JournalEntry, error) {
	query := `
		SELECT DISTINCT ` + prefixedEntryColumns("e") + `
		FROM journal_entries e
		JOIN entry_lines l ON l.entry_id = e.entry_id
		WHERE l.metadata ->> $1 = $2;
	`
	return r.queryEntries(ctx, query, key, value)
}

// FindOpenAccrualsForStudent retrieves the posted accrual entries for a student
// that have no reversal yet. Entries that are themselves reversal or forfeiture
// entries are excluded by their own line flags.
func (r *PgxEntryRepository) FindOpenAccrualsForStudent(ctx context.Context, studentID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT DISTINCT ` + prefixedEntryColumns("e") + `
		FROM journal_entries e
		JOIN entry_lines l ON l.entry_id = e.entry_id
		WHERE e.status = $1
		  AND l.metadata ->> $2 = $3
		  AND l.metadata ->> $4 = $5
		  AND NOT EXISTS (
			SELECT 1 FROM entry_lines lf
			WHERE lf.entry_id = e.entry_id
			  AND (lf.metadata ->> $6 = $3 OR lf.metadata ->> $7 = $3)
		  )
		  AND NOT EXISTS (
			SELECT 1
			FROM entry_lines lr
			JOIN journal_entries er ON er.entry_id = lr.entry_id
			WHERE lr.metadata ->> $8 = e.entry_id
			  AND lr.metadata ->> $6 = $3
			  AND er.status = $1
		  );
	`
	return r.queryEntries(ctx, query,
		string(domain.Posted),
		domain.MetaIsAccrual,
		domain.MetaTrue,
		domain.MetaStudentID,
		studentID,
		domain.MetaIsReversal,
		domain.MetaIsForfeiture,
		domain.MetaOriginalEntryID,
	)
}

// UpdateEntryStatus transitions an entry's status.
func (r *PgxEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	tag, err := r.conn(ctx).Exec(ctx, query, entryID, string(status), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateEntryTotals rewrites an entry's cached totals after a line edit.
func (r *PgxEntryRepository) UpdateEntryTotals(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET total_debit = $2, total_credit = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	tag, err := r.conn(ctx).Exec(ctx, query, entry.EntryID, entry.TotalDebit, entry.TotalCredit, entry.LastUpdatedAt, entry.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update totals of entry "+entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntry removes an entry and its lines.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	conn := r.conn(ctx)
	if _, err := conn.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of entry "+entryID, err)
	}
	tag, err := conn.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteLines removes individual lines by id.
func (r *PgxEntryRepository) DeleteLines(ctx context.Context, lineIDs []string) error {
	if len(lineIDs) == 0 {
		return nil
	}
	if _, err := r.conn(ctx).Exec(ctx, `DELETE FROM entry_lines WHERE line_id = ANY($1);`, lineIDs); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines", err)
	}
	return nil
}

// queryEntries runs an entry header query and attaches lines to every result.
func (r *PgxEntryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	ids := []string{}
	for rows.Next() {
		var m models.JournalEntry
		err := rows.Scan(
			&m.EntryID,
			&m.TransactionReference,
			&m.EntryDate,
			&m.Description,
			&m.Status,
			&m.SourceKind,
			&m.SourceID,
			&m.TotalDebit,
			&m.TotalCredit,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
		ids = append(ids, m.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].EntryID]
	}
	return entries, nil
}

// loadLines fetches the lines for a set of entries, keyed by entry id.
func (r *PgxEntryRepository) loadLines(ctx context.Context, entryIDs []string) (map[string][]domain.EntryLine, error) {
	query := `SELECT ` + lineColumns + ` FROM entry_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_position;`
	rows, err := r.conn(ctx).Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry lines", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.EntryLine, len(entryIDs))
	for rows.Next() {
		var m models.EntryLine
		err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.Position,
			&m.AccountCode,
			&m.AccountName,
			&m.AccountType,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.Metadata,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry line row", err)
		}
		result[m.EntryID] = append(result[m.EntryID], mapping.ToDomainEntryLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry line rows", err)
	}
	return result, nil
}

// prefixedEntryColumns qualifies the entry column list with a table alias.
func prefixedEntryColumns(alias string) string {
	return alias + `.entry_id, ` + alias + `.transaction_reference, ` + alias + `.entry_date, ` +
		alias + `.description, ` + alias + `.status, ` + alias + `.source_kind, ` + alias + `.source_id, ` +
		alias + `.total_debit, ` + alias + `.total_credit, ` + alias + `.created_at, ` + alias + `.created_by, ` +
		alias + `.last_updated_at, ` + alias + `.last_updated_by`
}
