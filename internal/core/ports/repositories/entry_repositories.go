package repositories

import (
	"context"
	"time"

	"github.com/hostelworks/housing_ops_app/internal/core/domain"
)

// EntryReader defines read operations for journal entry data. All lookups are
// exact-match on explicit identifiers or metadata link fields; there is no
// pattern or substring matching anywhere in the contract.
type EntryReader interface {
	// FindEntryByID retrieves a journal entry with its lines by exact id.
	// Returns apperrors.ErrNotFound when absent; never falls back to scanning
	// other fields for the id.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindReversalOf returns the entry carrying line metadata
	// originalEntryId == originalEntryID and isReversal == true, or nil when no
	// reversal exists.
	FindReversalOf(ctx context.Context, originalEntryID string) (*domain.JournalEntry, error)

	// FindEntriesBySource retrieves entries whose explicit source reference
	// matches the given kind and id.
	FindEntriesBySource(ctx context.Context, kind domain.SourceKind, sourceID string) ([]domain.JournalEntry, error)

	// FindEntriesByReference retrieves entries whose transaction reference
	// exactly equals reference.
	FindEntriesByReference(ctx context.Context, reference string) ([]domain.JournalEntry, error)

	// FindEntriesByLineMetadata retrieves entries having at least one line whose
	// metadata value for key exactly equals value.
	FindEntriesByLineMetadata(ctx context.Context, key, value string) ([]domain.JournalEntry, error)

	// FindOpenAccrualsForStudent retrieves the posted accrual entries for a
	// student that are still open: entries tagged isAccrual with the student's
	// id, excluding entries tagged isReversal or isForfeiture and excluding
	// entries for which a reversal entry already exists.
	FindOpenAccrualsForStudent(ctx context.Context, studentID string) ([]domain.JournalEntry, error)
}

// EntryWriter defines write operations for journal entry data.
type EntryWriter interface {
	// SaveEntry persists an entry header and its lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryStatus transitions an entry's status (posted -> voided).
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, updatedBy string, updatedAt time.Time) error

	// UpdateEntryTotals rewrites an entry's cached totals after a line edit.
	UpdateEntryTotals(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry removes an entry and its lines. Callers write a DeletionRecord
	// first; the cascade deletion engine is the only component allowed here.
	DeleteEntry(ctx context.Context, entryID string) error

	// DeleteLines removes individual lines by id.
	DeleteLines(ctx context.Context, lineIDs []string) error
}

// EntryRepositoryFacade combines the journal entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
