package services

import (
	"context"
	"time"

	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	"github.com/hostelworks/housing_ops_app/internal/dto"
)

// EntrySvcFacade is the journal entry store: the single validation gate through
// which every balanced entry is recorded.
type EntrySvcFacade interface {
	// PostEntry validates a draft (balance, minimum lines, known accounts) and
	// persists it atomically. On any validation failure nothing is written.
	PostEntry(ctx context.Context, req dto.PostEntryRequest, actorID string) (*domain.JournalEntry, error)

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// RemoveLine deletes one line from a live entry, refusing edits that would
	// leave the entry below two lines or out of balance.
	RemoveLine(ctx context.Context, entryID, lineID string, actorID string) (*domain.JournalEntry, error)

	// VoidEntry transitions an entry to VOIDED without touching its lines.
	VoidEntry(ctx context.Context, entryID string, actorID string) error
}

// ReversalSvcFacade builds and posts mirror entries that exactly negate prior
// entries.
type ReversalSvcFacade interface {
	// ReverseEntry posts the mirror of the given entry. effectiveDate defaults
	// to the original entry's date so the correction lands in the same
	// accounting period. A second call for the same entry returns a conflict
	// instead of posting a duplicate.
	ReverseEntry(ctx context.Context, originalEntryID, reason string, effectiveDate *time.Time, actorID string) (*domain.JournalEntry, error)
}

// CascadeSvcFacade removes a journal entry together with the records explicitly
// linked to it, logging every deletion before removal.
type CascadeSvcFacade interface {
	DeleteWithCascade(ctx context.Context, entryID string, actor string, reason string, opts dto.CascadeOptions) (*dto.CascadeResult, error)
}

// AdjustmentSvcFacade posts negotiated discounts and keeps the debtor ledger in
// sync.
type AdjustmentSvcFacade interface {
	ApplyDiscount(ctx context.Context, req dto.ApplyDiscountRequest, actorID string) (*domain.JournalEntry, error)
}

// ForfeitureSvcFacade unwinds all accruals for a student who defaults and
// reclassifies their payments as forfeited income.
type ForfeitureSvcFacade interface {
	ForfeitStudent(ctx context.Context, studentID, reason string, actorID string) (*domain.ForfeitureResult, error)
}

// DebtorSvcFacade exposes the per-student balance summary.
type DebtorSvcFacade interface {
	GetStatus(ctx context.Context, studentID string) (*dto.StudentStatusResponse, error)
}

// ServiceContainer aggregates the ledger service facades for wiring into
// handlers.
type ServiceContainer struct {
	Entry      EntrySvcFacade
	Reversal   ReversalSvcFacade
	Cascade    CascadeSvcFacade
	Adjustment AdjustmentSvcFacade
	Forfeiture ForfeitureSvcFacade
	Debtor     DebtorSvcFacade
}
