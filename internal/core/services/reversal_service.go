package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	portsrepo "github.com/hostelworks/housing_ops_app/internal/core/ports/repositories"
	portssvc "github.com/hostelworks/housing_ops_app/internal/core/ports/services"
	"github.com/hostelworks/housing_ops_app/internal/dto"
	"github.com/hostelworks/housing_ops_app/internal/middleware"
	"github.com/hostelworks/housing_ops_app/internal/utils/accounting"
)

// reversalService builds and posts mirror entries that exactly negate prior
// entries. The original entry is never mutated or deleted; both entries coexist.
type reversalService struct {
	entryRepo portsrepo.EntryReader
	entrySvc  portssvc.EntrySvcFacade
	txMgr     portsrepo.TransactionManager
}

// NewReversalService creates the reversal engine.
func NewReversalService(entryRepo portsrepo.EntryReader, entrySvc portssvc.EntrySvcFacade, txMgr portsrepo.TransactionManager) portssvc.ReversalSvcFacade {
	return &reversalService{
		entryRepo: entryRepo,
		entrySvc:  entrySvc,
		txMgr:     txMgr,
	}
}

var _ portssvc.ReversalSvcFacade = (*reversalService)(nil)

// ReverseEntry posts the mirror of the given entry: every line with debit and
// credit swapped, tagged with the original entry id. effectiveDate defaults to
// the original entry's date so the correction lands in the same accounting
// period as the event it undoes.
func (s *reversalService) ReverseEntry(ctx context.Context, originalEntryID, reason string, effectiveDate *time.Time, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var reversal *domain.JournalEntry
	err := s.txMgr.WithinTx(ctx, func(ctx context.Context) error {
		original, err := s.entryRepo.FindEntryByID(ctx, originalEntryID)
		if err != nil {
			return err
		}
		if original.Status != domain.Posted {
			return fmt.Errorf("%w: status is %s", ErrEntryNotPosted, original.Status)
		}
		if original.HasFlag(domain.MetaIsReversal) {
			return fmt.Errorf("%w: %s", ErrReversalOfReversal, originalEntryID)
		}

		// Duplicate guard: an explicit metadata scan, not a description match.
		existing, err := s.entryRepo.FindReversalOf(ctx, originalEntryID)
		if err != nil {
			return fmt.Errorf("failed to check for existing reversal: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("%w: reversed by %s", ErrAlreadyReversed, existing.EntryID)
		}

		date := original.EntryDate
		if effectiveDate != nil {
			date = *effectiveDate
		}

		linkMeta := map[string]string{
			domain.MetaOriginalEntryID: originalEntryID,
			domain.MetaIsReversal:      domain.MetaTrue,
		}
		lines := make([]dto.EntryLineRequest, len(original.Lines))
		for i, l := range original.Lines {
			mirrored := accounting.MirrorLine(l, linkMeta)
			lines[i] = dto.EntryLineRequest{
				AccountCode: mirrored.AccountCode,
				Debit:       mirrored.Debit,
				Credit:      mirrored.Credit,
				Description: mirrored.Description,
				Metadata:    mirrored.Metadata,
			}
		}

		req := dto.PostEntryRequest{
			TransactionReference: original.TransactionReference,
			Date:                 date,
			Description:          fmt.Sprintf("Reversal of %s: %s", original.Description, reason),
			SourceKind:           string(domain.SourceEntry),
			SourceID:             originalEntryID,
			Lines:                lines,
		}
		reversal, err = s.entrySvc.PostEntry(ctx, req, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Entry reversed",
		slog.String("original_entry_id", originalEntryID),
		slog.String("reversal_entry_id", reversal.EntryID),
	)
	return reversal, nil
}
