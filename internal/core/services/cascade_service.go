package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hostelworks/housing_ops_app/internal/apperrors"
	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	portsrepo "github.com/hostelworks/housing_ops_app/internal/core/ports/repositories"
	portssvc "github.com/hostelworks/housing_ops_app/internal/core/ports/services"
	"github.com/hostelworks/housing_ops_app/internal/dto"
	"github.com/hostelworks/housing_ops_app/internal/middleware"
	"github.com/hostelworks/housing_ops_app/internal/utils/accounting"
)

// Discovery paths recorded in deletion-record link metadata.
const (
	discoveredTarget        = "target"
	discoveredBySource      = "sourceReference"
	discoveredByReference   = "exactReference"
	discoveredByParentMeta  = "parentEntryIdMetadata"
	discoveredByOriginal    = "originalEntryIdMetadata"
	discoveredEmptiedParent = "emptiedParent"
)

// cascadeService removes a journal entry and exactly the records explicitly
// linked to it. Discovery never matches on shared transaction references alone
// or on description text; only explicit link fields qualify a record.
type cascadeService struct {
	entryRepo portsrepo.EntryRepositoryFacade
	payments  portsrepo.PaymentRepository
	expenses  portsrepo.ExpenseRepository
	deletions portsrepo.DeletionLogSink
	audits    portsrepo.AuditLogSink
	txMgr     portsrepo.TransactionManager
}

// NewCascadeService creates the cascade deletion engine.
func NewCascadeService(
	entryRepo portsrepo.EntryRepositoryFacade,
	payments portsrepo.PaymentRepository,
	expenses portsrepo.ExpenseRepository,
	deletions portsrepo.DeletionLogSink,
	audits portsrepo.AuditLogSink,
	txMgr portsrepo.TransactionManager,
) portssvc.CascadeSvcFacade {
	return &cascadeService{
		entryRepo: entryRepo,
		payments:  payments,
		expenses:  expenses,
		deletions: deletions,
		audits:    audits,
		txMgr:     txMgr,
	}
}

var _ portssvc.CascadeSvcFacade = (*cascadeService)(nil)

// relatedEntry is a discovered entry slated for full deletion.
type relatedEntry struct {
	entry *domain.JournalEntry
	via   string
}

// partialEntry is a live entry that loses individual linked lines.
type partialEntry struct {
	entry       *domain.JournalEntry
	linkedLines []domain.EntryLine
	remaining   []domain.EntryLine
}

// DeleteWithCascade removes the target entry and everything explicitly linked to
// it, writing a deletion record before each removal. The whole operation is one
// storage transaction: any failure aborts every deletion and deletion-record
// write performed so far. The audit summary is appended after commit; its
// failure is reported in the result, not as an operation failure.
func (s *cascadeService) DeleteWithCascade(ctx context.Context, entryID string, actor string, reason string, opts dto.CascadeOptions) (*dto.CascadeResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	result := &dto.CascadeResult{TargetEntryID: entryID}

	err := s.txMgr.WithinTx(ctx, func(ctx context.Context) error {
		// Exact-id lookup only. A missing entry is a typed not-found, never a
		// heuristic match somewhere else.
		target, err := s.entryRepo.FindEntryByID(ctx, entryID)
		if err != nil {
			return err
		}

		related, partials, err := s.discover(ctx, target)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		// Linked lines inside other live entries go first, so the integrity
		// checks below see the post-removal state.
		for _, p := range partials {
			totalDebit, totalCredit := accounting.SumLines(p.remaining)
			if len(p.remaining) < 2 || !accounting.IsBalanced(totalDebit, totalCredit) {
				return fmt.Errorf("%w: entry %s", ErrWouldUnbalanceRemainder, p.entry.EntryID)
			}

			lineIDs := make([]string, len(p.linkedLines))
			for i, l := range p.linkedLines {
				lineIDs[i] = l.LineID
				via := discoveredByParentMeta
				if l.Meta(domain.MetaOriginalEntryID) == entryID {
					via = discoveredByOriginal
				}
				if err := s.logDeletion(ctx, domain.EntityEntryLine, l.LineID, l, actor, reason, entryID, via, now); err != nil {
					return err
				}
				result.DeletionRecords++
			}
			if err := s.entryRepo.DeleteLines(ctx, lineIDs); err != nil {
				return err
			}
			result.LinesDeleted += len(lineIDs)

			updated := *p.entry
			updated.Lines = p.remaining
			updated.TotalDebit = totalDebit
			updated.TotalCredit = totalCredit
			updated.LastUpdatedAt = now
			updated.LastUpdatedBy = actor
			if err := s.entryRepo.UpdateEntryTotals(ctx, updated); err != nil {
				return err
			}
		}

		// Related entries, then the target itself.
		for _, rel := range related {
			if err := s.logDeletion(ctx, domain.EntityJournalEntry, rel.entry.EntryID, rel.entry, actor, reason, entryID, rel.via, now); err != nil {
				return err
			}
			result.DeletionRecords++
			if err := s.entryRepo.DeleteEntry(ctx, rel.entry.EntryID); err != nil {
				return err
			}
			result.DeletedEntryIDs = append(result.DeletedEntryIDs, rel.entry.EntryID)
			if rel.via == discoveredEmptiedParent {
				result.EmptiedEntriesDeleted++
			} else {
				result.EntriesDeleted++
			}
		}

		if err := s.deleteBusinessRecords(ctx, target, actor, reason, opts, now, result); err != nil {
			return err
		}

		if err := s.logDeletion(ctx, domain.EntityJournalEntry, target.EntryID, target, actor, reason, entryID, discoveredTarget, now); err != nil {
			return err
		}
		result.DeletionRecords++
		if err := s.entryRepo.DeleteEntry(ctx, target.EntryID); err != nil {
			return err
		}
		result.DeletedEntryIDs = append(result.DeletedEntryIDs, target.EntryID)
		result.EntriesDeleted++
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.AuditLogged = s.appendAuditSummary(ctx, entryID, actor, result)
	if !result.AuditLogged {
		logger.Warn("Cascade deletion completed but audit summary could not be written", slog.String("entry_id", entryID))
	}

	logger.Info("Cascade deletion completed",
		slog.String("entry_id", entryID),
		slog.Int("entries_deleted", result.EntriesDeleted),
		slog.Int("lines_deleted", result.LinesDeleted),
		slog.Int("payments_deleted", result.PaymentsDeleted),
		slog.Int("expenses_deleted", result.ExpensesDeleted),
	)
	return result, nil
}

// discover collects the records explicitly linked to the target: entries whose
// source reference points at it, entries whose transaction reference exactly
// equals its id, and lines in other entries whose metadata carries its id.
// Sharing a transaction reference with the target does NOT qualify an entry;
// unrelated entries may legitimately share a reference.
func (s *cascadeService) discover(ctx context.Context, target *domain.JournalEntry) (map[string]relatedEntry, []partialEntry, error) {
	related := make(map[string]relatedEntry)

	bySource, err := s.entryRepo.FindEntriesBySource(ctx, domain.SourceEntry, target.EntryID)
	if err != nil {
		return nil, nil, err
	}
	for i := range bySource {
		if bySource[i].EntryID == target.EntryID {
			continue
		}
		related[bySource[i].EntryID] = relatedEntry{entry: &bySource[i], via: discoveredBySource}
	}

	byRef, err := s.entryRepo.FindEntriesByReference(ctx, target.EntryID)
	if err != nil {
		return nil, nil, err
	}
	for i := range byRef {
		if byRef[i].EntryID == target.EntryID {
			continue
		}
		if _, seen := related[byRef[i].EntryID]; !seen {
			related[byRef[i].EntryID] = relatedEntry{entry: &byRef[i], via: discoveredByReference}
		}
	}

	var partials []partialEntry
	for _, key := range []string{domain.MetaParentEntryID, domain.MetaOriginalEntryID} {
		linked, err := s.entryRepo.FindEntriesByLineMetadata(ctx, key, target.EntryID)
		if err != nil {
			return nil, nil, err
		}
		for i := range linked {
			e := &linked[i]
			if e.EntryID == target.EntryID {
				continue
			}
			if _, seen := related[e.EntryID]; seen {
				continue
			}
			already := false
			for _, p := range partials {
				if p.entry.EntryID == e.EntryID {
					already = true
					break
				}
			}
			if already {
				continue
			}

			var linkedLines, remaining []domain.EntryLine
			for _, l := range e.Lines {
				if l.Meta(domain.MetaParentEntryID) == target.EntryID || l.Meta(domain.MetaOriginalEntryID) == target.EntryID {
					linkedLines = append(linkedLines, l)
				} else {
					remaining = append(remaining, l)
				}
			}
			if len(linkedLines) == len(e.Lines) {
				// Every line links back to the target: the record only existed to
				// hold them, so the whole entry goes.
				related[e.EntryID] = relatedEntry{entry: e, via: discoveredEmptiedParent}
				continue
			}
			partials = append(partials, partialEntry{entry: e, linkedLines: linkedLines, remaining: remaining})
		}
	}

	return related, partials, nil
}

// deleteBusinessRecords removes linked payments and expenses. Records discovered
// via the exact-reference match are deleted automatically; the record named by
// the target's own source reference is deleted only when the caller opted in.
func (s *cascadeService) deleteBusinessRecords(ctx context.Context, target *domain.JournalEntry, actor, reason string, opts dto.CascadeOptions, now time.Time, result *dto.CascadeResult) error {
	doomedPayments := make(map[string]domain.Payment)
	doomedExpenses := make(map[string]domain.VendorExpense)

	pays, err := s.payments.FindPaymentsByReference(ctx, target.EntryID)
	if err != nil {
		return err
	}
	for _, p := range pays {
		doomedPayments[p.PaymentID] = p
	}
	exps, err := s.expenses.FindExpensesByReference(ctx, target.EntryID)
	if err != nil {
		return err
	}
	for _, e := range exps {
		doomedExpenses[e.ExpenseID] = e
	}

	// The opted-in source record may legitimately be gone already; any other
	// lookup failure aborts the whole cascade.
	if opts.DeleteLinkedPayments && target.SourceKind == domain.SourcePayment && target.SourceID != "" {
		p, err := s.payments.FindPaymentByID(ctx, target.SourceID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if p != nil {
			doomedPayments[p.PaymentID] = *p
		}
	}
	if opts.DeleteLinkedExpenses && target.SourceKind == domain.SourceExpense && target.SourceID != "" {
		e, err := s.expenses.FindExpenseByID(ctx, target.SourceID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		if e != nil {
			doomedExpenses[e.ExpenseID] = *e
		}
	}

	for id, p := range doomedPayments {
		if err := s.logDeletion(ctx, domain.EntityPayment, id, p, actor, reason, target.EntryID, discoveredByReference, now); err != nil {
			return err
		}
		result.DeletionRecords++
		if err := s.payments.DeletePayment(ctx, id); err != nil {
			return err
		}
		result.PaymentsDeleted++
	}
	for id, e := range doomedExpenses {
		if err := s.logDeletion(ctx, domain.EntityExpense, id, e, actor, reason, target.EntryID, discoveredByReference, now); err != nil {
			return err
		}
		result.DeletionRecords++
		if err := s.expenses.DeleteExpense(ctx, id); err != nil {
			return err
		}
		result.ExpensesDeleted++
	}
	return nil
}

// logDeletion writes the pre-deletion snapshot inside the operation transaction.
func (s *cascadeService) logDeletion(ctx context.Context, kind domain.EntityKind, entityID string, snapshot any, actor, reason, targetEntryID, via string, now time.Time) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to snapshot %s %s: %w", kind, entityID, err)
	}
	return s.deletions.AppendDeletionRecord(ctx, domain.DeletionRecord{
		RecordID:   uuid.NewString(),
		EntityKind: kind,
		EntityID:   entityID,
		Snapshot:   raw,
		Actor:      actor,
		Reason:     reason,
		LinkMetadata: map[string]string{
			"targetEntryId": targetEntryID,
			"discoveredVia": via,
		},
		DeletedAt: now,
	})
}

// appendAuditSummary writes the post-completion audit record. Returns false when
// the sink is unreachable; audit completeness is reported separately from ledger
// correctness.
func (s *cascadeService) appendAuditSummary(ctx context.Context, entryID, actor string, result *dto.CascadeResult) bool {
	detail, err := json.Marshal(result)
	if err != nil {
		return false
	}
	err = s.audits.AppendAuditRecord(ctx, domain.AuditRecord{
		RecordID:   uuid.NewString(),
		EntityKind: domain.EntityJournalEntry,
		EntityID:   entryID,
		Action:     "CASCADE_DELETE",
		Detail:     detail,
		Actor:      actor,
		RecordedAt: time.Now().UTC(),
	})
	return err == nil
}
