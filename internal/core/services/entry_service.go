package services

import (
	"context"
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

// entryService is the journal entry store. It is the single validation gate for
// the balance, minimum-lines and known-account invariants; no caller can persist
// an entry around it.
type entryService struct {
	entryRepo portsrepo.EntryRepositoryFacade
	accounts  portsrepo.AccountDirectory
	txMgr     portsrepo.TransactionManager
}

// NewEntryService creates the journal entry store service.
func NewEntryService(entryRepo portsrepo.EntryRepositoryFacade, accounts portsrepo.AccountDirectory, txMgr portsrepo.TransactionManager) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo: entryRepo,
		accounts:  accounts,
		txMgr:     txMgr,
	}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// PostEntry validates a draft and persists it atomically. The draft is discarded
// wholesale on any validation failure; there is no partial write.
func (s *entryService) PostEntry(ctx context.Context, req dto.PostEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) < 2 {
		return nil, ErrEntryMinLines
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}

	lines := make([]domain.EntryLine, len(req.Lines))
	codes := make([]string, 0, len(req.Lines))
	for i, lr := range req.Lines {
		line := domain.EntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			Position:    i,
			AccountCode: lr.AccountCode,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
			Description: lr.Description,
			Metadata:    lr.Metadata,
			AuditFields: audit,
		}
		if err := accounting.ValidateLineShape(line); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		lines[i] = line
		codes = append(codes, lr.AccountCode)
	}

	totalDebit, totalCredit := accounting.SumLines(lines)
	if !accounting.IsBalanced(totalDebit, totalCredit) {
		return nil, fmt.Errorf("%w: debits total %s, credits total %s",
			ErrEntryUnbalanced, totalDebit.String(), totalCredit.String())
	}

	// Every account code must resolve in the directory at write time.
	accountsMap, err := s.accounts.ResolveMany(ctx, uniqueStrings(codes))
	if err != nil {
		logger.Error("Failed to resolve accounts for entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to resolve accounts: %w", err)
	}
	for i := range lines {
		acc, found := accountsMap[lines[i].AccountCode]
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, lines[i].AccountCode)
		}
		lines[i].AccountName = acc.Name
		lines[i].AccountType = acc.AccountType
	}

	entry := domain.JournalEntry{
		EntryID:              entryID,
		TransactionReference: req.TransactionReference,
		EntryDate:            req.Date,
		Description:          req.Description,
		Status:               domain.Posted,
		SourceKind:           domain.SourceKind(req.SourceKind),
		SourceID:             req.SourceID,
		Lines:                lines,
		TotalDebit:           totalDebit,
		TotalCredit:          totalCredit,
		AuditFields:          audit,
	}

	err = s.txMgr.WithinTx(ctx, func(ctx context.Context) error {
		return s.entryRepo.SaveEntry(ctx, entry)
	})
	if err != nil {
		logger.Error("Failed to save entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Entry posted", slog.String("entry_id", entry.EntryID), slog.String("reference", entry.TransactionReference))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *entryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// RemoveLine deletes one line from a live entry. The edit is refused outright
// when it would leave the entry below two lines or out of balance; in that case
// the entry must be voided or reversed instead.
func (s *entryService) RemoveLine(ctx context.Context, entryID, lineID string, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var updated *domain.JournalEntry
	err := s.txMgr.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Posted {
			return fmt.Errorf("%w: status is %s", ErrEntryNotPosted, entry.Status)
		}

		remaining := make([]domain.EntryLine, 0, len(entry.Lines))
		found := false
		for _, l := range entry.Lines {
			if l.LineID == lineID {
				found = true
				continue
			}
			remaining = append(remaining, l)
		}
		if !found {
			return apperrors.NewNotFoundError("line " + lineID + " not found on entry " + entryID)
		}

		if len(remaining) < 2 {
			return fmt.Errorf("%w: entry %s would drop below two lines", ErrLineRemovalRefused, entryID)
		}
		totalDebit, totalCredit := accounting.SumLines(remaining)
		if !accounting.IsBalanced(totalDebit, totalCredit) {
			return fmt.Errorf("%w: entry %s would be left unbalanced (%s vs %s)",
				ErrLineRemovalRefused, entryID, totalDebit.String(), totalCredit.String())
		}

		if err := s.entryRepo.DeleteLines(ctx, []string{lineID}); err != nil {
			return err
		}

		now := time.Now().UTC()
		entry.Lines = remaining
		entry.TotalDebit = totalDebit
		entry.TotalCredit = totalCredit
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = actorID
		if err := s.entryRepo.UpdateEntryTotals(ctx, *entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Line removed from entry", slog.String("entry_id", entryID), slog.String("line_id", lineID))
	return updated, nil
}

// VoidEntry transitions an entry to VOIDED. Lines stay in place for history.
func (s *entryService) VoidEntry(ctx context.Context, entryID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	return s.txMgr.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.Status == domain.Voided {
			return fmt.Errorf("%w: entry %s is already voided", apperrors.ErrConflict, entryID)
		}
		if err := s.entryRepo.UpdateEntryStatus(ctx, entryID, domain.Voided, actorID, time.Now().UTC()); err != nil {
			return err
		}
		logger.Info("Entry voided", slog.String("entry_id", entryID))
		return nil
	})
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
