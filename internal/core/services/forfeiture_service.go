package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hostelworks/housing_ops_app/internal/apperrors"
	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	portsrepo "github.com/hostelworks/housing_ops_app/internal/core/ports/repositories"
	portssvc "github.com/hostelworks/housing_ops_app/internal/core/ports/services"
	"github.com/hostelworks/housing_ops_app/internal/dto"
	"github.com/hostelworks/housing_ops_app/internal/middleware"
)

// forfeitureService unwinds all accruals for a student who defaults: every open
// accrual is reversed, received payments are reclassified as forfeited income,
// and the student's application and debtor records are closed out. The ledger
// steps (reverse + reclassify) are atomic as a unit; the external-record steps
// report individually in the result instead of rolling the ledger back.
type forfeitureService struct {
	entryRepo    portsrepo.EntryReader
	entrySvc     portssvc.EntrySvcFacade
	reversalSvc  portssvc.ReversalSvcFacade
	accounts     portsrepo.AccountDirectory
	debtors      portsrepo.DebtorRepository
	payments     portsrepo.PaymentRepository
	applications portsrepo.ApplicationRepository
	audits       portsrepo.AuditLogSink
	txMgr        portsrepo.TransactionManager
}

// NewForfeitureService creates the forfeiture orchestrator.
func NewForfeitureService(
	entryRepo portsrepo.EntryReader,
	entrySvc portssvc.EntrySvcFacade,
	reversalSvc portssvc.ReversalSvcFacade,
	accounts portsrepo.AccountDirectory,
	debtors portsrepo.DebtorRepository,
	payments portsrepo.PaymentRepository,
	applications portsrepo.ApplicationRepository,
	audits portsrepo.AuditLogSink,
	txMgr portsrepo.TransactionManager,
) portssvc.ForfeitureSvcFacade {
	return &forfeitureService{
		entryRepo:    entryRepo,
		entrySvc:     entrySvc,
		reversalSvc:  reversalSvc,
		accounts:     accounts,
		debtors:      debtors,
		payments:     payments,
		applications: applications,
		audits:       audits,
		txMgr:        txMgr,
	}
}

var _ portssvc.ForfeitureSvcFacade = (*forfeitureService)(nil)

// ForfeitStudent runs the forfeiture workflow. Each step is independently
// idempotent: re-running after a partial failure never double-reverses an
// accrual or double-posts the reclassification entry.
func (s *forfeitureService) ForfeitStudent(ctx context.Context, studentID, reason string, actorID string) (*domain.ForfeitureResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	result := &domain.ForfeitureResult{
		StudentID:         studentID,
		ReversedTotal:     decimal.Zero,
		ReclassifiedTotal: decimal.Zero,
	}

	// Steps 1-3: pure ledger operations, one transaction.
	ledgerStep := domain.StepReverseAccruals
	err := s.txMgr.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.reverseOpenAccruals(ctx, studentID, reason, actorID, result); err != nil {
			return err
		}
		ledgerStep = domain.StepReclassifyPayments
		return s.reclassifyPayments(ctx, studentID, reason, actorID, result)
	})
	if err != nil {
		// The transaction rolled back; nothing recorded in it survived.
		result.ReversedEntryIDs = nil
		result.ReversedTotal = decimal.Zero
		result.ReclassificationEntryID = ""
		result.ReclassifiedTotal = decimal.Zero
		result.MarkFailed(ledgerStep, err)
		return result, err
	}
	result.MarkCompleted(domain.StepReverseAccruals)
	result.MarkCompleted(domain.StepReclassifyPayments)

	// Steps 4-6: external-record writes, best effort with per-step reporting.
	s.expireApplications(ctx, studentID, actorID, result)
	s.archiveHistory(ctx, studentID, actorID, result)
	s.markDebtorForfeited(ctx, studentID, actorID, result)

	logger.Info("Student forfeited",
		slog.String("student_id", studentID),
		slog.Int("reversed_entries", len(result.ReversedEntryIDs)),
		slog.String("reversed_total", result.ReversedTotal.String()),
		slog.String("reclassified_total", result.ReclassifiedTotal.String()),
		slog.Int("step_errors", len(result.StepErrors)),
	)
	return result, nil
}

// reverseOpenAccruals reverses every posted accrual entry for the student that
// is not already a reversal/forfeiture entry and has no reversal yet. The
// repository query excludes processed entries by construction, so a re-run
// enumerates nothing it has already handled.
func (s *forfeitureService) reverseOpenAccruals(ctx context.Context, studentID, reason, actorID string, result *domain.ForfeitureResult) error {
	accruals, err := s.entryRepo.FindOpenAccrualsForStudent(ctx, studentID)
	if err != nil {
		return fmt.Errorf("failed to enumerate accruals for student %s: %w", studentID, err)
	}

	for _, accrual := range accruals {
		reversal, err := s.reversalSvc.ReverseEntry(ctx, accrual.EntryID, "Forfeiture: "+reason, nil, actorID)
		if errors.Is(err, ErrAlreadyReversed) {
			result.SkippedEntryIDs = append(result.SkippedEntryIDs, accrual.EntryID)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to reverse accrual %s: %w", accrual.EntryID, err)
		}
		result.ReversedEntryIDs = append(result.ReversedEntryIDs, reversal.EntryID)
		result.ReversedTotal = result.ReversedTotal.Add(accrual.TotalDebit)
	}
	return nil
}

// reclassifyPayments posts one entry moving the student's summed payments from
// the advance-payment liability to forfeited income, dated to the earliest
// payment. The isForfeiture metadata scan makes the step idempotent.
func (s *forfeitureService) reclassifyPayments(ctx context.Context, studentID, reason, actorID string, result *domain.ForfeitureResult) error {
	pays, err := s.payments.FindPaymentsByStudentID(ctx, studentID)
	if err != nil {
		return fmt.Errorf("failed to list payments for student %s: %w", studentID, err)
	}

	total := decimal.Zero
	var earliest time.Time
	for _, p := range pays {
		total = total.Add(p.Amount)
		if earliest.IsZero() || p.PaymentDate.Before(earliest) {
			earliest = p.PaymentDate
		}
	}
	if !total.IsPositive() {
		return nil
	}

	tagged, err := s.entryRepo.FindEntriesByLineMetadata(ctx, domain.MetaStudentID, studentID)
	if err != nil {
		return fmt.Errorf("failed to check for existing forfeiture entry: %w", err)
	}
	for i := range tagged {
		if tagged[i].HasFlag(domain.MetaIsForfeiture) {
			result.ReclassificationEntryID = tagged[i].EntryID
			result.ReclassifiedTotal = tagged[i].TotalDebit
			return nil
		}
	}

	if _, err := s.accounts.Ensure(ctx, domain.Account{
		AccountCode: domain.AccountAdvancePayments,
		Name:        "Advance Payment Liability",
		AccountType: domain.Liability,
	}); err != nil {
		return err
	}
	if _, err := s.accounts.Ensure(ctx, domain.Account{
		AccountCode: domain.AccountForfeitedIncome,
		Name:        "Forfeited Income",
		AccountType: domain.Income,
	}); err != nil {
		return err
	}

	metadata := map[string]string{
		domain.MetaIsForfeiture: domain.MetaTrue,
		domain.MetaStudentID:    studentID,
	}
	posted, err := s.entrySvc.PostEntry(ctx, dto.PostEntryRequest{
		Date:        earliest,
		Description: fmt.Sprintf("Forfeiture of advance payments for student %s: %s", studentID, reason),
		Lines: []dto.EntryLineRequest{
			{AccountCode: domain.AccountAdvancePayments, Debit: total, Description: "Advance payments forfeited", Metadata: metadata},
			{AccountCode: domain.AccountForfeitedIncome, Credit: total, Description: "Forfeited income recognized", Metadata: metadata},
		},
	}, actorID)
	if err != nil {
		return fmt.Errorf("failed to post reclassification entry: %w", err)
	}

	result.ReclassificationEntryID = posted.EntryID
	result.ReclassifiedTotal = total
	return nil
}

func (s *forfeitureService) expireApplications(ctx context.Context, studentID, actorID string, result *domain.ForfeitureResult) {
	apps, err := s.applications.FindApplicationsByStudentID(ctx, studentID)
	if err != nil {
		result.MarkFailed(domain.StepExpireApplications, err)
		return
	}
	now := time.Now().UTC()
	for _, app := range apps {
		if app.Status == domain.ApplicationExpired {
			continue
		}
		if err := s.applications.UpdateApplicationStatus(ctx, app.ApplicationID, domain.ApplicationExpired, actorID, now); err != nil {
			result.MarkFailed(domain.StepExpireApplications, err)
			return
		}
		result.ExpiredApplicationIDs = append(result.ExpiredApplicationIDs, app.ApplicationID)
	}
	result.MarkCompleted(domain.StepExpireApplications)
}

// archiveHistory writes a full snapshot of the student's financial and
// application history to the audit sink. A sink failure is a compliance warning
// carried in the result, not an operation failure.
func (s *forfeitureService) archiveHistory(ctx context.Context, studentID, actorID string, result *domain.ForfeitureResult) {
	logger := middleware.GetLoggerFromCtx(ctx)

	pays, _ := s.payments.FindPaymentsByStudentID(ctx, studentID)
	apps, _ := s.applications.FindApplicationsByStudentID(ctx, studentID)
	entries, _ := s.entryRepo.FindEntriesByLineMetadata(ctx, domain.MetaStudentID, studentID)
	debtor, err := s.debtors.FindDebtorByStudentID(ctx, studentID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		result.MarkFailed(domain.StepArchiveHistory, err)
		return
	}

	snapshot, err := json.Marshal(map[string]any{
		"debtor":       debtor,
		"entries":      entries,
		"payments":     pays,
		"applications": apps,
		"forfeiture":   result,
	})
	if err != nil {
		result.MarkFailed(domain.StepArchiveHistory, err)
		return
	}

	err = s.audits.AppendAuditRecord(ctx, domain.AuditRecord{
		RecordID:   uuid.NewString(),
		EntityKind: domain.EntityStudent,
		EntityID:   studentID,
		Action:     "FORFEITURE_ARCHIVE",
		Detail:     snapshot,
		Actor:      actorID,
		RecordedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Warn("Forfeiture archive could not be written", slog.String("student_id", studentID), slog.String("error", err.Error()))
		result.AuditLogged = false
		result.MarkFailed(domain.StepArchiveHistory, err)
		return
	}
	result.AuditLogged = true
	result.MarkCompleted(domain.StepArchiveHistory)
}

// markDebtorForfeited removes the reversed accruals from the debtor's totals and
// flips the status. The remaining balance reflects only the reclassified
// forfeiture amount, never a double-counted payment plus charge.
func (s *forfeitureService) markDebtorForfeited(ctx context.Context, studentID, actorID string, result *domain.ForfeitureResult) {
	debtor, err := s.debtors.FindDebtorByStudentID(ctx, studentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			result.MarkFailed(domain.StepMarkDebtorForfeited, err)
			return
		}
		d := domain.NewDebtor(studentID)
		debtor = &d
	}

	now := time.Now().UTC()
	updated := domain.RecomputeDebtor(*debtor, result.ReversedTotal.Neg(), decimal.Zero)
	updated.Status = domain.DebtorForfeited
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID
	if updated.CreatedAt.IsZero() {
		updated.CreatedAt = now
		updated.CreatedBy = actorID
	}
	if err := s.debtors.SaveDebtor(ctx, updated); err != nil {
		result.MarkFailed(domain.StepMarkDebtorForfeited, err)
		return
	}
	result.MarkCompleted(domain.StepMarkDebtorForfeited)
}
