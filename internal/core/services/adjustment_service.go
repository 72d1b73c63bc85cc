package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hostelworks/housing_ops_app/internal/apperrors"
	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	portsrepo "github.com/hostelworks/housing_ops_app/internal/core/ports/repositories"
	portssvc "github.com/hostelworks/housing_ops_app/internal/core/ports/services"
	"github.com/hostelworks/housing_ops_app/internal/dto"
	"github.com/hostelworks/housing_ops_app/internal/middleware"
)

// adjustmentService posts negotiated discounts: a partial reversal of a
// student's charge, with the debtor ledger synchronized in the same operation.
// After a discount the negotiated amount is the student's effective outstanding
// going forward.
type adjustmentService struct {
	entryRepo portsrepo.EntryReader
	entrySvc  portssvc.EntrySvcFacade
	accounts  portsrepo.AccountDirectory
	debtors   portsrepo.DebtorRepository
	txMgr     portsrepo.TransactionManager
}

// NewAdjustmentService creates the negotiated-adjustment engine.
func NewAdjustmentService(
	entryRepo portsrepo.EntryReader,
	entrySvc portssvc.EntrySvcFacade,
	accounts portsrepo.AccountDirectory,
	debtors portsrepo.DebtorRepository,
	txMgr portsrepo.TransactionManager,
) portssvc.AdjustmentSvcFacade {
	return &adjustmentService{
		entryRepo: entryRepo,
		entrySvc:  entrySvc,
		accounts:  accounts,
		debtors:   debtors,
		txMgr:     txMgr,
	}
}

var _ portssvc.AdjustmentSvcFacade = (*adjustmentService)(nil)

func parsePaymentType(raw string) (domain.PaymentType, error) {
	switch pt := domain.PaymentType(raw); pt {
	case domain.PaymentRent, domain.PaymentAdminFee, domain.PaymentDeposit, domain.PaymentUtilities, domain.PaymentOther:
		return pt, nil
	default:
		return "", fmt.Errorf("%w: unknown payment type %q", apperrors.ErrValidation, raw)
	}
}

// ApplyDiscount books originalAmount-negotiatedAmount against the income (or
// liability) account for the payment type and credits the student's receivable,
// then reduces the debtor's totalOwed by the same discount.
func (s *adjustmentService) ApplyDiscount(ctx context.Context, req dto.ApplyDiscountRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	paymentType, err := parsePaymentType(req.PaymentType)
	if err != nil {
		return nil, err
	}
	if !req.NegotiatedAmount.IsPositive() || req.NegotiatedAmount.GreaterThanOrEqual(req.OriginalAmount) {
		return nil, fmt.Errorf("%w: original %s, negotiated %s",
			ErrInvalidAmounts, req.OriginalAmount.String(), req.NegotiatedAmount.String())
	}
	discount := req.OriginalAmount.Sub(req.NegotiatedAmount)

	var posted *domain.JournalEntry
	err = s.txMgr.WithinTx(ctx, func(ctx context.Context) error {
		// Date the discount into the original accrual's period when linked.
		date := time.Now().UTC()
		reference := ""
		metadata := map[string]string{
			domain.MetaIsAdjustment: domain.MetaTrue,
			domain.MetaStudentID:    req.StudentID,
		}
		if req.LinkedAccrualID != nil {
			accrual, err := s.entryRepo.FindEntryByID(ctx, *req.LinkedAccrualID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("%w: %s", ErrAccrualNotFound, *req.LinkedAccrualID)
				}
				return err
			}
			date = accrual.EntryDate
			reference = accrual.TransactionReference
			metadata[domain.MetaOriginalEntryID] = accrual.EntryID
		}

		// The income/liability account for the payment type is created on demand.
		incomeAccount := domain.AccountForPaymentType(paymentType)
		resolved, err := s.accounts.Ensure(ctx, incomeAccount)
		if err != nil {
			return fmt.Errorf("failed to ensure account %s: %w", incomeAccount.AccountCode, err)
		}
		if _, err := s.accounts.Ensure(ctx, domain.Account{
			AccountCode: domain.AccountStudentReceivables,
			Name:        "Student Receivables",
			AccountType: domain.Asset,
		}); err != nil {
			return fmt.Errorf("failed to ensure receivables account: %w", err)
		}

		postReq := dto.PostEntryRequest{
			TransactionReference: reference,
			Date:                 date,
			Description: fmt.Sprintf("Negotiated discount for student %s: %s reduced to %s",
				req.StudentID, req.OriginalAmount.String(), req.NegotiatedAmount.String()),
			Lines: []dto.EntryLineRequest{
				{
					AccountCode: resolved.AccountCode,
					Debit:       discount,
					Description: "Discount against " + string(paymentType),
					Metadata:    metadata,
				},
				{
					AccountCode: domain.AccountStudentReceivables,
					Credit:      discount,
					Description: "Receivable reduction for student " + req.StudentID,
					Metadata:    metadata,
				},
			},
		}
		posted, err = s.entrySvc.PostEntry(ctx, postReq, actorID)
		if err != nil {
			return err
		}

		return s.syncDebtor(ctx, req.StudentID, discount, actorID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Discount applied",
		slog.String("student_id", req.StudentID),
		slog.String("discount", discount.String()),
		slog.String("entry_id", posted.EntryID),
	)
	return posted, nil
}

// syncDebtor reduces the debtor's totalOwed by the discount and re-derives the
// balance fields.
func (s *adjustmentService) syncDebtor(ctx context.Context, studentID string, discount decimal.Decimal, actorID string) error {
	debtor, err := s.debtors.FindDebtorByStudentID(ctx, studentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		d := domain.NewDebtor(studentID)
		debtor = &d
	}

	now := time.Now().UTC()
	updated := domain.RecomputeDebtor(*debtor, discount.Neg(), decimal.Zero)
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID
	if updated.CreatedAt.IsZero() {
		updated.CreatedAt = now
		updated.CreatedBy = actorID
	}
	return s.debtors.SaveDebtor(ctx, updated)
}
