package domain

import "github.com/shopspring/decimal"

// ForfeitureStep names one stage of the forfeiture orchestration.
type ForfeitureStep string

const (
	StepReverseAccruals     ForfeitureStep = "REVERSE_ACCRUALS"
	StepReclassifyPayments  ForfeitureStep = "RECLASSIFY_PAYMENTS"
	StepExpireApplications  ForfeitureStep = "EXPIRE_APPLICATIONS"
	StepArchiveHistory      ForfeitureStep = "ARCHIVE_HISTORY"
	StepMarkDebtorForfeited ForfeitureStep = "MARK_DEBTOR_FORFEITED"
)

// ForfeitureResult enumerates what each forfeiture step did. Callers inspect
// StepErrors rather than a single pass/fail flag: the ledger steps are atomic as a
// unit, the external-record steps are best-effort and report individually.
type ForfeitureResult struct {
	StudentID               string                    `json:"studentID"`
	ReversedEntryIDs        []string                  `json:"reversedEntryIDs"`
	ReversedTotal           decimal.Decimal           `json:"reversedTotal"`
	SkippedEntryIDs         []string                  `json:"skippedEntryIDs,omitempty"` // Already reversed on a prior run
	ReclassificationEntryID string                    `json:"reclassificationEntryID,omitempty"`
	ReclassifiedTotal       decimal.Decimal           `json:"reclassifiedTotal"`
	ExpiredApplicationIDs   []string                  `json:"expiredApplicationIDs,omitempty"`
	StepsCompleted          []ForfeitureStep          `json:"stepsCompleted"`
	StepErrors              map[ForfeitureStep]string `json:"stepErrors,omitempty"`
	AuditLogged             bool                      `json:"auditLogged"`
}

// Completed reports whether a given step finished successfully.
func (r *ForfeitureResult) Completed(step ForfeitureStep) bool {
	for _, s := range r.StepsCompleted {
		if s == step {
			return true
		}
	}
	return false
}

// MarkCompleted records a successfully finished step.
func (r *ForfeitureResult) MarkCompleted(step ForfeitureStep) {
	r.StepsCompleted = append(r.StepsCompleted, step)
}

// MarkFailed records a failed step with its error.
func (r *ForfeitureResult) MarkFailed(step ForfeitureStep, err error) {
	if r.StepErrors == nil {
		r.StepErrors = make(map[ForfeitureStep]string)
	}
	r.StepErrors[step] = err.Error()
}
