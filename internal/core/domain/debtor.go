package domain

import "github.com/shopspring/decimal"

// DebtorStatus indicates the state of a student's running balance record.
type DebtorStatus string

const (
	DebtorActive    DebtorStatus = "ACTIVE"
	DebtorForfeited DebtorStatus = "FORFEITED"
)

// Debtor is the running balance record for one student. It is mutated only as a
// side effect of adjustment, reversal and forfeiture operations, and only through
// RecomputeDebtor, so the derived fields can never drift from the stored totals.
type Debtor struct {
	StudentID      string          `json:"studentID"` // Primary Key
	TotalOwed      decimal.Decimal `json:"totalOwed"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	OverdueAmount  decimal.Decimal `json:"overdueAmount"`
	Status         DebtorStatus    `json:"status"`
	AuditFields
}

// NewDebtor returns a zeroed active debtor record for a student.
func NewDebtor(studentID string) Debtor {
	return Debtor{
		StudentID:      studentID,
		TotalOwed:      decimal.Zero,
		TotalPaid:      decimal.Zero,
		CurrentBalance: decimal.Zero,
		OverdueAmount:  decimal.Zero,
		Status:         DebtorActive,
	}
}

// RecomputeDebtor applies deltas to a debtor's stored totals and re-derives the
// dependent fields. Pure function, no I/O. CurrentBalance is max(0, owed-paid);
// OverdueAmount is clamped so it can never exceed the current balance.
func RecomputeDebtor(d Debtor, totalOwedDelta, totalPaidDelta decimal.Decimal) Debtor {
	d.TotalOwed = d.TotalOwed.Add(totalOwedDelta)
	if d.TotalOwed.IsNegative() {
		d.TotalOwed = decimal.Zero
	}
	d.TotalPaid = d.TotalPaid.Add(totalPaidDelta)
	if d.TotalPaid.IsNegative() {
		d.TotalPaid = decimal.Zero
	}

	balance := d.TotalOwed.Sub(d.TotalPaid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}
	d.CurrentBalance = balance

	if d.OverdueAmount.GreaterThan(d.CurrentBalance) {
		d.OverdueAmount = d.CurrentBalance
	}
	return d
}
