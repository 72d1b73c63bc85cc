package accounting

import (
	"fmt"

	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum allowed absolute difference between the debit
// and credit sides of an entry. Currency rounding only; anything above this is a
// genuinely unbalanced entry.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// SumLines returns the debit and credit totals over a set of entry lines.
func SumLines(lines []domain.EntryLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	return totalDebit, totalCredit
}

// IsBalanced reports whether debit and credit totals agree within BalanceTolerance.
func IsBalanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThan(BalanceTolerance)
}

// ValidateLineShape checks the per-line invariants: amounts are non-negative and
// exactly one of debit/credit is positive.
func ValidateLineShape(line domain.EntryLine) error {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return fmt.Errorf("line amounts must be non-negative for account %s", line.AccountCode)
	}
	debitSet := line.Debit.IsPositive()
	creditSet := line.Credit.IsPositive()
	if debitSet && creditSet {
		return fmt.Errorf("line for account %s has both debit and credit amounts", line.AccountCode)
	}
	if !debitSet && !creditSet {
		return fmt.Errorf("line for account %s has neither a debit nor a credit amount", line.AccountCode)
	}
	return nil
}

// MirrorLine returns a copy of line with debit and credit swapped and the given
// metadata merged in. Used by the reversal engine.
func MirrorLine(line domain.EntryLine, extraMeta map[string]string) domain.EntryLine {
	mirrored := line
	mirrored.Debit = line.Credit
	mirrored.Credit = line.Debit
	mirrored.Metadata = make(map[string]string, len(line.Metadata)+len(extraMeta))
	for k, v := range line.Metadata {
		mirrored.Metadata[k] = v
	}
	for k, v := range extraMeta {
		mirrored.Metadata[k] = v
	}
	return mirrored
}
