package models

import "github.com/shopspring/decimal"

// Debtor is a row in the debtors table.
type Debtor struct {
	StudentID      string          `json:"studentID"` // Primary Key
	TotalOwed      decimal.Decimal `json:"totalOwed"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	OverdueAmount  decimal.Decimal `json:"overdueAmount"`
	Status         string          `json:"status"`
	AuditFields
}
