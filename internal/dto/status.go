package dto

import "github.com/shopspring/decimal"

// StudentStatusResponse summarizes a student's current financial position:
// debtor balances plus the outstanding accrual and deposit picture.
type StudentStatusResponse struct {
	StudentID        string          `json:"studentID"`
	Status           string          `json:"status"`
	TotalOwed        decimal.Decimal `json:"totalOwed"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
	OverdueAmount    decimal.Decimal `json:"overdueAmount"`
	DepositHeld      decimal.Decimal `json:"depositHeld"`
	OpenAccrualCount int             `json:"openAccrualCount"`
	OpenAccrualTotal decimal.Decimal `json:"openAccrualTotal"`
}

// ForfeitStudentRequest triggers the forfeiture workflow for a student.
type ForfeitStudentRequest struct {
	Reason string `json:"reason" binding:"required"`
}
