package dto

import "github.com/shopspring/decimal"

// ApplyDiscountRequest records a negotiated reduction of a student's charge:
// the student owes negotiatedAmount instead of originalAmount, and the
// difference is booked as a partial reversal against the income (or liability)
// account for the payment type.
type ApplyDiscountRequest struct {
	StudentID        string          `json:"studentID" binding:"required"`
	OriginalAmount   decimal.Decimal `json:"originalAmount" binding:"required"`
	NegotiatedAmount decimal.Decimal `json:"negotiatedAmount" binding:"required"`
	PaymentType      string          `json:"paymentType" binding:"required"`
	LinkedAccrualID  *string         `json:"linkedAccrualID"`
}
