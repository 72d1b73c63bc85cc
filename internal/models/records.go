package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a row in the payments table.
type Payment struct {
	PaymentID   string          `json:"paymentID"` // Primary Key
	StudentID   string          `json:"studentID"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType string          `json:"paymentType"`
	PaymentDate time.Time       `json:"paymentDate"`
	Reference   string          `json:"reference"`
	AuditFields
}

// Expense is a row in the expenses table.
type Expense struct {
	ExpenseID   string          `json:"expenseID"` // Primary Key
	VendorName  string          `json:"vendorName"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Reference   string          `json:"reference"`
	AuditFields
}

// Application is a row in the applications table.
type Application struct {
	ApplicationID string `json:"applicationID"` // Primary Key
	StudentID     string `json:"studentID"`
	Status        string `json:"status"`
	AuditFields
}

// DeletionRecord is a row in the append-only deletion_log table.
type DeletionRecord struct {
	RecordID     string            `json:"recordID"` // Primary Key
	EntityKind   string            `json:"entityKind"`
	EntityID     string            `json:"entityID"`
	Snapshot     json.RawMessage   `json:"snapshot"`
	Actor        string            `json:"actor"`
	Reason       string            `json:"reason"`
	LinkMetadata map[string]string `json:"linkMetadata"`
	DeletedAt    time.Time         `json:"deletedAt"`
}

// AuditRecord is a row in the append-only audit_log table.
type AuditRecord struct {
	RecordID   string          `json:"recordID"` // Primary Key
	EntityKind string          `json:"entityKind"`
	EntityID   string          `json:"entityID"`
	Action     string          `json:"action"`
	Detail     json.RawMessage `json:"detail"`
	Actor      string          `json:"actor"`
	RecordedAt time.Time       `json:"recordedAt"`
}
