package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// EntityKind names the kind of record a deletion or audit record refers to.
type EntityKind string

const (
	EntityJournalEntry EntityKind = "JOURNAL_ENTRY"
	EntityEntryLine    EntityKind = "ENTRY_LINE"
	EntityPayment      EntityKind = "PAYMENT"
	EntityExpense      EntityKind = "EXPENSE"
	EntityStudent      EntityKind = "STUDENT"
)

// DeletionRecord is an append-only snapshot written before any ledger record is
// removed. Deletion records are never updated or deleted.
type DeletionRecord struct {
	RecordID     string            `json:"recordID"` // Primary Key (UUID)
	EntityKind   EntityKind        `json:"entityKind"`
	EntityID     string            `json:"entityID"`
	Snapshot     json.RawMessage   `json:"snapshot"` // Full record state before deletion
	Actor        string            `json:"actor"`
	Reason       string            `json:"reason"`
	LinkMetadata map[string]string `json:"linkMetadata,omitempty"` // How the record was discovered
	DeletedAt    time.Time         `json:"deletedAt"`
}

// AuditRecord is an append-only operation summary written after a ledger-changing
// operation completes.
type AuditRecord struct {
	RecordID   string          `json:"recordID"` // Primary Key (UUID)
	EntityKind EntityKind      `json:"entityKind"`
	EntityID   string          `json:"entityID"`
	Action     string          `json:"action"`
	Detail     json.RawMessage `json:"detail,omitempty"`
	Actor      string          `json:"actor"`
	RecordedAt time.Time       `json:"recordedAt"`
}

// Payment is a cash receipt from a student. Read-only to the ledger core except
// for explicit cascade deletion.
type Payment struct {
	PaymentID   string          `json:"paymentID"` // Primary Key (UUID)
	StudentID   string          `json:"studentID"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType PaymentType     `json:"paymentType"`
	PaymentDate time.Time       `json:"paymentDate"`
	Reference   string          `json:"reference"` // Correlation key, exact match only
	AuditFields
}

// VendorExpense is a vendor expense record. Read-only to the ledger core except for
// explicit cascade deletion.
type VendorExpense struct {
	ExpenseID   string          `json:"expenseID"` // Primary Key (UUID)
	VendorName  string          `json:"vendorName"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Reference   string          `json:"reference"` // Correlation key, exact match only
	AuditFields
}

// ApplicationStatus indicates the state of a housing application.
type ApplicationStatus string

const (
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationExpired  ApplicationStatus = "EXPIRED"
)

// Application is a student's housing application. The forfeiture orchestrator
// marks it expired; everything else about applications lives outside the core.
type Application struct {
	ApplicationID string            `json:"applicationID"` // Primary Key (UUID)
	StudentID     string            `json:"studentID"`
	Status        ApplicationStatus `json:"status"`
	AuditFields
}
