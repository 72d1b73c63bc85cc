package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row in the journal_entries table. Lines live in entry_lines
// and are loaded separately.
type JournalEntry struct {
	EntryID              string          `json:"entryID"` // Primary Key
	TransactionReference string          `json:"transactionReference"`
	EntryDate            time.Time       `json:"entryDate"`
	Description          string          `json:"description"`
	Status               string          `json:"status"`
	SourceKind           string          `json:"sourceKind"`
	SourceID             string          `json:"sourceID"`
	TotalDebit           decimal.Decimal `json:"totalDebit"`
	TotalCredit          decimal.Decimal `json:"totalCredit"`
	AuditFields
}

// EntryLine is a row in the entry_lines table. Metadata is a JSONB column
// holding the explicit link fields (originalEntryId, parentEntryId, flags).
type EntryLine struct {
	LineID      string            `json:"lineID"` // Primary Key
	EntryID     string            `json:"entryID"`
	Position    int               `json:"position"`
	AccountCode string            `json:"accountCode"`
	AccountName string            `json:"accountName"`
	AccountType string            `json:"accountType"`
	Debit       decimal.Decimal   `json:"debit"`
	Credit      decimal.Decimal   `json:"credit"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
	AuditFields
}
