package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Posted EntryStatus = "POSTED"
	Voided EntryStatus = "VOIDED"
)

// SourceKind names the business record that caused a journal entry. Empty for
// manual entries.
type SourceKind string

const (
	SourcePayment SourceKind = "PAYMENT"
	SourceExpense SourceKind = "EXPENSE"
	SourceEntry   SourceKind = "JOURNAL_ENTRY"
)

// Line metadata keys. Linkage between entries is carried exclusively through these
// explicit keys; free-text pattern matching on descriptions or references is never
// used to relate records.
const (
	MetaOriginalEntryID = "originalEntryId"
	MetaParentEntryID   = "parentEntryId"
	MetaIsReversal      = "isReversal"
	MetaIsForfeiture    = "isForfeiture"
	MetaIsAdjustment    = "isAdjustment"
	MetaIsAccrual       = "isAccrual"
	MetaAccrualKind     = "accrualKind"
	MetaStudentID       = "studentId"
	MetaApplicationID   = "applicationId"
)

// MetaTrue is the canonical truthy value for boolean metadata flags.
const MetaTrue = "true"

// EntryLine is one account-level debit or credit within a journal entry.
// Exactly one of Debit and Credit is positive; the other is zero.
type EntryLine struct {
	LineID      string            `json:"lineID"`  // Primary Key (UUID)
	EntryID     string            `json:"entryID"` // FK -> JournalEntry.EntryID
	Position    int               `json:"position"`
	AccountCode string            `json:"accountCode"`
	AccountName string            `json:"accountName"`
	AccountType AccountType       `json:"accountType"`
	Debit       decimal.Decimal   `json:"debit"`
	Credit      decimal.Decimal   `json:"credit"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	AuditFields
}

// Meta returns the metadata value for key, or "" when absent.
func (l EntryLine) Meta(key string) string {
	if l.Metadata == nil {
		return ""
	}
	return l.Metadata[key]
}

// HasFlag reports whether a boolean metadata flag is set on this line.
func (l EntryLine) HasFlag(key string) bool {
	return l.Meta(key) == MetaTrue
}

// JournalEntry is the atomic unit of record: a balanced set of debit/credit lines
// recording one financial event.
type JournalEntry struct {
	EntryID              string          `json:"entryID"` // Primary Key (UUID)
	TransactionReference string          `json:"transactionReference"`
	EntryDate            time.Time       `json:"entryDate"`
	Description          string          `json:"description"`
	Status               EntryStatus     `json:"status"`
	SourceKind           SourceKind      `json:"sourceKind,omitempty"`
	SourceID             string          `json:"sourceID,omitempty"`
	Lines                []EntryLine     `json:"lines"`
	TotalDebit           decimal.Decimal `json:"totalDebit"`
	TotalCredit          decimal.Decimal `json:"totalCredit"`
	AuditFields
}

// HasFlag reports whether any line of the entry carries the given boolean flag.
func (e *JournalEntry) HasFlag(key string) bool {
	for _, l := range e.Lines {
		if l.HasFlag(key) {
			return true
		}
	}
	return false
}

// MetaValue returns the first non-empty metadata value for key across the lines.
func (e *JournalEntry) MetaValue(key string) string {
	for _, l := range e.Lines {
		if v := l.Meta(key); v != "" {
			return v
		}
	}
	return ""
}
