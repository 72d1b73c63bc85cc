package dto

import (
	"time"

	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one line of a journal entry draft.
type EntryLineRequest struct {
	AccountCode string            `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal   `json:"debit"`
	Credit      decimal.Decimal   `json:"credit"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

// PostEntryRequest is the draft a caller submits to record a financial event.
// The whole draft is validated and persisted atomically or discarded.
type PostEntryRequest struct {
	TransactionReference string             `json:"transactionReference"`
	Date                 time.Time          `json:"date" binding:"required"`
	Description          string             `json:"description" binding:"required"`
	SourceKind           string             `json:"sourceKind"`
	SourceID             string             `json:"sourceID"`
	Lines                []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ReverseEntryRequest asks for a mirror entry negating a prior entry.
type ReverseEntryRequest struct {
	Reason        string     `json:"reason" binding:"required"`
	EffectiveDate *time.Time `json:"effectiveDate"`
}

// EntryLineResponse is the API shape of one entry line.
type EntryLineResponse struct {
	LineID      string            `json:"lineID"`
	AccountCode string            `json:"accountCode"`
	AccountName string            `json:"accountName"`
	AccountType string            `json:"accountType"`
	Debit       decimal.Decimal   `json:"debit"`
	Credit      decimal.Decimal   `json:"credit"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// EntryResponse is the API shape of a journal entry.
type EntryResponse struct {
	EntryID              string              `json:"entryID"`
	TransactionReference string              `json:"transactionReference"`
	Date                 time.Time           `json:"date"`
	Description          string              `json:"description"`
	Status               string              `json:"status"`
	SourceKind           string              `json:"sourceKind,omitempty"`
	SourceID             string              `json:"sourceID,omitempty"`
	TotalDebit           decimal.Decimal     `json:"totalDebit"`
	TotalCredit          decimal.Decimal     `json:"totalCredit"`
	Lines                []EntryLineResponse `json:"lines"`
	CreatedAt            time.Time           `json:"createdAt"`
	CreatedBy            string              `json:"createdBy"`
}

// ToEntryResponse converts a domain.JournalEntry to its API shape.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = EntryLineResponse{
			LineID:      l.LineID,
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			AccountType: string(l.AccountType),
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			Metadata:    l.Metadata,
		}
	}
	return EntryResponse{
		EntryID:              e.EntryID,
		TransactionReference: e.TransactionReference,
		Date:                 e.EntryDate,
		Description:          e.Description,
		Status:               string(e.Status),
		SourceKind:           string(e.SourceKind),
		SourceID:             e.SourceID,
		TotalDebit:           e.TotalDebit,
		TotalCredit:          e.TotalCredit,
		Lines:                lines,
		CreatedAt:            e.CreatedAt,
		CreatedBy:            e.CreatedBy,
	}
}
