package mapping

import (
	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	"github.com/hostelworks/housing_ops_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:              d.EntryID,
		TransactionReference: d.TransactionReference,
		EntryDate:            d.EntryDate,
		Description:          d.Description,
		Status:               string(d.Status),
		SourceKind:           string(d.SourceKind),
		SourceID:             d.SourceID,
		TotalDebit:           d.TotalDebit,
		TotalCredit:          d.TotalCredit,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
// without lines; callers attach lines separately.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:              m.EntryID,
		TransactionReference: m.TransactionReference,
		EntryDate:            m.EntryDate,
		Description:          m.Description,
		Status:               domain.EntryStatus(m.Status),
		SourceKind:           domain.SourceKind(m.SourceKind),
		SourceID:             m.SourceID,
		TotalDebit:           m.TotalDebit,
		TotalCredit:          m.TotalCredit,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntryLine converts a domain EntryLine to a model EntryLine
func ToModelEntryLine(d domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		Position:    d.Position,
		AccountCode: d.AccountCode,
		AccountName: d.AccountName,
		AccountType: string(d.AccountType),
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		Metadata:    d.Metadata,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntryLine converts a model EntryLine to a domain EntryLine
func ToDomainEntryLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		Position:    m.Position,
		AccountCode: m.AccountCode,
		AccountName: m.AccountName,
		AccountType: domain.AccountType(m.AccountType),
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		Metadata:    m.Metadata,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntryLineSlice converts a slice of model EntryLines to domain EntryLines
func ToDomainEntryLineSlice(ms []models.EntryLine) []domain.EntryLine {
	ds := make([]domain.EntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntryLine(m)
	}
	return ds
}
