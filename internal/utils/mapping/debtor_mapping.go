package mapping

import (
	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	"github.com/hostelworks/housing_ops_app/internal/models"
)

// ToModelDebtor converts a domain Debtor to a model Debtor
func ToModelDebtor(d domain.Debtor) models.Debtor {
	return models.Debtor{
		StudentID:      d.StudentID,
		TotalOwed:      d.TotalOwed,
		TotalPaid:      d.TotalPaid,
		CurrentBalance: d.CurrentBalance,
		OverdueAmount:  d.OverdueAmount,
		Status:         string(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebtor converts a model Debtor to a domain Debtor
func ToDomainDebtor(m models.Debtor) domain.Debtor {
	return domain.Debtor{
		StudentID:      m.StudentID,
		TotalOwed:      m.TotalOwed,
		TotalPaid:      m.TotalPaid,
		CurrentBalance: m.CurrentBalance,
		OverdueAmount:  m.OverdueAmount,
		Status:         domain.DebtorStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
