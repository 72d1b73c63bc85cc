package mapping

import (
	"github.com/hostelworks/housing_ops_app/internal/core/domain"
	"github.com/hostelworks/housing_ops_app/internal/models"
)

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:   m.PaymentID,
		StudentID:   m.StudentID,
		Amount:      m.Amount,
		PaymentType: domain.PaymentType(m.PaymentType),
		PaymentDate: m.PaymentDate,
		Reference:   m.Reference,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}

// ToDomainVendorExpense converts a model Expense to a domain VendorExpense
func ToDomainVendorExpense(m models.Expense) domain.VendorExpense {
	return domain.VendorExpense{
		ExpenseID:   m.ExpenseID,
		VendorName:  m.VendorName,
		Amount:      m.Amount,
		ExpenseDate: m.ExpenseDate,
		Reference:   m.Reference,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVendorExpenseSlice converts a slice of model Expenses to domain VendorExpenses
func ToDomainVendorExpenseSlice(ms []models.Expense) []domain.VendorExpense {
	ds := make([]domain.VendorExpense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVendorExpense(m)
	}
	return ds
}

// ToDomainApplication converts a model Application to a domain Application
func ToDomainApplication(m models.Application) domain.Application {
	return domain.Application{
		ApplicationID: m.ApplicationID,
		StudentID:     m.StudentID,
		Status:        domain.ApplicationStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainApplicationSlice converts a slice of model Applications to domain Applications
func ToDomainApplicationSlice(ms []models.Application) []domain.Application {
	ds := make([]domain.Application, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApplication(m)
	}
	return ds
}
