package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is one entry in the account directory: a chart-of-accounts code with a
// display name and accounting type. The directory is read-only to the ledger core
// except for Ensure (create-if-absent), used when an adjustment needs an income or
// liability account that has not been opened yet.
type Account struct {
	AccountCode string      `json:"accountCode"` // Primary Key (chart-of-accounts code)
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	AuditFields
}

// Well-known directory codes used by the adjustment and forfeiture engines.
const (
	AccountStudentReceivables = "1200"
	AccountDepositsHeld       = "2300"
	AccountAdvancePayments    = "2400"
	AccountRentIncome         = "4100"
	AccountAdminFeeIncome     = "4200"
	AccountUtilitiesIncome    = "4300"
	AccountForfeitedIncome    = "4800"
	AccountOtherIncome        = "4900"
)

// PaymentType categorizes what a student payment or accrual is for.
type PaymentType string

const (
	PaymentRent      PaymentType = "RENT"
	PaymentAdminFee  PaymentType = "ADMIN_FEE"
	PaymentDeposit   PaymentType = "DEPOSIT"
	PaymentUtilities PaymentType = "UTILITIES"
	PaymentOther     PaymentType = "OTHER"
)

// AccountForPaymentType maps a payment type to the directory account that income
// (or the held liability, for deposits) for that payment type is booked against.
func AccountForPaymentType(pt PaymentType) Account {
	switch pt {
	case PaymentRent:
		return Account{AccountCode: AccountRentIncome, Name: "Rent Income", AccountType: Income}
	case PaymentAdminFee:
		return Account{AccountCode: AccountAdminFeeIncome, Name: "Admin Fee Income", AccountType: Income}
	case PaymentDeposit:
		return Account{AccountCode: AccountDepositsHeld, Name: "Security Deposits Held", AccountType: Liability}
	case PaymentUtilities:
		return Account{AccountCode: AccountUtilitiesIncome, Name: "Utilities Income", AccountType: Income}
	default:
		return Account{AccountCode: AccountOtherIncome, Name: "Other Income", AccountType: Income}
	}
}
