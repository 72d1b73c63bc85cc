package models

// Account is a row in the account directory.
type Account struct {
	AccountCode string `json:"accountCode"` // Primary Key
	Name        string `json:"name"`
	AccountType string `json:"accountType"`
	AuditFields
}
