package dto

// CascadeOptions lets callers opt into deleting the broader set of linked
// business records. Records discovered via the exact-reference match are deleted
// automatically regardless of these flags.
type CascadeOptions struct {
	DeleteLinkedPayments bool `json:"deleteLinkedPayments"`
	DeleteLinkedExpenses bool `json:"deleteLinkedExpenses"`
}

// DeleteWithCascadeRequest is the API payload for a cascade deletion. The
// acting user comes from the request's actor header, not the payload.
type DeleteWithCascadeRequest struct {
	Reason  string         `json:"reason"`
	Options CascadeOptions `json:"options"`
}

// CascadeResult summarizes what a cascade deletion removed, per category.
type CascadeResult struct {
	TargetEntryID         string   `json:"targetEntryID"`
	DeletedEntryIDs       []string `json:"deletedEntryIDs"`
	EntriesDeleted        int      `json:"entriesDeleted"`
	LinesDeleted          int      `json:"linesDeleted"`
	EmptiedEntriesDeleted int      `json:"emptiedEntriesDeleted"`
	PaymentsDeleted       int      `json:"paymentsDeleted"`
	ExpensesDeleted       int      `json:"expensesDeleted"`
	DeletionRecords       int      `json:"deletionRecords"`
	// AuditLogged is false when the post-commit audit summary could not be
	// written. The deletion itself still succeeded; audit completeness is a
	// separate compliance signal.
	AuditLogged bool `json:"auditLogged"`
}
