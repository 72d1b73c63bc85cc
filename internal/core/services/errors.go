package services

import "errors"

var (
	// Journal entry store
	ErrEntryUnbalanced = errors.New("entry debits and credits do not balance")
	ErrEntryMinLines   = errors.New("entry must have at least two lines")
	ErrUnknownAccount  = errors.New("account code not present in directory")
	ErrEntryNotPosted  = errors.New("entry must be posted for this operation")

	// Line edits (integrity guard)
	ErrLineRemovalRefused = errors.New("line removal would leave the entry below two lines or out of balance")

	// Reversal engine
	ErrAlreadyReversed    = errors.New("entry already has a reversal")
	ErrReversalOfReversal = errors.New("cannot reverse an entry that is itself a reversal")

	// Cascade deletion engine
	ErrWouldUnbalanceRemainder = errors.New("cascade would leave a live entry unbalanced or below two lines")

	// Negotiated adjustments
	ErrInvalidAmounts  = errors.New("negotiated amount must be positive and below the original amount")
	ErrAccrualNotFound = errors.New("linked accrual entry not found")
)
