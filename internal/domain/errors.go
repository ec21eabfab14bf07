package domain

import "errors"

// ErrInsufficientFunds is returned by the ledger when a conditional debit
// finds the balance below the requested amount. No state changes.
var ErrInsufficientFunds = errors.New("insufficient funds")
