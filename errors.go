package brokerage

import "errors"

// Sentinel errors returned by the account ledger. Callers discriminate with
// errors.Is; the dynamic error carries the human-readable detail.
var (
	// ErrInvalidArgument reports a malformed construction or call argument
	// (blank ticker, non-positive quantity, negative price or cost).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientFunds reports a buy whose total cost exceeds the cash
	// balance. The account state is left untouched.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientHoldings reports a sell exceeding the held quantity, or
	// a sell against a ticker with no position.
	ErrInsufficientHoldings = errors.New("insufficient holdings")

	// ErrDataIntegrity reports a malformed or inconsistent account file.
	// Decoding aborts entirely and produces no partial account.
	ErrDataIntegrity = errors.New("data integrity")
)
