package token

import "errors"

var (
	// ErrInsufficientBalance indicates a source whose balance cannot cover its
	// debits. An economic rejection, not a malformed transaction.
	ErrInsufficientBalance = errors.New("token: insufficient balance")

	// ErrAmountOverflow indicates a credit or amount sum that exceeds the
	// amount width. Can only happen if the total supply does not fit.
	ErrAmountOverflow = errors.New("token: amount overflow")

	// ErrMissingShieldedSection indicates a shielded section reference that
	// cannot be resolved in the transaction body. The transaction is malformed
	// or tampered with; the commitment tree sentinel is poisoned before this
	// is returned.
	ErrMissingShieldedSection = errors.New("token: missing shielded section in tx data")

	// ErrAuthorizationMismatch indicates a shielded payload whose transparent
	// inputs are not all backed by transparent debits in the same transaction.
	// This is the security-critical reconciliation failure and is never
	// downgraded.
	ErrAuthorizationMismatch = errors.New("token: transfer does not debit all the expected accounts")
)
