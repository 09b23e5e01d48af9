package authflow

import "context"

// Backend is the external authentication service the flows delegate to.
// Implementations own credential verification, persistence, and token
// issuance; this package never sees passwords beyond passing them through.
//
// Backend errors are returned to callers unchanged so their sentinel errors
// stay checkable with errors.Is.
type Backend interface {
	// Login verifies credentials and returns the established session.
	Login(ctx context.Context, email, password string) (*Session, error)

	// Logout terminates the session identified by token.
	Logout(ctx context.Context, token string) error

	// Register creates a new account.
	Register(ctx context.Context, email, password string) (*User, error)

	// RequestPasswordReset starts the reset flow for the account, typically
	// by emailing a reset link.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword completes the reset flow using the token from the
	// reset link.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// ConfirmEmail verifies the account's email address using the token
	// from the confirmation link.
	ConfirmEmail(ctx context.Context, token string) (*User, error)

	// ResendConfirmation sends a fresh confirmation link to the account.
	ResendConfirmation(ctx context.Context, email string) error
}
