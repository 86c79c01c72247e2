package niceAuth

import "context"

// Account is the full account record exchanged with [AccountStore]. It carries
// the credential hash, the verification state, and the pending OTP material for
// the email-verification and password-reset flows.
//
// Timestamps and expiries are Unix seconds. An OTP field pair is "armed" while
// the code is non-empty and the expiry is in the future; consuming or replacing
// a code always rewrites both fields together.
type Account struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	IsVerified   bool

	VerifyOTP          string
	VerifyOTPExpiresAt int64

	ResetOTP          string
	ResetOTPExpiresAt int64

	CreatedAt int64
}

// AccountStore is the primary interface that callers must implement to
// integrate niceAuth with their account database. Ready-made backends live
// under store/ (memstore, redistore, pgstore).
//
// Create must enforce email uniqueness and return [ErrDuplicateEmail] when the
// address is taken. Lookups return [ErrAccountNotFound] for unknown accounts.
// Save overwrites the stored record by ID; last write wins when two flows race
// on the same account.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, account *Account) (*Account, error)
	Save(ctx context.Context, account *Account) error
}

// Mailer delivers a single plain-text message. Transport (SMTP, API, queue) is
// the implementer's concern; the engine treats any returned error as a
// delivery failure.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Result is the uniform envelope returned by every Engine operation.
//
// OK and Message always carry the user-facing outcome. Token is set by
// operations that establish a session (Register, Login). AccountID is set
// when the operation resolved an account (and by IsAuthenticated on success).
// Err is nil on success; on failure it wraps one of the sentinel error kinds
// so callers can branch with errors.Is without parsing Message.
type Result struct {
	OK        bool
	Message   string
	Token     string
	AccountID string
	Err       error
}
