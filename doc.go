// Package niceAuth provides an embeddable account authentication engine with
// registration, credential login, email OTP verification, and OTP-driven password
// reset, issuing JWT session tokens over a pluggable account store.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// niceAuth is the public surface. It exposes [Engine], [Builder], [Config], and value types
// ([Account], [Result], MetricsSnapshot). Account persistence and mail delivery are
// collaborators implemented by the host process behind [AccountStore] and [Mailer];
// ready-made store backends live under store/.
//
// # What this package must NOT do
//
//   - Expose store clients or wire encodings in its public API.
//   - Perform I/O outside of Engine methods (construction via Builder is allocation-only
//     until Build).
//   - Import any sub-package that re-imports niceAuth (no import cycles).
//
// # Failure contract
//
// Engine operations never panic and never surface raw collaborator errors. Every outcome
// is a [Result] envelope: OK reports success, Message is safe to show to the end user, and
// Err carries a sentinel kind ([ErrValidation], [ErrConflict], [ErrNotFound], [ErrAuth],
// [ErrExpired], [ErrIO]) for programmatic branching via errors.Is.
package niceAuth
