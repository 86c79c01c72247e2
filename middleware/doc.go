// Package middleware exposes the HTTP session guard built on top of
// niceAuth.Engine token validation.
//
// [Session] reads the session cookie, calls Engine.IsAuthenticated, and injects
// the account ID into the request context ([AccountIDFromContext]). Failures
// are written as the standard JSON envelope with HTTP 200, matching the
// engine's always-envelope contract.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT implement
// authentication logic itself — all decisions are delegated to the Engine.
package middleware
