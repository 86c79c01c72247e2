package niceAuth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MrEthical07/niceAuth/jwt"
	"github.com/MrEthical07/niceAuth/password"
)

// Engine defines a public type used by niceAuth APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config Config

	store  AccountStore
	mailer Mailer

	passwordHash *password.Argon2
	jwtManager   *jwt.Manager
	metrics      *Metrics

	// Injected for tests; Build wires time.Now and internal.NewOTP.
	now    func() time.Time
	newOTP func() (string, error)
}

const ioFailureMessage = "Something went wrong, please try again later"

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, email, password string) Result {
	if !e.ready() {
		return fail(ErrEngineNotReady, ioFailureMessage)
	}
	if email == "" || password == "" {
		e.metricInc(MetricLoginFailure)
		return fail(ErrValidation, "Email and password are required")
	}

	account, err := e.store.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			e.metricInc(MetricLoginFailure)
			return fail(ErrNotFound, "Invalid email")
		}
		e.metricInc(MetricLoginFailure)
		return fail(ErrIO, ioFailureMessage)
	}

	ok, err := e.passwordHash.Verify(password, account.PasswordHash)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		return fail(ErrIO, ioFailureMessage)
	}
	if !ok {
		e.metricInc(MetricLoginFailure)
		return fail(ErrAuth, "Invalid password")
	}

	token, err := e.jwtManager.Issue(account.ID)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		return fail(ErrIO, ioFailureMessage)
	}

	e.metricInc(MetricLoginSuccess)
	res := succeed("Logged in")
	res.Token = token
	res.AccountID = account.ID
	return res
}

// Logout describes the logout operation and its observable behavior.
//
// Sessions are stateless bearer tokens; logout succeeds unconditionally and
// the caller removes the cookie via [Engine.ClearSessionCookie]. Issued tokens
// stay valid until their expiry.
func (e *Engine) Logout(ctx context.Context) Result {
	e.metricInc(MetricLogout)
	return succeed("Logged out")
}

// IsAuthenticated describes the isauthenticated operation and its observable behavior.
//
// IsAuthenticated may return an error when input validation, dependency calls, or security checks fail.
// IsAuthenticated does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) IsAuthenticated(ctx context.Context, token string) Result {
	if !e.ready() {
		return fail(ErrEngineNotReady, ioFailureMessage)
	}
	if token == "" {
		e.metricInc(MetricAuthCheckFailure)
		return fail(ErrAuth, "Not authorized, login again")
	}

	accountID, err := e.jwtManager.Parse(token)
	if err != nil {
		e.metricInc(MetricAuthCheckFailure)
		return fail(ErrAuth, "Not authorized, login again")
	}

	e.metricInc(MetricAuthCheckSuccess)
	res := succeed("Authenticated")
	res.AccountID = accountID
	return res
}

// SessionCookie describes the sessioncookie operation and its observable behavior.
//
// SessionCookie does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SessionCookie(token string) *http.Cookie {
	return e.jwtManager.SessionCookie(token)
}

// ClearSessionCookie describes the clearsessioncookie operation and its observable behavior.
//
// ClearSessionCookie does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ClearSessionCookie() *http.Cookie {
	return e.jwtManager.ClearSessionCookie()
}

// CookieName describes the cookiename operation and its observable behavior.
//
// CookieName does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CookieName() string {
	return e.jwtManager.CookieName()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

func (e *Engine) ready() bool {
	return e != nil &&
		e.store != nil &&
		e.mailer != nil &&
		e.passwordHash != nil &&
		e.jwtManager != nil &&
		e.now != nil &&
		e.newOTP != nil
}

func (e *Engine) metricInc(id MetricID) {
	e.metrics.Inc(id)
}

func fail(kind error, message string) Result {
	return Result{
		OK:      false,
		Message: message,
		Err:     kind,
	}
}

func succeed(message string) Result {
	return Result{
		OK:      true,
		Message: message,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}
