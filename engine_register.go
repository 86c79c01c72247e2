package niceAuth

import (
	"context"
	"errors"
	"fmt"
)

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Register(ctx context.Context, email, name, pass string) Result {
	if !e.ready() {
		return fail(ErrEngineNotReady, ioFailureMessage)
	}
	if email == "" || name == "" || pass == "" {
		e.metricInc(MetricRegisterFailure)
		return fail(ErrValidation, "Missing details")
	}

	_, err := e.store.FindByEmail(ctx, email)
	if err == nil {
		e.metricInc(MetricRegisterFailure)
		return fail(ErrConflict, "User already exists")
	}
	if !isNotFound(err) {
		e.metricInc(MetricRegisterFailure)
		return fail(ErrIO, ioFailureMessage)
	}

	hash, err := e.passwordHash.Hash(pass)
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		return fail(ErrIO, ioFailureMessage)
	}

	account, err := e.store.Create(ctx, &Account{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    e.now().Unix(),
	})
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		// Lookup-then-create races surface as duplicates here.
		if errors.Is(err, ErrDuplicateEmail) {
			return fail(ErrConflict, "User already exists")
		}
		return fail(ErrIO, ioFailureMessage)
	}

	token, err := e.jwtManager.Issue(account.ID)
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		return fail(ErrIO, ioFailureMessage)
	}

	// The account and session survive a failed welcome mail; only the
	// envelope reports the delivery problem.
	subject := fmt.Sprintf("Welcome to %s", e.config.Mail.AppName)
	body := fmt.Sprintf(
		"Welcome to %s website. Your account has been created with email id: %s",
		e.config.Mail.AppName,
		account.Email,
	)
	if err := e.mailer.Send(ctx, account.Email, subject, body); err != nil {
		e.metricInc(MetricMailFailure)
		e.metricInc(MetricRegisterFailure)
		res := fail(ErrIO, ioFailureMessage)
		res.Token = token
		res.AccountID = account.ID
		return res
	}

	e.metricInc(MetricRegisterSuccess)
	res := succeed("New user created")
	res.Token = token
	res.AccountID = account.ID
	return res
}
