package niceAuth

import (
	"context"
	"fmt"
)

// RequestEmailVerification describes the requestemailverification operation and its observable behavior.
//
// RequestEmailVerification may return an error when input validation, dependency calls, or security checks fail.
// RequestEmailVerification does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RequestEmailVerification(ctx context.Context, accountID string) Result {
	if !e.ready() {
		return fail(ErrEngineNotReady, ioFailureMessage)
	}
	if accountID == "" {
		e.metricInc(MetricVerificationFailure)
		return fail(ErrValidation, "Missing details")
	}

	account, err := e.store.FindByID(ctx, accountID)
	if err != nil {
		e.metricInc(MetricVerificationFailure)
		if isNotFound(err) {
			return fail(ErrNotFound, "User not found")
		}
		return fail(ErrIO, ioFailureMessage)
	}

	if account.IsVerified {
		e.metricInc(MetricVerificationFailure)
		return fail(ErrConflict, "Account is already verified")
	}

	otp, err := e.newOTP()
	if err != nil {
		e.metricInc(MetricVerificationFailure)
		return fail(ErrIO, ioFailureMessage)
	}

	account.VerifyOTP = otp
	account.VerifyOTPExpiresAt = e.now().Add(e.config.EmailVerification.OTPTTL).Unix()

	if err := e.store.Save(ctx, account); err != nil {
		e.metricInc(MetricVerificationFailure)
		return fail(ErrIO, ioFailureMessage)
	}

	body := fmt.Sprintf("Your OTP is %s. Verify your account using this OTP.", otp)
	if err := e.mailer.Send(ctx, account.Email, "Account Verification OTP", body); err != nil {
		e.metricInc(MetricMailFailure)
		e.metricInc(MetricVerificationFailure)
		return fail(ErrIO, ioFailureMessage)
	}

	e.metricInc(MetricVerificationRequest)
	return succeed("Verification OTP sent on email")
}

// ConfirmEmailVerification describes the confirmemailverification operation and its observable behavior.
//
// ConfirmEmailVerification may return an error when input validation, dependency calls, or security checks fail.
// ConfirmEmailVerification does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ConfirmEmailVerification(ctx context.Context, accountID, otp string) Result {
	if !e.ready() {
		return fail(ErrEngineNotReady, ioFailureMessage)
	}
	if accountID == "" || otp == "" {
		e.metricInc(MetricVerificationFailure)
		return fail(ErrValidation, "Missing details")
	}

	account, err := e.store.FindByID(ctx, accountID)
	if err != nil {
		e.metricInc(MetricVerificationFailure)
		if isNotFound(err) {
			return fail(ErrNotFound, "User not found")
		}
		return fail(ErrIO, ioFailureMessage)
	}

	// Mismatch before expiry: a wrong code never reveals whether a
	// verification is still pending.
	if account.VerifyOTP == "" || account.VerifyOTP != otp {
		e.metricInc(MetricVerificationFailure)
		return fail(ErrAuth, "Invalid otp")
	}

	if e.now().Unix() >= account.VerifyOTPExpiresAt {
		e.metricInc(MetricVerificationFailure)
		return fail(ErrExpired, "OTP expired")
	}

	account.IsVerified = true
	account.VerifyOTP = ""
	account.VerifyOTPExpiresAt = 0

	if err := e.store.Save(ctx, account); err != nil {
		e.metricInc(MetricVerificationFailure)
		return fail(ErrIO, ioFailureMessage)
	}

	e.metricInc(MetricVerificationSuccess)
	return succeed("Email verified successfully")
}
