package niceAuth

import (
	"context"
	"fmt"
)

// RequestPasswordReset describes the requestpasswordreset operation and its observable behavior.
//
// RequestPasswordReset may return an error when input validation, dependency calls, or security checks fail.
// RequestPasswordReset does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) RequestPasswordReset(ctx context.Context, email string) Result {
	if !e.ready() {
		return fail(ErrEngineNotReady, ioFailureMessage)
	}
	if email == "" {
		e.metricInc(MetricResetFailure)
		return fail(ErrValidation, "Email is required")
	}

	account, err := e.store.FindByEmail(ctx, email)
	if err != nil {
		e.metricInc(MetricResetFailure)
		if isNotFound(err) {
			return fail(ErrNotFound, "User not found")
		}
		return fail(ErrIO, ioFailureMessage)
	}

	otp, err := e.newOTP()
	if err != nil {
		e.metricInc(MetricResetFailure)
		return fail(ErrIO, ioFailureMessage)
	}

	account.ResetOTP = otp
	account.ResetOTPExpiresAt = e.now().Add(e.config.PasswordReset.OTPTTL).Unix()

	if err := e.store.Save(ctx, account); err != nil {
		e.metricInc(MetricResetFailure)
		return fail(ErrIO, ioFailureMessage)
	}

	body := fmt.Sprintf(
		"Your OTP for resetting your password is %s. Use this OTP to proceed with resetting your password.",
		otp,
	)
	if err := e.mailer.Send(ctx, account.Email, "Password Reset OTP", body); err != nil {
		e.metricInc(MetricMailFailure)
		e.metricInc(MetricResetFailure)
		return fail(ErrIO, ioFailureMessage)
	}

	e.metricInc(MetricResetRequest)
	return succeed("OTP sent on email to reset password")
}

// ConfirmPasswordReset describes the confirmpasswordreset operation and its observable behavior.
//
// ConfirmPasswordReset may return an error when input validation, dependency calls, or security checks fail.
// ConfirmPasswordReset does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ConfirmPasswordReset(ctx context.Context, email, otp, newPassword string) Result {
	if !e.ready() {
		return fail(ErrEngineNotReady, ioFailureMessage)
	}
	if email == "" || otp == "" || newPassword == "" {
		e.metricInc(MetricResetFailure)
		return fail(ErrValidation, "Email, OTP and new password are required")
	}

	account, err := e.store.FindByEmail(ctx, email)
	if err != nil {
		e.metricInc(MetricResetFailure)
		if isNotFound(err) {
			return fail(ErrNotFound, "User not found")
		}
		return fail(ErrIO, ioFailureMessage)
	}

	if account.ResetOTP == "" || account.ResetOTP != otp {
		e.metricInc(MetricResetFailure)
		return fail(ErrAuth, "Invalid OTP")
	}

	if e.now().Unix() >= account.ResetOTPExpiresAt {
		e.metricInc(MetricResetFailure)
		return fail(ErrExpired, "OTP is expired")
	}

	hash, err := e.passwordHash.Hash(newPassword)
	if err != nil {
		e.metricInc(MetricResetFailure)
		return fail(ErrIO, ioFailureMessage)
	}

	account.PasswordHash = hash
	account.ResetOTP = ""
	account.ResetOTPExpiresAt = 0

	if err := e.store.Save(ctx, account); err != nil {
		e.metricInc(MetricResetFailure)
		return fail(ErrIO, ioFailureMessage)
	}

	e.metricInc(MetricResetSuccess)
	return succeed("Password reset successfully")
}
