package niceAuth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRequestPasswordResetSuccess(t *testing.T) {
	store := newFakeStore()
	mailer := &recordingMailer{}
	engine := newTestEngine(t, store, mailer)
	account := seedAccount(t, engine, store, "alice@example.com", "Alice", "pw1")

	at := time.Now()
	engine.now = fixedNow(at)
	engine.newOTP = fixedOTP("123456")

	res := engine.RequestPasswordReset(context.Background(), "alice@example.com")
	if !res.OK {
		t.Fatalf("expected success, got %q (%v)", res.Message, res.Err)
	}
	if res.Message != "OTP sent on email to reset password" {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	stored := store.get(t, account.ID)
	if stored.ResetOTP != "123456" {
		t.Fatalf("stored otp = %q", stored.ResetOTP)
	}
	want := at.Add(15 * time.Minute).Unix()
	if stored.ResetOTPExpiresAt != want {
		t.Fatalf("expiry = %d, want %d", stored.ResetOTPExpiresAt, want)
	}

	mail := mailer.last(t)
	if mail.Subject != "Password Reset OTP" {
		t.Fatalf("unexpected subject %q", mail.Subject)
	}
	if !strings.Contains(mail.Body, "123456") {
		t.Fatalf("mail body missing otp: %q", mail.Body)
	}
}

func TestRequestPasswordResetValidation(t *testing.T) {
	engine := newTestEngine(t, newFakeStore(), &recordingMailer{})

	res := engine.RequestPasswordReset(context.Background(), "")
	if res.OK {
		t.Fatal("expected failure")
	}
	if res.Message != "Email is required" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	if !errors.Is(res.Err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", res.Err)
	}
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	engine := newTestEngine(t, newFakeStore(), &recordingMailer{})

	res := engine.RequestPasswordReset(context.Background(), "nobody@example.com")
	if res.OK {
		t.Fatal("expected failure")
	}
	if res.Message != "User not found" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	if !errors.Is(res.Err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", res.Err)
	}
}

func TestConfirmPasswordResetRoundTrip(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(t, store, &recordingMailer{})
	account := seedAccount(t, engine, store, "alice@example.com", "Alice", "old-password")

	engine.newOTP = fixedOTP("654321")
	if res := engine.RequestPasswordReset(context.Background(), "alice@example.com"); !res.OK {
		t.Fatalf("request failed: %q", res.Message)
	}

	res := engine.ConfirmPasswordReset(context.Background(), "alice@example.com", "654321", "new-password")
	if !res.OK {
		t.Fatalf("expected success, got %q (%v)", res.Message, res.Err)
	}
	if res.Message != "Password reset successfully" {
		t.Fatalf("unexpected message: %q", res.Message)
	}

	stored := store.get(t, account.ID)
	if stored.ResetOTP != "" || stored.ResetOTPExpiresAt != 0 {
		t.Fatal("reset fields must be cleared on consumption")
	}

	if res := engine.Login(context.Background(), "alice@example.com", "old-password"); res.OK {
		t.Fatal("old password must stop working")
	}
	if res := engine.Login(context.Background(), "alice@example.com", "new-password"); !res.OK {
		t.Fatalf("new password rejected: %q", res.Message)
	}
}

func TestConfirmPasswordResetWrongOTP(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(t, store, &recordingMailer{})
	seedAccount(t, engine, store, "alice@example.com", "Alice", "old-password")

	engine.newOTP = fixedOTP("654321")
	if res := engine.RequestPasswordReset(context.Background(), "alice@example.com"); !res.OK {
		t.Fatalf("request failed: %q", res.Message)
	}

	res := engine.ConfirmPasswordReset(context.Background(), "alice@example.com", "111111", "new-password")
	if res.OK {
		t.Fatal("expected failure")
	}
	if res.Message != "Invalid OTP" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	if !errors.Is(res.Err, ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", res.Err)
	}

	// Password unchanged after the failed attempt.
	if res := engine.Login(context.Background(), "alice@example.com", "old-password"); !res.OK {
		t.Fatalf("old password must still work: %q", res.Message)
	}
}

func TestConfirmPasswordResetExpiredButMatching(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(t, store, &recordingMailer{})
	seedAccount(t, engine, store, "alice@example.com", "Alice", "old-password")

	at := time.Now()
	engine.now = fixedNow(at)
	engine.newOTP = fixedOTP("654321")
	if res := engine.RequestPasswordReset(context.Background(), "alice@example.com"); !res.OK {
		t.Fatalf("request failed: %q", res.Message)
	}

	engine.now = fixedNow(at.Add(15*time.Minute + time.Second))

	res := engine.ConfirmPasswordReset(context.Background(), "alice@example.com", "654321", "new-password")
	if res.OK {
		t.Fatal("expected failure")
	}
	if res.Message != "OTP is expired" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	if !errors.Is(res.Err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", res.Err)
	}
}

func TestConfirmPasswordResetSingleUse(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(t, store, &recordingMailer{})
	seedAccount(t, engine, store, "alice@example.com", "Alice", "old-password")

	engine.newOTP = fixedOTP("654321")
	if res := engine.RequestPasswordReset(context.Background(), "alice@example.com"); !res.OK {
		t.Fatalf("request failed: %q", res.Message)
	}
	if res := engine.ConfirmPasswordReset(context.Background(), "alice@example.com", "654321", "new-password"); !res.OK {
		t.Fatalf("first confirm failed: %q", res.Message)
	}

	res := engine.ConfirmPasswordReset(context.Background(), "alice@example.com", "654321", "another-password")
	if res.OK {
		t.Fatal("consumed otp must not reset twice")
	}
	if !errors.Is(res.Err, ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", res.Err)
	}
}

func TestConfirmPasswordResetMissingDetails(t *testing.T) {
	engine := newTestEngine(t, newFakeStore(), &recordingMailer{})

	cases := [][3]string{
		{"", "654321", "new"},
		{"alice@example.com", "", "new"},
		{"alice@example.com", "654321", ""},
	}
	for _, tc := range cases {
		res := engine.ConfirmPasswordReset(context.Background(), tc[0], tc[1], tc[2])
		if res.OK {
			t.Fatal("expected failure")
		}
		if res.Message != "Email, OTP and new password are required" {
			t.Fatalf("unexpected message: %q", res.Message)
		}
		if !errors.Is(res.Err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", res.Err)
		}
	}
}

func TestPasswordResetDoesNotTouchVerification(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(t, store, &recordingMailer{})
	account := seedAccount(t, engine, store, "alice@example.com", "Alice", "pw1")

	engine.newOTP = fixedOTP("111111")
	if res := engine.RequestEmailVerification(context.Background(), account.ID); !res.OK {
		t.Fatalf("verification request failed: %q", res.Message)
	}

	engine.newOTP = fixedOTP("222222")
	if res := engine.RequestPasswordReset(context.Background(), "alice@example.com"); !res.OK {
		t.Fatalf("reset request failed: %q", res.Message)
	}
	if res := engine.ConfirmPasswordReset(context.Background(), "alice@example.com", "222222", "pw2"); !res.OK {
		t.Fatalf("reset confirm failed: %q", res.Message)
	}

	// The independent verification challenge is still pending.
	stored := store.get(t, account.ID)
	if stored.VerifyOTP != "111111" {
		t.Fatalf("verification otp clobbered: %q", stored.VerifyOTP)
	}
	if res := engine.ConfirmEmailVerification(context.Background(), account.ID, "111111"); !res.OK {
		t.Fatalf("verification confirm failed: %q", res.Message)
	}
}
