// Package redistore provides a Redis-backed AccountStore.
//
// # Key layout
//
//	<prefix>:acct:<id>     — JSON-encoded account record
//	<prefix>:email:<email> — account ID (uniqueness index, written with SETNX)
//
// The email index is authoritative for uniqueness: Create claims the email key
// with SETNX before writing the record, so two concurrent registrations for
// the same address cannot both succeed.
package redistore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	niceAuth "github.com/MrEthical07/niceAuth"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store defines a public type used by niceAuth APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	client *redis.Client
	prefix string
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "na"
	}
	return &Store{client: client, prefix: prefix}
}

type accountRecord struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	PasswordHash       string `json:"password_hash"`
	IsVerified         bool   `json:"is_verified"`
	VerifyOTP          string `json:"verify_otp,omitempty"`
	VerifyOTPExpiresAt int64  `json:"verify_otp_expires_at,omitempty"`
	ResetOTP           string `json:"reset_otp,omitempty"`
	ResetOTPExpiresAt  int64  `json:"reset_otp_expires_at,omitempty"`
	CreatedAt          int64  `json:"created_at"`
}

func (s *Store) accountKey(id string) string {
	return fmt.Sprintf("%s:acct:%s", s.prefix, id)
}

func (s *Store) emailKey(email string) string {
	return fmt.Sprintf("%s:email:%s", s.prefix, email)
}

// FindByEmail describes the findbyemail operation and its observable behavior.
//
// FindByEmail may return an error when input validation, dependency calls, or security checks fail.
// FindByEmail does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) FindByEmail(ctx context.Context, email string) (*niceAuth.Account, error) {
	id, err := s.client.Get(ctx, s.emailKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, niceAuth.ErrAccountNotFound
		}
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// FindByID describes the findbyid operation and its observable behavior.
//
// FindByID may return an error when input validation, dependency calls, or security checks fail.
// FindByID does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) FindByID(ctx context.Context, id string) (*niceAuth.Account, error) {
	raw, err := s.client.Get(ctx, s.accountKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, niceAuth.ErrAccountNotFound
		}
		return nil, err
	}

	var rec accountRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return recordToAccount(rec), nil
}

// Create describes the create operation and its observable behavior.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
// Create does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) Create(ctx context.Context, account *niceAuth.Account) (*niceAuth.Account, error) {
	created := *account
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	claimed, err := s.client.SetNX(ctx, s.emailKey(created.Email), created.ID, 0).Result()
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, niceAuth.ErrDuplicateEmail
	}

	if err := s.writeRecord(ctx, &created); err != nil {
		// Release the claimed email so a retry is possible.
		s.client.Del(ctx, s.emailKey(created.Email))
		return nil, err
	}

	out := created
	return &out, nil
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) Save(ctx context.Context, account *niceAuth.Account) error {
	existing, err := s.FindByID(ctx, account.ID)
	if err != nil {
		return err
	}

	if existing.Email != account.Email {
		claimed, err := s.client.SetNX(ctx, s.emailKey(account.Email), account.ID, 0).Result()
		if err != nil {
			return err
		}
		if !claimed {
			return niceAuth.ErrDuplicateEmail
		}
		s.client.Del(ctx, s.emailKey(existing.Email))
	}

	return s.writeRecord(ctx, account)
}

func (s *Store) writeRecord(ctx context.Context, account *niceAuth.Account) error {
	raw, err := json.Marshal(accountToRecord(account))
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.accountKey(account.ID), raw, 0).Err()
}

func accountToRecord(a *niceAuth.Account) accountRecord {
	return accountRecord{
		ID:                 a.ID,
		Email:              a.Email,
		Name:               a.Name,
		PasswordHash:       a.PasswordHash,
		IsVerified:         a.IsVerified,
		VerifyOTP:          a.VerifyOTP,
		VerifyOTPExpiresAt: a.VerifyOTPExpiresAt,
		ResetOTP:           a.ResetOTP,
		ResetOTPExpiresAt:  a.ResetOTPExpiresAt,
		CreatedAt:          a.CreatedAt,
	}
}

func recordToAccount(rec accountRecord) *niceAuth.Account {
	return &niceAuth.Account{
		ID:                 rec.ID,
		Email:              rec.Email,
		Name:               rec.Name,
		PasswordHash:       rec.PasswordHash,
		IsVerified:         rec.IsVerified,
		VerifyOTP:          rec.VerifyOTP,
		VerifyOTPExpiresAt: rec.VerifyOTPExpiresAt,
		ResetOTP:           rec.ResetOTP,
		ResetOTPExpiresAt:  rec.ResetOTPExpiresAt,
		CreatedAt:          rec.CreatedAt,
	}
}
