// Package memstore provides an in-memory AccountStore for tests, examples,
// and single-process development setups. Data is lost on restart.
package memstore

import (
	"context"
	"sync"

	niceAuth "github.com/MrEthical07/niceAuth"
	"github.com/google/uuid"
)

// Store defines a public type used by niceAuth APIs.
//
// Store instances are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	byID    map[string]niceAuth.Account
	byEmail map[string]string
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Store {
	return &Store{
		byID:    make(map[string]niceAuth.Account),
		byEmail: make(map[string]string),
	}
}

// FindByEmail describes the findbyemail operation and its observable behavior.
//
// FindByEmail may return an error when input validation, dependency calls, or security checks fail.
// FindByEmail does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) FindByEmail(ctx context.Context, email string) (*niceAuth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, niceAuth.ErrAccountNotFound
	}
	account := s.byID[id]
	return &account, nil
}

// FindByID describes the findbyid operation and its observable behavior.
//
// FindByID may return an error when input validation, dependency calls, or security checks fail.
// FindByID does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) FindByID(ctx context.Context, id string) (*niceAuth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.byID[id]
	if !ok {
		return nil, niceAuth.ErrAccountNotFound
	}
	return &account, nil
}

// Create describes the create operation and its observable behavior.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
// Create does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) Create(ctx context.Context, account *niceAuth.Account) (*niceAuth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[account.Email]; exists {
		return nil, niceAuth.ErrDuplicateEmail
	}

	created := *account
	if created.ID == "" {
		created.ID = uuid.NewString()
	}

	s.byID[created.ID] = created
	s.byEmail[created.Email] = created.ID

	out := created
	return &out, nil
}

// Save describes the save operation and its observable behavior.
//
// Save may return an error when input validation, dependency calls, or security checks fail.
// Save does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) Save(ctx context.Context, account *niceAuth.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[account.ID]
	if !ok {
		return niceAuth.ErrAccountNotFound
	}

	if current.Email != account.Email {
		delete(s.byEmail, current.Email)
		s.byEmail[account.Email] = account.ID
	}

	s.byID[account.ID] = *account
	return nil
}
