package niceAuth

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/MrEthical07/niceAuth/internal"
	"github.com/MrEthical07/niceAuth/jwt"
	"github.com/MrEthical07/niceAuth/password"
)

// fakeStore is an in-memory AccountStore with per-method error injection.
type fakeStore struct {
	mu      sync.Mutex
	byID    map[string]Account
	byEmail map[string]string
	nextID  int

	findErr   error
	createErr error
	saveErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byID:    make(map[string]Account),
		byEmail: make(map[string]string),
	}
}

func (s *fakeStore) FindByEmail(_ context.Context, email string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return nil, s.findErr
	}
	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrAccountNotFound
	}
	account := s.byID[id]
	return &account, nil
}

func (s *fakeStore) FindByID(_ context.Context, id string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findErr != nil {
		return nil, s.findErr
	}
	account, ok := s.byID[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}

func (s *fakeStore) Create(_ context.Context, account *Account) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return nil, s.createErr
	}
	if _, exists := s.byEmail[account.Email]; exists {
		return nil, ErrDuplicateEmail
	}

	created := *account
	if created.ID == "" {
		s.nextID++
		created.ID = "acct-" + strconv.Itoa(s.nextID)
	}
	s.byID[created.ID] = created
	s.byEmail[created.Email] = created.ID

	out := created
	return &out, nil
}

func (s *fakeStore) Save(_ context.Context, account *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	if _, ok := s.byID[account.ID]; !ok {
		return ErrAccountNotFound
	}
	s.byID[account.ID] = *account
	return nil
}

func (s *fakeStore) get(t *testing.T, id string) Account {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.byID[id]
	if !ok {
		t.Fatalf("account %q not in store", id)
	}
	return account
}

// recordingMailer captures every Send call and can fail on demand.
type sentMail struct {
	To      string
	Subject string
	Body    string
}

type recordingMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *recordingMailer) last(t *testing.T) sentMail {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sent) == 0 {
		t.Fatal("no mail sent")
	}
	return m.sent[len(m.sent)-1]
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.JWT.Secret = []byte("test-secret-key-for-engine-tests")
	// Cheapest parameters the hasher accepts; keeps tests fast.
	cfg.Password = PasswordConfig{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}
	cfg.Metrics.Enabled = true
	return cfg
}

func newTestEngine(t *testing.T, store AccountStore, mailer Mailer) *Engine {
	t.Helper()

	cfg := testConfig()

	ph, err := password.NewArgon2(password.Config{
		Memory:      cfg.Password.Memory,
		Time:        cfg.Password.Time,
		Parallelism: cfg.Password.Parallelism,
		SaltLength:  cfg.Password.SaltLength,
		KeyLength:   cfg.Password.KeyLength,
	})
	if err != nil {
		t.Fatalf("argon2 init failed: %v", err)
	}

	jm, err := jwt.NewManager(jwt.Config{
		Secret:     cfg.JWT.Secret,
		SessionTTL: cfg.JWT.SessionTTL,
		CookieName: cfg.Cookie.Name,
	})
	if err != nil {
		t.Fatalf("jwt manager init failed: %v", err)
	}

	return &Engine{
		config:       cfg,
		store:        store,
		mailer:       mailer,
		passwordHash: ph,
		jwtManager:   jm,
		metrics:      NewMetrics(cfg.Metrics),
		now:          time.Now,
		newOTP:       internal.NewOTP,
	}
}

// seedAccount registers an account directly through the store with a real
// password hash, bypassing the welcome-mail path.
func seedAccount(t *testing.T, e *Engine, store *fakeStore, email, name, pass string) *Account {
	t.Helper()

	hash, err := e.passwordHash.Hash(pass)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	account, err := store.Create(context.Background(), &Account{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}
	return account
}

func fixedOTP(code string) func() (string, error) {
	return func() (string, error) { return code, nil }
}

func fixedNow(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
