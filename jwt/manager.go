package jwt

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config defines a public type used by niceAuth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Secret     []byte
	SessionTTL time.Duration
	CookieName string
	Production bool
}

// Manager defines a public type used by niceAuth APIs.
//
// Manager instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Manager struct {
	config Config
}

// SessionClaims defines a public type used by niceAuth APIs.
//
// SessionClaims instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionClaims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// NewManager describes the newmanager operation and its observable behavior.
//
// NewManager may return an error when input validation, dependency calls, or security checks fail.
// NewManager does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("hs256 requires secret key")
	}
	if cfg.SessionTTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.CookieName == "" {
		return nil, errors.New("cookie name required")
	}

	return &Manager{config: cfg}, nil
}

// Issue describes the issue operation and its observable behavior.
//
// Issue may return an error when input validation, dependency calls, or security checks fail.
// Issue does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (j *Manager) Issue(accountID string) (string, error) {
	if accountID == "" {
		return "", errors.New("empty account id")
	}

	now := time.Now()
	claims := SessionClaims{
		ID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.config.SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.config.Secret)
}

// Parse describes the parse operation and its observable behavior.
//
// Parse may return an error when input validation, dependency calls, or security checks fail.
// Parse does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (j *Manager) Parse(tokenStr string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)

	token, err := parser.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return j.config.Secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	if claims.ID == "" {
		return "", errors.New("token missing account id")
	}

	return claims.ID, nil
}

// SessionTTL describes the sessionttl operation and its observable behavior.
//
// SessionTTL does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (j *Manager) SessionTTL() time.Duration {
	return j.config.SessionTTL
}

// CookieName describes the cookiename operation and its observable behavior.
//
// CookieName does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (j *Manager) CookieName() string {
	return j.config.CookieName
}

// SessionCookie builds the browser cookie carrying the session token.
//
// The cookie is httpOnly and lives as long as the token. Secure and
// SameSite=None are set only in production; development stays on
// SameSite=Strict so plain-HTTP localhost flows keep working.
func (j *Manager) SessionCookie(token string) *http.Cookie {
	c := &http.Cookie{
		Name:     j.config.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(j.config.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   j.config.Production,
		SameSite: http.SameSiteStrictMode,
	}
	if j.config.Production {
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

// ClearSessionCookie builds the expired cookie that removes the session token
// from the browser. Attributes mirror [Manager.SessionCookie] so the clear
// matches the original cookie.
func (j *Manager) ClearSessionCookie() *http.Cookie {
	c := j.SessionCookie("")
	c.MaxAge = -1
	return c
}
