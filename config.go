package niceAuth

import (
	"errors"
	"time"
)

// Config defines a public type used by niceAuth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	JWT               JWTConfig
	Cookie            CookieConfig
	Password          PasswordConfig
	EmailVerification EmailVerificationConfig
	PasswordReset     PasswordResetConfig
	Mail              MailConfig
	Security          SecurityConfig
	Metrics           MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig defines a public type used by niceAuth APIs.
//
// JWTConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type JWTConfig struct {
	Secret     []byte
	SessionTTL time.Duration
}

/*
====================================
COOKIE CONFIG
====================================
*/

// CookieConfig defines a public type used by niceAuth APIs.
//
// CookieConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CookieConfig struct {
	Name string
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines a public type used by niceAuth APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// EmailVerificationConfig defines a public type used by niceAuth APIs.
//
// EmailVerificationConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EmailVerificationConfig struct {
	OTPTTL time.Duration
}

// PasswordResetConfig defines a public type used by niceAuth APIs.
//
// PasswordResetConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordResetConfig struct {
	OTPTTL time.Duration
}

// MailConfig defines a public type used by niceAuth APIs.
//
// MailConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MailConfig struct {
	AppName string
}

// SecurityConfig defines a public type used by niceAuth APIs.
//
// SecurityConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SecurityConfig struct {
	ProductionMode bool
}

// MetricsConfig defines a public type used by niceAuth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			SessionTTL: 7 * 24 * time.Hour,
		},
		Cookie: CookieConfig{
			Name: "token",
		},
		Password: PasswordConfig{
			Memory:      65536,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		EmailVerification: EmailVerificationConfig{
			OTPTTL: 24 * time.Hour,
		},
		PasswordReset: PasswordResetConfig{
			OTPTTL: 15 * time.Minute,
		},
		Mail: MailConfig{
			AppName: "NiceAuth",
		},
		Security: SecurityConfig{
			ProductionMode: false,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.Secret = cloneBytes(cfg.JWT.Secret)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// JWT
	if len(c.JWT.Secret) == 0 {
		return errors.New("JWT Secret is required")
	}
	if c.JWT.SessionTTL <= 0 {
		return errors.New("JWT SessionTTL must be > 0")
	}

	// Cookie
	if c.Cookie.Name == "" {
		return errors.New("Cookie Name is required")
	}

	// Password
	if c.Password.Memory < 8*1024 {
		return errors.New("Password Memory must be >= 8192 KB")
	}
	if c.Password.Time < 1 {
		return errors.New("Password Time must be >= 1")
	}
	if c.Password.Parallelism < 1 {
		return errors.New("Password Parallelism must be >= 1")
	}
	if c.Password.SaltLength < 16 {
		return errors.New("Password SaltLength must be >= 16")
	}
	if c.Password.KeyLength < 16 {
		return errors.New("Password KeyLength must be >= 16")
	}

	// Email Verification
	if c.EmailVerification.OTPTTL <= 0 {
		return errors.New("EmailVerification OTPTTL must be > 0")
	}

	// Password Reset
	if c.PasswordReset.OTPTTL <= 0 {
		return errors.New("PasswordReset OTPTTL must be > 0")
	}

	// Mail
	if c.Mail.AppName == "" {
		return errors.New("Mail AppName is required")
	}

	if c.Security.ProductionMode {
		if len(c.JWT.Secret) < 32 {
			return errors.New("ProductionMode requires JWT Secret length >= 256 bits")
		}
		if c.JWT.SessionTTL > 30*24*time.Hour {
			return errors.New("ProductionMode requires JWT SessionTTL <= 30d")
		}
		if c.Password.Memory < 64*1024 {
			return errors.New("ProductionMode requires Password Memory >= 65536 KB")
		}
		if c.Password.Time < 2 {
			return errors.New("ProductionMode requires Password Time >= 2")
		}
		if c.Password.KeyLength < 32 {
			return errors.New("ProductionMode requires Password KeyLength >= 32")
		}
		if c.PasswordReset.OTPTTL > 15*time.Minute {
			return errors.New("ProductionMode requires PasswordReset OTPTTL <= 15m")
		}
	}

	return nil
}
