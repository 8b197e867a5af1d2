package config

import (
	"time"

	"github.com/spf13/viper"
)

// PasswordScheme selects the credential hashing implementation.
type PasswordScheme string

const (
	// PasswordSchemeSHA3 hashes passwords with a deterministic SHA3-512
	// digest. Equal passwords produce equal digests, which allows a
	// single-query credential lookup but offers no per-credential salt.
	PasswordSchemeSHA3 PasswordScheme = "sha3"

	// PasswordSchemeBcrypt hashes passwords with salted bcrypt.
	PasswordSchemeBcrypt PasswordScheme = "bcrypt"
)

type (
	Config struct {
		HTTP
		Database
		Auth
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}

	Database struct {
		Path string
	}

	Auth struct {
		// SigningKey is the hex-encoded HMAC key for token signing.
		// When empty a fresh key is generated at startup, which
		// invalidates every token issued by previous processes.
		SigningKey     string
		TokenExpiry    time.Duration
		PasswordScheme PasswordScheme
		BcryptCost     int
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_signing_key", "")    // Ephemeral if empty
	v.SetDefault("auth_token_expiry", "1h") // Token lifetime
	v.SetDefault("auth_password_scheme", "sha3")
	v.SetDefault("auth_bcrypt_cost", 12)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			SigningKey:     v.GetString("AUTH_SIGNING_KEY"),
			TokenExpiry:    v.GetDuration("AUTH_TOKEN_EXPIRY"),
			PasswordScheme: PasswordScheme(v.GetString("AUTH_PASSWORD_SCHEME")),
			BcryptCost:     v.GetInt("AUTH_BCRYPT_COST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
