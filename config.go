package securepipe

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/securepipe/pkg/secrets"
	"github.com/dmitrymomot/securepipe/pkg/token"
)

// Config describes a SecurePipe instance through environment variables.
// An empty UUID selects dynamic mode. Tolerance is the clock-skew allowance
// applied on decrypt. Cipher is aes-gcm or xchacha20.
type Config struct {
	Secret    string        `env:"SECUREPIPE_SECRET,required,notEmpty"`
	UUID      string        `env:"SECUREPIPE_UUID"`
	Tolerance time.Duration `env:"SECUREPIPE_TOLERANCE" envDefault:"30s"`
	Cipher    string        `env:"SECUREPIPE_CIPHER" envDefault:"aes-gcm"`

	// Argon2id parameters
	KDFTime      uint32 `env:"SECUREPIPE_KDF_TIME" envDefault:"2"`
	KDFMemoryKiB uint32 `env:"SECUREPIPE_KDF_MEMORY_KIB" envDefault:"19456"`
	KDFThreads   uint8  `env:"SECUREPIPE_KDF_THREADS" envDefault:"1"`
}

// LoadConfig reads Config from the environment. When files are given they
// are loaded first and must exist; otherwise an optional .env in the working
// directory is loaded. Variables already set in the environment win.
func LoadConfig(files ...string) (Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return Config{}, errors.Join(ErrInvalidConfig, err)
		}
	} else {
		// The default .env file is optional.
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Options converts cfg into constructor options.
func (cfg Config) Options() ([]Option, error) {
	version, err := token.ParseVersion(cfg.Cipher)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	opts := []Option{
		WithTolerance(cfg.Tolerance),
		WithCipher(version),
		WithKDFParams(secrets.Params{
			Time:    cfg.KDFTime,
			Memory:  cfg.KDFMemoryKiB,
			Threads: cfg.KDFThreads,
		}),
	}
	if cfg.UUID != "" {
		opts = append(opts, WithIdentityString(cfg.UUID))
	}
	return opts, nil
}

// NewFromConfig creates a SecurePipe from cfg. Extra options are applied
// after the ones derived from cfg.
func NewFromConfig(cfg Config, extra ...Option) (*SecurePipe, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return NewString(cfg.Secret, append(opts, extra...)...)
}
