package server

import (
	"crypto/tls"
	"fmt"
	"time"
)

// Config holds server settings loaded from the environment.
type Config struct {
	Addr string `env:"SERVER_ADDR" envDefault:":8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	MaxHeaderBytes int `env:"SERVER_MAX_HEADER_BYTES" envDefault:"1048576"`

	// TLS is enabled only when both files are set.
	TLSCertFile string `env:"SERVER_TLS_CERT_FILE"`
	TLSKeyFile  string `env:"SERVER_TLS_KEY_FILE"`
}

// DefaultConfig returns a Config with the package defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		IdleTimeout:     DefaultIdleTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		MaxHeaderBytes:  DefaultMaxHeaderBytes,
	}
}

// NewFromConfig creates a Server from cfg. opts are applied after the config
// and override it.
func NewFromConfig(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Addr == "" {
		return nil, ErrMissingAddress
	}

	var configOpts []Option
	if cfg.ReadTimeout > 0 {
		configOpts = append(configOpts, WithReadTimeout(cfg.ReadTimeout))
	}
	if cfg.WriteTimeout > 0 {
		configOpts = append(configOpts, WithWriteTimeout(cfg.WriteTimeout))
	}
	if cfg.IdleTimeout > 0 {
		configOpts = append(configOpts, WithIdleTimeout(cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout > 0 {
		configOpts = append(configOpts, WithShutdownTimeout(cfg.ShutdownTimeout))
	}
	if cfg.MaxHeaderBytes > 0 {
		configOpts = append(configOpts, WithMaxHeaderBytes(cfg.MaxHeaderBytes))
	}

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return nil, fmt.Errorf("%w from %s, %s: %w", ErrFailedLoadCert, cfg.TLSCertFile, cfg.TLSKeyFile, err)
		}
		configOpts = append(configOpts, WithTLS(&tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}))
	}

	return New(cfg.Addr, append(configOpts, opts...)...), nil
}
