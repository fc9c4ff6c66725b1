package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable read by cosmogen.
const EnvPrefix = "COSMOGEN_"

// ParseEnv loads configuration from environment variables.
//
// Struct tags name variables without the prefix; ParseEnv prepends EnvPrefix,
// so `env:"SEED"` reads COSMOGEN_SEED.
func ParseEnv(target any) error {
	return ParseEnvWithPrefix(target, EnvPrefix)
}

// ParseEnvWithPrefix is ParseEnv with an explicit variable prefix.
func ParseEnvWithPrefix(target any, prefix string) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
