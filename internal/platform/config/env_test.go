package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Galaxies int    `env:"TEST_GALAXIES" envDefault:"123"`
	Output   string `env:"TEST_OUTPUT" envDefault:"universe.bin"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Galaxies != 123 {
		t.Fatalf("expected default galaxies 123, got %d", cfg.Galaxies)
	}
	if cfg.Output != "universe.bin" {
		t.Fatalf("expected default output, got %q", cfg.Output)
	}
}

func TestParseEnvReadsPrefixedVariables(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("COSMOGEN_TEST_GALAXIES", "7")
	t.Setenv("TEST_OUTPUT", "ignored.bin")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Galaxies != 7 {
		t.Fatalf("galaxies = %d, want 7", cfg.Galaxies)
	}
	if cfg.Output != "universe.bin" {
		t.Fatalf("expected unprefixed variable to be ignored, got %q", cfg.Output)
	}
}

func TestParseEnvWithPrefix(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("OTHER_TEST_OUTPUT", "other.bin")

	if err := ParseEnvWithPrefix(&cfg, "OTHER_"); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Output != "other.bin" {
		t.Fatalf("output = %q, want %q", cfg.Output, "other.bin")
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("COSMOGEN_TEST_GALAXIES", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
