// Package cosmogen parses generator command flags and launches a run.
package cosmogen

import (
	"context"
	"flag"
	"io"
	"strconv"

	entrypoint "github.com/louisbranch/cosmogen/internal/platform/cmd"
	"github.com/louisbranch/cosmogen/internal/services/cosmogen/app"
	"github.com/louisbranch/cosmogen/internal/services/cosmogen/generator"
	"github.com/louisbranch/cosmogen/internal/services/cosmogen/universefile"
)

// DefaultTargetSize is 50 GiB.
const DefaultTargetSize int64 = 50 * 1024 * 1024 * 1024

// Config holds generator command configuration.
type Config struct {
	Output        string      `env:"OUTPUT" envDefault:"universe.bin"`
	TargetSize    int64       `env:"TARGET_SIZE" envDefault:"53687091200"`
	Seed          int64       `env:"SEED" envDefault:"42"` // random.DefaultSeed
	Preset        string      `env:"PRESET" envDefault:"default"`
	Galaxies      OptionalInt `env:"GALAXIES"`
	PadMode       string      `env:"PAD_MODE" envDefault:"sparse"`
	RequireSparse bool        `env:"REQUIRE_SPARSE"`
	Verify        bool        `env:"VERIFY" envDefault:"true"`
	LedgerPath    string      `env:"LEDGER_PATH"`
}

// OptionalInt is an integer setting that remembers whether it was given.
// It reads from both the environment and flags.
type OptionalInt struct {
	Value int
	Valid bool
}

// UnmarshalText parses a decimal integer.
func (o *OptionalInt) UnmarshalText(text []byte) error {
	v, err := strconv.Atoi(string(text))
	if err != nil {
		return err
	}
	o.Value, o.Valid = v, true
	return nil
}

// Set implements flag.Value.
func (o *OptionalInt) Set(s string) error {
	return o.UnmarshalText([]byte(s))
}

func (o *OptionalInt) String() string {
	if o == nil || !o.Valid {
		return ""
	}
	return strconv.Itoa(o.Value)
}

// Ptr returns the value, or nil when it was never set.
func (o OptionalInt) Ptr() *int {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Output, "out", cfg.Output, "Output file path")
	fs.Int64Var(&cfg.TargetSize, "size", cfg.TargetSize, "Exact size of the output file in bytes")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 draws a fresh one)")
	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "Generation preset (default, small, empty, stress)")
	fs.Var(&cfg.Galaxies, "galaxies", "Override the preset galaxy count")
	fs.StringVar(&cfg.PadMode, "pad", cfg.PadMode, "Padding mode (sparse, zero-fill)")
	fs.BoolVar(&cfg.RequireSparse, "require-sparse", cfg.RequireSparse, "Fail when the padded file is not sparse")
	fs.BoolVar(&cfg.Verify, "verify", cfg.Verify, "Read the payload back and decode it after writing")
	fs.StringVar(&cfg.LedgerPath, "ledger", cfg.LedgerPath, "SQLite run ledger path (empty disables it)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates the universe and writes the output file.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	preset, err := generator.ParsePreset(cfg.Preset)
	if err != nil {
		return err
	}
	pad, err := universefile.ParsePadMode(cfg.PadMode)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCosmogen, func(ctx context.Context) error {
		_, err := app.Run(ctx, app.RuntimeConfig{
			Output:        cfg.Output,
			TargetSize:    cfg.TargetSize,
			Seed:          cfg.Seed,
			Preset:        preset,
			Galaxies:      cfg.Galaxies.Ptr(),
			Pad:           pad,
			RequireSparse: cfg.RequireSparse,
			Verify:        cfg.Verify,
			LedgerPath:    cfg.LedgerPath,
		}, out)
		return err
	})
}
