// Package app runs the cosmogen pipeline: generate, encode, write, verify,
// and record.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	apperrors "github.com/louisbranch/cosmogen/internal/platform/errors"
	"github.com/louisbranch/cosmogen/internal/platform/id"
	"github.com/louisbranch/cosmogen/internal/platform/otel"
	"github.com/louisbranch/cosmogen/internal/platform/timeouts"
	"github.com/louisbranch/cosmogen/internal/random"
	"github.com/louisbranch/cosmogen/internal/services/cosmogen/codec"
	"github.com/louisbranch/cosmogen/internal/services/cosmogen/domain"
	"github.com/louisbranch/cosmogen/internal/services/cosmogen/generator"
	"github.com/louisbranch/cosmogen/internal/services/cosmogen/storage"
	"github.com/louisbranch/cosmogen/internal/services/cosmogen/storage/sqlite"
	"github.com/louisbranch/cosmogen/internal/services/cosmogen/universefile"
)

// RuntimeConfig holds everything one run needs.
type RuntimeConfig struct {
	Output     string
	TargetSize int64
	Seed       int64 // 0 draws a fresh seed
	Preset     generator.Preset
	Galaxies   *int // overrides the preset galaxy count when set

	Pad           universefile.PadMode
	RequireSparse bool
	Verify        bool

	// LedgerPath enables the SQLite run ledger when non-empty.
	LedgerPath string

	// Generator replaces the preset configuration entirely when set.
	Generator *generator.Config
	// Codec defaults to the deterministic CBOR codec.
	Codec codec.Codec
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Report summarizes a completed run.
type Report struct {
	RunID  string // empty when the ledger is disabled
	Seed   int64
	Census domain.Census
	File   universefile.Result
}

// Run executes the pipeline. Progress goes to out; a nil out discards it.
func Run(ctx context.Context, cfg RuntimeConfig, out io.Writer) (Report, error) {
	if out == nil {
		out = io.Discard
	}
	if strings.TrimSpace(cfg.Output) == "" {
		return Report{}, apperrors.New(apperrors.CodeConfigInvalid, "output path is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Preset == "" {
		cfg.Preset = generator.PresetDefault
	}
	p := message.NewPrinter(language.English)

	genCfg, err := resolveGeneratorConfig(cfg)
	if err != nil {
		return Report{}, err
	}
	if err := genCfg.Validate(); err != nil {
		return Report{}, err
	}
	cdc := cfg.Codec
	if cdc == nil {
		if cdc, err = codec.NewCBOR(); err != nil {
			return Report{}, err
		}
	}

	seed, fresh, err := random.Resolve(cfg.Seed)
	if err != nil {
		return Report{}, apperrors.Wrap(apperrors.CodeSeedUnavailable, "draw seed", err)
	}
	if fresh {
		fmt.Fprintf(out, "Using seed: %d\n", seed)
	}

	ctx, span := otel.Tracer().Start(ctx, "cosmogen.Run", trace.WithAttributes(
		attribute.Int64("cosmogen.seed", seed),
		attribute.String("cosmogen.preset", string(cfg.Preset)),
		attribute.Int64("cosmogen.target_size", cfg.TargetSize),
	))
	defer span.End()

	report, err := run(ctx, cfg, genCfg, cdc, seed, p, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, string(apperrors.GetCode(err)))
		return Report{}, err
	}
	return report, nil
}

func run(ctx context.Context, cfg RuntimeConfig, genCfg generator.Config, cdc codec.Codec, seed int64, p *message.Printer, out io.Writer) (Report, error) {
	p.Fprintln(out, "Generating galaxies...")
	universe, err := generate(ctx, genCfg, seed)
	if err != nil {
		return Report{}, err
	}
	census := universe.Census()
	p.Fprintf(out, "Generated %d galaxies: %d stars, %d planets (%d with life), %d black holes, %d nebulae, %d asteroids, %d comets\n",
		census.Galaxies, census.Stars, census.Planets, census.Inhabited,
		census.BlackHoles, census.Nebulae, census.Asteroids, census.Comets)

	payload, err := encode(ctx, cdc, universe)
	if err != nil {
		return Report{}, err
	}

	p.Fprintf(out, "Writing universe data to %s (target size: %d bytes, %s)...\n",
		cfg.Output, cfg.TargetSize, humanize.IBytes(uint64(max(cfg.TargetSize, 0))))
	result, err := write(ctx, cfg, payload)
	if err != nil {
		return Report{}, err
	}
	if cfg.Pad != universefile.PadZeroFill && result.AllocatedBytes >= 0 && !result.Sparse &&
		result.TargetSize > result.PayloadLength+universefile.HeaderSize {
		log.Printf("output %s is not sparse: %s allocated for %s", result.Path,
			humanize.IBytes(uint64(result.AllocatedBytes)), humanize.IBytes(uint64(result.TargetSize)))
	}

	if cfg.Verify {
		if err := verify(ctx, cdc, result, census); err != nil {
			return Report{}, err
		}
		p.Fprintf(out, "Verified %d-byte payload (xxhash %016x)\n", result.PayloadLength, result.Checksum)
	}

	report := Report{Seed: seed, Census: census, File: result}
	if strings.TrimSpace(cfg.LedgerPath) != "" {
		runID, err := record(ctx, cfg, report)
		if err != nil {
			return Report{}, err
		}
		report.RunID = runID
		p.Fprintf(out, "Recorded run %s in %s\n", runID, cfg.LedgerPath)
	}

	p.Fprintln(out, "Universe simulation complete.")
	allocated := "unknown"
	if result.AllocatedBytes >= 0 {
		allocated = humanize.IBytes(uint64(result.AllocatedBytes))
	}
	p.Fprintf(out, "File '%s' now occupies %d bytes (%s allocated on disk).\n",
		result.Path, result.TargetSize, allocated)
	return report, nil
}

func resolveGeneratorConfig(cfg RuntimeConfig) (generator.Config, error) {
	if cfg.Generator != nil {
		return *cfg.Generator, nil
	}
	preset, err := generator.ParsePreset(string(cfg.Preset))
	if err != nil {
		return generator.Config{}, err
	}
	genCfg := generator.GetPresetConfig(preset)
	if cfg.Galaxies != nil {
		genCfg.GalaxyCount = *cfg.Galaxies
	}
	return genCfg, nil
}

func generate(ctx context.Context, genCfg generator.Config, seed int64) (domain.Universe, error) {
	ctx, span := otel.Tracer().Start(ctx, "cosmogen.Generate",
		trace.WithAttributes(attribute.Int("cosmogen.galaxies", genCfg.GalaxyCount)))
	defer span.End()

	gen, err := generator.New(genCfg, generator.NewSeededRNG(seed))
	if err != nil {
		return domain.Universe{}, err
	}
	universe, err := gen.Generate(ctx)
	if err != nil {
		return domain.Universe{}, fmt.Errorf("generate universe: %w", err)
	}
	span.SetAttributes(attribute.Int("cosmogen.entities", universe.Census().Total()))
	return universe, nil
}

func encode(ctx context.Context, cdc codec.Codec, universe domain.Universe) ([]byte, error) {
	_, span := otel.Tracer().Start(ctx, "cosmogen.Encode")
	defer span.End()

	payload, err := cdc.Marshal(universe)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("cosmogen.payload_length", len(payload)))
	return payload, nil
}

func write(ctx context.Context, cfg RuntimeConfig, payload []byte) (universefile.Result, error) {
	ctx, span := otel.Tracer().Start(ctx, "cosmogen.Write")
	defer span.End()

	result, err := universefile.Write(ctx, cfg.Output, payload, universefile.Options{
		TargetSize:    cfg.TargetSize,
		Pad:           cfg.Pad,
		RequireSparse: cfg.RequireSparse,
	})
	if err != nil {
		return universefile.Result{}, err
	}
	span.SetAttributes(
		attribute.Int64("cosmogen.allocated_bytes", result.AllocatedBytes),
		attribute.Bool("cosmogen.sparse", result.Sparse),
	)
	return result, nil
}

// verify reads the payload back and checks it decodes to the universe that
// was written.
func verify(ctx context.Context, cdc codec.Codec, result universefile.Result, census domain.Census) error {
	_, span := otel.Tracer().Start(ctx, "cosmogen.Verify")
	defer span.End()

	payload, err := universefile.ReadPayload(result.Path)
	if err != nil {
		return err
	}
	if sum := xxhash.Sum64(payload); sum != result.Checksum {
		return apperrors.WithMetadata(apperrors.CodeVerifyFailed, "payload checksum mismatch", map[string]string{
			"got":  fmt.Sprintf("%016x", sum),
			"want": fmt.Sprintf("%016x", result.Checksum),
		})
	}
	decoded, err := cdc.Unmarshal(payload)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeVerifyFailed, "decode written payload", err)
	}
	if got := decoded.Census(); got != census {
		return apperrors.New(apperrors.CodeVerifyFailed,
			fmt.Sprintf("decoded census %+v differs from generated %+v", got, census))
	}
	return nil
}

func record(ctx context.Context, cfg RuntimeConfig, report Report) (string, error) {
	ctx, span := otel.Tracer().Start(ctx, "cosmogen.Record")
	defer span.End()

	if dir := filepath.Dir(cfg.LedgerPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create ledger dir: %w", err)
		}
	}
	store, err := sqlite.Open(cfg.LedgerPath)
	if err != nil {
		return "", err
	}
	defer store.Close()

	runID, err := id.NewID()
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.LedgerWrite)
	defer cancel()

	preset := strings.ToLower(strings.TrimSpace(string(cfg.Preset)))
	if cfg.Generator != nil {
		preset = "custom"
	}
	err = store.RecordRun(ctx, storage.Run{
		ID:             runID,
		Seed:           report.Seed,
		Preset:         preset,
		OutputPath:     report.File.Path,
		TargetSize:     report.File.TargetSize,
		PayloadLength:  report.File.PayloadLength,
		AllocatedBytes: report.File.AllocatedBytes,
		Sparse:         report.File.Sparse,
		Checksum:       report.File.Checksum,
		Census:         report.Census,
		CreatedAt:      cfg.Clock(),
	})
	if err != nil {
		return "", err
	}
	return runID, nil
}
