package codec

import (
	"bytes"
	"context"
	"reflect"
	"testing"

	"github.com/fxamacker/cbor/v2"
	apperrors "github.com/louisbranch/cosmogen/internal/platform/errors"
	"github.com/louisbranch/cosmogen/internal/services/cosmogen/domain"
	"github.com/louisbranch/cosmogen/internal/services/cosmogen/generator"
)

func newCodec(t *testing.T) *CBOR {
	t.Helper()
	c, err := NewCBOR()
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return c
}

func generate(t *testing.T, cfg generator.Config) domain.Universe {
	t.Helper()
	gen, err := generator.New(cfg, generator.NewSeededRNG(42))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	u, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return u
}

func roundTrip(t *testing.T, c Codec, u domain.Universe) domain.Universe {
	t.Helper()
	data, err := c.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := c.Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return got
}

func TestRoundTripGeneratedUniverse(t *testing.T) {
	c := newCodec(t)
	u := generate(t, generator.GetPresetConfig(generator.PresetSmall))

	if got := roundTrip(t, c, u); !reflect.DeepEqual(got, u) {
		t.Fatal("decoded universe differs from the encoded one")
	}
}

func TestRoundTripEmptyGalaxy(t *testing.T) {
	c := newCodec(t)
	u := generate(t, generator.GetPresetConfig(generator.PresetEmpty))

	got := roundTrip(t, c, u)
	if !reflect.DeepEqual(got, u) {
		t.Fatalf("decoded = %+v, want %+v", got, u)
	}
	if len(got.Galaxies) != 1 || got.Galaxies[0].Code != "G0" {
		t.Fatalf("expected single galaxy G0, got %+v", got)
	}
}

func TestRoundTripNoGalaxies(t *testing.T) {
	c := newCodec(t)
	u := domain.Universe{Galaxies: []domain.Galaxy{}}
	if got := roundTrip(t, c, u); !reflect.DeepEqual(got, u) {
		t.Fatalf("decoded = %+v, want %+v", got, u)
	}
}

func TestMarshalIsDeterministic(t *testing.T) {
	c := newCodec(t)
	cfg := generator.GetPresetConfig(generator.PresetSmall)

	first, err := c.Marshal(generate(t, cfg))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := c.Marshal(generate(t, cfg))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("expected identical bytes for identical universes")
	}
}

func TestMarshalUsesNamedKeys(t *testing.T) {
	c := newCodec(t)
	cfg := generator.GetPresetConfig(generator.PresetEmpty)
	cfg.StarCount = generator.Range{Min: 1, Max: 1}
	data, err := c.Marshal(generate(t, cfg))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var generic map[string]any
	if err := cbor.Unmarshal(data, &generic); err != nil {
		t.Fatalf("generic decode: %v", err)
	}
	if v, ok := generic["version"].(uint64); !ok || v != uint64(SchemaVersion) {
		t.Fatalf("version = %#v, want %d", generic["version"], SchemaVersion)
	}
	galaxies, ok := generic["galaxies"].([]any)
	if !ok || len(galaxies) != 1 {
		t.Fatalf("galaxies = %#v", generic["galaxies"])
	}
	galaxy, ok := galaxies[0].(map[any]any)
	if !ok {
		t.Fatalf("galaxy = %#v", galaxies[0])
	}
	for _, key := range []string{"code", "stars", "black_holes", "nebulae", "asteroids", "comets"} {
		if _, ok := galaxy[key]; !ok {
			t.Fatalf("galaxy missing key %q", key)
		}
	}
}

func TestUnmarshalRejectsOtherSchemaVersion(t *testing.T) {
	c := newCodec(t)
	data, err := cbor.Marshal(map[string]any{"version": 2, "galaxies": []any{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	_, err = c.Unmarshal(data)
	if !apperrors.HasCode(err, apperrors.CodeSchemaUnsupported) {
		t.Fatalf("err = %v, want %s", err, apperrors.CodeSchemaUnsupported)
	}
}

func TestUnmarshalRejectsUnknownKeys(t *testing.T) {
	c := newCodec(t)
	data, err := cbor.Marshal(map[string]any{"version": 1, "galaxies": []any{}, "dark_matter": true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := c.Unmarshal(data); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestUnmarshalRejectsTrailingBytes(t *testing.T) {
	c := newCodec(t)
	data, err := c.Marshal(domain.Universe{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := c.Unmarshal(append(data, 0x00)); err == nil {
		t.Fatal("expected trailing bytes to be rejected")
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	c := newCodec(t)
	if _, err := c.Unmarshal([]byte{0xff, 0x01}); err == nil {
		t.Fatal("expected garbage to be rejected")
	}
}
