// Package codec encodes a universe with an explicit, versioned schema.
//
// The wire form is CBOR (RFC 8949) with Core Deterministic Encoding: map keys
// are sorted and floats use their shortest lossless width, so equal universes
// always encode to equal bytes.
package codec

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
	apperrors "github.com/louisbranch/cosmogen/internal/platform/errors"
	"github.com/louisbranch/cosmogen/internal/services/cosmogen/domain"
)

// Codec converts a universe to and from its serialized payload.
type Codec interface {
	Marshal(u domain.Universe) ([]byte, error)
	Unmarshal(data []byte) (domain.Universe, error)
}

// CBOR is the default Codec.
type CBOR struct {
	enc    cbor.EncMode
	dec    cbor.DecMode
	header cbor.DecMode
}

var _ Codec = (*CBOR)(nil)

// NewCBOR builds the deterministic CBOR codec.
func NewCBOR() (*CBOR, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("build cbor encoder: %w", err)
	}
	limits := cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxArrayElements: math.MaxInt32,
		MaxMapPairs:      math.MaxInt32,
	}
	header, err := limits.DecMode()
	if err != nil {
		return nil, fmt.Errorf("build cbor header decoder: %w", err)
	}
	strict := limits
	strict.ExtraReturnErrors = cbor.ExtraDecErrorUnknownField
	dec, err := strict.DecMode()
	if err != nil {
		return nil, fmt.Errorf("build cbor decoder: %w", err)
	}
	return &CBOR{enc: enc, dec: dec, header: header}, nil
}

// Marshal encodes u as a SchemaVersion document.
func (c *CBOR) Marshal(u domain.Universe) ([]byte, error) {
	data, err := c.enc.Marshal(toDocument(u))
	if err != nil {
		return nil, fmt.Errorf("encode universe: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a payload produced by Marshal. Documents of another
// schema version, unknown keys, duplicate keys and trailing bytes are
// rejected.
func (c *CBOR) Unmarshal(data []byte) (domain.Universe, error) {
	var v versionRecord
	if err := c.header.Unmarshal(data, &v); err != nil {
		return domain.Universe{}, fmt.Errorf("decode schema version: %w", err)
	}
	if v.Version != SchemaVersion {
		return domain.Universe{}, apperrors.WithMetadata(apperrors.CodeSchemaUnsupported,
			"unsupported schema version", map[string]string{
				"got":  fmt.Sprint(v.Version),
				"want": fmt.Sprint(SchemaVersion),
			})
	}

	var doc documentRecord
	if err := c.dec.Unmarshal(data, &doc); err != nil {
		return domain.Universe{}, fmt.Errorf("decode universe: %w", err)
	}
	return fromDocument(doc), nil
}
