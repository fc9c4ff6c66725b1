// Package errors provides structured error handling for cosmogen runs.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Configuration errors
	CodeConfigInvalid Code = "CONFIG_INVALID"
	CodeUnknownPreset Code = "UNKNOWN_PRESET"

	// Output file errors
	CodeTargetTooSmall    Code = "TARGET_TOO_SMALL"
	CodeWriteFailed       Code = "WRITE_FAILED"
	CodeSizeMismatch      Code = "SIZE_MISMATCH"
	CodeCorruptPrefix     Code = "CORRUPT_PREFIX"
	CodeSchemaUnsupported Code = "SCHEMA_VERSION_UNSUPPORTED"
	CodeVerifyFailed      Code = "VERIFY_FAILED"

	// Resource errors
	CodeInsufficientSpace Code = "INSUFFICIENT_SPACE"
	CodeSparseUnsupported Code = "SPARSE_UNSUPPORTED"

	// Random/seed errors
	CodeSeedUnavailable Code = "SEED_UNAVAILABLE"
)

// Class groups codes by how a run failed.
type Class string

const (
	// ClassConfig is rejected input, detected before generation begins.
	ClassConfig Class = "config"
	// ClassIO is a failure while writing or reading the output file.
	ClassIO Class = "io"
	// ClassResource is disk or entropy exhaustion.
	ClassResource Class = "resource"
	// ClassInternal is anything unclassified.
	ClassInternal Class = "internal"
)

// Class maps domain codes to their failure class.
func (c Code) Class() Class {
	switch c {
	case CodeConfigInvalid,
		CodeUnknownPreset:
		return ClassConfig

	case CodeTargetTooSmall,
		CodeWriteFailed,
		CodeSizeMismatch,
		CodeCorruptPrefix,
		CodeSchemaUnsupported,
		CodeVerifyFailed:
		return ClassIO

	case CodeInsufficientSpace,
		CodeSparseUnsupported:
		return ClassResource

	default:
		return ClassInternal
	}
}
