// Package universefile writes the padded universe output file.
//
// Layout:
//
//	[8 bytes: little-endian uint64 payload length L]
//	[L bytes: encoded universe]
//	[padding up to the target size; the last byte is written explicitly]
//
// Padding is sparse by default: one zero byte is written at target-1 and the
// filesystem leaves the gap as a hole that reads back as zeros.
package universefile

import (
	"context"
	"encoding/binary"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	apperrors "github.com/louisbranch/cosmogen/internal/platform/errors"
)

// HeaderSize is the width of the length prefix.
const HeaderSize = 8

// zeroChunk is the buffer size used by PadZeroFill.
const zeroChunk = 1 << 20

// PadMode selects how the file is extended to its target size.
type PadMode string

const (
	// PadSparse writes a single zero byte at target-1.
	PadSparse PadMode = "sparse"
	// PadZeroFill writes every padding byte.
	PadZeroFill PadMode = "zero-fill"
)

// ParsePadMode resolves a pad mode name; empty means PadSparse.
func ParsePadMode(name string) (PadMode, error) {
	switch PadMode(name) {
	case "", PadSparse:
		return PadSparse, nil
	case PadZeroFill:
		return PadZeroFill, nil
	default:
		return "", apperrors.WithMetadata(apperrors.CodeConfigInvalid, "unknown pad mode",
			map[string]string{"pad": name})
	}
}

// Options controls one Write.
type Options struct {
	// TargetSize is the exact size the file must report afterwards.
	TargetSize int64
	// Pad selects sparse or zero-filled padding. Empty means PadSparse.
	Pad PadMode
	// RequireSparse fails the write when the padded file is not sparse.
	RequireSparse bool
}

// Result describes a completed write.
type Result struct {
	Path          string
	PayloadLength int64
	TargetSize    int64
	// AllocatedBytes is the storage actually used, or -1 when the platform
	// cannot report it.
	AllocatedBytes int64
	Sparse         bool
	Checksum       uint64 // xxhash64 of the payload
}

// Write creates or truncates path and writes the length-prefixed payload
// padded to opts.TargetSize. On failure the file is left in an indeterminate
// state and must be discarded.
func Write(ctx context.Context, path string, payload []byte, opts Options) (res Result, err error) {
	pad, err := ParsePadMode(string(opts.Pad))
	if err != nil {
		return Result{}, err
	}
	if pad == PadZeroFill && opts.RequireSparse {
		return Result{}, apperrors.New(apperrors.CodeConfigInvalid,
			"zero-fill padding cannot produce a sparse file")
	}
	written := int64(HeaderSize + len(payload))
	if opts.TargetSize < written {
		return Result{}, apperrors.WithMetadata(apperrors.CodeTargetTooSmall,
			"target size cannot hold the payload", map[string]string{
				"target":  strconv.FormatInt(opts.TargetSize, 10),
				"payload": strconv.Itoa(len(payload)),
			})
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return Result{}, apperrors.WrapWithMetadata(apperrors.CodeWriteFailed, "create output file",
			map[string]string{"path": path}, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = writeErr(path, "close output file", cerr)
		}
	}()

	var prefix [HeaderSize]byte
	binary.LittleEndian.PutUint64(prefix[:], uint64(len(payload)))
	if _, err := f.Write(prefix[:]); err != nil {
		return Result{}, writeErr(path, "write length prefix", err)
	}
	if _, err := f.Write(payload); err != nil {
		return Result{}, writeErr(path, "write payload", err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	switch pad {
	case PadZeroFill:
		err = zeroFill(ctx, f, written, opts.TargetSize)
	default:
		err = sparsePad(f, written, opts.TargetSize)
	}
	if err != nil {
		return Result{}, err
	}

	if err := f.Sync(); err != nil {
		return Result{}, writeErr(path, "sync output file", err)
	}
	info, err := f.Stat()
	if err != nil {
		return Result{}, writeErr(path, "stat output file", err)
	}
	if info.Size() != opts.TargetSize {
		return Result{}, apperrors.WithMetadata(apperrors.CodeSizeMismatch,
			"output file has the wrong size", map[string]string{
				"got":  strconv.FormatInt(info.Size(), 10),
				"want": strconv.FormatInt(opts.TargetSize, 10),
			})
	}

	allocated, blockSize, ok := allocatedBytes(f)
	if !ok {
		allocated = -1
	}
	sparse := ok && isSparse(written, opts.TargetSize, allocated, blockSize)
	if err := checkSparse(sparse, opts.RequireSparse, allocated, opts.TargetSize); err != nil {
		return Result{}, err
	}

	return Result{
		Path:           path,
		PayloadLength:  int64(len(payload)),
		TargetSize:     opts.TargetSize,
		AllocatedBytes: allocated,
		Sparse:         sparse,
		Checksum:       xxhash.Sum64(payload),
	}, nil
}

// sparsePad writes the final zero byte. When the payload already reaches the
// target there is nothing to pad and the payload's last byte is kept.
func sparsePad(f *os.File, written, target int64) error {
	if target == written {
		return nil
	}
	if _, err := f.WriteAt([]byte{0}, target-1); err != nil {
		return writeErr(f.Name(), "write final padding byte", err)
	}
	return nil
}

// zeroFill writes real zero bytes from written to target after checking the
// filesystem has room for them.
func zeroFill(ctx context.Context, f *os.File, written, target int64) error {
	need := uint64(target - written)
	if free, ok, err := freeBytes(f); err != nil {
		return writeErr(f.Name(), "inspect free space", err)
	} else if ok && free < need {
		return apperrors.WithMetadata(apperrors.CodeInsufficientSpace,
			"not enough free space for zero-filled padding", map[string]string{
				"need": strconv.FormatUint(need, 10),
				"free": strconv.FormatUint(free, 10),
			})
	}

	zeros := make([]byte, zeroChunk)
	for remaining := target - written; remaining > 0; {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := int64(len(zeros))
		if remaining < n {
			n = remaining
		}
		if _, err := f.Write(zeros[:n]); err != nil {
			return writeErr(f.Name(), "write zero padding", err)
		}
		remaining -= n
	}
	return nil
}

// isSparse reports whether the padding was left as a hole. When the gap
// between the last payload block and the block holding the final byte is
// shorter than one block there is no room for a hole, and the file counts as
// sparse since nothing was allocated for padding alone.
func isSparse(written, target, allocated, blockSize int64) bool {
	if blockSize <= 0 {
		return allocated < target
	}
	dataEnd := (written + blockSize - 1) / blockSize * blockSize
	lastBlock := (target - 1) / blockSize * blockSize
	if lastBlock <= dataEnd {
		return true
	}
	fullyAllocated := (target + blockSize - 1) / blockSize * blockSize
	return allocated < fullyAllocated
}

func checkSparse(sparse, require bool, allocated, target int64) error {
	if sparse || !require {
		return nil
	}
	return apperrors.WithMetadata(apperrors.CodeSparseUnsupported,
		"filesystem allocated the padding instead of leaving a hole", map[string]string{
			"allocated": strconv.FormatInt(allocated, 10),
			"target":    strconv.FormatInt(target, 10),
		})
}

// writeErr classifies a write failure, surfacing a full disk as a
// resource error rather than a generic I/O one.
func writeErr(path, op string, err error) error {
	meta := map[string]string{"path": path}
	if isNoSpace(err) {
		return apperrors.WrapWithMetadata(apperrors.CodeInsufficientSpace, op, meta, err)
	}
	return apperrors.WrapWithMetadata(apperrors.CodeWriteFailed, op, meta, err)
}
