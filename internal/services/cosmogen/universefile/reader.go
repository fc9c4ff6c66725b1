package universefile

import (
	"encoding/binary"
	"io"
	"os"
	"strconv"

	apperrors "github.com/louisbranch/cosmogen/internal/platform/errors"
)

// ReadPayload returns the length-prefixed payload at the start of path. It is
// used to verify a file right after Write.
func ReadPayload(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeWriteFailed, "open output file", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeWriteFailed, "stat output file", err)
	}

	var prefix [HeaderSize]byte
	if _, err := io.ReadFull(f, prefix[:]); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCorruptPrefix, "read length prefix", err)
	}
	length := binary.LittleEndian.Uint64(prefix[:])
	if length > uint64(info.Size()-HeaderSize) {
		return nil, apperrors.WithMetadata(apperrors.CodeCorruptPrefix,
			"length prefix exceeds file size", map[string]string{
				"length": strconv.FormatUint(length, 10),
				"size":   strconv.FormatInt(info.Size(), 10),
			})
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(f, payload); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeCorruptPrefix, "read payload", err)
	}
	return payload, nil
}
