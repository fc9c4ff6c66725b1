//go:build !(linux || darwin || freebsd)

package universefile

import (
	"errors"
	"os"
	"syscall"
)

// freeBytes cannot be determined here; zero-fill writes proceed and a full
// disk surfaces through isNoSpace.
func freeBytes(*os.File) (uint64, bool, error) {
	return 0, false, nil
}

func allocatedBytes(*os.File) (int64, int64, bool) {
	return 0, 0, false
}

func isNoSpace(err error) bool {
	return errors.Is(err, syscall.ENOSPC)
}
