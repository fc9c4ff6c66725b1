//go:build linux || darwin || freebsd

package universefile

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// freeBytes reports the space available to unprivileged writers on the
// filesystem holding f.
func freeBytes(f *os.File) (uint64, bool, error) {
	var st unix.Statfs_t
	if err := unix.Fstatfs(int(f.Fd()), &st); err != nil {
		return 0, false, err
	}
	return uint64(st.Bavail) * uint64(st.Bsize), true, nil
}

// allocatedBytes reports the storage f occupies, counted in 512-byte blocks,
// and the filesystem block size.
func allocatedBytes(f *os.File) (int64, int64, bool) {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return 0, 0, false
	}
	return int64(st.Blocks) * 512, int64(st.Blksize), true
}

func isNoSpace(err error) bool {
	return errors.Is(err, unix.ENOSPC) || errors.Is(err, unix.EDQUOT)
}
