//go:build linux

package filesystem

import (
	"errors"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

func statTimes(path string) (FileTimes, error) {
	var stx unix.Statx_t
	mask := unix.STATX_BTIME | unix.STATX_MTIME | unix.STATX_CTIME
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, mask, &stx)
	if errors.Is(err, unix.ENOSYS) {
		return statTimesFallback(path)
	}
	if err != nil {
		return FileTimes{}, &os.PathError{Op: "statx", Path: path, Err: err}
	}

	var ft FileTimes
	if stx.Mask&unix.STATX_BTIME != 0 {
		ft.Birth = statxTime(stx.Btime)
	}
	if stx.Mask&unix.STATX_MTIME != 0 {
		ft.Modify = statxTime(stx.Mtime)
	}
	if stx.Mask&unix.STATX_CTIME != 0 {
		ft.Change = statxTime(stx.Ctime)
	}
	return ft, nil
}

func statxTime(ts unix.StatxTimestamp) time.Time {
	if ts.Sec == 0 && ts.Nsec == 0 {
		return time.Time{}
	}
	return time.Unix(ts.Sec, int64(ts.Nsec))
}

// statTimesFallback serves kernels without statx(2).
func statTimesFallback(path string) (FileTimes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileTimes{}, err
	}
	ft := FileTimes{Modify: info.ModTime()}
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		ft.Change = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return ft, nil
}
