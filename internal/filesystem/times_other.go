//go:build !linux

package filesystem

import "os"

func statTimes(path string) (FileTimes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileTimes{}, err
	}
	return FileTimes{Modify: info.ModTime()}, nil
}
