package inference

import (
	"context"
	"time"

	"media-reel/internal/logging"
)

// FilesystemStrategy falls back to the file's birth, modification or change
// time, whichever is first available. A failed stat yields nothing.
type FilesystemStrategy struct {
	Stat StatFunc
}

// Source implements Strategy.
func (FilesystemStrategy) Source() Source { return SourceFilesystem }

// Infer implements Strategy.
func (s FilesystemStrategy) Infer(ctx context.Context, in Input) (time.Time, bool) {
	if s.Stat == nil || in.Path == "" {
		return time.Time{}, false
	}

	ft, err := s.Stat(ctx, in.Path)
	if err != nil {
		logging.Debug("stat %s: %v", in.Path, err)
		return time.Time{}, false
	}
	return ft.First()
}
