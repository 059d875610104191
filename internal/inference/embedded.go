package inference

import (
	"context"
	"strings"
	"time"

	"github.com/abema/go-mp4"
	"github.com/rwcarlsen/goexif/exif"

	"media-reel/internal/logging"
)

// Seconds between the QuickTime epoch (1904-01-01) and the Unix epoch.
const mp4EpochOffset = 2082844800

const exifLayout = "2006:01:02 15:04:05"

var (
	exifExtensions = map[string]bool{".jpg": true, ".jpeg": true}
	mp4Extensions  = map[string]bool{".mp4": true, ".mov": true}
)

// EmbeddedStrategy reads the capture time stored inside the file: EXIF
// DateTimeOriginal (then DateTime) for JPEG, the mvhd creation time for
// MP4 and QuickTime. Values outside Window are ignored.
type EmbeddedStrategy struct {
	Open     OpenFunc
	Location *time.Location
	Window   Window
}

// Source implements Strategy.
func (EmbeddedStrategy) Source() Source { return SourceEmbedded }

// Infer implements Strategy.
func (s EmbeddedStrategy) Infer(ctx context.Context, in Input) (time.Time, bool) {
	if s.Open == nil || in.Path == "" {
		return time.Time{}, false
	}

	ext := in.Ext()
	var read func(context.Context, string) (time.Time, error)
	switch {
	case exifExtensions[ext]:
		read = s.exifTime
	case mp4Extensions[ext]:
		read = s.mp4Time
	default:
		return time.Time{}, false
	}

	t, err := read(ctx, in.Path)
	if err != nil {
		logging.Debug("embedded date %s: %v", in.Path, err)
		return time.Time{}, false
	}
	if t.IsZero() || !s.Window.Contains(t) {
		return time.Time{}, false
	}
	return t, true
}

func (s EmbeddedStrategy) exifTime(ctx context.Context, path string) (time.Time, error) {
	f, err := s.Open(ctx, path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}

	loc := s.Location
	if loc == nil {
		loc = time.Local
	}

	var lastErr error
	for _, field := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTime} {
		tag, err := x.Get(field)
		if err != nil {
			lastErr = err
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			lastErr = err
			continue
		}
		t, err := time.ParseInLocation(exifLayout, strings.TrimRight(strings.TrimSpace(raw), "\x00"), loc)
		if err != nil {
			lastErr = err
			continue
		}
		return t, nil
	}
	return time.Time{}, lastErr
}

func (s EmbeddedStrategy) mp4Time(ctx context.Context, path string) (time.Time, error) {
	f, err := s.Open(ctx, path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	boxes, err := mp4.ExtractBoxWithPayload(f, nil, mp4.BoxPath{mp4.BoxTypeMoov(), mp4.BoxTypeMvhd()})
	if err != nil {
		return time.Time{}, err
	}
	for _, box := range boxes {
		mvhd, ok := box.Payload.(*mp4.Mvhd)
		if !ok {
			continue
		}
		created := int64(mvhd.GetCreationTime())
		if created == 0 {
			continue
		}
		return time.Unix(created-mp4EpochOffset, 0), nil
	}
	return time.Time{}, nil
}
