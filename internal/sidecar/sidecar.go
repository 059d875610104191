package sidecar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"media-reel/internal/filesystem"
	"media-reel/internal/mediatypes"
)

// ErrMalformedSidecar is wrapped by errors for sidecars that are not a JSON
// object.
var ErrMalformedSidecar = errors.New("malformed sidecar")

// Override holds the display fields a sidecar entry may set. Empty means
// unset.
type Override struct {
	Title string
	Blurb string
	Date  string
}

// IsZero reports whether no field is set.
func (o Override) IsZero() bool {
	return o == Override{}
}

// Overrides maps a filename or stem to its Override.
type Overrides map[string]Override

// Lookup returns the entry for the exact filename, else the entry for its
// stem. The first hit is returned whole; fields are never mixed across keys.
func (o Overrides) Lookup(name string) (Override, bool) {
	if ov, ok := o[name]; ok {
		return ov, true
	}
	ov, ok := o[mediatypes.Stem(name)]
	return ov, ok
}

// Fit values accepted for the hero banner.
const (
	FitCover   = "cover"
	FitContain = "contain"
)

// HeroMeta is the hero directory sidecar.
type HeroMeta struct {
	// Select names the preferred hero file.
	Select string
	// Fit is "cover" or "contain" as written in the file; see NormalizedFit.
	Fit string
}

// NormalizedFit returns Fit when it is a known value, else FitCover.
func (h HeroMeta) NormalizedFit() string {
	if h.Fit == FitContain {
		return FitContain
	}
	return FitCover
}

// Loader reads sidecars through the retrying filesystem helpers.
type Loader struct {
	Retry filesystem.RetryConfig
}

// NewLoader returns a Loader using retry for every read.
func NewLoader(retry filesystem.RetryConfig) *Loader {
	return &Loader{Retry: retry}
}

// Overrides loads a category sidecar.
func (l *Loader) Overrides(ctx context.Context, path string) (Overrides, error) {
	fields, err := l.readObject(ctx, path)
	if err != nil || fields == nil {
		return Overrides{}, err
	}

	out := make(Overrides, len(fields))
	for key, raw := range fields {
		var entry map[string]any
		if err := json.Unmarshal(raw, &entry); err != nil || entry == nil {
			// Non-object entries carry no overrides.
			continue
		}
		out[key] = Override{
			Title: stringField(entry, "title"),
			Blurb: stringField(entry, "blurb"),
			Date:  stringField(entry, "date"),
		}
	}
	return out, nil
}

// HeroMeta loads the hero sidecar.
func (l *Loader) HeroMeta(ctx context.Context, path string) (HeroMeta, error) {
	fields, err := l.readObject(ctx, path)
	if err != nil || fields == nil {
		return HeroMeta{}, err
	}

	var meta HeroMeta
	for key, raw := range fields {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			continue
		}
		switch key {
		case "select":
			meta.Select = s
		case "fit":
			meta.Fit = s
		}
	}
	return meta, nil
}

// readObject returns nil, nil for a missing file.
func (l *Loader) readObject(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	data, err := filesystem.ReadFileWithRetry(ctx, path, l.Retry)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sidecar %s: %w", path, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedSidecar, path, err)
	}
	if fields == nil {
		// The literal "null".
		return nil, fmt.Errorf("%w: %s: not an object", ErrMalformedSidecar, path)
	}
	return fields, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// LoadOverrides loads a category sidecar with the default retry settings.
func LoadOverrides(path string) (Overrides, error) {
	return NewLoader(filesystem.DefaultRetryConfig()).Overrides(context.Background(), path)
}

// LoadHeroMeta loads a hero sidecar with the default retry settings.
func LoadHeroMeta(path string) (HeroMeta, error) {
	return NewLoader(filesystem.DefaultRetryConfig()).HeroMeta(context.Background(), path)
}
