package gallery

import (
	"errors"
	"fmt"
	"strings"

	"media-reel/internal/mediatypes"
)

// Item is one media file in a row.
type Item struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Kind   mediatypes.Kind `json:"kind"`
	Src    string          `json:"src"`
	Poster string          `json:"poster,omitempty"`
	Blurb  string          `json:"blurb,omitempty"`
	// DateMs is epoch milliseconds, 0 when unknown.
	DateMs int64 `json:"dateMs"`
}

// Row is one category's items, newest first.
type Row struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Hero is the banner shown above the rows.
type Hero struct {
	Type   mediatypes.Kind `json:"type"`
	Src    string          `json:"src"`
	Poster string          `json:"poster,omitempty"`
	Fit    string          `json:"fit"`
}

// Gallery is the full listing returned to clients.
type Gallery struct {
	Rows []Row `json:"rows"`
	Hero *Hero `json:"hero,omitempty"`
}

// Category maps a directory under the media root to a row title.
type Category struct {
	Key   string `toml:"key"`
	Title string `toml:"title"`
}

// DefaultCategories is the row table used when none is configured.
var DefaultCategories = []Category{
	{Key: "moments", Title: "Top Moments • Director's Cut"},
	{Key: "trips", Title: "Trips & Adventures"},
	{Key: "food", Title: "Food & Coffee Stories"},
	{Key: "jokes", Title: "Inside Jokes Playlist"},
}

// Keys returns the category keys in order.
func Keys(categories []Category) []string {
	keys := make([]string, len(categories))
	for i, c := range categories {
		keys[i] = c.Key
	}
	return keys
}

// ErrInvalidCategory is wrapped by ValidateCategories errors.
var ErrInvalidCategory = errors.New("invalid category")

// ValidateCategories checks that every key is a unique, visible, single path
// segment and that no key collides with the hero directory.
func ValidateCategories(categories []Category, heroDir string) error {
	if len(categories) == 0 {
		return fmt.Errorf("%w: no categories configured", ErrInvalidCategory)
	}

	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		switch {
		case c.Key == "":
			return fmt.Errorf("%w: empty key", ErrInvalidCategory)
		case strings.ContainsAny(c.Key, `/\`):
			return fmt.Errorf("%w: key %q must be a single path segment", ErrInvalidCategory, c.Key)
		case strings.HasPrefix(c.Key, "."):
			return fmt.Errorf("%w: key %q must not start with a dot", ErrInvalidCategory, c.Key)
		case c.Key == heroDir:
			return fmt.Errorf("%w: key %q is the hero directory", ErrInvalidCategory, c.Key)
		case seen[c.Key]:
			return fmt.Errorf("%w: duplicate key %q", ErrInvalidCategory, c.Key)
		case strings.TrimSpace(c.Title) == "":
			return fmt.Errorf("%w: key %q has no title", ErrInvalidCategory, c.Key)
		}
		seen[c.Key] = true
	}
	return nil
}
