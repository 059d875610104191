package gallery

import (
	"io/fs"
	"os"
	"strings"

	"media-reel/internal/mediatypes"
)

// listing is one directory's contents split into displayable media, in
// directory order, and the set of every file name for poster probing.
type listing struct {
	media []string
	names map[string]bool
}

func newListing(entries []os.DirEntry) listing {
	l := listing{names: make(map[string]bool, len(entries))}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		l.names[name] = true

		if strings.HasPrefix(name, ".") {
			continue
		}
		if !e.Type().IsRegular() && e.Type()&fs.ModeSymlink == 0 {
			continue
		}
		if mediatypes.IsMediaFile(mediatypes.Ext(name)) {
			l.media = append(l.media, name)
		}
	}
	return l
}

func kindOf(name string) mediatypes.Kind {
	return mediatypes.GetKind(mediatypes.Ext(name))
}

// poster returns the first same-stem still image for a video, matching case
// exactly, or "" when there is none.
func (l listing) poster(video string) string {
	for _, candidate := range mediatypes.PosterCandidates(video) {
		if l.names[candidate] {
			return candidate
		}
	}
	return ""
}

// has reports whether name is a displayable media file in the listing.
func (l listing) has(name string) bool {
	if name == "" || !l.names[name] {
		return false
	}
	return mediatypes.IsMediaFile(mediatypes.Ext(name))
}

// first returns the first media file of kind, or "".
func (l listing) first(kind mediatypes.Kind) string {
	for _, name := range l.media {
		if kindOf(name) == kind {
			return name
		}
	}
	return ""
}
