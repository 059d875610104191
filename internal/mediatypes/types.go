package mediatypes

import (
	"path/filepath"
	"strings"
)

// Kind classifies a gallery media file.
type Kind string

const (
	// KindImage is a still image.
	KindImage Kind = "image"
	// KindVideo is a video clip.
	KindVideo Kind = "video"
	// KindOther is anything the gallery does not display.
	KindOther Kind = ""
)

// ImageExtensions maps file extensions to whether they are supported image formats.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".svg":  true,
}

// VideoExtensions maps file extensions to whether they are supported video formats.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mov":  true,
}

// PosterExtensions lists, in probe order, the extensions tried when looking
// for a still image that shares a video's stem.
var PosterExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// Ext returns the lower-cased extension of name, including the leading dot.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// Stem returns name without its extension. The extension is removed with its
// original case, so "CLIP.MP4" yields "CLIP".
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// GetKind returns the Kind for a lower-cased extension with leading dot.
func GetKind(ext string) Kind {
	if ImageExtensions[ext] {
		return KindImage
	}
	if VideoExtensions[ext] {
		return KindVideo
	}
	return KindOther
}

// IsMediaFile returns true if the extension is displayed by the gallery.
func IsMediaFile(ext string) bool {
	return GetKind(ext) != KindOther
}

// PosterCandidates returns the filenames probed, in order, as the poster for
// a video named name.
func PosterCandidates(name string) []string {
	stem := Stem(name)
	candidates := make([]string, 0, len(PosterExtensions))
	for _, ext := range PosterExtensions {
		candidates = append(candidates, stem+ext)
	}
	return candidates
}
