// Package sidecar reads the optional meta.json files that sit next to media.
//
// A category sidecar maps a filename, or a filename stem, to display
// overrides:
//
//	{
//	  "beach-trip": {"blurb": "so fun"},
//	  "IMG_0042.jpg": {"title": "Sunset", "date": "2023-08-15"}
//	}
//
// A hero sidecar picks the banner file and how it is fitted:
//
//	{"select": "clip.mp4", "fit": "contain"}
//
// A missing sidecar is not an error. A sidecar that cannot be decoded yields
// an empty value and an error wrapping ErrMalformedSidecar; callers log it and
// carry on without overrides.
package sidecar
