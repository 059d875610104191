// Package gallery builds the gallery listing from the media directory.
//
// The media root holds one directory per category plus a hero directory:
//
//	public/
//	├── moments/
//	│   ├── IMG_20230815_120000.jpg
//	│   └── meta.json
//	├── trips/
//	│   ├── beach-trip.mp4
//	│   └── beach-trip.jpg   (poster for beach-trip.mp4)
//	└── hero/
//	    ├── clip.mp4
//	    ├── clip.jpg
//	    └── meta.json
//
// Every call to Indexer.Build rescans the tree. Categories are scanned
// concurrently but rows always come back in category order. A category that
// is missing, unreadable or slow becomes an empty row; a broken sidecar means
// no overrides. Only a media root that cannot be read fails the whole build.
//
// Within a row, items are sorted newest first. An item's date comes from its
// sidecar "date" when that parses, otherwise from the inference engine. When a
// date is known it is also the item's visible title.
package gallery
