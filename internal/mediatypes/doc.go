// Package mediatypes holds the extension tables and kind classification shared
// by the gallery indexer and the inference engine.
//
// It has no dependencies beyond the standard library so that any package can
// import it without creating cycles.
//
//	ext := mediatypes.Ext(filename) // lower-cased, with leading dot
//	switch mediatypes.GetKind(ext) {
//	case mediatypes.KindImage:
//	    // part of a row, may also act as a poster
//	case mediatypes.KindVideo:
//	    // part of a row, look for a poster with the same stem
//	}
package mediatypes
