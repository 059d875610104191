// Package inference derives a display date and title for a media file from
// its name and, when the name carries no date, from metadata.
//
// An Engine holds an ordered list of Strategy values. Resolve asks each one in
// turn and keeps the first date it gets:
//
//  1. CalendarStrategy: yyyy-mm-dd or dd-mm-yyyy in the filename
//  2. UnixStrategy: a 10-digit epoch-seconds run in the filename
//  3. EmbeddedStrategy (optional): EXIF or MP4 capture time
//  4. FilesystemStrategy: birth, modification or change time
//
// When no strategy resolves, the title falls back to a cleaned version of the
// filename and the timestamp is 0.
package inference
