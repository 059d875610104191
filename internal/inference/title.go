package inference

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"media-reel/internal/mediatypes"
)

// Untitled is the title of a file whose cleaned name is empty.
const Untitled = "Untitled"

// DisplayLayout is the visible date format, e.g. "Jan 5, 2024".
const DisplayLayout = "Jan 2, 2006"

var (
	cameraPrefix  = regexp.MustCompile(`(?i)^(IMG|VID|PXL|Snapchat|WhatsApp|WA|DSC|PHOTO|VIDEO)[-_\s]+`)
	separatorRuns = regexp.MustCompile(`[-_\s]+`)
)

// FormatDate renders t as "Jan 5, 2024" in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DisplayLayout)
}

// CleanName turns a filename stem into a display title: known camera and app
// prefixes are dropped, separator runs become single spaces and each word
// starts with an upper-case letter. It returns "" when nothing is left.
func CleanName(stem string) string {
	s := cameraPrefix.ReplaceAllString(stem, "")
	s = strings.TrimSpace(separatorRuns.ReplaceAllString(s, " "))
	return capitalizeWords(s)
}

// FallbackTitle is the title used when no date resolves for name.
func FallbackTitle(name string) string {
	if cleaned := CleanName(mediatypes.Stem(name)); cleaned != "" {
		return cleaned
	}
	return Untitled
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
}

// capitalizeWords upper-cases the first rune of every word and leaves the
// rest untouched.
func capitalizeWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		word := isWordRune(r)
		if word && !inWord {
			r = unicode.ToUpper(r)
		}
		inWord = word
		b.WriteRune(r)
	}
	return b.String()
}
