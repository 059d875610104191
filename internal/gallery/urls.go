package gallery

import (
	"net/url"
	"strings"
)

// url.QueryEscape escapes a few characters that encodeURIComponent keeps and
// writes spaces as "+".
var componentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes s for use as a single URL path segment,
// producing the same output as JavaScript's encodeURIComponent.
func encodeComponent(s string) string {
	return componentFixups.Replace(url.QueryEscape(s))
}

// mediaURL joins prefix and the encoded segments with "/".
func mediaURL(prefix string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(prefix, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(encodeComponent(s))
	}
	return b.String()
}
