package slug

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)
	marks       = regexp.MustCompile(`\p{Mn}+`)
)

// Make turns free text into a lowercase dash-separated key. Accents are
// stripped by decomposing first, so "São Paulo" becomes "sao-paulo".
func Make(input string) string {
	s := norm.NFKD.String(strings.ToLower(strings.TrimSpace(input)))
	s = marks.ReplaceAllString(s, "")
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// Key joins slugged parts with "/" and keeps a trailing file extension intact.
func Key(prefix, name, ext string) string {
	parts := make([]string, 0, 2)
	if p := strings.Trim(prefix, "/"); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, Make(name)+ext)
	return strings.Join(parts, "/")
}
