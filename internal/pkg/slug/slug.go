package slug

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const MaxLength = 120

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Make lowercases s, strips diacritics, collapses everything outside
// [a-z0-9] into single hyphens and caps the result at MaxLength runes.
// An input with no usable characters yields "item".
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if utf8.RuneCountInString(s) > MaxLength {
		s = strings.Trim(string([]rune(s)[:MaxLength]), "-")
	}
	if s == "" {
		return "item"
	}
	return s
}
