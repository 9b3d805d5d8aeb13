// Package sanitize restricts text to the 7-bit ASCII subset supported by the
// PDF core fonts.
package sanitize

import "strings"

var replacer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"–", "-",
	"—", "-",
	"…", "...",
	"•", "-",
	"°", " degrees",
	"™", "(TM)",
	"®", "(R)",
	"©", "(C)",
)

// Text replaces smart punctuation with ASCII equivalents and every other
// non-ASCII rune with '?'.
func Text(s string) string {
	s = replacer.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

// Filename maps spaces to underscores before sanitising.
func Filename(name string) string {
	return Text(strings.ReplaceAll(name, " ", "_"))
}
