// Package format implements recognition of printf-style template strings
// and the string escaping used when rebuilding literals. Only the display
// (%s) and representation (%r) conversions are eligible for rewriting;
// any other conversion makes the whole template ineligible.
package format

import (
	"regexp"
	"strings"
)

// Conversion selects how a substituted argument is rendered
type Conversion int

const (
	ConvDisplay Conversion = iota // %s, the interpolation default
	ConvRepr                      // %r, rendered with a !r suffix
)

// Suffix returns the explicit conversion suffix for an interpolated
// substitution; the display conversion is the default and has none.
func (c Conversion) Suffix() string {
	if c == ConvRepr {
		return "!r"
	}
	return ""
}

// Piece is one segment of a scanned template: either literal text or a
// single argument substitution.
type Piece struct {
	Text string
	Sub  bool
	Conv Conversion
}

// Directive grammar: optional parenthesized key, flags, width, precision,
// length modifier, one-character conversion type.
var directiveRE = regexp.MustCompile(`%(\([^)]*\))?([#0 +-]*)(\*|\d+)?(?:\.(\*|\d+))?([hlL])?(.)`)

// Scan splits template into pieces. A %% escape folds into literal text
// and consumes no argument. ok is false when any directive's conversion
// type is outside the display/representation pair, in which case the
// template must be left unrewritten.
func Scan(template string) ([]Piece, bool) {
	var pieces []Piece
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			pieces = append(pieces, Piece{Text: text.String()})
			text.Reset()
		}
	}

	last := 0
	for _, m := range directiveRE.FindAllStringSubmatchIndex(template, -1) {
		text.WriteString(template[last:m[0]])
		last = m[1]
		if m[2] >= 0 {
			// keyed directives substitute by mapping lookup, which has
			// no positional argument to interpolate
			return nil, false
		}
		conv := template[m[12]:m[13]]
		switch conv {
		case "%":
			text.WriteString("%")
		case "s":
			flush()
			pieces = append(pieces, Piece{Sub: true, Conv: ConvDisplay})
		case "r":
			flush()
			pieces = append(pieces, Piece{Sub: true, Conv: ConvRepr})
		default:
			return nil, false
		}
	}
	text.WriteString(template[last:])
	flush()
	return pieces, true
}

// CountSubs returns the number of substitution pieces
func CountSubs(pieces []Piece) int {
	n := 0
	for _, piece := range pieces {
		if piece.Sub {
			n++
		}
	}
	return n
}

// EscapeInner escapes s for placement as literal content inside a
// single-quoted string literal. Braces are left untouched: substitution
// braces are emitted structurally by the caller, never as escaped text.
func EscapeInner(s string) string {
	var b strings.Builder
	for _, r := range s {
		writeEscaped(&b, r, '\'')
	}
	return b.String()
}

// Quote renders s as a canonical single-quoted string literal, switching
// to double quotes when the value contains a single quote and no double
// quote. The canonicalization is stable: quoting an already-canonical
// value reproduces it exactly.
func Quote(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		writeEscaped(&b, r, quote)
	}
	b.WriteRune(quote)
	return b.String()
}

func writeEscaped(b *strings.Builder, r rune, quote rune) {
	switch r {
	case '\\':
		b.WriteString(`\\`)
	case quote:
		b.WriteByte('\\')
		b.WriteRune(quote)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	default:
		if r < 0x20 || r == 0x7f {
			const hex = "0123456789abcdef"
			b.WriteString(`\x`)
			b.WriteByte(hex[r>>4])
			b.WriteByte(hex[r&0xf])
		} else {
			b.WriteRune(r)
		}
	}
}
