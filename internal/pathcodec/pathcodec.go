// Package pathcodec implements the PathCodec collaborator: normalization
// between archive paths (forward-slash, case-insensitive) and filesystem
// paths, filename escaping, and relative-path math, per spec §4.1.
package pathcodec

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// Normalize converts an archive path into its canonical lookup form: slashes,
// no leading/trailing slash, folded case. A leading separator (an archive
// path rooted at "/") is rewritten to a literal underscore on disk, since a
// leading slash is not representable as a relative filesystem path.
func Normalize(p string) string {
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, "\\", "/")
	hadLeadingSlash := strings.HasPrefix(p, "/")
	p = strings.Trim(p, "/")
	if hadLeadingSlash {
		p = "_" + p
	}
	return foldCaser.String(p)
}

// NormalizeCollisionKey folds case the same way Normalize does, but without
// the leading-separator rewrite — used purely for duplicate detection where
// callers keep the original path alongside the key.
func NormalizeCollisionKey(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	p = strings.Trim(p, "/")
	return foldCaser.String(p)
}

// isLiteral reports the set of ASCII characters EscapeFileName leaves untouched:
// letters, digits, space, underscore, period, brackets, hyphen, backslash.
func isLiteral(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '_', r == '.', r == '[', r == ']', r == '-', r == '\\':
		return true
	}
	return false
}

// EscapeFileName percent-encodes every character outside the literal set.
// ASCII characters (<= 0x7F) are encoded as a single "%HH" pair; code points
// above 0x7F are encoded as "%%HHHH" (four hex digits), matching the exact
// on-disk encoding the round-trip requires (spec §4.1, P3). A code point
// above 0xFFFF is written as its UTF-16 surrogate pair, one "%%HHHH" each.
func EscapeFileName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isLiteral(r) {
			b.WriteRune(r)
			continue
		}
		if r <= 0x7F {
			fmt.Fprintf(&b, "%%%02x", r)
		} else if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, "%%%%%04x%%%%%04x", hi, lo)
		} else {
			fmt.Fprintf(&b, "%%%%%04x", r)
		}
	}
	return b.String()
}

// UnescapeFileName reverses EscapeFileName. A stray '%' without enough
// trailing hex digits to form a valid escape is treated as a literal
// character rather than an error, matching the tolerant behavior the
// round-trip contract (P3) requires. Two consecutive "%%HHHH" escapes that
// form a UTF-16 surrogate pair decode to the single code point they encode.
func UnescapeFileName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); {
		r := runes[i]
		if r != '%' {
			b.WriteRune(r)
			i++
			continue
		}
		if i+1 < len(runes) && runes[i+1] == '%' {
			if v, n, ok := parseHex(runes, i+2, 4); ok {
				i += 2 + n
				if utf16.IsSurrogate(rune(v)) && i+1 < len(runes) && runes[i] == '%' && runes[i+1] == '%' {
					if v2, n2, ok2 := parseHex(runes, i+2, 4); ok2 {
						if pair := utf16.DecodeRune(rune(v), rune(v2)); pair != '�' {
							b.WriteRune(pair)
							i += 2 + n2
							continue
						}
					}
				}
				b.WriteRune(rune(v))
				continue
			}
		}
		if v, n, ok := parseHex(runes, i+1, 2); ok {
			b.WriteRune(rune(v))
			i += 1 + n
			continue
		}
		b.WriteRune('%')
		i++
	}
	return b.String()
}

// parseHex parses up to want hex digits starting at offset, returning the
// parsed value and the number of digits consumed. ok is false if there were
// not enough valid hex digits available (a "stray %").
func parseHex(runes []rune, offset, want int) (value int, consumed int, ok bool) {
	if offset+want > len(runes) {
		return 0, 0, false
	}
	v := 0
	for i := 0; i < want; i++ {
		d, ok := hexDigit(runes[offset+i])
		if !ok {
			return 0, 0, false
		}
		v = v<<4 | d
	}
	return v, want, true
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}

// InvalidPathError reports a Relative call whose full path did not lie
// beneath base.
type InvalidPathError struct {
	Full string
	Base string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("path %q is not relative to base %q", e.Full, e.Base)
}

// Relative computes full's path relative to base, using native (backslash)
// separator math (spec §4.1, §8 P4). When full has no file extension it is
// treated as a directory and the result carries a trailing separator,
// matching the literal examples in §8.
func Relative(full, base string) (string, error) {
	fullNorm := normalizeSeparators(full)
	baseNorm := strings.TrimRight(normalizeSeparators(base), "\\")

	if baseNorm == "" {
		return strings.TrimPrefix(fullNorm, "\\"), nil
	}
	if len(fullNorm) < len(baseNorm) || !strings.EqualFold(fullNorm[:len(baseNorm)], baseNorm) {
		return "", &InvalidPathError{Full: full, Base: base}
	}
	if len(fullNorm) > len(baseNorm) && fullNorm[len(baseNorm)] != '\\' {
		return "", &InvalidPathError{Full: full, Base: base}
	}

	rest := strings.TrimPrefix(fullNorm[len(baseNorm):], "\\")
	if rest != "" && fileExtension(rest) == "" {
		rest += "\\"
	}
	return rest, nil
}

func normalizeSeparators(p string) string {
	return strings.ReplaceAll(p, "/", "\\")
}

// fileExtension returns the extension of the last path component, used only
// to guess whether a path denotes a file (has one) or a directory (doesn't).
func fileExtension(p string) string {
	last := p
	if idx := strings.LastIndexByte(p, '\\'); idx >= 0 {
		last = p[idx+1:]
	}
	if idx := strings.LastIndexByte(last, '.'); idx > 0 {
		return last[idx:]
	}
	return ""
}

// Join mirrors native filepath.Join semantics but uses the same backslash
// convention Relative does, so Join(base, Relative(full, base)) round-trips
// (§8 P4).
func Join(base, rel string) string {
	base = strings.TrimRight(base, "\\")
	if rel == "" {
		return base
	}
	if base == "" {
		return strings.TrimRight(rel, "\\")
	}
	joined := base + "\\" + strings.TrimPrefix(rel, "\\")
	return strings.TrimRight(joined, "\\")
}
