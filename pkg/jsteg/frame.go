package jsteg

import (
	"path/filepath"

	"golang.org/x/text/unicode/norm"

	"jsteg/pkg/jpegerr"
)

// lengthPrefixSize is the size, in bytes, of the frame's length
// prefix (spec.md §4.9).
const lengthPrefixSize = 4

const separator = '/'

// asciiBasename reduces name to the ASCII byte set the wire frame
// requires (spec.md §4.9: "the file's basename as ASCII bytes").
// Non-ASCII runes are first NFKD-decomposed so accented latin
// characters fold to their plain ASCII base letter (e.g. "é" -> "e"),
// then anything still outside ASCII is dropped; a name left empty by
// this becomes "_". This keeps a
// secret file with an accented or otherwise non-ASCII name from
// silently corrupting the frame's only delimiter-adjacent field.
func asciiBasename(name string) []byte {
	base := filepath.Base(name)
	decomposed := norm.NFKD.String(base)

	out := make([]byte, 0, len(decomposed))
	for _, r := range decomposed {
		if r < 0x80 {
			out = append(out, byte(r))
			continue
		}
		// NFKD splits a combining accent off its base letter (e.g.
		// "é" -> "e" + U+0301); the base letter was already appended
		// as plain ASCII above, so a leftover non-ASCII rune here is
		// discarded rather than substituted, to avoid doubling marks.
	}
	if len(out) == 0 {
		return []byte("_")
	}
	return out
}

// Frame builds the on-wire payload of spec.md §4.9: a 4-byte length
// prefix with its least-significant byte first, the secret bytes, the
// '/' separator, then the secret file's ASCII basename.
func Frame(data []byte, filename string) []byte {
	name := asciiBasename(filename)
	size := uint32(len(data)) + 1 + uint32(len(name))

	out := make([]byte, 0, lengthPrefixSize+int(size))
	out = append(out,
		byte(size),
		byte(size>>8),
		byte(size>>16),
		byte(size>>24),
	)
	out = append(out, data...)
	out = append(out, separator)
	out = append(out, name...)
	return out
}

// Unframe reverses Frame: it splits a decoded frame body (everything
// after the length prefix) into the secret's bytes and basename by
// scanning backwards for the last '/'. Absence of '/' is fatal.
func Unframe(body []byte) (data []byte, filename string, err error) {
	idx := -1
	for i := len(body) - 1; i >= 0; i-- {
		if body[i] == separator {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, "", jpegerr.New(jpegerr.FrameCorrupt, "no '/' separator found in extracted frame")
	}
	return body[:idx], string(body[idx+1:]), nil
}
