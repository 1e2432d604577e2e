package zxml

import (
	"bytes"
	"unicode/utf8"

	"github.com/outerhaven/zxml/internal/charclass"
)

// recognizePlainCharacters consumes a run of character data up to (but not
// including) the next '<' or '&', applying end-of-line normalization (XML
// §2.11: a bare '\r' becomes '\n', a '\r\n' pair becomes a single '\n') and
// rejecting the literal sequence "]]>" and any illegal Char.
//
// The caller (the Main-state loop in parser.go) is responsible for
// dispatching '&' to recognizeReference instead of folding it into this
// run - per spec.md §4.5, a run of plain CharData and a single resolved
// reference are reported as separate Characters events.
func recognizePlainCharacters(c Cursor) (string, bool, Cursor, error) {
	rest := c.RestBytes()
	end := len(rest)
	for i, b := range rest {
		if b == '<' || b == '&' {
			end = i
			break
		}
	}
	raw := rest[:end]

	if idx := bytes.Index(raw, illegalCDataEnd); idx != -1 {
		return "", false, c, errAt(KindIllegalCDataSectionEnd, c.Offset()+idx, "")
	}

	if err := validateChars(raw, c.Offset()); err != nil {
		return "", false, c, err
	}

	next := c.Advance(end)
	if !bytes.ContainsRune(raw, '\r') {
		return unsafeString(raw), false, next, nil
	}

	normalized := normalizeEOL(raw)
	return unsafeString(normalized), true, next, nil
}

var illegalCDataEnd = []byte("]]>")

// validateChars walks raw rune-by-rune asserting every codepoint satisfies
// the Char production, returning InvalidCharacter at the first violation
// with an offset relative to base.
func validateChars(raw []byte, base int) error {
	i := 0
	for i < len(raw) {
		r, width := utf8.DecodeRune(raw[i:])
		if !charclass.IsChar(r) {
			return errAt(KindInvalidCharacter, base+i, string(r))
		}
		i += width
	}
	return nil
}

// normalizeEOL folds "\r\n" to "\n" and a bare "\r" to "\n".
func normalizeEOL(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\r' {
			out = append(out, '\n')
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			continue
		}
		out = append(out, raw[i])
	}
	return out
}
