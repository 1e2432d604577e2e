package zxml

import (
	"strconv"

	"github.com/outerhaven/zxml/internal/charclass"
)

// predefinedEntities is the closed set of named entities XML 1.0 defines
// without a DTD. Unlike the teacher (fastxml.go's entities map, seeded from
// encoding/xml's HTMLEntity table), zxml recognizes only these five per
// spec.md §4.4 "EntityRef" - anything else is UnknownEntity.
var predefinedEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": "\"",
}

// recognizeReference recognizes a CharRef (&#dec; or &#xhex;) or EntityRef
// (&name;), assuming c currently points at the leading '&'. It returns the
// expanded text and the cursor positioned just past the trailing ';'.
func recognizeReference(c Cursor) (string, Cursor, error) {
	start := c.Offset()
	b, ok := c.NextByte(0)
	if !ok || b != '&' {
		return "", c, errAt(KindIllegalReference, c.Offset(), "")
	}
	c = c.Advance(1)

	if b2, ok := c.NextByte(0); ok && b2 == '#' {
		c = c.Advance(1)
		hex := false
		if b3, ok := c.NextByte(0); ok && (b3 == 'x' || b3 == 'X') {
			hex = true
			c = c.Advance(1)
		}
		rest := c.RestBytes()
		idx := indexByte(rest, ';')
		if idx == -1 {
			return "", c, errAt(KindExpectToken, c.Offset(), ";")
		}
		lexeme := string(rest[:idx])
		next := c.Advance(idx + 1)
		base := 10
		if hex {
			base = 16
		}
		num, err := strconv.ParseInt(lexeme, base, 32)
		if err != nil {
			return "", next, errAt(KindInvalidCharacterReference, start, lexeme)
		}
		r := rune(num)
		if !charclass.IsChar(r) {
			return "", next, errAt(KindInvalidCharacterReference, start, lexeme)
		}
		return string(r), next, nil
	}

	rest := c.RestBytes()
	idx := indexByte(rest, ';')
	if idx == -1 {
		return "", c, errAt(KindExpectToken, c.Offset(), ";")
	}
	name := string(rest[:idx])
	next := c.Advance(idx + 1)
	expansion, ok := predefinedEntities[name]
	if !ok {
		return "", next, errAt(KindUnknownEntity, start, name)
	}
	return expansion, next, nil
}

func indexByte(b []byte, needle byte) int {
	for i, c := range b {
		if c == needle {
			return i
		}
	}
	return -1
}
