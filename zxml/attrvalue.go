package zxml

import "github.com/outerhaven/zxml/internal/charclass"

// recognizeAttValue recognizes the AttValue production: a quoted value with
// '<' forbidden inside, '&' introducing a reference, and (per spec.md
// §4.5 "Attribute-value normalization") every literal whitespace character
// replaced with a single #x20 - the CDATA-style normalization; the
// stricter non-CDATA normalization is out of scope since DTDs (and
// therefore attribute typing) are out of scope.
func recognizeAttValue(c Cursor) (string, bool, Cursor, error) {
	quote, ok := c.NextByte(0)
	if !ok || (quote != '"' && quote != '\'') {
		return "", false, c, errAt(KindExpectedAttrValue, c.Offset(), "")
	}
	start := c.Offset()
	c = c.Advance(1)

	var buf []byte
	owned := false
	flush := c // cursor marking the start of the current unflushed plain run

	appendRun := func(upto Cursor) {
		if upto.Offset() > flush.Offset() {
			buf = append(buf, flush.buf[flush.pos:upto.pos]...)
		}
	}

	for {
		b, ok := c.NextByte(0)
		if !ok {
			return "", false, c, errAt(KindExpectedAttrValue, start, "")
		}
		if b == quote {
			if !owned {
				raw := c.buf[flush.pos:c.pos]
				return unsafeString(raw), false, c.Advance(1), nil
			}
			appendRun(c)
			return unsafeString(buf), true, c.Advance(1), nil
		}
		if b == '<' {
			return "", false, c, errAt(KindIllegalAttributeValue, c.Offset(), "<")
		}
		if b == '&' {
			owned = true
			appendRun(c)
			expansion, next, err := recognizeReference(c)
			if err != nil {
				return "", false, next, err
			}
			buf = append(buf, expansion...)
			c = next
			flush = c
			continue
		}
		r, width := c.NextRune()
		if !charclass.IsChar(r) {
			return "", false, c, errAt(KindInvalidCharacter, c.Offset(), string(r))
		}
		if b == '\t' || b == '\n' || b == '\r' {
			owned = true
			appendRun(c)
			buf = append(buf, ' ')
			c = c.Advance(width)
			// End-of-line normalization (XML 1.0 §2.11) happens before
			// attribute-value normalization: a "\r\n" pair collapses to a
			// single space, matching normalizeEOL's treatment of the same
			// pair in character data (chardata.go).
			if b == '\r' {
				if next, ok := c.NextByte(0); ok && next == '\n' {
					c = c.Advance(1)
				}
			}
			flush = c
			continue
		}
		c = c.Advance(width)
	}
}
