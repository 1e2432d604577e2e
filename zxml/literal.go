package zxml

// recognizeQuoted recognizes a quoted literal: '"' ... '"' or "'" ... "'".
// It does not interpret the content (no entity expansion) - used for the
// XML/encoding/standalone literals in XmlDecl and for SystemLiteral.
func recognizeQuoted(c Cursor) (string, Cursor, error) {
	q, ok := c.NextByte(0)
	if !ok || (q != '"' && q != '\'') {
		return "", c, errAt(KindExpectedAttrValue, c.Offset(), "")
	}
	c = c.Advance(1)
	idx := indexByte(c.RestBytes(), q)
	if idx == -1 {
		return "", c, errAt(KindUnexpectedEOF, c.Offset(), "")
	}
	content := string(c.RestBytes()[:idx])
	return content, c.Advance(idx + 1), nil
}

func expectLiteral(c Cursor, lit string) (Cursor, error) {
	if !c.HasPrefix(lit) {
		return c, errAt(KindExpectToken, c.Offset(), lit)
	}
	return c.Advance(len(lit)), nil
}
