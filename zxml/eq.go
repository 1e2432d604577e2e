package zxml

// recognizeEq recognizes the Eq production: S? '=' S?
func recognizeEq(c Cursor) (Cursor, error) {
	c = skipOptionalS(c)
	b, ok := c.NextByte(0)
	if !ok || b != '=' {
		return c, errAt(KindExpectedEquals, c.Offset(), "")
	}
	c = c.Advance(1)
	c = skipOptionalS(c)
	return c, nil
}
