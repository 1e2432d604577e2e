package zxml

import "github.com/outerhaven/zxml/internal/simdscan"

var whitespaceClass = simdscan.BuildClassTable(func(b byte) bool {
	return b == 0x20 || b == 0x09 || b == 0x0D || b == 0x0A
})

// skipWhitespace returns how many bytes of leading whitespace c has,
// using the SIMD-optimizable bulk scanner (spec.md §4.2) rather than a
// per-byte charclass.IsWhitespace loop.
func skipWhitespace(c Cursor) int {
	return simdscan.Scan(c.RestBytes(), whitespaceClass)
}

// recognizeS consumes one or more XML whitespace characters (the S
// production). Fails with ExpectedWhitespace if none are present.
func recognizeS(c Cursor) (Cursor, error) {
	n := skipWhitespace(c)
	if n == 0 {
		return c, errAt(KindExpectedWhitespace, c.Offset(), "")
	}
	return c.Advance(n), nil
}

// skipOptionalS consumes zero or more whitespace characters.
func skipOptionalS(c Cursor) Cursor {
	return c.Advance(skipWhitespace(c))
}
