package zxml

import (
	"bytes"
	"strings"
)

var piEnd = []byte("?>")
var piWhitespace = " \t\r\n"

// recognizePI recognizes a processing instruction's target and data,
// assuming the cursor is positioned just past the opening "<?". The target
// MUST NOT case-insensitively equal "xml" - that production is reserved
// for the XML declaration (recognized separately, only at offset 0).
func recognizePI(c Cursor) (target string, data string, hasData bool, newCursor Cursor, err error) {
	start := c.Offset()
	name, c2, err := recognizeName(c)
	if err != nil {
		return "", "", false, c, err
	}
	target = name.String()
	if strings.EqualFold(target, "xml") {
		return "", "", false, c, errAt(KindInvalidPITarget, start, target)
	}
	c = c2

	rest := c.RestBytes()
	idx := bytes.Index(rest, piEnd)
	if idx == -1 {
		return "", "", false, c, errAt(KindExpectToken, c.Offset(), "?>")
	}
	content := rest[:idx]
	next := c.Advance(idx + 2)

	trimmed := bytes.TrimLeft(content, piWhitespace)
	if len(trimmed) == 0 {
		return target, "", false, next, nil
	}
	if err := validateChars(trimmed, c.Offset()); err != nil {
		return "", "", false, c, err
	}
	return target, unsafeString(trimmed), true, next, nil
}
