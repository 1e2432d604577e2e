package zxml

import "bytes"

var cdataEnd = []byte("]]>")

// recognizeCDSect recognizes a CDATA section's content verbatim (no entity
// or character-reference decoding), assuming the cursor is positioned just
// past the opening "<![CDATA[".
func recognizeCDSect(c Cursor) (string, Cursor, error) {
	rest := c.RestBytes()
	idx := bytes.Index(rest, cdataEnd)
	if idx == -1 {
		return "", c, errAt(KindExpectToken, c.Offset(), "]]>")
	}
	content := rest[:idx]
	if err := validateChars(content, c.Offset()); err != nil {
		return "", c, err
	}
	return unsafeString(content), c.Advance(idx + 3), nil
}
