package zxml

import "bytes"

var commentEnd = []byte("-->")
var doubleHyphen = []byte("--")

// recognizeComment recognizes a comment's content, assuming the cursor is
// positioned just past the opening "<!--". Content containing "--" is
// rejected (XML forbids "--" inside comments, including at the very end
// before "-->" unless it's exactly the closing delimiter).
func recognizeComment(c Cursor) (string, Cursor, error) {
	rest := c.RestBytes()
	idx := bytes.Index(rest, commentEnd)
	if idx == -1 {
		return "", c, errAt(KindExpectToken, c.Offset(), "-->")
	}
	content := rest[:idx]
	if bytes.Contains(content, doubleHyphen) || bytes.HasSuffix(content, []byte("-")) {
		return "", c, errAt(KindCommentColonColon, c.Offset(), "")
	}
	if err := validateChars(content, c.Offset()); err != nil {
		return "", c, err
	}
	return unsafeString(content), c.Advance(idx + 3), nil
}
