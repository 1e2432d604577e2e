package zxml

import "github.com/outerhaven/zxml/internal/charclass"

// recognizeName recognizes the Name production: NameStartChar NameChar*.
func recognizeName(c Cursor) (Name, Cursor, error) {
	if c.AtEOF() {
		return Name{}, c, errAt(KindUnexpectedEOF, c.Offset(), "")
	}
	start := c
	r, width := c.NextRune()
	if !charclass.IsNameStartChar(r) {
		return Name{}, c, errAt(KindIllegalNameStartChar, c.Offset(), string(r))
	}
	c = c.Advance(width)
	for !c.AtEOF() {
		r, width := c.NextRune()
		if !charclass.IsNameChar(r) {
			break
		}
		c = c.Advance(width)
	}
	raw, _ := start.AdvanceSlice(c.Offset() - start.Offset())
	return parseName(unsafeString(raw)), c, nil
}
