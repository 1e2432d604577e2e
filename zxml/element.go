package zxml

// recognizeTag recognizes both StartTag and EndTag, assuming the cursor is
// positioned just past the opening '<'. Adapted from the teacher's
// parseElement (fastxml.go) - which locates the whole element by its
// trailing '>' and tolerates duplicate/invalid attributes - generalized
// into a streaming, fatal-on-first-violation recognizer that enforces
// spec.md §4.5's invariant 4 (attribute-name uniqueness within a tag).
func recognizeTag(c Cursor) (isEnd bool, name Name, attrs []Attribute, selfClosing bool, newCursor Cursor, err error) {
	if b, ok := c.NextByte(0); ok && b == '/' {
		c = c.Advance(1)
		name, c, err = recognizeName(c)
		if err != nil {
			return false, Name{}, nil, false, c, err
		}
		c = skipOptionalS(c)
		b, ok := c.NextByte(0)
		if !ok || b != '>' {
			return false, Name{}, nil, false, c, errAt(KindExpectedElementEnd, c.Offset(), "")
		}
		return true, name, nil, false, c.Advance(1), nil
	}

	name, c, err = recognizeName(c)
	if err != nil {
		return false, Name{}, nil, false, c, err
	}

	var attrs2 []Attribute
	seen := map[string]struct{}{}
	for {
		n := skipWhitespace(c)
		hadSpace := n > 0
		c = c.Advance(n)

		b, ok := c.NextByte(0)
		if !ok {
			return false, Name{}, nil, false, c, errAt(KindUnexpectedEOF, c.Offset(), "")
		}
		if b == '/' {
			c = c.Advance(1)
			b2, ok2 := c.NextByte(0)
			if !ok2 || b2 != '>' {
				return false, Name{}, nil, false, c, errAt(KindExpectedElementEnd, c.Offset(), "")
			}
			return false, name, attrs2, true, c.Advance(1), nil
		}
		if b == '>' {
			return false, name, attrs2, false, c.Advance(1), nil
		}
		if !hadSpace {
			return false, Name{}, nil, false, c, errAt(KindExpectedWhitespace, c.Offset(), "")
		}

		attrName, c2, aerr := recognizeName(c)
		if aerr != nil {
			return false, Name{}, nil, false, c2, aerr
		}
		c, aerr = recognizeEq(c2)
		if aerr != nil {
			return false, Name{}, nil, false, c, aerr
		}
		value, owned, c3, aerr := recognizeAttValue(c)
		if aerr != nil {
			return false, Name{}, nil, false, c3, aerr
		}
		c = c3

		key := attrName.String()
		if _, dup := seen[key]; dup {
			return false, Name{}, nil, false, c, errAt(KindNonUniqueAttribute, c.Offset(), key)
		}
		seen[key] = struct{}{}
		attrs2 = append(attrs2, Attribute{Name: attrName, Value: value, Owned: owned})
	}
}
