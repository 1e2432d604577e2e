package zxml

// markupKind discriminates the result of parseMarkup, the dispatcher used
// by all three parser states to decide among STag, ETag, PI, Comment,
// CDATA, and DocType by the bounded lookahead spec.md §4.4 describes (the
// alternatives have distinct 2-9 byte prefixes, so the dispatch below never
// backtracks).
type markupKind int

const (
	markupPI markupKind = iota
	markupComment
	markupCDATA
	markupDoctype
	markupStartTag
	markupEndTag
)

// parseMarkup recognizes whatever follows a '<' at the parser's current
// cursor and advances the cursor past it. It does not itself enforce which
// constructs are legal in the caller's state - stepPrologue/stepMain/
// stepEpilogue each reject markupKinds that aren't legal for them.
func (p *Parser) parseMarkup() (kind markupKind, ev Event, name Name, attrs []Attribute, selfClosing bool, err error) {
	c := p.cursor.Advance(1) // past '<'
	b, ok := c.NextByte(0)
	if !ok {
		err = errAt(KindUnexpectedEOF, c.Offset(), "")
		return
	}

	switch b {
	case '?':
		c = c.Advance(1)
		target, data, hasData, next, perr := recognizePI(c)
		if perr != nil {
			err = perr
			return
		}
		p.cursor = next
		kind = markupPI
		ev = Event{Kind: EventPI, Target: target, Data: data, HasData: hasData}
		return

	case '!':
		c = c.Advance(1)
		switch {
		case c.HasPrefix("--"):
			c = c.Advance(2)
			text, next, perr := recognizeComment(c)
			if perr != nil {
				err = perr
				return
			}
			p.cursor = next
			kind = markupComment
			ev = Event{Kind: EventComment, Text: text}
			return
		case c.HasPrefix("[CDATA["):
			c = c.Advance(7)
			text, next, perr := recognizeCDSect(c)
			if perr != nil {
				err = perr
				return
			}
			p.cursor = next
			kind = markupCDATA
			owned := false
			if containsCR(text) {
				normalized := normalizeEOL([]byte(text))
				text = unsafeString(normalized)
				owned = true
			}
			ev = Event{Kind: EventCharacters, Text: text, Owned: owned}
			return
		case c.HasPrefix("DOCTYPE"):
			c = c.Advance(7)
			dname, shell, next, perr := recognizeDoctype(c)
			if perr != nil {
				err = perr
				return
			}
			p.cursor = next
			kind = markupDoctype
			ev = Event{Kind: EventDocType, Name: dname, Text: shell}
			return
		default:
			err = errAt(KindExpectToken, c.Offset(), "--|[CDATA[|DOCTYPE")
			return
		}

	default:
		isEnd, tname, tattrs, selfClose, next, perr := recognizeTag(c)
		if perr != nil {
			err = perr
			return
		}
		p.cursor = next
		name = tname
		attrs = tattrs
		selfClosing = selfClose
		if isEnd {
			kind = markupEndTag
		} else {
			kind = markupStartTag
		}
		return
	}
}

func containsCR(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\r' {
			return true
		}
	}
	return false
}
