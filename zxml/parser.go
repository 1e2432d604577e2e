package zxml

import "github.com/outerhaven/zxml/internal/charclass"

type parserState int

const (
	stateXMLDecl parserState = iota
	statePrologue
	stateMain
	stateEpilogue
)

// Parser is a streaming, zero-copy XML 1.0 pull parser. It is driven by
// repeated calls to Next, never recovers from an error, and never blocks:
// the entire input must already be in memory (see encguess for turning a
// byte stream plus encoding sniffing into the buffer a Parser consumes).
//
// Adapted from the teacher's Decoder (decoder.go/fastxml.go): the cursor
// and self-closing-element lookahead (nextToken/emptyPending) are the same
// idea, generalized from a lenient best-effort reader into a full state
// machine that enforces every well-formedness invariant in spec.md §4.5.
type Parser struct {
	cursor Cursor
	state  parserState

	depth     int
	elemStack []Name

	attrs []Attribute

	sawDoctype   bool
	emptyPending *Name

	fatal error
}

// New creates a Parser over input. input must not be modified for as long
// as the Parser (or any Event/Attribute it returned) is in use.
func New(input []byte) *Parser {
	return &Parser{
		cursor: NewCursor(input),
		state:  stateXMLDecl,
	}
}

// Offset returns the parser's current byte offset into the input. It is
// monotonically non-decreasing across calls to Next.
func (p *Parser) Offset() int {
	return p.cursor.Offset()
}

// Attributes returns the attributes of the most recently reported
// StartElement event, in source order. The returned slice is valid only
// until the next call to Next.
func (p *Parser) Attributes() []Attribute {
	return p.attrs
}

// Next advances the parser by one event. It returns (Event{}, false, nil)
// at a clean end of document, and (Event{}, false, err) on the first
// well-formedness violation; every subsequent call returns that same
// error (spec.md §7: the parser never recovers from a fatal error).
func (p *Parser) Next() (Event, bool, error) {
	if p.fatal != nil {
		return Event{}, false, p.fatal
	}
	if p.emptyPending != nil {
		name := *p.emptyPending
		p.emptyPending = nil
		p.elemStack = p.elemStack[:len(p.elemStack)-1]
		p.depth--
		if p.depth == 0 {
			p.state = stateEpilogue
		}
		return Event{Kind: EventEndElement, Name: name}, true, nil
	}

	ev, ok, err := p.advance()
	if err != nil {
		if e, isZ := err.(*Error); isZ && e.Offset == 0 {
			e.Offset = p.cursor.Offset()
		}
		p.fatal = err
		return Event{}, false, err
	}
	return ev, ok, nil
}

func (p *Parser) advance() (Event, bool, error) {
	if p.state == stateXMLDecl {
		p.state = statePrologue
		if p.cursor.Offset() == 0 && p.cursor.HasPrefix("<?xml") {
			next, ok := p.cursor.NextByte(5)
			if !ok || !charclass.IsNameChar(rune(next)) {
				c := p.cursor.Advance(5)
				decl, c2, err := recognizeXMLDecl(c)
				if err != nil {
					return Event{}, false, err
				}
				p.cursor = c2
				return Event{
					Kind:          EventXMLDecl,
					Version:       decl.Version,
					Encoding:      decl.Encoding,
					HasEncoding:   decl.HasEncoding,
					Standalone:    decl.Standalone,
					HasStandalone: decl.HasStandalone,
				}, true, nil
			}
		}
	}

	switch p.state {
	case statePrologue:
		return p.stepPrologue()
	case stateMain:
		return p.stepMain()
	case stateEpilogue:
		return p.stepEpilogue()
	default:
		panic("zxml: unreachable parser state")
	}
}

func (p *Parser) stepPrologue() (Event, bool, error) {
	for {
		if p.cursor.AtEOF() {
			return Event{}, false, errAt(KindUnexpectedEOF, p.cursor.Offset(), "")
		}
		if n := skipWhitespace(p.cursor); n > 0 {
			p.cursor = p.cursor.Advance(n)
			continue
		}
		b, _ := p.cursor.NextByte(0)
		if b != '<' {
			return Event{}, false, errAt(KindUnexpectedCharacter, p.cursor.Offset(), string(rune(b)))
		}

		kind, ev, name, attrs, selfClosing, err := p.parseMarkup()
		if err != nil {
			return Event{}, false, err
		}
		switch kind {
		case markupPI, markupComment:
			return ev, true, nil
		case markupDoctype:
			if p.sawDoctype {
				return Event{}, false, errAt(KindExpectToken, p.cursor.Offset(), "at most one DOCTYPE")
			}
			p.sawDoctype = true
			return ev, true, nil
		case markupStartTag:
			p.state = stateMain
			p.beginElement(name, attrs, selfClosing)
			return Event{Kind: EventStartElement, Name: name, Empty: selfClosing}, true, nil
		default:
			return Event{}, false, errAt(KindUnexpectedCharacter, p.cursor.Offset(), "")
		}
	}
}

func (p *Parser) stepMain() (Event, bool, error) {
	if p.cursor.AtEOF() {
		return Event{}, false, errAt(KindOpenElementAtEOF, p.cursor.Offset(), "")
	}
	b, _ := p.cursor.NextByte(0)
	switch b {
	case '<':
		kind, ev, name, attrs, selfClosing, err := p.parseMarkup()
		if err != nil {
			return Event{}, false, err
		}
		switch kind {
		case markupStartTag:
			p.beginElement(name, attrs, selfClosing)
			return Event{Kind: EventStartElement, Name: name, Empty: selfClosing}, true, nil
		case markupEndTag:
			return p.endElement(name)
		case markupPI, markupComment:
			return ev, true, nil
		case markupCDATA:
			return ev, true, nil
		default:
			return Event{}, false, errAt(KindUnexpectedCharacter, p.cursor.Offset(), "")
		}
	case '&':
		expansion, next, err := recognizeReference(p.cursor)
		if err != nil {
			return Event{}, false, err
		}
		p.cursor = next
		return Event{Kind: EventCharacters, Text: expansion, Owned: true}, true, nil
	default:
		text, owned, next, err := recognizePlainCharacters(p.cursor)
		if err != nil {
			return Event{}, false, err
		}
		p.cursor = next
		return Event{Kind: EventCharacters, Text: text, Owned: owned}, true, nil
	}
}

func (p *Parser) stepEpilogue() (Event, bool, error) {
	for {
		if p.cursor.AtEOF() {
			return Event{}, false, nil
		}
		if n := skipWhitespace(p.cursor); n > 0 {
			p.cursor = p.cursor.Advance(n)
			continue
		}
		b, _ := p.cursor.NextByte(0)
		if b != '<' {
			return Event{}, false, errAt(KindExpectedDocumentEnd, p.cursor.Offset(), "")
		}
		kind, ev, _, _, _, err := p.parseMarkup()
		if err != nil {
			return Event{}, false, err
		}
		switch kind {
		case markupPI, markupComment:
			return ev, true, nil
		default:
			return Event{}, false, errAt(KindExpectedDocumentEnd, p.cursor.Offset(), "")
		}
	}
}

func (p *Parser) beginElement(name Name, attrs []Attribute, selfClosing bool) {
	p.elemStack = append(p.elemStack, name)
	p.attrs = attrs
	p.depth++
	if selfClosing {
		n := name
		p.emptyPending = &n
	}
}

func (p *Parser) endElement(name Name) (Event, bool, error) {
	top := p.elemStack[len(p.elemStack)-1]
	p.elemStack = p.elemStack[:len(p.elemStack)-1]
	if top.String() != name.String() {
		return Event{}, false, errAt(KindWrongETagName, p.cursor.Offset(), top.String())
	}
	p.depth--
	if p.depth == 0 {
		p.state = stateEpilogue
	}
	return Event{Kind: EventEndElement, Name: name}, true, nil
}
