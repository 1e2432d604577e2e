package canon

import (
	"io"

	"github.com/outerhaven/zxml"
)

// ParserTokenReader adapts a *zxml.Parser into a RawTokenReader. Element
// and attribute names are rendered exactly as zxml.Name.String() returns
// them (raw "prefix:local" syntax, unresolved) - callers who want
// namespace-resolved names should build their own adapter over package ns
// instead (its QName carries the resolved URI, which this simplified
// canonical form has no slot for anyway).
type ParserTokenReader struct {
	parser *zxml.Parser
}

// NewParserTokenReader wraps parser.
func NewParserTokenReader(parser *zxml.Parser) *ParserTokenReader {
	return &ParserTokenReader{parser: parser}
}

// RawToken implements RawTokenReader, returning io.EOF at a clean end of
// document.
func (a *ParserTokenReader) RawToken() (Token, error) {
	ev, ok, err := a.parser.Next()
	if err != nil {
		return Token{}, err
	}
	if !ok {
		return Token{}, io.EOF
	}

	switch ev.Kind {
	case zxml.EventStartElement:
		rawAttrs := a.parser.Attributes()
		attrs := make([]Attr, len(rawAttrs))
		for i, ra := range rawAttrs {
			attrs[i] = Attr{Name: ra.Name.String(), Value: ra.Value}
		}
		return Token{Kind: TokenStartElement, Name: ev.Name.String(), Attrs: attrs}, nil
	case zxml.EventEndElement:
		return Token{Kind: TokenEndElement, Name: ev.Name.String()}, nil
	case zxml.EventCharacters:
		return Token{Kind: TokenCharData, Text: ev.Text}, nil
	case zxml.EventPI:
		return Token{Kind: TokenProcInst, Target: ev.Target, Inst: ev.Data}, nil
	case zxml.EventComment:
		return Token{Kind: TokenComment}, nil
	case zxml.EventDocType:
		return Token{Kind: TokenDocType}, nil
	case zxml.EventXMLDecl:
		return Token{Kind: TokenXMLDecl, Version: ev.Version}, nil
	default:
		return Token{}, io.EOF
	}
}
