// Package visitor is a push-style façade over *zxml.Parser: instead of
// pulling Event values, a caller implements Visitor and drives the parser
// with repeated calls to ParseNext. Adapted from the teacher's
// callback-based RawAttrs/Attrs (element.go): that package calls
// f(key, value []byte) bool once per attribute, stopping early if f
// returns false; AttrIter generalizes the same "stop on false" shape into
// a pull-style iterator that the façade drains automatically before
// returning from VisitStartElement, so a visitor that stops early never
// desynchronizes the underlying parser (spec.md §4.7).
package visitor

import "github.com/outerhaven/zxml"

// StringVisitor receives a piece of text either borrowed from the input
// buffer or owned (freshly allocated because normalization produced new
// characters). Exactly one of VisitBorrowed/VisitOwned is called.
type StringVisitor interface {
	VisitBorrowed(s string)
	VisitOwned(s string)
}

// BorrowedString and OwnedString are the two StringVisitor behaviors
// spec.md §4.7 requires: the first simply records whatever string it's
// given (zero-copy if the source was borrowed), the second copies borrowed
// text so it no longer aliases the input buffer.
type BorrowedString struct{ Value string }

func (b *BorrowedString) VisitBorrowed(s string) { b.Value = s }
func (b *BorrowedString) VisitOwned(s string)    { b.Value = s }

// OwnedString copies borrowed text into a new backing array, so the result
// remains valid even after the input buffer is reused or freed; text that
// is already owned is stored as is.
type OwnedString struct{ Value string }

func (o *OwnedString) VisitBorrowed(s string) { o.Value = string([]byte(s)) }
func (o *OwnedString) VisitOwned(s string)    { o.Value = s }

func visit(sv StringVisitor, s string, owned bool) {
	if owned {
		sv.VisitOwned(s)
	} else {
		sv.VisitBorrowed(s)
	}
}

// AttrIter is a pull-style iterator over the attributes of the
// StartElement event currently being visited. Next reports one attribute
// per call via the supplied key/value visitors, returning false once
// exhausted.
type AttrIter struct {
	attrs []zxml.Attribute
	pos   int
}

// Next visits the next attribute's name and value, returning false when no
// attributes remain.
func (it *AttrIter) Next(keyVisitor, valueVisitor StringVisitor) bool {
	if it.pos >= len(it.attrs) {
		return false
	}
	a := it.attrs[it.pos]
	it.pos++
	visit(keyVisitor, a.Name.String(), false)
	visit(valueVisitor, a.Value, a.Owned)
	return true
}

// drain consumes any attributes the visitor didn't - the "MUST NOT
// desynchronize" guarantee from spec.md §4.7.
func (it *AttrIter) drain() {
	it.pos = len(it.attrs)
}

// Visitor is the push-style callback set driven by ParseNext. Every method
// has a default no-op via EventVisitor so callers only implement the
// events they care about.
type Visitor interface {
	VisitStartElement(name zxml.Name, attrs *AttrIter, empty bool)
	VisitEndElement(name zxml.Name)
	VisitCharacters(text string, owned bool)
	VisitPI(target, data string, hasData bool)
	VisitComment(text string)
	VisitDocType(name zxml.Name, shell string)
	VisitXMLDecl(version, encoding string, hasEncoding, standalone, hasStandalone bool)
}

// EventVisitor is an embeddable no-op implementation of Visitor: embed it
// and override only the methods relevant to the caller.
type EventVisitor struct{}

func (EventVisitor) VisitStartElement(zxml.Name, *AttrIter, bool) {}
func (EventVisitor) VisitEndElement(zxml.Name)                    {}
func (EventVisitor) VisitCharacters(string, bool)                 {}
func (EventVisitor) VisitPI(string, string, bool)                 {}
func (EventVisitor) VisitComment(string)                          {}
func (EventVisitor) VisitDocType(zxml.Name, string)                {}
func (EventVisitor) VisitXMLDecl(string, string, bool, bool, bool) {}

// Driver wraps a *zxml.Parser and drives a Visitor with ParseNext.
type Driver struct {
	parser *zxml.Parser
}

// New creates a Driver over parser.
func New(parser *zxml.Parser) *Driver {
	return &Driver{parser: parser}
}

// ParseNext advances the parser by one event and dispatches it to v,
// returning false at clean EOF. The attribute iterator for a StartElement
// is drained automatically once VisitStartElement returns, regardless of
// whether v consumed it.
func (d *Driver) ParseNext(v Visitor) (bool, error) {
	ev, ok, err := d.parser.Next()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	switch ev.Kind {
	case zxml.EventStartElement:
		it := &AttrIter{attrs: d.parser.Attributes()}
		v.VisitStartElement(ev.Name, it, ev.Empty)
		it.drain()
	case zxml.EventEndElement:
		v.VisitEndElement(ev.Name)
	case zxml.EventCharacters:
		v.VisitCharacters(ev.Text, ev.Owned)
	case zxml.EventPI:
		v.VisitPI(ev.Target, ev.Data, ev.HasData)
	case zxml.EventComment:
		v.VisitComment(ev.Text)
	case zxml.EventDocType:
		v.VisitDocType(ev.Name, ev.Text)
	case zxml.EventXMLDecl:
		v.VisitXMLDecl(ev.Version, ev.Encoding, ev.HasEncoding, ev.Standalone, ev.HasStandalone)
	}
	return true, nil
}
