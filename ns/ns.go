// Package ns layers XML namespace resolution (XML Namespaces 1.0) over a
// *zxml.Parser. It is a thin NsLayer wrapper (spec.md §4.6): it scans the
// attributes of every StartElement for xmlns/xmlns:* declarations, binds
// them on a flat stack, resolves element and attribute names to
// (namespace?, local) pairs, and re-validates attribute uniqueness under
// the resolved names instead of the raw ones.
package ns

import (
	"strings"

	"github.com/outerhaven/zxml"
	"github.com/outerhaven/zxml/internal/nsstack"
)

// XMLNamespaceURI and XMLNSNamespaceURI are the two namespace URIs bound by
// definition to the "xml" and "xmlns" prefixes; these bindings are
// immutable and may not be redeclared to any other URI (spec.md §3
// "Qualified name").
const (
	XMLNamespaceURI   = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespaceURI = "http://www.w3.org/2000/xmlns/"
)

// QName is a name after namespace resolution: an optional namespace URI
// (empty if unbound) plus the local part.
type QName struct {
	Namespace string
	HasNS     bool
	Local     string
}

// ResolvedAttribute is an Attribute after namespace resolution.
type ResolvedAttribute struct {
	Name  QName
	Value string
	Owned bool
}

// EventKind is an alias of zxml.EventKind; ns defines its own Event type
// (below) so that StartElement/EndElement can carry a QName instead of a
// zxml.Name.
type EventKind = zxml.EventKind

const (
	EventStartElement = zxml.EventStartElement
	EventEndElement   = zxml.EventEndElement
	EventCharacters   = zxml.EventCharacters
	EventXMLDecl      = zxml.EventXMLDecl
	EventPI           = zxml.EventPI
	EventComment      = zxml.EventComment
	EventDocType      = zxml.EventDocType
)

// Event is the ns-layer event: StartElement/EndElement carry a QName in
// place of zxml.Event's raw Name; every other field is passed through
// unchanged from the underlying zxml.Event.
type Event struct {
	Kind EventKind

	Name  QName
	Empty bool

	Text  string
	Owned bool

	Target  string
	Data    string
	HasData bool

	Version       string
	Encoding      string
	HasEncoding   bool
	Standalone    bool
	HasStandalone bool
}

// Scope wraps a *zxml.Parser, adding namespace binding and resolution.
type Scope struct {
	inner *zxml.Parser
	stack nsstack.Stack
	attrs []ResolvedAttribute
}

// New wraps parser with namespace resolution.
func New(parser *zxml.Parser) *Scope {
	return &Scope{inner: parser}
}

// Attributes returns the resolved attributes of the most recently reported
// StartElement event, in source order.
func (s *Scope) Attributes() []ResolvedAttribute {
	return s.attrs
}

// Offset delegates to the underlying parser's current byte offset.
func (s *Scope) Offset() int {
	return s.inner.Offset()
}

// Resolve looks up the URI currently bound to prefix (used outside the
// context of a single event, e.g. to resolve a QName found in element
// content such as an XInclude href).
func (s *Scope) Resolve(prefix string) (string, bool) {
	if prefix == "xml" {
		return XMLNamespaceURI, true
	}
	if prefix == "xmlns" {
		return XMLNSNamespaceURI, true
	}
	return s.stack.Resolve(prefix)
}

// Next advances the underlying parser by one event and resolves namespaces
// on StartElement/EndElement.
func (s *Scope) Next() (Event, bool, error) {
	ev, ok, err := s.inner.Next()
	if err != nil || !ok {
		return Event{}, ok, err
	}

	switch ev.Kind {
	case zxml.EventStartElement:
		return s.startElement(ev)
	case zxml.EventEndElement:
		return s.endElement(ev)
	default:
		return Event{
			Kind: ev.Kind, Text: ev.Text, Owned: ev.Owned,
			Target: ev.Target, Data: ev.Data, HasData: ev.HasData,
			Version: ev.Version, Encoding: ev.Encoding, HasEncoding: ev.HasEncoding,
			Standalone: ev.Standalone, HasStandalone: ev.HasStandalone,
		}, true, nil
	}
}

func (s *Scope) startElement(ev zxml.Event) (Event, bool, error) {
	rawAttrs := s.inner.Attributes()

	var bindings []nsstack.Binding
	var plain []zxml.Attribute
	for _, a := range rawAttrs {
		switch {
		case a.Name.Prefix == "" && a.Name.Local == "xmlns":
			if a.Value == "" {
				bindings = append(bindings, nsstack.Binding{Prefix: "", Unbound: true})
				continue
			}
			if err := validateBoundURI("", a.Value, s.inner.Offset()); err != nil {
				return Event{}, false, err
			}
			bindings = append(bindings, nsstack.Binding{Prefix: "", URI: a.Value})
		case a.Name.Prefix == "xmlns":
			prefix := a.Name.Local
			if a.Value == "" {
				return Event{}, false, illegalNS(s.inner.Offset(), a.Value)
			}
			if err := validateBoundURI(prefix, a.Value, s.inner.Offset()); err != nil {
				return Event{}, false, err
			}
			bindings = append(bindings, nsstack.Binding{Prefix: prefix, URI: a.Value})
		default:
			plain = append(plain, a)
		}
	}
	s.stack.Push(bindings)

	name, err := s.resolveElementName(ev.Name)
	if err != nil {
		s.stack.Pop()
		return Event{}, false, err
	}

	resolved := make([]ResolvedAttribute, 0, len(plain))
	seen := map[string]struct{}{}
	for _, a := range plain {
		qn := QName{Local: a.Name.Local}
		if a.Name.Prefix != "" {
			uri, ok := s.Resolve(a.Name.Prefix)
			if !ok {
				s.stack.Pop()
				return Event{}, false, &zxml.Error{Kind: zxml.KindUnknownNamespacePrefix, Offset: s.inner.Offset(), Payload: a.Name.Prefix}
			}
			qn.Namespace = uri
			qn.HasNS = true
		}
		key := qn.Namespace + "\x00" + qn.Local
		if _, dup := seen[key]; dup {
			s.stack.Pop()
			return Event{}, false, &zxml.Error{Kind: zxml.KindNonUniqueAttribute, Offset: s.inner.Offset(), Payload: "{" + qn.Namespace + "}" + qn.Local}
		}
		seen[key] = struct{}{}
		resolved = append(resolved, ResolvedAttribute{Name: qn, Value: a.Value, Owned: a.Owned})
	}
	s.attrs = resolved

	return Event{Kind: zxml.EventStartElement, Name: name, Empty: ev.Empty}, true, nil
}

func (s *Scope) endElement(ev zxml.Event) (Event, bool, error) {
	name, err := s.resolveElementName(ev.Name)
	if err != nil {
		return Event{}, false, err
	}
	s.stack.Pop()
	return Event{Kind: zxml.EventEndElement, Name: name}, true, nil
}

func (s *Scope) resolveElementName(n zxml.Name) (QName, error) {
	if n.Prefix == "" {
		if uri, ok := s.Resolve(""); ok {
			return QName{Namespace: uri, HasNS: true, Local: n.Local}, nil
		}
		return QName{Local: n.Local}, nil
	}
	uri, ok := s.Resolve(n.Prefix)
	if !ok {
		return QName{}, &zxml.Error{Kind: zxml.KindUnknownNamespacePrefix, Offset: s.inner.Offset(), Payload: n.Prefix}
	}
	return QName{Namespace: uri, HasNS: true, Local: n.Local}, nil
}

// validateBoundURI enforces spec.md §4.6's rejection rules for a single
// prefix -> uri binding (the mirror rules for the xmlns URI and the
// xmlns-itself prohibition apply regardless of which prefix is being
// bound).
func validateBoundURI(prefix, uri string, offset int) error {
	if strings.EqualFold(prefix, "xmlns") {
		return illegalNS(offset, uri)
	}
	if uri == XMLNSNamespaceURI {
		return illegalNS(offset, uri)
	}
	if uri == XMLNamespaceURI && prefix != "xml" {
		return illegalNS(offset, uri)
	}
	if prefix == "xml" && uri != XMLNamespaceURI {
		return illegalNS(offset, uri)
	}
	return nil
}

func illegalNS(offset int, uri string) error {
	return &zxml.Error{Kind: zxml.KindIllegalNamespaceURI, Offset: offset, Payload: uri}
}
