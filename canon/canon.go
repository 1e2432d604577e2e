// Package canon implements the diagnostic canonical form spec.md §6
// describes: entity and character references expanded, double-quoted
// attribute values with '"', '<', '>', '&' escaped and tab, newline and
// carriage return escaped to numeric character references (a space is kept
// as is), comments omitted, and the XML
// declaration omitted unless its version is something other than "1.0".
//
// Adapted in spirit (not line-for-line) from ucarion/c14n's Canonicalize:
// same RawTokenReader shape and the same "replace special bytes with an
// escape table" idiom for attribute values and character data, retargeted
// at spec.md's simpler form. Exclusive-C14N's namespace-scoped rendering
// (ucarion/c14n's knownNames/renderedNames stacks, used to decide which
// xmlns declarations are "visibly used" and must be re-rendered on each
// element) is dropped: spec.md's diagnostic form has no such requirement,
// and names are rendered exactly as the RawTokenReader supplies them (raw
// "prefix:local" from ParserTokenReader; no prefix resolution happens in
// this package) - see DESIGN.md.
package canon

import (
	"bytes"
	"fmt"
	"io"
)

// TokenKind discriminates the events canon.Canonicalize accepts. It is
// deliberately narrower than zxml.EventKind - DocType carries no canonical
// rendering and is accepted only so the reader doesn't have to special
// case it.
type TokenKind int

const (
	TokenStartElement TokenKind = iota
	TokenEndElement
	TokenCharData
	TokenProcInst
	TokenComment
	TokenDocType
	TokenXMLDecl
)

// Attr is a single rendered attribute: Name is whatever name the caller's
// adapter decided to use (ParserTokenReader supplies the raw source name,
// e.g. "n1:id" or "id"), Value is the
// already-normalized (entity-expanded) content.
type Attr struct {
	Name  string
	Value string
}

// Token is the canonicalizer's input event. Only the fields relevant to
// Kind are populated.
type Token struct {
	Kind TokenKind

	Name  string // StartElement / EndElement
	Attrs []Attr // StartElement

	Text string // CharData

	Target string // ProcInst
	Inst   string // ProcInst

	Version string // XMLDecl
}

// RawTokenReader supplies the token stream Canonicalize consumes. Unlike
// ucarion/c14n's RawTokenReader (which wraps encoding/xml.Decoder),
// implementations here typically wrap a *zxml.Parser or *ns.Scope - see
// ParserTokenReader in adapter.go.
type RawTokenReader interface {
	RawToken() (Token, error)
}

var (
	amp     = []byte("&")
	escAmp  = []byte("&amp;")
	lt      = []byte("<")
	escLt   = []byte("&lt;")
	gt      = []byte(">")
	escGt   = []byte("&gt;")
	quot    = []byte("\"")
	escQuot = []byte("&quot;")
	tab     = []byte("\t")
	escTab  = []byte("&#x9;")
	nl      = []byte("\n")
	escNl   = []byte("&#xA;")
	cr      = []byte("\r")
	escCr   = []byte("&#xD;")
)

// escapeAttrValue implements spec.md §6's attribute escaping: '"', '<',
// '>', '&' plus tab, newline and carriage return replaced by their numeric
// references; a space is left unescaped.
func escapeAttrValue(s string) []byte {
	v := []byte(s)
	v = bytes.ReplaceAll(v, amp, escAmp)
	v = bytes.ReplaceAll(v, lt, escLt)
	v = bytes.ReplaceAll(v, gt, escGt)
	v = bytes.ReplaceAll(v, quot, escQuot)
	v = bytes.ReplaceAll(v, tab, escTab)
	v = bytes.ReplaceAll(v, nl, escNl)
	v = bytes.ReplaceAll(v, cr, escCr)
	return v
}

// escapeCharData implements spec.md §6's character-data escaping: '&',
// '<', '>' escaped as entities.
func escapeCharData(s string) []byte {
	v := []byte(s)
	v = bytes.ReplaceAll(v, amp, escAmp)
	v = bytes.ReplaceAll(v, lt, escLt)
	v = bytes.ReplaceAll(v, gt, escGt)
	return v
}

// Canonicalize reads tokens from r until EOF (or the root element closes,
// whichever comes first) and returns the canonical form.
func Canonicalize(r RawTokenReader) ([]byte, error) {
	var buf bytes.Buffer
	depth := 0
	started := false

	for {
		tok, err := r.RawToken()
		if err != nil {
			if err == io.EOF {
				if !started {
					return nil, io.ErrUnexpectedEOF
				}
				return buf.Bytes(), nil
			}
			return nil, err
		}

		switch tok.Kind {
		case TokenXMLDecl:
			if tok.Version != "" && tok.Version != "1.0" {
				fmt.Fprintf(&buf, "<?xml version=\"%s\"?>", tok.Version)
			}
		case TokenDocType, TokenComment:
			// omitted from the canonical form.
		case TokenStartElement:
			started = true
			depth++
			fmt.Fprintf(&buf, "<%s", tok.Name)
			for _, a := range tok.Attrs {
				fmt.Fprintf(&buf, " %s=\"", a.Name)
				buf.Write(escapeAttrValue(a.Value))
				buf.WriteByte('"')
			}
			buf.WriteByte('>')
		case TokenEndElement:
			fmt.Fprintf(&buf, "</%s>", tok.Name)
			depth--
			if depth == 0 {
				return buf.Bytes(), nil
			}
		case TokenCharData:
			if !started {
				continue
			}
			buf.Write(escapeCharData(tok.Text))
		case TokenProcInst:
			if !started {
				continue
			}
			fmt.Fprintf(&buf, "<?%s", tok.Target)
			if tok.Inst != "" {
				buf.WriteByte(' ')
				buf.WriteString(tok.Inst)
			}
			buf.WriteString("?>")
		}
	}
}
