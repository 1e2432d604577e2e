// Package encguess turns an arbitrary byte stream into the UTF-8 buffer
// zxml.Parser consumes, detecting its encoding per spec.md §4.8: a BOM, if
// present, wins outright; otherwise an ASCII-safe scan of the XML
// declaration's encoding= pseudo-attribute is tried; otherwise the input is
// assumed to already be UTF-8.
package encguess

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/outerhaven/zxml"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Sniff detects raw's encoding and returns its canonical label plus the
// transcoded UTF-8 body (BOM stripped). "utf-8" is returned with body
// unchanged (aside from BOM removal) when no other encoding is detected.
func Sniff(raw []byte) (label string, body []byte, err error) {
	if bytes.HasPrefix(raw, bomUTF8) {
		return "utf-8", raw[len(bomUTF8):], nil
	}
	if bytes.HasPrefix(raw, bomUTF16LE) {
		decoded, err := decode(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), raw)
		return "utf-16le", decoded, err
	}
	if bytes.HasPrefix(raw, bomUTF16BE) {
		decoded, err := decode(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), raw)
		return "utf-16be", decoded, err
	}

	if declared, ok := sniffDeclaredEncoding(raw); ok {
		return resolveLabel(declared, raw)
	}

	return "utf-8", raw, nil
}

// sniffDeclaredEncoding does an ASCII-only scan for <?xml ... encoding="x"
// ...?> using zxml's own XmlDecl recognizer. It is safe to run against
// raw, not-yet-decoded bytes only because every byte of a well-formed
// XmlDecl prologue is itself ASCII (spec.md §4.8(b)).
func sniffDeclaredEncoding(raw []byte) (string, bool) {
	if !bytes.HasPrefix(raw, []byte("<?xml")) {
		return "", false
	}
	next := byte(0)
	if len(raw) > 5 {
		next = raw[5]
	}
	if next != ' ' && next != '\t' && next != '\r' && next != '\n' {
		return "", false
	}
	end := bytes.Index(raw, []byte("?>"))
	if end == -1 {
		return "", false
	}
	decl := raw[:end+2]
	p := zxml.New(decl)
	ev, ok, err := p.Next()
	if err != nil || !ok || ev.Kind != zxml.EventXMLDecl || !ev.HasEncoding {
		return "", false
	}
	return ev.Encoding, true
}

func resolveLabel(declared string, raw []byte) (string, []byte, error) {
	label := strings.ToLower(declared)
	switch label {
	case "utf-8", "utf8":
		return "utf-8", raw, nil
	case "utf-16le":
		decoded, err := decode(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), raw)
		return label, decoded, err
	case "utf-16be":
		decoded, err := decode(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), raw)
		return label, decoded, err
	case "iso-8859-1", "latin1", "latin-1":
		decoded, err := decode(charmap.ISO8859_1, raw)
		return "iso-8859-1", decoded, err
	default:
		return "", nil, &zxml.Error{Kind: zxml.KindUnsupportedEncoding, Offset: 0, Payload: declared}
	}
}

func decode(enc encoding.Encoding, raw []byte) ([]byte, error) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, &zxml.Error{Kind: zxml.KindDecoding, Offset: 0, Payload: err.Error()}
	}
	return out, nil
}
