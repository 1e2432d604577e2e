package zxml

import (
	"bytes"

	"github.com/outerhaven/zxml/internal/charclass"
)

// externalID holds a parsed ExternalID (SYSTEM/PUBLIC external identifier).
type externalID struct {
	Public    string
	HasPublic bool
	System    string
}

// recognizeSystemLiteral recognizes SystemLiteral: a quoted string with no
// further character restriction (any Char but the quote).
func recognizeSystemLiteral(c Cursor) (string, Cursor, error) {
	return recognizeQuoted(c)
}

// recognizePubidLiteral recognizes PubidLiteral: a quoted string whose
// characters are all restricted to PubidChar.
func recognizePubidLiteral(c Cursor) (string, Cursor, error) {
	start := c.Offset()
	lit, next, err := recognizeQuoted(c)
	if err != nil {
		return "", next, err
	}
	for _, r := range lit {
		if !charclass.IsPubidChar(r) {
			return "", next, errAt(KindIllegalName, start, lit)
		}
	}
	return lit, next, nil
}

// recognizeExternalID recognizes ExternalID:
//
//	'SYSTEM' S SystemLiteral | 'PUBLIC' S PubidLiteral S SystemLiteral
func recognizeExternalID(c Cursor) (externalID, Cursor, error) {
	var out externalID
	switch {
	case c.HasPrefix("SYSTEM"):
		c = c.Advance(len("SYSTEM"))
		c2, err := recognizeS(c)
		if err != nil {
			return out, c, err
		}
		sys, next, err := recognizeSystemLiteral(c2)
		if err != nil {
			return out, next, err
		}
		out.System = sys
		return out, next, nil
	case c.HasPrefix("PUBLIC"):
		c = c.Advance(len("PUBLIC"))
		c2, err := recognizeS(c)
		if err != nil {
			return out, c, err
		}
		pub, c3, err := recognizePubidLiteral(c2)
		if err != nil {
			return out, c3, err
		}
		out.Public = pub
		out.HasPublic = true
		c4, err := recognizeS(c3)
		if err != nil {
			return out, c3, err
		}
		sys, next, err := recognizeSystemLiteral(c4)
		if err != nil {
			return out, next, err
		}
		out.System = sys
		return out, next, nil
	default:
		return out, c, errAt(KindExpectToken, c.Offset(), "SYSTEM|PUBLIC")
	}
}

// recognizeDoctype recognizes doctypedecl, assuming the cursor is
// positioned just past the opening "<!DOCTYPE". The internal subset (if
// present) is recognized by its brackets but not parsed: per spec.md §4.4,
// a nonempty internal subset is reported as DtdError::Unsupported (mapped
// to KindDTDUnsupported).
//
//	doctypedecl ::= '<!DOCTYPE' S Name (S ExternalID)? S? ('[' ... ']' S?)? '>'
func recognizeDoctype(c Cursor) (Name, string, Cursor, error) {
	start := c
	c, err := recognizeS(c)
	if err != nil {
		return Name{}, "", c, err
	}
	name, c, err := recognizeName(c)
	if err != nil {
		return Name{}, "", c, err
	}

	probe := skipOptionalS(c)
	if probe.HasPrefix("SYSTEM") || probe.HasPrefix("PUBLIC") {
		_, next, err := recognizeExternalID(probe)
		if err != nil {
			return Name{}, "", next, err
		}
		c = next
	}

	c = skipOptionalS(c)
	if b, ok := c.NextByte(0); ok && b == '[' {
		rest := c.RestBytes()
		idx := indexByte(rest, ']')
		if idx == -1 {
			return Name{}, "", c, errAt(KindUnexpectedEOF, c.Offset(), "")
		}
		inner := rest[1:idx]
		if len(bytes.TrimSpace(inner)) > 0 {
			return Name{}, "", c, errAt(KindDTDUnsupported, c.Offset(), "")
		}
		c = c.Advance(idx + 1)
		c = skipOptionalS(c)
	}

	b, ok := c.NextByte(0)
	if !ok || b != '>' {
		return Name{}, "", c, errAt(KindExpectToken, c.Offset(), ">")
	}
	shell := string(start.buf[start.pos:c.pos])
	return name, shell, c.Advance(1), nil
}
