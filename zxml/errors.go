package zxml

import "fmt"

// Kind enumerates the closed taxonomy of well-formedness, lexical,
// namespace and encoding faults raised by the Parser and by packages ns and
// encguess. KindExpectedName, KindExpectedElementStart and KindIO are
// defined but not raised anywhere in this module, and parser_test.go
// covers only a subset of the remaining kinds.
type Kind int

const (
	KindUnexpectedEOF Kind = iota
	KindUnexpectedCharacter
	KindInvalidCharacter
	KindExpectToken
	KindExpectedWhitespace
	KindExpectedName
	KindExpectedElementStart
	KindExpectedElementEnd
	KindExpectedEquals
	KindExpectedAttrValue
	KindIllegalAttributeValue
	KindIllegalNameStartChar
	KindIllegalName
	KindNonUniqueAttribute
	KindWrongETagName
	KindOpenElementAtEOF
	KindExpectedDocumentEnd
	KindInvalidPITarget
	KindInvalidCharacterReference
	KindCommentColonColon
	KindUnknownEntity
	KindIllegalCDataSectionEnd
	KindIllegalReference
	KindUnsupportedEncoding
	KindUnsupportedVersion
	KindUnknownNamespacePrefix
	KindIllegalNamespaceURI
	KindDTDUnsupported
	KindIO
	KindDecoding
)

var kindNames = map[Kind]string{
	KindUnexpectedEOF:             "UnexpectedEof",
	KindUnexpectedCharacter:       "UnexpectedCharacter",
	KindInvalidCharacter:          "InvalidCharacter",
	KindExpectToken:               "ExpectToken",
	KindExpectedWhitespace:        "ExpectedWhitespace",
	KindExpectedName:              "ExpectedName",
	KindExpectedElementStart:      "ExpectedElementStart",
	KindExpectedElementEnd:        "ExpectedElementEnd",
	KindExpectedEquals:            "ExpectedEquals",
	KindExpectedAttrValue:         "ExpectedAttrValue",
	KindIllegalAttributeValue:     "IllegalAttributeValue",
	KindIllegalNameStartChar:      "IllegalNameStartChar",
	KindIllegalName:               "IllegalName",
	KindNonUniqueAttribute:        "NonUniqueAttribute",
	KindWrongETagName:             "WrongETagName",
	KindOpenElementAtEOF:          "OpenElementAtEof",
	KindExpectedDocumentEnd:       "ExpectedDocumentEnd",
	KindInvalidPITarget:           "InvalidPITarget",
	KindInvalidCharacterReference: "InvalidCharacterReference",
	KindCommentColonColon:         "CommentColonColon",
	KindUnknownEntity:             "UnknownEntity",
	KindIllegalCDataSectionEnd:    "IllegalCDataSectionEnd",
	KindIllegalReference:         "IllegalReference",
	KindUnsupportedEncoding:       "UnsupportedEncoding",
	KindUnsupportedVersion:        "UnsupportedVersion",
	KindUnknownNamespacePrefix:    "UnknownNamespacePrefix",
	KindIllegalNamespaceURI:       "IllegalNamespaceUri",
	KindDTDUnsupported:            "DtdError::Unsupported",
	KindIO:                        "Io",
	KindDecoding:                  "Decoding",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Error is the single error type produced by zxml. It carries the closed
// Kind taxonomy plus a byte offset into the original input and, where
// relevant, the offending payload (a rune, a name, or a literal).
//
// Offsets point at or just past the offending byte, per spec.md §7: a
// sub-recognizer that doesn't know its absolute position yet may return
// Offset 0, and the driving parser overwrites it with the cursor's current
// offset before returning.
type Error struct {
	Kind    Kind
	Offset  int
	Payload string
}

func (e *Error) Error() string {
	if e.Payload == "" {
		return fmt.Sprintf("zxml: %s at offset %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("zxml: %s(%s) at offset %d", e.Kind, e.Payload, e.Offset)
}

// Is supports errors.Is comparisons against a *Error with a matching Kind
// (and, if set, a matching Payload) - callers typically build a sentinel
// with &Error{Kind: KindX} and compare with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	if t.Payload != "" && t.Payload != e.Payload {
		return false
	}
	return true
}

func errAt(kind Kind, offset int, payload string) *Error {
	return &Error{Kind: kind, Offset: offset, Payload: payload}
}
