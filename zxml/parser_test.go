package zxml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drains a Parser into its full event sequence, returning the
// terminal error (nil on clean EOF).
func collect(t *testing.T, input string) ([]Event, []Attribute, error) {
	t.Helper()
	p := New([]byte(input))
	var events []Event
	var attrsAtStart [][]Attribute
	for {
		ev, ok, err := p.Next()
		if err != nil {
			return events, nil, err
		}
		if !ok {
			break
		}
		events = append(events, ev)
		if ev.Kind == EventStartElement {
			attrsAtStart = append(attrsAtStart, append([]Attribute(nil), p.Attributes()...))
		}
	}
	var lastAttrs []Attribute
	if len(attrsAtStart) > 0 {
		lastAttrs = attrsAtStart[len(attrsAtStart)-1]
	}
	return events, lastAttrs, nil
}

func kindOf(t *testing.T, err error) Kind {
	t.Helper()
	var e *Error
	require.True(t, errors.As(err, &e), "expected *zxml.Error, got %T: %v", err, err)
	return e.Kind
}

func TestParser_EmptyElementAtRoot(t *testing.T) {
	events, _, err := collect(t, `<e/>`)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventStartElement, events[0].Kind)
	assert.True(t, events[0].Empty)
	assert.Equal(t, "e", events[0].Name.Local)
	assert.Equal(t, EventEndElement, events[1].Kind)
	assert.Equal(t, "e", events[1].Name.Local)
}

func TestParser_DeclOnlyVariant(t *testing.T) {
	events, _, err := collect(t, `<?xml version="1.0"?><e/>`)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, EventXMLDecl, events[0].Kind)
	assert.Equal(t, "1.0", events[0].Version)
	assert.Equal(t, EventStartElement, events[1].Kind)
	assert.Equal(t, EventEndElement, events[2].Kind)
}

func TestParser_AttributeValue(t *testing.T) {
	events, attrs, err := collect(t, `<elem attr="v"/>`)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].Empty)
	require.Len(t, attrs, 1)
	assert.Equal(t, "attr", attrs[0].Name.Local)
	assert.Equal(t, "v", attrs[0].Value)
}

func TestParser_PredefinedEntitiesInContent(t *testing.T) {
	events, _, err := collect(t, `<e>&lt;&gt;&amp;&apos;&quot;</e>`)
	require.NoError(t, err)
	var chars []string
	for _, ev := range events {
		if ev.Kind == EventCharacters {
			chars = append(chars, ev.Text)
		}
	}
	assert.Equal(t, []string{"<", ">", "&", "'", "\""}, chars)
}

func TestParser_NestedElements(t *testing.T) {
	events, _, err := collect(t, `<a><b/></a>`)
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, EventStartElement, events[0].Kind)
	assert.Equal(t, "a", events[0].Name.Local)
	assert.Equal(t, EventStartElement, events[1].Kind)
	assert.Equal(t, "b", events[1].Name.Local)
	assert.True(t, events[1].Empty)
	assert.Equal(t, EventEndElement, events[2].Kind)
	assert.Equal(t, "b", events[2].Name.Local)
	assert.Equal(t, EventEndElement, events[3].Kind)
	assert.Equal(t, "a", events[3].Name.Local)
}

func TestParser_OpenElementAtEOF(t *testing.T) {
	_, _, err := collect(t, `<e>`)
	require.Error(t, err)
	assert.Equal(t, KindOpenElementAtEOF, kindOf(t, err))
}

func TestParser_CharacterReferenceValid(t *testing.T) {
	events, _, err := collect(t, `<e>&#x10FFFF;</e>`)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, EventCharacters, events[1].Kind)
	assert.Equal(t, string(rune(0x10FFFF)), events[1].Text)
}

func TestParser_CharacterReferenceSurrogateInvalid(t *testing.T) {
	_, _, err := collect(t, `<e>&#xD800;</e>`)
	require.Error(t, err)
	assert.Equal(t, KindInvalidCharacterReference, kindOf(t, err))
}

func TestParser_EndOfLineNormalization(t *testing.T) {
	events, _, err := collect(t, "<e>a\r\nb</e>")
	require.NoError(t, err)
	var text string
	for _, ev := range events {
		if ev.Kind == EventCharacters {
			text += ev.Text
		}
	}
	assert.Equal(t, "a\nb", text)
}

func TestParser_EndOfLineNormalization_BareCR(t *testing.T) {
	events, _, err := collect(t, "<e>a\rb</e>")
	require.NoError(t, err)
	var text string
	for _, ev := range events {
		if ev.Kind == EventCharacters {
			text += ev.Text
		}
	}
	assert.Equal(t, "a\nb", text)
}

func TestParser_CDataLiteralEndOutsideCDATA(t *testing.T) {
	_, _, err := collect(t, `<e>]]></e>`)
	require.Error(t, err)
	assert.Equal(t, KindIllegalCDataSectionEnd, kindOf(t, err))
}

func TestParser_PITargetCaseInsensitiveXml(t *testing.T) {
	_, _, err := collect(t, `<?XmL?><e/>`)
	require.Error(t, err)
	assert.Equal(t, KindInvalidPITarget, kindOf(t, err))
}

func TestParser_WrongETagName(t *testing.T) {
	_, _, err := collect(t, `<a></b>`)
	require.Error(t, err)
	assert.Equal(t, KindWrongETagName, kindOf(t, err))
}

func TestParser_DuplicateAttribute(t *testing.T) {
	_, _, err := collect(t, `<e a="1" a="2"/>`)
	require.Error(t, err)
	assert.Equal(t, KindNonUniqueAttribute, kindOf(t, err))
}

func TestParser_MultipleRootElementsRejected(t *testing.T) {
	_, _, err := collect(t, `<a/><b/>`)
	require.Error(t, err)
	assert.Equal(t, KindExpectedDocumentEnd, kindOf(t, err))
}

func TestParser_CDATASection(t *testing.T) {
	events, _, err := collect(t, `<e><![CDATA[<not parsed>]]></e>`)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, EventCharacters, events[1].Kind)
	assert.Equal(t, "<not parsed>", events[1].Text)
}

func TestParser_CommentAndPIInPrologue(t *testing.T) {
	events, _, err := collect(t, `<!-- hi --><?target data?><e/>`)
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, EventComment, events[0].Kind)
	assert.Equal(t, " hi ", events[0].Text)
	assert.Equal(t, EventPI, events[1].Kind)
	assert.Equal(t, "target", events[1].Target)
	assert.Equal(t, "data", events[1].Data)
}

func TestParser_DoctypeAtMostOnce(t *testing.T) {
	_, _, err := collect(t, `<!DOCTYPE a SYSTEM "a.dtd"><!DOCTYPE b SYSTEM "b.dtd"><a/>`)
	require.Error(t, err)
	assert.Equal(t, KindExpectToken, kindOf(t, err))
}

func TestParser_OffsetMonotonic(t *testing.T) {
	p := New([]byte(`<a><b/>text</a>`))
	last := -1
	for {
		_, ok, err := p.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		off := p.Offset()
		assert.GreaterOrEqual(t, off, last)
		last = off
	}
}

func TestParser_EmptyElementETagSynthesisDoesNotDesync(t *testing.T) {
	events, _, err := collect(t, `<a><b/><c/></a>`)
	require.NoError(t, err)
	require.Len(t, events, 6)
	names := make([]string, len(events))
	for i, ev := range events {
		names[i] = ev.Kind.String() + ":" + ev.Name.Local
	}
	assert.Equal(t, []string{
		"StartElement:a",
		"StartElement:b",
		"EndElement:b",
		"StartElement:c",
		"EndElement:c",
		"EndElement:a",
	}, names)
}

func TestParser_ErrorIsSticky(t *testing.T) {
	p := New([]byte(`<e>`))
	_, _, err1 := p.Next()
	require.NoError(t, err1)
	_, _, err2 := p.Next()
	require.Error(t, err2)
	_, ok3, err3 := p.Next()
	require.Error(t, err3)
	assert.False(t, ok3)
	assert.Equal(t, kindOf(t, err2), kindOf(t, err3))
}
