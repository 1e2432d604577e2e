package canon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outerhaven/zxml"
	"github.com/outerhaven/zxml/canon"
)

func canonicalize(t *testing.T, input string) string {
	t.Helper()
	r := canon.NewParserTokenReader(zxml.New([]byte(input)))
	out, err := canon.Canonicalize(r)
	require.NoError(t, err)
	return string(out)
}

func TestCanonicalize_SimpleElement(t *testing.T) {
	assert.Equal(t, `<e></e>`, canonicalize(t, `<e/>`))
}

func TestCanonicalize_AttributeEscaping(t *testing.T) {
	got := canonicalize(t, `<e a="x&amp;y&#x9;z"/>`)
	assert.Equal(t, `<e a="x&amp;y&#x9;z"></e>`, got)
}

func TestCanonicalize_CharDataEscaping(t *testing.T) {
	got := canonicalize(t, `<e>a&lt;b&gt;c&amp;d</e>`)
	assert.Equal(t, `<e>a&lt;b&gt;c&amp;d</e>`, got)
}

func TestCanonicalize_CommentsOmitted(t *testing.T) {
	got := canonicalize(t, `<e><!-- hidden -->text</e>`)
	assert.Equal(t, `<e>text</e>`, got)
}

func TestCanonicalize_XMLDeclOmittedWhenVersion1_0(t *testing.T) {
	got := canonicalize(t, `<?xml version="1.0"?><e/>`)
	assert.Equal(t, `<e></e>`, got)
}

func TestCanonicalize_ProcessingInstructionInsideRoot(t *testing.T) {
	got := canonicalize(t, `<e><?target data?></e>`)
	assert.Equal(t, `<e><?target data?></e>`, got)
}

func TestCanonicalize_NestedElements(t *testing.T) {
	got := canonicalize(t, `<a><b/></a>`)
	assert.Equal(t, `<a><b></b></a>`, got)
}

func TestCanonicalize_Idempotent(t *testing.T) {
	first := canonicalize(t, `<e a="v">a&lt;b</e>`)
	second := canonicalize(t, first)
	assert.Equal(t, first, second)
}
