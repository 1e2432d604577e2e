package charclass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWhitespace(t *testing.T) {
	for _, r := range []rune{' ', '\t', '\r', '\n'} {
		assert.True(t, IsWhitespace(r), "%q", r)
	}
	for _, r := range []rune{'a', '<', 0, 0x0B} {
		assert.False(t, IsWhitespace(r), "%q", r)
	}
}

func TestIsNameStartChar(t *testing.T) {
	assert.True(t, IsNameStartChar('a'))
	assert.True(t, IsNameStartChar('Z'))
	assert.True(t, IsNameStartChar('_'))
	assert.True(t, IsNameStartChar(':'))
	assert.True(t, IsNameStartChar('À'))
	assert.False(t, IsNameStartChar('-'))
	assert.False(t, IsNameStartChar('0'))
	assert.False(t, IsNameStartChar(' '))
}

func TestIsNameChar(t *testing.T) {
	assert.True(t, IsNameChar('0'))
	assert.True(t, IsNameChar('-'))
	assert.True(t, IsNameChar('.'))
	assert.True(t, IsNameChar('a'))
	assert.True(t, IsNameChar('·'))
	assert.False(t, IsNameChar(' '))
	assert.False(t, IsNameChar('<'))
}

func TestIsChar(t *testing.T) {
	assert.True(t, IsChar('\t'))
	assert.True(t, IsChar('\n'))
	assert.True(t, IsChar('\r'))
	assert.True(t, IsChar('a'))
	assert.True(t, IsChar(0x10FFFF))
	assert.False(t, IsChar(0x0))
	assert.False(t, IsChar(0xFFFE))
	assert.False(t, IsChar(0xD800))
	assert.False(t, IsChar(0x110000))
}

func TestIsPubidChar(t *testing.T) {
	assert.True(t, IsPubidChar(' '))
	assert.True(t, IsPubidChar('-'))
	assert.True(t, IsPubidChar('9'))
	assert.False(t, IsPubidChar('<'))
	assert.False(t, IsPubidChar('&'))
}
