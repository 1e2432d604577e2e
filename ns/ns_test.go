package ns_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outerhaven/zxml"
	"github.com/outerhaven/zxml/ns"
)

func kindOf(t *testing.T, err error) zxml.Kind {
	t.Helper()
	var e *zxml.Error
	require.True(t, errors.As(err, &e))
	return e.Kind
}

func TestScope_PrefixedElementResolvesToBoundURI(t *testing.T) {
	scope := ns.New(zxml.New([]byte(`<n1:e xmlns:n1='https://example.org'/>`)))

	ev, ok, err := scope.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ns.EventStartElement, ev.Kind)
	assert.Equal(t, "e", ev.Name.Local)
	assert.Equal(t, "https://example.org", ev.Name.Namespace)
	assert.True(t, ev.Name.HasNS)
	assert.True(t, ev.Empty)

	ev2, ok2, err2 := scope.Next()
	require.NoError(t, err2)
	require.True(t, ok2)
	assert.Equal(t, ns.EventEndElement, ev2.Kind)
	assert.Equal(t, "e", ev2.Name.Local)
	assert.Equal(t, "https://example.org", ev2.Name.Namespace)

	_, ok3, err3 := scope.Next()
	require.NoError(t, err3)
	assert.False(t, ok3)
}

func TestScope_RedeclaringXmlPrefixRejected(t *testing.T) {
	scope := ns.New(zxml.New([]byte(`<e xmlns:xml='http://example.org'/>`)))
	_, _, err := scope.Next()
	require.Error(t, err)
	assert.Equal(t, zxml.KindIllegalNamespaceURI, kindOf(t, err))
}

func TestScope_EmptyURIOnPrefixedBindingRejected(t *testing.T) {
	scope := ns.New(zxml.New([]byte(`<e xmlns:n1=''/>`)))
	_, _, err := scope.Next()
	require.Error(t, err)
	assert.Equal(t, zxml.KindIllegalNamespaceURI, kindOf(t, err))
}

func TestScope_DefaultNamespaceAppliesToChildren(t *testing.T) {
	scope := ns.New(zxml.New([]byte(`<a xmlns='https://ex.org/a'><b/></a>`)))

	ev, _, err := scope.Next()
	require.NoError(t, err)
	assert.Equal(t, "https://ex.org/a", ev.Name.Namespace)

	ev2, _, err2 := scope.Next()
	require.NoError(t, err2)
	assert.Equal(t, "b", ev2.Name.Local)
	assert.Equal(t, "https://ex.org/a", ev2.Name.Namespace)
}

func TestScope_DefaultNamespaceUnbindable(t *testing.T) {
	scope := ns.New(zxml.New([]byte(`<a xmlns='https://ex.org/a'><b xmlns=''/></a>`)))

	_, _, err := scope.Next()
	require.NoError(t, err)
	ev2, _, err2 := scope.Next()
	require.NoError(t, err2)
	assert.False(t, ev2.Name.HasNS)
}

func TestScope_UnknownPrefixRejected(t *testing.T) {
	scope := ns.New(zxml.New([]byte(`<n1:e/>`)))
	_, _, err := scope.Next()
	require.Error(t, err)
	assert.Equal(t, zxml.KindUnknownNamespacePrefix, kindOf(t, err))
}

func TestScope_DuplicateResolvedAttributeRejected(t *testing.T) {
	scope := ns.New(zxml.New([]byte(`<e xmlns:a='https://ex.org' xmlns:b='https://ex.org' a:x='1' b:x='2'/>`)))
	_, _, err := scope.Next()
	require.Error(t, err)
	assert.Equal(t, zxml.KindNonUniqueAttribute, kindOf(t, err))
}

func TestScope_PlainAttributesResolveUnprefixed(t *testing.T) {
	scope := ns.New(zxml.New([]byte(`<e xmlns='https://ex.org/a' plain='v'/>`)))
	_, _, err := scope.Next()
	require.NoError(t, err)
	attrs := scope.Attributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, "plain", attrs[0].Name.Local)
	assert.False(t, attrs[0].Name.HasNS)
	assert.Equal(t, "v", attrs[0].Value)
}
