package xmltree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgrassler/XML-Invoice-Parser/internal/xmltree"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<inv:Invoice xmlns:inv="urn:example:invoice" xmlns:x="urn:example:common">
  <x:Number>INV-1</x:Number>
  <x:Line><x:Qty unit="pcs">2</x:Qty></x:Line>
  <x:Line><x:Qty unit="kg">5</x:Qty></x:Line>
  <x:Nested><x:Deep><x:Value> spaced </x:Value></x:Deep></x:Nested>
</inv:Invoice>`

func TestParse_WellFormed(t *testing.T) {
	doc, err := xmltree.Parse([]byte(sampleDoc))
	require.NoError(t, err)
	require.NotNil(t, doc.Root())
	assert.Equal(t, "Invoice", doc.Root().Tag)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "whitespace only", input: "   \n  "},
		{name: "unclosed tag", input: "<root><child></root>"},
		{name: "plain text", input: "not xml at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := xmltree.Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestRootNamespace(t *testing.T) {
	doc, err := xmltree.Parse([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, "urn:example:invoice", xmltree.RootNamespace(doc))

	bare, err := xmltree.Parse([]byte(`<root/>`))
	require.NoError(t, err)
	assert.Equal(t, "", xmltree.RootNamespace(bare))
}

func TestChild_IgnoresPrefix(t *testing.T) {
	doc, err := xmltree.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	// Lookup by local name finds the element regardless of its prefix
	num := xmltree.Child(doc.Root(), "Number")
	require.NotNil(t, num)
	assert.Equal(t, "INV-1", num.Text())

	assert.Nil(t, xmltree.Child(doc.Root(), "Missing"))
	assert.Nil(t, xmltree.Child(nil, "Number"))
}

func TestChildren_DocumentOrder(t *testing.T) {
	doc, err := xmltree.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	lines := xmltree.Children(doc.Root(), "Line")
	require.Len(t, lines, 2)
	assert.Equal(t, "2", xmltree.Text(lines[0], "Qty"))
	assert.Equal(t, "5", xmltree.Text(lines[1], "Qty"))
}

func TestFind_Path(t *testing.T) {
	doc, err := xmltree.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	deep := xmltree.Find(doc.Root(), "Nested", "Deep", "Value")
	require.NotNil(t, deep)

	assert.Nil(t, xmltree.Find(doc.Root(), "Nested", "Missing", "Value"))
}

func TestText_Trimmed(t *testing.T) {
	doc, err := xmltree.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "spaced", xmltree.Text(doc.Root(), "Nested", "Deep", "Value"))
	assert.Equal(t, "", xmltree.Text(doc.Root(), "Missing"))
}

func TestAttr(t *testing.T) {
	doc, err := xmltree.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	lines := xmltree.Children(doc.Root(), "Line")
	require.Len(t, lines, 2)
	assert.Equal(t, "pcs", xmltree.Attr(lines[0], "unit", "Qty"))
	assert.Equal(t, "", xmltree.Attr(lines[0], "missing", "Qty"))
	assert.Equal(t, "", xmltree.Attr(lines[0], "unit", "Missing"))
}

func TestFindRecursive(t *testing.T) {
	doc, err := xmltree.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	found := xmltree.FindRecursive(doc.Root(), "Value")
	require.NotNil(t, found)
	assert.Equal(t, "Value", found.Tag)

	assert.Nil(t, xmltree.FindRecursive(doc.Root(), "Nope"))
}
