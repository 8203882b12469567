package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgrassler/XML-Invoice-Parser/internal/format"
	"github.com/jgrassler/XML-Invoice-Parser/internal/model"
	"github.com/jgrassler/XML-Invoice-Parser/internal/xmltree"
)

func TestCID_Extraction(t *testing.T) {
	doc, err := xmltree.Parse([]byte(cidSample))
	require.NoError(t, err)

	f := format.NewCrossIndustryDocument()
	require.True(t, f.CheckSignature(doc))
	require.NoError(t, f.ParseTree(doc))

	md, err := f.Metadata()
	require.NoError(t, err)

	assert.Equal(t, "ZF1-2017-42", md[model.KeyInvoiceNumber])
	assert.Equal(t, "2017-06-20", md[model.KeyInvoiceDate])
	assert.Equal(t, "EUR", md[model.KeyCurrency])
	assert.Equal(t, "Lieferant GmbH", md[model.KeySellerName])
	assert.Equal(t, "DE777888999", md[model.KeySellerTaxID])
	assert.Equal(t, "Abnehmer KG", md[model.KeyBuyerName])
	assert.Equal(t, "DE000111222", md[model.KeyBuyerTaxID])
	assert.Equal(t, "100.00", md[model.KeyNetTotal])
	assert.Equal(t, "19.00", md[model.KeyTaxTotal])
	assert.Equal(t, "119.00", md[model.KeyGrossTotal])

	items, err := f.Items()
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "Schrauben M8", item[model.KeyItemDescription])
	assert.Equal(t, "4", item[model.KeyItemQuantity])
	assert.Equal(t, "C62", item[model.KeyItemUnit])
	assert.Equal(t, "25.00", item[model.KeyItemUnitPrice])
	assert.Equal(t, "100.00", item[model.KeyItemLineTotal])
	assert.Equal(t, "19", item[model.KeyItemTaxRate])
}

func TestCID_CheckSignature_NamespacePrefix(t *testing.T) {
	f := format.NewCrossIndustryDocument()

	// Profile variants under the urn:ferd prefix all match
	doc, err := xmltree.Parse([]byte(
		`<CrossIndustryDocument xmlns="urn:ferd:CrossIndustryDocument:invoice:1p0:comfort"/>`))
	require.NoError(t, err)
	assert.True(t, f.CheckSignature(doc))

	// CII namespace on the old root name does not match
	doc, err = xmltree.Parse([]byte(
		`<CrossIndustryDocument xmlns="urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"/>`))
	require.NoError(t, err)
	assert.False(t, f.CheckSignature(doc))
}
