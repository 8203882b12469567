package format

import (
	"github.com/beevik/etree"

	"github.com/jgrassler/XML-Invoice-Parser/internal/decimal"
	"github.com/jgrassler/XML-Invoice-Parser/internal/model"
	"github.com/jgrassler/XML-Invoice-Parser/internal/xmltree"
)

// UN/CEFACT CrossIndustryInvoice namespace, carried by ZUGFeRD 2.x,
// Factur-X and XRechnung-CII payloads.
const ciiInvoiceNamespace = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"

// CrossIndustryInvoice extracts UN/CEFACT CrossIndustryInvoice documents
type CrossIndustryInvoice struct {
	parsed   bool
	metadata model.Metadata
	items    []model.Item
}

// NewCrossIndustryInvoice creates a fresh CII format instance
func NewCrossIndustryInvoice() Format {
	return &CrossIndustryInvoice{}
}

// Dialect returns the dialect identifier
func (f *CrossIndustryInvoice) Dialect() model.Dialect {
	return model.DialectCII
}

// Supported returns the dialect description for diagnostics
func (f *CrossIndustryInvoice) Supported() string {
	return "UN/CEFACT CrossIndustryInvoice (" + ciiInvoiceNamespace + ")"
}

// CheckSignature checks for the CrossIndustryInvoice root element and
// namespace
func (f *CrossIndustryInvoice) CheckSignature(doc *etree.Document) bool {
	root := doc.Root()
	if root == nil {
		return false
	}
	return root.Tag == "CrossIndustryInvoice" && root.NamespaceURI() == ciiInvoiceNamespace
}

// MetadataKeys returns the canonical metadata key set
func (f *CrossIndustryInvoice) MetadataKeys() []string { return model.MetadataKeys() }

// ItemKeys returns the canonical per-item key set
func (f *CrossIndustryInvoice) ItemKeys() []string { return model.ItemKeys() }

// DeclaredMetadataCapability lists the metadata keys this extractor
// produces. Keep in sync with ParseTree.
func (f *CrossIndustryInvoice) DeclaredMetadataCapability() []string {
	return []string{
		model.KeyInvoiceNumber,
		model.KeyInvoiceDate,
		model.KeyCurrency,
		model.KeySellerName,
		model.KeySellerTaxID,
		model.KeyBuyerName,
		model.KeyBuyerTaxID,
		model.KeyNetTotal,
		model.KeyTaxTotal,
		model.KeyGrossTotal,
	}
}

// DeclaredItemCapability lists the item keys this extractor produces.
// Keep in sync with convertLine.
func (f *CrossIndustryInvoice) DeclaredItemCapability() []string {
	return []string{
		model.KeyItemDescription,
		model.KeyItemQuantity,
		model.KeyItemUnit,
		model.KeyItemUnitPrice,
		model.KeyItemLineTotal,
		model.KeyItemTaxRate,
	}
}

// ParseTree extracts metadata and line items from a CII invoice tree
func (f *CrossIndustryInvoice) ParseTree(doc *etree.Document) error {
	if f.parsed {
		return nil
	}
	root := doc.Root()
	if root == nil {
		return model.NewParseError(model.DialectCII, "root", "document has no root element", nil)
	}

	header := xmltree.Child(root, "ExchangedDocument")
	transaction := xmltree.Child(root, "SupplyChainTradeTransaction")
	agreement := xmltree.Find(transaction, "ApplicableHeaderTradeAgreement")
	settlement := xmltree.Find(transaction, "ApplicableHeaderTradeSettlement")
	totals := xmltree.Find(settlement, "SpecifiedTradeSettlementHeaderMonetarySummation")

	seller := xmltree.Find(agreement, "SellerTradeParty")
	buyer := xmltree.Find(agreement, "BuyerTradeParty")

	f.metadata = model.Metadata{
		model.KeyInvoiceNumber: xmltree.Text(header, "ID"),
		model.KeyInvoiceDate:   normalizeDate(xmltree.Text(header, "IssueDateTime", "DateTimeString")),
		model.KeyCurrency:      xmltree.Text(settlement, "InvoiceCurrencyCode"),
		model.KeySellerName:    xmltree.Text(seller, "Name"),
		model.KeySellerTaxID:   xmltree.Text(seller, "SpecifiedTaxRegistration", "ID"),
		model.KeyBuyerName:     xmltree.Text(buyer, "Name"),
		model.KeyBuyerTaxID:    xmltree.Text(buyer, "SpecifiedTaxRegistration", "ID"),
		model.KeyNetTotal: decimal.NormalizeAmount(firstNonEmpty(
			xmltree.Text(totals, "LineTotalAmount"),
			xmltree.Text(totals, "TaxBasisTotalAmount"),
		)),
		model.KeyTaxTotal:   decimal.NormalizeAmount(xmltree.Text(totals, "TaxTotalAmount")),
		model.KeyGrossTotal: decimal.NormalizeAmount(xmltree.Text(totals, "GrandTotalAmount")),
	}

	f.items = make([]model.Item, 0)
	for _, line := range xmltree.Children(transaction, "IncludedSupplyChainTradeLineItem") {
		f.items = append(f.items, f.convertLine(line))
	}

	f.parsed = true
	return nil
}

func (f *CrossIndustryInvoice) convertLine(line *etree.Element) model.Item {
	lineAgreement := xmltree.Child(line, "SpecifiedLineTradeAgreement")
	lineSettlement := xmltree.Child(line, "SpecifiedLineTradeSettlement")

	quantity := xmltree.Text(line, "SpecifiedLineTradeDelivery", "BilledQuantity")
	unitPrice := firstNonEmpty(
		xmltree.Text(lineAgreement, "NetPriceProductTradePrice", "ChargeAmount"),
		xmltree.Text(lineAgreement, "GrossPriceProductTradePrice", "ChargeAmount"),
	)

	lineTotal := decimal.NormalizeAmount(
		xmltree.Text(lineSettlement, "SpecifiedTradeSettlementLineMonetarySummation", "LineTotalAmount"))
	if lineTotal == "" {
		lineTotal = decimal.LineTotal(quantity, unitPrice)
	}

	return model.Item{
		model.KeyItemDescription: firstNonEmpty(
			xmltree.Text(line, "SpecifiedTradeProduct", "Name"),
			xmltree.Text(line, "SpecifiedTradeProduct", "Description"),
		),
		model.KeyItemQuantity:  decimal.NormalizeNumber(quantity),
		model.KeyItemUnit:      xmltree.Attr(line, "unitCode", "SpecifiedLineTradeDelivery", "BilledQuantity"),
		model.KeyItemUnitPrice: decimal.NormalizeAmount(unitPrice),
		model.KeyItemLineTotal: lineTotal,
		model.KeyItemTaxRate:   decimal.NormalizeNumber(xmltree.Text(lineSettlement, "ApplicableTradeTax", "RateApplicablePercent")),
	}
}

// Metadata returns the extracted metadata mapping
func (f *CrossIndustryInvoice) Metadata() (model.Metadata, error) {
	if !f.parsed {
		return nil, model.NewDefectError(model.DialectCII, nil, "Metadata called before ParseTree")
	}
	return f.metadata, nil
}

// Items returns the extracted line items in source order
func (f *CrossIndustryInvoice) Items() ([]model.Item, error) {
	if !f.parsed {
		return nil, model.NewDefectError(model.DialectCII, nil, "Items called before ParseTree")
	}
	return f.items, nil
}
