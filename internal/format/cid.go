package format

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/jgrassler/XML-Invoice-Parser/internal/decimal"
	"github.com/jgrassler/XML-Invoice-Parser/internal/model"
	"github.com/jgrassler/XML-Invoice-Parser/internal/xmltree"
)

// CrossIndustryDocument namespace prefix, carried by ZUGFeRD 1.0 payloads.
// The full URI varies by profile (invoice:1p0 et al), so the signature
// matches on the stable prefix.
const cidNamespacePrefix = "urn:ferd:CrossIndustryDocument"

// CrossIndustryDocument extracts ZUGFeRD 1.0 CrossIndustryDocument
// invoices, the predecessor of CrossIndustryInvoice with a different
// element vocabulary.
type CrossIndustryDocument struct {
	parsed   bool
	metadata model.Metadata
	items    []model.Item
}

// NewCrossIndustryDocument creates a fresh CID format instance
func NewCrossIndustryDocument() Format {
	return &CrossIndustryDocument{}
}

// Dialect returns the dialect identifier
func (f *CrossIndustryDocument) Dialect() model.Dialect {
	return model.DialectCID
}

// Supported returns the dialect description for diagnostics
func (f *CrossIndustryDocument) Supported() string {
	return "ZUGFeRD 1.0 CrossIndustryDocument (" + cidNamespacePrefix + ":*)"
}

// CheckSignature checks for the CrossIndustryDocument root element and
// namespace prefix
func (f *CrossIndustryDocument) CheckSignature(doc *etree.Document) bool {
	root := doc.Root()
	if root == nil {
		return false
	}
	return root.Tag == "CrossIndustryDocument" &&
		strings.HasPrefix(root.NamespaceURI(), cidNamespacePrefix)
}

// MetadataKeys returns the canonical metadata key set
func (f *CrossIndustryDocument) MetadataKeys() []string { return model.MetadataKeys() }

// ItemKeys returns the canonical per-item key set
func (f *CrossIndustryDocument) ItemKeys() []string { return model.ItemKeys() }

// DeclaredMetadataCapability lists the metadata keys this extractor
// produces. Keep in sync with ParseTree.
func (f *CrossIndustryDocument) DeclaredMetadataCapability() []string {
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
func (f *CrossIndustryDocument) DeclaredItemCapability() []string {
	return []string{
		model.KeyItemDescription,
		model.KeyItemQuantity,
		model.KeyItemUnit,
		model.KeyItemUnitPrice,
		model.KeyItemLineTotal,
		model.KeyItemTaxRate,
	}
}

// ParseTree extracts metadata and line items from a CrossIndustryDocument
// tree
func (f *CrossIndustryDocument) ParseTree(doc *etree.Document) error {
	if f.parsed {
		return nil
	}
	root := doc.Root()
	if root == nil {
		return model.NewParseError(model.DialectCID, "root", "document has no root element", nil)
	}

	header := xmltree.Child(root, "HeaderExchangedDocument")
	transaction := xmltree.Child(root, "SpecifiedSupplyChainTradeTransaction")
	agreement := xmltree.Find(transaction, "ApplicableSupplyChainTradeAgreement")
	settlement := xmltree.Find(transaction, "ApplicableSupplyChainTradeSettlement")
	totals := xmltree.Find(settlement, "SpecifiedTradeSettlementMonetarySummation")

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

func (f *CrossIndustryDocument) convertLine(line *etree.Element) model.Item {
	lineAgreement := xmltree.Child(line, "SpecifiedSupplyChainTradeAgreement")
	lineSettlement := xmltree.Child(line, "SpecifiedSupplyChainTradeSettlement")

	quantity := xmltree.Text(line, "SpecifiedSupplyChainTradeDelivery", "BilledQuantity")
	unitPrice := firstNonEmpty(
		xmltree.Text(lineAgreement, "NetPriceProductTradePrice", "ChargeAmount"),
		xmltree.Text(lineAgreement, "GrossPriceProductTradePrice", "ChargeAmount"),
	)

	lineTotal := decimal.NormalizeAmount(
		xmltree.Text(lineSettlement, "SpecifiedTradeSettlementMonetarySummation", "LineTotalAmount"))
	if lineTotal == "" {
		lineTotal = decimal.LineTotal(quantity, unitPrice)
	}

	// ZUGFeRD 1.0 uses ApplicablePercent where CII uses RateApplicablePercent
	taxRate := firstNonEmpty(
		xmltree.Text(lineSettlement, "ApplicableTradeTax", "ApplicablePercent"),
		xmltree.Text(lineSettlement, "ApplicableTradeTax", "RateApplicablePercent"),
	)

	return model.Item{
		model.KeyItemDescription: firstNonEmpty(
			xmltree.Text(line, "SpecifiedTradeProduct", "Name"),
			xmltree.Text(line, "SpecifiedTradeProduct", "Description"),
		),
		model.KeyItemQuantity:  decimal.NormalizeNumber(quantity),
		model.KeyItemUnit:      xmltree.Attr(line, "unitCode", "SpecifiedSupplyChainTradeDelivery", "BilledQuantity"),
		model.KeyItemUnitPrice: decimal.NormalizeAmount(unitPrice),
		model.KeyItemLineTotal: lineTotal,
		model.KeyItemTaxRate:   decimal.NormalizeNumber(taxRate),
	}
}

// Metadata returns the extracted metadata mapping
func (f *CrossIndustryDocument) Metadata() (model.Metadata, error) {
	if !f.parsed {
		return nil, model.NewDefectError(model.DialectCID, nil, "Metadata called before ParseTree")
	}
	return f.metadata, nil
}

// Items returns the extracted line items in source order
func (f *CrossIndustryDocument) Items() ([]model.Item, error) {
	if !f.parsed {
		return nil, model.NewDefectError(model.DialectCID, nil, "Items called before ParseTree")
	}
	return f.items, nil
}
