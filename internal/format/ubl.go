package format

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/jgrassler/XML-Invoice-Parser/internal/decimal"
	"github.com/jgrassler/XML-Invoice-Parser/internal/model"
	"github.com/jgrassler/XML-Invoice-Parser/internal/xmltree"
)

// OASIS UBL invoice namespace. Minor revisions (2.0, 2.1, 2.2, ...) all
// share the Invoice-2 namespace.
const ublInvoiceNamespace = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"

// UBL extracts OASIS Universal Business Language invoices, the dialect
// used by XRechnung-UBL and Peppol BIS Billing.
type UBL struct {
	parsed   bool
	metadata model.Metadata
	items    []model.Item
}

// NewUBL creates a fresh UBL format instance
func NewUBL() Format {
	return &UBL{}
}

// Dialect returns the dialect identifier
func (f *UBL) Dialect() model.Dialect {
	return model.DialectUBL
}

// Supported returns the dialect description for diagnostics
func (f *UBL) Supported() string {
	return "UBL 2.x invoice (" + ublInvoiceNamespace + ")"
}

// CheckSignature checks for the UBL Invoice root element and namespace
func (f *UBL) CheckSignature(doc *etree.Document) bool {
	root := doc.Root()
	if root == nil {
		return false
	}
	return root.Tag == "Invoice" && root.NamespaceURI() == ublInvoiceNamespace
}

// MetadataKeys returns the canonical metadata key set
func (f *UBL) MetadataKeys() []string { return model.MetadataKeys() }

// ItemKeys returns the canonical per-item key set
func (f *UBL) ItemKeys() []string { return model.ItemKeys() }

// DeclaredMetadataCapability lists the metadata keys this extractor
// produces. Keep in sync with ParseTree.
func (f *UBL) DeclaredMetadataCapability() []string {
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
func (f *UBL) DeclaredItemCapability() []string {
	return []string{
		model.KeyItemDescription,
		model.KeyItemQuantity,
		model.KeyItemUnit,
		model.KeyItemUnitPrice,
		model.KeyItemLineTotal,
		model.KeyItemTaxRate,
	}
}

// ParseTree extracts metadata and line items from a UBL invoice tree
func (f *UBL) ParseTree(doc *etree.Document) error {
	if f.parsed {
		return nil
	}
	root := doc.Root()
	if root == nil {
		return model.NewParseError(model.DialectUBL, "root", "document has no root element", nil)
	}

	seller := xmltree.Find(root, "AccountingSupplierParty", "Party")
	buyer := xmltree.Find(root, "AccountingCustomerParty", "Party")

	f.metadata = model.Metadata{
		model.KeyInvoiceNumber: xmltree.Text(root, "ID"),
		model.KeyInvoiceDate:   normalizeDate(xmltree.Text(root, "IssueDate")),
		model.KeyCurrency:      strings.TrimSpace(xmltree.Text(root, "DocumentCurrencyCode")),
		model.KeySellerName:    ublPartyName(seller),
		model.KeySellerTaxID:   xmltree.Text(seller, "PartyTaxScheme", "CompanyID"),
		model.KeyBuyerName:     ublPartyName(buyer),
		model.KeyBuyerTaxID:    xmltree.Text(buyer, "PartyTaxScheme", "CompanyID"),
		model.KeyNetTotal:      decimal.NormalizeAmount(xmltree.Text(root, "LegalMonetaryTotal", "LineExtensionAmount")),
		model.KeyTaxTotal:      decimal.NormalizeAmount(xmltree.Text(root, "TaxTotal", "TaxAmount")),
		model.KeyGrossTotal: decimal.NormalizeAmount(firstNonEmpty(
			xmltree.Text(root, "LegalMonetaryTotal", "TaxInclusiveAmount"),
			xmltree.Text(root, "LegalMonetaryTotal", "PayableAmount"),
		)),
	}

	f.items = make([]model.Item, 0)
	for _, line := range xmltree.Children(root, "InvoiceLine") {
		f.items = append(f.items, f.convertLine(line))
	}

	f.parsed = true
	return nil
}

func (f *UBL) convertLine(line *etree.Element) model.Item {
	quantity := xmltree.Text(line, "InvoicedQuantity")
	unitPrice := xmltree.Text(line, "Price", "PriceAmount")

	lineTotal := decimal.NormalizeAmount(xmltree.Text(line, "LineExtensionAmount"))
	if lineTotal == "" {
		lineTotal = decimal.LineTotal(quantity, unitPrice)
	}

	return model.Item{
		model.KeyItemDescription: firstNonEmpty(
			xmltree.Text(line, "Item", "Description"),
			xmltree.Text(line, "Item", "Name"),
		),
		model.KeyItemQuantity:  decimal.NormalizeNumber(quantity),
		model.KeyItemUnit:      xmltree.Attr(line, "unitCode", "InvoicedQuantity"),
		model.KeyItemUnitPrice: decimal.NormalizeAmount(unitPrice),
		model.KeyItemLineTotal: lineTotal,
		model.KeyItemTaxRate:   decimal.NormalizeNumber(xmltree.Text(line, "Item", "ClassifiedTaxCategory", "Percent")),
	}
}

// Metadata returns the extracted metadata mapping
func (f *UBL) Metadata() (model.Metadata, error) {
	if !f.parsed {
		return nil, model.NewDefectError(model.DialectUBL, nil, "Metadata called before ParseTree")
	}
	return f.metadata, nil
}

// Items returns the extracted line items in source order
func (f *UBL) Items() ([]model.Item, error) {
	if !f.parsed {
		return nil, model.NewDefectError(model.DialectUBL, nil, "Items called before ParseTree")
	}
	return f.items, nil
}

// ublPartyName resolves a party's display name. UBL documents carry it in
// PartyName/Name, PartyLegalEntity/RegistrationName, or both.
func ublPartyName(party *etree.Element) string {
	return firstNonEmpty(
		xmltree.Text(party, "PartyName", "Name"),
		xmltree.Text(party, "PartyLegalEntity", "RegistrationName"),
	)
}
