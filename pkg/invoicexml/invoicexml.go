// Package invoicexml provides the public API for parsing XML e-invoices
// into a normalized, format-agnostic representation.
//
// The dialect (UBL, CrossIndustryInvoice, CrossIndustryDocument) is
// auto-detected; every dialect populates the same canonical metadata and
// line-item key sets, so downstream consumers see one uniform shape.
//
// Example usage:
//
//	result, err := invoicexml.Parse(raw)
//	if err != nil {
//	    log.Fatal(err) // a registered format module is defective
//	}
//	if result.OK() {
//	    fmt.Println(result.Metadata[invoicexml.KeyGrossTotal])
//	}
package invoicexml

import (
	"github.com/jgrassler/XML-Invoice-Parser/internal/format"
	"github.com/jgrassler/XML-Invoice-Parser/internal/model"
)

// Re-export core types for public API
type (
	Result   = model.Result
	Status   = model.Status
	Metadata = model.Metadata
	Item     = model.Item
	Dialect  = model.Dialect
)

// Re-export status codes. The numeric values are stable.
const (
	StatusOK             = model.StatusOK
	StatusXMLParseFailed = model.StatusXMLParseFailed
	StatusUnknownFormat  = model.StatusUnknownFormat
)

// Re-export dialect identifiers
const (
	DialectUBL     = model.DialectUBL
	DialectCII     = model.DialectCII
	DialectCID     = model.DialectCID
	DialectUnknown = model.DialectUnknown
)

// Re-export canonical metadata keys
const (
	KeyInvoiceNumber = model.KeyInvoiceNumber
	KeyInvoiceDate   = model.KeyInvoiceDate
	KeyCurrency      = model.KeyCurrency
	KeySellerName    = model.KeySellerName
	KeySellerTaxID   = model.KeySellerTaxID
	KeyBuyerName     = model.KeyBuyerName
	KeyBuyerTaxID    = model.KeyBuyerTaxID
	KeyNetTotal      = model.KeyNetTotal
	KeyTaxTotal      = model.KeyTaxTotal
	KeyGrossTotal    = model.KeyGrossTotal
)

// Re-export canonical item keys
const (
	KeyItemDescription = model.KeyItemDescription
	KeyItemQuantity    = model.KeyItemQuantity
	KeyItemUnit        = model.KeyItemUnit
	KeyItemUnitPrice   = model.KeyItemUnitPrice
	KeyItemLineTotal   = model.KeyItemLineTotal
	KeyItemTaxRate     = model.KeyItemTaxRate
)

// Re-export error types
type (
	ParseError  = model.ParseError
	DefectError = model.DefectError
)

// defaultDispatcher backs the package-level Parse. Safe for concurrent
// use: format instances are constructed fresh per call.
var defaultDispatcher = format.NewDefaultDispatcher()

// Parse processes one raw XML document through the built-in dialect
// registry. Malformed XML and unrecognized formats are reported in the
// Result's status, not as errors; a non-nil error means a registered
// format module is defective.
func Parse(raw []byte) (*Result, error) {
	return defaultDispatcher.Parse(raw)
}

// MetadataKeys returns the canonical metadata key set
func MetadataKeys() []string { return model.MetadataKeys() }

// ItemKeys returns the canonical per-item key set
func ItemKeys() []string { return model.ItemKeys() }
