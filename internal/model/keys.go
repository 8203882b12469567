package model

// Dialect identifies one supported XML invoice standard
type Dialect string

const (
	DialectUBL     Dialect = "UBL"
	DialectCII     Dialect = "CrossIndustryInvoice"
	DialectCID     Dialect = "CrossIndustryDocument"
	DialectUnknown Dialect = "Unknown"
)

// Canonical metadata keys. Every dialect populates exactly this set,
// regardless of how the source schema names or nests the fields.
const (
	KeyInvoiceNumber = "invoice_number"
	KeyInvoiceDate   = "invoice_date"
	KeyCurrency      = "currency"
	KeySellerName    = "seller_name"
	KeySellerTaxID   = "seller_tax_id"
	KeyBuyerName     = "buyer_name"
	KeyBuyerTaxID    = "buyer_tax_id"
	KeyNetTotal      = "net_total"
	KeyTaxTotal      = "tax_total"
	KeyGrossTotal    = "gross_total"
)

// Canonical per-line-item keys
const (
	KeyItemDescription = "description"
	KeyItemQuantity    = "quantity"
	KeyItemUnit        = "unit"
	KeyItemUnitPrice   = "unit_price"
	KeyItemLineTotal   = "line_total"
	KeyItemTaxRate     = "tax_rate"
)

// Metadata maps canonical document-level keys to normalized scalar values.
// Amounts carry exactly two fractional digits, dates are ISO-8601.
type Metadata map[string]string

// Item maps canonical line-item keys to normalized scalar values
type Item map[string]string

// MetadataKeys returns the canonical metadata key set
func MetadataKeys() []string {
	return []string{
		KeyInvoiceNumber,
		KeyInvoiceDate,
		KeyCurrency,
		KeySellerName,
		KeySellerTaxID,
		KeyBuyerName,
		KeyBuyerTaxID,
		KeyNetTotal,
		KeyTaxTotal,
		KeyGrossTotal,
	}
}

// ItemKeys returns the canonical per-item key set
func ItemKeys() []string {
	return []string{
		KeyItemDescription,
		KeyItemQuantity,
		KeyItemUnit,
		KeyItemUnitPrice,
		KeyItemLineTotal,
		KeyItemTaxRate,
	}
}

// VerifyKeys compares a populated mapping against a canonical key list.
// It returns the keys absent from the mapping and the keys present in the
// mapping but not part of the canonical set.
func VerifyKeys(got map[string]string, want []string) (missing, extra []string) {
	wanted := make(map[string]bool, len(want))
	for _, k := range want {
		wanted[k] = true
		if _, ok := got[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range got {
		if !wanted[k] {
			extra = append(extra, k)
		}
	}
	return missing, extra
}

// KeyDifference returns the elements of want not contained in have.
// Used for the declared-vs-actual capability check at format registration.
func KeyDifference(want, have []string) []string {
	held := make(map[string]bool, len(have))
	for _, k := range have {
		held[k] = true
	}
	var diff []string
	for _, k := range want {
		if !held[k] {
			diff = append(diff, k)
		}
	}
	return diff
}
