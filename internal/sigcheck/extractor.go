package sigcheck

import (
	"bytes"
	"fmt"

	"github.com/beevik/etree"

	"github.com/jgrassler/XML-Invoice-Parser/internal/xmltree"
)

// XMLDSigNamespace is the W3C XML digital signature namespace
const XMLDSigNamespace = "http://www.w3.org/2000/09/xmldsig#"

// Extractor locates XMLDSig signature elements in invoice documents
type Extractor struct{}

// NewExtractor creates a new signature extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extraction contains the located signature and related elements
type Extraction struct {
	// SignatureElement is the ds:Signature element
	SignatureElement *etree.Element
	// SignedElement is the element that was signed (parent of the
	// signature, or the root for detached placement)
	SignedElement *etree.Element
	// Document is the parsed XML document
	Document *etree.Document
	// Dialect names the invoice dialect the root element indicates
	Dialect string
}

// Extract finds the XMLDSig signature in XML data
func (e *Extractor) Extract(data []byte) (*Extraction, error) {
	doc, err := xmltree.Parse(data)
	if err != nil {
		return nil, err
	}
	root := doc.Root()

	sig := findSignatureElement(root)
	if sig == nil {
		return nil, fmt.Errorf("no Signature element found in document")
	}

	signedElement := sig.Parent()
	if signedElement == nil {
		signedElement = root
	}

	return &Extraction{
		SignatureElement: sig,
		SignedElement:    signedElement,
		Document:         doc,
		Dialect:          dialectFromRoot(root),
	}, nil
}

// CanExtract returns true if the data appears to be XML carrying a
// signature element
func (e *Extractor) CanExtract(data []byte) bool {
	if len(data) < 5 {
		return false
	}

	trimmed := bytes.TrimSpace(data)
	if !bytes.HasPrefix(trimmed, []byte("<?xml")) && !bytes.HasPrefix(trimmed, []byte("<")) {
		return false
	}

	return bytes.Contains(data, []byte("<Signature")) ||
		bytes.Contains(data, []byte(":Signature"))
}

// findSignatureElement searches for a Signature element. UBL places it
// under an extension container, the CrossIndustry formats append it to the
// root, so known paths are tried before falling back to a full scan.
func findSignatureElement(root *etree.Element) *etree.Element {
	searchPaths := [][]string{
		// UBL extension container
		{"UBLExtensions", "UBLExtension", "ExtensionContent", "Signature"},
		// Enveloped at root level (CII, CID, plain placements)
		{"Signature"},
	}

	for _, path := range searchPaths {
		if elem := xmltree.Find(root, path...); elem != nil {
			return elem
		}
	}

	return xmltree.FindRecursive(root, "Signature")
}

// dialectFromRoot identifies the invoice dialect from the root element
func dialectFromRoot(root *etree.Element) string {
	switch root.Tag {
	case "Invoice":
		return "UBL"
	case "CrossIndustryInvoice":
		return "CrossIndustryInvoice"
	case "CrossIndustryDocument":
		return "CrossIndustryDocument"
	default:
		return "Unknown"
	}
}

// ExtractCertificateData extracts the base64-encoded certificate from a
// Signature element
func ExtractCertificateData(sig *etree.Element) ([]byte, error) {
	if certText := xmltree.Text(sig, "KeyInfo", "X509Data", "X509Certificate"); certText != "" {
		return []byte(certText), nil
	}
	return nil, fmt.Errorf("no X509Certificate found in Signature")
}
