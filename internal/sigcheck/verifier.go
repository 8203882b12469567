package sigcheck

import (
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"regexp"

	dsig "github.com/russellhaering/goxmldsig"
)

// Verifier verifies XMLDSig signatures against a trust pool
type Verifier struct {
	roots     []*x509.Certificate
	extractor *Extractor
}

// NewVerifier creates a verifier trusting the given root certificates.
// An empty pool still allows signature detection and signer extraction;
// chain validation will fail.
func NewVerifier(roots []*x509.Certificate) *Verifier {
	return &Verifier{
		roots:     roots,
		extractor: NewExtractor(),
	}
}

// LoadTrustPEM parses one or more PEM-encoded certificates
func LoadTrustPEM(pemData []byte) ([]*x509.Certificate, error) {
	var certs []*x509.Certificate
	rest := pemData
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse certificate: %w", err)
		}
		certs = append(certs, cert)
	}
	if len(certs) == 0 {
		return nil, fmt.Errorf("no certificates found in PEM data")
	}
	return certs, nil
}

// Verify checks the XMLDSig signature in the given XML data
func (v *Verifier) Verify(data []byte) (*Result, error) {
	result := NewResult()

	extraction, err := v.extractor.Extract(data)
	if err != nil {
		result.AddError(err.Error())
		return result, err
	}

	result.SignatureFound = true
	result.Dialect = extraction.Dialect

	// Signer info is reported even when validation fails, so callers can
	// see who claims to have signed
	if certData, err := ExtractCertificateData(extraction.SignatureElement); err == nil {
		if cert, err := parseBase64Certificate(certData); err == nil {
			result.SetSigner(cert)
		} else {
			result.AddWarning(fmt.Sprintf("embedded certificate unreadable: %v", err))
		}
	} else {
		result.AddWarning(err.Error())
	}

	validationCtx := dsig.NewDefaultValidationContext(&dsig.MemoryX509CertificateStore{
		Roots: v.roots,
	})

	if _, err := validationCtx.Validate(extraction.SignedElement); err != nil {
		result.SignatureValid = false
		result.AddError(fmt.Sprintf("signature validation failed: %v", err))
		result.ComputeValidity()
		return result, nil
	}

	result.SignatureValid = true
	result.ComputeValidity()
	return result, nil
}

var base64Whitespace = regexp.MustCompile(`\s+`)

// parseBase64Certificate decodes a base64 DER certificate as embedded in
// X509Certificate elements
func parseBase64Certificate(data []byte) (*x509.Certificate, error) {
	cleaned := base64Whitespace.ReplaceAll(data, nil)
	der := make([]byte, base64.StdEncoding.DecodedLen(len(cleaned)))
	n, err := base64.StdEncoding.Decode(der, cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 certificate data: %w", err)
	}
	return x509.ParseCertificate(der[:n])
}
