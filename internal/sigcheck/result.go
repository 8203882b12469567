// Package sigcheck detects and verifies enveloped XMLDSig signatures in
// invoice documents. Verification is offline: chains are checked against a
// caller-supplied PEM trust pool, no revocation lookups are performed.
package sigcheck

import (
	"crypto/x509"
	"time"
)

// Result contains the signature check outcome for one document
type Result struct {
	// Valid is true only if a signature was found and verified
	Valid bool `json:"valid"`

	SignatureFound bool `json:"signature_found"`
	SignatureValid bool `json:"signature_valid"`

	// Dialect of the signed document, when recognizable
	Dialect string `json:"dialect,omitempty"`

	// Signer information from the embedded certificate
	Signer *SignerInfo `json:"signer,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// SignerInfo contains certificate subject information
type SignerInfo struct {
	Name         string    `json:"name"`
	Organization string    `json:"organization,omitempty"`
	SerialNumber string    `json:"serial_number"`
	Issuer       string    `json:"issuer"`
	ValidFrom    time.Time `json:"valid_from"`
	ValidTo      time.Time `json:"valid_to"`
}

// NewResult creates a new empty result
func NewResult() *Result {
	return &Result{
		Warnings: make([]string, 0),
		Errors:   make([]string, 0),
	}
}

// AddWarning adds a non-fatal note to the result
func (r *Result) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddError adds an error message and marks the result invalid
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Valid = false
}

// SetSigner populates SignerInfo from an x509 certificate
func (r *Result) SetSigner(cert *x509.Certificate) {
	if cert == nil {
		return
	}

	signer := &SignerInfo{
		SerialNumber: cert.SerialNumber.String(),
		ValidFrom:    cert.NotBefore,
		ValidTo:      cert.NotAfter,
	}

	if cert.Subject.CommonName != "" {
		signer.Name = cert.Subject.CommonName
	}
	if len(cert.Subject.Organization) > 0 {
		signer.Organization = cert.Subject.Organization[0]
	}
	if cert.Issuer.CommonName != "" {
		signer.Issuer = cert.Issuer.CommonName
	} else if len(cert.Issuer.Organization) > 0 {
		signer.Issuer = cert.Issuer.Organization[0]
	}

	r.Signer = signer
}

// ComputeValidity sets the Valid field from the individual checks
func (r *Result) ComputeValidity() {
	r.Valid = r.SignatureFound && r.SignatureValid && len(r.Errors) == 0
}
