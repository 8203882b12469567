// Package format implements detection and extraction for the supported XML
// invoice dialects. Each dialect implements Format; an ordered Registry
// defines detection precedence and the Dispatcher orchestrates one parse
// call end to end.
package format

import (
	"github.com/beevik/etree"

	"github.com/jgrassler/XML-Invoice-Parser/internal/model"
)

// Format is implemented once per supported invoice dialect. A Format
// instance accumulates per-document extraction state, so the dispatcher
// constructs a fresh instance for every document.
type Format interface {
	// Dialect returns the dialect identifier
	Dialect() model.Dialect

	// Supported returns a one-line description of the dialect, used in
	// diagnostics when no dialect matches
	Supported() string

	// CheckSignature reports whether the document belongs to this dialect.
	// It inspects the root element's namespace and name and must be a pure
	// predicate: well-formed but foreign XML is "no match", never an error.
	CheckSignature(doc *etree.Document) bool

	// MetadataKeys returns the canonical metadata keys this dialect
	// commits to populating
	MetadataKeys() []string

	// ItemKeys returns the canonical per-item keys this dialect commits
	// to populating
	ItemKeys() []string

	// DeclaredMetadataCapability is the hand-maintained advertisement of
	// metadata keys the extractor actually produces. Checked against
	// MetadataKeys at first use; a shortfall is a module defect.
	DeclaredMetadataCapability() []string

	// DeclaredItemCapability is the per-item counterpart of
	// DeclaredMetadataCapability
	DeclaredItemCapability() []string

	// ParseTree performs all extraction from the document tree. Calling it
	// twice on the same instance is a no-op, not a corruption.
	ParseTree(doc *etree.Document) error

	// Metadata returns the key-complete metadata mapping. Returns a
	// DefectError when called before ParseTree.
	Metadata() (model.Metadata, error)

	// Items returns the key-complete line items in source document order.
	// Returns a DefectError when called before ParseTree.
	Items() ([]model.Item, error)
}

// Constructor builds a fresh Format instance
type Constructor func() Format

// Registry holds the ordered set of candidate dialects. Detection uses
// first-match, so when two signatures could both match an ambiguous
// document the earlier-registered dialect wins. The registry is read-only
// after construction and safe to share across concurrent parse calls.
type Registry struct {
	constructors []Constructor
}

// NewRegistry creates a registry with all built-in dialects.
// Order matters: more specific signatures should come before generic ones.
func NewRegistry() *Registry {
	return &Registry{
		constructors: []Constructor{
			NewUBL,
			NewCrossIndustryInvoice,
			NewCrossIndustryDocument,
		},
	}
}

// NewEmptyRegistry creates a registry with no dialects registered
func NewEmptyRegistry() *Registry {
	return &Registry{}
}

// Register adds a custom dialect to the registry.
// It is prepended so custom dialects take detection priority.
func (r *Registry) Register(c Constructor) {
	r.constructors = append([]Constructor{c}, r.constructors...)
}

// Formats returns fresh instances of every registered dialect, in
// detection precedence order.
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.constructors))
	for _, c := range r.constructors {
		out = append(out, c())
	}
	return out
}

// Detect returns a fresh instance of the first dialect whose signature
// matches the document, or nil when none matches.
func (r *Registry) Detect(doc *etree.Document) Format {
	for _, c := range r.constructors {
		f := c()
		if f.CheckSignature(doc) {
			return f
		}
	}
	return nil
}
