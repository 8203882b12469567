package format

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jgrassler/XML-Invoice-Parser/internal/model"
	"github.com/jgrassler/XML-Invoice-Parser/internal/xmltree"
)

// Dispatcher owns the single entry point for turning raw XML into a
// normalized Result. The two expected failure classes (malformed XML,
// unrecognized format) come back inside the Result; defects in a format
// module come back as a non-nil error and never produce a Result.
type Dispatcher struct {
	registry *Registry

	verifiedMu sync.Mutex
	verified   map[model.Dialect]bool
}

// NewDispatcher creates a dispatcher over the given registry
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		verified: make(map[model.Dialect]bool),
	}
}

// NewDefaultDispatcher creates a dispatcher over the built-in dialects
func NewDefaultDispatcher() *Dispatcher {
	return NewDispatcher(NewRegistry())
}

// Registry returns the dispatcher's registry
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Parse processes one raw XML document:
// well-formedness parse, registry scan, capability self-check on the
// matched dialect, extraction, then Result assembly.
func (d *Dispatcher) Parse(raw []byte) (*model.Result, error) {
	doc, err := xmltree.Parse(raw)
	if err != nil {
		return &model.Result{
			Status:  model.StatusXMLParseFailed,
			Message: fmt.Sprintf("input is not well-formed XML: %v (input: %s)", err, inputExcerpt(raw)),
		}, nil
	}

	f := d.registry.Detect(doc)
	if f == nil {
		return &model.Result{
			Status:  model.StatusUnknownFormat,
			Message: d.unknownFormatMessage(),
		}, nil
	}

	if err := d.verifyCapability(f); err != nil {
		return nil, err
	}

	if err := f.ParseTree(doc); err != nil {
		return nil, err
	}

	// Force full extraction so any fault surfaces before success is reported
	metadata, err := f.Metadata()
	if err != nil {
		return nil, err
	}
	items, err := f.Items()
	if err != nil {
		return nil, err
	}

	return &model.Result{
		Status:   model.StatusOK,
		Dialect:  f.Dialect(),
		Metadata: metadata,
		Items:    items,
	}, nil
}

// verifyCapability runs the declared-vs-actual key check once per dialect.
// A shortfall means the module's extractor was extended without updating
// its capability declaration (or the reverse) and is a defect, not a
// property of the document being parsed.
func (d *Dispatcher) verifyCapability(f Format) error {
	d.verifiedMu.Lock()
	defer d.verifiedMu.Unlock()

	if d.verified[f.Dialect()] {
		return nil
	}

	if missing := model.KeyDifference(f.MetadataKeys(), f.DeclaredMetadataCapability()); len(missing) > 0 {
		return model.NewDefectError(f.Dialect(), missing, "metadata capability does not cover canonical keys")
	}
	if missing := model.KeyDifference(f.ItemKeys(), f.DeclaredItemCapability()); len(missing) > 0 {
		return model.NewDefectError(f.Dialect(), missing, "item capability does not cover canonical keys")
	}

	d.verified[f.Dialect()] = true
	return nil
}

func (d *Dispatcher) unknownFormatMessage() string {
	var b strings.Builder
	b.WriteString("unrecognized invoice format; supported formats:")
	for _, f := range d.registry.Formats() {
		b.WriteString("\n  - ")
		b.WriteString(f.Supported())
	}
	return b.String()
}

// inputExcerpt renders the offending input for diagnostics, truncated so a
// multi-megabyte document does not end up inside an error message.
func inputExcerpt(raw []byte) string {
	const limit = 200
	if len(raw) == 0 {
		return "<empty>"
	}
	if len(raw) <= limit {
		return string(raw)
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(raw[cut]) {
		cut--
	}
	return string(raw[:cut]) + "..."
}
