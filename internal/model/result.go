package model

// Status is the outcome class of one parse call. The numeric values are
// stable and externally observable.
type Status int

const (
	// StatusOK means the document was recognized and fully extracted
	StatusOK Status = 0

	// StatusXMLParseFailed means the input is not well-formed XML
	StatusXMLParseFailed Status = 1

	// StatusUnknownFormat means well-formed XML matched no registered dialect
	StatusUnknownFormat Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusXMLParseFailed:
		return "XML_PARSE_FAILED"
	case StatusUnknownFormat:
		return "UNKNOWN_FORMAT"
	default:
		return "INVALID_STATUS"
	}
}

// Result is the object returned to the caller for one document.
// Metadata and Items are populated iff Status is StatusOK; Message is
// populated iff Status is not StatusOK. A Result is never partially filled.
type Result struct {
	Status   Status   `json:"status"`
	Message  string   `json:"message,omitempty"`
	Dialect  Dialect  `json:"dialect,omitempty"`
	Metadata Metadata `json:"metadata,omitempty"`
	Items    []Item   `json:"items,omitempty"`
}

// OK reports whether the parse succeeded
func (r *Result) OK() bool {
	return r.Status == StatusOK
}
