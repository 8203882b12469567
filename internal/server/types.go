package server

import (
	"github.com/jgrassler/XML-Invoice-Parser/internal/model"
)

// ParseResponse is the response for the parse endpoint
type ParseResponse struct {
	Status     int            `json:"status"`
	StatusText string         `json:"status_text"`
	Message    string         `json:"message,omitempty"`
	Dialect    string         `json:"dialect,omitempty"`
	Metadata   model.Metadata `json:"metadata,omitempty"`
	Items      []model.Item   `json:"items,omitempty"`
}

// InfoResponse is the response for the info endpoint
type InfoResponse struct {
	WellFormed bool   `json:"well_formed"`
	Dialect    string `json:"dialect,omitempty"`
	Supported  bool   `json:"supported"`
	Size       int    `json:"size"`
}

// FormatInfo describes one registered dialect
type FormatInfo struct {
	Dialect     string `json:"dialect"`
	Description string `json:"description"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
