// Package domain holds the on-demand classify request shape
package domain

// ClassifyInput is one page to classify. Nothing is persisted.
type ClassifyInput struct {
	VisibleText    string         `json:"visible_text"    validate:"max=200000"`
	StructuredData map[string]any `json:"structured_data"`
}
