// Package domain contains core business entities and rules.
package domain

// Quote represents a single displayable quotation.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is the quote's stable identifier: its 1-based position in the catalog.
	ID string

	// Content is the text of the quote. May contain Unicode symbols and emoji.
	Content string
}
