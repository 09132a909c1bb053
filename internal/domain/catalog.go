package domain

import (
	"strconv"
	"strings"
)

// Catalog is the fixed set of quotes the service can serve.
// It is built once at startup and never mutated afterwards, so concurrent
// readers need no locking. There is no mutation API at all: the zero quote
// list is rejected at the single construction point rather than handled at
// request time.
type Catalog struct {
	quotes []Quote
}

// NewCatalog builds a catalog from raw quote strings in display order.
// An empty list or a blank entry is a validation error.
func NewCatalog(contents []string) (*Catalog, error) {
	if len(contents) == 0 {
		return nil, NewValidationError("quotes", "catalog must contain at least one quote")
	}

	quotes := make([]Quote, len(contents))
	for i, content := range contents {
		if strings.TrimSpace(content) == "" {
			return nil, NewValidationError("quotes", "catalog entry "+strconv.Itoa(i+1)+" is blank")
		}

		quotes[i] = Quote{
			ID:      strconv.Itoa(i + 1),
			Content: content,
		}
	}

	return &Catalog{quotes: quotes}, nil
}

// Len returns the number of quotes in the catalog. Always at least 1.
func (c *Catalog) Len() int {
	return len(c.quotes)
}

// Quote returns the quote at position i. Panics if i is out of range,
// matching slice semantics - callers derive i from Len.
func (c *Catalog) Quote(i int) Quote {
	return c.quotes[i]
}

// ByID looks up a quote by its identifier (the 1-based catalog position).
func (c *Catalog) ByID(id string) (Quote, bool) {
	n, err := strconv.Atoi(id)
	if err != nil || n < 1 || n > len(c.quotes) {
		return Quote{}, false
	}

	return c.quotes[n-1], true
}

// All returns a copy of every quote in catalog order.
func (c *Catalog) All() []Quote {
	out := make([]Quote, len(c.quotes))
	copy(out, c.quotes)

	return out
}

// Contains reports whether content matches a catalog entry exactly.
func (c *Catalog) Contains(content string) bool {
	for _, q := range c.quotes {
		if q.Content == content {
			return true
		}
	}

	return false
}
