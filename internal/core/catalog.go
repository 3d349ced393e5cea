package core

import "iter"

// CatalogEntry is one signal type: a short key and the text shown to
// observers when a student raises it.
type CatalogEntry struct {
	Key  string
	Text string
}

// SignalCatalog maps signal-type keys to display text. It is fixed at
// construction and shared read-only by every classroom, so it needs no
// synchronization.
type SignalCatalog struct {
	keys  []string
	texts map[string]string
}

// NewCatalog builds a catalog from entries, preserving their order.
func NewCatalog(entries []CatalogEntry) *SignalCatalog {
	c := &SignalCatalog{
		keys:  make([]string, 0, len(entries)),
		texts: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if _, exists := c.texts[e.Key]; exists {
			continue
		}
		c.keys = append(c.keys, e.Key)
		c.texts[e.Key] = e.Text
	}
	return c
}

// DefaultCatalog returns the built-in set of classroom signals.
func DefaultCatalog() *SignalCatalog {
	return NewCatalog([]CatalogEntry{
		{Key: "pencil", Text: "I need a sharpened pencil"},
		{Key: "water", Text: "I need to get water"},
		{Key: "tissue", Text: "I need a tissue"},
		{Key: "restroom", Text: "I need to use the restroom"},
		{Key: "emergency", Text: "There's an emergency."},
		{Key: "question", Text: "I have a question"},
		{Key: "sick", Text: "I am not feeling well."},
		{Key: "move", Text: "I want to move seats"},
	})
}

// Lookup returns the display text for a signal-type key.
func (c *SignalCatalog) Lookup(key string) (string, bool) {
	text, ok := c.texts[key]
	return text, ok
}

// Entries iterates over all signal types in catalog order. The sequence is
// finite and can be ranged over more than once.
func (c *SignalCatalog) Entries() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, key := range c.keys {
			if !yield(key, c.texts[key]) {
				return
			}
		}
	}
}

// Len returns the number of signal types.
func (c *SignalCatalog) Len() int {
	return len(c.keys)
}
