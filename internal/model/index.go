package model

import "time"

// Index is the derived link/backlink/tag graph over all entries. It is a
// disposable cache: wholly reconstructible from the entry set and never a
// source of truth for content.
type Index struct {
	Links     map[string][]string `json:"links"`     // entry id -> resolved target ids
	Backlinks map[string][]string `json:"backlinks"` // entry id -> resolved source ids
	Tags      map[string][]string `json:"tags"`      // category value -> entry ids
	UpdatedAt time.Time           `json:"updated_at"`
}

// NewIndex returns an empty index with all maps allocated.
func NewIndex() *Index {
	return &Index{
		Links:     make(map[string][]string),
		Backlinks: make(map[string][]string),
		Tags:      make(map[string][]string),
		UpdatedAt: time.Now().UTC(),
	}
}

// Classification is the oracle's verdict on a piece of text.
type Classification struct {
	Entity         Entity  `json:"entity"`
	Context        Context `json:"context"`
	Confidence     float64 `json:"confidence"`
	Reason         string  `json:"reason"`
	SuggestedTitle string  `json:"suggested_title,omitempty"`
}
