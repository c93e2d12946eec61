package model

import "time"

// Source records where an entry's content came from.
type Source struct {
	Type InputType `json:"type"`
	Ref  string    `json:"ref,omitempty"`  // path or originating record id
	Hash string    `json:"hash,omitempty"` // sha256 when the source is a file
}

// HistoryEvent is a single append-only change record on an entry.
type HistoryEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Action    HistoryAction `json:"action"`
	By        string        `json:"by"` // "user" or "agent:<name>"
	Diff      string        `json:"diff,omitempty"`
}

// Entry is the core knowledge unit. Its id is immutable after creation and
// its history always starts with a "created" event.
type Entry struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Entity    Entity         `json:"entity"`
	Context   Context        `json:"context"`
	Content   string         `json:"content"`
	Links     []string       `json:"links"` // raw [[references]] as authored, possibly unresolved
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Source    Source         `json:"source"`
	History   []HistoryEvent `json:"history"`
}

// NewEntry builds an entry with a fresh id and the mandatory "created"
// history event attributed to by.
func NewEntry(title string, entity Entity, context Context, content string, links []string, source Source, by string, diff string) *Entry {
	now := time.Now().UTC()
	return &Entry{
		ID:        NewEntryID(title),
		Title:     title,
		Entity:    entity,
		Context:   context,
		Content:   content,
		Links:     links,
		CreatedAt: now,
		UpdatedAt: now,
		Source:    source,
		History: []HistoryEvent{{
			Timestamp: now,
			Action:    HistoryCreated,
			By:        by,
			Diff:      diff,
		}},
	}
}

// Replace swaps the entry's content and raw links, stamping one "updated"
// history event.
func (e *Entry) Replace(content string, links []string, by string) {
	e.Content = content
	e.Links = links
	e.touch(HistoryUpdated, by)
}

// Append concatenates content onto the entry, stamping one "appended"
// history event. The caller re-extracts raw links from the combined
// content afterwards.
func (e *Entry) Append(content string, by string) {
	if e.Content == "" {
		e.Content = content
	} else {
		e.Content = e.Content + "\n\n" + content
	}
	e.touch(HistoryAppended, by)
}

func (e *Entry) touch(action HistoryAction, by string) {
	now := time.Now().UTC()
	e.UpdatedAt = now
	e.History = append(e.History, HistoryEvent{
		Timestamp: now,
		Action:    action,
		By:        by,
	})
}
