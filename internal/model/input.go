package model

import "time"

// Input is raw captured material sitting in the inbox until the pipeline
// consumes it. Immutable once created.
type Input struct {
	ID        string    `json:"id"`
	Type      InputType `json:"type"`
	Content   string    `json:"content"`
	FilePath  string    `json:"file_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewInput builds an input with a fresh id.
func NewInput(typ InputType, content, filePath string) *Input {
	return &Input{
		ID:        NewID("input_"),
		Type:      typ,
		Content:   content,
		FilePath:  filePath,
		CreatedAt: time.Now().UTC(),
	}
}
