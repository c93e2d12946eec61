package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/mempocket/mempocket/internal/model"
)

// textExtensions are the file types read verbatim during extraction. Anything
// else falls back to the input's stored content.
var textExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".json": true,
	".yaml": true,
	".yml":  true,
}

// extractContent resolves an input into clean text. It never fails: every
// path returns usable content plus a one-line note describing what happened.
func extractContent(fsys afero.Fs, inp *model.Input) (content, note string) {
	switch inp.Type {
	case model.InputTypeText, model.InputTypeManual:
		return inp.Content, "parsed text input"

	case model.InputTypeFile:
		if inp.FilePath == "" {
			return inp.Content, "raw content"
		}
		name := filepath.Base(inp.FilePath)
		exists, err := afero.Exists(fsys, inp.FilePath)
		if err != nil || !exists {
			return inp.Content, fmt.Sprintf("missing file: %s", name)
		}
		if !textExtensions[strings.ToLower(filepath.Ext(inp.FilePath))] {
			return inp.Content, fmt.Sprintf("file reference: %s", name)
		}
		data, err := afero.ReadFile(fsys, inp.FilePath)
		if err != nil {
			return inp.Content, fmt.Sprintf("unreadable file: %s", name)
		}
		return string(data), fmt.Sprintf("read file: %s", name)
	}

	return inp.Content, "raw content"
}

// excerpt returns the first n runes of s.
func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
