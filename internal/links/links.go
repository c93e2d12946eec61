// Package links extracts wiki-style references from text and resolves them
// into the derived link/backlink/tag index.
package links

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mempocket/mempocket/internal/model"
)

// linkPattern matches [[wiki link]] references. The inner capture excludes
// closing brackets, so nested brackets terminate the reference.
var linkPattern = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// Extract returns every [[reference]] in first-occurrence order, duplicates
// preserved as authored. Returns nil when the text has no references.
func Extract(text string) []string {
	matches := linkPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}

// Rebuild computes a fresh index from the full entry set. It is a pure
// function of its input: callers persist the result, and any entry mutation
// invalidates the previous index entirely.
//
// A raw reference resolves to the entry whose slugified or lowercased title
// equals the reference's slugified or lowercased form. When two titles
// collide under normalization, the most recently updated entry wins.
// Unresolvable references are dropped; they remain visible only as raw
// strings on the entry itself.
func Rebuild(entries []model.Entry) *model.Index {
	index := model.NewIndex()

	ordered := make([]model.Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].UpdatedAt.After(ordered[j].UpdatedAt)
	})

	// Each title contributes two lookup keys: its slug and its lowercase
	// form. First writer wins, and the slice is ordered most recently
	// updated first, so collisions resolve deterministically.
	titleToID := make(map[string]string, len(ordered)*2)
	for _, e := range ordered {
		if slug := model.Slugify(e.Title); slug != "" {
			if _, ok := titleToID[slug]; !ok {
				titleToID[slug] = e.ID
			}
		}
		lower := strings.ToLower(e.Title)
		if _, ok := titleToID[lower]; !ok {
			titleToID[lower] = e.ID
		}
	}

	for _, e := range ordered {
		var resolved []string
		for _, raw := range e.Links {
			if id, ok := resolve(titleToID, raw); ok {
				resolved = append(resolved, id)
			}
		}

		if len(resolved) > 0 {
			index.Links[e.ID] = resolved
		}
		for _, target := range resolved {
			if !contains(index.Backlinks[target], e.ID) {
				index.Backlinks[target] = append(index.Backlinks[target], e.ID)
			}
		}

		for _, tag := range []string{string(e.Entity), string(e.Context)} {
			index.Tags[tag] = append(index.Tags[tag], e.ID)
		}
	}

	return index
}

func resolve(titleToID map[string]string, raw string) (string, bool) {
	if id, ok := titleToID[model.Slugify(raw)]; ok {
		return id, true
	}
	if id, ok := titleToID[strings.ToLower(raw)]; ok {
		return id, true
	}
	return "", false
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
