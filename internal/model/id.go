package model

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	slugMaxLen    = 30
	entryIDSuffix = 8
	recordIDLen   = 12
)

// NewID generates a short random id with the given prefix, e.g. "input_a1b2c3d4e5f6".
func NewID(prefix string) string {
	return prefix + hexID(recordIDLen)
}

// NewEntryID derives an entry id from the title's slug plus a random suffix.
// Titles that slugify to nothing (e.g. all punctuation) get a bare random id.
func NewEntryID(title string) string {
	slug := Slugify(title)
	if slug == "" {
		return hexID(entryIDSuffix)
	}
	if len(slug) > slugMaxLen {
		slug = strings.TrimRight(slug[:slugMaxLen], "-")
	}
	return slug + "-" + hexID(entryIDSuffix)
}

func hexID(n int) string {
	u := uuid.New()
	return strings.ReplaceAll(u.String(), "-", "")[:n]
}

// stripMarks removes combining marks left over after NFD decomposition,
// so "Café" slugifies to "cafe".
var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Slugify lowercases the text, strips diacritics, and collapses every
// non-alphanumeric run into a single hyphen.
func Slugify(text string) string {
	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
