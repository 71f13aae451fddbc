// SPDX-License-Identifier: EPL-2.0

package tracks

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"unicode"
)

// Descriptor identifies one playable sound. It is immutable once a scan
// created it.
type Descriptor struct {
	// ID is the normalised file stem, stable across restarts.
	ID string
	// Name is a human readable name derived from the file stem.
	Name string
	// Category is the first directory below the root, or "" for files at
	// the root itself.
	Category string
	// Format is the lower-case file extension.
	Format string
	// Location is the slash separated path of the file inside its root.
	Location string
	// Origin is the name of the root the file came from.
	Origin string
	// Bundled marks sounds that ship with the application.
	Bundled bool

	fsys fs.FS
	dir  string
}

// Open reads the whole encoded file. It performs blocking I/O.
func (d Descriptor) Open() ([]byte, error) {
	if d.fsys == nil {
		return nil, fmt.Errorf("track %q: %w", d.ID, fs.ErrInvalid)
	}
	data, err := fs.ReadFile(d.fsys, d.Location)
	if err != nil {
		return nil, fmt.Errorf("track %q: %w", d.ID, err)
	}
	return data, nil
}

// Path is the filesystem path for directory roots and the in-FS location
// for bundled ones.
func (d Descriptor) Path() string {
	if d.dir == "" {
		return d.Location
	}
	return filepath.Join(d.dir, filepath.FromSlash(d.Location))
}

// NormalizeID turns a file stem or user input into a track id: letters are
// lower-cased and runs of spaces, dashes and underscores collapse into a
// single underscore. Dots are kept, so NormalizeID(id) == id for every id a
// scan produces. Callers holding a file name strip the extension first.
func NormalizeID(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	base := path.Base(filepath.ToSlash(name))

	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(strings.TrimSpace(base)) {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('_')
		}
		sep = false
		b.WriteRune(r)
	}
	return b.String()
}

// displayName makes "heavy_rain" read as "Heavy Rain".
func displayName(stem string) string {
	words := strings.FieldsFunc(stem, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_'
	})
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
