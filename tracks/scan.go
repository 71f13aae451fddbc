// SPDX-License-Identifier: EPL-2.0

package tracks

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// Root is one place sounds are discovered from.
type Root struct {
	Name    string
	Dir     string // set for filesystem directories
	FS      fs.FS
	Bundled bool
}

// DirRoot is a filesystem directory. A directory that does not exist is
// skipped by Scan without an error.
func DirRoot(dir string) Root {
	return Root{Name: dir, Dir: dir}
}

// FSRoot is a bundled file system such as an embed.FS.
func FSRoot(name string, fsys fs.FS) Root {
	return Root{Name: name, FS: fsys, Bundled: true}
}

func (r Root) fsys() fs.FS {
	if r.FS != nil {
		return r.FS
	}
	return os.DirFS(r.Dir)
}

// Catalog is the immutable result of a scan.
type Catalog struct {
	byID  map[string]Descriptor
	order []Descriptor
}

// Lookup returns the descriptor for id. The id is normalised first, so
// "Heavy Rain" finds "heavy_rain".
func (c *Catalog) Lookup(id string) (Descriptor, bool) {
	if c == nil {
		return Descriptor{}, false
	}
	d, ok := c.byID[NormalizeID(id)]
	return d, ok
}

// All returns the descriptors sorted by category and name.
func (c *Catalog) All() []Descriptor {
	if c == nil {
		return nil
	}
	return append([]Descriptor(nil), c.order...)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Scan walks roots in order and builds a catalog of files whose extension is
// in extensions. On id collisions later roots win, so user sounds shadow
// bundled ones. Unreadable directories are reported as *RegistryError values
// joined into the returned error while the rest of the scan carries on; the
// catalog is always usable.
func Scan(roots []Root, extensions []string) (*Catalog, error) {
	allowed := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		allowed[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}

	byID := make(map[string]Descriptor)
	var errs []error

	for _, root := range roots {
		if root.FS == nil {
			if root.Dir == "" {
				continue
			}
			info, err := os.Stat(root.Dir)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				errs = append(errs, &RegistryError{Root: root.Name, Err: err})
				continue
			}
			if !info.IsDir() {
				errs = append(errs, &RegistryError{Root: root.Name, Err: errors.New("not a directory")})
				continue
			}
		}

		found, rootErrs := scanRoot(root, allowed)
		errs = append(errs, rootErrs...)

		for _, d := range found {
			byID[d.ID] = d
		}
	}

	order := make([]Descriptor, 0, len(byID))
	for _, d := range byID {
		order = append(order, d)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].Category != order[j].Category {
			return order[i].Category < order[j].Category
		}
		return order[i].ID < order[j].ID
	})

	return &Catalog{byID: byID, order: order}, errors.Join(errs...)
}

// scanRoot returns the files of one root in lexical order, so that within a
// root the last of several files sharing an id wins deterministically.
func scanRoot(root Root, allowed map[string]bool) ([]Descriptor, []error) {
	var (
		found []Descriptor
		errs  []error
	)

	fsys := root.fsys()
	walkErr := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, &RegistryError{Root: root.Name, Path: p, Err: err})
			if d == nil || d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		name := d.Name()
		if p != "." && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		suffix := path.Ext(name)
		ext := strings.ToLower(strings.TrimPrefix(suffix, "."))
		if !allowed[ext] {
			return nil
		}
		stem := strings.TrimSuffix(name, suffix)

		id := NormalizeID(stem)
		if id == "" {
			return nil
		}

		category := ""
		if dir := path.Dir(p); dir != "." {
			category = strings.SplitN(dir, "/", 2)[0]
		}

		found = append(found, Descriptor{
			ID:       id,
			Name:     displayName(stem),
			Category: category,
			Format:   ext,
			Location: p,
			Origin:   root.Name,
			Bundled:  root.Bundled,
			fsys:     fsys,
			dir:      root.Dir,
		})
		return nil
	})
	if walkErr != nil {
		errs = append(errs, &RegistryError{Root: root.Name, Err: walkErr})
	}

	return found, errs
}
