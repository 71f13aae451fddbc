// SPDX-License-Identifier: EPL-2.0

package tracks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long Watch waits for a burst of file events to
// settle before rescanning.
const DefaultDebounce = 500 * time.Millisecond

// Registry keeps the current catalog for a fixed list of roots. Lookup is
// lock free, so it can be called from the audio goroutine while a rescan
// runs elsewhere.
type Registry struct {
	roots      []Root
	extensions []string
	log        *zap.Logger

	current atomic.Pointer[Catalog]

	scanMu   sync.Mutex
	onChange []func(*Catalog)
}

// NewRegistry creates a registry with an empty catalog. Call Rescan to fill it.
func NewRegistry(roots []Root, extensions []string, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{
		roots:      append([]Root(nil), roots...),
		extensions: append([]string(nil), extensions...),
		log:        log,
	}
	r.current.Store(&Catalog{byID: map[string]Descriptor{}})
	return r
}

// OnChange registers fn to be called with every catalog a rescan produces.
func (r *Registry) OnChange(fn func(*Catalog)) {
	r.scanMu.Lock()
	r.onChange = append(r.onChange, fn)
	r.scanMu.Unlock()
}

// Rescan walks all roots again and swaps the catalog in one step. The error
// joins per-directory *RegistryError values; the new catalog is installed
// regardless.
func (r *Registry) Rescan() (*Catalog, error) {
	r.scanMu.Lock()
	defer r.scanMu.Unlock()

	cat, err := Scan(r.roots, r.extensions)
	r.current.Store(cat)

	if err != nil {
		r.log.Warn("sound scan incomplete", zap.Error(err))
	}
	r.log.Info("sound catalog updated", zap.Int("tracks", cat.Len()), zap.Int("roots", len(r.roots)))

	for _, fn := range r.onChange {
		fn(cat)
	}

	return cat, err
}

func (r *Registry) Catalog() *Catalog { return r.current.Load() }

func (r *Registry) Lookup(id string) (Descriptor, bool) {
	return r.current.Load().Lookup(id)
}

// Watch rescans whenever files change below one of the directory roots.
// It blocks until ctx is done. Bundled roots are not watched. A root that
// does not exist yet is watched through its nearest existing parent and
// picked up once it is created.
func (r *Registry) Watch(ctx context.Context, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	var pending []string
	watched := 0
	for _, root := range r.roots {
		if root.FS != nil || root.Dir == "" {
			continue
		}
		if n := r.addTree(watcher, root.Dir); n > 0 {
			watched += n
			continue
		}
		if r.watchParent(watcher, root.Dir) {
			pending = append(pending, root.Dir)
			watched++
		}
	}
	if watched == 0 {
		return ErrNoRoots
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					r.addTree(watcher, ev.Name)
				}
				pending = r.adoptPending(watcher, pending)
			}
			r.log.Debug("sound directory changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("sound watcher error", zap.Error(err))

		case <-timer.C:
			_, _ = r.Rescan()
		}
	}
}

// watchParent watches the nearest existing ancestor of a missing dir.
func (r *Registry) watchParent(w *fsnotify.Watcher, dir string) bool {
	for p := filepath.Dir(filepath.Clean(dir)); ; p = filepath.Dir(p) {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if err := w.Add(p); err != nil {
				r.log.Warn("cannot watch directory", zap.String("path", p), zap.Error(err))
				return false
			}
			r.log.Debug("waiting for sound directory", zap.String("path", dir), zap.String("parent", p))
			return true
		}
		if next := filepath.Dir(p); next == p {
			return false
		}
	}
}

// adoptPending starts watching roots that now exist and moves the parent
// watch of the others closer as their ancestors appear.
func (r *Registry) adoptPending(w *fsnotify.Watcher, pending []string) []string {
	kept := pending[:0]
	for _, dir := range pending {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.addTree(w, dir)
			r.log.Info("sound directory appeared", zap.String("path", dir))
			continue
		}
		r.watchParent(w, dir)
		kept = append(kept, dir)
	}
	return kept
}

// addTree watches dir and every directory below it, since fsnotify is not
// recursive. Missing directories are ignored.
func (r *Registry) addTree(w *fsnotify.Watcher, dir string) int {
	added := 0
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			r.log.Warn("cannot watch directory", zap.String("path", p), zap.Error(err))
			return fs.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		if err := w.Add(p); err != nil {
			r.log.Warn("cannot watch directory", zap.String("path", p), zap.Error(err))
			return nil
		}
		added++
		return nil
	})
	if err != nil {
		r.log.Warn("walking watch tree", zap.String("path", dir), zap.Error(err))
	}
	return added
}
