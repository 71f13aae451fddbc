// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs  map[string]Decoder
	aliases map[string]string

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs:  make(map[string]Decoder),
		aliases: make(map[string]string),
		mtx:     &sync.RWMutex{},
	}
}

// Register adds d under format. Extra names (file extensions) can be given
// as aliases, so "aif" can resolve to the "aiff" decoder.
func (r *Registry) Register(format string, d Decoder, aliases ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	format = normalizeFormat(format)
	r.codecs[format] = d
	for _, a := range aliases {
		r.aliases[normalizeFormat(a)] = format
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	format = normalizeFormat(format)
	if canonical, ok := r.aliases[format]; ok {
		format = canonical
	}

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the registered format keys, sorted.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Supports reports whether a decoder exists for the extension of path.
func (r *Registry) Supports(path string) bool {
	_, ok := r.Get(FormatFromPath(path))
	return ok
}

// FormatFromPath returns the lower-case extension of path without the dot.
func FormatFromPath(path string) string {
	return normalizeFormat(filepath.Ext(path))
}

func normalizeFormat(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
}
