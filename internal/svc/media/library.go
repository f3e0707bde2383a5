// If you are AI: This file implements the media library shared by the HTTP surfaces.
// It maps request names to .flv files under one directory and tracks active viewers per file.

package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"flvkit/internal/core/protocol/flv"
	"flvkit/internal/index"
	"flvkit/internal/remux"
)

// Ext is the file extension of served containers.
const Ext = ".flv"

var (
	// ErrBadName means a request name cannot map to a file in the library.
	ErrBadName = errors.New("media: invalid name")
	// ErrNotFound means no container exists under the name.
	ErrNotFound = errors.New("media: not found")
)

// Library serves the containers of one directory.
// Lock expectations: viewers is mutex-protected; files are opened per request.
type Library struct {
	dir   string
	index *index.Index // nil disables seeking
	remux remux.Options
	opts  []flv.Option
	log   *log.Logger

	mu      sync.RWMutex
	viewers map[string]int
}

// NewLibrary creates a library over dir. ix may be nil. opts are applied to
// every replay; their StartOffset is ignored.
func NewLibrary(dir string, ix *index.Index, opts remux.Options, streamOpts ...flv.Option) *Library {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	// index keys are absolute paths
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &Library{
		dir:     dir,
		index:   ix,
		remux:   opts,
		opts:    streamOpts,
		log:     logger,
		viewers: make(map[string]int),
	}
}

// ValidName reports whether name is a bare file stem: no separators, no
// leading dot, nothing that escapes the directory.
func ValidName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}

// Path returns the file backing name.
func (l *Library) Path(name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}
	path := filepath.Join(l.dir, name+Ext)
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return path, nil
}

// Names lists the servable names in sorted order.
func (l *Library) Names() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), Ext)
		if !ok || e.IsDir() || !ValidName(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Open opens the container backing name.
func (l *Library) Open(name string) (*flv.Stream, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}
	return flv.Open(path, l.opts...)
}

// StartOffset returns the offset of the last keyframe at or before ms,
// building the index on demand. Without an index, or before the first
// keyframe, replay starts at the beginning.
func (l *Library) StartOffset(name string, ms uint32) (int64, error) {
	if l.index == nil || ms == 0 {
		return 0, nil
	}
	path, err := l.Path(name)
	if err != nil {
		return 0, err
	}
	if err := l.index.Ensure(path); err != nil {
		return 0, err
	}
	e, err := l.index.Lookup(path, ms)
	if errors.Is(err, index.ErrNoKeyframe) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return e.Offset, nil
}

// Seek positions a replay.
type Seek struct {
	Offset int64 // tag offset from StartOffset
	Rebase bool  // restart timestamps at zero
}

// Replay remuxes s to w from seek, counting the caller as a viewer of name
// for the duration. s is closed on return.
func (l *Library) Replay(ctx context.Context, name string, s *flv.Stream, seek Seek, w io.Writer) (remux.Stats, error) {
	defer s.Close()
	l.attach(name)
	defer l.detach(name)

	opts := l.remux
	opts.StartOffset = seek.Offset
	opts.Rebase = seek.Rebase
	st, err := remux.Remux(ctx, s, w, opts)
	if err != nil {
		l.log.Printf("replay %s: %v", name, err)
	}
	return st, err
}

// Viewers returns the number of active replays of name.
func (l *Library) Viewers(name string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.viewers[name]
}

// attach counts a new viewer.
func (l *Library) attach(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.viewers[name]++
}

// detach drops a viewer and forgets names nobody watches.
func (l *Library) detach(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.viewers[name]--; l.viewers[name] <= 0 {
		delete(l.viewers, name)
	}
}
