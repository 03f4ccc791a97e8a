package dataset

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/shoplytics/shoplytics/internal/io"
	"github.com/shoplytics/shoplytics/internal/table"
)

// Loader reads dataset sources from a directory into typed tables. Loads are
// memoized per Loader instance: repeated calls for the same source return the
// same table without re-reading the file. The source files never change
// within a session, so no invalidation exists; fresh data means constructing
// a fresh Loader.
type Loader struct {
	dir   string
	files map[string]string
	mem   memory.Allocator

	mu    sync.Mutex
	cache map[string]*table.Table
}

// NewLoader creates a loader rooted at dir. files overrides the default
// source-to-file mapping for the sources it names; mem may be nil.
func NewLoader(dir string, files map[string]string, mem memory.Allocator) *Loader {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	merged := DefaultFileNames()
	for source, name := range files {
		merged[source] = name
	}
	return &Loader{
		dir:   dir,
		files: merged,
		mem:   mem,
		cache: make(map[string]*table.Table),
	}
}

// Load returns the table for the named source, reading it on first use.
func (l *Loader) Load(source string) (*table.Table, error) {
	schema, ok := schemas[source]
	if !ok {
		return nil, fmt.Errorf("unknown dataset source %q", source)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if tbl, ok := l.cache[source]; ok {
		return tbl, nil
	}

	tbl, err := io.ReadFile(filepath.Join(l.dir, l.files[source]), schema, l.mem)
	if err != nil {
		return nil, err
	}
	l.cache[source] = tbl
	return tbl, nil
}
