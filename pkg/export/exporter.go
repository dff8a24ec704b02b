package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/renameio/v2"

	"github.com/matzehuels/filmframe/pkg/errors"
)

// Exporter receives encoded frames. Implementations decide where the bytes
// go (a directory, memory, a download response).
type Exporter interface {
	Export(ctx context.Context, name string, data []byte) error
}

// DirExporter writes each export as a file in a directory.
type DirExporter struct {
	dir string
}

// NewDirExporter returns an exporter for dir, creating it if needed.
func NewDirExporter(dir string) (*DirExporter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &DirExporter{dir: dir}, nil
}

// Dir returns the output directory.
func (e *DirExporter) Dir() string { return e.dir }

// Path returns the full path an export named name is written to.
func (e *DirExporter) Path(name string) string {
	return filepath.Join(e.dir, name)
}

// Export atomically writes data to dir/name, replacing any existing file.
// name must be a plain file name.
func (e *DirExporter) Export(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := errors.ValidateFileName(name); err != nil {
		return err
	}
	// Readers of dir never observe a partially written frame.
	if err := renameio.WriteFile(e.Path(name), data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Export is one recorded call to a MemoryExporter.
type Export struct {
	Name string
	Data []byte
}

// MemoryExporter records exports in memory.
type MemoryExporter struct {
	mu      sync.Mutex
	exports []Export
}

// NewMemoryExporter returns an empty memory exporter.
func NewMemoryExporter() *MemoryExporter {
	return &MemoryExporter{}
}

// Export records name and a copy of data.
func (m *MemoryExporter) Export(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.exports = append(m.exports, Export{Name: name, Data: slices.Clone(data)})
	m.mu.Unlock()
	return nil
}

// Exports returns the recorded exports in call order.
func (m *MemoryExporter) Exports() []Export {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.exports)
}

// Names returns the recorded export names in call order.
func (m *MemoryExporter) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.exports))
	for i, e := range m.exports {
		names[i] = e.Name
	}
	return names
}

// Ensure both exporters implement Exporter.
var (
	_ Exporter = (*DirExporter)(nil)
	_ Exporter = (*MemoryExporter)(nil)
)
