package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonesrussell/newscrawl/internal/article"
)

// DefaultDataDir is where per-source jsonl files land.
const DefaultDataDir = "./data"

// dataDirPerm matches the usual data-directory permissions.
const dataDirPerm = 0o755

// JSONL writes one record per line to a per-source file,
// <dir>/<source>_items.jsonl. Writes are serialized; the file is truncated
// on Open.
type JSONL struct {
	dir    string
	source string

	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
}

// NewJSONL builds a jsonl sink for the given source. An empty dir uses
// DefaultDataDir.
func NewJSONL(dir, source string) *JSONL {
	if dir == "" {
		dir = DefaultDataDir
	}
	return &JSONL{dir: dir, source: source}
}

// Path returns the output file path.
func (s *JSONL) Path() string {
	return filepath.Join(s.dir, s.source+"_items.jsonl")
}

// Open creates the output directory and file.
func (s *JSONL) Open(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	file, err := os.Create(s.Path())
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	s.file = file
	s.writer = bufio.NewWriter(file)
	return nil
}

// Send appends one JSON line.
func (s *JSONL) Send(_ context.Context, record *article.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writer == nil {
		return fmt.Errorf("jsonl sink not open")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if _, err := s.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	if err := s.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Close flushes and closes the file.
func (s *JSONL) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	flushErr := s.writer.Flush()
	closeErr := s.file.Close()
	s.file = nil
	s.writer = nil

	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
