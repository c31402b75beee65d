package notes

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Document is an in-memory line buffer for a note file. The UI moves a
// line cursor through it and report text is spliced in at that cursor.
// The housekeeping ticker saves it from another goroutine, so mutation
// goes through a mutex.
type Document struct {
	path string

	mu    sync.Mutex
	lines []string
	dirty bool
}

// Open loads the note at path. A missing file yields an empty document
// that will be created on first save.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{path: path, lines: []string{""}}, nil
		}
		return nil, fmt.Errorf("failed to read note %s: %w", path, err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return &Document{path: path, lines: strings.Split(text, "\n")}, nil
}

func (d *Document) Path() string {
	return d.path
}

// Lines returns a copy of the buffer for rendering.
func (d *Document) Lines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

func (d *Document) LineCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.lines)
}

func (d *Document) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

// InsertAt splices block into the buffer before line index line. The index
// is clamped to the buffer bounds. A multi-line block becomes one buffer
// line per text line.
func (d *Document) InsertAt(line int, block string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if line < 0 {
		line = 0
	}
	if line > len(d.lines) {
		line = len(d.lines)
	}

	ins := strings.Split(block, "\n")
	out := make([]string, 0, len(d.lines)+len(ins))
	out = append(out, d.lines[:line]...)
	out = append(out, ins...)
	out = append(out, d.lines[line:]...)

	d.lines = out
	d.dirty = true
}

// Save writes the buffer back to disk. A clean buffer is a no-op.
func (d *Document) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.dirty {
		return nil
	}

	data := strings.Join(d.lines, "\n")
	if err := os.WriteFile(d.path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write note %s: %w", d.path, err)
	}
	d.dirty = false
	return nil
}
