package notes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeNote(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "note.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write note: %v", err)
	}
	return path
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if doc.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", doc.LineCount())
	}
	if doc.Dirty() {
		t.Error("fresh document should not be dirty")
	}
}

func TestOpenNormalizesCRLF(t *testing.T) {
	path := writeNote(t, "one\r\ntwo\r\nthree")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	lines := doc.Lines()
	if len(lines) != 3 || lines[1] != "two" {
		t.Errorf("Lines() = %v", lines)
	}
}

func TestInsertAt(t *testing.T) {
	tests := []struct {
		name  string
		line  int
		block string
		want  []string
	}{
		{
			name:  "Middle",
			line:  1,
			block: "views:: 10\nlikes:: 2",
			want:  []string{"one", "views:: 10", "likes:: 2", "two", "three"},
		},
		{
			name:  "Top",
			line:  0,
			block: "x",
			want:  []string{"x", "one", "two", "three"},
		},
		{
			name:  "ClampedBelowEnd",
			line:  99,
			block: "x",
			want:  []string{"one", "two", "three", "x"},
		},
		{
			name:  "ClampedNegative",
			line:  -5,
			block: "x",
			want:  []string{"x", "one", "two", "three"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Open(writeNote(t, "one\ntwo\nthree"))
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}

			doc.InsertAt(tt.line, tt.block)

			got := doc.Lines()
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Lines() = %v, want %v", got, tt.want)
			}
			if !doc.Dirty() {
				t.Error("document should be dirty after insert")
			}
		})
	}
}

func TestSave(t *testing.T) {
	path := writeNote(t, "one\ntwo")
	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	doc.InsertAt(1, "inserted")
	if err := doc.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if doc.Dirty() {
		t.Error("document should be clean after save")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read note back: %v", err)
	}
	if want := "one\ninserted\ntwo"; string(data) != want {
		t.Errorf("saved content = %q, want %q", string(data), want)
	}
}

func TestSaveCleanIsNoop(t *testing.T) {
	path := writeNote(t, "one")
	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	// Remove the backing file; a clean save must not recreate it.
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove note: %v", err)
	}
	if err := doc.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("clean save should not write the file")
	}
}
