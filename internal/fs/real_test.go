package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_Real_WriteFileAtomic_Round_Trips(t *testing.T) {
	t.Parallel()

	r := NewReal()
	path := filepath.Join(t.TempDir(), "value")
	want := []byte("payload")

	if err := r.WriteFileAtomic(path, want, 0o644); err != nil {
		t.Fatalf("WriteFileAtomic(%q): %v", path, err)
	}

	got, err := r.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%q): %v", path, err)
	}

	if string(got) != string(want) {
		t.Fatalf("ReadFile = %q, want %q", got, want)
	}
}

func Test_Real_WriteFileAtomic_Replaces_Existing_Content(t *testing.T) {
	t.Parallel()

	r := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "value")

	if err := r.WriteFileAtomic(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}

	if err := r.WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic replace: %v", err)
	}

	got, err := r.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if string(got) != "new" {
		t.Fatalf("ReadFile = %q, want %q", got, "new")
	}

	// No temp file debris left behind.
	entries, err := r.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") || entry.Name() != "value" {
			t.Fatalf("unexpected leftover entry %q", entry.Name())
		}
	}
}

func Test_Real_ReadFile_Missing_Is_NotExist(t *testing.T) {
	t.Parallel()

	r := NewReal()

	_, err := r.ReadFile(filepath.Join(t.TempDir(), "absent"))
	if !os.IsNotExist(err) {
		t.Fatalf("ReadFile on absent file: %v, want not-exist", err)
	}
}

func Test_Real_Remove_Missing_Is_NotExist(t *testing.T) {
	t.Parallel()

	r := NewReal()

	err := r.Remove(filepath.Join(t.TempDir(), "absent"))
	if !os.IsNotExist(err) {
		t.Fatalf("Remove on absent file: %v, want not-exist", err)
	}
}
