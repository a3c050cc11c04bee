package billy

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	parentfs "github.com/input-output-hk/catalyst-forge-libs/jsxlint/fs"
)

func testWriteReadStat(t *testing.T, fs parentfs.Filesystem, root string) {
	t.Helper()
	dir := filepath.Join(root, "src/components")
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	info, err := fs.Stat(dir)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("expected directory, got file: %v", info.Name())
	}

	p := filepath.Join(dir, "Button.jsx")
	if e := fs.WriteFile(p, []byte("<button />"), 0o644); e != nil {
		t.Fatalf("WriteFile failed: %v", e)
	}
	b, err := fs.ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(b) != "<button />" {
		t.Errorf("ReadFile = %q, want %q", string(b), "<button />")
	}
}

func testExists(t *testing.T, fs parentfs.Filesystem, root string) {
	t.Helper()
	p := filepath.Join(root, "exists.jsx")
	if e := fs.WriteFile(p, []byte("x"), 0o644); e != nil {
		t.Fatalf("WriteFile failed: %v", e)
	}

	ok, err := fs.Exists(p)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !ok {
		t.Errorf("Exists(%q) = false, want true", p)
	}

	ok, err = fs.Exists(filepath.Join(root, "missing.jsx"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if ok {
		t.Errorf("Exists(missing) = true, want false")
	}
}

func testWalk(t *testing.T, fs parentfs.Filesystem, root string) {
	t.Helper()
	base := filepath.Join(root, "walk")
	for _, name := range []string{"a.jsx", "x/b.tsx", "x/y/c.js"} {
		p := filepath.Join(base, name)
		if e := fs.MkdirAll(filepath.Dir(p), 0o755); e != nil {
			t.Fatalf("MkdirAll failed: %v", e)
		}
		if e := fs.WriteFile(p, []byte("z"), 0o644); e != nil {
			t.Fatalf("WriteFile failed: %v", e)
		}
	}

	var files []string
	walkErr := fs.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			t.Fatalf("walk callback error: %v", err)
		}
		if !info.IsDir() {
			files = append(files, filepath.Base(path))
		}
		return nil
	})
	if walkErr != nil {
		t.Fatalf("Walk failed: %v", walkErr)
	}
	sort.Strings(files)
	want := []string{"a.jsx", "b.tsx", "c.js"}
	if len(files) != len(want) {
		t.Fatalf("Walk saw %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("Walk saw %v, want %v", files, want)
			break
		}
	}
}

// runSuite runs a battery of consistency tests against a Filesystem impl.
func runSuite(t *testing.T, fs parentfs.Filesystem, root string) {
	t.Helper()
	testWriteReadStat(t, fs, root)
	testExists(t, fs, root)
	testWalk(t, fs, root)
}

func TestInMemoryFS_Suite(t *testing.T) {
	runSuite(t, NewInMemoryFS(), "/")
}

func TestOSFS_Suite(t *testing.T) {
	runSuite(t, NewOSFS(t.TempDir()), "/")
}

func TestBaseOSFS_Suite(t *testing.T) {
	runSuite(t, NewBaseOSFS(), t.TempDir())
}

func TestReadFileMissing(t *testing.T) {
	fs := NewInMemoryFS()
	_, err := fs.ReadFile("nope.jsx")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
