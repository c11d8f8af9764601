package embedded

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"assets/config/resources.yaml":  {Data: []byte("version: \"1.0\"\n")},
		"assets/gfx/CoinsGold/000.png":  {Data: []byte("png")},
		"assets/gfx/CoinsGold/001.png":  {Data: []byte("png")},
		"assets/config/coin_burst.yaml": {Data: []byte("")},
	}
}

func TestReadFile(t *testing.T) {
	a := New(testFS())

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"assets/config/resources.yaml", false},
		{"./assets/config/resources.yaml", false},
		{"assets/missing.yaml", true},
		{"data/resources.yaml", true},
	}

	for _, tt := range tests {
		_, err := a.ReadFile(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ReadFile(%q): err = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestExists(t *testing.T) {
	a := New(testFS())

	if !a.Exists("assets/gfx/CoinsGold/000.png") {
		t.Error("expected 000.png to exist")
	}
	if a.Exists("assets/gfx/CoinsGold/008.png") {
		t.Error("008.png should not exist")
	}
	if a.Exists("gfx/CoinsGold/000.png") {
		t.Error("path without assets/ prefix should be rejected")
	}
}

func TestGlob(t *testing.T) {
	a := New(testFS())

	matches, err := a.Glob("assets/gfx/CoinsGold/*.png")
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Glob: got %v, want 2 matches", matches)
	}
}

func TestSub(t *testing.T) {
	a := New(testFS())

	sub, err := a.Sub("assets/gfx/")
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if _, err := fs.Stat(sub, "CoinsGold/001.png"); err != nil {
		t.Errorf("Sub lookup: %v", err)
	}
}

func TestFromDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "assets", "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "assets", "config", "coin_burst.yaml"), []byte("yLimit: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := FromDir(root)
	if err != nil {
		t.Fatalf("FromDir: %v", err)
	}
	if a.Source() != root {
		t.Errorf("Source: got %q", a.Source())
	}
	data, err := a.ReadFile("assets/config/coin_burst.yaml")
	if err != nil || string(data) != "yLimit: 1\n" {
		t.Errorf("ReadFile: %q, %v", data, err)
	}

	if _, err := FromDir(t.TempDir()); err == nil {
		t.Error("expected error for directory without assets/")
	}
}
