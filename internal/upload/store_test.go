package upload

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fraudwatch/internal/model"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		filename string
		want     bool
	}{
		{"invoice.png", true},
		{"invoice.jpg", true},
		{"invoice.jpeg", true},
		{"INVOICE.JPG", true},
		{"invoice.PnG", true},
		{"report.pdf", false},
		{"archive.tar.gz", false},
		{"noextension", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := Allowed(tc.filename); got != tc.want {
			t.Errorf("Allowed(%q) = %v, want %v", tc.filename, got, tc.want)
		}
	}
}

func TestSaveStoresSanitizedName(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	name, err := store.Save("../../ev il.png", strings.NewReader("pixels"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if name != "ev_il.png" {
		t.Errorf("unexpected stored name: %q", name)
	}

	data, err := os.ReadFile(store.Path(name))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "pixels" {
		t.Errorf("stored content mismatch: %q", data)
	}
}

func TestSaveCollisionGetsUniquePrefix(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	first, err := store.Save("invoice.png", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second, err := store.Save("invoice.png", strings.NewReader("two"))
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct stored names, both %q", first)
	}
	if !strings.HasSuffix(second, "_invoice.png") {
		t.Errorf("expected unique prefix on collision, got %q", second)
	}

	data, _ := os.ReadFile(store.Path(first))
	if string(data) != "one" {
		t.Errorf("original file was overwritten: %q", data)
	}
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	_, err = store.Save("report.pdf", strings.NewReader("%PDF-1.4"))
	if err == nil {
		t.Fatal("expected an error for a pdf upload")
	}

	var inputErr *model.InputFormatError
	if !errors.As(err, &inputErr) {
		t.Errorf("expected InputFormatError, got %T", err)
	}
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "static", "uploads")

	if _, err := NewStore(dir); err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat upload dir: %v", err)
	}
	if !info.IsDir() {
		t.Error("upload path is not a directory")
	}
}
