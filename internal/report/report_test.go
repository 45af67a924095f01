package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPages_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := os.WriteFile(path, []byte("Emissions fell by 12%."), 0o644); err != nil {
		t.Fatal(err)
	}
	pages, err := Pages(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected one page for plain text, got %d", len(pages))
	}
	if pages[0] != "Emissions fell by 12%." {
		t.Errorf("unexpected page content %q", pages[0])
	}
}

func TestPages_MissingFile(t *testing.T) {
	if _, err := Pages(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"  spaced \t out \n lines  ", "spaced out lines"},
		{"nul\x00bytes", "nulbytes"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Errorf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
