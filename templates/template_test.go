package templates

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRender(t *testing.T) {
	tmpl, err := New(`fn main(){println!("@[message]@");}`)
	if err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Set("message", "Hello, World!"); err != nil {
		t.Fatal(err)
	}
	res, err := tmpl.Render()
	if err != nil {
		t.Fatal(err)
	}
	if res != `fn main(){println!("Hello, World!");}` {
		t.Fatalf("got %q", res)
	}
}

func TestRenderMissing(t *testing.T) {
	tmpl, err := New(`fn main(){println!("@[message]@");}`)
	if err != nil {
		t.Fatal(err)
	}
	_, err = tmpl.Render()
	if !errors.Is(err, ErrMissingPlaceholder) {
		t.Fatalf("got %v", err)
	}
	var missing *MissingPlaceholderError
	if !errors.As(err, &missing) {
		t.Fatalf("got %T", err)
	}
	if missing.Name != "message" || missing.TemplateIndex != -1 {
		t.Fatalf("got %+v", missing)
	}
}

func TestRenderFirstUnresolved(t *testing.T) {
	tmpl, err := New("@[c]@ @[a]@ @[b]@")
	if err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Set("c", "3"); err != nil {
		t.Fatal(err)
	}
	var missing *MissingPlaceholderError
	_, err = tmpl.Render()
	if !errors.As(err, &missing) {
		t.Fatalf("got %v", err)
	}
	if missing.Name != "a" {
		t.Fatalf("got %s", missing.Name)
	}
	if diff := cmp.Diff([]string{"a", "b"}, tmpl.Unresolved()); diff != "" {
		t.Fatal(diff)
	}
}

func TestRenderNoPlaceholder(t *testing.T) {
	for _, text := range []string{
		"",
		"plain text",
		"close marker only ]@ here",
		"unicode ✓\nnewlines\n",
	} {
		tmpl, err := New(text)
		if err != nil {
			t.Fatal(err)
		}
		res, err := tmpl.Render()
		if err != nil {
			t.Fatal(err)
		}
		if res != text {
			t.Fatalf("got %q", res)
		}
	}
}

func TestRenderRepeatedAndIdempotent(t *testing.T) {
	tmpl, err := New("@[x]@ + @[ x ]@ = @[y]@")
	if err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Set("x", "1"); err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Set("x", "2"); err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Set("y", ""); err != nil {
		t.Fatal(err)
	}
	res, err := tmpl.Render()
	if err != nil {
		t.Fatal(err)
	}
	if res != "2 + 2 = " {
		t.Fatalf("got %q", res)
	}
	again, err := tmpl.Render()
	if err != nil {
		t.Fatal(err)
	}
	if again != res {
		t.Fatalf("got %q", again)
	}
	if len(tmpl.Unresolved()) != 0 {
		t.Fatal()
	}
}

func TestRenderNoMarkersLeft(t *testing.T) {
	tmpl, err := New("@[a]@-@[b]@\n@[c]@@[a]@")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range tmpl.Names() {
		if err := tmpl.Set(name, strings.ToUpper(name)); err != nil {
			t.Fatal(err)
		}
	}
	res, err := tmpl.Render()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(res, OpenMarker) || strings.Contains(res, CloseMarker) {
		t.Fatalf("got %q", res)
	}
	if res != "A-B\nCA" {
		t.Fatalf("got %q", res)
	}
}

func TestRenderValueNotEscaped(t *testing.T) {
	tmpl, err := New(`"@[v]@"`)
	if err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Set("v", `a"b@[c]@`); err != nil {
		t.Fatal(err)
	}
	res, err := tmpl.Render()
	if err != nil {
		t.Fatal(err)
	}
	if res != `"a"b@[c]@"` {
		t.Fatalf("got %q", res)
	}
}

func TestSetUnknown(t *testing.T) {
	tmpl, err := New("@[name]@")
	if err != nil {
		t.Fatal(err)
	}
	err = tmpl.Set("nmae", "typo")
	if !errors.Is(err, ErrUnknownPlaceholder) {
		t.Fatalf("got %v", err)
	}
	var unknown *UnknownPlaceholderError
	if !errors.As(err, &unknown) || unknown.Name != "nmae" {
		t.Fatalf("got %v", err)
	}
	if _, ok := tmpl.Value("nmae"); ok {
		t.Fatal()
	}
	if diff := cmp.Diff([]string{"name"}, tmpl.Unresolved()); diff != "" {
		t.Fatal(diff)
	}
}

func TestNewParseFailure(t *testing.T) {
	tmpl, err := New("fn main() { @[message }")
	if tmpl != nil {
		t.Fatal("should not construct")
	}
	if !errors.Is(err, ErrParse) || !errors.Is(err, ErrUnterminated) {
		t.Fatalf("got %v", err)
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.tmrs")
	if err := os.WriteFile(path, []byte("@[greeting]@, @[name]@!"), 0644); err != nil {
		t.Fatal(err)
	}
	tmpl, err := FromFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if tmpl.Name != path {
		t.Fatalf("got %s", tmpl.Name)
	}
	if err := tmpl.Set("greeting", "Hello"); err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Set("name", "World"); err != nil {
		t.Fatal(err)
	}
	res, err := tmpl.Render()
	if err != nil {
		t.Fatal(err)
	}
	if res != "Hello, World!" {
		t.Fatalf("got %q", res)
	}

	missingPath := filepath.Join(dir, "missing.tmrs")
	_, err = FromFile(missingPath)
	if !errors.Is(err, ErrIO) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v", err)
	}
	var ioErr *IoError
	if !errors.As(err, &ioErr) || ioErr.Path != missingPath {
		t.Fatalf("got %v", err)
	}
}

func TestClone(t *testing.T) {
	tmpl, err := New("@[a]@")
	if err != nil {
		t.Fatal(err)
	}
	clone := tmpl.Clone()
	if err := clone.Set("a", "1"); err != nil {
		t.Fatal(err)
	}
	if _, ok := tmpl.Value("a"); ok {
		t.Fatal("clone shares store")
	}
}
