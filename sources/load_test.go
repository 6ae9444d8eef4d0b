package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/tmplrun/configs"
	"github.com/reusee/tmplrun/modes"
	"github.com/reusee/tmplrun/templates"
)

func testScope(t *testing.T) dscope.Scope {
	return dscope.New(
		new(Module),
		modes.ForTest(t),
		dscope.Provide(configs.NewLoader(nil, "")),
	)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.tmrs")
	if err := os.WriteFile(path, []byte(`println!("@[msg]@");`), 0644); err != nil {
		t.Fatal(err)
	}
	testScope(t).Call(func(
		loadTemplate LoadTemplate,
	) {
		tmpl, err := loadTemplate(context.Background(), path)
		if err != nil {
			t.Fatal(err)
		}
		if tmpl.Name != path || !tmpl.Has("msg") {
			t.Fatalf("got %+v", tmpl)
		}

		_, err = loadTemplate(context.Background(), filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, templates.ErrIO) || !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestLoadRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/main.tmrs":
			w.Write([]byte("let x = @[x]@;"))
		case "/bad.tmrs":
			w.Write([]byte("let x = @[x;"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	testScope(t).Call(func(
		loadTemplate LoadTemplate,
	) {
		ctx := context.Background()
		tmpl, err := loadTemplate(ctx, server.URL+"/main.tmrs")
		if err != nil {
			t.Fatal(err)
		}
		if err := tmpl.Set("x", "1"); err != nil {
			t.Fatal(err)
		}
		res, err := tmpl.Render()
		if err != nil {
			t.Fatal(err)
		}
		if res != "let x = 1;" {
			t.Fatalf("got %q", res)
		}

		_, err = loadTemplate(ctx, server.URL+"/missing.tmrs")
		if !errors.Is(err, templates.ErrIO) {
			t.Fatalf("got %v", err)
		}

		_, err = loadTemplate(ctx, server.URL+"/bad.tmrs")
		if !errors.Is(err, templates.ErrParse) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestLoadCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer server.Close()

	testScope(t).Call(func(
		load Load,
	) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := load(ctx, server.URL)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestIsRemote(t *testing.T) {
	for location, expected := range map[string]bool{
		"http://example.com/a":  true,
		"https://example.com/a": true,
		"./http/main.tmrs":      false,
		"/tmp/a":                false,
	} {
		if IsRemote(location) != expected {
			t.Fatalf("%s: expected %v", location, expected)
		}
	}
}
