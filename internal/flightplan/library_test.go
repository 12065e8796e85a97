package flightplan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", name, err)
	}
}

func TestLibraryList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.html", validPlan)
	writeFile(t, dir, "A.HTML", validPlan)
	writeFile(t, dir, "notes.txt", "x")
	if err := os.Mkdir(filepath.Join(dir, "sub.html"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := NewLibrary(dir, "").List()
	want := []string{"A.HTML", "b.html"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestLibraryListMissingDir(t *testing.T) {
	got := NewLibrary(filepath.Join(t.TempDir(), "absent"), "html").List()
	if got == nil || len(got) != 0 {
		t.Errorf("List() = %#v, want empty non-nil list", got)
	}
}

func TestLibraryLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "route.html", validPlan)
	writeFile(t, dir, "broken.html", "<html><body>no table</body></html>")
	lib := NewLibrary(dir, ".html")

	fp, err := lib.Load("route.html")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if fp.File != "route.html" || fp.Dep != "EDDF" {
		t.Errorf("plan = %+v", fp)
	}

	_, err = lib.Load("broken.html")
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Kind != KindNoTable {
		t.Errorf("Load(broken) error = %v, want no-table ParseError", err)
	}
	if pe != nil && pe.Path != filepath.Join(dir, "broken.html") {
		t.Errorf("error path = %q", pe.Path)
	}

	for _, name := range []string{"../route.html", "", "route.txt"} {
		if _, err := lib.Load(name); !errors.Is(err, ErrNotFound) {
			t.Errorf("Load(%q) error = %v, want ErrNotFound", name, err)
		}
	}

	_, err = lib.Load("gone.html")
	if !errors.As(err, &pe) || pe.Kind != KindIO {
		t.Errorf("Load(gone) error = %v, want I/O ParseError", err)
	}
}

func TestWatcherPublishesChanges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "first.html", validPlan)

	w := NewWatcher(NewLibrary(dir, ""))
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	next := func() []string {
		select {
		case names := <-w.Listings():
			return names
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for listing")
			return nil
		}
	}

	if got := next(); !reflect.DeepEqual(got, []string{"first.html"}) {
		t.Fatalf("initial listing = %v", got)
	}

	writeFile(t, dir, "second.html", validPlan)
	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-w.Listings():
			if reflect.DeepEqual(got, []string{"first.html", "second.html"}) {
				cancel()
				if err := <-done; err != nil {
					t.Errorf("Run() error = %v", err)
				}
				return
			}
		case <-deadline:
			t.Fatal("new file never appeared in a listing")
		}
	}
}
