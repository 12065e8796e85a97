package flightplan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/cdubridge/internal/logging"
	"github.com/muurk/cdubridge/internal/state"
)

// DefaultExtension selects plan documents in a library directory.
const DefaultExtension = ".html"

// Library is a directory of plan documents.
type Library struct {
	Dir       string
	Extension string
}

// NewLibrary creates a library over dir. An empty ext selects .html files.
func NewLibrary(dir, ext string) *Library {
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Library{Dir: dir, Extension: ext}
}

// List returns the sorted names of all plan documents. A directory that
// cannot be read yields an empty list; the error is logged.
func (l *Library) List() []string {
	names, err := l.list()
	if err != nil {
		logging.Error("Failed to list flight plans",
			zap.String("dir", l.Dir),
			zap.Error(err),
		)
		return []string{}
	}
	return names
}

func (l *Library) list() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !l.matches(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (l *Library) matches(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), strings.ToLower(l.Extension))
}

// Load parses the named document. Names are taken relative to the library
// directory and may not escape it.
func (l *Library) Load(name string) (*state.Flightplan, error) {
	if name == "" || filepath.Base(name) != name || !l.matches(name) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	fp, err := ParseFile(filepath.Join(l.Dir, name))
	if err != nil {
		logging.Warn("Flight plan rejected",
			zap.String("file", name),
			zap.Error(err),
		)
		return nil, err
	}

	fp.File = name
	logging.Info("Flight plan loaded",
		zap.String("file", name),
		zap.String("dep", fp.Dep),
		zap.String("arr", fp.Arr),
		zap.Int("points", len(fp.Points)),
	)
	return fp, nil
}
