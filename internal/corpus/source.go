// Package corpus enumerates stored endgame fragments, either from a
// directory of JSON files or from a badger-backed fragment store.
package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Fragment is one raw fragment file.
type Fragment struct {
	Name string
	Data []byte
}

// Source yields fragments one at a time, in a stable order.
// Each stops at the first error returned by fn.
type Source interface {
	Each(ctx context.Context, fn func(Fragment) error) error
}

// Dir is a directory of *.json fragment files.
type Dir struct {
	Path string
}

// NewDir returns a Source reading the fragment files in path.
func NewDir(path string) *Dir {
	return &Dir{Path: path}
}

// Files lists the fragment files in lexical order.
func (d *Dir) Files() ([]string, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, err
	}
	files := lo.FilterMap(entries, func(de os.DirEntry, _ int) (string, bool) {
		return de.Name(), !de.IsDir() && strings.EqualFold(filepath.Ext(de.Name()), ".json")
	})
	sort.Strings(files)
	return files, nil
}

// Each reads every fragment file and hands it to fn.
func (d *Dir) Each(ctx context.Context, fn func(Fragment) error) error {
	files, err := d.Files()
	if err != nil {
		return err
	}
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(filepath.Join(d.Path, name))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := fn(Fragment{Name: name, Data: data}); err != nil {
			return err
		}
	}
	return nil
}
