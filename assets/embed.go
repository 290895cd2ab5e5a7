// Package assets bundles files the server needs at runtime: SQL migrations
// and a small set of sample puzzle documents used when no puzzle store is
// configured.
package assets

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed sql/*.sql puzzles/*.json
var FS embed.FS

// PuzzleDir is the directory inside FS holding <YYYYMMDD>.json documents.
const PuzzleDir = "puzzles"

// Migration is one embedded SQL script.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded *.sql scripts in lexical order.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(FS, "sql")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, n := range names {
		b, err := fs.ReadFile(FS, "sql/"+n)
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: n, SQL: string(b)})
	}
	return out, nil
}

// PuzzleKeys lists the date keys of the embedded sample puzzles.
func PuzzleKeys() []string {
	entries, err := fs.ReadDir(FS, PuzzleDir)
	if err != nil {
		return nil
	}
	var keys []string
	for _, e := range entries {
		if name := e.Name(); strings.HasSuffix(name, ".json") {
			keys = append(keys, strings.TrimSuffix(name, ".json"))
		}
	}
	sort.Strings(keys)
	return keys
}
