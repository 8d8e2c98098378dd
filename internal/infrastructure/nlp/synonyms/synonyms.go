// Package synonyms loads the replacement table used by the humanizer.
package synonyms

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed synonyms.yaml
var defaultTable []byte

type Table map[string][]string

func (t Table) Lookup(word string) ([]string, bool) {
	alts, ok := t[strings.ToLower(word)]
	return alts, ok && len(alts) > 0
}

// Default returns the built-in table.
func Default() Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("embedded synonyms: %v", err))
	}
	return t
}

// Load reads a table from path, or returns the built-in table when path is
// empty.
func Load(path string) (Table, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonyms %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (Table, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse synonyms: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("synonym table is empty")
	}
	t := make(Table, len(raw))
	for word, alts := range raw {
		clean := make([]string, 0, len(alts))
		for _, a := range alts {
			if a = strings.TrimSpace(a); a != "" {
				clean = append(clean, a)
			}
		}
		t[strings.ToLower(strings.TrimSpace(word))] = clean
	}
	return t, nil
}
