// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package templates

import (
	"fmt"
	"sort"
	"strings"
)

// Coordinate identifies a template repository to generate new projects
// from, in owner/repo form.
type Coordinate struct {
	Owner string
	Repo  string
}

// ParseCoordinate parses an "owner/repo" string into a Coordinate.
// Both segments must be non-empty and the string must contain exactly
// one slash.
func ParseCoordinate(s string) (Coordinate, error) {
	owner, repo, found := strings.Cut(s, "/")
	if !found || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return Coordinate{}, fmt.Errorf("templates: invalid coordinate %q: want owner/repo", s)
	}
	return Coordinate{Owner: owner, Repo: repo}, nil
}

// String returns the owner/repo form of the coordinate.
func (c Coordinate) String() string {
	return c.Owner + "/" + c.Repo
}

// Registry is an immutable mapping from display labels to template
// coordinates. It is built once at startup from the configuration
// table and never mutated afterwards, so it is safe for concurrent
// use without locking.
type Registry struct {
	entries map[string]Coordinate
	labels  []string
}

// NewRegistry builds a Registry from a label→"owner/repo" table.
// Returns an error if the table is empty or any coordinate is
// malformed — both indicate broken configuration, caught at startup.
func NewRegistry(table map[string]string) (*Registry, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("templates: registry table is empty")
	}

	entries := make(map[string]Coordinate, len(table))
	labels := make([]string, 0, len(table))
	for label, raw := range table {
		if label == "" {
			return nil, fmt.Errorf("templates: empty label in registry table")
		}
		coordinate, err := ParseCoordinate(raw)
		if err != nil {
			return nil, fmt.Errorf("templates: label %q: %w", label, err)
		}
		entries[label] = coordinate
		labels = append(labels, label)
	}
	sort.Strings(labels)

	return &Registry{entries: entries, labels: labels}, nil
}

// Lookup returns the coordinate for a display label. The second return
// value reports whether the label is known. Lookup is a pure function
// of the registry's table: repeated calls with the same label always
// return the same coordinate.
func (r *Registry) Lookup(label string) (Coordinate, bool) {
	coordinate, ok := r.entries[label]
	return coordinate, ok
}

// Labels returns the registry's display labels in sorted order. The
// returned slice is shared; callers must not modify it.
func (r *Registry) Labels() []string {
	return r.labels
}
