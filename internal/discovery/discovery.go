// Package discovery walks directory trees and produces the ordered set of
// files a spell-check run will examine, honoring glob exclusion rules.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrWalkAborted indicates the directory traversal hit an entry-level I/O
// error it could not recover from. This is fatal to the whole run: no partial
// file set is processed.
var ErrWalkAborted = errors.New("directory walk aborted")

// ExclusionRule is a compiled glob pattern matched against both the full path
// and the basename of every walked entry. A rule whose pattern failed
// validation matches nothing.
type ExclusionRule struct {
	pattern string
	valid   bool
}

// Pattern returns the rule's original glob pattern.
func (r ExclusionRule) Pattern() string {
	return r.pattern
}

// Matches reports whether the rule excludes the entry at path. Both the slash
// form of the full path and the basename are tested; either match excludes.
func (r ExclusionRule) Matches(path string) bool {
	if !r.valid {
		return false
	}
	slashed := filepath.ToSlash(path)
	if ok, _ := doublestar.Match(r.pattern, slashed); ok {
		return true
	}
	ok, _ := doublestar.Match(r.pattern, filepath.Base(slashed))
	return ok
}

// CompileRules validates each pattern once, up front, so the walk never
// re-parses a glob per entry. Invalid patterns are reported through onInvalid
// and become inert rules rather than aborting the run.
func CompileRules(patterns []string, onInvalid func(pattern string, err error)) []ExclusionRule {
	rules := make([]ExclusionRule, 0, len(patterns))
	for _, pattern := range patterns {
		rule := ExclusionRule{pattern: pattern, valid: true}
		if !doublestar.ValidatePattern(pattern) {
			rule.valid = false
			if onInvalid != nil {
				onInvalid(pattern, doublestar.ErrBadPattern)
			}
		}
		rules = append(rules, rule)
	}
	return rules
}

// FileSet is an ordered, duplicate-free collection of file paths. Iteration
// order is lexicographic by path, so repeated runs over an unchanged tree
// produce identical output order.
type FileSet struct {
	seen  map[string]struct{}
	paths []string
}

// NewFileSet returns an empty file set.
func NewFileSet() *FileSet {
	return &FileSet{seen: make(map[string]struct{})}
}

// Insert adds path to the set. Inserting a path already present is a no-op,
// which deduplicates overlapping walk roots automatically.
func (s *FileSet) Insert(path string) {
	if _, ok := s.seen[path]; ok {
		return
	}
	s.seen[path] = struct{}{}
	s.paths = append(s.paths, path)
}

// Len returns the number of files in the set.
func (s *FileSet) Len() int {
	return len(s.paths)
}

// Paths returns the files in lexicographic order.
func (s *FileSet) Paths() []string {
	sorted := make([]string, len(s.paths))
	copy(sorted, s.paths)
	sort.Strings(sorted)
	return sorted
}

// Discover walks each root recursively and collects every file that no
// exclusion rule matches. Roots are literal paths to walk; the rules are the
// glob matchers. An excluded directory is pruned without visiting its
// children, so unreadable or enormous excluded subtrees are never touched.
//
// Any traversal error aborts discovery with ErrWalkAborted.
func Discover(roots []string, rules []ExclusionRule) (*FileSet, error) {
	files := NewFileSet()

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			excluded := false
			for _, rule := range rules {
				if rule.Matches(path) {
					excluded = true
					break
				}
			}

			if d.IsDir() {
				if excluded {
					return fs.SkipDir
				}
				return nil
			}

			if !excluded {
				files.Insert(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrWalkAborted, root, err)
		}
	}

	return files, nil
}
