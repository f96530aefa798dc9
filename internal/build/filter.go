package build

import (
	"fmt"
	"regexp"

	oerrors "github.com/boonbuild/boon/internal/errors"
)

// Filter decides which relative paths are left out of an archive. It is
// compiled once per build and never changes afterwards.
type Filter struct {
	patterns []*regexp.Regexp
}

// CompileFilter compiles every exclusion pattern. The first invalid pattern
// aborts with ErrPattern.
func CompileFilter(patterns []string) (*Filter, error) {
	f := &Filter{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", oerrors.ErrPattern, p, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Excluded reports whether any pattern matches rel, a forward-slash path
// relative to the archive root. A nil filter excludes nothing.
func (f *Filter) Excluded(rel string) bool {
	if f == nil {
		return false
	}
	for _, re := range f.patterns {
		if re.MatchString(rel) {
			return true
		}
	}
	return false
}

// Len returns the number of patterns.
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.patterns)
}
