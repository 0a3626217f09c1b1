package deploy

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Select keeps the entries matching any include pattern and no exclude
// pattern. No include patterns means every entry. Patterns use '/' as the
// separator, so "*" stays inside one directory and "**" crosses them.
func Select(entries []Entry, include, exclude []string) ([]Entry, error) {
	inc, err := compileAll(include)
	if err != nil {
		return nil, err
	}
	exc, err := compileAll(exclude)
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, e := range entries {
		if len(inc) > 0 && !matchAny(inc, e.Path) {
			continue
		}
		if matchAny(exc, e.Path) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// SplitPatterns splits a comma separated pattern list, dropping blanks.
func SplitPatterns(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func matchAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}
