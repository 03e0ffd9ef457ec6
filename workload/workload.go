// Package workload resolves benchmark domains on disk into the ordered set of
// problem instances that the planners are run on.
package workload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// DomainFile is the PDDL domain definition every domain directory holds.
	DomainFile = "domain.pddl"
	// ProblemPrefix marks problem files within a domain directory.
	ProblemPrefix = "p"
	// DefaultLimit is used for domains without a configured instance limit.
	DefaultLimit = 5
)

var (
	// ErrNoDomainFile is returned when a domain directory lacks domain.pddl.
	ErrNoDomainFile = errors.New("domain file not found")
	// ErrNoProblems is returned when a domain directory has no problem files.
	ErrNoProblems = errors.New("no problem files")
)

// Domain is a benchmark domain: a directory holding domain.pddl and
// numbered problem files.
type Domain struct {
	Name string
	Path string
}

// Problem is one problem instance within a domain.
type Problem struct {
	// Name is the file name, used as the problem identifier in results.
	Name string
	Path string
}

// Selection is the resolved input for one domain.
type Selection struct {
	Domain     Domain
	DomainFile string
	Problems   []Problem
}

// Limits maps domain names to the number of instances to run.
type Limits map[string]int

// For returns the limit for the named domain, DefaultLimit when unset.
func (l Limits) For(name string) int {
	if n, ok := l[name]; ok && n > 0 {
		return n
	}

	return DefaultLimit
}

// Select lists the domain's problem files in lexicographic order and keeps
// the first limit of them.
func Select(d Domain, limit int) (Selection, error) {
	domainFile := filepath.Join(d.Path, DomainFile)

	info, err := os.Stat(domainFile)
	if err != nil {
		return Selection{}, fmt.Errorf("%s: %w at %s", d.Name, ErrNoDomainFile, domainFile)
	}
	if info.IsDir() {
		return Selection{}, fmt.Errorf("%s: %w at %s (is a directory)", d.Name, ErrNoDomainFile, domainFile)
	}

	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return Selection{}, fmt.Errorf("read domain dir %s: %w", d.Path, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), ProblemPrefix) {
			continue
		}

		names = append(names, e.Name())
	}

	if len(names) == 0 {
		return Selection{}, fmt.Errorf("%s: %w in %s", d.Name, ErrNoProblems, d.Path)
	}

	sort.Strings(names)

	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	problems := make([]Problem, len(names))
	for i, name := range names {
		problems[i] = Problem{Name: name, Path: filepath.Join(d.Path, name)}
	}

	return Selection{
		Domain:     d,
		DomainFile: domainFile,
		Problems:   problems,
	}, nil
}
