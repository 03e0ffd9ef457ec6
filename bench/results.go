// Package bench runs both planners over each benchmark domain and collects
// the per-problem results that the report stage consumes.
package bench

import "github.com/weiihann/planbench/harness"

// DomainResults holds the runs of every planner on one domain. Each
// planner's sequence follows the domain's problem order.
type DomainResults struct {
	Domain string
	Runs   map[harness.Kind][]harness.RunResult
}

// Problems returns the problem identifiers in run order.
func (d DomainResults) Problems() []string {
	seen := make(map[string]bool)

	var names []string
	for _, kind := range harness.KnownPlanners() {
		for _, r := range d.Runs[kind] {
			if !seen[r.Problem] {
				seen[r.Problem] = true
				names = append(names, r.Problem)
			}
		}
	}

	return names
}

// Results accumulates DomainResults in the order domains were compared.
// It is written by the comparator stage and read once by the report stage.
type Results struct {
	order    []string
	byDomain map[string]DomainResults
}

// NewResults returns an empty Results.
func NewResults() *Results {
	return &Results{byDomain: make(map[string]DomainResults)}
}

// Put stores dr under its domain name. A domain stored twice keeps its
// original position and takes the new runs.
func (r *Results) Put(dr DomainResults) {
	if _, ok := r.byDomain[dr.Domain]; !ok {
		r.order = append(r.order, dr.Domain)
	}

	r.byDomain[dr.Domain] = dr
}

// Get returns the results for a domain.
func (r *Results) Get(domain string) (DomainResults, bool) {
	dr, ok := r.byDomain[domain]
	return dr, ok
}

// Domains returns all domain results in insertion order.
func (r *Results) Domains() []DomainResults {
	out := make([]DomainResults, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byDomain[name])
	}

	return out
}

// Len returns the number of domains with results.
func (r *Results) Len() int {
	return len(r.order)
}
