package report

import (
	"sort"

	"github.com/weiihann/planbench/bench"
	"github.com/weiihann/planbench/harness"
)

// Point is one plotted value; OK is false for a gap.
type Point struct {
	Value float64
	OK    bool
}

// Aligned is one domain's results rearranged for plotting: a shared problem
// axis and, per planner, one runtime and one makespan point per problem.
type Aligned struct {
	Domain   string
	Problems []string
	Planners []harness.Kind
	Runtime  map[harness.Kind][]Point
	Makespan map[harness.Kind][]Point
	Status   map[harness.Kind][]harness.Status
}

// Align orders problems by ascending runtime of the first planner, with
// absent runtimes last, and lines every planner's results up against that
// order. Problems a planner has no result for become gaps.
func Align(dr bench.DomainResults) Aligned {
	planners := harness.KnownPlanners()
	lead := dr.Runs[planners[0]]

	ordered := make([]harness.RunResult, len(lead))
	copy(ordered, lead)

	sort.SliceStable(ordered, func(i, j int) bool {
		ri, iok := ordered[i].Seconds()
		rj, jok := ordered[j].Seconds()

		switch {
		case iok && jok:
			return ri < rj
		default:
			return iok && !jok
		}
	})

	problems := make([]string, 0, len(ordered))
	for _, r := range ordered {
		problems = append(problems, r.Problem)
	}

	// Fall back to run order when the lead planner has nothing.
	if len(problems) == 0 {
		problems = dr.Problems()
	}

	a := Aligned{
		Domain:   dr.Domain,
		Problems: problems,
		Planners: planners,
		Runtime:  make(map[harness.Kind][]Point, len(planners)),
		Makespan: make(map[harness.Kind][]Point, len(planners)),
		Status:   make(map[harness.Kind][]harness.Status, len(planners)),
	}

	for _, kind := range planners {
		byProblem := make(map[string]harness.RunResult, len(dr.Runs[kind]))
		for _, r := range dr.Runs[kind] {
			byProblem[r.Problem] = r
		}

		runtimes := make([]Point, len(problems))
		makespans := make([]Point, len(problems))
		statuses := make([]harness.Status, len(problems))

		for i, name := range problems {
			r, ok := byProblem[name]
			if !ok {
				continue
			}

			statuses[i] = r.Status

			if s, ok := r.Seconds(); ok {
				runtimes[i] = Point{Value: s, OK: true}
			}
			if m, ok := r.PlanLength(); ok {
				makespans[i] = Point{Value: float64(m), OK: true}
			}
		}

		a.Runtime[kind] = runtimes
		a.Makespan[kind] = makespans
		a.Status[kind] = statuses
	}

	return a
}
