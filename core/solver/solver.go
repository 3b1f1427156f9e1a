package solver

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/marvin-wtt/BalloonOrganizer/core/logger"
)

// Status reports the outcome of a solve.
type Status int

const (
	// StatusUnknown means the time bound was hit before any solution or
	// infeasibility proof was found.
	StatusUnknown Status = iota
	// StatusOptimal is a solution proven to minimize the objective.
	StatusOptimal
	// StatusFeasible is a solution found within the time bound without an
	// optimality proof.
	StatusFeasible
	// StatusInfeasible means no assignment satisfies the constraints.
	StatusInfeasible
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "unknown"
	}
}

// Options tune a solve run.
type Options struct {
	// TimeLimit bounds the wall-clock search time. Zero or negative means
	// no limit beyond context cancellation.
	TimeLimit time.Duration
	// Workers is the number of parallel search workers. Each explores the
	// tree with its own variable order and they share the incumbent.
	Workers int
	// Seed drives the per-worker variable order shuffles.
	Seed   int64
	Logger logger.Logger
}

// Result carries the solve status and, for optimal/feasible outcomes, the
// variable assignment and objective value.
type Result struct {
	Status    Status
	Objective int
	values    []int
}

// Value returns the solved value of v. Zero when no solution was found.
func (r Result) Value(v Var) int {
	if r.values == nil {
		return 0
	}
	return r.values[int(v)]
}

// BoolValue reports whether v solved to 1.
func (r Result) BoolValue(v Var) bool { return r.Value(v) == 1 }

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// prepared is the read-only solve-time view of a model: constraint terms
// coalesced and the objective folded into one coefficient per variable.
type prepared struct {
	cons     []linCon
	objCoeff []int
	objVars  []int
}

func prepare(m *Model) *prepared {
	p := &prepared{
		cons:     make([]linCon, 0, len(m.cons)),
		objCoeff: make([]int, m.NumVars()),
	}
	for _, c := range m.cons {
		p.cons = append(p.cons, linCon{terms: coalesce(c.terms), lb: c.lb, ub: c.ub})
	}
	for _, t := range coalesce(m.obj) {
		p.objCoeff[t.Var] = t.Coeff
		p.objVars = append(p.objVars, int(t.Var))
	}
	return p
}

// objMin is the tightest objective value reachable within the given domains.
// With all variables fixed it is the exact objective.
func (p *prepared) objMin(lo, hi []int) int {
	sum := 0
	for _, v := range p.objVars {
		if c := p.objCoeff[v]; c > 0 {
			sum += c * lo[v]
		} else {
			sum += c * hi[v]
		}
	}
	return sum
}

type shared struct {
	mu        sync.Mutex
	found     bool
	best      int
	bestVals  []int
	bound     int
	boundOK   bool
	provenOpt bool
	stop      atomic.Bool
}

func (sh *shared) incumbent() (int, bool) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.best, sh.found
}

// offer records a complete assignment if it improves the incumbent. When the
// cost reaches the relaxation bound the search cannot improve further and all
// workers are stopped.
func (sh *shared) offer(cost int, vals []int) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.found && cost >= sh.best {
		return
	}
	sh.found = true
	sh.best = cost
	sh.bestVals = append(sh.bestVals[:0], vals...)
	if sh.boundOK && cost <= sh.bound {
		sh.provenOpt = true
		sh.stop.Store(true)
	}
}

type search struct {
	p        *prepared
	order    []int
	sh       *shared
	ctx      context.Context
	deadline time.Time
	nodes    int
	aborted  bool
}

func (s *search) expired() bool {
	if s.sh.stop.Load() || s.ctx.Err() != nil {
		return true
	}
	return !s.deadline.IsZero() && time.Now().After(s.deadline)
}

func (s *search) dfs(lo, hi []int) {
	if s.aborted {
		return
	}
	s.nodes++
	if s.nodes&255 == 1 && s.expired() {
		s.aborted = true
		return
	}
	if !propagate(s.p.cons, lo, hi) {
		return
	}
	bound := s.p.objMin(lo, hi)
	if best, found := s.sh.incumbent(); found && bound >= best {
		return
	}
	bv := -1
	for _, v := range s.order {
		if lo[v] < hi[v] {
			bv = v
			break
		}
	}
	if bv == -1 {
		s.sh.offer(bound, lo)
		return
	}
	// Descend toward the cheaper value first.
	if s.p.objCoeff[bv] > 0 {
		for val := lo[bv]; val <= hi[bv] && !s.aborted; val++ {
			s.branch(lo, hi, bv, val)
		}
	} else {
		for val := hi[bv]; val >= lo[bv] && !s.aborted; val-- {
			s.branch(lo, hi, bv, val)
		}
	}
}

func (s *search) branch(lo, hi []int, v, val int) {
	clo := append([]int(nil), lo...)
	chi := append([]int(nil), hi...)
	clo[v], chi[v] = val, val
	s.dfs(clo, chi)
}

// propagate tightens variable domains to a fixpoint using interval reasoning
// on every constraint. It reports false when some constraint cannot be
// satisfied within the current domains.
func propagate(cons []linCon, lo, hi []int) bool {
	for changed := true; changed; {
		changed = false
		for _, c := range cons {
			minsum, maxsum := 0, 0
			for _, t := range c.terms {
				if t.Coeff > 0 {
					minsum += t.Coeff * lo[t.Var]
					maxsum += t.Coeff * hi[t.Var]
				} else {
					minsum += t.Coeff * hi[t.Var]
					maxsum += t.Coeff * lo[t.Var]
				}
			}
			if minsum > c.ub || maxsum < c.lb {
				return false
			}
			if minsum >= c.lb && maxsum <= c.ub {
				continue
			}
			for _, t := range c.terms {
				v, co := int(t.Var), t.Coeff
				var contribMin, contribMax int
				if co > 0 {
					contribMin, contribMax = co*lo[v], co*hi[v]
				} else {
					contribMin, contribMax = co*hi[v], co*lo[v]
				}
				if c.ub != NoUpper {
					r := c.ub - (minsum - contribMin)
					if co > 0 {
						if nh := divFloor(r, co); nh < hi[v] {
							hi[v] = nh
							changed = true
						}
					} else {
						if nl := divCeil(r, co); nl > lo[v] {
							lo[v] = nl
							changed = true
						}
					}
				}
				if c.lb != NoLower {
					r := c.lb - (maxsum - contribMax)
					if co > 0 {
						if nl := divCeil(r, co); nl > lo[v] {
							lo[v] = nl
							changed = true
						}
					} else {
						if nh := divFloor(r, co); nh < hi[v] {
							hi[v] = nh
							changed = true
						}
					}
				}
				if lo[v] > hi[v] {
					return false
				}
			}
		}
	}
	return true
}

func divFloor(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func divCeil(a, b int) int { return -divFloor(-a, b) }

// Solve searches for a minimum-cost assignment of the model within the given
// time bound. It never returns a partial assignment: the status is either a
// solution (optimal or feasible), a proven infeasibility, or unknown when the
// bound expired before anything was decided.
func Solve(ctx context.Context, m *Model, opts Options) Result {
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}
	if err := m.validate(); err != nil {
		log.Errorf("invalid model: %v", err)
		return Result{Status: StatusUnknown}
	}
	for i := range m.lo {
		if m.lo[i] > m.hi[i] {
			return Result{Status: StatusInfeasible}
		}
	}

	p := prepare(m)
	sh := &shared{best: math.MaxInt}

	start := time.Now()
	var deadline time.Time
	if opts.TimeLimit > 0 {
		deadline = start.Add(opts.TimeLimit)
	}
	if bound, infeasible, ok := relaxationBound(ctx, deadline, p, m.lo, m.hi); infeasible {
		log.Debugw("relaxation proves infeasibility", map[string]any{"vars": m.NumVars()})
		return Result{Status: StatusInfeasible}
	} else if ok {
		sh.bound = bound
		sh.boundOK = true
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	completed := make([]bool, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		order := make([]int, m.NumVars())
		for i := range order {
			order[i] = i
		}
		if w > 0 {
			r := rand.New(rand.NewSource(opts.Seed + int64(w)))
			r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}
		wg.Add(1)
		go func(w int, order []int) {
			defer wg.Done()
			s := &search{p: p, order: order, sh: sh, ctx: ctx, deadline: deadline}
			lo := append([]int(nil), m.lo...)
			hi := append([]int(nil), m.hi...)
			s.dfs(lo, hi)
			completed[w] = !s.aborted
		}(w, order)
	}
	wg.Wait()

	sh.mu.Lock()
	defer sh.mu.Unlock()
	anyComplete := false
	for _, c := range completed {
		anyComplete = anyComplete || c
	}
	res := Result{Status: StatusUnknown}
	switch {
	case sh.found && (anyComplete || sh.provenOpt):
		res = Result{Status: StatusOptimal, Objective: sh.best, values: sh.bestVals}
	case sh.found:
		res = Result{Status: StatusFeasible, Objective: sh.best, values: sh.bestVals}
	case anyComplete:
		res = Result{Status: StatusInfeasible}
	}
	log.Debugw("solve finished", map[string]any{
		"status":   res.Status.String(),
		"vars":     m.NumVars(),
		"cons":     len(p.cons),
		"duration": time.Since(start).String(),
	})
	return res
}
