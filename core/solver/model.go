// Package solver provides a small exact engine for linear models over binary
// and bounded integer variables. A model is a set of two-sided linear
// constraints plus a linear objective to minimize; solving runs a parallel
// branch-and-bound search under a wall-clock bound, with an LP relaxation
// supplying an early infeasibility proof and an optimality bound.
package solver

import (
	"fmt"
	"math"
)

// Sentinel bounds for one-sided constraints. Kept well away from the int
// limits so bound arithmetic cannot overflow.
const (
	NoLower = math.MinInt / 4
	NoUpper = math.MaxInt / 4
)

// Var identifies a decision variable within its model.
type Var int

// Term is one coefficient*variable product of a linear expression.
type Term struct {
	Var   Var
	Coeff int
}

type linCon struct {
	terms []Term
	lb    int
	ub    int
}

// Model collects variables, constraints and the objective. It is not safe for
// concurrent mutation; build it fully before solving.
type Model struct {
	lo    []int
	hi    []int
	names []string
	cons  []linCon
	obj   []Term
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{}
}

// NumVars returns the number of declared variables.
func (m *Model) NumVars() int { return len(m.lo) }

// NewBool declares a fresh binary variable.
func (m *Model) NewBool(name string) Var {
	return m.NewInt(name, 0, 1)
}

// NewInt declares a fresh integer variable with inclusive domain [lo, hi].
func (m *Model) NewInt(name string, lo, hi int) Var {
	m.lo = append(m.lo, lo)
	m.hi = append(m.hi, hi)
	m.names = append(m.names, name)
	return Var(len(m.lo) - 1)
}

// Name returns the debug name of v.
func (m *Model) Name(v Var) string { return m.names[v] }

// AddLinear constrains lb <= sum(terms) <= ub. Use NoLower / NoUpper for
// one-sided constraints.
func (m *Model) AddLinear(lb, ub int, terms ...Term) {
	cp := make([]Term, len(terms))
	copy(cp, terms)
	m.cons = append(m.cons, linCon{terms: cp, lb: lb, ub: ub})
}

// AddImplication enforces a = 1 => b = 1, i.e. b - a >= 0.
func (m *Model) AddImplication(a, b Var) {
	m.AddLinear(0, NoUpper, Term{Var: b, Coeff: 1}, Term{Var: a, Coeff: -1})
}

// AddMinEquality enforces t = min(a, b) for binary variables, the standard
// linearization of a logical AND: t <= a, t <= b, t >= a + b - 1.
func (m *Model) AddMinEquality(t, a, b Var) {
	m.AddLinear(0, NoUpper, Term{Var: a, Coeff: 1}, Term{Var: t, Coeff: -1})
	m.AddLinear(0, NoUpper, Term{Var: b, Coeff: 1}, Term{Var: t, Coeff: -1})
	m.AddLinear(NoLower, 1, Term{Var: a, Coeff: 1}, Term{Var: b, Coeff: 1}, Term{Var: t, Coeff: -1})
}

// Fix pins v to val by tightening its domain. Conflicting fixes leave an
// empty domain, which solving reports as infeasible.
func (m *Model) Fix(v Var, val int) {
	if val > m.lo[v] {
		m.lo[v] = val
	}
	if val < m.hi[v] {
		m.hi[v] = val
	}
}

// Minimize sets the objective to the sum of the given terms. Terms naming the
// same variable are accumulated.
func (m *Model) Minimize(terms []Term) {
	m.obj = coalesce(terms)
}

// coalesce merges duplicate variables of a term list, dropping zero
// coefficients.
func coalesce(terms []Term) []Term {
	sum := make(map[Var]int, len(terms))
	order := make([]Var, 0, len(terms))
	for _, t := range terms {
		if _, ok := sum[t.Var]; !ok {
			order = append(order, t.Var)
		}
		sum[t.Var] += t.Coeff
	}
	out := make([]Term, 0, len(order))
	for _, v := range order {
		if c := sum[v]; c != 0 {
			out = append(out, Term{Var: v, Coeff: c})
		}
	}
	return out
}

// validate reports structural problems that make the model unsolvable.
func (m *Model) validate() error {
	for _, c := range m.cons {
		for _, t := range c.terms {
			if int(t.Var) < 0 || int(t.Var) >= len(m.lo) {
				return fmt.Errorf("solver: constraint references unknown variable %d", t.Var)
			}
		}
	}
	for _, t := range m.obj {
		if int(t.Var) < 0 || int(t.Var) >= len(m.lo) {
			return fmt.Errorf("solver: objective references unknown variable %d", t.Var)
		}
	}
	return nil
}
