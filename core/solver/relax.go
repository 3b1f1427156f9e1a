package solver

import (
	"context"
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// maxRelaxationCells caps the dense matrix size handed to the simplex solver.
// Past this size a simplex run can outlast the whole search budget, so the
// bound is not worth computing.
const maxRelaxationCells = 250000

// relaxationBound solves the continuous relaxation of the model with the
// simplex method. An infeasible relaxation proves the integer model
// infeasible; a solved one yields an integer lower bound on the objective
// used to detect optimality early. The run is abandoned when the deadline or
// context expires, and oversized models are skipped outright - the search
// never depends on the bound being present.
func relaxationBound(ctx context.Context, deadline time.Time, p *prepared, lo, hi []int) (bound int, infeasible bool, ok bool) {
	n := len(lo)
	if n == 0 {
		return 0, false, false
	}

	nEq := 0
	nIneq := 2 * n
	for _, c := range p.cons {
		if c.lb == c.ub {
			nEq++
			continue
		}
		if c.ub != NoUpper {
			nIneq++
		}
		if c.lb != NoLower {
			nIneq++
		}
	}
	if nEq == 0 {
		return 0, false, false
	}
	if (nEq+nIneq)*n > maxRelaxationCells {
		return 0, false, false
	}

	c := make([]float64, n)
	for _, v := range p.objVars {
		c[v] = float64(p.objCoeff[v])
	}

	g := mat.NewDense(nIneq, n, nil)
	h := make([]float64, nIneq)
	a := mat.NewDense(nEq, n, nil)
	b := make([]float64, nEq)

	row := 0
	for v := 0; v < n; v++ {
		g.Set(row, v, 1)
		h[row] = float64(hi[v])
		row++
		g.Set(row, v, -1)
		h[row] = float64(-lo[v])
		row++
	}
	eq := 0
	for _, con := range p.cons {
		if con.lb == con.ub {
			for _, t := range con.terms {
				a.Set(eq, int(t.Var), float64(t.Coeff))
			}
			b[eq] = float64(con.lb)
			eq++
			continue
		}
		if con.ub != NoUpper {
			for _, t := range con.terms {
				g.Set(row, int(t.Var), float64(t.Coeff))
			}
			h[row] = float64(con.ub)
			row++
		}
		if con.lb != NoLower {
			for _, t := range con.terms {
				g.Set(row, int(t.Var), float64(-t.Coeff))
			}
			h[row] = float64(-con.lb)
			row++
		}
	}

	cStd, aStd, bStd := lp.Convert(c, g, h, a, b)

	type simplexOut struct {
		opt float64
		err error
	}
	// Buffered so an abandoned run can finish in the background and be
	// collected.
	done := make(chan simplexOut, 1)
	go func() {
		opt, _, err := lp.Simplex(cStd, aStd, bStd, 1e-7, nil)
		done <- simplexOut{opt: opt, err: err}
	}()

	var expire <-chan time.Time
	if !deadline.IsZero() {
		timer := time.NewTimer(time.Until(deadline))
		defer timer.Stop()
		expire = timer.C
	}
	select {
	case out := <-done:
		if out.err != nil {
			if errors.Is(out.err, lp.ErrInfeasible) {
				return 0, true, false
			}
			return 0, false, false
		}
		return int(math.Ceil(out.opt - 1e-6)), false, true
	case <-ctx.Done():
		return 0, false, false
	case <-expire:
		return 0, false, false
	}
}
