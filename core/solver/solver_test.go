package solver

import (
	"context"
	"testing"
	"time"
)

func solve(t *testing.T, m *Model) Result {
	t.Helper()
	return Solve(context.Background(), m, Options{TimeLimit: 10 * time.Second, Workers: 2})
}

func TestSolve_PicksCheapestOfExactlyOne(t *testing.T) {
	m := NewModel()
	x := m.NewBool("x")
	y := m.NewBool("y")
	z := m.NewBool("z")
	m.AddLinear(1, 1, Term{x, 1}, Term{y, 1}, Term{z, 1})
	m.Minimize([]Term{{x, 5}, {y, 2}, {z, 9}})

	res := solve(t, m)
	if res.Status != StatusOptimal {
		t.Fatalf("expected optimal got %v", res.Status)
	}
	if !res.BoolValue(y) || res.BoolValue(x) || res.BoolValue(z) {
		t.Fatalf("expected only y=1, got x=%d y=%d z=%d", res.Value(x), res.Value(y), res.Value(z))
	}
	if res.Objective != 2 {
		t.Fatalf("expected objective 2 got %d", res.Objective)
	}
}

func TestSolve_ImplicationForcesConsequent(t *testing.T) {
	m := NewModel()
	a := m.NewBool("a")
	b := m.NewBool("b")
	m.AddImplication(a, b)
	m.Fix(a, 1)
	// Reward leaving b at 0 so only the implication can force it up.
	m.Minimize([]Term{{b, 1}})

	res := solve(t, m)
	if res.Status != StatusOptimal {
		t.Fatalf("expected optimal got %v", res.Status)
	}
	if !res.BoolValue(b) {
		t.Fatalf("expected b forced to 1")
	}
}

func TestSolve_InfeasibleSum(t *testing.T) {
	m := NewModel()
	x := m.NewBool("x")
	y := m.NewBool("y")
	m.AddLinear(3, 3, Term{x, 1}, Term{y, 1})

	res := solve(t, m)
	if res.Status != StatusInfeasible {
		t.Fatalf("expected infeasible got %v", res.Status)
	}
}

func TestSolve_ConflictingFixesAreInfeasible(t *testing.T) {
	m := NewModel()
	x := m.NewBool("x")
	m.Fix(x, 0)
	m.Fix(x, 1)

	res := solve(t, m)
	if res.Status != StatusInfeasible {
		t.Fatalf("expected infeasible got %v", res.Status)
	}
}

func TestSolve_MinEqualityRewardsPairing(t *testing.T) {
	m := NewModel()
	x := m.NewBool("x")
	y := m.NewBool("y")
	pair := m.NewBool("pair")
	m.AddMinEquality(pair, x, y)
	m.Fix(x, 1)
	m.Fix(y, 1)
	m.Minimize([]Term{{pair, -3}})

	res := solve(t, m)
	if res.Status != StatusOptimal {
		t.Fatalf("expected optimal got %v", res.Status)
	}
	if !res.BoolValue(pair) {
		t.Fatalf("expected pair=min(1,1)=1")
	}
	if res.Objective != -3 {
		t.Fatalf("expected objective -3 got %d", res.Objective)
	}
}

func TestSolve_MinEqualityZeroWhenOneSideIsZero(t *testing.T) {
	m := NewModel()
	x := m.NewBool("x")
	y := m.NewBool("y")
	pair := m.NewBool("pair")
	m.AddMinEquality(pair, x, y)
	m.Fix(x, 1)
	m.Fix(y, 0)
	m.Minimize([]Term{{pair, -3}})

	res := solve(t, m)
	if res.Status != StatusOptimal {
		t.Fatalf("expected optimal got %v", res.Status)
	}
	if res.BoolValue(pair) {
		t.Fatalf("expected pair=min(1,0)=0")
	}
}

func TestSolve_ShortfallTakesMinimalValue(t *testing.T) {
	m := NewModel()
	b := m.NewBool("b")
	short := m.NewInt("short", 0, 5)
	// short >= 3 - b, penalized: best is b=1, short=2.
	m.AddLinear(3, NoUpper, Term{short, 1}, Term{b, 1})
	m.Minimize([]Term{{short, 1}})

	res := solve(t, m)
	if res.Status != StatusOptimal {
		t.Fatalf("expected optimal got %v", res.Status)
	}
	if res.Value(short) != 2 || !res.BoolValue(b) {
		t.Fatalf("expected b=1 short=2, got b=%d short=%d", res.Value(b), res.Value(short))
	}
	if res.Objective != 2 {
		t.Fatalf("expected objective 2 got %d", res.Objective)
	}
}

// largeModel grows past the relaxation cell cap: one exactly-one row over n
// bools yields (1+2n)*n dense cells.
func largeModel(n int) *Model {
	m := NewModel()
	terms := make([]Term, 0, n)
	for i := 0; i < n; i++ {
		terms = append(terms, Term{m.NewBool("x"), 1})
	}
	m.AddLinear(1, 1, terms...)
	return m
}

func TestRelaxation_SkipsOversizedModels(t *testing.T) {
	m := largeModel(700)
	p := prepare(m)
	_, infeasible, ok := relaxationBound(context.Background(), time.Time{}, p, m.lo, m.hi)
	if ok || infeasible {
		t.Fatalf("expected oversized relaxation skipped, got ok=%v infeasible=%v", ok, infeasible)
	}
}

func TestSolve_LargeModelReturnsWithinTimeLimit(t *testing.T) {
	m := largeModel(700)
	start := time.Now()
	res := Solve(context.Background(), m, Options{TimeLimit: time.Second, Workers: 2})
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("solve overran its bound: %v", elapsed)
	}
	if res.Status != StatusOptimal {
		t.Fatalf("expected optimal got %v", res.Status)
	}
}

func TestSolve_CanceledContextReturnsUnknown(t *testing.T) {
	m := NewModel()
	x := m.NewBool("x")
	m.AddLinear(1, 1, Term{x, 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Solve(ctx, m, Options{Workers: 1})
	if res.Status != StatusUnknown {
		t.Fatalf("expected unknown on canceled context got %v", res.Status)
	}
}

func TestSolve_EmptyModel(t *testing.T) {
	m := NewModel()
	res := solve(t, m)
	if res.Status != StatusOptimal {
		t.Fatalf("expected optimal for empty model got %v", res.Status)
	}
	if res.Objective != 0 {
		t.Fatalf("expected objective 0 got %d", res.Objective)
	}
}
