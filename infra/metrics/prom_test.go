package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSolveSink_RecordSolve(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewSolveSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}

	sink.RecordSolve("optimal", 120*time.Millisecond)
	sink.RecordSolve("optimal", 80*time.Millisecond)
	sink.RecordSolve("infeasible", 10*time.Millisecond)

	expected := `
# HELP crewsolve_solves_total Total number of assignment solves by outcome
# TYPE crewsolve_solves_total counter
crewsolve_solves_total{status="infeasible"} 1
crewsolve_solves_total{status="optimal"} 2
`
	if err := testutil.CollectAndCompare(sink.solves, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.duration); c == 0 {
		t.Errorf("duration not recorded")
	}
}

func TestSolveSink_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewSolveSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	second, err := NewSolveSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	first.RecordSolve("optimal", time.Millisecond)
	second.RecordSolve("optimal", time.Millisecond)

	expected := `
# HELP crewsolve_solves_total Total number of assignment solves by outcome
# TYPE crewsolve_solves_total counter
crewsolve_solves_total{status="optimal"} 2
`
	if err := testutil.CollectAndCompare(second.solves, strings.NewReader(expected)); err != nil {
		t.Errorf("collectors not shared: %v", err)
	}
}
