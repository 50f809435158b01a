// internal/core/usecases/dependency_graph_test.go
package usecases

import (
	"strings"
	"testing"

	"vajra/internal/core/domain"
	"vajra/internal/testutil"
)

func stepsOf(descs ...domain.ModuleDescriptor) []domain.PlanStep {
	steps := make([]domain.PlanStep, len(descs))
	for i, d := range descs {
		steps[i] = domain.PlanStep{Module: d}
	}
	return steps
}

func TestDependencyGraph_Dependents(t *testing.T) {
	g := buildDependencyGraph(stepsOf(allDescriptors()...))

	got := g.dependents(descSubfinder.ID)
	want := []domain.ModuleID{descHttpx.ID, descNmap.ID, descScreenshot.ID}
	if len(got) != len(want) {
		t.Fatalf("dependents(subfinder) = %v, want %v", got, want)
	}
	for i := range want {
		testutil.AssertEqual(t, got[i], want[i], "dependent in plan order")
	}

	testutil.AssertEqual(t, len(g.dependents(descWhois.ID)), 0, "whois feeds nobody")
	testutil.AssertEqual(t, len(g.dependents(descNmap.ID)), 0, "nmap is a leaf")
	testutil.AssertEqual(t, len(g.dependents("99")), 0, "unknown module")
}

func TestDependencyGraph_DependentNames(t *testing.T) {
	g := buildDependencyGraph(stepsOf(descHttpx, descNmap, descScreenshot))
	testutil.AssertStrings(t, g.dependentNames(descHttpx.ID), []string{"nmap", "screenshot"}, "names")
}

func TestDependencyGraph_TopologicalOrder(t *testing.T) {
	g := buildDependencyGraph(stepsOf(descNmap, descHttpx, descSubfinder))
	order, err := g.topologicalOrder()
	testutil.AssertNoError(t, err, "acyclic graph")

	pos := make(map[domain.ModuleID]int)
	for i, id := range order {
		pos[id] = i
	}
	testutil.AssertTrue(t, pos[descSubfinder.ID] < pos[descHttpx.ID], "subfinder before httpx")
	testutil.AssertTrue(t, pos[descHttpx.ID] < pos[descNmap.ID], "httpx before nmap")
}

func TestDependencyGraph_Cycle(t *testing.T) {
	a := domain.ModuleDescriptor{ID: "a", Name: "a", Produces: []string{"a.txt"},
		Requires: []domain.InputSpec{{Kind: "b", Sources: []string{"b.txt"}}}}
	b := domain.ModuleDescriptor{ID: "b", Name: "b", Produces: []string{"b.txt"},
		Requires: []domain.InputSpec{{Kind: "a", Sources: []string{"a.txt"}}}}

	_, err := buildDependencyGraph(stepsOf(a, b)).topologicalOrder()
	testutil.AssertError(t, err, "cycle must be detected")
	testutil.AssertContains(t, err.Error(), "circular dependency", "error message")
}

func TestDependencyGraph_ValidateOrder(t *testing.T) {
	testutil.AssertNoError(t, buildDependencyGraph(stepsOf(allDescriptors()...)).validateOrder(), "canonical order")

	err := buildDependencyGraph(stepsOf(descNmap, descHttpx)).validateOrder()
	testutil.AssertError(t, err, "consumer before producer")
	if !strings.Contains(err.Error(), "nmap runs before its producer httpx") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDependencyGraph_StarvedBy(t *testing.T) {
	g := buildDependencyGraph(stepsOf(descSubfinder, descAmass, descHttpx, descNmap, descScreenshot))
	none := func(string) bool { return false }

	testutil.AssertEqual(t, g.starvedBy(descSubfinder.ID, descHttpx.ID, none), false, "amass runs later")
	testutil.AssertEqual(t, g.starvedBy(descAmass.ID, descHttpx.ID, none), true, "no producer left")
	testutil.AssertEqual(t, g.starvedBy(descHttpx.ID, descNmap.ID, none), true, "httpx is the only live-hosts producer")
	testutil.AssertEqual(t, g.starvedBy(descWhois.ID, descNmap.ID, none), false, "not in the plan")

	alive := func(a string) bool { return a == domain.ArtifactAlive }
	testutil.AssertEqual(t, g.starvedBy(descHttpx.ID, descNmap.ID, alive), false, "artifact already on disk")

	got := g.directDependents(descHttpx.ID)
	testutil.AssertEqual(t, len(got), 2, "nmap and screenshot")
}
