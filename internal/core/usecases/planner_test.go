// internal/core/usecases/planner_test.go
package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vajra/internal/core/domain"
)

func newTestPlanner() *Planner {
	// registrados fuera de orden a propósito
	mods, _ := fakeModules(descScreenshot, descNmap, descWhois, descHttpx, descDig, descAmass, descSubfinder)
	return NewPlanner(mods, nil)
}

func TestIsRunAll(t *testing.T) {
	for _, s := range []string{"0", "all", "ALL", " * ", "a"} {
		assert.True(t, IsRunAll(s), s)
	}
	for _, s := range []string{"", "1", "1,0", "al"} {
		assert.False(t, IsRunAll(s), s)
	}
}

func TestPlanner_ModulesCanonicalOrder(t *testing.T) {
	names := []string{}
	for _, d := range newTestPlanner().Modules() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"whois", "dig", "subfinder", "amass", "httpx", "nmap", "screenshot"}, names)
}

func TestPlanner_RunAll(t *testing.T) {
	target := mustTarget(t, "example.com")
	plan, err := newTestPlanner().Plan("all", target, PlanOptions{Report: true})
	require.NoError(t, err)

	assert.Len(t, plan.Steps, 7)
	assert.True(t, plan.Unattended, "run-all never asks")
	assert.True(t, plan.Report)
	for _, s := range plan.Steps {
		assert.False(t, s.Interactive, s.Module.Name)
	}
	nmap := stepOf(t, plan, descNmap.ID)
	assert.Equal(t, "quick", nmap.Params["scan"])
}

func TestPlanner_RunAllIgnoresOverrides(t *testing.T) {
	target := mustTarget(t, "example.com")
	plan, err := newTestPlanner().Plan("0", target, PlanOptions{
		Params: map[domain.ModuleID]domain.Params{descNmap.ID: {"scan": "full"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "quick", stepOf(t, plan, descNmap.ID).Params["scan"])
}

func TestPlanner_SubsetKeepsRegistryOrder(t *testing.T) {
	target := mustTarget(t, "example.com")
	plan, err := newTestPlanner().Plan("nmap, 1 HTTPX", target, PlanOptions{})
	require.NoError(t, err)

	assert.Equal(t, []domain.ModuleID{descWhois.ID, descHttpx.ID, descNmap.ID}, plan.IDs())
	assert.False(t, plan.Unattended)
	for _, s := range plan.Steps {
		assert.True(t, s.Interactive, s.Module.Name)
	}
	assert.Empty(t, plan.Warnings)
}

func TestPlanner_SubsetUnattended(t *testing.T) {
	target := mustTarget(t, "example.com")
	plan, err := newTestPlanner().Plan("5", target, PlanOptions{Unattended: true})
	require.NoError(t, err)

	require.Len(t, plan.Steps, 1)
	assert.True(t, plan.Unattended)
	assert.False(t, plan.Steps[0].Interactive)
}

func TestPlanner_UnknownTokensWarn(t *testing.T) {
	target := mustTarget(t, "example.com")
	plan, err := newTestPlanner().Plan("1,42,bogus", target, PlanOptions{})
	require.NoError(t, err)

	assert.Equal(t, []domain.ModuleID{descWhois.ID}, plan.IDs())
	assert.Len(t, plan.Warnings, 2)
}

func TestPlanner_EmptySelection(t *testing.T) {
	target := mustTarget(t, "example.com")
	plan, err := newTestPlanner().Plan("nothing", target, PlanOptions{})
	require.NoError(t, err, "an empty plan is a no-op, not an error")
	assert.True(t, plan.Empty())
}

func TestPlanner_ParamOverrides(t *testing.T) {
	target := mustTarget(t, "example.com")
	p := newTestPlanner()

	plan, err := p.Plan("nmap", target, PlanOptions{
		Params: map[domain.ModuleID]domain.Params{descNmap.ID: {"scan": "udp"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "udp", plan.Steps[0].Params["scan"])

	plan, err = p.Plan("nmap", target, PlanOptions{
		Params: map[domain.ModuleID]domain.Params{descNmap.ID: {"scan": "stealth"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "quick", plan.Steps[0].Params["scan"], "invalid override falls back to default")
	assert.Len(t, plan.Warnings, 1)
}

func TestPlanner_DefaultsAreCopied(t *testing.T) {
	target := mustTarget(t, "example.com")
	plan, err := newTestPlanner().Plan("nmap", target, PlanOptions{})
	require.NoError(t, err)

	plan.Steps[0].Params["scan"] = "full"
	assert.Equal(t, "quick", descNmap.Defaults["scan"], "plan params must not alias descriptor defaults")
}

func stepOf(t *testing.T, plan domain.ExecutionPlan, id domain.ModuleID) domain.PlanStep {
	t.Helper()
	for _, s := range plan.Steps {
		if s.Module.ID == id {
			return s
		}
	}
	t.Fatalf("module %s not in plan %v", id, plan.IDs())
	return domain.PlanStep{}
}
