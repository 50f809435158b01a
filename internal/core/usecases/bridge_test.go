// internal/core/usecases/bridge_test.go
package usecases

import (
	"testing"

	"vajra/internal/core/domain"
	"vajra/internal/platform/errors"
	"vajra/internal/testutil"
)

func TestBridge_NoRequiresUsesTarget(t *testing.T) {
	target := mustTarget(t, "example.com")
	layout := newLayout(t, target)
	plan := planOf(target, false, descWhois)

	ref, err := NewBridge(nil).Prepare(plan.Steps[0], plan, layout)
	testutil.AssertNoError(t, err, "prepare")
	testutil.AssertFalse(t, ref.List, "target ref")
	testutil.AssertEqual(t, ref.Value, "example.com", "target value")
}

func TestBridge_UnionOfDiscoverySources(t *testing.T) {
	target := mustTarget(t, "example.com")
	layout := newLayout(t, target)
	plan := planOf(target, false, descSubfinder, descAmass, descHttpx)

	testutil.WriteLines(t, logsPath(layout, domain.ArtifactSubfinder), "b.example.com", "a.example.com")
	testutil.WriteLines(t, logsPath(layout, domain.ArtifactAmass), "c.example.com", "a.example.com", "")

	ref, err := NewBridge(nil).Prepare(plan.Steps[2], plan, layout)
	testutil.AssertNoError(t, err, "prepare")
	testutil.AssertTrue(t, ref.List, "list ref")
	testutil.AssertEqual(t, ref.Value, logsPath(layout, domain.ArtifactMerged), "merged artifact path")

	got := testutil.ReadLines(t, logsPath(layout, domain.ArtifactMerged))
	testutil.AssertStrings(t, got, []string{"a.example.com", "b.example.com", "c.example.com"}, "sorted unique union")
}

func TestBridge_OneReadySourceStillMerges(t *testing.T) {
	target := mustTarget(t, "example.com")
	layout := newLayout(t, target)
	plan := planOf(target, false, descSubfinder, descAmass, descHttpx)

	// amass falló sin escribir nada
	testutil.WriteLines(t, logsPath(layout, domain.ArtifactSubfinder), "x.example.com", "x.example.com")

	ref, err := NewBridge(nil).Prepare(plan.Steps[2], plan, layout)
	testutil.AssertNoError(t, err, "prepare")
	testutil.AssertEqual(t, ref.Value, logsPath(layout, domain.ArtifactMerged), "merged artifact path")
	testutil.AssertStrings(t, testutil.ReadLines(t, ref.Value), []string{"x.example.com"}, "deduplicated")
}

func TestBridge_EmptyUnionIsMissingInput(t *testing.T) {
	target := mustTarget(t, "example.com")
	layout := newLayout(t, target)
	plan := planOf(target, false, descSubfinder, descAmass, descHttpx)

	// archivos vacíos no cuentan como listos
	testutil.WriteLines(t, logsPath(layout, domain.ArtifactSubfinder))

	_, err := NewBridge(nil).Prepare(plan.Steps[2], plan, layout)
	testutil.AssertTrue(t, errors.Is(err, ErrMissingInput), "empty union")
	testutil.AssertFalse(t, fileExists(logsPath(layout, domain.ArtifactMerged)), "nothing merged")
}

func TestBridge_WhitespaceOnlySourcesAreMissingInput(t *testing.T) {
	target := mustTarget(t, "example.com")
	layout := newLayout(t, target)
	plan := planOf(target, false, descSubfinder, descAmass, descHttpx)

	testutil.WriteLines(t, logsPath(layout, domain.ArtifactSubfinder), "   ", "")
	testutil.WriteLines(t, logsPath(layout, domain.ArtifactAmass), "\t")

	_, err := NewBridge(nil).Prepare(plan.Steps[2], plan, layout)
	testutil.AssertTrue(t, errors.Is(err, ErrMissingInput), "blank lines are no input")
}

func TestBridge_TargetFallbackWithoutProducer(t *testing.T) {
	target := mustTarget(t, "example.com")
	layout := newLayout(t, target)
	plan := planOf(target, true, descHttpx, descNmap)

	ref, err := NewBridge(nil).Prepare(plan.Steps[0], plan, layout)
	testutil.AssertNoError(t, err, "httpx without discovery in plan")
	testutil.AssertEqual(t, ref.String(), "example.com", "target fallback")
}

func TestBridge_SingleSource(t *testing.T) {
	target := mustTarget(t, "example.com")
	layout := newLayout(t, target)
	plan := planOf(target, false, descHttpx, descNmap)

	testutil.WriteLines(t, logsPath(layout, domain.ArtifactAlive), "a.example.com")

	ref, err := NewBridge(nil).Prepare(plan.Steps[1], plan, layout)
	testutil.AssertNoError(t, err, "prepare")
	testutil.AssertEqual(t, ref.String(), "@"+logsPath(layout, domain.ArtifactAlive), "alive list ref")
}

func TestBridge_ProducerInPlanButNoOutput(t *testing.T) {
	target := mustTarget(t, "example.com")
	layout := newLayout(t, target)
	plan := planOf(target, false, descHttpx, descNmap)

	_, err := NewBridge(nil).Prepare(plan.Steps[1], plan, layout)
	testutil.AssertTrue(t, errors.Is(err, ErrMissingInput), "fallback only applies without a producer")
}
