// internal/core/usecases/target_resolver_test.go
package usecases

import (
	"path/filepath"
	"testing"

	"vajra/internal/core/domain"
	"vajra/internal/platform/errors"
	"vajra/internal/testutil"
)

func TestResolveTargets_Single(t *testing.T) {
	tests := []struct {
		in    string
		value string
		kind  domain.TargetKind
	}{
		{"Example.COM.", "example.com", domain.TargetKindHost},
		{" 93.184.216.34 ", "93.184.216.34", domain.TargetKindIP},
		{"10.0.0.7/24", "10.0.0.0/24", domain.TargetKindCIDR},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			set, err := ResolveTargets(tt.in)
			testutil.AssertNoError(t, err, "resolve")
			if len(set.Targets) != 1 {
				t.Fatalf("targets = %v", set.Targets)
			}
			testutil.AssertEqual(t, set.Targets[0].Value, tt.value, "canonical value")
			testutil.AssertEqual(t, set.Targets[0].Kind, tt.kind, "kind")
			testutil.AssertEqual(t, set.Group, "", "single target has no group")
		})
	}
}

func TestResolveTargets_Invalid(t *testing.T) {
	_, err := ResolveTargets("   ")
	testutil.AssertTrue(t, errors.Is(err, domain.ErrEmptyTarget), "blank input")

	_, err = ResolveTargets("not a domain")
	testutil.AssertTrue(t, errors.Is(err, domain.ErrInvalidTarget), "invalid host")
}

func TestResolveTargets_List(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scope.txt")
	testutil.WriteLines(t, path,
		"# in scope",
		"example.com",
		"EXAMPLE.com",
		"",
		"not a domain",
		"10.0.0.0/30",
	)

	set, err := ResolveTargets("@" + path)
	testutil.AssertNoError(t, err, "resolve list")

	values := make([]string, len(set.Targets))
	for i, tg := range set.Targets {
		values[i] = tg.Value
	}
	testutil.AssertStrings(t, values, []string{"example.com", "10.0.0.0/30"}, "deduplicated in file order")
	testutil.AssertEqual(t, set.Group, "scope", "group from file name")
	testutil.AssertEqual(t, len(set.Warnings), 1, "one dropped entry")
	testutil.AssertContains(t, set.Warnings[0], "not a domain", "warning names the entry")
}

func TestResolveTargets_ListWithoutValidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.lst")
	testutil.WriteLines(t, path, "# nothing", "-invalid.com")

	set, err := ResolveTargets("@" + path)
	testutil.AssertTrue(t, errors.Is(err, domain.ErrNoTargets), "no valid entries")
	testutil.AssertEqual(t, len(set.Warnings), 1, "invalid entry reported")
}

func TestResolveTargets_MissingList(t *testing.T) {
	_, err := ResolveTargets("@" + filepath.Join(t.TempDir(), "absent.txt"))
	testutil.AssertTrue(t, errors.IsNotFound(err), "missing list file")
}

func TestListGroup(t *testing.T) {
	testutil.AssertEqual(t, listGroup("/tmp/my scope.v2.txt"), "myscope.v2", "unsafe chars removed")
	testutil.AssertEqual(t, listGroup("targets"), "targets", "no extension")
}
