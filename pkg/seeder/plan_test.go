package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanDependenciesPointBackwards(t *testing.T) {
	s := newTestSeeder(t, newMemData(), 1)
	plan := s.plan()
	require.NotEmpty(t, plan)

	seen := make(map[string]bool, len(plan))
	for _, step := range plan {
		require.NotEmpty(t, step.name)
		assert.False(t, seen[step.name], "duplicate step name %q", step.name)
		for _, dep := range step.requires {
			assert.True(t, seen[dep], "step %q requires %q before it has run", step.name, dep)
		}
		seen[step.name] = true
	}
}

func TestPlanClientsOnlyPrefixComesFirst(t *testing.T) {
	s := newTestSeeder(t, newMemData(), 1)
	plan := s.plan()

	// The clients-only subset must be a contiguous prefix so the phase gate
	// can skip everything after it.
	fullSeen := false
	for _, step := range plan {
		if !step.clientsOnly {
			fullSeen = true
			continue
		}
		assert.False(t, fullSeen, "clients-only step %q appears after a full-phase step", step.name)
	}
}

func TestResetPlanCoversEveryTable(t *testing.T) {
	s := newTestSeeder(t, newMemData(), 1)
	steps := s.resetPlan()
	require.NotEmpty(t, steps)

	seen := make(map[string]bool, len(steps))
	for _, step := range steps {
		require.NotEmpty(t, step.name)
		assert.False(t, seen[step.name], "duplicate reset step %q", step.name)
		seen[step.name] = true
	}

	// Children are deleted before the rows they reference.
	order := make(map[string]int, len(steps))
	for i, step := range steps {
		order[step.name] = i
	}
	assert.Less(t, order["articles"], order["clients"])
	assert.Less(t, order["clients"], order["media"])
	assert.Less(t, order["comments"], order["articles"])
	assert.Less(t, order["article-tags"], order["articles"])
	assert.Less(t, order["article-tags"], order["tags"])
	assert.Less(t, order["clients"], order["industries"])
	assert.Less(t, order["clients"], order["subscription-tiers"])
}
