package process_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibou-lang/hibou/process"
)

// countdownExpander expands an int n into n-1, once, for every n > 0 —
// a minimal domain just complex enough to exercise a Manager run
// without pulling in term/analysis semantics.
type countdownExpander struct{}

func (countdownExpander) LoopDepthOf(int, int) uint32 { return 0 }

func (countdownExpander) Apply(data int, step int) (int, []int) {
	if step <= 0 {
		return step, nil
	}

	return step, []int{step - 1}
}

type recordingObserver struct {
	expanded []int
	filtered []int
}

func (r *recordingObserver) OnFiltered(parent, child process.NodePath, step int, kind process.FilterKind) {
	r.filtered = append(r.filtered, step)
}

func (r *recordingObserver) OnExpanded(parent, child process.NodePath, step int, newData int) {
	r.expanded = append(r.expanded, newData)
}

func TestManagerDrainsACountdownChain(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	mgr := process.NewManager[int, int](process.BFS, nil, obs)
	mgr.Seed(3, []int{3})
	mgr.Run(countdownExpander{})

	assert.Equal(t, []int{3, 2, 1, 0}, obs.expanded)
	assert.Equal(t, uint32(4), mgr.NodeCount())
	assert.Empty(t, obs.filtered)
}

func TestManagerMaxNodeNumberFilterStopsExpansion(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	filters := []process.PreFilter{{Kind: process.FilterMaxNodeNumber, Bound: 2}}
	mgr := process.NewManager[int, int](process.BFS, filters, obs)
	mgr.Seed(5, []int{5})
	mgr.Run(countdownExpander{})

	assert.Len(t, obs.expanded, 2)
	assert.NotEmpty(t, obs.filtered)
	assert.LessOrEqual(t, mgr.NodeCount(), uint32(2))
}

func TestManagerNilObserverDiscardsCallbacks(t *testing.T) {
	t.Parallel()

	mgr := process.NewManager[int, int](process.BFS, nil, nil)
	mgr.Seed(2, []int{2})

	require.NotPanics(t, func() { mgr.Run(countdownExpander{}) })
	assert.Equal(t, uint32(3), mgr.NodeCount())
}

func TestStrategyAndFilterKindStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "BFS", process.BFS.String())
	assert.Equal(t, "DFS", process.DFS.String())
	assert.Equal(t, "HCS", process.HCS.String())

	assert.Equal(t, "MaxProcessDepth", process.FilterMaxProcessDepth.String())
	assert.Equal(t, "MaxLoopInstantiation", process.FilterMaxLoopInstantiation.String())
	assert.Equal(t, "MaxNodeNumber", process.FilterMaxNodeNumber.String())
}
