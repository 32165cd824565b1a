package analysis

import (
	"github.com/hibou-lang/hibou/frontier"
	"github.com/hibou-lang/hibou/term"
	"github.com/hibou-lang/hibou/trace"
)

// Context is the read-only information shared by every node of one
// analysis run: the co-localization partition and the multi-trace
// being matched against.
type Context struct {
	Coloc      *CoLocPartition
	MultiTrace trace.MultiTrace
}

// NodeData is the per-node analysis state: the residual interaction,
// its per-canal consumption/hide/simulation flags, and the cumulative
// loop-instantiation depth along the path reaching this node.
type NodeData struct {
	Interaction  term.Interaction
	Flags        trace.MultiTraceAnalysisFlags
	AnaLoopDepth uint32

	// StaticDead is set once staticLocalAnalysis finds a dirty canal
	// that can never be completed; once set, expansion stops and the
	// node's LocalVerdict is Out/OutSim with FromStatic true.
	StaticDead bool
}

// StepKind is one pending transition out of a node: either firing a
// frontier element (Execute, optionally consuming/simulating specific
// canals), or hiding a set of canals that are fully consumed but not
// yet observed-as-done (EliminateNoLongerObserved).
type StepKind struct {
	IsEliminate    bool
	ColocToHide    map[trace.Canal]struct{}
	FrontierElt    frontier.Element
	ConsuSet       map[trace.Canal]struct{}
	SimMap         map[trace.Canal]trace.SimulationStepKind
}
