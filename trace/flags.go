package trace

import "github.com/hibou-lang/hibou/term"

// AnalysisFlags tracks, for one canal, how much of its trace has been
// consumed, whether it has been hidden by an Eliminate step, whether it
// carries pending local-verdict recomputation, and how many actions
// either side of its matched slice were produced by simulation.
type AnalysisFlags struct {
	Consumed        int
	Hidden          bool
	Dirty4Local     bool
	SimulatedBefore uint32
	SimulatedAfter  uint32
}

// NewAnalysisFlagsInit returns the initial flags for a fresh canal:
// nothing consumed, not hidden, dirty (local verdict not yet computed).
func NewAnalysisFlagsInit() AnalysisFlags {
	return AnalysisFlags{Dirty4Local: true}
}

// SimulationStepKind distinguishes the two ways a simulated action can
// pad a matched slice: ahead of the matched trace, or behind it.
type SimulationStepKind int

const (
	SimBeforeStart SimulationStepKind = iota
	SimAfterEnd
)

// SimulationLoopCriterion bounds how much nested-loop depth a
// simulation step may introduce.
type SimulationLoopCriterion struct {
	Kind       SimLoopKind
	SpecificNum uint32
}

type SimLoopKind int

const (
	SimLoopMaxDepth SimLoopKind = iota
	SimLoopMaxNum
	SimLoopSpecificNum
	SimLoopNone
)

// SimulationActionCriterion bounds how many actions a simulation step
// may introduce.
type SimulationActionCriterion struct {
	Kind        SimActKind
	SpecificNum uint32
}

type SimActKind int

const (
	SimActSpecificNum SimActKind = iota
	SimActNone
)

// SimulationConfiguration pairs the two simulation budgets.
type SimulationConfiguration struct {
	LoopCrit SimulationLoopCriterion
	ActCrit  SimulationActionCriterion
}

// MultiTraceAnalysisFlags is the per-canal flag vector plus the
// remaining simulation budget, threaded through the analysis process.
type MultiTraceAnalysisFlags struct {
	Canals      []AnalysisFlags
	RemLoopInSim uint32
	RemActInSim  uint32
}

// NewMultiTraceAnalysisFlagsInit builds the initial flags for a
// multi-trace with canalsNum canals and the given starting simulation
// budget.
func NewMultiTraceAnalysisFlagsInit(canalsNum int, remLoopInSim, remActInSim uint32) MultiTraceAnalysisFlags {
	canals := make([]AnalysisFlags, canalsNum)
	for i := range canals {
		canals[i] = NewAnalysisFlagsInit()
	}

	return MultiTraceAnalysisFlags{Canals: canals, RemLoopInSim: remLoopInSim, RemActInSim: remActInSim}
}

// IsAnyComponentEmpty reports whether some canal has been fully
// consumed.
func (f MultiTraceAnalysisFlags) IsAnyComponentEmpty(mt MultiTrace) bool {
	for id, cf := range f.Canals {
		if mt.CanalLen(Canal(id)) == cf.Consumed {
			return true
		}
	}

	return false
}

// IsMultiTraceEmpty reports whether every canal has been fully
// consumed.
func (f MultiTraceAnalysisFlags) IsMultiTraceEmpty(mt MultiTrace) bool {
	for id, cf := range f.Canals {
		if mt.CanalLen(Canal(id)) > cf.Consumed {
			return false
		}
	}

	return true
}

// IsAnyComponentHidden reports whether some canal has been hidden by
// an Eliminate step.
func (f MultiTraceAnalysisFlags) IsAnyComponentHidden() bool {
	for _, cf := range f.Canals {
		if cf.Hidden {
			return true
		}
	}

	return false
}

// SimulationState classifies how a multi-trace was consumed with
// respect to simulation: AsSlice means some canal was padded ahead of
// the matched trace, OnlyAfterEnd means padding only occurred behind
// it, No means no simulation occurred at all.
type SimulationState int

const (
	SimStateNo SimulationState = iota
	SimStateOnlyAfterEnd
	SimStateAsSlice
)

// IsSimulated classifies the current simulation state of f.
func (f MultiTraceAnalysisFlags) IsSimulated() SimulationState {
	gotSimAfter := false

	for _, cf := range f.Canals {
		if cf.SimulatedBefore > 0 {
			return SimStateAsSlice
		}

		if cf.SimulatedAfter > 0 {
			gotSimAfter = true
		}
	}

	if gotSimAfter {
		return SimStateOnlyAfterEnd
	}

	return SimStateNo
}

// UpdateOnHide returns f with every canal in toHide marked hidden.
func (f MultiTraceAnalysisFlags) UpdateOnHide(toHide map[Canal]struct{}) MultiTraceAnalysisFlags {
	newCanals := make([]AnalysisFlags, len(f.Canals))

	for id, old := range f.Canals {
		nf := old
		if _, ok := toHide[Canal(id)]; ok {
			nf.Hidden = true
		}

		newCanals[id] = nf
	}

	return MultiTraceAnalysisFlags{Canals: newCanals, RemLoopInSim: f.RemLoopInSim, RemActInSim: f.RemActInSim}
}

// UpdateOnExecution returns f advanced by one execution step: canals in
// consuSet get their Consumed counter incremented, canals in
// affectedColocs are marked dirty for local-verdict recomputation,
// canals in simMap get their before/after simulation counter bumped,
// and (when simConfig is non-nil) the remaining simulation budget is
// recomputed against newInteraction.
func (f MultiTraceAnalysisFlags) UpdateOnExecution(
	simConfig *SimulationConfiguration,
	consuSet map[Canal]struct{},
	simMap map[Canal]SimulationStepKind,
	affectedColocs map[Canal]struct{},
	loopDepth uint32,
	newInteraction term.Interaction,
	maxNestedLoopDepth func(term.Interaction) uint32,
	totalLoopNum func(term.Interaction) uint32,
) MultiTraceAnalysisFlags {
	newCanals := make([]AnalysisFlags, len(f.Canals))

	for id, old := range f.Canals {
		nf := old

		if _, ok := affectedColocs[Canal(id)]; ok {
			nf.Dirty4Local = true
		}

		if _, ok := consuSet[Canal(id)]; ok {
			nf.Consumed++
		}

		if kind, ok := simMap[Canal(id)]; ok {
			switch kind {
			case SimBeforeStart:
				nf.SimulatedBefore++
			case SimAfterEnd:
				nf.SimulatedAfter++
			}
		}

		newCanals[id] = nf
	}

	var remLoop, remAct uint32

	if simConfig != nil {
		remLoop, remAct = f.remActLoopInSim(*simConfig, newInteraction, consuSet, loopDepth, maxNestedLoopDepth, totalLoopNum)
	}

	return MultiTraceAnalysisFlags{Canals: newCanals, RemLoopInSim: remLoop, RemActInSim: remAct}
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}

	return b
}

// saturatingSub computes a-b floored at 0, since the budget must never
// wrap around when loopDepth exceeds the remaining allowance.
func saturatingSub(a, b uint32) uint32 {
	if b >= a {
		return 0
	}

	return a - b
}

func (f MultiTraceAnalysisFlags) remActLoopInSim(
	cfg SimulationConfiguration,
	newInteraction term.Interaction,
	consuSet map[Canal]struct{},
	loopDepth uint32,
	maxNestedLoopDepth func(term.Interaction) uint32,
	totalLoopNum func(term.Interaction) uint32,
) (uint32, uint32) {
	var remLoop uint32

	switch cfg.LoopCrit.Kind {
	case SimLoopMaxDepth:
		if len(consuSet) > 0 {
			remLoop = maxNestedLoopDepth(newInteraction)
		} else {
			onCrit := maxNestedLoopDepth(newInteraction)
			removed := saturatingSub(f.RemLoopInSim, loopDepth)
			remLoop = minU32(onCrit, removed)
		}
	case SimLoopMaxNum:
		if len(consuSet) > 0 {
			remLoop = totalLoopNum(newInteraction)
		} else {
			onCrit := totalLoopNum(newInteraction)
			removed := saturatingSub(f.RemLoopInSim, loopDepth)
			remLoop = minU32(onCrit, removed)
		}
	case SimLoopSpecificNum:
		if len(consuSet) > 0 {
			remLoop = cfg.LoopCrit.SpecificNum
		} else {
			onCrit := cfg.LoopCrit.SpecificNum
			removed := saturatingSub(f.RemLoopInSim, loopDepth)
			remLoop = minU32(onCrit, removed)
		}
	case SimLoopNone:
		remLoop = 0
	}

	var remAct uint32

	switch cfg.ActCrit.Kind {
	case SimActSpecificNum:
		if len(consuSet) > 0 {
			remAct = cfg.ActCrit.SpecificNum
		} else {
			onCrit := cfg.ActCrit.SpecificNum
			removed := saturatingSub(f.RemActInSim, 1)
			remAct = minU32(onCrit, removed)
		}
	case SimActNone:
		remAct = 0
	}

	return remLoop, remAct
}
