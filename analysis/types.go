// Package analysis implements the four analysis kinds of §4.G —
// Accept, Prefix, Eliminate, Simulate — as an Expander driving a
// process.Manager, plus the top-level Analyze entry point that reduces
// the resulting search tree to a GlobalVerdict.
package analysis

import (
	"sort"

	"github.com/hibou-lang/hibou/process"
	"github.com/hibou-lang/hibou/term"
	"github.com/hibou-lang/hibou/trace"
)

// CoLocPartition partitions the lifelines of a system into
// co-localization canals: groups of lifelines observed together on one
// multi-trace component.
type CoLocPartition struct {
	canals  []term.LifelineSet
	canalOf map[term.Lifeline]trace.Canal
}

// NewCoLocPartition builds a partition from an ordered list of
// lifeline groups, one per canal.
func NewCoLocPartition(groups []term.LifelineSet) *CoLocPartition {
	p := &CoLocPartition{canals: groups, canalOf: make(map[term.Lifeline]trace.Canal)}

	for id, g := range groups {
		for lf := range g {
			p.canalOf[lf] = trace.Canal(id)
		}
	}

	return p
}

// NumCanals returns the number of co-localization canals.
func (p *CoLocPartition) NumCanals() int { return len(p.canals) }

// LifelinesOf returns the lifelines belonging to canal c.
func (p *CoLocPartition) LifelinesOf(c trace.Canal) term.LifelineSet { return p.canals[c] }

// CanalOf returns the canal a lifeline belongs to.
func (p *CoLocPartition) CanalOf(lf term.Lifeline) (trace.Canal, bool) {
	c, ok := p.canalOf[lf]
	return c, ok
}

// CanalsOf returns the set of canals touched by any lifeline of lfs.
func (p *CoLocPartition) CanalsOf(lfs term.LifelineSet) map[trace.Canal]struct{} {
	out := make(map[trace.Canal]struct{})

	for lf := range lfs {
		if c, ok := p.CanalOf(lf); ok {
			out[c] = struct{}{}
		}
	}

	return out
}

// LifelinesOfCanals returns the union of lifelines of every canal in cs.
func (p *CoLocPartition) LifelinesOfCanals(cs map[trace.Canal]struct{}) term.LifelineSet {
	out := term.NewLifelineSet()

	for c := range cs {
		out = out.Union(p.canals[c])
	}

	return out
}

// AreSingletons reports whether every canal holds exactly one lifeline
// (the condition under which a hidden canal degrades Eliminate's
// verdict to MultiPref rather than Inconc).
func (p *CoLocPartition) AreSingletons() bool {
	for _, g := range p.canals {
		if len(g) != 1 {
			return false
		}
	}

	return true
}

func sortedCanals(cs map[trace.Canal]struct{}) []trace.Canal {
	out := make([]trace.Canal, 0, len(cs))
	for c := range cs {
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Kind selects which of the four analysis rules governs expansion.
type Kind int

const (
	Accept Kind = iota
	Prefix
	Eliminate
	Simulate
)

// Config parameterizes an analysis run.
type Config struct {
	Kind      Kind
	SimBefore bool // whether simulation may pad ahead of a canal's matched slice
	SimConfig *trace.SimulationConfiguration
}

// HasSimulation reports whether this configuration can produce
// simulated (padded) steps.
func (c Config) HasSimulation() bool { return c.Kind == Simulate }

// LocalAnalysisSelect chooses which dirty canals a static local-analysis
// short-circuit inspects.
type LocalAnalysisSelect int

const (
	LocalAnalysisAll LocalAnalysisSelect = iota
	LocalAnalysisOnlyImpactedByLastStep
)

// LocalAnalysisParam configures the static local-analysis short-circuit.
type LocalAnalysisParam struct {
	Select   LocalAnalysisSelect
	MaxDepth *uint32
}

// Params bundles every knob §6's configuration table exposes for the
// analysis process.
type Params struct {
	Kind                  Config
	Strategy              process.Strategy
	PartialOrderReduction bool
	LocalAnalysis         *LocalAnalysisParam
	Filters               []PreFilterSpec
}

// PreFilterSpec names a process-level filter in analysis-kind-neutral
// terms; Analyze translates it to a process.PreFilter.
type PreFilterSpec struct {
	MaxProcessDepth       *uint32
	MaxLoopInstantiation  *uint32
	MaxNodeNumber         *uint32
}

// InconcReason names why a leaf resolved to Inconc.
type InconcReason int

const (
	ReasonLackObs InconcReason = iota
	ReasonLifelineRemovalWithCoLocalizations
	ReasonFilteredNodes
)

// LocalVerdictKind is the tag of a per-node LocalVerdict.
type LocalVerdictKind int

const (
	LVCov LocalVerdictKind = iota
	LVTooShort
	LVMultiPref
	LVSlice
	LVInconc
	LVOut
	LVOutSim
)

// LocalVerdict is the per-leaf outcome of an analysis run (§7).
type LocalVerdict struct {
	Kind       LocalVerdictKind
	Reason     InconcReason // valid only when Kind == LVInconc
	FromStatic bool         // valid only when Kind == LVOut or LVOutSim
}

// GlobalVerdict is the whole-run outcome, the join of every leaf's
// LocalVerdict (§7): Pass > WeakPass > Inconc > Fail, where join keeps
// the worst verdict seen.
type GlobalVerdict int

const (
	GVPass GlobalVerdict = iota
	GVWeakPass
	GVInconc
	GVFail
)

func (v GlobalVerdict) String() string {
	switch v {
	case GVPass:
		return "Pass"
	case GVWeakPass:
		return "WeakPass"
	case GVInconc:
		return "Inconc"
	case GVFail:
		return "Fail"
	default:
		return "unknown"
	}
}

// localToGlobal maps one leaf's LocalVerdict to the GlobalVerdict tier
// it contributes.
func localToGlobal(lv LocalVerdict) GlobalVerdict {
	switch lv.Kind {
	case LVCov:
		return GVPass
	case LVMultiPref, LVSlice:
		return GVWeakPass
	case LVInconc:
		return GVInconc
	case LVTooShort, LVOut, LVOutSim:
		return GVFail
	default:
		return GVFail
	}
}

// joinGlobal keeps the worse (more severe) of two global verdicts.
func joinGlobal(a, b GlobalVerdict) GlobalVerdict {
	if a > b {
		return a
	}

	return b
}
