package analysis

import (
	"github.com/hibou-lang/hibou/process"
	"github.com/hibou-lang/hibou/reduce"
	exec "github.com/hibou-lang/hibou/step"
	"github.com/hibou-lang/hibou/structural"
	"github.com/hibou-lang/hibou/trace"
)

// expanderImpl is the process.Expander[NodeData, StepKind] driving one
// analysis run: it dispatches each StepKind to either the
// EliminateNoLongerObserved lifeline-removal rule or an ordinary
// Execute, then re-derives the node's pending steps via
// collectNextSteps, per the analysis Kind in params.Kind.
type expanderImpl struct {
	ctx    *Context
	params Params
}

func (e *expanderImpl) LoopDepthOf(data NodeData, step StepKind) uint32 {
	if step.IsEliminate {
		return 0
	}

	return step.FrontierElt.MaxLoopDepth
}

func (e *expanderImpl) Apply(data NodeData, step StepKind) (NodeData, []StepKind) {
	var newData NodeData

	if step.IsEliminate {
		hidden := e.ctx.Coloc.LifelinesOfCanals(step.ColocToHide)
		newData = NodeData{
			Interaction:  reduce.EliminateLifelines(data.Interaction, hidden),
			Flags:        data.Flags.UpdateOnHide(step.ColocToHide),
			AnaLoopDepth: data.AnaLoopDepth,
		}
	} else {
		newInteraction, affected := exec.Execute(data.Interaction, step.FrontierElt.Position, step.FrontierElt.TargetLfIDs, true)
		affectedCanals := e.ctx.Coloc.CanalsOf(affected)

		var simConfig *trace.SimulationConfiguration
		if e.params.Kind.HasSimulation() {
			simConfig = e.params.Kind.SimConfig
		}

		newFlags := data.Flags.UpdateOnExecution(
			simConfig,
			step.ConsuSet,
			step.SimMap,
			affectedCanals,
			step.FrontierElt.MaxLoopDepth,
			newInteraction,
			structural.MaxNestedLoopDepth,
			structural.TotalLoopNum,
		)

		newData = NodeData{
			Interaction:  newInteraction,
			Flags:        newFlags,
			AnaLoopDepth: data.AnaLoopDepth + step.FrontierElt.MaxLoopDepth,
		}
	}

	newData = checkStatic(e.ctx, e.params, newData)

	return newData, collectNextSteps(e.ctx, e.params, newData)
}

// collectNextSteps dispatches to the step-generation rule matching the
// configured analysis Kind, stopping once the multi-trace is fully
// consumed.
func collectNextSteps(ctx *Context, params Params, data NodeData) []StepKind {
	if data.StaticDead || data.Flags.IsMultiTraceEmpty(ctx.MultiTrace) {
		return nil
	}

	switch params.Kind.Kind {
	case Accept, Prefix:
		return actionMatches(ctx, data.Interaction, data.Flags, params.PartialOrderReduction)
	case Eliminate:
		if steps := eliminateHideSteps(ctx, data.Flags); len(steps) > 0 {
			return steps
		}

		return actionMatches(ctx, data.Interaction, data.Flags, params.PartialOrderReduction)
	case Simulate:
		return simulationMatches(ctx, data.Interaction, data.Flags, params.Kind.SimBefore)
	default:
		return nil
	}
}

// buildFilters translates the kind-neutral PreFilterSpecs of Params
// into process.PreFilter, one entry per populated bound.
func buildFilters(specs []PreFilterSpec) []process.PreFilter {
	var out []process.PreFilter

	for _, s := range specs {
		if s.MaxProcessDepth != nil {
			out = append(out, process.PreFilter{Kind: process.FilterMaxProcessDepth, Bound: *s.MaxProcessDepth})
		}

		if s.MaxLoopInstantiation != nil {
			out = append(out, process.PreFilter{Kind: process.FilterMaxLoopInstantiation, Bound: *s.MaxLoopInstantiation})
		}

		if s.MaxNodeNumber != nil {
			out = append(out, process.PreFilter{Kind: process.FilterMaxNodeNumber, Bound: *s.MaxNodeNumber})
		}
	}

	return out
}

var _ process.Expander[NodeData, StepKind] = (*expanderImpl)(nil)
