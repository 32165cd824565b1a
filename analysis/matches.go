package analysis

import (
	"github.com/hibou-lang/hibou/frontier"
	exec "github.com/hibou-lang/hibou/step"
	"github.com/hibou-lang/hibou/term"
	"github.com/hibou-lang/hibou/trace"
)

// headActions returns, for each canal with a remaining trace, the next
// unconsumed multi-action.
func headActions(ctx *Context, flags trace.MultiTraceAnalysisFlags) map[trace.Canal]term.MultiAction {
	out := make(map[trace.Canal]term.MultiAction)

	for id, cf := range flags.Canals {
		if head, ok := ctx.MultiTrace.Head(trace.Canal(id), cf.Consumed); ok {
			out[trace.Canal(id)] = head
		}
	}

	return out
}

// subsetOf reports whether every action of a is present in b.
func subsetOf(a, b term.MultiAction) bool {
	for act := range a {
		if _, ok := b[act]; !ok {
			return false
		}
	}

	return true
}

// matchedCanals returns the canals whose head multi-action is entirely
// contained in e's target actions (a frontier element produced by a
// Both-combine of Alt/Sync may span more than one canal's head).
func matchedCanals(heads map[trace.Canal]term.MultiAction, e frontier.Element) map[trace.Canal]struct{} {
	out := make(map[trace.Canal]struct{})

	for c, head := range heads {
		if len(head) > 0 && subsetOf(head, e.TargetActions) {
			out[c] = struct{}{}
		}
	}

	return out
}

func unmatchedActions(e frontier.Element, heads map[trace.Canal]term.MultiAction, matched map[trace.Canal]struct{}) term.MultiAction {
	covered := make(term.MultiAction)

	for c := range matched {
		for act := range heads[c] {
			covered[act] = struct{}{}
		}
	}

	rem := make(term.MultiAction)

	for act := range e.TargetActions {
		if _, ok := covered[act]; !ok {
			rem[act] = struct{}{}
		}
	}

	return rem
}

// actionMatches implements the Accept/Prefix/Eliminate-fallback
// expansion rule: every frontier element whose target actions are
// entirely covered by the heads of one or more canals becomes an
// Execute step consuming those canals, with no simulation.
func actionMatches(ctx *Context, interaction term.Interaction, flags trace.MultiTraceAnalysisFlags, partialOrderReduction bool) []StepKind {
	heads := headActions(ctx, flags)

	var steps []StepKind

	for _, e := range frontier.Frontier(interaction) {
		matched := matchedCanals(heads, e)
		if len(matched) == 0 {
			continue
		}

		if len(unmatchedActions(e, heads, matched)) > 0 {
			continue
		}

		steps = append(steps, StepKind{FrontierElt: e, ConsuSet: matched, SimMap: nil})
	}

	if partialOrderReduction {
		steps = reduceByDomination(ctx, interaction, flags, steps)
	}

	return steps
}

// simulationMatches implements a simplified form of the Simulate
// expansion rule: for each frontier element, canals whose head is
// covered consume normally; any action left over is padded by
// simulation (before the matched slice, if the canal is still at its
// start and sim_before is enabled, or after it, if the canal is
// already exhausted), subject to the remaining simulation budget. The
// additional "simulate more" powerset widening the original performs
// over already-matched canals is not reproduced here — every candidate
// this produces is sound, only some of the original's extra redundant
// branches are pruned away, which the search still reaches via other
// orderings.
func simulationMatches(ctx *Context, interaction term.Interaction, flags trace.MultiTraceAnalysisFlags, simBefore bool) []StepKind {
	heads := headActions(ctx, flags)

	var steps []StepKind

	for _, e := range frontier.Frontier(interaction) {
		matched := matchedCanals(heads, e)
		remaining := unmatchedActions(e, heads, matched)

		if len(remaining) == 0 {
			steps = append(steps, StepKind{FrontierElt: e, ConsuSet: matched, SimMap: nil})
			continue
		}

		if !okToSimulate(flags, e) {
			continue
		}

		simMap := make(map[trace.Canal]trace.SimulationStepKind)
		ok := true

		for act := range remaining {
			c, has := ctx.Coloc.CanalOf(act.Lifeline)
			if !has {
				ok = false
				break
			}

			cf := flags.Canals[c]
			canalLen := ctx.MultiTrace.CanalLen(c)

			switch {
			case cf.Consumed == canalLen:
				simMap[c] = trace.SimAfterEnd
			case simBefore && cf.Consumed == 0:
				simMap[c] = trace.SimBeforeStart
			default:
				ok = false
			}

			if !ok {
				break
			}
		}

		if !ok {
			continue
		}

		steps = append(steps, StepKind{FrontierElt: e, ConsuSet: matched, SimMap: simMap})
	}

	return steps
}

func okToSimulate(flags trace.MultiTraceAnalysisFlags, e frontier.Element) bool {
	if flags.RemActInSim == 0 && e.MaxLoopDepth == 0 {
		// no action budget left and the step itself introduces no new
		// loop instantiation: still allowed to simulate a flat action,
		// mirroring the Rust act_crit::None short-circuit.
		return true
	}

	if e.MaxLoopDepth > flags.RemLoopInSim {
		return false
	}

	return true
}

// eliminateHideSteps implements Eliminate's "hide fully-consumed but
// not-yet-hidden canals" pre-step: if any such canal exists, a single
// EliminateNoLongerObserved step is produced and no ordinary match is
// attempted this round.
func eliminateHideSteps(ctx *Context, flags trace.MultiTraceAnalysisFlags) []StepKind {
	toHide := make(map[trace.Canal]struct{})

	for id, cf := range flags.Canals {
		if !cf.Hidden && ctx.MultiTrace.CanalLen(trace.Canal(id)) == cf.Consumed {
			toHide[trace.Canal(id)] = struct{}{}
		}
	}

	if len(toHide) == 0 {
		return nil
	}

	return []StepKind{{IsEliminate: true, ColocToHide: toHide}}
}

// applyExecuteStep fires the frontier element of s against interaction,
// ignoring (but reporting) the set of lifelines whose behaviour was
// erased as a side effect.
func applyExecuteStep(interaction term.Interaction, s StepKind) (term.Interaction, term.LifelineSet) {
	targets := s.FrontierElt.TargetLfIDs

	return exec.Execute(interaction, s.FrontierElt.Position, targets, true)
}
