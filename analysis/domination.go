package analysis

import (
	"github.com/hibou-lang/hibou/frontier"
	exec "github.com/hibou-lang/hibou/step"
	"github.com/hibou-lang/hibou/term"
	"github.com/hibou-lang/hibou/trace"
)

// reduceByDomination implements the partial-order-reduction pass.
// domination.rs only ever compares two head actions that are exactly
// equal multi-actions (two frontier positions offering the same next
// action to the same canal): among those, if firing A then looking for B
// reaches a superset of what firing B then looking for A reaches, B is
// redundant and can be dropped from the candidate list, since the
// search exploring A first already covers everything B-first would
// have found. Of two steps that dominate each other, the one listed
// first is kept.
func reduceByDomination(ctx *Context, interaction term.Interaction, flags trace.MultiTraceAnalysisFlags, steps []StepKind) []StepKind {
	if len(steps) <= 1 {
		return steps
	}

	heads := headActions(ctx, flags)

	var eligible []int

	for i, s := range steps {
		if len(s.ConsuSet) != 1 {
			continue
		}

		for c := range s.ConsuSet {
			if head, ok := heads[c]; ok && head.Equal(s.FrontierElt.TargetActions) {
				eligible = append(eligible, i)
			}
		}
	}

	dominated := make(map[int]bool, len(eligible))

	for _, left := range eligible {
		if dominated[left] {
			continue
		}

		for _, right := range eligible {
			if left == right || !steps[left].FrontierElt.TargetActions.Equal(steps[right].FrontierElt.TargetActions) {
				continue
			}

			leftFollowUp, _ := applyExecuteStep(interaction, steps[left])
			rightFollowUp, _ := applyExecuteStep(interaction, steps[right])

			leftThenRight := reachableAfter(leftFollowUp, steps[right].FrontierElt.TargetActions)
			rightThenLeft := reachableAfter(rightFollowUp, steps[left].FrontierElt.TargetActions)

			if subsetInteractions(rightThenLeft, leftThenRight) {
				dominated[right] = true
			}
		}
	}

	if len(dominated) == 0 {
		return steps
	}

	out := make([]StepKind, 0, len(steps)-len(dominated))

	for i, s := range steps {
		if !dominated[i] {
			out = append(out, s)
		}
	}

	if len(out) == 0 {
		return steps
	}

	return out
}

// reachableAfter returns every follow-up reachable from i by firing a
// frontier element whose target actions equal action.
func reachableAfter(i term.Interaction, action term.MultiAction) []term.Interaction {
	var out []term.Interaction

	for _, e := range frontier.Frontier(i) {
		if e.TargetActions.Equal(action) {
			ni, _ := exec.Execute(i, e.Position, e.TargetLfIDs, false)
			out = append(out, ni)
		}
	}

	return out
}

func subsetInteractions(a, b []term.Interaction) bool {
	for _, ai := range a {
		found := false

		for _, bi := range b {
			if ai.Equal(bi) {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}
