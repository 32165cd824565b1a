package analysis

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/hibou-lang/hibou/reduce"
	"github.com/hibou-lang/hibou/structural"
	"github.com/hibou-lang/hibou/term"
	"github.com/hibou-lang/hibou/trace"
)

// staticLocalAnalysis is a partial, self-contained stand-in for
// domination.rs's sibling is_dead_local_analysis, whose exact decision
// predicate is not present in the retrieval pack (see DESIGN.md).
// Rather than a full recursive per-canal re-analysis, it runs a cheap,
// sound consistency check on each dirty canal's own projection of the
// interaction (obtained by pruning away every other canal's
// lifelines): a canal whose trace is exhausted but whose projection
// still expresses mandatory behaviour, or whose projection is already
// empty while its trace still has pending actions, can never be
// completed and short-circuits the parent node as a local failure.
// Every canal found to fail is collected in a multierror.Error so
// future diagnostics can report every offending canal, not only the
// first.
func staticLocalAnalysis(ctx *Context, params Params, data NodeData) (trace.Canal, bool) {
	if params.LocalAnalysis == nil {
		return 0, false
	}

	var errs *multierror.Error

	var failCanal trace.Canal

	failed := false

	for _, c := range dirtyCanals(ctx, params, data) {
		if localCanalFails(ctx, data, c) {
			errs = multierror.Append(errs, fmt.Errorf("canal %d: local analysis failed", c))

			if !failed {
				failCanal = c
				failed = true
			}
		}
	}

	if errs.ErrorOrNil() != nil {
		return failCanal, true
	}

	return 0, false
}

// checkStatic runs staticLocalAnalysis once per node, marks the node
// dead if it finds an unrecoverable canal, and clears every canal's
// dirty flag since its local verdict has now been computed.
func checkStatic(ctx *Context, params Params, data NodeData) NodeData {
	if data.StaticDead || params.LocalAnalysis == nil {
		return data
	}

	if _, failed := staticLocalAnalysis(ctx, params, data); failed {
		data.StaticDead = true
	}

	canals := make([]trace.AnalysisFlags, len(data.Flags.Canals))
	for id, cf := range data.Flags.Canals {
		cf.Dirty4Local = false
		canals[id] = cf
	}

	data.Flags.Canals = canals

	return data
}

func dirtyCanals(ctx *Context, params Params, data NodeData) []trace.Canal {
	var out []trace.Canal

	onlyImpacted := params.LocalAnalysis.Select == LocalAnalysisOnlyImpactedByLastStep

	for id, cf := range data.Flags.Canals {
		if onlyImpacted && !cf.Dirty4Local {
			continue
		}

		out = append(out, trace.Canal(id))
	}

	return out
}

func localCanalFails(ctx *Context, data NodeData, c trace.Canal) bool {
	lfs := ctx.Coloc.LifelinesOf(c)
	all := structural.Involves(data.Interaction)
	complement := setDifference(all, lfs)
	projected := reduce.Prune(data.Interaction, complement)

	cf := data.Flags.Canals[c]
	canalExhausted := ctx.MultiTrace.CanalLen(c) == cf.Consumed

	if canalExhausted {
		return !structural.ExpressEmpty(projected)
	}

	return projected.IsEmpty()
}

func setDifference(a, b term.LifelineSet) term.LifelineSet {
	out := term.NewLifelineSet()

	for lf := range a {
		if !b.Contains(lf) {
			out = out.Union(term.NewLifelineSet(lf))
		}
	}

	return out
}
