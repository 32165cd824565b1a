package analysis

import (
	"github.com/hibou-lang/hibou/structural"
	"github.com/hibou-lang/hibou/trace"
)

// localVerdictWhenNoChild computes the per-leaf LocalVerdict (§7),
// transliterated from handler.rs's get_local_verdict_when_no_child: it
// branches first on whether the multi-trace is fully consumed, then on
// whether the residual interaction expresses empty, then on the
// configured analysis Kind.
func localVerdictWhenNoChild(ctx *Context, params Params, data NodeData) LocalVerdict {
	if data.StaticDead {
		if params.Kind.HasSimulation() {
			return LocalVerdict{Kind: LVOutSim, FromStatic: true}
		}

		return LocalVerdict{Kind: LVOut, FromStatic: true}
	}

	mtEmpty := data.Flags.IsMultiTraceEmpty(ctx.MultiTrace)

	if !mtEmpty {
		switch params.Kind.Kind {
		case Accept:
			return LocalVerdict{Kind: LVOut}
		case Prefix:
			if data.Flags.IsAnyComponentEmpty(ctx.MultiTrace) {
				return LocalVerdict{Kind: LVInconc, Reason: ReasonLackObs}
			}

			return LocalVerdict{Kind: LVOut}
		case Eliminate:
			return LocalVerdict{Kind: LVOut}
		case Simulate:
			return LocalVerdict{Kind: LVOutSim}
		default:
			return LocalVerdict{Kind: LVOut}
		}
	}

	if structural.ExpressEmpty(data.Interaction) {
		switch params.Kind.Kind {
		case Accept, Prefix:
			return LocalVerdict{Kind: LVCov}
		case Eliminate:
			return eliminateVerdict(ctx, data)
		case Simulate:
			return simulateVerdict(data)
		default:
			return LocalVerdict{Kind: LVCov}
		}
	}

	// multi-trace fully consumed but the interaction still has mandatory
	// behaviour left to express.
	switch params.Kind.Kind {
	case Accept:
		return LocalVerdict{Kind: LVOut}
	case Prefix:
		return LocalVerdict{Kind: LVTooShort}
	case Eliminate:
		v := eliminateVerdict(ctx, data)
		if v.Kind == LVCov {
			return LocalVerdict{Kind: LVTooShort}
		}

		return v
	case Simulate:
		v := simulateVerdict(data)
		if v.Kind == LVCov {
			return LocalVerdict{Kind: LVTooShort}
		}

		return v
	default:
		return LocalVerdict{Kind: LVTooShort}
	}
}

func eliminateVerdict(ctx *Context, data NodeData) LocalVerdict {
	if !data.Flags.IsAnyComponentHidden() {
		return LocalVerdict{Kind: LVCov}
	}

	if ctx.Coloc.AreSingletons() {
		return LocalVerdict{Kind: LVMultiPref}
	}

	return LocalVerdict{Kind: LVInconc, Reason: ReasonLifelineRemovalWithCoLocalizations}
}

func simulateVerdict(data NodeData) LocalVerdict {
	switch data.Flags.IsSimulated() {
	case trace.SimStateNo:
		return LocalVerdict{Kind: LVCov}
	case trace.SimStateOnlyAfterEnd:
		return LocalVerdict{Kind: LVMultiPref}
	default:
		return LocalVerdict{Kind: LVSlice}
	}
}
