package analysis

import (
	"github.com/hibou-lang/hibou/process"
	"github.com/hibou-lang/hibou/structural"
	"github.com/hibou-lang/hibou/term"
	"github.com/hibou-lang/hibou/trace"
)

// Result is the outcome of one Analyze run: the joined GlobalVerdict
// plus the number of nodes the search expanded, mirroring §6's
// reported process statistics.
type Result struct {
	Verdict   GlobalVerdict
	NodeCount uint32
}

// leafObserver wraps a process.Observer, folding a GlobalVerdict out of
// every accepted node that turns out to have no further step to offer.
// Determining this requires re-running collectNextSteps on the child,
// since process.Observer.OnExpanded is not told whether the child it
// reports is a leaf.
type leafObserver struct {
	inner  process.Observer[NodeData, StepKind]
	ctx    *Context
	params Params
	result GlobalVerdict
}

func (o *leafObserver) OnFiltered(parent, child process.NodePath, step StepKind, kind process.FilterKind) {
	o.inner.OnFiltered(parent, child, step, kind)
	o.result = joinGlobal(o.result, localToGlobal(LocalVerdict{Kind: LVInconc, Reason: ReasonFilteredNodes}))
}

func (o *leafObserver) OnExpanded(parent, child process.NodePath, step StepKind, newData NodeData) {
	o.inner.OnExpanded(parent, child, step, newData)

	if len(collectNextSteps(o.ctx, o.params, newData)) == 0 {
		lv := localVerdictWhenNoChild(o.ctx, o.params, newData)
		o.result = joinGlobal(o.result, localToGlobal(lv))
	}
}

// Analyze drives the configured analysis Kind to completion over i
// against multiTrace under coloc, returning the joined GlobalVerdict
// and the number of nodes the search expanded (§6).
func Analyze(i term.Interaction, coloc *CoLocPartition, multiTrace trace.MultiTrace, params Params, observer process.Observer[NodeData, StepKind]) Result {
	if observer == nil {
		observer = process.NopObserver[NodeData, StepKind]{}
	}

	ctx := &Context{Coloc: coloc, MultiTrace: multiTrace}

	var remLoop, remAct uint32

	if params.Kind.HasSimulation() && params.Kind.SimConfig != nil {
		remLoop = structural.MaxNestedLoopDepth(i)
		remAct = params.Kind.SimConfig.ActCrit.SpecificNum
	}

	root := NodeData{
		Interaction: i,
		Flags:       trace.NewMultiTraceAnalysisFlagsInit(coloc.NumCanals(), remLoop, remAct),
	}
	root = checkStatic(ctx, params, root)

	leaf := &leafObserver{inner: observer, ctx: ctx, params: params, result: GVPass}

	steps := collectNextSteps(ctx, params, root)

	if len(steps) == 0 {
		lv := localVerdictWhenNoChild(ctx, params, root)

		return Result{Verdict: localToGlobal(lv), NodeCount: 0}
	}

	mgr := process.NewManager[NodeData, StepKind](params.Strategy, buildFilters(params.Filters), leaf)
	mgr.Seed(root, steps)

	expander := &expanderImpl{ctx: ctx, params: params}
	mgr.Run(expander)

	return Result{Verdict: leaf.result, NodeCount: mgr.NodeCount()}
}
