package canon

// phaseDefactorize (phase 1) pushes Alt choices apart: simplification,
// associativity flushing, and the conditional swap/dedup rules that
// need a flushed shape to find their redundancy, tried in the same
// order transfos_phase1 would list them.
func phaseDefactorize() []rule {
	return []rule{
		{SimplifyLeft, simplLeft},
		{SimplifyRight, simplRight},
		{LoopSimplify, loopSimpl},
		{LoopUnnest, loopUnnest},
		{SortEmissionTargets, sortEmissionTargets},
		{FlushRight, flushRight},
		{Deduplicate, deduplicate},
		{TriDeduplicateRightFlushed, triDeduplicateRightFlushed},
		{InvertAltConditional, invertAltConditional},
		{InvertParConditional, invertParConditional},
		{TriInvertAltConditionalRightFlushed, triInvertAltConditionalRightFlushed},
		{TriInvertParConditionalRightFlushed, triInvertParConditionalRightFlushed},
		{DefactorizeLeft, defactorizeLeft},
		{DefactorizeRight, defactorizeRight},
	}
}

// phaseFactorize (phase 2) pulls common prefixes/suffixes of an Alt's
// two branches back out, once phase 1 has normalized operator
// associativity and branch ordering enough for the factorize rules to
// find a shared first/last fragment.
func phaseFactorize() []rule {
	return []rule{
		{SimplifyLeft, simplLeft},
		{SimplifyRight, simplRight},
		{FactorizePrefixStrict, factorizePrefixStrict},
		{FactorizePrefixSeq, factorizePrefixSeq},
		{FactorizePrefixPar, factorizePrefixPar},
		{FactorizeSuffixStrict, factorizeSuffixStrict},
		{FactorizeSuffixSeq, factorizeSuffixSeq},
		{FactorizeSuffixPar, factorizeSuffixPar},
	}
}
