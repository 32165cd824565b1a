package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibou-lang/hibou/analysis"
	"github.com/hibou-lang/hibou/term"
	"github.com/hibou-lang/hibou/trace"
)

// clientServerInteraction builds a two-message Strict exchange: client
// asynchronously emits "req" to server, server asynchronously replies
// with "resp", one co-localization canal per lifeline.
func clientServerInteraction() (term.Interaction, *analysis.CoLocPartition) {
	client := term.Lifeline("client")
	server := term.Lifeline("server")

	req := term.NewEmission(client, "req", term.Async, server)
	resp := term.NewEmission(server, "resp", term.Async, client)
	i := term.NewStrict(req, resp)

	coloc := analysis.NewCoLocPartition([]term.LifelineSet{
		term.NewLifelineSet(client),
		term.NewLifelineSet(server),
	})

	return i, coloc
}

func matchingMultiTrace() trace.MultiTrace {
	client := term.Lifeline("client")
	server := term.Lifeline("server")

	return trace.MultiTrace{
		{
			term.NewMultiAction(term.TraceAction{Lifeline: client, Kind: term.KindEmission, Message: "req"}),
			term.NewMultiAction(term.TraceAction{Lifeline: client, Kind: term.KindReception, Message: "resp"}),
		},
		{
			term.NewMultiAction(term.TraceAction{Lifeline: server, Kind: term.KindReception, Message: "req"}),
			term.NewMultiAction(term.TraceAction{Lifeline: server, Kind: term.KindEmission, Message: "resp"}),
		},
	}
}

func TestAnalyzeAcceptsAMatchingMultiTrace(t *testing.T) {
	t.Parallel()

	i, coloc := clientServerInteraction()
	params, err := analysis.DecodeParams(map[string]interface{}{"analysis_kind": "accept"})
	require.NoError(t, err)

	result := analysis.Analyze(i, coloc, matchingMultiTrace(), params, nil)

	assert.Equal(t, analysis.GVPass, result.Verdict)
}

// TestAnalyzePrefixAcceptsAnEmptyObservationOfAnOptionalLoop checks that
// observing zero iterations of a weak loop (which can always legally
// stop after none) is a valid prefix, since a Loop node always
// structural.ExpressEmpty.
func TestAnalyzePrefixAcceptsAnEmptyObservationOfAnOptionalLoop(t *testing.T) {
	t.Parallel()

	a := term.Lifeline("a")
	b := term.Lifeline("b")

	ping := term.NewEmission(a, "ping", term.Async, b)
	i := term.NewLoop(term.LoopW, ping)

	coloc := analysis.NewCoLocPartition([]term.LifelineSet{
		term.NewLifelineSet(a),
		term.NewLifelineSet(b),
	})

	empty := trace.MultiTrace{{}, {}}

	params, err := analysis.DecodeParams(map[string]interface{}{"analysis_kind": "prefix"})
	require.NoError(t, err)

	result := analysis.Analyze(i, coloc, empty, params, nil)

	assert.Equal(t, analysis.GVPass, result.Verdict)
}

// TestAnalyzePrefixFailsWhenMandatoryBehaviourIsCutOffEarly checks that
// a trace exhausted before a Strict's mandatory second message is
// observed resolves to Fail (LVTooShort), not a weaker verdict — a
// truncated observation is only a valid Prefix if it stops at a point
// structural.ExpressEmpty actually allows.
func TestAnalyzePrefixFailsWhenMandatoryBehaviourIsCutOffEarly(t *testing.T) {
	t.Parallel()

	i, coloc := clientServerInteraction()
	client := term.Lifeline("client")
	server := term.Lifeline("server")

	truncated := trace.MultiTrace{
		{term.NewMultiAction(term.TraceAction{Lifeline: client, Kind: term.KindEmission, Message: "req"})},
		{term.NewMultiAction(term.TraceAction{Lifeline: server, Kind: term.KindReception, Message: "req"})},
	}

	params, err := analysis.DecodeParams(map[string]interface{}{"analysis_kind": "prefix"})
	require.NoError(t, err)

	result := analysis.Analyze(i, coloc, truncated, params, nil)

	assert.Equal(t, analysis.GVFail, result.Verdict)
}

func TestAnalyzeRejectsAMismatchedMultiTrace(t *testing.T) {
	t.Parallel()

	i, coloc := clientServerInteraction()
	client := term.Lifeline("client")
	server := term.Lifeline("server")

	mismatched := trace.MultiTrace{
		{term.NewMultiAction(term.TraceAction{Lifeline: client, Kind: term.KindEmission, Message: "wrong"})},
		{term.NewMultiAction(term.TraceAction{Lifeline: server, Kind: term.KindReception, Message: "req"})},
	}

	params, err := analysis.DecodeParams(map[string]interface{}{"analysis_kind": "accept"})
	require.NoError(t, err)

	result := analysis.Analyze(i, coloc, mismatched, params, nil)

	assert.Equal(t, analysis.GVFail, result.Verdict)
}
