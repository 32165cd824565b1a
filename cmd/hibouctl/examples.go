package main

import (
	"github.com/hibou-lang/hibou/analysis"
	"github.com/hibou-lang/hibou/term"
	"github.com/hibou-lang/hibou/trace"
)

// builtinExample names one of the demo interactions hibouctl ships,
// since the CLI does not parse interaction/trace files (§A.5).
type builtinExample struct {
	name        string
	interaction term.Interaction
	coloc       *analysis.CoLocPartition
	multiTrace  trace.MultiTrace
}

// builtinExamples returns the handful of example systems the demo binary
// can run analyze/canonize against.
func builtinExamples() []builtinExample {
	return []builtinExample{clientServerExample(), loopedPingExample()}
}

func findExample(name string) (builtinExample, bool) {
	for _, ex := range builtinExamples() {
		if ex.name == name {
			return ex, true
		}
	}

	return builtinExample{}, false
}

// clientServerExample: client emits "req" to server, server replies with
// "resp" — a two-step Strict sequence across two lifelines, each its own
// co-localization canal.
func clientServerExample() builtinExample {
	client := term.Lifeline("client")
	server := term.Lifeline("server")

	req := term.NewEmission(client, "req", term.Async, server)
	resp := term.NewEmission(server, "resp", term.Async, client)
	i := term.NewStrict(req, resp)

	coloc := analysis.NewCoLocPartition([]term.LifelineSet{
		term.NewLifelineSet(client),
		term.NewLifelineSet(server),
	})

	mt := trace.MultiTrace{
		{
			term.NewMultiAction(term.TraceAction{Lifeline: client, Kind: term.KindEmission, Message: "req"}),
			term.NewMultiAction(term.TraceAction{Lifeline: client, Kind: term.KindReception, Message: "resp"}),
		},
		{
			term.NewMultiAction(term.TraceAction{Lifeline: server, Kind: term.KindReception, Message: "req"}),
			term.NewMultiAction(term.TraceAction{Lifeline: server, Kind: term.KindEmission, Message: "resp"}),
		},
	}

	return builtinExample{name: "client-server", interaction: i, coloc: coloc, multiTrace: mt}
}

// loopedPingExample: a weak loop of "ping" emissions from a to b,
// exercising the Loop node and Seq's weak ordering.
func loopedPingExample() builtinExample {
	a := term.Lifeline("a")
	b := term.Lifeline("b")

	ping := term.NewEmission(a, "ping", term.Async, b)
	i := term.NewLoop(term.LoopW, ping)

	coloc := analysis.NewCoLocPartition([]term.LifelineSet{
		term.NewLifelineSet(a),
		term.NewLifelineSet(b),
	})

	mt := trace.MultiTrace{
		{
			term.NewMultiAction(term.TraceAction{Lifeline: a, Kind: term.KindEmission, Message: "ping"}),
			term.NewMultiAction(term.TraceAction{Lifeline: a, Kind: term.KindEmission, Message: "ping"}),
		},
		{
			term.NewMultiAction(term.TraceAction{Lifeline: b, Kind: term.KindReception, Message: "ping"}),
			term.NewMultiAction(term.TraceAction{Lifeline: b, Kind: term.KindReception, Message: "ping"}),
		},
	}

	return builtinExample{name: "looped-ping", interaction: i, coloc: coloc, multiTrace: mt}
}
