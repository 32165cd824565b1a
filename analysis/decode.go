package analysis

import (
	"github.com/mitchellh/mapstructure"

	"github.com/hibou-lang/hibou/hiboerr"
	"github.com/hibou-lang/hibou/process"
	"github.com/hibou-lang/hibou/trace"
)

// rawParams mirrors Params' shape with mapstructure tags so a caller's
// generic map[string]interface{} config (§6's configuration table) can
// be decoded directly, the same job config.go's mapstructure.Decode
// calls do for HCL-derived maps.
type rawParams struct {
	Kind                  string  `mapstructure:"analysis_kind"`
	Strategy              string  `mapstructure:"strategy"`
	SimBefore             bool    `mapstructure:"sim_before"`
	SimLoopKind           string  `mapstructure:"sim_loop_crit"`
	SimLoopSpecificNum    uint32  `mapstructure:"sim_loop_specific_num"`
	SimActKind            string  `mapstructure:"sim_act_crit"`
	SimActSpecificNum     uint32  `mapstructure:"sim_act_specific_num"`
	PartialOrderReduction bool    `mapstructure:"partial_order_reduction"`
	LocalAnalysisSelect   *string `mapstructure:"local_analysis_select"`
	LocalAnalysisMaxDepth *uint32 `mapstructure:"local_analysis_max_depth"`
	MaxProcessDepth       *uint32 `mapstructure:"max_process_depth"`
	MaxLoopInstantiation  *uint32 `mapstructure:"max_loop_instantiation"`
	MaxNodeNumber         *uint32 `mapstructure:"max_node_number"`
}

// DecodeParams decodes a generic configuration map into Params,
// rejecting combinations spec §9 leaves without defined semantics: a
// Simulate configuration's sim_before paired with analysis_kind
// "eliminate" (Open Question 5).
func DecodeParams(raw map[string]interface{}) (Params, error) {
	var rp rawParams
	if err := mapstructure.Decode(raw, &rp); err != nil {
		return Params{}, err
	}

	kind, err := decodeKind(rp.Kind)
	if err != nil {
		return Params{}, err
	}

	if kind == Eliminate && rp.SimBefore {
		return Params{}, hiboerr.FlagInvariantError{Reason: "sim_before has no defined semantics combined with analysis_kind=eliminate"}
	}

	cfg := Config{Kind: kind, SimBefore: rp.SimBefore}
	if kind == Simulate {
		cfg.SimConfig = &trace.SimulationConfiguration{
			LoopCrit: trace.SimulationLoopCriterion{Kind: decodeSimLoopKind(rp.SimLoopKind), SpecificNum: rp.SimLoopSpecificNum},
			ActCrit:  trace.SimulationActionCriterion{Kind: decodeSimActKind(rp.SimActKind), SpecificNum: rp.SimActSpecificNum},
		}
	}

	params := Params{
		Kind:                  cfg,
		Strategy:              decodeStrategy(rp.Strategy),
		PartialOrderReduction: rp.PartialOrderReduction,
		Filters: []PreFilterSpec{{
			MaxProcessDepth:      rp.MaxProcessDepth,
			MaxLoopInstantiation: rp.MaxLoopInstantiation,
			MaxNodeNumber:        rp.MaxNodeNumber,
		}},
	}

	if rp.LocalAnalysisSelect != nil {
		params.LocalAnalysis = &LocalAnalysisParam{
			Select:   decodeLocalAnalysisSelect(*rp.LocalAnalysisSelect),
			MaxDepth: rp.LocalAnalysisMaxDepth,
		}
	}

	return params, nil
}

func decodeStrategy(s string) process.Strategy {
	switch s {
	case "dfs":
		return process.DFS
	case "hcs":
		return process.HCS
	default:
		return process.BFS
	}
}

func decodeKind(s string) (Kind, error) {
	switch s {
	case "accept":
		return Accept, nil
	case "prefix":
		return Prefix, nil
	case "eliminate":
		return Eliminate, nil
	case "simulate":
		return Simulate, nil
	default:
		return 0, hiboerr.FlagInvariantError{Reason: "unknown analysis_kind: " + s}
	}
}

func decodeLocalAnalysisSelect(s string) LocalAnalysisSelect {
	if s == "only_impacted_by_last_step" {
		return LocalAnalysisOnlyImpactedByLastStep
	}

	return LocalAnalysisAll
}

func decodeSimLoopKind(s string) trace.SimLoopKind {
	switch s {
	case "max_depth":
		return trace.SimLoopMaxDepth
	case "max_num":
		return trace.SimLoopMaxNum
	case "specific_num":
		return trace.SimLoopSpecificNum
	default:
		return trace.SimLoopNone
	}
}

func decodeSimActKind(s string) trace.SimActKind {
	if s == "specific_num" {
		return trace.SimActSpecificNum
	}

	return trace.SimActNone
}
