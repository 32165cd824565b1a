package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibou-lang/hibou/analysis"
	"github.com/hibou-lang/hibou/hiboerr"
	"github.com/hibou-lang/hibou/process"
	"github.com/hibou-lang/hibou/trace"
)

func TestDecodeParamsBasicFields(t *testing.T) {
	t.Parallel()

	params, err := analysis.DecodeParams(map[string]interface{}{
		"analysis_kind":            "prefix",
		"strategy":                 "hcs",
		"partial_order_reduction":  true,
		"max_process_depth":        uint32(10),
		"local_analysis_select":    "only_impacted_by_last_step",
		"local_analysis_max_depth": uint32(3),
	})
	require.NoError(t, err)

	assert.Equal(t, analysis.Prefix, params.Kind.Kind)
	assert.Equal(t, process.HCS, params.Strategy)
	assert.True(t, params.PartialOrderReduction)
	require.NotNil(t, params.LocalAnalysis)
	assert.Equal(t, analysis.LocalAnalysisOnlyImpactedByLastStep, params.LocalAnalysis.Select)
	require.Len(t, params.Filters, 1)
	require.NotNil(t, params.Filters[0].MaxProcessDepth)
	assert.Equal(t, uint32(10), *params.Filters[0].MaxProcessDepth)
}

func TestDecodeParamsDefaultsToBFSAndAccept(t *testing.T) {
	t.Parallel()

	params, err := analysis.DecodeParams(map[string]interface{}{})
	require.NoError(t, err)

	assert.Equal(t, analysis.Accept, params.Kind.Kind)
	assert.Equal(t, process.BFS, params.Strategy)
}

func TestDecodeParamsRejectsEliminateWithSimBefore(t *testing.T) {
	t.Parallel()

	_, err := analysis.DecodeParams(map[string]interface{}{
		"analysis_kind": "eliminate",
		"sim_before":    true,
	})
	require.Error(t, err)
	assert.IsType(t, hiboerr.FlagInvariantError{}, err)
}

func TestDecodeParamsRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := analysis.DecodeParams(map[string]interface{}{
		"analysis_kind": "bogus",
	})
	require.Error(t, err)
}

func TestDecodeParamsBuildsSimulationConfig(t *testing.T) {
	t.Parallel()

	params, err := analysis.DecodeParams(map[string]interface{}{
		"analysis_kind":         "simulate",
		"sim_loop_crit":         "specific_num",
		"sim_loop_specific_num": uint32(4),
		"sim_act_crit":          "specific_num",
		"sim_act_specific_num":  uint32(2),
	})
	require.NoError(t, err)

	require.NotNil(t, params.Kind.SimConfig)
	assert.Equal(t, trace.SimLoopSpecificNum, params.Kind.SimConfig.LoopCrit.Kind)
	assert.Equal(t, uint32(4), params.Kind.SimConfig.LoopCrit.SpecificNum)
	assert.Equal(t, trace.SimActSpecificNum, params.Kind.SimConfig.ActCrit.Kind)
	assert.Equal(t, uint32(2), params.Kind.SimConfig.ActCrit.SpecificNum)
}
