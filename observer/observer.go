// Package observer supplies default process.Observer implementations
// (§6's logger contract: for each state change, the parent-state id,
// the new-state id, the step kind, and the new node kind), adding the
// domain-aware textual logging neither analysis nor canon commits to on
// their own. The dag-backed graph recorder is process.GraphRecorder;
// this package does not use it.
package observer

import (
	"github.com/sirupsen/logrus"

	"github.com/hibou-lang/hibou/analysis"
	"github.com/hibou-lang/hibou/canon"
	"github.com/hibou-lang/hibou/process"
	"github.com/hibou-lang/hibou/term"
)

// AnalysisLogger is the default logrus-backed process.Observer for an
// analysis run, grounded on cli/cli_app.go's *logrus.Entry field-tagged
// call shape (github.com/sirupsen/logrus, the teacher's primary logging
// library).
type AnalysisLogger struct {
	log *logrus.Entry
}

// NewAnalysisLogger wraps log (or logrus.StandardLogger() if nil) as a
// process.Observer[analysis.NodeData, analysis.StepKind].
func NewAnalysisLogger(log *logrus.Logger) *AnalysisLogger {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &AnalysisLogger{log: log.WithField("component", "analysis")}
}

func (a *AnalysisLogger) OnFiltered(parent, child process.NodePath, step analysis.StepKind, kind process.FilterKind) {
	a.log.WithFields(logrus.Fields{
		"parent": parent,
		"child":  child,
		"filter": kind.String(),
		"step":   stepLabel(step),
	}).Debug("analysis: step filtered")
}

func (a *AnalysisLogger) OnExpanded(parent, child process.NodePath, step analysis.StepKind, newData analysis.NodeData) {
	a.log.WithFields(logrus.Fields{
		"parent":     parent,
		"child":      child,
		"step":       stepLabel(step),
		"node_kind":  newData.Interaction.Kind().String(),
		"staticDead": newData.StaticDead,
	}).Info("analysis: step accepted")
}

func stepLabel(step analysis.StepKind) string {
	if step.IsEliminate {
		return "EliminateNoLongerObserved"
	}

	return "Execute"
}

// CanonLogger is the default logrus-backed process.Observer for a
// canonization phase, mirroring AnalysisLogger's shape for
// term.Interaction/canon.Transformation nodes.
type CanonLogger struct {
	log *logrus.Entry
}

// NewCanonLogger wraps log (or logrus.StandardLogger() if nil) as a
// process.Observer[term.Interaction, canon.Transformation].
func NewCanonLogger(log *logrus.Logger) *CanonLogger {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &CanonLogger{log: log.WithField("component", "canon")}
}

func (c *CanonLogger) OnFiltered(parent, child process.NodePath, step canon.Transformation, kind process.FilterKind) {
	c.log.WithFields(logrus.Fields{
		"parent": parent,
		"child":  child,
		"filter": kind.String(),
		"rule":   step.Kind.String(),
	}).Debug("canon: step filtered")
}

func (c *CanonLogger) OnExpanded(parent, child process.NodePath, step canon.Transformation, newData term.Interaction) {
	c.log.WithFields(logrus.Fields{
		"parent":    parent,
		"child":     child,
		"rule":      step.Kind.String(),
		"node_kind": newData.Kind().String(),
	}).Info("canon: rule applied")
}

var (
	_ process.Observer[analysis.NodeData, analysis.StepKind] = (*AnalysisLogger)(nil)
	_ process.Observer[term.Interaction, canon.Transformation] = (*CanonLogger)(nil)
)
