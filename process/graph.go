package process

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/terraform/dag"
	"github.com/sirupsen/logrus"
)

// graphVertex wraps one recorded search node so dag can hash and
// compare it by identity.
type graphVertex struct {
	id   uuid.UUID
	path NodePath
}

func (v *graphVertex) Hashcode() interface{} { return v.id }

// basicEdge mirrors the teacher's config.basicEdge: a minimal
// dag.Edge between two recorded vertices.
type basicEdge struct {
	S, T dag.Vertex
}

func (e *basicEdge) Hashcode() interface{} { return fmt.Sprintf("%v-%v", e.S, e.T) }
func (e *basicEdge) Source() dag.Vertex    { return e.S }
func (e *basicEdge) Target() dag.Vertex    { return e.T }

// GraphRecorder materializes the search tree walked by a Manager into a
// dag.AcyclicGraph, so callers can replay or render it instead of only
// observing a callback stream. It implements Observer.
type GraphRecorder[D any, S any] struct {
	graph    dag.AcyclicGraph
	vertices map[string]*graphVertex
	log      *logrus.Logger
}

// NewGraphRecorder builds an empty recorder. If log is nil, a default
// logrus.Logger is used for the filtered/expanded debug trail.
func NewGraphRecorder[D any, S any](log *logrus.Logger) *GraphRecorder[D, S] {
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := &GraphRecorder[D, S]{vertices: make(map[string]*graphVertex), log: log}
	root := &graphVertex{id: uuid.New(), path: NodePath{}}
	r.vertices[pathKey(NodePath{})] = root
	r.graph.Add(root)

	return r
}

func pathKey(p NodePath) string { return fmt.Sprintf("%v", []uint32(p)) }

func (r *GraphRecorder[D, S]) vertexFor(p NodePath) *graphVertex {
	key := pathKey(p)

	if v, ok := r.vertices[key]; ok {
		return v
	}

	v := &graphVertex{id: uuid.New(), path: p.Clone()}
	r.vertices[key] = v
	r.graph.Add(v)

	return v
}

// OnExpanded records an accepted step as an edge from parent to child.
func (r *GraphRecorder[D, S]) OnExpanded(parent, child NodePath, step S, newData D) {
	from := r.vertexFor(parent)
	to := r.vertexFor(child)
	r.graph.Connect(&basicEdge{S: from, T: to})
	r.log.WithFields(logrus.Fields{"parent": parent, "child": child}).Debug("process: expanded step")
}

// OnFiltered records that a step was rejected without creating a node.
func (r *GraphRecorder[D, S]) OnFiltered(parent, child NodePath, step S, kind FilterKind) {
	r.log.WithFields(logrus.Fields{"parent": parent, "rejected": child, "filter": kind.String()}).Debug("process: filtered step")
}

// Graph exposes the recorded search tree.
func (r *GraphRecorder[D, S]) Graph() *dag.AcyclicGraph { return &r.graph }

// WalkBreadthFirst walks the recorded graph from its root in breadth-
// first order, following the teacher's walkBreadthFirst shape: a FIFO
// queue of not-yet-visited vertices, stopping a branch's descent when cb
// returns false.
func (r *GraphRecorder[D, S]) WalkBreadthFirst(cb func(path NodePath) (shouldContinue bool)) {
	root := r.vertices[pathKey(NodePath{})]

	visited := map[dag.Vertex]struct{}{}
	queue := []dag.Vertex{root}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		if _, seen := visited[v]; seen {
			continue
		}

		visited[v] = struct{}{}
		gv := v.(*graphVertex)

		if cb(gv.path) {
			for _, child := range r.graph.DownEdges(v).List() {
				queue = append(queue, child)
			}
		}
	}
}
