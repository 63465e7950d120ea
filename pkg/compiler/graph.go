package compiler

import (
	"fmt"
	"regexp"

	"github.com/flowforge/flowc/pkg/logger"
)

var graphLog = logger.New("compiler:graph")

// componentNameRegex constrains activity references to symbols the generated
// stubs and call sites can legally export and invoke.
var componentNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// graphIndex is an adjacency-list view of the workflow graph keyed by node
// index. It is rebuilt per compilation; nothing here is shared across calls.
type graphIndex struct {
	nodes []Node
	byID  map[string]int
	// adj holds outgoing neighbor indices per node, in edge-list order.
	adj [][]int
	// adjEdges holds the edge ID that produced each adj entry, parallel to adj.
	adjEdges [][]string
	indegree []int
	// triggers holds the indices of trigger-typed nodes.
	triggers []int
}

// buildGraphIndex converts the node and edge lists into an index-based
// adjacency list. Edges with dangling endpoints are reported and excluded
// from the adjacency so later traversals operate on a well-formed graph.
func buildGraphIndex(nodes []Node, edges []Edge) (*graphIndex, []*CompileError) {
	var errs []*CompileError

	g := &graphIndex{
		nodes:    nodes,
		byID:     make(map[string]int, len(nodes)),
		adj:      make([][]int, len(nodes)),
		adjEdges: make([][]string, len(nodes)),
		indegree: make([]int, len(nodes)),
	}

	for i, node := range nodes {
		if node.ID == "" {
			errs = append(errs, NewValidationError(
				"",
				fmt.Sprintf("node at position %d has no id", i),
				"Every node must carry a unique non-empty id",
			))
			continue
		}
		if prev, exists := g.byID[node.ID]; exists {
			errs = append(errs, NewValidationError(
				node.ID,
				fmt.Sprintf("duplicate node id %q (first seen at position %d)", node.ID, prev),
				"Node ids must be unique across the workflow",
			))
			continue
		}
		g.byID[node.ID] = i

		if !node.Type.Valid() {
			errs = append(errs, NewValidationError(
				node.ID,
				fmt.Sprintf("unknown node type %q", node.Type),
				"Use one of: trigger, activity, agent, signal, condition, retry, child-workflow, end",
			))
			continue
		}
		if node.Type == NodeTypeTrigger {
			g.triggers = append(g.triggers, i)
		}
	}

	for _, edge := range edges {
		src, srcOK := g.byID[edge.Source]
		dst, dstOK := g.byID[edge.Target]
		if !srcOK {
			errs = append(errs, NewEdgeValidationError(
				edge.ID,
				fmt.Sprintf("edge references unknown source node %q", edge.Source),
				"Remove the edge or reconnect it to an existing node",
			))
		}
		if !dstOK {
			errs = append(errs, NewEdgeValidationError(
				edge.ID,
				fmt.Sprintf("edge references unknown target node %q", edge.Target),
				"Remove the edge or reconnect it to an existing node",
			))
		}
		if !srcOK || !dstOK {
			continue
		}
		g.adj[src] = append(g.adj[src], dst)
		g.adjEdges[src] = append(g.adjEdges[src], edge.ID)
		g.indegree[dst]++
	}

	return g, errs
}

// ValidateGraph runs every structural check over the node and edge lists and
// returns the full list of independent violations. The checks never stop at
// the first error; an empty result means the graph is structurally sound.
func ValidateGraph(nodes []Node, edges []Edge) []*CompileError {
	graphLog.Printf("Validating graph: %d nodes, %d edges", len(nodes), len(edges))

	g, errs := buildGraphIndex(nodes, edges)

	errs = append(errs, g.validateTrigger()...)
	errs = append(errs, g.validateComponentReferences()...)
	errs = append(errs, g.validateConnectivity()...)
	errs = append(errs, g.validateAcyclic()...)

	graphLog.Printf("Graph validation finished: %d error(s)", len(errs))
	return errs
}

// validateTrigger checks that exactly one trigger node exists and that it has
// no incoming edges.
func (g *graphIndex) validateTrigger() []*CompileError {
	var errs []*CompileError

	switch len(g.triggers) {
	case 0:
		errs = append(errs, NewValidationError(
			"",
			"workflow has no trigger node",
			"Add exactly one trigger node as the workflow entry point",
		))
	case 1:
		trigger := g.triggers[0]
		if g.indegree[trigger] > 0 {
			errs = append(errs, NewValidationError(
				g.nodes[trigger].ID,
				"trigger node must not have incoming edges",
				"Remove edges pointing at the trigger node",
			))
		}
	default:
		for _, idx := range g.triggers[1:] {
			errs = append(errs, NewValidationError(
				g.nodes[idx].ID,
				fmt.Sprintf("multiple trigger nodes: %q is extra (first trigger is %q)",
					g.nodes[idx].ID, g.nodes[g.triggers[0]].ID),
				"A workflow must contain exactly one trigger node",
			))
		}
	}

	return errs
}

// validateComponentReferences checks that every node kind carrying an
// activity/component reference actually has one. The switch is exhaustive
// over the closed node-type vocabulary.
func (g *graphIndex) validateComponentReferences() []*CompileError {
	var errs []*CompileError

	// Iterate the node list, not the id map, so error order is stable.
	for i, node := range g.nodes {
		if idx, ok := g.byID[node.ID]; !ok || idx != i {
			continue // missing or duplicate id, already reported
		}
		id := node.ID
		switch node.Type {
		case NodeTypeActivity, NodeTypeAgent:
			if node.Data.ActivityName == "" {
				errs = append(errs, NewValidationError(
					id,
					fmt.Sprintf("%s node has no activity reference", node.Type),
					"Select the component this node should invoke",
				))
			} else if !componentNameRegex.MatchString(node.Data.ActivityName) {
				errs = append(errs, NewValidationError(
					id,
					fmt.Sprintf("unknown component reference %q: not a valid activity symbol", node.Data.ActivityName),
					"Component references must be legal identifiers in the generated code",
				))
			}
		case NodeTypeChildWorkflow:
			if node.Data.ActivityName == "" && node.Data.Label == "" {
				errs = append(errs, NewValidationError(
					id,
					"child-workflow node has no workflow reference",
					"Select the child workflow this node should start",
				))
			}
		case NodeTypeTrigger, NodeTypeSignal, NodeTypeCondition, NodeTypeRetry, NodeTypeEnd:
			// No component reference required.
		}
	}

	return errs
}

// validateConnectivity runs a forward BFS from the trigger and reports every
// node the traversal cannot reach, each attributed to its own id. Skipped
// when the trigger is missing or duplicated, since there is no single
// starting point to traverse from.
func (g *graphIndex) validateConnectivity() []*CompileError {
	if len(g.triggers) != 1 {
		return nil
	}

	reached := make([]bool, len(g.nodes))
	queue := []int{g.triggers[0]}
	reached[g.triggers[0]] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range g.adj[current] {
			if !reached[next] {
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}

	var errs []*CompileError
	for i, node := range g.nodes {
		if node.ID == "" {
			continue // already reported as missing id
		}
		if idx, ok := g.byID[node.ID]; !ok || idx != i {
			continue // duplicate entry, already reported
		}
		if !reached[i] {
			errs = append(errs, NewValidationError(
				node.ID,
				fmt.Sprintf("node %q is not reachable from the trigger", node.ID),
				"Connect the node to the workflow or remove it",
			))
		}
	}
	return errs
}

// Three-state visit markers for cycle detection.
const (
	colorUnvisited = iota
	colorInProgress
	colorDone
)

// validateAcyclic detects directed cycles with an explicit iterative DFS and
// a three-state visit marker array, reporting each cycle with the edge that
// closes it. The iterative stack avoids recursion-depth limits on large
// graphs.
func (g *graphIndex) validateAcyclic() []*CompileError {
	var errs []*CompileError

	color := make([]int, len(g.nodes))

	// frame tracks a node and the next outgoing neighbor to explore.
	type frame struct {
		node int
		next int
	}

	for start := range g.nodes {
		if color[start] != colorUnvisited {
			continue
		}

		stack := []frame{{node: start}}
		color[start] = colorInProgress

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.next < len(g.adj[top.node]) {
				neighbor := g.adj[top.node][top.next]
				edgeID := g.adjEdges[top.node][top.next]
				top.next++

				switch color[neighbor] {
				case colorInProgress:
					// Back-edge: this edge closes a cycle.
					graphLog.Printf("Cycle detected: edge %s closes cycle at node %s",
						edgeID, g.nodes[neighbor].ID)
					errs = append(errs, &CompileError{
						Kind:   ErrorKindValidation,
						NodeID: g.nodes[neighbor].ID,
						EdgeID: edgeID,
						Message: fmt.Sprintf("cycle detected: edge %q from %q back to %q",
							edgeID, g.nodes[top.node].ID, g.nodes[neighbor].ID),
						Suggestion: "Workflow graphs must be acyclic; remove the edge that closes the loop",
					})
				case colorUnvisited:
					color[neighbor] = colorInProgress
					stack = append(stack, frame{node: neighbor})
				case colorDone:
					// Forward or cross edge, not a cycle.
				}
				continue
			}

			color[top.node] = colorDone
			stack = stack[:len(stack)-1]
		}
	}

	return errs
}

// topologicalOrder returns the indices of nodes reachable from the trigger in
// a deterministic topological order: among ready nodes, the one earliest in
// the definition's node list comes first. Must only be called on a validated
// graph (single trigger, acyclic).
func (g *graphIndex) topologicalOrder() []int {
	reached := make([]bool, len(g.nodes))
	pending := make([]int, len(g.nodes))

	// Restrict in-degrees to the reachable subgraph.
	queue := []int{g.triggers[0]}
	reached[g.triggers[0]] = true
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range g.adj[current] {
			pending[next]++
			if !reached[next] {
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}

	order := make([]int, 0, len(g.nodes))
	ready := []int{g.triggers[0]}

	for len(ready) > 0 {
		// Pick the ready node with the smallest index for determinism.
		best := 0
		for i := 1; i < len(ready); i++ {
			if ready[i] < ready[best] {
				best = i
			}
		}
		current := ready[best]
		ready = append(ready[:best], ready[best+1:]...)
		order = append(order, current)

		for _, next := range g.adj[current] {
			pending[next]--
			if pending[next] == 0 {
				ready = append(ready, next)
			}
		}
	}

	return order
}
