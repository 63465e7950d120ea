package compiler

import (
	"fmt"

	"github.com/flowforge/flowc/pkg/logger"
)

var patternsLog = logger.New("compiler:patterns")

// detectPatterns recognizes structural shapes in a validated graph for
// observability metadata. Detection never changes generated semantics.
//
// Recognized shapes:
//   - "empty": trigger with no downstream nodes
//   - "linear-chain:N": every node has at most one outgoing and one incoming
//     edge, with N activity/agent nodes in the chain
//   - "fan-out": some node has more than one outgoing edge
//   - "fan-in": some node has more than one incoming edge
func detectPatterns(g *graphIndex, order []int) []string {
	var patterns []string

	if len(order) == 1 {
		patterns = append(patterns, "empty")
		return patterns
	}

	fanOut := false
	fanIn := false
	for _, idx := range order {
		if len(g.adj[idx]) > 1 {
			fanOut = true
		}
		if g.indegree[idx] > 1 {
			fanIn = true
		}
	}

	if fanOut {
		patterns = append(patterns, "fan-out")
	}
	if fanIn {
		patterns = append(patterns, "fan-in")
	}

	if !fanOut && !fanIn {
		activities := 0
		for _, idx := range order {
			switch g.nodes[idx].Type {
			case NodeTypeActivity, NodeTypeAgent:
				activities++
			case NodeTypeTrigger, NodeTypeSignal, NodeTypeCondition,
				NodeTypeRetry, NodeTypeChildWorkflow, NodeTypeEnd:
				// Not counted toward the chain length.
			}
		}
		patterns = append(patterns, fmt.Sprintf("linear-chain:%d", activities))
	}

	patternsLog.Printf("Detected patterns: %v", patterns)
	return patterns
}
