package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// defaultActivityTimeout applies when an activity node omits its timeout.
const defaultActivityTimeout = "1m"

// nodeConfig is the per-node configuration resolved during the Translating
// phase: the verbatim timeout string and the translated retry descriptor.
type nodeConfig struct {
	Timeout string
	Retry   *ResolvedRetryPolicy
}

// emitContext carries the validated graph and resolved configuration into
// the emitters. It is built per compilation and never shared; emitters treat
// it as read-only, so identical input always produces identical output text.
type emitContext struct {
	def    *WorkflowDefinition
	config CompilerConfig
	graph  *graphIndex
	// order is the deterministic topological order of reachable node indices.
	order []int
	// nodeConfigs maps node id to its resolved configuration. Populated for
	// activity and agent nodes.
	nodeConfigs map[string]nodeConfig
	// proxyNames maps each activity-bearing node id to the const name holding
	// its proxy. Names are unique even when sanitization collapses distinct
	// ids onto the same text.
	proxyNames map[string]string
}

// proxyName derives the generated const name holding a node's activity proxy.
// Node ids come from the editor and may contain characters that are not valid
// in a TypeScript identifier.
func proxyName(nodeID string) string {
	var b strings.Builder
	b.WriteString("node_")
	for _, r := range nodeID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// buildProxyNames assigns every activity-bearing node a unique proxy const
// name. Sanitization can collapse distinct ids (e.g. "n.1" and "n-1") onto
// the same text; collisions get a numeric suffix derived from the node's
// position in the definition, so assignment is deterministic.
func buildProxyNames(nodes []Node) map[string]string {
	taken := make(map[string]bool, len(nodes))
	names := make(map[string]string, len(nodes))
	for i, node := range nodes {
		if node.Type != NodeTypeActivity && node.Type != NodeTypeAgent {
			continue
		}
		base := proxyName(node.ID)
		name := base
		for n := i; taken[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		taken[name] = true
		names[node.ID] = name
	}
	return names
}

// tsStringLiteral escapes s for embedding in a single-quoted string literal
// in generated code, so user-provided values cannot terminate the literal
// early or inject statements.
func tsStringLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// commentText flattens s onto a single line so user-provided text cannot
// escape a line comment and change the generated program.
func commentText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// formatCoefficient renders a backoff coefficient without a trailing ".0"
// so generated output matches hand-written runtime configuration.
func formatCoefficient(c float64) string {
	return strconv.FormatFloat(c, 'g', -1, 64)
}

// writeRetryBlock emits the retry descriptor for an activity proxy. The
// descriptor is declarative; the execution runtime interprets it.
func writeRetryBlock(b *strings.Builder, indent string, retry *ResolvedRetryPolicy) {
	b.WriteString(indent + "retry: {\n")
	b.WriteString(indent + "  maximumAttempts: " + strconv.Itoa(retry.MaxAttempts) + ",\n")
	if retry.InitialInterval != "" {
		b.WriteString(indent + "  initialInterval: '" + retry.InitialInterval + "',\n")
		if retry.MaxInterval != "" {
			b.WriteString(indent + "  maximumInterval: '" + retry.MaxInterval + "',\n")
		}
		b.WriteString(indent + "  backoffCoefficient: " + formatCoefficient(retry.BackoffCoefficient) + ",\n")
	}
	b.WriteString(indent + "},\n")
}

// distinctActivityNames returns the de-duplicated activity references across
// the reachable graph, in first-seen topological order.
func (ctx *emitContext) distinctActivityNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, idx := range ctx.order {
		node := ctx.graph.nodes[idx]
		switch node.Type {
		case NodeTypeActivity, NodeTypeAgent:
			if name := node.Data.ActivityName; name != "" && !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		case NodeTypeTrigger, NodeTypeSignal, NodeTypeCondition,
			NodeTypeRetry, NodeTypeChildWorkflow, NodeTypeEnd:
			// No activity stub required.
		}
	}
	return names
}

// taskQueue returns the configured target queue, falling back to the
// workflow id so generated code always registers against a concrete queue.
func (ctx *emitContext) taskQueue() string {
	if q := ctx.def.Settings.TaskQueue; q != "" {
		return q
	}
	return ctx.def.ID
}
