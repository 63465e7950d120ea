package compiler

import (
	"fmt"
	"strings"

	"github.com/flowforge/flowc/pkg/logger"
)

var emitWorkflowLog = logger.New("compiler:emit_workflow")

// emitWorkflow generates the entry-point module (workflow.ts).
//
// The exported function name equals WorkflowDefinition.Name exactly: the
// execution runtime resolves executions by name, so any mismatch between the
// definition and the generated symbol is a defect class this emitter exists
// to prevent. Unit-of-work calls are issued in topological order from the
// trigger, each wrapped with its resolved timeout and retry descriptor.
//
// The emitter never produces module-level mutable state; the generated
// module must be safe under many concurrent executions sharing a worker
// process. Activity calls are awaited directly so external cancellation
// propagates through the runtime unimpeded.
func emitWorkflow(ctx *emitContext) string {
	emitWorkflowLog.Printf("Emitting workflow entry point: name=%s, nodes=%d",
		ctx.def.Name, len(ctx.order))

	var b strings.Builder

	hasActivities := false
	hasChildren := false
	for _, idx := range ctx.order {
		switch ctx.graph.nodes[idx].Type {
		case NodeTypeActivity, NodeTypeAgent:
			hasActivities = true
		case NodeTypeChildWorkflow:
			hasChildren = true
		case NodeTypeTrigger, NodeTypeSignal, NodeTypeCondition, NodeTypeRetry, NodeTypeEnd:
		}
	}

	if ctx.config.IncludeComments {
		fmt.Fprintf(&b, "// Code generated by flowc from workflow %q. DO NOT EDIT.\n", ctx.def.Name)
		if desc := ctx.def.Settings.Description; desc != "" {
			fmt.Fprintf(&b, "// %s\n", commentText(desc))
		}
		if timeout := ctx.def.Settings.Timeout; timeout != "" {
			fmt.Fprintf(&b, "// Workflow execution timeout: %s\n", timeout)
		}
		b.WriteString("\n")
	}

	var imports []string
	if hasActivities {
		imports = append(imports, "proxyActivities")
	}
	if hasChildren {
		imports = append(imports, "executeChild")
	}
	if len(imports) > 0 {
		fmt.Fprintf(&b, "import { %s } from '@temporalio/workflow';\n", strings.Join(imports, ", "))
	}
	if hasActivities {
		b.WriteString("import type * as activities from './activities';\n")
	}
	if len(imports) > 0 || hasActivities {
		b.WriteString("\n")
	}

	// One proxy per activity node so each call site carries its own timeout
	// and retry descriptor.
	for _, idx := range ctx.order {
		node := ctx.graph.nodes[idx]
		switch node.Type {
		case NodeTypeActivity, NodeTypeAgent:
			cfg := ctx.nodeConfigs[node.ID]
			if ctx.config.IncludeComments {
				label := node.Data.Label
				if label == "" {
					label = node.Data.ActivityName
				}
				fmt.Fprintf(&b, "// %s (%s node %s)\n", commentText(label), node.Type, commentText(node.ID))
			}
			fmt.Fprintf(&b, "const %s = proxyActivities<typeof activities>({\n", ctx.proxyNames[node.ID])
			fmt.Fprintf(&b, "  startToCloseTimeout: '%s',\n", cfg.Timeout)
			writeRetryBlock(&b, "  ", cfg.Retry)
			b.WriteString("});\n\n")
		case NodeTypeTrigger, NodeTypeSignal, NodeTypeCondition,
			NodeTypeRetry, NodeTypeChildWorkflow, NodeTypeEnd:
			// No proxy needed.
		}
	}

	fmt.Fprintf(&b, "export async function %s(input: unknown): Promise<unknown> {\n", ctx.def.Name)
	b.WriteString("  let result: unknown = input;\n")

	for _, idx := range ctx.order {
		node := ctx.graph.nodes[idx]
		switch node.Type {
		case NodeTypeTrigger:
			// Entry point itself; nothing to call.
		case NodeTypeActivity, NodeTypeAgent:
			fmt.Fprintf(&b, "  result = await %s.%s(result);\n", ctx.proxyNames[node.ID], node.Data.ActivityName)
		case NodeTypeChildWorkflow:
			ref := node.Data.ActivityName
			if ref == "" {
				ref = node.Data.Label
			}
			fmt.Fprintf(&b, "  result = await executeChild('%s', { args: [result] });\n", tsStringLiteral(ref))
		case NodeTypeSignal:
			if ctx.config.IncludeComments {
				fmt.Fprintf(&b, "  // signal node %s: handled by the execution runtime\n", commentText(node.ID))
			}
		case NodeTypeCondition:
			if ctx.config.IncludeComments {
				fmt.Fprintf(&b, "  // condition node %s: evaluated by the execution runtime\n", commentText(node.ID))
			}
		case NodeTypeRetry:
			if ctx.config.IncludeComments {
				fmt.Fprintf(&b, "  // retry node %s: policy applied to downstream activities\n", commentText(node.ID))
			}
		case NodeTypeEnd:
			if ctx.config.IncludeComments {
				fmt.Fprintf(&b, "  // end node %s\n", commentText(node.ID))
			}
		}
	}

	b.WriteString("  return result;\n")
	b.WriteString("}\n")

	return b.String()
}
