package compiler

import (
	"fmt"
	"strings"

	"github.com/flowforge/flowc/pkg/logger"
)

var emitActivitiesLog = logger.New("compiler:emit_activities")

// emitActivities generates the unit-of-work stub module (activities.ts): one
// exported async function per distinct activity reference, de-duplicated by
// name across the whole graph. Stub order follows the first appearance of
// each reference in topological order, so output is deterministic.
func emitActivities(ctx *emitContext) string {
	names := ctx.distinctActivityNames()
	emitActivitiesLog.Printf("Emitting %d activity stub(s)", len(names))

	var b strings.Builder

	if ctx.config.IncludeComments {
		fmt.Fprintf(&b, "// Code generated by flowc from workflow %q. DO NOT EDIT.\n", ctx.def.Name)
		b.WriteString("// Implement each stub below. The exported names must stay unchanged:\n")
		b.WriteString("// the workflow entry point resolves activities by these exact symbols.\n")
		b.WriteString("\n")
	}

	for i, name := range names {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "export async function %s(input: unknown): Promise<unknown> {\n", name)
		fmt.Fprintf(&b, "  // TODO: implement activity '%s'\n", name)
		b.WriteString("  return input;\n")
		b.WriteString("}\n")
	}

	return b.String()
}
