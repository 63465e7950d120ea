package compiler

import (
	"fmt"
	"strings"

	"github.com/flowforge/flowc/pkg/logger"
)

var emitWorkerLog = logger.New("compiler:emit_worker")

// emitWorker generates the runtime bootstrap (worker.ts): a small entry
// point that connects to the execution runtime and registers the generated
// workflow and activity stubs against the configured target queue.
func emitWorker(ctx *emitContext) string {
	queue := ctx.taskQueue()
	emitWorkerLog.Printf("Emitting worker bootstrap: taskQueue=%s", queue)

	var b strings.Builder

	if ctx.config.IncludeComments {
		fmt.Fprintf(&b, "// Code generated by flowc from workflow %q. DO NOT EDIT.\n", ctx.def.Name)
		fmt.Fprintf(&b, "// Hosts workflow %s on task queue %q.\n", ctx.def.Name, queue)
		b.WriteString("\n")
	}

	b.WriteString("import { NativeConnection, Worker } from '@temporalio/worker';\n")
	b.WriteString("import * as activities from './activities';\n")
	b.WriteString("\n")
	b.WriteString("async function run(): Promise<void> {\n")
	b.WriteString("  const connection = await NativeConnection.connect({\n")
	b.WriteString("    address: process.env.TEMPORAL_ADDRESS ?? 'localhost:7233',\n")
	b.WriteString("  });\n")
	b.WriteString("  try {\n")
	b.WriteString("    const worker = await Worker.create({\n")
	b.WriteString("      connection,\n")
	fmt.Fprintf(&b, "      taskQueue: '%s',\n", tsStringLiteral(queue))
	b.WriteString("      workflowsPath: require.resolve('./workflow'),\n")
	b.WriteString("      activities,\n")
	b.WriteString("    });\n")
	b.WriteString("    await worker.run();\n")
	b.WriteString("  } finally {\n")
	b.WriteString("    await connection.close();\n")
	b.WriteString("  }\n")
	b.WriteString("}\n")
	b.WriteString("\n")
	b.WriteString("run().catch((err) => {\n")
	b.WriteString("  console.error(err);\n")
	b.WriteString("  process.exit(1);\n")
	b.WriteString("});\n")

	return b.String()
}
