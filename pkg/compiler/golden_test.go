//go:build !integration

package compiler

import (
	"testing"

	"github.com/charmbracelet/x/exp/golden"
)

// greeterDef is the smallest useful workflow: one trigger feeding one
// activity. The golden files pin the emitted artifacts byte for byte; run
// with -update to regenerate them after an intentional output change.
func greeterDef() *WorkflowDefinition {
	return &WorkflowDefinition{
		ID:   "greeter",
		Name: "Greet",
		Nodes: []Node{
			{ID: "t", Type: NodeTypeTrigger},
			{ID: "n1", Type: NodeTypeActivity, Data: NodeData{
				ActivityName: "greet",
				Timeout:      "30s",
			}},
		},
		Edges: []Edge{
			{ID: "e1", Source: "t", Target: "n1"},
		},
	}
}

func compileGreeter(t *testing.T) *GeneratedArtifacts {
	t.Helper()
	result, err := NewCompilerWithConfig(CompilerConfig{}).Compile(greeterDef())
	if err != nil {
		t.Fatalf("Compile(): %v", err)
	}
	if !result.Success {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	return result.Artifacts
}

func TestEmitWorkflowGolden(t *testing.T) {
	golden.RequireEqual(t, []byte(compileGreeter(t).WorkflowCode))
}

func TestEmitActivitiesGolden(t *testing.T) {
	golden.RequireEqual(t, []byte(compileGreeter(t).ActivitiesCode))
}

func TestEmitWorkerGolden(t *testing.T) {
	golden.RequireEqual(t, []byte(compileGreeter(t).WorkerCode))
}

func TestEmitPackageManifestGolden(t *testing.T) {
	golden.RequireEqual(t, []byte(compileGreeter(t).PackageManifest))
}

func TestEmitBuildConfigGolden(t *testing.T) {
	golden.RequireEqual(t, []byte(compileGreeter(t).BuildConfig))
}
