//go:build !integration

package compiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flowforge/flowc/pkg/testutil"
)

const validDefinitionJSON = `{
  "id": "order-fulfillment",
  "name": "OrderFulfillment",
  "nodes": [
    {"id": "t", "type": "trigger"},
    {"id": "n1", "type": "activity", "data": {"activityName": "reserveStock", "timeout": "30s"}},
    {"id": "n2", "type": "activity", "data": {
      "activityName": "chargeCard",
      "retry": {"strategy": "fail-after-x", "maxAttempts": 3}
    }}
  ],
  "edges": [
    {"id": "e1", "source": "t", "target": "n1"},
    {"id": "e2", "source": "n1", "target": "n2"}
  ],
  "settings": {"taskQueue": "orders"}
}`

func TestParseDefinition(t *testing.T) {
	def, err := ParseDefinition([]byte(validDefinitionJSON))
	if err != nil {
		t.Fatalf("ParseDefinition() unexpected error: %v", err)
	}

	if def.ID != "order-fulfillment" || def.Name != "OrderFulfillment" {
		t.Errorf("identity = (%q, %q), want (order-fulfillment, OrderFulfillment)", def.ID, def.Name)
	}
	if len(def.Nodes) != 3 || len(def.Edges) != 2 {
		t.Fatalf("shape = (%d nodes, %d edges), want (3, 2)", len(def.Nodes), len(def.Edges))
	}
	if def.Nodes[2].Data.Retry == nil || def.Nodes[2].Data.Retry.Strategy != RetryFailAfterX {
		t.Errorf("retry policy not decoded: %+v", def.Nodes[2].Data.Retry)
	}
	if def.Settings.TaskQueue != "orders" {
		t.Errorf("taskQueue = %q, want orders", def.Settings.TaskQueue)
	}
}

func TestParseDefinitionSchemaViolations(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "not json at all",
			input: "nodes: everywhere",
		},
		{
			name:  "missing required fields",
			input: `{"id": "x"}`,
		},
		{
			name: "unknown node type",
			input: `{"id": "x", "name": "X",
				"nodes": [{"id": "n", "type": "teleport"}], "edges": []}`,
		},
		{
			name: "unknown retry strategy",
			input: `{"id": "x", "name": "X",
				"nodes": [{"id": "n", "type": "activity",
					"data": {"retry": {"strategy": "sometimes"}}}],
				"edges": []}`,
		},
		{
			name: "unexpected top-level field",
			input: `{"id": "x", "name": "X", "nodes": [], "edges": [],
				"steps": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParseDefinition([]byte(tt.input))
			if err == nil {
				t.Fatalf("expected error, got definition: %+v", def)
			}
		})
	}
}

func TestParseDefinitionYAML(t *testing.T) {
	input := `
id: greeter
name: Greet
nodes:
  - id: t
    type: trigger
  - id: n1
    type: activity
    data:
      activityName: greet
edges:
  - id: e1
    source: t
    target: n1
`
	def, err := ParseDefinitionYAML([]byte(input))
	if err != nil {
		t.Fatalf("ParseDefinitionYAML() unexpected error: %v", err)
	}
	if def.ID != "greeter" || len(def.Nodes) != 2 {
		t.Errorf("unexpected definition: %+v", def)
	}
}

func TestLoadDefinition(t *testing.T) {
	dir := testutil.TempDir(t, "loader-test")

	jsonPath := filepath.Join(dir, "order.json")
	if err := os.WriteFile(jsonPath, []byte(validDefinitionJSON), 0644); err != nil {
		t.Fatal(err)
	}

	def, err := LoadDefinition(jsonPath)
	if err != nil {
		t.Fatalf("LoadDefinition(json) unexpected error: %v", err)
	}
	if def.ID != "order-fulfillment" {
		t.Errorf("id = %q, want order-fulfillment", def.ID)
	}

	// Unsupported extensions are rejected up front.
	tomlPath := filepath.Join(dir, "order.toml")
	if err := os.WriteFile(tomlPath, []byte("id = \"x\""), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDefinition(tomlPath); err == nil || !strings.Contains(err.Error(), "unsupported definition format") {
		t.Errorf("expected unsupported format error, got: %v", err)
	}

	if _, err := LoadDefinition(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestLoadedDefinitionCompiles(t *testing.T) {
	def, err := ParseDefinition([]byte(validDefinitionJSON))
	if err != nil {
		t.Fatalf("ParseDefinition(): %v", err)
	}

	result, err := NewCompiler().Compile(def)
	if err != nil {
		t.Fatalf("Compile(): %v", err)
	}
	if !result.Success {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if !strings.Contains(result.Artifacts.WorkflowCode, "export async function OrderFulfillment(") {
		t.Error("entry point missing from generated workflow code")
	}
}
