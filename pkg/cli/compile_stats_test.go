//go:build !integration

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flowforge/flowc/pkg/compiler"
	"github.com/flowforge/flowc/pkg/testutil"
)

func TestCollectArtifactStats(t *testing.T) {
	tempDir := testutil.TempDir(t, "stats-*")
	defPath := writeTestDefinition(t, tempDir, "greeter.json", "greeter")
	outputDir := filepath.Join(tempDir, "generated")

	c := compiler.NewCompiler()
	if _, err := compileSingleDefinition(c, defPath, outputDir, nil, false); err != nil {
		t.Fatalf("compileSingleDefinition failed: %v", err)
	}

	stats, err := collectArtifactStats(filepath.Join(outputDir, "greeter"))
	if err != nil {
		t.Fatalf("collectArtifactStats failed: %v", err)
	}

	if stats.Workflow != "greeter" {
		t.Errorf("Workflow = %q, want greeter", stats.Workflow)
	}
	if stats.Files != len(artifactFileNames) {
		t.Errorf("Files = %d, want %d", stats.Files, len(artifactFileNames))
	}
	if stats.TotalSize == 0 {
		t.Error("expected a non-zero total size")
	}
	if stats.CodeLines == 0 {
		t.Error("expected non-zero code lines for the generated .ts files")
	}
}

func TestCollectAllArtifactStats(t *testing.T) {
	tempDir := testutil.TempDir(t, "stats-*")
	outputDir := filepath.Join(tempDir, "generated")

	c := compiler.NewCompiler()
	for _, id := range []string{"alpha", "beta"} {
		defPath := writeTestDefinition(t, tempDir, id+".json", id)
		if _, err := compileSingleDefinition(c, defPath, outputDir, nil, false); err != nil {
			t.Fatalf("compileSingleDefinition(%s) failed: %v", id, err)
		}
	}

	// A stray file at the top level must not produce an entry.
	if err := os.WriteFile(filepath.Join(outputDir, "README.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	statsList, err := collectAllArtifactStats(outputDir)
	if err != nil {
		t.Fatalf("collectAllArtifactStats failed: %v", err)
	}
	if len(statsList) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(statsList))
	}

	names := map[string]bool{}
	for _, stats := range statsList {
		names[stats.Workflow] = true
	}
	if !names["alpha"] || !names["beta"] {
		t.Errorf("unexpected workflows in stats: %v", names)
	}
}
