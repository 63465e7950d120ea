//go:build !integration

package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/flowforge/flowc/pkg/compiler"
	"github.com/flowforge/flowc/pkg/testutil"
)

func TestIsDefinitionFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"flow.json", true},
		{"flow.yaml", true},
		{"flow.yml", true},
		{"flow.YAML", true},
		{"flow.txt", false},
		{"flow.json.bak", false},
		{"flow", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isDefinitionFile(tt.path); got != tt.expected {
				t.Errorf("isDefinitionFile(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestWatchAndCompileDefinitions(t *testing.T) {
	t.Run("watch requires definitions directory", func(t *testing.T) {
		tempDir := testutil.TempDir(t, "watch-*")

		c := compiler.NewCompiler()
		err := watchAndCompileDefinitions(c, filepath.Join(tempDir, "missing"), tempDir, false)
		if err == nil {
			t.Error("watchAndCompileDefinitions should require the definitions directory")
		}
		if !strings.Contains(err.Error(), "definitions directory does not exist") {
			t.Errorf("Expected directory error, got: %v", err)
		}
	})

	t.Run("watch setup with valid directory", func(t *testing.T) {
		tempDir := testutil.TempDir(t, "watch-*")
		defsDir := filepath.Join(tempDir, "workflows")
		os.MkdirAll(defsDir, 0755)
		writeTestDefinition(t, defsDir, "greeter.json", "greeter")

		outputDir := filepath.Join(tempDir, "generated")
		c := compiler.NewCompiler()

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- watchAndCompileDefinitions(c, defsDir, outputDir, false)
		}()

		select {
		case watchErr := <-done:
			if watchErr != nil {
				t.Errorf("Unexpected error in watch setup: %v", watchErr)
			}
		case <-ctx.Done():
			// Expected: the watcher is running and waiting for changes. The
			// initial pass must already have compiled the existing definition.
			if _, err := os.Stat(filepath.Join(outputDir, "greeter", "workflow.ts")); err != nil {
				t.Errorf("initial watch pass should compile existing definitions: %v", err)
			}
		}
	})
}

func TestHandleDefinitionDeleted(t *testing.T) {
	t.Run("removes tracked generated directory", func(t *testing.T) {
		tempDir := testutil.TempDir(t, "watch-*")
		generatedDir := filepath.Join(tempDir, "generated", "greeter")
		os.MkdirAll(generatedDir, 0755)
		os.WriteFile(filepath.Join(generatedDir, "workflow.ts"), []byte("x"), 0644)

		tracked := map[string]string{
			"workflows/greeter.json": generatedDir,
		}

		handleDefinitionDeleted("workflows/greeter.json", tracked, true)

		if _, err := os.Stat(generatedDir); !os.IsNotExist(err) {
			t.Error("generated directory should have been removed")
		}
		if _, ok := tracked["workflows/greeter.json"]; ok {
			t.Error("deleted file should no longer be tracked")
		}
	})

	t.Run("untracked file is a no-op", func(t *testing.T) {
		handleDefinitionDeleted("workflows/unknown.json", map[string]string{}, false)
	})
}
