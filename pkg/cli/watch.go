// This file implements watch mode: recompiling workflow definitions as the
// files change on disk.

package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/flowforge/flowc/pkg/compiler"
	"github.com/flowforge/flowc/pkg/console"
	"github.com/flowforge/flowc/pkg/logger"
	"github.com/fsnotify/fsnotify"
)

var watchLog = logger.New("cli:watch")

// debounceDelay batches rapid editor writes into one recompilation.
const debounceDelay = 500 * time.Millisecond

// isDefinitionFile reports whether path has a definition extension.
func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// watchAndCompileDefinitions watches definitionsDir and recompiles definition
// files as they change. Deleting a definition removes its generated
// directory. Blocks until interrupted.
func watchAndCompileDefinitions(c *compiler.Compiler, definitionsDir, outputDir string, verbose bool) error {
	watchLog.Printf("Starting watch mode: dir=%s, output=%s", definitionsDir, outputDir)

	info, err := os.Stat(definitionsDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("definitions directory does not exist: %s", definitionsDir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(definitionsDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", definitionsDir, err)
	}

	// generatedDirs remembers which output directory each definition file
	// produced, so deletions can clean up even though the file is gone.
	generatedDirs := make(map[string]string)
	claims := &workflowIDClaims{}

	compileAndTrack := func(files []string) {
		for _, file := range files {
			id, err := compileSingleDefinition(c, file, outputDir, claims, verbose)
			if err != nil {
				fmt.Fprint(os.Stderr, formatDefinitionLoadError(file, err))
				continue
			}
			generatedDirs[file] = filepath.Join(outputDir, id)
			if !verbose {
				fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
					fmt.Sprintf("Compiled %s", console.ToRelativePath(file))))
			}
		}
	}

	// Initial full pass so the generated tree starts in sync.
	initial, err := findDefinitionFiles(definitionsDir)
	if err != nil {
		return err
	}
	compileAndTrack(initial)
	fmt.Fprintln(os.Stderr, console.FormatInfoMessage(
		fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", definitionsDir)))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	pending := make(map[string]bool)
	debounce := time.NewTimer(debounceDelay)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isDefinitionFile(event.Name) {
				continue
			}
			watchLog.Printf("File event: %s %s", event.Op, event.Name)

			switch {
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				claims.release(event.Name)
				handleDefinitionDeleted(event.Name, generatedDirs, verbose)
			case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
				pending[event.Name] = true
				debounce.Reset(debounceDelay)
			}

		case <-debounce.C:
			files := make([]string, 0, len(pending))
			for file := range pending {
				if _, err := os.Stat(file); err == nil {
					files = append(files, file)
				}
			}
			pending = make(map[string]bool)
			compileAndTrack(files)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
				fmt.Sprintf("Watch error: %v", err)))

		case <-interrupt:
			watchLog.Print("Watch mode interrupted")
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Stopping watch mode"))
			return nil
		}
	}
}

// handleDefinitionDeleted removes the generated directory of a deleted
// definition file, when one is known.
func handleDefinitionDeleted(file string, generatedDirs map[string]string, verbose bool) {
	dir, ok := generatedDirs[file]
	if !ok {
		watchLog.Printf("No generated directory tracked for deleted file: %s", file)
		return
	}
	delete(generatedDirs, file)

	if err := os.RemoveAll(dir); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("Failed to remove %s: %v", console.ToRelativePath(dir), err)))
		return
	}
	if verbose {
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(
			fmt.Sprintf("Removed generated artifacts: %s", console.ToRelativePath(dir))))
	}
}
