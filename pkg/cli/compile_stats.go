// This file collects and displays statistics about generated artifacts.

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flowforge/flowc/pkg/console"
	"github.com/flowforge/flowc/pkg/logger"
)

var compileStatsLog = logger.New("cli:compile_stats")

// ArtifactStats holds statistics about one compiled workflow's output
// directory.
type ArtifactStats struct {
	Workflow  string
	Files     int
	TotalSize int64
	CodeLines int
}

// collectArtifactStats walks one generated workflow directory and tallies its
// artifact files.
func collectArtifactStats(workflowDir string) (*ArtifactStats, error) {
	compileStatsLog.Printf("Collecting artifact stats: dir=%s", workflowDir)

	stats := &ArtifactStats{Workflow: filepath.Base(workflowDir)}

	for _, name := range artifactFileNames {
		path := filepath.Join(workflowDir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", name, err)
		}
		stats.Files++
		stats.TotalSize += info.Size()

		// Line counts cover the generated source modules, not the JSON configs.
		if strings.HasSuffix(name, ".ts") {
			content, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", name, err)
			}
			stats.CodeLines += strings.Count(string(content), "\n")
		}
	}

	compileStatsLog.Printf("Stats collected: files=%d, size=%d bytes, lines=%d",
		stats.Files, stats.TotalSize, stats.CodeLines)
	return stats, nil
}

// collectAllArtifactStats tallies every workflow directory under outputDir.
func collectAllArtifactStats(outputDir string) ([]*ArtifactStats, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var statsList []*ArtifactStats
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		stats, err := collectArtifactStats(filepath.Join(outputDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if stats.Files > 0 {
			statsList = append(statsList, stats)
		}
	}
	return statsList, nil
}

// displayStatsTable displays artifact statistics sorted by size, largest
// first.
func displayStatsTable(statsList []*ArtifactStats, jsonOutput bool) {
	compileStatsLog.Printf("Displaying stats table: workflow_count=%d", len(statsList))
	if len(statsList) == 0 {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage("No artifact statistics to display"))
		return
	}

	sort.Slice(statsList, func(i, j int) bool {
		return statsList[i].TotalSize > statsList[j].TotalSize
	})

	totalSize := int64(0)
	totalFiles := 0
	totalLines := 0
	rows := make([][]string, 0, len(statsList))
	for _, stats := range statsList {
		totalSize += stats.TotalSize
		totalFiles += stats.Files
		totalLines += stats.CodeLines
		rows = append(rows, []string{
			stats.Workflow,
			console.FormatFileSize(stats.TotalSize),
			fmt.Sprintf("%d", stats.Files),
			fmt.Sprintf("%d", stats.CodeLines),
		})
	}

	tableConfig := console.TableConfig{
		Headers:   []string{"WORKFLOW", "SIZE", "FILES", "CODE LINES"},
		Rows:      rows,
		ShowTotal: true,
		TotalRow: []string{
			"TOTAL",
			console.FormatFileSize(totalSize),
			fmt.Sprintf("%d", totalFiles),
			fmt.Sprintf("%d", totalLines),
		},
	}

	if jsonOutput {
		out, err := console.RenderTableAsJSON(tableConfig)
		if err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			return
		}
		fmt.Println(out)
		return
	}

	fmt.Fprint(os.Stderr, console.RenderTable(tableConfig))
}
