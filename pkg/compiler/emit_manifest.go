package compiler

import (
	"fmt"

	"github.com/flowforge/flowc/pkg/logger"
	"github.com/goccy/go-json"
)

var emitManifestLog = logger.New("compiler:emit_manifest")

// Pinned versions of the runtime libraries the generated code requires.
// Bumping these is a deliberate compatibility decision, not routine upkeep.
const (
	temporalSDKVersion = "1.9.0"
	typescriptVersion  = "5.4.5"
	tsNodeVersion      = "10.9.2"
	nodeTypesVersion   = "20.11.0"
)

// defaultManifestVersion applies when the definition carries no version.
const defaultManifestVersion = "1.0.0"

// Manifest structs marshal with a fixed field order, keeping the emitted
// JSON byte-identical across runs for the same input.

type packageScripts struct {
	Build string `json:"build"`
	Start string `json:"start"`
}

type packageDependencies struct {
	TemporalActivity string `json:"@temporalio/activity"`
	TemporalClient   string `json:"@temporalio/client"`
	TemporalWorker   string `json:"@temporalio/worker"`
	TemporalWorkflow string `json:"@temporalio/workflow"`
}

type packageDevDependencies struct {
	NodeTypes  string `json:"@types/node"`
	TsNode     string `json:"ts-node"`
	Typescript string `json:"typescript"`
}

type packageManifest struct {
	Name            string                 `json:"name"`
	Version         string                 `json:"version"`
	Private         bool                   `json:"private"`
	Description     string                 `json:"description,omitempty"`
	Scripts         packageScripts         `json:"scripts"`
	Dependencies    packageDependencies    `json:"dependencies"`
	DevDependencies packageDevDependencies `json:"devDependencies"`
}

type compilerOptions struct {
	Target           string `json:"target"`
	Module           string `json:"module"`
	ModuleResolution string `json:"moduleResolution"`
	EsModuleInterop  bool   `json:"esModuleInterop"`
	Declaration      bool   `json:"declaration"`
	SourceMap        bool   `json:"sourceMap"`
	Strict           bool   `json:"strict"`
	SkipLibCheck     bool   `json:"skipLibCheck"`
	OutDir           string `json:"outDir"`
	RootDir          string `json:"rootDir"`
}

type buildConfig struct {
	CompilerOptions compilerOptions `json:"compilerOptions"`
	Include         []string        `json:"include"`
	Exclude         []string        `json:"exclude"`
}

// emitPackageManifest generates the dependency manifest (package.json)
// declaring the runtime library versions the generated code requires.
func emitPackageManifest(ctx *emitContext) (string, error) {
	version := ctx.def.Settings.Version
	if version == "" {
		version = defaultManifestVersion
	}
	emitManifestLog.Printf("Emitting package manifest: name=%s, version=%s", ctx.def.ID, version)

	manifest := packageManifest{
		Name:        ctx.def.ID,
		Version:     version,
		Private:     true,
		Description: ctx.def.Settings.Description,
		Scripts: packageScripts{
			Build: "tsc --build",
			Start: "ts-node worker.ts",
		},
		Dependencies: packageDependencies{
			TemporalActivity: temporalSDKVersion,
			TemporalClient:   temporalSDKVersion,
			TemporalWorker:   temporalSDKVersion,
			TemporalWorkflow: temporalSDKVersion,
		},
		DevDependencies: packageDevDependencies{
			NodeTypes:  nodeTypesVersion,
			TsNode:     tsNodeVersion,
			Typescript: typescriptVersion,
		},
	}

	out, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal package manifest: %w", err)
	}
	return string(out) + "\n", nil
}

// emitBuildConfig generates the type-check configuration (tsconfig.json),
// threading through the caller-supplied strictness flag.
func emitBuildConfig(ctx *emitContext) (string, error) {
	emitManifestLog.Printf("Emitting build config: strict=%v", ctx.config.StrictMode)

	config := buildConfig{
		CompilerOptions: compilerOptions{
			Target:           "es2020",
			Module:           "commonjs",
			ModuleResolution: "node",
			EsModuleInterop:  true,
			Declaration:      false,
			SourceMap:        true,
			Strict:           ctx.config.StrictMode,
			SkipLibCheck:     true,
			OutDir:           "lib",
			RootDir:          ".",
		},
		Include: []string{"*.ts"},
		Exclude: []string{"node_modules", "lib"},
	}

	out, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal build config: %w", err)
	}
	return string(out) + "\n", nil
}
