package compiler

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flowforge/flowc/pkg/logger"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

var loaderLog = logger.New("compiler:loader")

//go:embed workflow_definition_schema.json
var definitionSchemaJSON []byte

var (
	definitionSchemaOnce sync.Once
	definitionSchema     *jsonschema.Schema
	definitionSchemaErr  error
)

// definitionSchemaCompiled compiles the embedded definition schema once per
// process. The schema is static, so a failure here is a build defect, not a
// user error.
func definitionSchemaCompiled() (*jsonschema.Schema, error) {
	definitionSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(definitionSchemaJSON))
		if err != nil {
			definitionSchemaErr = fmt.Errorf("failed to parse embedded definition schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("workflow-definition.json", doc); err != nil {
			definitionSchemaErr = fmt.Errorf("failed to register definition schema: %w", err)
			return
		}
		definitionSchema, definitionSchemaErr = c.Compile("workflow-definition.json")
	})
	return definitionSchema, definitionSchemaErr
}

// ParseDefinition decodes and schema-validates a workflow definition from
// JSON bytes. Schema violations are user errors: the editor or a hand-edited
// file produced a document that does not describe a workflow.
func ParseDefinition(data []byte) (*WorkflowDefinition, error) {
	schema, err := definitionSchemaCompiled()
	if err != nil {
		return nil, err
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse workflow definition: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("workflow definition does not match schema: %w", err)
	}

	var def WorkflowDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to decode workflow definition: %w", err)
	}

	loaderLog.Printf("Parsed definition %q: %d nodes, %d edges", def.Name, len(def.Nodes), len(def.Edges))
	return &def, nil
}

// ParseDefinitionYAML decodes a YAML-authored workflow definition by
// converting it to JSON first, so the same schema validation applies to both
// formats.
func ParseDefinitionYAML(data []byte) (*WorkflowDefinition, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse workflow definition YAML: %w", err)
	}
	return ParseDefinition(jsonData)
}

// LoadDefinition reads a definition file, dispatching on extension: .json is
// parsed directly, .yaml/.yml is converted first.
func LoadDefinition(path string) (*WorkflowDefinition, error) {
	loaderLog.Printf("Loading definition file: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow definition: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseDefinition(data)
	case ".yaml", ".yml":
		return ParseDefinitionYAML(data)
	default:
		return nil, fmt.Errorf("unsupported definition format %q: expected .json, .yaml, or .yml", filepath.Ext(path))
	}
}
