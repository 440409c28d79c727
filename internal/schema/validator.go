package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.schema.yaml
var schemaFS embed.FS

const (
	jobTemplateSchemaFile = "schemas/jobtemplate.schema.yaml"
	submissionSchemaFile  = "schemas/submission.schema.yaml"
)

// Validator handles JSON schema validation
type Validator struct {
	jobTemplateSchema *jsonschema.Schema
	submissionSchema  *jsonschema.Schema
}

// NewValidator compiles the embedded schemas
func NewValidator() (*Validator, error) {
	v := &Validator{}

	jobTemplateSchema, err := loadSchema(jobTemplateSchemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load job template schema: %w", err)
	}
	v.jobTemplateSchema = jobTemplateSchema

	submissionSchema, err := loadSchema(submissionSchemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load submission schema: %w", err)
	}
	v.submissionSchema = submissionSchema

	return v, nil
}

// ValidateJobTemplate validates a job template. doc may be a typed template;
// it is converted to its JSON form first.
func (v *Validator) ValidateJobTemplate(doc interface{}) error {
	if v.jobTemplateSchema == nil {
		return fmt.Errorf("job template schema not loaded")
	}
	data, err := toJSONValue(doc)
	if err != nil {
		return err
	}
	return v.jobTemplateSchema.Validate(data)
}

// ValidateSubmission validates a decoded submission document
func (v *Validator) ValidateSubmission(doc interface{}) error {
	if v.submissionSchema == nil {
		return fmt.Errorf("submission schema not loaded")
	}
	data, err := toJSONValue(doc)
	if err != nil {
		return err
	}
	return v.submissionSchema.Validate(data)
}

// loadSchema loads and compiles an embedded schema file (JSON or YAML)
func loadSchema(path string) (*jsonschema.Schema, error) {
	data, err := schemaFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	// Parse YAML to interface{} (supports both YAML and JSON)
	var schemaData interface{}
	if err := yaml.Unmarshal(data, &schemaData); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	// Convert to JSON for schema compiler
	jsonData, err := json.Marshal(schemaData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	uri := "embedded://" + path
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(uri, bytes.NewReader(jsonData)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return schema, nil
}

// toJSONValue round-trips a value through JSON so the validator sees plain
// maps, slices and numbers
func toJSONValue(doc interface{}) (interface{}, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document for validation: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode document for validation: %w", err)
	}
	return out, nil
}
