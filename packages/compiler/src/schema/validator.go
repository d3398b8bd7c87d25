// Package schema validates input view specifications against the embedded
// JSON schema before compilation.
package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed all:schemas
var schemaFS embed.FS

// Error is one schema validation failure, located by JSON pointer path.
type Error struct {
	Path       string `json:"path"`
	Message    string `json:"message"`
	ParseError bool   `json:"-"`
}

func (e Error) String() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Validator checks JSON documents against the embedded view-spec schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator loads and compiles the embedded schema resources.
func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()

	const schemaRoot = "schemas/"
	err := fs.WalkDir(schemaFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		data, err := schemaFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read embedded schema %s: %w", path, err)
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse embedded schema %s: %w", path, err)
		}
		id := strings.TrimPrefix(path, schemaRoot)
		if err := c.AddResource(id, doc); err != nil {
			return fmt.Errorf("add schema resource %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load embedded schemas: %w", err)
	}

	schema, err := c.Compile("view-spec.json")
	if err != nil {
		return nil, fmt.Errorf("compile root schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// ValidateFile validates the JSON document at the given path.
func (v *Validator) ValidateFile(path string) []Error {
	data, err := os.ReadFile(path)
	if err != nil {
		return []Error{{Message: fmt.Sprintf("failed to read file: %v", err), ParseError: true}}
	}
	return v.ValidateBytes(data)
}

// ValidateBytes validates a raw JSON document.
func (v *Validator) ValidateBytes(data []byte) []Error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []Error{{Message: fmt.Sprintf("failed to parse JSON: %v", err), ParseError: true}}
	}
	return v.ValidateDocument(doc)
}

// ValidateDocument validates an already-parsed JSON document.
func (v *Validator) ValidateDocument(doc any) []Error {
	err := v.schema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Error{{Message: err.Error()}}
	}
	return collectErrors(ve)
}

func collectErrors(ve *jsonschema.ValidationError) []Error {
	var errors []Error
	path := "/" + strings.Join(ve.InstanceLocation, "/")
	if len(ve.InstanceLocation) == 0 {
		path = ""
	}
	if len(ve.Causes) == 0 {
		if msg := ve.Error(); msg != "" {
			errors = append(errors, Error{Path: path, Message: msg})
		}
		return errors
	}
	for _, cause := range ve.Causes {
		errors = append(errors, collectErrors(cause)...)
	}
	return errors
}
