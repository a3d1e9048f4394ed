package harfile

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// harSchema is a minimal structural schema for HAR containers: enough to
// reject captures a generation run could not make sense of, without pinning
// the full HAR 1.2 surface.
const harSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["log"],
  "properties": {
    "log": {
      "type": "object",
      "required": ["entries"],
      "properties": {
        "entries": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["request", "response"],
            "properties": {
              "request": {
                "type": "object",
                "required": ["method", "url"],
                "properties": {
                  "method": {"type": "string"},
                  "url": {"type": "string"},
                  "headers": {
                    "type": "array",
                    "items": {
                      "type": "object",
                      "required": ["name", "value"],
                      "properties": {
                        "name": {"type": "string"},
                        "value": {"type": "string"}
                      }
                    }
                  }
                }
              },
              "response": {
                "type": "object",
                "required": ["status"],
                "properties": {
                  "status": {"type": "integer"}
                }
              }
            }
          }
        }
      }
    }
  }
}`

var compiledHARSchema *jsonschema.Schema

func init() {
	var doc any
	if err := json.Unmarshal([]byte(harSchema), &doc); err != nil {
		panic(fmt.Sprintf("harfile: embedded schema is not valid JSON: %v", err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("har.json", doc); err != nil {
		panic(fmt.Sprintf("harfile: adding schema resource: %v", err))
	}

	compiled, err := compiler.Compile("har.json")
	if err != nil {
		panic(fmt.Sprintf("harfile: compiling embedded schema: %v", err))
	}
	compiledHARSchema = compiled
}

// Validate checks raw HAR bytes against the embedded container schema.
func Validate(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := compiledHARSchema.Validate(value); err != nil {
		return fmt.Errorf("not a HAR container: %w", err)
	}
	return nil
}
