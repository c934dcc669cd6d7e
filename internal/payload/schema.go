package payload

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed biz.schema.json
var bizSchemaSource []byte

const bizSchemaURL = "biz.schema.json"

var (
	bizSchemaOnce sync.Once
	bizSchema     *jsonschema.Schema
	bizSchemaErr  error
)

// Issue is a single schema violation.
type Issue struct {
	Location string
	Message  string
}

func (i Issue) String() string {
	location := i.Location
	if location == "" {
		location = "#"
	} else if !strings.HasPrefix(location, "#") {
		location = "#" + location
	}
	if i.Message == "" {
		return location
	}
	return fmt.Sprintf("%s: %s", location, i.Message)
}

// ValidateBiz checks biz against the listing payload schema. Violations are
// reported, never enforced: DecodeBiz still coerces whatever is present.
func ValidateBiz(biz map[string]any) []Issue {
	schema, err := compiledBizSchema()
	if err != nil {
		return []Issue{{Message: err.Error()}}
	}
	doc, err := jsonValue(biz)
	if err != nil {
		return []Issue{{Message: err.Error()}}
	}
	if err := schema.Validate(doc); err != nil {
		return collectIssues(err)
	}
	return nil
}

func compiledBizSchema() (*jsonschema.Schema, error) {
	bizSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(bizSchemaURL, bytes.NewReader(bizSchemaSource)); err != nil {
			bizSchemaErr = err
			return
		}
		bizSchema, bizSchemaErr = compiler.Compile(bizSchemaURL)
	})
	return bizSchema, bizSchemaErr
}

// jsonValue round-trips value through encoding/json so the validator only
// sees JSON types.
func jsonValue(value map[string]any) (any, error) {
	if value == nil {
		return map[string]any{}, nil
	}
	encoded, err := json.Marshal(Normalize(value))
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func collectIssues(err error) []Issue {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []Issue{{Message: err.Error()}}
	}
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)
	return issues
}
