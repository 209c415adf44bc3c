// Package booklist owns the contract between Bookwise and the generative
// model: the JSON Schema of a book list, the prompt that embeds it and the
// strict parser that enforces it. Prompt and parser derive from the same
// reflected schema so they cannot drift apart.
package booklist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bookwise/internal/server/models"
	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "booklist.schema.json"

var (
	compileOnce sync.Once
	compiled    *jschema.Schema
	compileErr  error
)

// reflectSchema builds the array-of-Book schema. Unknown properties are
// allowed so that extra model output is ignored rather than rejected.
func reflectSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		DoNotReference:            true,
		Anonymous:                 true,
		AllowAdditionalProperties: true,
	}
	item := r.Reflect(&models.Book{})
	item.Version = ""

	return &jsonschema.Schema{
		Version: jsonschema.Version,
		Title:   "BookList",
		Type:    "array",
		Items:   item,
	}
}

// Schema returns the book-list JSON Schema, indented.
func Schema() ([]byte, error) {
	data, err := json.MarshalIndent(reflectSchema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

// FieldNames returns the Book property names in schema order.
func FieldNames() []string {
	props := reflectSchema().Items.Properties
	names := make([]string, 0, props.Len())
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

func compiledSchema() (*jschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := Schema()
		if err != nil {
			compileErr = err
			return
		}
		doc, err := jschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
