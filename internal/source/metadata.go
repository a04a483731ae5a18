package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrMetadataInvalid = errors.New("source: metadata validation failed")

// MetaItem is one language entry in a unit's metadata. Desc carries an
// optional inline body; when absent the body is loaded from the unit's
// theory file for that language.
type MetaItem struct {
	Lang string  `json:"lang"`
	Name string  `json:"name"`
	Desc *string `json:"desc,omitempty"`
}

// Metadata mirrors the metadata.json document found in each unit directory.
type Metadata struct {
	Number     string     `json:"number"`
	Parent     *string    `json:"parent,omitempty"`
	Difficulty *int       `json:"difficulty,omitempty"`
	Data       []MetaItem `json:"data"`
}

// Item returns the metadata entry for the given language, if present.
func (m *Metadata) Item(lang string) (MetaItem, bool) {
	for _, item := range m.Data {
		if item.Lang == lang {
			return item, true
		}
	}
	return MetaItem{}, false
}

// metadataSchema constrains the raw metadata.json shape before it is decoded
// into Metadata. Ordinal fields must be dotted non-negative integers without
// leading zero games left to chance; anything else is an upstream data
// contract violation surfaced at ingestion time.
const metadataSchema = `
{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "UnitMetadata",
  "type": "object",
  "required": ["number"],
  "properties": {
    "number": {
      "type": "string",
      "pattern": "^[0-9]+(\\.[0-9]+)*$"
    },
    "parent": {
      "type": "string",
      "pattern": "^[0-9]+(\\.[0-9]+)*$"
    },
    "difficulty": {
      "type": "integer",
      "minimum": 0
    },
    "data": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["lang", "name"],
        "properties": {
          "lang": {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "desc": {"type": "string"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}
`

var compiledMetadataSchema = mustCompileMetadataSchema()

func mustCompileMetadataSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("metadata.json", bytes.NewReader([]byte(metadataSchema))); err != nil {
		panic(fmt.Sprintf("source: add metadata schema: %v", err))
	}
	schema, err := compiler.Compile("metadata.json")
	if err != nil {
		panic(fmt.Sprintf("source: compile metadata schema: %v", err))
	}
	return schema
}

// ParseMetadata validates raw metadata.json bytes against the unit schema and
// decodes them.
func ParseMetadata(data []byte) (*Metadata, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataInvalid, err)
	}
	if err := compiledMetadataSchema.Validate(payload); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMetadataInvalid, schemaIssue(err))
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataInvalid, err)
	}
	return &meta, nil
}

func schemaIssue(err error) string {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return err.Error()
	}

	leaf := validationErr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	location := strings.TrimSpace(leaf.InstanceLocation)
	if location == "" {
		location = "#"
	}
	return fmt.Sprintf("%s: %s", location, leaf.Message)
}
