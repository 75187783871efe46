// Package schema converts the AVD variable schema into JSON Schema.
//
// A few AVD keywords are folded into other JSON Schema keywords because
// of how JSON Schema is organized ("required", "primary_key",
// "allow_other_keys"). Some AVD features have no JSON Schema equivalent
// and are dropped: uniqueness of "primary_key" in lists, "dynamic_keys",
// "dynamic_valid_values", and most string "format" options.
package schema

import (
	"fmt"
	"strings"
)

// Schema is a parsed AVD schema fragment.
type Schema = map[string]any

// Converter translates AVD schema keywords into JSON Schema keywords.
type Converter struct {
	converters map[string]func(value any, parent Schema) (Schema, error)
}

// NewConverter builds a converter with the supported keyword table.
func NewConverter() *Converter {
	c := &Converter{}
	c.converters = map[string]func(any, Schema) (Schema, error){
		"display_name": c.convertDisplayName,
		"description":  c.convertDescription,
		"type":         c.convertType,
		"max":          c.convertMax,
		"min":          c.convertMin,
		"valid_values": c.convertValidValues,
		"format":       c.convertFormat,
		"max_length":   c.convertMaxLength,
		"min_length":   c.convertMinLength,
		"pattern":      c.convertPattern,
		"default":      c.convertDefault,
		"items":        c.convertItems,
		"keys":         c.convertKeys,
	}
	return c
}

// Convert translates a full AVD schema into its JSON Schema equivalent.
// Unsupported keywords are ignored.
func (c *Converter) Convert(avdSchema Schema) (Schema, error) {
	output := Schema{}
	for word, value := range avdSchema {
		converter, ok := c.converters[word]
		if !ok {
			continue
		}
		converted, err := converter(value, avdSchema)
		if err != nil {
			return nil, err
		}
		for key, val := range converted {
			output[key] = val
		}
	}
	return output, nil
}

var typeMap = map[string]string{
	"str":  "string",
	"int":  "integer",
	"bool": "boolean",
	"list": "array",
	"dict": "object",
}

func (c *Converter) convertType(value any, _ Schema) (Schema, error) {
	name, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("schema: type must be a string, got %T", value)
	}
	mapped, ok := typeMap[name]
	if !ok {
		return nil, fmt.Errorf("schema: unsupported type %q", name)
	}
	return Schema{"type": mapped}, nil
}

func (c *Converter) convertKeys(value any, parent Schema) (Schema, error) {
	keys, ok := value.(Schema)
	if !ok {
		return nil, fmt.Errorf("schema: keys must be a mapping, got %T", value)
	}
	output := Schema{}
	properties := Schema{}
	var required []string
	for key, raw := range keys {
		subschema, ok := raw.(Schema)
		if !ok {
			return nil, fmt.Errorf("schema: key %s must be a mapping, got %T", key, raw)
		}
		if label, _ := Deprecation(subschema); label == "removed" {
			// Removed keys are dropped from the generated schema.
			continue
		}
		converted, err := c.Convert(subschema)
		if err != nil {
			return nil, fmt.Errorf("schema: key %s: %w", key, err)
		}
		if _, ok := converted["title"]; !ok {
			converted["title"] = KeyToDisplayName(key)
		}
		properties[key] = converted
		if isTrue(subschema["required"]) {
			required = append(required, key)
		}
	}
	output["properties"] = properties
	if len(required) > 0 {
		output["required"] = required
	}
	allowOther := isTrue(parent["allow_other_keys"])
	output["additionalProperties"] = allowOther
	if !allowOther {
		// Keys starting with underscore are always permitted.
		output["patternProperties"] = Schema{"^_.+$": Schema{}}
	}
	return output, nil
}

func (c *Converter) convertMax(value any, _ Schema) (Schema, error) {
	return Schema{"maximum": value}, nil
}

func (c *Converter) convertMin(value any, _ Schema) (Schema, error) {
	return Schema{"minimum": value}, nil
}

func (c *Converter) convertValidValues(value any, _ Schema) (Schema, error) {
	return Schema{"enum": value}, nil
}

var formatMap = map[string]string{
	"ipv4":      "ipv4",
	"ipv4_cidr": "",
	"ipv6":      "ipv6",
	"ipv6_cidr": "",
	"ip":        "",
	"cidr":      "",
	"mac":       "",
}

func (c *Converter) convertFormat(value any, _ Schema) (Schema, error) {
	name, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("schema: format must be a string, got %T", value)
	}
	mapped, ok := formatMap[name]
	if !ok {
		return nil, fmt.Errorf("schema: unsupported format %q", name)
	}
	if mapped == "" {
		return Schema{}, nil
	}
	return Schema{"format": mapped}, nil
}

func (c *Converter) convertMaxLength(value any, parent Schema) (Schema, error) {
	switch parent["type"] {
	case "str":
		return Schema{"maxLength": value}, nil
	case "list":
		return Schema{"maxItems": value}, nil
	}
	return Schema{}, nil
}

func (c *Converter) convertMinLength(value any, parent Schema) (Schema, error) {
	switch parent["type"] {
	case "str":
		return Schema{"minLength": value}, nil
	case "list":
		return Schema{"minItems": value}, nil
	}
	return Schema{}, nil
}

func (c *Converter) convertPattern(value any, _ Schema) (Schema, error) {
	return Schema{"pattern": value}, nil
}

func (c *Converter) convertDefault(value any, _ Schema) (Schema, error) {
	return Schema{"default": value}, nil
}

func (c *Converter) convertItems(value any, parent Schema) (Schema, error) {
	itemSchema, ok := value.(Schema)
	if !ok {
		return nil, fmt.Errorf("schema: items must be a mapping, got %T", value)
	}
	converted, err := c.Convert(itemSchema)
	if err != nil {
		return nil, err
	}
	primaryKey, _ := parent["primary_key"].(string)
	if primaryKey != "" && itemSchema["type"] == "dict" {
		required, _ := converted["required"].([]string)
		if !containsString(required, primaryKey) {
			converted["required"] = append(required, primaryKey)
		}
	}
	return Schema{"items": converted}, nil
}

func (c *Converter) convertDisplayName(value any, _ Schema) (Schema, error) {
	return Schema{"title": value}, nil
}

func (c *Converter) convertDescription(value any, parent Schema) (Schema, error) {
	description, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("schema: description must be a string, got %T", value)
	}
	if _, found := parent["deprecation"]; found {
		if _, message := Deprecation(parent); message != "" {
			return Schema{
				"description": description + "\n" + message,
				"deprecated":  true,
			}, nil
		}
	}
	return Schema{"description": description}, nil
}

// Deprecation builds the deprecation label ("deprecated" or "removed")
// and the human-readable message for a schema element, or empty strings
// when the element carries no deprecation block.
func Deprecation(s Schema) (label, message string) {
	raw, found := s["deprecation"]
	if !found {
		return "", ""
	}
	deprecation, ok := raw.(Schema)
	if !ok {
		return "", ""
	}
	removed := isTrue(deprecation["removed"])
	removedVerb := "will be"
	stateVerb := "is"
	label = "deprecated"
	if removed {
		removedVerb = "was"
		stateVerb = "was"
		label = "removed"
	}

	parts := []string{fmt.Sprintf("This key %s %s.", stateVerb, label)}
	if version, ok := deprecation["remove_in_version"]; ok && version != nil {
		parts = append(parts, fmt.Sprintf("Support %s removed in AVD version %v.", removedVerb, version))
	} else if date, ok := deprecation["remove_after_date"]; ok && date != nil {
		parts = append(parts, fmt.Sprintf("Support %s removed in the first major AVD version released after %v.", removedVerb, date))
	} else if removed {
		parts = append(parts, fmt.Sprintf("Support %s removed in AVD.", removedVerb))
	}
	if newKey, ok := deprecation["new_key"]; ok && newKey != nil {
		parts = append(parts, fmt.Sprintf("Use <samp>%v</samp> instead.", newKey))
	}
	if url, ok := deprecation["url"]; ok && url != nil {
		parts = append(parts, fmt.Sprintf("See [here](%v) for details.", url))
	}
	return label, strings.Join(parts, " ")
}

func isTrue(value any) bool {
	b, ok := value.(bool)
	return ok && b
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
