// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// rulesetSchema guards the shape of ruleset data files. Semantic checks
// (category references, keyword order) happen in Validate after decoding.
const rulesetSchema = `{
	"type": "object",
	"required": ["version", "fieldLabels", "formSources", "servicePhrases", "keywords", "categoryServices", "defaultCategory"],
	"properties": {
		"version": {"type": "string", "minLength": 1},
		"lastUpdated": {"type": "string"},
		"fieldLabels": {"type": "object", "additionalProperties": {"type": "string"}},
		"formSources": {"type": "object", "additionalProperties": {"type": "string"}},
		"servicePhrases": {"type": "object", "additionalProperties": {"type": "string"}},
		"keywords": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["keyword", "category"],
				"properties": {
					"keyword": {"type": "string", "minLength": 1},
					"category": {"type": "string", "minLength": 1}
				}
			}
		},
		"categoryServices": {
			"type": "object",
			"additionalProperties": {"type": "array", "items": {"type": "string"}}
		},
		"urgencyKeywords": {"type": "array", "items": {"type": "string"}},
		"urgentCategories": {"type": "array", "items": {"type": "string"}},
		"shortDurationCategories": {"type": "array", "items": {"type": "string"}},
		"longDurationCategories": {"type": "array", "items": {"type": "string"}},
		"defaultCategory": {"type": "string", "minLength": 1},
		"postalAreas": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["city", "state"],
				"properties": {
					"city": {"type": "string"},
					"state": {"type": "string"},
					"county": {"type": "string"}
				}
			}
		}
	}
}`

// LoadRuleset reads and validates a ruleset data file.
func LoadRuleset(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset %s: %w", path, err)
	}
	return ParseRuleset(data)
}

// ParseRuleset decodes raw JSON into a validated Ruleset.
func ParseRuleset(data []byte) (*Ruleset, error) {
	schemaLoader := gojsonschema.NewStringLoader(rulesetSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("ruleset schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, fmt.Errorf("invalid ruleset: %s", strings.Join(msgs, "; "))
	}

	var rs Ruleset
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("decode ruleset: %w", err)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Validate runs the semantic checks a schema cannot express: every
// category referenced by a rule tier must exist in categoryServices.
func (r *Ruleset) Validate() error {
	known := make(map[string]bool, len(r.CategoryServices))
	for c := range r.CategoryServices {
		known[c] = true
	}

	if !known[r.DefaultCategory] {
		return fmt.Errorf("default category %q not in categoryServices", r.DefaultCategory)
	}
	for src, cat := range r.FormSources {
		if !known[cat] {
			return fmt.Errorf("form source %q references unknown category %q", src, cat)
		}
	}
	for phrase, cat := range r.ServicePhrases {
		if !known[cat] {
			return fmt.Errorf("service phrase %q references unknown category %q", phrase, cat)
		}
	}
	for i, kw := range r.Keywords {
		if !known[kw.Category] {
			return fmt.Errorf("keyword %q (index %d) references unknown category %q", kw.Keyword, i, kw.Category)
		}
	}
	for _, cat := range r.UrgentCategories {
		if !known[cat] {
			return fmt.Errorf("urgent category %q not in categoryServices", cat)
		}
	}
	return nil
}
