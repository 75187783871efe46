package action

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noredistribution/avd/internal/tags"
)

// Built-in action identifiers.
const (
	IDConfigure = "configure"
	IDDocument  = "document"
)

// Spec declares one orchestrated action: which tags trigger it, which tags
// exclude it, and the parameters handed through to the generator when it
// runs.
//
// TriggerTags and SkipTags are intentionally independent fields. Triggers
// may carry the "all" sentinel; skip sets must not, and Validate enforces
// that at load time.
type Spec struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name,omitempty" yaml:"name,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	TriggerTags []string        `json:"trigger_tags" yaml:"trigger_tags"`
	SkipTags    []string        `json:"skip_tags,omitempty" yaml:"skip_tags,omitempty"`
	Docs        bool            `json:"docs,omitempty" yaml:"docs,omitempty"`
	Generator   GeneratorParams `json:"generator,omitempty" yaml:"generator,omitempty"`
}

// GeneratorParams carries the pass-through inputs for the external
// generator. The orchestrator does not compute or validate them beyond
// trimming; they belong to the collaborator.
type GeneratorParams struct {
	StructuredConfigDir string `json:"structured_config_dir,omitempty" yaml:"structured_config_dir,omitempty"`
	OutputDir           string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	ConversionMode      string `json:"conversion_mode,omitempty" yaml:"conversion_mode,omitempty"`
	ValidationMode      string `json:"validation_mode,omitempty" yaml:"validation_mode,omitempty"`
	CProfileFile        string `json:"cprofile_file,omitempty" yaml:"cprofile_file,omitempty"`
}

// Normalized returns a trimmed copy of the spec with duplicate tags
// collapsed and empty tokens dropped.
func (s Spec) Normalized() Spec {
	clone := Spec{
		ID:          strings.TrimSpace(s.ID),
		Name:        strings.TrimSpace(s.Name),
		Description: strings.TrimSpace(s.Description),
		TriggerTags: normalizeTags(s.TriggerTags),
		SkipTags:    normalizeTags(s.SkipTags),
		Docs:        s.Docs,
		Generator:   s.Generator.normalized(),
	}
	return clone
}

func (p GeneratorParams) normalized() GeneratorParams {
	return GeneratorParams{
		StructuredConfigDir: strings.TrimSpace(p.StructuredConfigDir),
		OutputDir:           strings.TrimSpace(p.OutputDir),
		ConversionMode:      strings.TrimSpace(p.ConversionMode),
		ValidationMode:      strings.TrimSpace(p.ValidationMode),
		CProfileFile:        strings.TrimSpace(p.CProfileFile),
	}
}

// Validate ensures the spec is well-formed. An empty trigger set is a
// definition-time error: an action that can never be requested must be
// rejected at load, not left to silently never run. The "all" sentinel is
// trigger-only and is rejected inside skip sets.
func (s Spec) Validate() error {
	normalized := s.Normalized()
	if normalized.ID == "" {
		return fmt.Errorf("action: id is required")
	}
	if len(normalized.TriggerTags) == 0 {
		return fmt.Errorf("action %s: at least one trigger tag is required", normalized.ID)
	}
	for _, tag := range normalized.SkipTags {
		if tag == tags.All {
			return fmt.Errorf("action %s: %q is not a valid skip tag", normalized.ID, tags.All)
		}
	}
	return nil
}

// Trigger returns the trigger tags as a set.
func (s Spec) Trigger() tags.Set {
	return tags.FromList(s.TriggerTags)
}

// Skip returns the skip tags as a set. The set may be empty, in which
// case the action is never skippable.
func (s Spec) Skip() tags.Set {
	return tags.FromList(s.SkipTags)
}

// Catalog is an ordered collection of action specs keyed by ID.
type Catalog struct {
	specs   map[string]Spec
	ordered []string
}

// NewCatalog validates and collects the provided specs, preserving
// declaration order. Duplicate IDs are rejected.
func NewCatalog(specs ...Spec) (*Catalog, error) {
	catalog := &Catalog{specs: make(map[string]Spec, len(specs))}
	for idx, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("action[%d]: %w", idx, err)
		}
		normalized := spec.Normalized()
		if _, exists := catalog.specs[normalized.ID]; exists {
			return nil, fmt.Errorf("action: duplicate id %s", normalized.ID)
		}
		catalog.specs[normalized.ID] = normalized
		catalog.ordered = append(catalog.ordered, normalized.ID)
	}
	return catalog, nil
}

// Default returns the built-in catalog mirroring the stock task list:
// device configuration generation and device documentation generation.
func Default() *Catalog {
	catalog, err := NewCatalog(
		Spec{
			ID:          IDConfigure,
			Name:        "Generate device configuration",
			Description: "Render the device intended configuration from its structured config.",
			TriggerTags: []string{tags.All, "build", "provision"},
			SkipTags:    []string{"build", "provision"},
		},
		Spec{
			ID:          IDDocument,
			Name:        "Generate device documentation",
			Description: "Render the per-device documentation from its structured config.",
			TriggerTags: []string{tags.All, "build", "provision", "documentation"},
			SkipTags:    []string{"build", "provision", "documentation"},
			Docs:        true,
		},
	)
	if err != nil {
		// The built-in specs are constants; a failure here is a
		// programming error.
		panic(err)
	}
	return catalog
}

// Lookup returns the spec for an ID.
func (c *Catalog) Lookup(id string) (Spec, bool) {
	if c == nil {
		return Spec{}, false
	}
	spec, ok := c.specs[strings.TrimSpace(id)]
	return spec, ok
}

// Specs returns the specs in declaration order.
func (c *Catalog) Specs() []Spec {
	if c == nil {
		return nil
	}
	out := make([]Spec, 0, len(c.ordered))
	for _, id := range c.ordered {
		out = append(out, c.specs[id])
	}
	return out
}

// IDs returns the catalog's action IDs in declaration order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Merge overlays additional specs onto the catalog, replacing any action
// with the same ID and appending new ones. The receiver is not modified.
func (c *Catalog) Merge(specs ...Spec) (*Catalog, error) {
	combined := c.Specs()
	seen := make(map[string]int, len(combined))
	for i, spec := range combined {
		seen[spec.ID] = i
	}
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		normalized := spec.Normalized()
		if idx, ok := seen[normalized.ID]; ok {
			combined[idx] = normalized
			continue
		}
		seen[normalized.ID] = len(combined)
		combined = append(combined, normalized)
	}
	return NewCatalog(combined...)
}

func normalizeTags(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		set[trimmed] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for value := range set {
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}
