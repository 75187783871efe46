package action

import (
	"reflect"
	"strings"
	"testing"
)

func TestSpecValidate(t *testing.T) {
	spec := Spec{
		ID:          "configure",
		Name:        "Generate device configuration",
		TriggerTags: []string{"all", "build", "provision"},
		SkipTags:    []string{"build", "provision"},
	}
	if err := spec.Validate(); err != nil {
		t.Fatalf("expected spec to validate, got %v", err)
	}
}

func TestSpecValidateFailures(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		msg  string
	}{
		{
			name: "missing id",
			spec: Spec{TriggerTags: []string{"build"}},
			msg:  "id is required",
		},
		{
			name: "empty trigger tags",
			spec: Spec{ID: "configure"},
			msg:  "at least one trigger tag",
		},
		{
			name: "whitespace trigger tags",
			spec: Spec{ID: "configure", TriggerTags: []string{" ", ""}},
			msg:  "at least one trigger tag",
		},
		{
			name: "sentinel in skip set",
			spec: Spec{ID: "configure", TriggerTags: []string{"build"}, SkipTags: []string{"all"}},
			msg:  "not a valid skip tag",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.spec.Validate(); err == nil || !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("expected error containing %q, got %v", tc.msg, err)
			}
		})
	}
}

func TestSpecNormalized(t *testing.T) {
	spec := Spec{
		ID:          " configure ",
		TriggerTags: []string{" build ", "build", "", "all"},
		SkipTags:    []string{"provision", " provision "},
	}
	normalized := spec.Normalized()
	if normalized.ID != "configure" {
		t.Fatalf("expected trimmed id, got %q", normalized.ID)
	}
	if got := normalized.TriggerTags; !reflect.DeepEqual(got, []string{"all", "build"}) {
		t.Fatalf("expected deduplicated trigger tags, got %v", got)
	}
	if got := normalized.SkipTags; !reflect.DeepEqual(got, []string{"provision"}) {
		t.Fatalf("expected deduplicated skip tags, got %v", got)
	}
}

func TestDefaultCatalog(t *testing.T) {
	catalog := Default()
	if got := catalog.IDs(); !reflect.DeepEqual(got, []string{IDConfigure, IDDocument}) {
		t.Fatalf("unexpected catalog order %v", got)
	}
	configure, ok := catalog.Lookup(IDConfigure)
	if !ok {
		t.Fatalf("expected configure action in default catalog")
	}
	if configure.Docs {
		t.Fatalf("configure must not be subject to the docs override")
	}
	if !configure.Trigger().Contains("all") {
		t.Fatalf("configure trigger set must carry the sentinel")
	}
	if configure.Skip().Contains("all") {
		t.Fatalf("skip sets never carry the sentinel")
	}
	document, ok := catalog.Lookup(IDDocument)
	if !ok {
		t.Fatalf("expected document action in default catalog")
	}
	if !document.Docs {
		t.Fatalf("document must be subject to the docs override")
	}
	if !document.Trigger().Contains("documentation") {
		t.Fatalf("document action must be requestable via the documentation tag")
	}
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog(
		Spec{ID: "configure", TriggerTags: []string{"build"}},
		Spec{ID: "configure", TriggerTags: []string{"provision"}},
	)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestCatalogMerge(t *testing.T) {
	merged, err := Default().Merge(
		Spec{ID: IDConfigure, TriggerTags: []string{"build"}},
		Spec{ID: "verify", TriggerTags: []string{"all", "verify"}},
	)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if got := merged.IDs(); !reflect.DeepEqual(got, []string{IDConfigure, IDDocument, "verify"}) {
		t.Fatalf("unexpected merged order %v", got)
	}
	configure, _ := merged.Lookup(IDConfigure)
	if configure.Trigger().Contains("all") {
		t.Fatalf("override should have replaced the built-in trigger set")
	}
	// The original catalog must be untouched.
	original, _ := Default().Lookup(IDConfigure)
	if !original.Trigger().Contains("all") {
		t.Fatalf("merge must not mutate the receiver")
	}
}
