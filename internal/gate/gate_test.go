package gate

import (
	"testing"

	"github.com/noredistribution/avd/internal/tags"
)

func TestShouldRun(t *testing.T) {
	tests := []struct {
		name      string
		requested tags.Set
		skipped   tags.Set
		trigger   tags.Set
		skip      tags.Set
		want      bool
	}{
		{
			name:      "all sentinel triggers",
			requested: tags.New("all"),
			trigger:   tags.New("all", "build", "provision"),
			skip:      tags.New("build", "provision"),
			want:      true,
		},
		{
			name:      "specific tag triggers",
			requested: tags.New("build"),
			trigger:   tags.New("all", "build", "provision"),
			skip:      tags.New("build", "provision"),
			want:      true,
		},
		{
			name:      "skip wins over trigger",
			requested: tags.New("build"),
			skipped:   tags.New("build"),
			trigger:   tags.New("all", "build", "provision"),
			skip:      tags.New("build", "provision"),
			want:      false,
		},
		{
			name:      "unrelated request is a silent no-op",
			requested: tags.New("unrelatedTag"),
			trigger:   tags.New("all", "build"),
			skip:      tags.New("build"),
			want:      false,
		},
		{
			name:      "skipping all has no effect",
			requested: tags.New("all"),
			skipped:   tags.New("all"),
			trigger:   tags.New("all", "build", "provision"),
			skip:      tags.New("build", "provision"),
			want:      true,
		},
		{
			name:    "empty requested set runs nothing",
			trigger: tags.New("all", "build"),
			skip:    tags.New("build"),
			want:    false,
		},
		{
			name:      "empty skip set never excludes",
			requested: tags.New("build"),
			skipped:   tags.New("build"),
			trigger:   tags.New("all", "build"),
			want:      true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldRun(tc.requested, tc.skipped, tc.trigger, tc.skip); got != tc.want {
				t.Fatalf("ShouldRun = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestShouldRunIsIdempotent(t *testing.T) {
	requested := tags.New("build")
	skipped := tags.New("provision")
	trigger := tags.New("all", "build", "provision")
	skip := tags.New("build", "provision")
	first := ShouldRun(requested, skipped, trigger, skip)
	for i := 0; i < 100; i++ {
		if got := ShouldRun(requested, skipped, trigger, skip); got != first {
			t.Fatalf("evaluation %d returned %v, first returned %v", i, got, first)
		}
	}
}

func TestShouldRunDocs(t *testing.T) {
	requested := tags.New("documentation")
	trigger := tags.New("all", "build", "provision", "documentation")
	skip := tags.New("build", "provision", "documentation")

	if !ShouldRunDocs(true, requested, tags.Set{}, trigger, skip) {
		t.Fatalf("expected documentation to run when enabled and triggered")
	}
	if ShouldRunDocs(false, requested, tags.Set{}, trigger, skip) {
		t.Fatalf("disabled override must win regardless of tags")
	}
	if ShouldRunDocs(false, tags.New("all"), tags.Set{}, trigger, skip) {
		t.Fatalf("disabled override must win even for the sentinel")
	}
	if !ShouldRunDocs(true, tags.New("all"), tags.Set{}, trigger, skip) {
		t.Fatalf("sentinel request should run documentation when enabled")
	}
}

func TestEvaluateExposesBothLegs(t *testing.T) {
	d := Evaluate(
		tags.New("build"),
		tags.New("build"),
		tags.New("all", "build", "provision"),
		tags.New("build", "provision"),
	)
	if !d.Triggered || !d.Excluded || d.Run {
		t.Fatalf("unexpected decision %+v", d)
	}

	d = Evaluate(tags.New("unrelatedTag"), tags.Set{}, tags.New("all", "build"), tags.New("build"))
	if d.Triggered || d.Excluded || d.Run {
		t.Fatalf("unexpected decision %+v", d)
	}
}
