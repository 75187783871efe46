// Package gate holds the tag-based execution gate: the pure decision that
// determines, for one action and one run, whether the action executes.
//
// The rule mirrors the usual orchestration idiom: an action runs when any
// requested tag matches its trigger set, unless any skipped tag matches
// its (narrower) skip set. The trigger set may carry the "all" sentinel;
// the skip set never does, so an operator can request everything but
// cannot skip everything through this mechanism.
package gate

import "github.com/noredistribution/avd/internal/tags"

// ShouldRun reports whether an action executes for the given run.
//
// The predicate is total, stateless and side-effect free: repeated
// evaluation with identical inputs yields identical output, and callers
// may evaluate it concurrently for independent actions.
func ShouldRun(requested, skipped, trigger, skip tags.Set) bool {
	contained := requested.Intersects(trigger)
	excluded := skipped.Intersects(skip)
	return contained && !excluded
}

// ShouldRunDocs composes ShouldRun with the documentation override. The
// flag short-circuits before the tag test: when documentation generation
// is disabled it never runs, whatever the tags say.
func ShouldRunDocs(docsEnabled bool, requested, skipped, trigger, skip tags.Set) bool {
	if !docsEnabled {
		return false
	}
	return ShouldRun(requested, skipped, trigger, skip)
}

// Decision captures one gate evaluation for reporting. Run is the final
// verdict; Triggered and Excluded expose the two legs so a report can say
// why an action was held back.
type Decision struct {
	Triggered bool
	Excluded  bool
	Run       bool
}

// Evaluate returns the full decision for an action.
func Evaluate(requested, skipped, trigger, skip tags.Set) Decision {
	d := Decision{
		Triggered: requested.Intersects(trigger),
		Excluded:  skipped.Intersects(skip),
	}
	d.Run = d.Triggered && !d.Excluded
	return d
}
