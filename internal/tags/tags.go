package tags

import (
	"sort"
	"strings"
)

// All is the sentinel tag that selects every action regardless of the
// specific tags it carries. It is only meaningful inside trigger sets;
// skip sets never honor it.
const All = "all"

// Set is a deduplicated, unordered, case-sensitive collection of tag
// labels. A Set is never mutated after construction; callers that need a
// variant build a new one.
type Set struct {
	members map[string]struct{}
}

// New builds a Set from the provided tokens. Empty and whitespace-only
// tokens are discarded, the rest are trimmed. Construction never fails so
// malformed operator input degrades to a smaller set instead of aborting
// the run.
func New(tokens ...string) Set {
	return FromList(tokens)
}

// FromList builds a Set from a token slice using the same normalization
// rules as New.
func FromList(tokens []string) Set {
	members := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		trimmed := strings.TrimSpace(token)
		if trimmed == "" {
			continue
		}
		members[trimmed] = struct{}{}
	}
	return Set{members: members}
}

// Split tokenizes a comma-separated flag value (the shape of --tags and
// --skip-tags input) into a Set.
func Split(value string) Set {
	if strings.TrimSpace(value) == "" {
		return Set{}
	}
	return FromList(strings.Split(value, ","))
}

// Contains reports whether the set holds the exact tag. Matching is
// case-sensitive with no globbing or hierarchy.
func (s Set) Contains(tag string) bool {
	if len(s.members) == 0 {
		return false
	}
	_, ok := s.members[tag]
	return ok
}

// Intersects reports whether the two sets share at least one tag.
func (s Set) Intersects(other Set) bool {
	if len(s.members) == 0 || len(other.members) == 0 {
		return false
	}
	small, large := s, other
	if len(other.members) < len(s.members) {
		small, large = other, s
	}
	for tag := range small.members {
		if _, ok := large.members[tag]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of tags in the set.
func (s Set) Len() int {
	return len(s.members)
}

// IsEmpty reports whether the set holds no tags.
func (s Set) IsEmpty() bool {
	return len(s.members) == 0
}

// Values returns the tags in sorted order.
func (s Set) Values() []string {
	if len(s.members) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.members))
	for tag := range s.members {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	if len(s.members) == 0 {
		return Set{}
	}
	members := make(map[string]struct{}, len(s.members))
	for tag := range s.members {
		members[tag] = struct{}{}
	}
	return Set{members: members}
}

// String renders the set as a comma-separated sorted list for logs.
func (s Set) String() string {
	return strings.Join(s.Values(), ",")
}
