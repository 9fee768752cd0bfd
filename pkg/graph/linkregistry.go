package graph

import (
	"cmp"
	"slices"

	"github.com/orneryd/wyrd/pkg/property"
)

// Link is one directed value-propagating connection between two primitive
// leaves on different nodes.
type Link struct {
	Source *property.Property
	Target *property.Property
}

// LinkRegistry stores the primitive links of an engine. Every input leaf has
// at most one source; one output leaf may drive any number of inputs.
//
// The registry performs no semantic validation. Dependencies validates link
// requests before touching the registry.
type LinkRegistry struct {
	incoming map[*property.Property]*property.Property
	outgoing map[*property.Property][]*property.Property
}

// NewLinkRegistry creates an empty registry.
func NewLinkRegistry() *LinkRegistry {
	return &LinkRegistry{
		incoming: make(map[*property.Property]*property.Property),
		outgoing: make(map[*property.Property][]*property.Property),
	}
}

// Add records a link from out to in. Returns false without mutating state
// when in already has a source. On success the target's wasSet flag is
// cleared; its value now comes from the link.
func (r *LinkRegistry) Add(out, in *property.Property) bool {
	if _, linked := r.incoming[in]; linked {
		return false
	}
	r.incoming[in] = out
	r.outgoing[out] = append(r.outgoing[out], in)
	in.MarkLinkedInput(true)
	return true
}

// Remove deletes the link from out to in. Returns false when no such link
// exists. The target keeps its last propagated value and becomes
// user-settable again.
func (r *LinkRegistry) Remove(out, in *property.Property) bool {
	if r.incoming[in] != out {
		return false
	}
	delete(r.incoming, in)
	targets := r.outgoing[out]
	for i, t := range targets {
		if t == in {
			r.outgoing[out] = append(targets[:i], targets[i+1:]...)
			break
		}
	}
	if len(r.outgoing[out]) == 0 {
		delete(r.outgoing, out)
	}
	in.MarkLinkedInput(false)
	return true
}

// SourceOf returns the output leaf driving in, or nil when in is unlinked.
func (r *LinkRegistry) SourceOf(in *property.Property) *property.Property {
	return r.incoming[in]
}

// TargetsOf returns the input leaves driven by out. The returned slice is
// the registry's own; callers must not mutate it.
func (r *LinkRegistry) TargetsOf(out *property.Property) []*property.Property {
	return r.outgoing[out]
}

// Links returns every link in the registry, ordered by target owner id and
// target path for determinism.
func (r *LinkRegistry) Links() []Link {
	links := make([]Link, 0, len(r.incoming))
	for in, out := range r.incoming {
		links = append(links, Link{Source: out, Target: in})
	}
	slices.SortFunc(links, func(a, b Link) int {
		if c := cmp.Compare(a.Target.Owner().ID(), b.Target.Owner().ID()); c != 0 {
			return c
		}
		return cmp.Compare(a.Target.Path(), b.Target.Path())
	})
	return links
}

// IsLinked reports whether any link touches a property owned by the given
// node.
func (r *LinkRegistry) IsLinked(node property.Owner) bool {
	for in, out := range r.incoming {
		if in.Owner() == node || out.Owner() == node {
			return true
		}
	}
	return false
}

// RemoveAllForNode removes every link whose source or target belongs to the
// given node and returns the removed links, so the caller can mirror the
// removals in the node graph.
func (r *LinkRegistry) RemoveAllForNode(node property.Owner) []Link {
	var removed []Link
	for in, out := range r.incoming {
		if in.Owner() == node || out.Owner() == node {
			removed = append(removed, Link{Source: out, Target: in})
		}
	}
	for _, link := range removed {
		r.Remove(link.Source, link.Target)
	}
	return removed
}
