package hxregion

import "golang.org/x/net/html"

// AliasPrefix marks a target that refers to a named element in the owner's
// UI table rather than a selector.
const AliasPrefix = "@ui."

// TargetKind tags how a Target is resolved.
type TargetKind int

const (
	// TargetSelector is resolved with a selector query scoped to the owner's root.
	TargetSelector TargetKind = iota
	// TargetAlias is looked up in the owner's UI table.
	TargetAlias
	// TargetElement is an element given directly.
	TargetElement
)

func (k TargetKind) String() string {
	switch k {
	case TargetAlias:
		return "alias"
	case TargetElement:
		return "element"
	default:
		return "selector"
	}
}

// Target is where a region is bound. Raw strings are parsed into a Target
// once, when a definition is normalized.
type Target struct {
	Kind TargetKind
	// Key is the alias key for TargetAlias and the selector for TargetSelector.
	Key  string
	Node *html.Node
}

// ParseTarget classifies a raw target string. Only a string whose first
// four bytes are exactly "@ui." is an alias; everything else is a selector.
func ParseTarget(raw string) Target {
	if len(raw) >= len(AliasPrefix) && raw[:len(AliasPrefix)] == AliasPrefix {
		return Target{Kind: TargetAlias, Key: raw[len(AliasPrefix):]}
	}
	return Target{Kind: TargetSelector, Key: raw}
}

// AliasTarget returns a target for the UI element named key.
func AliasTarget(key string) Target {
	return Target{Kind: TargetAlias, Key: key}
}

// SelectorTarget returns a target resolved by selector.
func SelectorTarget(selector string) Target {
	return Target{Kind: TargetSelector, Key: selector}
}

// ElementTarget wraps an element that needs no resolution.
func ElementTarget(n *html.Node) Target {
	return Target{Kind: TargetElement, Node: n}
}

// IsZero reports whether t has nothing to resolve. An alias is never zero,
// even with an empty key.
func (t Target) IsZero() bool {
	switch t.Kind {
	case TargetAlias:
		return false
	case TargetElement:
		return t.Node == nil
	default:
		return t.Key == ""
	}
}

// String returns the raw form of the target. Element targets have none.
func (t Target) String() string {
	switch t.Kind {
	case TargetAlias:
		return AliasPrefix + t.Key
	case TargetElement:
		return ""
	default:
		return t.Key
	}
}
