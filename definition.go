package hxregion

import (
	"fmt"
	"log/slog"
	"maps"

	"golang.org/x/net/html"
)

// RegionOptions is what a RegionFactory receives when a region is built.
type RegionOptions struct {
	// El is the resolved element. It may be nil when the target did not
	// resolve; the region decides whether that matters.
	El *html.Node

	// Target is the unresolved target the element came from.
	Target Target

	// Options are the definition's pass-through options.
	Options map[string]any

	Logger *slog.Logger

	factory RegionFactory
}

// RegionFactory builds a region instance. NewRegion is the default.
type RegionFactory func(opts RegionOptions) Region

// Definition declares a region: where it binds and what builds it.
//
// Raw declarations accepted by AddRegion and AddRegions are normalized into
// a Definition:
//
//	"#main"                       // selector
//	"@ui.sidebar"                 // alias into the owner's UI table
//	node                          // *html.Node, bound as-is
//	hxregion.Definition{Target: hxregion.ParseTarget(".list"), Factory: NewListRegion}
type Definition struct {
	Target Target

	// Factory builds the instance. Nil falls back to Type, then to the
	// registry's default factory.
	Factory RegionFactory

	// Type names a factory registered with Registry.RegisterType.
	Type string

	Options map[string]any
}

// normalize converts a raw declaration into a canonical Definition with a
// non-nil Factory. It does not resolve the target.
func (reg *Registry) normalize(raw any) (Definition, error) {
	var def Definition

	switch v := raw.(type) {
	case string:
		def.Target = ParseTarget(v)
	case *html.Node:
		if v == nil {
			return Definition{}, fmt.Errorf("%w: nil element", ErrInvalidDefinition)
		}
		def.Target = ElementTarget(v)
	case Target:
		def.Target = v
	case Definition:
		def = v
	case *Definition:
		if v == nil {
			return Definition{}, fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
		}
		def = *v
	case LayoutEntry:
		def = Definition{Target: ParseTarget(v.Target), Type: v.Type}
	default:
		return Definition{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidDefinition, raw)
	}

	if def.Target.IsZero() {
		return Definition{}, fmt.Errorf("%w: missing target", ErrInvalidDefinition)
	}

	if def.Factory == nil {
		if def.Type != "" {
			factory, ok := reg.types[def.Type]
			if !ok {
				return Definition{}, fmt.Errorf("%w: %q", ErrUnknownType, def.Type)
			}
			def.Factory = factory
		} else {
			def.Factory = reg.defaultFactory
		}
	}

	def.Options = maps.Clone(def.Options)
	return def, nil
}
