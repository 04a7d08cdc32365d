package hxregion

import (
	"fmt"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"
)

// Layout is the serializable form of a registry's definitions.
//
// In YAML an entry is either a bare target or a mapping:
//
//	main: "#main"
//	sidebar:
//	  el: "@ui.side"
//	  type: card
type Layout map[string]LayoutEntry

// LayoutEntry is one declared region in a Layout.
type LayoutEntry struct {
	Target string `yaml:"el" msgpack:"t"`
	Type   string `yaml:"type,omitempty" msgpack:"k,omitempty"`
}

// UnmarshalYAML accepts a scalar target or an {el, type} mapping.
func (e *LayoutEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*e = LayoutEntry{Target: value.Value}
		return nil
	}
	type plain LayoutEntry
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*e = LayoutEntry(p)
	return nil
}

// MarshalYAML writes entries without a type as a bare target.
func (e LayoutEntry) MarshalYAML() (any, error) {
	if e.Type == "" {
		return e.Target, nil
	}
	type plain LayoutEntry
	return plain(e), nil
}

// ParseLayout decodes a YAML layout.
func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return l, nil
}

// Names returns the layout's region names in sorted order.
func (l Layout) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Layout snapshots the current definitions. Element targets cannot be
// serialized and are left out. A definition built from a factory that is
// registered under a name records that name as its type.
func (reg *Registry) Layout() Layout {
	l := make(Layout, len(reg.definitions))
	for name, def := range reg.definitions {
		if def.Target.Kind == TargetElement {
			reg.logger.Debug("layout skips element target", "region", name)
			continue
		}
		l[name] = LayoutEntry{Target: def.Target.String(), Type: reg.typeName(def)}
	}
	return l
}

// LoadLayout adds every region in l.
func (reg *Registry) LoadLayout(l Layout) (map[string]Region, error) {
	defs := make(map[string]any, len(l))
	for name, entry := range l {
		defs[name] = entry
	}
	return reg.AddRegions(defs)
}

func (reg *Registry) typeName(def Definition) string {
	if def.Type != "" || def.Factory == nil {
		return def.Type
	}
	ptr := reflect.ValueOf(def.Factory).Pointer()
	if ptr == reflect.ValueOf(reg.defaultFactory).Pointer() {
		return ""
	}
	for name, factory := range reg.types {
		if reflect.ValueOf(factory).Pointer() == ptr {
			return name
		}
	}
	return ""
}
