package hxregion

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/a-h/templ"
	"golang.org/x/net/html"

	"github.com/pthm/hxregion/lib/dom"
)

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	// Regions are the owner's declared regions, name to raw definition.
	Regions map[string]any

	// RegionsFunc computes the declarations instead of Regions. It is
	// called on every InitRegions.
	RegionsFunc func() map[string]any

	// DefaultFactory builds regions whose definition names no factory.
	// Defaults to NewRegion.
	DefaultFactory RegionFactory

	// Logger receives debug records for region bookkeeping. Defaults to a
	// discarding logger.
	Logger *slog.Logger
}

// Registry tracks the regions of one owner: the declared definitions and
// the live instances built from them.
//
// A Registry is not safe for concurrent use. All calls are expected from
// the goroutine that owns the component, and each call leaves both maps
// consistent before returning, so event handlers may call back in.
type Registry struct {
	owner          Owner
	declared       func() map[string]any
	defaultFactory RegionFactory
	types          map[string]RegionFactory
	logger         *slog.Logger

	definitions map[string]Definition
	regions     map[string]Region
}

// NewRegistry creates a registry for owner. Call InitRegions before use.
func NewRegistry(owner Owner, cfg RegistryConfig) *Registry {
	reg := &Registry{
		owner:          owner,
		defaultFactory: cfg.DefaultFactory,
		types:          make(map[string]RegionFactory),
		logger:         cfg.Logger,
		definitions:    make(map[string]Definition),
		regions:        make(map[string]Region),
	}
	if reg.defaultFactory == nil {
		reg.defaultFactory = NewRegion
	}
	if reg.logger == nil {
		reg.logger = slog.New(slog.DiscardHandler)
	}

	switch {
	case cfg.RegionsFunc != nil:
		reg.declared = cfg.RegionsFunc
	case cfg.Regions != nil:
		static := maps.Clone(cfg.Regions)
		reg.declared = func() map[string]any { return static }
	default:
		reg.declared = func() map[string]any { return nil }
	}

	reg.types["region"] = NewRegion
	return reg
}

// RegisterType makes factory available to definitions and layouts by name.
func (reg *Registry) RegisterType(name string, factory RegionFactory) {
	reg.types[name] = factory
}

// InitRegions resets the registry: no live regions, and definitions copied
// from the owner's declarations. Running it again replaces all state.
func (reg *Registry) InitRegions() error {
	definitions := make(map[string]Definition)
	for name, raw := range maps.Clone(reg.declared()) {
		def, err := reg.normalize(raw)
		if err != nil {
			return fmt.Errorf("hxregion: region %q: %w", name, err)
		}
		definitions[name] = def
	}

	reg.regions = make(map[string]Region)
	reg.definitions = definitions
	return nil
}

// BindAllRegions adds or rebinds every declared region against the
// owner's current markup, then triggers "bind:regions" on the owner with
// the owner and the bound regions. Regions already live keep their child.
func (reg *Registry) BindAllRegions() (map[string]Region, error) {
	snapshot := make(map[string]any, len(reg.definitions))
	for name, def := range reg.definitions {
		snapshot[name] = def
	}

	regions, err := reg.AddRegions(snapshot)
	if err != nil {
		return nil, err
	}

	reg.owner.TriggerMethod("bind:regions", reg.owner, regions)
	return regions, nil
}

// AddRegion declares a region and builds it, or rebinds it if it is
// already live. The owner is rendered first if needed.
//
//	reg.AddRegion("main", "#main")
//	reg.AddRegion("sidebar", "@ui.sidebar")
func (reg *Registry) AddRegion(name string, definition any) (Region, error) {
	if err := reg.ensureRendered(); err != nil {
		return nil, err
	}
	opts, err := reg.normalizeAndStore(definition, name)
	if err != nil {
		return nil, err
	}
	return reg.addOrRebind(opts, name), nil
}

// AddRegions declares and builds several regions. Every target is
// resolved before any region is built, so a region bound earlier in the
// batch cannot capture a sibling's selector with its child's markup.
//
// If any definition is invalid nothing is built; definitions normalized
// before the failure are still stored.
func (reg *Registry) AddRegions(definitions map[string]any) (map[string]Region, error) {
	if err := reg.ensureRendered(); err != nil {
		return nil, err
	}

	batch := maps.Clone(definitions)
	resolved := make(map[string]RegionOptions, len(batch))
	for name, def := range batch {
		opts, err := reg.normalizeAndStore(def, name)
		if err != nil {
			return nil, err
		}
		resolved[name] = opts
	}

	regions := make(map[string]Region, len(resolved))
	for name, opts := range resolved {
		regions[name] = reg.addOrRebind(opts, name)
	}
	return regions, nil
}

// RemoveRegion destroys the named region. Removing a name with no live
// region returns ErrRegionNotFound and changes nothing.
func (reg *Registry) RemoveRegion(name string) error {
	region, ok := reg.regions[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrRegionNotFound, name)
	}
	region.Destroy()
	return nil
}

// RemoveRegions destroys every live region and returns them.
func (reg *Registry) RemoveRegions() map[string]Region {
	regions := maps.Clone(reg.regions)
	for _, region := range regions {
		region.Destroy()
	}
	return regions
}

// removeReferences forgets name if region is still the one registered
// under it. Regions call it from Destroy; it is the only place entries
// leave the registry. A region dropped by InitRegions and destroyed later
// leaves its successor alone.
func (reg *Registry) removeReferences(name string, region *BaseRegion) {
	current, ok := reg.regions[name]
	if !ok || current.base() != region {
		reg.logger.Debug("stale region destroyed", "region", name)
		return
	}
	delete(reg.definitions, name)
	delete(reg.regions, name)
	reg.logger.Debug("region removed", "region", name)
}

// EmptyRegions empties every live region, keeping the regions, and
// returns them.
func (reg *Registry) EmptyRegions() (map[string]Region, error) {
	regions, err := reg.GetRegions()
	if err != nil {
		return nil, err
	}
	for _, region := range regions {
		region.Empty()
	}
	return regions, nil
}

// HasRegion reports whether a live region exists for name.
func (reg *Registry) HasRegion(name string) bool {
	_, ok := reg.regions[name]
	return ok
}

// GetRegion returns the live region for name, or nil. The owner is
// rendered first if needed; the error comes only from that render.
func (reg *Registry) GetRegion(name string) (Region, error) {
	if err := reg.ensureRendered(); err != nil {
		return nil, err
	}
	return reg.regions[name], nil
}

// GetRegions returns a copy of the live regions. The owner is rendered
// first if needed.
func (reg *Registry) GetRegions() (map[string]Region, error) {
	if err := reg.ensureRendered(); err != nil {
		return nil, err
	}
	return maps.Clone(reg.regions), nil
}

// Definitions returns a copy of the current definitions.
func (reg *Registry) Definitions() map[string]Definition {
	return maps.Clone(reg.definitions)
}

// ShowChildView shows child in the named region and returns child.
func (reg *Registry) ShowChildView(name string, child templ.Component, opts ...ShowOption) (templ.Component, error) {
	region, err := reg.GetRegion(name)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, fmt.Errorf("%w: %q", ErrRegionNotFound, name)
	}
	if err := region.Show(child, opts...); err != nil {
		return nil, err
	}
	return child, nil
}

// DetachChildView detaches and returns the named region's child.
func (reg *Registry) DetachChildView(name string) (templ.Component, error) {
	region, err := reg.GetRegion(name)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, fmt.Errorf("%w: %q", ErrRegionNotFound, name)
	}
	return region.DetachView(), nil
}

// GetChildView returns the named region's child, or nil when the region is
// empty or does not exist.
func (reg *Registry) GetChildView(name string) templ.Component {
	region, ok := reg.regions[name]
	if !ok {
		return nil
	}
	return region.CurrentView()
}

func (reg *Registry) ensureRendered() error {
	if reg.owner.IsRendered() {
		return nil
	}
	if err := reg.owner.Render(); err != nil {
		return fmt.Errorf("hxregion: render: %w", err)
	}
	return nil
}

// normalizeAndStore records the definition for name and returns build
// options carrying a freshly resolved element. The stored target stays
// unresolved.
func (reg *Registry) normalizeAndStore(raw any, name string) (RegionOptions, error) {
	def, err := reg.normalize(raw)
	if err != nil {
		return RegionOptions{}, fmt.Errorf("hxregion: region %q: %w", name, err)
	}
	reg.definitions[name] = def

	el := reg.resolveTarget(def.Target)
	if el == nil {
		reg.logger.Debug("region target did not resolve",
			"region", name, "kind", def.Target.Kind.String(), "target", def.Target.String())
	}

	return RegionOptions{
		El:      el,
		Target:  def.Target,
		Options: def.Options,
		Logger:  reg.logger,
		factory: def.Factory,
	}, nil
}

// resolveTarget finds the element for t. It never fails; an unresolved
// target is nil.
func (reg *Registry) resolveTarget(t Target) *html.Node {
	switch t.Kind {
	case TargetAlias:
		return reg.owner.UIElement(t.Key)
	case TargetElement:
		return t.Node
	default:
		return dom.Find(reg.owner.El(), t.Key)
	}
}

// addOrRebind reuses a live region, pointing it at the new element, or
// builds one.
func (reg *Registry) addOrRebind(opts RegionOptions, name string) Region {
	if current, ok := reg.regions[name]; ok {
		// A child swapped in with SwapOuter stands where the element was,
		// so the target no longer matches until the markup is re-rendered.
		if opts.El == nil && current.base().IsSwapped() {
			reg.logger.Debug("region kept swapped binding", "region", name)
			return current
		}
		current.SetElement(opts.El)
		reg.logger.Debug("region rebound", "region", name, "el", dom.Describe(opts.El))
		return current
	}

	factory := opts.factory
	opts.factory = nil
	return reg.buildRegion(name, factory, opts)
}

func (reg *Registry) buildRegion(name string, factory RegionFactory, opts RegionOptions) Region {
	region := factory(opts)
	region.base().bind(name, reg)
	reg.regions[name] = region

	reg.logger.Debug("region built", "region", name, "el", dom.Describe(opts.El))
	return region
}
