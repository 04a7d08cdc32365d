package hxregion

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/a-h/templ"
	"golang.org/x/net/html"

	"github.com/pthm/hxregion/lib/dom"
)

// Owner is the component a Registry lives in.
type Owner interface {
	// IsRendered reports whether the owner's markup exists.
	IsRendered() bool

	// Render produces the owner's markup. Registry operations that touch
	// regions call it first when IsRendered is false.
	Render() error

	// El is the root element selector targets are scoped to.
	El() *html.Node

	// UIElement returns the cached element named key, or nil.
	UIElement(key string) *html.Node

	TriggerMethod(event string, args ...any)
}

// Destroyer is implemented by children that release resources when a
// region discards them.
type Destroyer interface {
	Destroy()
}

// Region holds at most one child component inside a single element.
//
// Custom regions embed *BaseRegion and override what they need:
//
//	type ModalRegion struct {
//	    *hxregion.BaseRegion
//	}
//
//	func NewModalRegion(opts hxregion.RegionOptions) hxregion.Region {
//	    return &ModalRegion{BaseRegion: hxregion.NewBaseRegion(opts)}
//	}
type Region interface {
	Name() string
	El() *html.Node

	// Parent returns the owner the region was built for, or nil once the
	// region is destroyed.
	Parent() Owner

	// SetElement rebinds the region to el, moving the current child with it.
	SetElement(el *html.Node)

	Show(child templ.Component, opts ...ShowOption) error
	Empty(opts ...ShowOption)
	DetachView() templ.Component
	Destroy()
	IsDestroyed() bool

	CurrentView() templ.Component
	HasView() bool

	On(event string, fn Handler) func()

	base() *BaseRegion
}

// ShowOption configures Show and Empty.
type ShowOption func(*showOptions)

type showOptions struct {
	preventDestroy bool
	swap           SwapMode
}

// PreventDestroy keeps the outgoing child alive instead of calling its
// Destroy method.
func PreventDestroy() ShowOption {
	return func(o *showOptions) { o.preventDestroy = true }
}

// WithSwap overrides the region's swap mode for one Show.
func WithSwap(mode SwapMode) ShowOption {
	return func(o *showOptions) { o.swap = mode }
}

// BaseRegion is the default Region.
type BaseRegion struct {
	Events

	name     string
	registry *Registry
	target   Target
	options  map[string]any
	logger   *slog.Logger

	el        *html.Node
	swap      SwapMode
	current   templ.Component
	nodes     []*html.Node // child's top-level nodes
	mode      SwapMode     // mode the current child was attached with
	replaced  bool         // el is out of the tree, nodes stand in for it
	destroyed bool
}

// NewRegion is the default RegionFactory.
func NewRegion(opts RegionOptions) Region {
	return NewBaseRegion(opts)
}

// NewBaseRegion builds a BaseRegion for embedding in custom regions.
//
// A nil opts.El is accepted; Show reports ErrMissingElement until the
// region is rebound with SetElement. The "swap" option selects the default
// swap mode.
func NewBaseRegion(opts RegionOptions) *BaseRegion {
	r := &BaseRegion{
		el:      opts.El,
		target:  opts.Target,
		options: opts.Options,
		logger:  opts.Logger,
		swap:    SwapInner,
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if v, ok := opts.Options["swap"]; ok {
		if mode, ok := parseSwapMode(v); ok {
			r.swap = mode
		}
	}
	return r
}

func (r *BaseRegion) base() *BaseRegion { return r }

// bind stamps the region with its name and registry.
func (r *BaseRegion) bind(name string, reg *Registry) {
	r.name = name
	r.registry = reg
}

// Name returns the key the region is registered under.
func (r *BaseRegion) Name() string { return r.name }

// El returns the element the region is bound to.
func (r *BaseRegion) El() *html.Node { return r.el }

// Target returns the unresolved target the region was built from.
func (r *BaseRegion) Target() Target { return r.target }

// Options returns the definition options the region was built with.
func (r *BaseRegion) Options() map[string]any { return r.options }

// Parent returns the owning component.
func (r *BaseRegion) Parent() Owner {
	if r.registry == nil {
		return nil
	}
	return r.registry.owner
}

// CurrentView returns the child being shown, or nil.
func (r *BaseRegion) CurrentView() templ.Component { return r.current }

// HasView reports whether a child is shown.
func (r *BaseRegion) HasView() bool { return r.current != nil }

// IsDestroyed reports whether Destroy has run.
func (r *BaseRegion) IsDestroyed() bool { return r.destroyed }

// IsSwapped reports whether the region element is currently replaced by
// its child (SwapOuter).
func (r *BaseRegion) IsSwapped() bool { return r.replaced }

// SetElement rebinds the region to el without touching its child. The
// child's nodes move into el; a nil el leaves them detached until the next
// rebind.
func (r *BaseRegion) SetElement(el *html.Node) {
	if el == r.el {
		return
	}
	r.restoreEl()
	r.el = el

	if r.current == nil {
		return
	}
	if el == nil {
		dom.Detach(r.nodes)
		return
	}
	r.attach(r.nodes, r.mode)
}

// Show renders child into the region, replacing the current child. Showing
// the child that is already current does nothing.
//
// The outgoing child is destroyed when it implements Destroyer, unless
// PreventDestroy is given. If child fails to render the current child is
// left in place.
func (r *BaseRegion) Show(child templ.Component, opts ...ShowOption) error {
	if r.destroyed {
		return fmt.Errorf("%w: %q", ErrRegionDestroyed, r.name)
	}
	if child == nil {
		r.Empty(opts...)
		return nil
	}
	if sameComponent(r.current, child) {
		return nil
	}
	if r.el == nil {
		return fmt.Errorf("%w: %q", ErrMissingElement, r.name)
	}

	o := r.showOptions(opts)

	nodes, err := renderNodes(child, r.el)
	if err != nil {
		return fmt.Errorf("hxregion: render child of %q: %w", r.name, err)
	}

	r.Trigger("before:show", r, child)
	r.Empty(opts...)
	r.attach(nodes, o.swap)
	r.current = child
	r.Trigger("show", r, child)
	return nil
}

// Empty removes the current child, destroying it unless PreventDestroy is
// given. The region stays usable.
func (r *BaseRegion) Empty(opts ...ShowOption) {
	if r.current == nil {
		return
	}
	o := r.showOptions(opts)
	view := r.current

	r.Trigger("before:empty", r, view)
	r.removeView()
	if !o.preventDestroy {
		if d, ok := view.(Destroyer); ok {
			d.Destroy()
		}
	}
	r.Trigger("empty", r, view)
}

// DetachView removes the current child without destroying it and returns
// it, or nil when the region is empty.
func (r *BaseRegion) DetachView() templ.Component {
	view := r.current
	if view == nil {
		return nil
	}
	r.removeView()
	r.Trigger("detach", r, view)
	return view
}

// Destroy empties the region and removes it from its registry. Only the
// first call has any effect.
func (r *BaseRegion) Destroy() {
	if r.destroyed {
		return
	}
	r.Trigger("before:destroy", r)
	r.Empty()
	r.destroyed = true

	if reg := r.registry; reg != nil {
		r.registry = nil
		reg.removeReferences(r.name, r)
	}
	r.el = nil

	r.Trigger("destroy", r)
	r.logger.Debug("region destroyed", "region", r.name)
}

func (r *BaseRegion) removeView() {
	r.restoreEl()
	dom.Detach(r.nodes)
	r.nodes = nil
	r.current = nil
}

func (r *BaseRegion) attach(nodes []*html.Node, mode SwapMode) {
	r.nodes = nodes
	r.mode = mode

	if mode == SwapOuter && r.el.Parent != nil && len(nodes) > 0 {
		dom.InsertBefore(r.el, nodes)
		r.el.Parent.RemoveChild(r.el)
		r.replaced = true
		return
	}
	dom.ReplaceChildren(r.el, nodes)
}

// restoreEl puts a swapped-out element back where its child sits.
func (r *BaseRegion) restoreEl() {
	if !r.replaced {
		return
	}
	r.replaced = false
	for _, n := range r.nodes {
		if n.Parent != nil {
			dom.InsertBefore(n, []*html.Node{r.el})
			return
		}
	}
}

func (r *BaseRegion) showOptions(opts []ShowOption) showOptions {
	o := showOptions{swap: r.swap}
	for _, opt := range opts {
		opt(&o)
	}
	if o.swap != SwapOuter {
		o.swap = SwapInner
	}
	return o
}

// nodeSource is implemented by children that are attached as existing
// nodes instead of rendered markup, so later changes to them stay visible.
type nodeSource interface {
	liveNodes() ([]*html.Node, error)
}

// renderNodes renders child into nodes parsed in the context of el.
func renderNodes(child templ.Component, el *html.Node) ([]*html.Node, error) {
	if src, ok := child.(nodeSource); ok {
		return src.liveNodes()
	}
	var buf bytes.Buffer
	if err := child.Render(context.Background(), &buf); err != nil {
		return nil, err
	}
	return dom.ParseFragment(&buf, el)
}

// sameComponent compares children by identity. Values whose dynamic type
// is not comparable, such as templ.ComponentFunc, never match.
func sameComponent(a, b templ.Component) bool {
	if a == nil || b == nil {
		return false
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
