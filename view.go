package hxregion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/a-h/templ"
	"golang.org/x/net/html"

	"github.com/pthm/hxregion/lib/dom"
)

// ViewConfig configures a View.
type ViewConfig struct {
	// Template produces the view's inner markup.
	Template templ.Component

	// TagName, ID and Class describe the root element. TagName defaults
	// to "div".
	TagName string
	ID      string
	Class   string

	// UI names elements inside the rendered markup, key to selector.
	// Region targets refer to them as "@ui.<key>".
	UI map[string]string

	Regions        map[string]any
	RegionsFunc    func() map[string]any
	DefaultFactory RegionFactory
	Logger         *slog.Logger
}

// View is a server-rendered component with named regions.
//
//	v, err := hxregion.NewView(hxregion.ViewConfig{
//	    Template: layout(),
//	    UI:       map[string]string{"side": "aside"},
//	    Regions: map[string]any{
//	        "main":    "#main",
//	        "sidebar": "@ui.side",
//	    },
//	})
//	_, err = v.ShowChildView("main", fileList(files))
//
// Region operations render the view on first use. Re-rendering keeps every
// live region and its child: regions are rebound to the new markup.
type View struct {
	*Registry
	Events

	template   templ.Component
	el         *html.Node
	uiBindings map[string]string
	ui         map[string]*html.Node
	logger     *slog.Logger

	rendered  bool
	destroyed bool
}

// NewView creates an unrendered view.
func NewView(cfg ViewConfig) (*View, error) {
	var attrs []html.Attribute
	if cfg.ID != "" {
		attrs = append(attrs, html.Attribute{Key: "id", Val: cfg.ID})
	}
	if cfg.Class != "" {
		attrs = append(attrs, html.Attribute{Key: "class", Val: cfg.Class})
	}

	v := &View{
		template:   cfg.Template,
		el:         dom.NewElement(cfg.TagName, attrs...),
		uiBindings: maps.Clone(cfg.UI),
		ui:         make(map[string]*html.Node),
		logger:     cfg.Logger,
	}
	if v.logger == nil {
		v.logger = slog.New(slog.DiscardHandler)
	}

	v.Registry = NewRegistry(v, RegistryConfig{
		Regions:        cfg.Regions,
		RegionsFunc:    cfg.RegionsFunc,
		DefaultFactory: cfg.DefaultFactory,
		Logger:         v.logger,
	})
	if err := v.InitRegions(); err != nil {
		return nil, err
	}
	return v, nil
}

// El returns the view's root element.
func (v *View) El() *html.Node { return v.el }

// IsRendered reports whether Render has succeeded since creation.
func (v *View) IsRendered() bool { return v.rendered }

// IsDestroyed reports whether Destroy has run.
func (v *View) IsDestroyed() bool { return v.destroyed }

// UIElement returns the element bound to a UI key by the last render.
func (v *View) UIElement(key string) *html.Node { return v.ui[key] }

// Render renders the template into the root element, binds UI elements
// and rebinds every region to the new markup.
//
// Triggers "before:render", "render" and, from the rebind, "bind:regions".
func (v *View) Render() error {
	if v.destroyed {
		return fmt.Errorf("hxregion: view destroyed")
	}
	v.TriggerMethod("before:render", v)

	var nodes []*html.Node
	if v.template != nil {
		var buf bytes.Buffer
		if err := v.template.Render(context.Background(), &buf); err != nil {
			return fmt.Errorf("hxregion: template: %w", err)
		}
		parsed, err := dom.ParseFragment(&buf, v.el)
		if err != nil {
			return fmt.Errorf("hxregion: parse template output: %w", err)
		}
		nodes = parsed
	}
	dom.ReplaceChildren(v.el, nodes)
	v.bindUIElements()

	v.rendered = true
	v.TriggerMethod("render", v)

	if _, err := v.BindAllRegions(); err != nil {
		return err
	}
	v.logger.Debug("view rendered", "el", dom.Describe(v.el))
	return nil
}

func (v *View) bindUIElements() {
	ui := make(map[string]*html.Node, len(v.uiBindings))
	for key, selector := range v.uiBindings {
		ui[key] = dom.Find(v.el, selector)
	}
	v.ui = ui
}

// Destroy removes every region, destroying their children, and detaches
// the root element.
func (v *View) Destroy() {
	if v.destroyed {
		return
	}
	v.TriggerMethod("before:destroy", v)
	v.RemoveRegions()
	dom.Detach([]*html.Node{v.el})
	v.destroyed = true
	v.rendered = false
	v.TriggerMethod("destroy", v)
}

// HTML returns the view's markup, rendering it first if needed.
func (v *View) HTML() (string, error) {
	if err := v.ensureRendered(); err != nil {
		return "", err
	}
	return dom.OuterHTML(v.el), nil
}

// Component adapts the view for showing inside another view's region.
// The region holds the view's own root element, so regions of the nested
// view keep updating the parent's markup. Rendering the component anywhere
// else writes a snapshot of the view's HTML. Destroying the component
// destroys the view.
func (v *View) Component() templ.Component {
	return viewComponent{view: v}
}

type viewComponent struct {
	view *View
}

func (c viewComponent) Render(ctx context.Context, w io.Writer) error {
	markup, err := c.view.HTML()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, markup)
	return err
}

func (c viewComponent) liveNodes() ([]*html.Node, error) {
	if err := c.view.ensureRendered(); err != nil {
		return nil, err
	}
	return []*html.Node{c.view.el}, nil
}

func (c viewComponent) Destroy() {
	c.view.Destroy()
}
