package hxregion

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/pthm/hxregion/lib/dom"
)

// testChild is a comparable child component that counts Destroy calls.
type testChild struct {
	markup    string
	destroyed int
}

func newChild(markup string) *testChild {
	return &testChild{markup: markup}
}

func (c *testChild) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, c.markup)
	return err
}

func (c *testChild) Destroy() { c.destroyed++ }

// failingChild never renders.
type failingChild struct{}

func (failingChild) Render(context.Context, io.Writer) error {
	return errors.New("boom")
}

func raw(markup string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, markup)
		return err
	})
}

// fakeOwner is a minimal Owner rendering fixed markup.
type fakeOwner struct {
	Events

	root     *html.Node
	markup   string
	ui       map[string]string
	uiEls    map[string]*html.Node
	rendered bool
	renders  int
	err      error
}

func newFakeOwner(markup string, ui map[string]string) *fakeOwner {
	return &fakeOwner{
		root:   dom.NewElement("div"),
		markup: markup,
		ui:     ui,
		uiEls:  make(map[string]*html.Node),
	}
}

func (o *fakeOwner) IsRendered() bool { return o.rendered }

func (o *fakeOwner) Render() error {
	if o.err != nil {
		return o.err
	}
	o.renders++
	nodes, err := dom.ParseFragment(strings.NewReader(o.markup), o.root)
	if err != nil {
		return err
	}
	dom.ReplaceChildren(o.root, nodes)
	for key, sel := range o.ui {
		o.uiEls[key] = dom.Find(o.root, sel)
	}
	o.rendered = true
	return nil
}

func (o *fakeOwner) El() *html.Node { return o.root }

func (o *fakeOwner) UIElement(key string) *html.Node { return o.uiEls[key] }

// newTestRegistry returns an initialized registry over markup.
func newTestRegistry(t *testing.T, markup string, ui map[string]string, cfg RegistryConfig) (*Registry, *fakeOwner) {
	t.Helper()
	owner := newFakeOwner(markup, ui)
	reg := NewRegistry(owner, cfg)
	require.NoError(t, reg.InitRegions())
	return reg, owner
}

// cardRegion is a custom region type.
type cardRegion struct {
	*BaseRegion
	shows int
}

func newCardRegion(opts RegionOptions) Region {
	return &cardRegion{BaseRegion: NewBaseRegion(opts)}
}

func (r *cardRegion) Show(child templ.Component, opts ...ShowOption) error {
	r.shows++
	return r.BaseRegion.Show(child, opts...)
}
