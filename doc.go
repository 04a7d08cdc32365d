// Package hxregion provides named regions for server-rendered views built
// with Go, Templ templates, and HTMX.
//
// A view declares regions, named places inside its own markup, and shows
// one child component in each. Children are swapped in and out over the
// view's lifetime while the view itself is re-rendered as often as needed.
//
// # Core Concepts
//
// A region is declared by name with a target:
//
//	v, err := hxregion.NewView(hxregion.ViewConfig{
//	    Template: layout(),
//	    UI:       map[string]string{"side": "aside.sidebar"},
//	    Regions: map[string]any{
//	        "main":    "#main",     // selector, scoped to the view
//	        "sidebar": "@ui.side",  // alias into the UI table
//	    },
//	})
//
// Targets starting with exactly "@ui." name an element the view already
// looked up; anything else is a CSS selector. Raw strings are parsed into a
// Target once, when the definition is stored, and resolved again every time
// the region is bound.
//
// # Registry
//
// Every view embeds a Registry holding two maps: definitions (name to
// target and factory) and live regions (name to instance). Adding a region
// stores its definition and builds the instance, or, if one is already
// live, rebinds it to the freshly resolved element. Rebinding never
// replaces the instance and never touches its child, which is what lets a
// view re-render without losing the components shown inside it.
//
//	v.ShowChildView("main", fileList(files))
//	v.Render()                  // main still shows the file list
//	v.GetChildView("main")      // same component
//
// Operations that need markup (AddRegion, AddRegions, GetRegion,
// GetRegions, ShowChildView) render the view first if it has not been
// rendered yet.
//
// Regions leave the registry only by being destroyed. RemoveRegion
// destroys the instance, and the instance's Destroy erases its own
// entries. RemoveRegion on an unknown name returns ErrRegionNotFound.
//
// # Custom Regions
//
// Regions are built by a RegionFactory. NewRegion is the default; custom
// regions embed *BaseRegion:
//
//	type ModalRegion struct{ *hxregion.BaseRegion }
//
//	reg.RegisterType("modal", func(o hxregion.RegionOptions) hxregion.Region {
//	    return &ModalRegion{hxregion.NewBaseRegion(o)}
//	})
//
// # Layouts
//
// A registry's definitions can be exported as a Layout, written as YAML,
// or encoded into a signed or encrypted token with EncodeLayout so a
// request can rebuild the same regions.
//
// # Concurrency
//
// Views, registries and regions are not safe for concurrent use. They are
// owned by one goroutine, the way a component tree is owned by its
// request or event loop.
package hxregion
