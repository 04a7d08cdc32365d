package hxregion

import (
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/pthm/hxregion/lib/dom"
)

// RegionHandler serves a view and its regions as HTML fragments, so htmx
// can refresh one region without re-requesting the page:
//
//	h := hxregion.NewHandler(view)
//	http.Handle("/_r/", http.StripPrefix("/_r", h))
//
//	<div id="main" hx-get="/_r/main" hx-trigger="refresh"></div>
//
// Routes:
//   - GET /        the whole view, or one region when HX-Target names it
//   - GET /{name}  the named region's content
//   - DELETE /{name} empties the region
//
// A View is not safe for concurrent use, so the handler serves one request
// at a time. Code outside the handler that touches the same view while it
// is serving must go through Do.
type RegionHandler struct {
	mu   sync.Mutex
	view *View
	mux  *http.ServeMux

	// OnError is called when a request fails.
	// Customize this to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// NewHandler creates a handler for view.
func NewHandler(view *View) *RegionHandler {
	h := &RegionHandler{
		view: view,
		mux:  http.NewServeMux(),
	}

	h.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		if IsNotFound(err) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}

	h.mux.HandleFunc("GET /{$}", h.serveView)
	h.mux.HandleFunc("GET /{name}", h.serveRegion)
	h.mux.HandleFunc("DELETE /{name}", h.emptyRegion)
	return h
}

// ServeHTTP implements http.Handler.
func (h *RegionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// CSRF protection: mutating methods require HX-Request header
	if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
		http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mux.ServeHTTP(w, r)
}

// Do runs fn with the view while holding the handler's lock.
//
//	err := h.Do(func(v *hxregion.View) error {
//	    _, err := v.ShowChildView("main", detail(task))
//	    return err
//	})
func (h *RegionHandler) Do(fn func(v *View) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.view)
}

// serveView writes the whole view. An htmx request whose HX-Target is the
// id of a region element gets only that region.
func (h *RegionHandler) serveView(w http.ResponseWriter, r *http.Request) {
	markup, err := h.view.HTML()
	if err != nil {
		h.OnError(w, r, err)
		return
	}
	if IsHTMX(r) && !IsBoosted(r) {
		if region := h.targeted(TargetID(r)); region != nil {
			markup = RegionHTML(region)
		}
	}
	writeHTML(w, markup)
}

func (h *RegionHandler) targeted(id string) Region {
	if id == "" {
		return nil
	}
	regions, err := h.view.GetRegions()
	if err != nil {
		return nil
	}
	for _, region := range regions {
		if dom.Attr(region.El(), "id") == id {
			return region
		}
	}
	return nil
}

func (h *RegionHandler) serveRegion(w http.ResponseWriter, r *http.Request) {
	region, err := h.lookup(r.PathValue("name"))
	if err != nil {
		h.OnError(w, r, err)
		return
	}
	writeHTML(w, RegionHTML(region))
}

func (h *RegionHandler) emptyRegion(w http.ResponseWriter, r *http.Request) {
	region, err := h.lookup(r.PathValue("name"))
	if err != nil {
		h.OnError(w, r, err)
		return
	}
	region.Empty()
	writeHTML(w, RegionHTML(region))
}

func (h *RegionHandler) lookup(name string) (Region, error) {
	region, err := h.view.GetRegion(name)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, ErrRegionNotFound
	}
	return region, nil
}

// RegionHTML returns the markup a region currently holds. For a region
// whose element is swapped out by its child, that is the child's markup.
func RegionHTML(r Region) string {
	b := r.base()
	if !b.replaced {
		return dom.InnerHTML(b.el)
	}
	var sb strings.Builder
	for _, n := range b.nodes {
		sb.WriteString(dom.OuterHTML(n))
	}
	return sb.String()
}

func writeHTML(w http.ResponseWriter, markup string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, markup)
}
