// Package hxregionecho mounts hxregion views on the Echo framework.
//
// Serve a view's regions as htmx partials under a prefix:
//
//	e := echo.New()
//	hxregionecho.Mount(e, "/_r", view)
//
// Or on a group, sharing its middleware:
//
//	g := e.Group("/app", authMiddleware)
//	hxregionecho.MountGroup(g, "/_r", view)
package hxregionecho

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxregion"
)

// Option configures Mount and MountGroup.
type Option func(*options)

type options struct {
	onError func(http.ResponseWriter, *http.Request, error)
}

// WithErrorHandler replaces the handler's default error mapping.
func WithErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) Option {
	return func(o *options) {
		o.onError = fn
	}
}

// Mount serves view's regions on an Echo instance under prefix. Both
// {prefix} and {prefix}/ serve the whole view.
//
//	GET    {prefix}/        the whole view
//	GET    {prefix}/{name}  one region's content
//	DELETE {prefix}/{name}  empty a region (htmx requests only)
func Mount(e *echo.Echo, prefix string, view *hxregion.View, opts ...Option) *hxregion.RegionHandler {
	h := newHandler(view, opts)
	for _, path := range routePaths(prefix) {
		e.Any(path, wrap(h))
	}
	return h
}

// MountGroup serves view's regions on an Echo group under prefix, so the
// routes run behind the group's middleware.
func MountGroup(g *echo.Group, prefix string, view *hxregion.View, opts ...Option) *hxregion.RegionHandler {
	h := newHandler(view, opts)
	for _, path := range routePaths(prefix) {
		g.Any(path, wrap(h))
	}
	return h
}

func newHandler(view *hxregion.View, opts []Option) *hxregion.RegionHandler {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	h := hxregion.NewHandler(view)
	if o.onError != nil {
		h.OnError = o.onError
	}
	return h
}

// routePaths returns the bare prefix and the prefix with a wildcard tail.
// An empty prefix mounts at the root and needs only the wildcard.
func routePaths(prefix string) []string {
	base := strings.TrimSuffix(prefix, "/")
	if base == "" {
		return []string{"/*"}
	}
	return []string{base, base + "/*"}
}

// wrap hands the request to h with the path reduced to the part after the
// mount prefix.
func wrap(h http.Handler) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request().Clone(c.Request().Context())
		req.URL.Path = "/" + c.Param("*")
		req.URL.RawPath = ""
		h.ServeHTTP(c.Response(), req)
		return nil
	}
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hxregionecho.Render(c, myTemplate())
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}

// RenderView writes a view's full markup to the Echo response.
func RenderView(c echo.Context, view *hxregion.View) error {
	markup, err := view.HTML()
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, markup)
}
