package hxregionecho

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxregion"
)

func raw(markup string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, markup)
		return err
	})
}

func newView(t *testing.T) *hxregion.View {
	t.Helper()
	v, err := hxregion.NewView(hxregion.ViewConfig{
		Template: raw(`<main id="main"></main>`),
		ID:       "page",
		Regions:  map[string]any{"main": "#main"},
	})
	if err != nil {
		t.Fatalf("NewView() error = %v", err)
	}
	if _, err := v.ShowChildView("main", raw(`<p>hello</p>`)); err != nil {
		t.Fatalf("ShowChildView() error = %v", err)
	}
	return v
}

func serve(e *echo.Echo, method, target string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMount(t *testing.T) {
	e := echo.New()
	if h := Mount(e, "/_r", newView(t)); h == nil {
		t.Fatal("Mount returned nil handler")
	}

	rec := serve(e, http.MethodGet, "/_r/main", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /_r/main status = %d", rec.Code)
	}
	if rec.Body.String() != "<p>hello</p>" {
		t.Errorf("GET /_r/main body = %q", rec.Body.String())
	}

	for _, target := range []string{"/_r/", "/_r"} {
		rec = serve(e, http.MethodGet, target, false)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `<div id="page">`) {
			t.Errorf("GET %s = %d %q", target, rec.Code, rec.Body.String())
		}
	}

	if rec := serve(e, http.MethodGet, "/_r/nope", false); rec.Code != http.StatusNotFound {
		t.Errorf("GET /_r/nope status = %d, want 404", rec.Code)
	}
}

func TestMountDeleteRequiresHTMX(t *testing.T) {
	e := echo.New()
	v := newView(t)
	Mount(e, "/_r/", v)

	if rec := serve(e, http.MethodDelete, "/_r/main", false); rec.Code != http.StatusForbidden {
		t.Fatalf("DELETE without HX-Request status = %d, want 403", rec.Code)
	}
	if v.GetChildView("main") == nil {
		t.Fatal("region emptied by a non-htmx request")
	}

	if rec := serve(e, http.MethodDelete, "/_r/main", true); rec.Code != http.StatusOK {
		t.Fatalf("DELETE status = %d", rec.Code)
	}
	if v.GetChildView("main") != nil {
		t.Error("region not emptied")
	}
}

func TestMountGroup(t *testing.T) {
	e := echo.New()
	var seen bool
	g := e.Group("/app", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			seen = true
			return next(c)
		}
	})
	MountGroup(g, "/_r", newView(t))

	rec := serve(e, http.MethodGet, "/app/_r/main", false)
	if rec.Code != http.StatusOK || rec.Body.String() != "<p>hello</p>" {
		t.Fatalf("GET /app/_r/main = %d %q", rec.Code, rec.Body.String())
	}
	if !seen {
		t.Error("group middleware did not run")
	}
}

func TestWithErrorHandler(t *testing.T) {
	e := echo.New()
	Mount(e, "/_r", newView(t), WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
		w.WriteHeader(http.StatusGone)
	}))

	if rec := serve(e, http.MethodGet, "/_r/nope", false); rec.Code != http.StatusGone {
		t.Errorf("status = %d, want 410", rec.Code)
	}
}

func TestRenderView(t *testing.T) {
	e := echo.New()
	v := newView(t)
	e.GET("/", func(c echo.Context) error {
		return RenderView(c, v)
	})

	rec := serve(e, http.MethodGet, "/", false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<p>hello</p>") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestRender(t *testing.T) {
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return Render(c, raw(`<b>hi</b>`))
	})

	rec := serve(e, http.MethodGet, "/", false)
	if rec.Body.String() != "<b>hi</b>" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRoutePaths(t *testing.T) {
	tests := []struct {
		prefix string
		want   []string
	}{
		{"/_r", []string{"/_r", "/_r/*"}},
		{"/_r/", []string{"/_r", "/_r/*"}},
		{"", []string{"/*"}},
		{"/", []string{"/*"}},
	}
	for _, tt := range tests {
		got := routePaths(tt.prefix)
		if strings.Join(got, " ") != strings.Join(tt.want, " ") {
			t.Errorf("routePaths(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
	}
}
