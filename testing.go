package hxregion

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/pthm/hxregion/lib/dom"
)

// TestResult holds rendered output for assertions in tests.
type TestResult struct {
	HTML       string
	StatusCode int
	Headers    http.Header
}

// TestRender renders v (if it is not rendered yet) and returns its markup.
//
//	result, err := hxregion.TestRender(view)
//	if !result.HTMLContains(`<main id="main">`) {
//	    t.Fatal("missing main region")
//	}
func TestRender(v *View) (*TestResult, error) {
	markup, err := v.HTML()
	if err != nil {
		return nil, err
	}
	return &TestResult{
		HTML:       markup,
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestRegion returns the markup held by the named region of v.
func TestRegion(v *View, name string) (*TestResult, error) {
	region, err := v.GetRegion(name)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, ErrRegionNotFound
	}
	return &TestResult{
		HTML:       RegionHTML(region),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestRequest sends a request through h, marked as an HTMX request.
//
//	result := hxregion.TestRequest(hxregion.NewHandler(view), http.MethodGet, "/main")
func TestRequest(h http.Handler, method, target string) *TestResult {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("HX-Request", "true")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// Find returns the markup of the first element matching selector, or "".
func (r *TestResult) Find(selector string) string {
	nodes, err := dom.ParseFragment(strings.NewReader(r.HTML), nil)
	if err != nil {
		return ""
	}
	root := dom.NewElement("div")
	dom.Append(root, nodes)
	return dom.OuterHTML(dom.Find(root, selector))
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// HasHeader checks if a header is set with the given value.
func (r *TestResult) HasHeader(key, value string) bool {
	return r.Headers.Get(key) == value
}
