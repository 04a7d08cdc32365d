package hxregion

import "net/http"

// IsHTMX returns true if the request originated from HTMX.
//
// HTMX sends HX-Request: true on all requests. RegionHandler requires it
// for mutating methods.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted returns true if the request is a boosted navigation (hx-boost).
// Boosted requests want the whole page even when they carry HX-Target.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}

// TargetID returns the id attribute of the element that will receive the
// response (hx-target). Returns empty string if not present.
func TargetID(r *http.Request) string {
	return r.Header.Get("HX-Target")
}
