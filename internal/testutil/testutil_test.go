package testutil

import (
	"net/http"
	"testing"
)

func TestServe(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(r.Method + " " + r.URL.Path))
	})

	rec := Serve(h, http.MethodGet, "/grid.json")
	AssertStatusCode(t, rec.Code, http.StatusTeapot)
	AssertContentType(t, rec, "text/plain")
	if got := rec.Body.String(); got != "GET /grid.json" {
		t.Errorf("body = %q", got)
	}
}
