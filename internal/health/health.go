// Package health serves liveness and readiness probes.
package health

import (
	"encoding/json"
	"net/http"
)

func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// Checker reports whether a dependency is usable right now.
type Checker func() error

// Readiness runs the registered dependency checks and reports the first
// failure by name.
func Readiness(checks map[string]Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		type resp struct {
			Status string `json:"status"`
			Failed string `json:"failed,omitempty"`
		}
		out := resp{Status: "ready"}
		for name, check := range checks {
			if err := check(); err != nil {
				out = resp{Status: "not_ready", Failed: name}
				break
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if out.Status != "ready" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}
