package submit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/atlascene/layer-composer/internal/layer"
)

func testConfig() layer.Config {
	loc := layer.NewLocator(layer.KindCSV)
	loc.SetMode(layer.ModeURL)
	loc.SetRaw("https://host/pts.csv")
	return layer.Build(loc, "", layer.Params{CSV: &layer.CSVParams{LatColumn: "lat", LngColumn: "lng"}})
}

func newClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	zl := zerolog.New(io.Discard)
	c, err := New(srv.URL, srv.Client(), &zl)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSubmit_PostsConfig(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := newClient(t, srv).Submit(context.Background(), "scene-1", testConfig())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if gotPath != "/api/scenes/scene-1/layers" {
		t.Fatalf("path %q", gotPath)
	}
	if gotBody["layerType"] != "simple" || gotBody["title"] != "pts" {
		t.Fatalf("body %v", gotBody)
	}
}

func TestSubmit_RejectionSurfacesOpaquely(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"scene is locked"}`, http.StatusConflict)
	}))
	defer srv.Close()

	err := newClient(t, srv).Submit(context.Background(), "scene-1", testConfig())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusConflict {
		t.Fatalf("status %d", apiErr.Status)
	}
	if apiErr.Body != `{"error":"scene is locked"}` {
		t.Fatalf("body %q", apiErr.Body)
	}
}

func TestSubmit_TransportErrorWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // refuse connections

	err := newClient(t, srv).Submit(context.Background(), "scene-1", testConfig())
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure must not look like an API rejection: %v", err)
	}
}
