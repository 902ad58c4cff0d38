package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, _ := newTestCLI()
	srv := httptest.NewServer(newPreviewServer(c, exampleDesign, c.Logger).routes())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestServeComponents(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/components")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out []componentSummary
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 4 || out[1].Name != "feedline" || out[1].Sections != 9 {
		t.Errorf("components = %+v", out)
	}
}

func TestServeSVG(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		path   string
		status int
	}{
		{"/design.svg", http.StatusOK},
		{"/components/RES%201.svg", http.StatusOK},
		{"/components/border.svg", http.StatusOK},
		{"/components/nope.svg", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv, tt.path)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.status == http.StatusOK {
				if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
					t.Errorf("Content-Type = %q", ct)
				}
				if !strings.HasPrefix(body, "<svg") {
					t.Error("body is not SVG")
				}
			}
		})
	}
}

func TestServeDesignJSON(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/design.json")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"design": "chip-a"`) {
		t.Error("design name missing from JSON")
	}
}

func TestServeMissingDesign(t *testing.T) {
	c, _ := newTestCLI()
	srv := httptest.NewServer(newPreviewServer(c, "does-not-exist.toml", c.Logger).routes())
	defer srv.Close()
	resp, _ := get(t, srv, "/design.svg")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}
