package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lineagemap/pkg/graph"
	"github.com/matzehuels/lineagemap/pkg/pipeline"
	"github.com/matzehuels/lineagemap/pkg/store"
)

const lovelace = `{
  "people": [
    {"id": "byron", "name": "Lord Byron", "born": "1788"},
    {"id": "milbanke", "name": "Anne Isabella Milbanke"},
    {"id": "ada", "name": "Ada Lovelace", "born": "1815", "died": "1852"}
  ],
  "relationships": [
    {"parentId": "byron", "childId": "ada"},
    {"parentId": "milbanke", "childId": "ada"},
    {"parentId": "ada", "childId": "ghost"}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(Options{
		Store:  fs,
		Runner: pipeline.NewRunner(nil, nil, logger),
		Logger: logger,
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}

func decodeError(t *testing.T, data []byte) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("error body %q: %v", data, err)
	}
	return body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, data := do(t, http.MethodGet, ts.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), `"ok"`) || !strings.Contains(string(data), `"version"`) {
		t.Errorf("healthz = %d %s", resp.StatusCode, data)
	}
}

func TestTreeLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp, data := do(t, http.MethodGet, ts.URL+"/api/tree/lovelace", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing family = %d, want 404", resp.StatusCode)
	}
	if body := decodeError(t, data); body.Code != "FAMILY_NOT_FOUND" || !strings.Contains(body.Error, "family_lovelace.json") {
		t.Errorf("not found body = %+v", body)
	}

	resp, data = do(t, http.MethodPut, ts.URL+"/api/tree/lovelace", lovelace)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT = %d %s", resp.StatusCode, data)
	}
	var put putResponse
	if err := json.Unmarshal(data, &put); err != nil {
		t.Fatal(err)
	}
	if put.People != 3 || len(put.Warnings) != 1 || !strings.Contains(put.Warnings[0], "ghost") {
		t.Errorf("PUT response = %+v", put)
	}

	resp, data = do(t, http.MethodGet, ts.URL+"/api/tree/lovelace", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), "Ada Lovelace") {
		t.Errorf("GET tree = %d %s", resp.StatusCode, data)
	}

	resp, data = do(t, http.MethodGet, ts.URL+"/api/tree/lovelace/layout", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("layout = %d %s", resp.StatusCode, data)
	}
	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("layout body: %v", err)
	}
	if l.Family != "lovelace" || l.Stats == nil || l.Stats.Persons != 4 {
		t.Errorf("layout family=%q stats=%+v", l.Family, l.Stats)
	}

	resp, data = do(t, http.MethodGet, ts.URL+"/api/tree/lovelace/svg?style=sepia&panzoom=true", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("svg = %d %s", resp.StatusCode, data)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(string(data), "style-sepia") {
		t.Error("svg should use the requested style")
	}
}

func TestPutRejects(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{"people":`, http.StatusUnprocessableEntity, "INVALID_FAMILY"},
		{"self parent", `{"people":[{"id":"a"}],"relationships":[{"parentId":"a","childId":"a"}]}`, http.StatusUnprocessableEntity, "SELF_PARENT"},
		{"cycle", `{"people":[{"id":"a"},{"id":"b"}],"relationships":[{"parentId":"a","childId":"b"},{"parentId":"b","childId":"a"}]}`, http.StatusUnprocessableEntity, "CYCLE"},
	}
	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, http.MethodPut, ts.URL+"/api/tree/broken", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.status, data)
			}
			if body := decodeError(t, data); body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
		})
	}

	resp, _ := do(t, http.MethodGet, ts.URL+"/api/tree/broken", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Error("rejected documents must not be stored")
	}
}

func TestBadQuery(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		query string
		code  string
	}{
		{"?style=neon", "INVALID_STYLE"},
		{"?unions=maybe", "INVALID_INPUT"},
		{"?viz=tower", "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, data := do(t, http.MethodGet, ts.URL+"/api/sample/stark/svg"+tt.query, "")
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if body := decodeError(t, data); body.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
		})
	}
}

func TestVisibility(t *testing.T) {
	ts := newTestServer(t)
	if resp, data := do(t, http.MethodPut, ts.URL+"/api/tree/lovelace", lovelace); resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT = %d %s", resp.StatusCode, data)
	}

	resp, data := do(t, http.MethodPost, ts.URL+"/api/tree/lovelace/visibility", `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing public = %d, want 400", resp.StatusCode)
	}

	resp, data = do(t, http.MethodPost, ts.URL+"/api/tree/lovelace/visibility", `{"public":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("visibility = %d %s", resp.StatusCode, data)
	}
	var vis store.Visibility
	if err := json.Unmarshal(data, &vis); err != nil {
		t.Fatal(err)
	}
	if !vis.Public || vis.Slug == "" {
		t.Fatalf("visibility = %+v", vis)
	}

	resp, data = do(t, http.MethodGet, ts.URL+"/api/public/"+vis.Slug, "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), "Lord Byron") {
		t.Errorf("public = %d %s", resp.StatusCode, data)
	}

	do(t, http.MethodPost, ts.URL+"/api/tree/lovelace/visibility", `{"public":false}`)
	resp, _ = do(t, http.MethodGet, ts.URL+"/api/public/"+vis.Slug, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("private family = %d, want 404", resp.StatusCode)
	}
}

func TestSamples(t *testing.T) {
	ts := newTestServer(t)

	resp, data := do(t, http.MethodGet, ts.URL+"/api/samples", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), "stark") {
		t.Errorf("samples = %d %s", resp.StatusCode, data)
	}

	resp, data = do(t, http.MethodGet, ts.URL+"/api/sample/stark/tree", "")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(data), "people") {
		t.Errorf("sample tree = %d %s", resp.StatusCode, data)
	}

	resp, data = do(t, http.MethodGet, ts.URL+"/api/sample/stark/layout", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sample layout = %d %s", resp.StatusCode, data)
	}
	if _, err := graph.UnmarshalLayout(data); err != nil {
		t.Errorf("sample layout: %v", err)
	}

	resp, data = do(t, http.MethodGet, ts.URL+"/api/sample/targaryen/tree", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown sample = %d, want 404", resp.StatusCode)
	}
	if body := decodeError(t, data); body.Code != "SAMPLE_NOT_FOUND" {
		t.Errorf("code = %q", body.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)
	resp, data := do(t, http.MethodGet, ts.URL+"/api/nope", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if body := decodeError(t, data); body.Code != "NOT_FOUND" {
		t.Errorf("code = %q", body.Code)
	}
}
