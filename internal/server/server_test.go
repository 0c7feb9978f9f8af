package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pielabel/pkg/cache"
	"github.com/matzehuels/pielabel/pkg/measure"
	"github.com/matzehuels/pielabel/pkg/pipeline"
)

const trafficChart = `{
	"title": "Traffic",
	"width": 400,
	"height": 300,
	"slices": [
		{"name": "Search", "value": 50},
		{"name": "Direct", "value": 30},
		{"name": "Social", "value": 20}
	]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(store, nil, logger)
	runner.Measurer, runner.MeasurerName = measure.Approx{}, "approx"

	ts := httptest.NewServer(New(runner, logger).Handler())
	t.Cleanup(func() {
		ts.Close()
		runner.Close()
	})
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

func TestRenderSVGCaches(t *testing.T) {
	ts := newTestServer(t)

	first := post(t, ts.URL+"/v1/render", trafficChart)
	if first.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", first.StatusCode)
	}
	if ct := first.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := first.Header.Get(HeaderCache); got != "miss" {
		t.Errorf("first %s = %q, want miss", HeaderCache, got)
	}
	if got := first.Header.Get(HeaderDrawn); got != "3" {
		t.Errorf("%s = %q, want 3", HeaderDrawn, got)
	}
	body, _ := io.ReadAll(first.Body)
	if !bytes.Contains(body, []byte("<svg")) {
		t.Errorf("body is not svg: %.80s", body)
	}

	second := post(t, ts.URL+"/v1/render?format=svg", trafficChart)
	if got := second.Header.Get(HeaderCache); got != "hit" {
		t.Errorf("second %s = %q, want hit", HeaderCache, got)
	}
	again, _ := io.ReadAll(second.Body)
	if !bytes.Equal(body, again) {
		t.Error("cached artifact differs from first render")
	}
}

func TestRenderJSONWithOverrides(t *testing.T) {
	ts := newTestServer(t)

	body := strings.TrimSuffix(strings.TrimSpace(trafficChart), "}") +
		`, "config": {"skip_overlap": true}, "style": {"hide_percent": true}}`
	resp := post(t, ts.URL+"/v1/render?format=json", body)
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, msg)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var out struct {
		Mode   string `json:"mode"`
		Labels []struct {
			Rows []struct {
				Text string `json:"text"`
			} `json:"rows"`
		} `json:"labels"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Mode != "skip-overlap" {
		t.Errorf("mode = %q, want skip-overlap", out.Mode)
	}
	for _, l := range out.Labels {
		if len(l.Rows) != 1 {
			t.Errorf("rows = %+v, want name only", l.Rows)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		url  string
		body string
		code string
	}{
		{"unknown format", "/v1/render?format=gif", trafficChart, "INVALID_FORMAT"},
		{"malformed body", "/v1/render", `{"width":`, "INVALID_INPUT"},
		{"unknown field", "/v1/render", `{"width": 10, "height": 10, "colour": "red"}`, "INVALID_INPUT"},
		{"bad canvas", "/v1/render", `{"width": 0, "height": 10, "slices": []}`, "INVALID_CHART"},
		{"bad config", "/v1/render", `{"width": 10, "height": 10, "config": {"line_height": -1}}`, "INVALID_CONFIG"},
		{"hit without chart", "/v1/hit", `{"x": 1, "y": 2}`, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.url, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var e struct {
				Error string `json:"error"`
				Code  string `json:"code"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
				t.Fatal(err)
			}
			if e.Code != tt.code || e.Error == "" {
				t.Errorf("error body = %+v, want code %s", e, tt.code)
			}
		})
	}
}

func TestHit(t *testing.T) {
	ts := newTestServer(t)

	type hitResponse struct {
		X      float64         `json:"x"`
		Y      float64         `json:"y"`
		Data   json.RawMessage `json:"data"`
		Source string          `json:"source"`
	}
	hit := func(x, y string) hitResponse {
		t.Helper()
		resp := post(t, ts.URL+"/v1/hit", `{"chart": `+trafficChart+`, "x": `+x+`, "y": `+y+`}`)
		if resp.StatusCode != http.StatusOK {
			msg, _ := io.ReadAll(resp.Body)
			t.Fatalf("status = %d: %s", resp.StatusCode, msg)
		}
		var out hitResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		return out
	}

	got := hit("210", "100")
	if got.Source != "slice" {
		t.Errorf("source = %q, want slice", got.Source)
	}
	var datum struct {
		Name    string  `json:"name"`
		Percent float64 `json:"percent"`
	}
	if err := json.Unmarshal(got.Data, &datum); err != nil {
		t.Fatal(err)
	}
	if datum.Name != "Search" || datum.Percent != 0.5 {
		t.Errorf("datum = %+v", datum)
	}

	miss := hit("200", "5")
	if miss.Source != "" || string(miss.Data) != "null" {
		t.Errorf("miss = %+v (data %s)", miss, miss.Data)
	}
	if miss.X != 200 || miss.Y != 5 {
		t.Errorf("coordinates = (%v, %v)", miss.X, miss.Y)
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("%s = %q", RequestIDHeader, got)
	}
}
