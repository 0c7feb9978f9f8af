package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/pielabel/pkg/pielabel"
	"github.com/matzehuels/pielabel/pkg/render"
)

const testChartJSON = `{
	"title": "Traffic",
	"width": 400,
	"height": 300,
	"slices": [
		{"name": "Search", "value": 50},
		{"name": "Direct", "value": 30},
		{"name": "Social", "value": 20, "note": "organic"}
	]
}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		n      int
		want   string
	}{
		{"derived from input", "", "charts/sales.json", 1, "charts/sales"},
		{"derived from toml input", "", "sales.toml", 2, "sales"},
		{"explicit single file", "out/pie.svg", "sales.json", 1, "out/pie.svg"},
		{"explicit base for many", "out/pie", "sales.json", 2, "out/pie"},
		{"format extension stripped for many", "out/pie.svg", "sales.json", 2, "out/pie"},
		{"other extension kept for many", "out/pie.v2", "sales.json", 2, "out/pie.v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputBase(tt.output, tt.input, tt.n); got != tt.want {
				t.Errorf("outputBase(%q, %q, %d) = %q, want %q", tt.output, tt.input, tt.n, got, tt.want)
			}
		})
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		base string
		f    render.Format
		want string
	}{
		{"out/pie", render.FormatSVG, "out/pie.svg"},
		{"out/pie.svg", render.FormatSVG, "out/pie.svg"},
		{"out/pie.SVG", render.FormatSVG, "out/pie.SVG"},
		{"out/pie.svg", render.FormatJSON, "out/pie.svg.json"},
	}

	for _, tt := range tests {
		if got := artifactPath(tt.base, tt.f); got != tt.want {
			t.Errorf("artifactPath(%q, %s) = %q, want %q", tt.base, tt.f, got, tt.want)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := writeFile(t, dir, "traffic.json", testChartJSON)

	if _, err := runCLI(t, "render", input, "--no-cache", "-f", "svg,json", "-o", filepath.Join(dir, "out", "traffic")); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "out", "traffic.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("organic")) {
		t.Errorf("svg output missing content: %.120s", svg)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out", "traffic.json"))
	if err != nil {
		t.Fatal(err)
	}
	var layout struct {
		Title  string                `json:"title"`
		Mode   pielabel.Mode         `json:"mode"`
		Labels []pielabel.DrawnLabel `json:"labels"`
	}
	if err := json.Unmarshal(data, &layout); err != nil {
		t.Fatal(err)
	}
	if layout.Title != "Traffic" || layout.Mode != pielabel.ModeStack || len(layout.Labels) != 3 {
		t.Errorf("layout = %s %s with %d labels", layout.Title, layout.Mode, len(layout.Labels))
	}
}

func TestRenderCommandOptions(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := writeFile(t, dir, "traffic.json", testChartJSON)

	if _, err := runCLI(t, "render", input, "--no-cache", "-f", "json", "--skip-overlap", "--width", "600", "--title", "Visits"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "traffic.json"))
	if err != nil {
		t.Fatal(err)
	}
	var layout struct {
		Title string        `json:"title"`
		Width float64       `json:"width"`
		Mode  pielabel.Mode `json:"mode"`
	}
	if err := json.Unmarshal(data, &layout); err != nil {
		t.Fatal(err)
	}
	if layout.Title != "Visits" || layout.Width != 600 || layout.Mode != pielabel.ModeSkipOverlap {
		t.Errorf("layout = %+v", layout)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := writeFile(t, dir, "traffic.json", testChartJSON)
	bad := writeFile(t, dir, "bad.json", `{"width": -1, "height": 10}`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing chart", []string{"render", filepath.Join(dir, "nope.json"), "--no-cache"}, "FILE_NOT_FOUND"},
		{"invalid chart", []string{"render", bad, "--no-cache"}, "INVALID_CHART"},
		{"unknown format", []string{"render", input, "--no-cache", "-f", "gif"}, "INVALID_FORMAT"},
		{"bad line height", []string{"render", input, "--no-cache", "--line-height", "0"}, "INVALID_CONFIG"},
		{"no chart argument", []string{"render"}, "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestHitCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := writeFile(t, dir, "traffic.json", testChartJSON)

	out, err := runCLI(t, "hit", input, "--x", "210", "--y", "100", "--json")
	if err != nil {
		t.Fatalf("hit: %v", err)
	}
	var ev struct {
		Source string `json:"source"`
		Data   struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &ev); err != nil {
		t.Fatalf("hit output is not JSON: %v\n%s", err, out)
	}
	if ev.Source != string(pielabel.HitSlice) || ev.Data.Name != "Search" {
		t.Errorf("hit = %+v", ev)
	}

	if _, err := runCLI(t, "hit", input, "--x", "1"); err == nil {
		t.Error("hit without --y should fail")
	}
}
