package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/nnetplot/pkg/errors"
	"github.com/matzehuels/nnetplot/pkg/pipeline"
)

const qnetFixture = "../../pkg/diagram/testdata/qnet.toml"

// copyFixture copies a document into a temp dir so outputs land there too.
func copyFixture(t *testing.T, src string) string {
	t.Helper()
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	dst := filepath.Join(t.TempDir(), filepath.Base(src))
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return dst
}

func testContext(t *testing.T) (context.Context, *CLI) {
	t.Helper()
	c := New(&bytes.Buffer{}, LogInfo)
	return withLogger(context.Background(), c.Logger), c
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "nets/qnet.toml", "nets/qnet"},
		{"", "qnet.yaml", "qnet"},
		{"out/q.svg", "qnet.toml", "out/q"},
		{"out/q.png", "qnet.toml", "out/q"},
		{"out/q", "qnet.toml", "out/q"},
		{"out/q.v2", "qnet.toml", "out/q.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"single explicit", "diagram.out", []string{"svg"}, map[string]string{"svg": "diagram.out"}},
		{"single derived", "", []string{"png"}, map[string]string{"png": "qnet.png"}},
		{"several", "out/q.svg", []string{"svg", "pdf"}, map[string]string{"svg": "out/q.svg", "pdf": "out/q.pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, "qnet.toml", tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("path[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestRunRenderWritesFiles(t *testing.T) {
	ctx, c := testContext(t)
	input := copyFixture(t, qnetFixture)

	ro := &renderOpts{formats: "svg,png,json", cache: cacheFlags{noCache: true}}
	if err := c.runRender(ctx, input, ro, &bytes.Buffer{}); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	base := filepath.Join(filepath.Dir(input), "qnet")
	for _, ext := range []string{".svg", ".png", ".json"} {
		info, err := os.Stat(base + ext)
		if err != nil {
			t.Errorf("missing output %s: %v", ext, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("output %s is empty", ext)
		}
	}
}

func TestRunRenderStdout(t *testing.T) {
	ctx, c := testContext(t)
	input := copyFixture(t, qnetFixture)

	var out bytes.Buffer
	ro := &renderOpts{output: "-", formats: "svg", cache: cacheFlags{noCache: true}}
	if err := c.runRender(ctx, input, ro, &out); err != nil {
		t.Fatalf("runRender: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("<svg")) {
		t.Error("stdout does not contain an SVG document")
	}
}

func TestRunRenderErrors(t *testing.T) {
	ctx, c := testContext(t)
	input := copyFixture(t, qnetFixture)
	dir := t.TempDir()

	txt := filepath.Join(dir, "net.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input string
		ro    renderOpts
		want  errors.Code
	}{
		{"missing file", filepath.Join(dir, "none.toml"), renderOpts{formats: "svg"}, errors.ErrCodeFileNotFound},
		{"unknown extension", txt, renderOpts{formats: "svg"}, errors.ErrCodeInvalidFormat},
		{"bad output format", input, renderOpts{formats: "gif"}, errors.ErrCodeInvalidFormat},
		{"bad viz type", input, renderOpts{formats: "svg", opts: pipeline.Options{VizType: "tower"}}, errors.ErrCodeInvalidVizType},
		{"stdout with two formats", input, renderOpts{output: "-", formats: "svg,png"}, errors.ErrCodeInvalidInput},
		{"empty path", "", renderOpts{formats: "svg"}, errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.ro.cache.noCache = true
			err := c.runRender(ctx, tt.input, &tt.ro, &bytes.Buffer{})
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestRunLayoutJSON(t *testing.T) {
	ctx, c := testContext(t)

	var out bytes.Buffer
	if err := c.runLayout(ctx, qnetFixture, true, &out); err != nil {
		t.Fatalf("runLayout: %v", err)
	}

	var report layoutReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.Layers) != 5 {
		t.Fatalf("layers = %d, want 5", len(report.Layers))
	}
	if report.Bounds == nil {
		t.Error("missing bounds")
	}

	want := map[string][2]float64{
		"state": {0, 0},
		"h1":    {1, 2.75},
		"h2":    {2, 2.75},
		"out":   {3, 0},
	}
	for _, l := range report.Layers {
		w, ok := want[l.Name]
		if !ok {
			continue
		}
		if !approx(l.Anchor.X, w[0]) || !approx(l.Anchor.Y, w[1]) {
			t.Errorf("%s anchor = (%.3f, %.3f), want (%.3f, %.3f)", l.Name, l.Anchor.X, l.Anchor.Y, w[0], w[1])
		}
	}
}

func TestLayerTable(t *testing.T) {
	ctx, c := testContext(t)
	var out bytes.Buffer
	if err := c.runLayout(ctx, qnetFixture, true, &out); err != nil {
		t.Fatal(err)
	}
	var report layoutReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatal(err)
	}

	tbl := layerTable(report.Layers)
	for _, s := range []string{"Layer", "state", "action", "(3.00, 0.00)"} {
		if !bytes.Contains([]byte(tbl), []byte(s)) {
			t.Errorf("table missing %q", s)
		}
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
