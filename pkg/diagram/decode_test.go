package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/nnetplot/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"toml", FormatTOML, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{" json ", FormatJSON, false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, err := FormatFromPath("nets/qnet.toml"); err != nil || f != FormatTOML {
		t.Errorf("FormatFromPath(.toml) = %q, %v", f, err)
	}
	if f, err := FormatFromPath("net.yml"); err != nil || f != FormatYAML {
		t.Errorf("FormatFromPath(.yml) = %q, %v", f, err)
	}
	if _, err := FormatFromPath("Makefile"); err == nil {
		t.Error("FormatFromPath without extension should fail")
	}
}

func TestFormatFromContentType(t *testing.T) {
	tests := []struct {
		ct   string
		want Format
		ok   bool
	}{
		{"application/toml", FormatTOML, true},
		{"application/x-yaml", FormatYAML, true},
		{"application/json; charset=utf-8", FormatJSON, true},
		{"text/plain", "", false},
	}
	for _, tt := range tests {
		got, ok := FormatFromContentType(tt.ct)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FormatFromContentType(%q) = %q, %v; want %q, %v", tt.ct, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadAllFormats(t *testing.T) {
	for _, name := range []string{"qnet.toml", "qnet.yaml", "qnet.json"} {
		t.Run(name, func(t *testing.T) {
			doc, err := Load(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if doc.Title != "Q-network" {
				t.Errorf("Title = %q", doc.Title)
			}
			if len(doc.Layers) != 5 || len(doc.Align) != 8 || len(doc.Connect) != 4 {
				t.Fatalf("got %d layers, %d aligns, %d connects", len(doc.Layers), len(doc.Align), len(doc.Connect))
			}
			if doc.Canvas.FontSize == nil || *doc.Canvas.FontSize != 20 {
				t.Errorf("FontSize = %v, want 20", doc.Canvas.FontSize)
			}
			a := doc.Align[1]
			if a.Ratio == nil || *a.Ratio != -0.12 {
				t.Errorf("align[1].ratio = %v, want -0.12", a.Ratio)
			}
			if doc.Align[2].Ratio != nil {
				t.Errorf("align[2].ratio should be omitted, got %v", *doc.Align[2].Ratio)
			}
			if got := doc.Layers[0].Annotations; len(got) != 1 || got[0] != "M" {
				t.Errorf("state annotations = %v", got)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name string
		f    Format
		data string
	}{
		{"toml", FormatTOML, "[[layers]]\nname = \"a\"\nrowz = 3\n"},
		{"yaml", FormatYAML, "layers:\n  - name: a\n    rowz: 3\n"},
		{"json", FormatJSON, `{"layers": [{"name": "a", "rowz": 3}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.f)
			if err == nil {
				t.Fatal("expected error for unknown key")
			}
			if !errors.Is(err, errors.ErrCodeInvalidDiagram) {
				t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidDiagram)
			}
			if tt.f == FormatTOML && !strings.Contains(err.Error(), "rowz") {
				t.Errorf("error %q should name the key", err)
			}
		})
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	if _, err := Decode([]byte("layers = ["), FormatTOML); err == nil {
		t.Error("expected toml syntax error")
	}
	if _, err := Decode([]byte("{"), FormatJSON); err == nil {
		t.Error("expected json syntax error")
	}
	if _, err := Decode([]byte("x"), Format("xml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format error = %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "qnet.toml"))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Decode(data, FormatTOML)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range []Format{FormatYAML, FormatJSON} {
		t.Run(string(f), func(t *testing.T) {
			out, err := Encode(doc, f)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			back, err := Decode(out, f)
			if err != nil {
				t.Fatalf("Decode(Encode): %v\n%s", err, out)
			}
			if len(back.Layers) != len(doc.Layers) || back.Layers[1].Activation != "sigmoid" {
				t.Errorf("round trip lost layers: %+v", back.Layers)
			}
			if back.Align[1].Ratio == nil || *back.Align[1].Ratio != -0.12 {
				t.Errorf("round trip lost ratio")
			}
		})
	}
}
