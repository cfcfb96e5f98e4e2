package render

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><circle cx="5" cy="5" r="4"/></svg>`

func TestConvert(t *testing.T) {
	ctx := context.Background()

	if !ConverterAvailable() {
		_, err := ToPDF(ctx, []byte(tinySVG))
		if !errors.Is(err, ErrNoConverter) {
			t.Errorf("ToPDF without rsvg-convert: err = %v, want ErrNoConverter", err)
		}
		return
	}

	pdf, err := ToPDF(ctx, []byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("ToPDF output is not a PDF")
	}

	png, err := ToPNG(ctx, []byte(tinySVG), 2)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("ToPNG output is not a PNG")
	}
}
