package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodeTestPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestImportedTextureDecode_Embedded(t *testing.T) {
	tex := &ImportedTexture{
		Name: "diffuse",
		Data: encodeTestPNG(t, 2, 3, color.RGBA{R: 255, G: 128, B: 0, A: 255}),
	}

	pixels, width, height, err := tex.Decode()
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if width != 2 || height != 3 {
		t.Errorf("dimensions = %dx%d, want 2x3", width, height)
	}
	if len(pixels) != 2*3*4 {
		t.Errorf("len(pixels) = %d, want 24", len(pixels))
	}
	if pixels[0] != 255 || pixels[1] != 128 || pixels[2] != 0 || pixels[3] != 255 {
		t.Errorf("first pixel = % x, want ff 80 00 ff", pixels[:4])
	}
	if tex.Width != 2 || tex.Height != 3 {
		t.Errorf("texture dimensions not recorded: %dx%d", tex.Width, tex.Height)
	}
}

func TestImportedTextureDecode_FromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toon.png")
	if err := os.WriteFile(path, encodeTestPNG(t, 4, 1, color.RGBA{A: 255}), 0o644); err != nil {
		t.Fatal(err)
	}

	tex := &ImportedTexture{Name: "toon", Path: path}
	_, width, height, err := tex.Decode()
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if width != 4 || height != 1 {
		t.Errorf("dimensions = %dx%d, want 4x1", width, height)
	}
}

func TestImportedTextureDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		tex  *ImportedTexture
	}{
		{"nil texture", nil},
		{"no data or path", &ImportedTexture{Name: "empty"}},
		{"corrupt data", &ImportedTexture{Data: []byte("not an image")}},
		{"missing file", &ImportedTexture{Path: "/nonexistent/texture.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := tt.tex.Decode(); err == nil {
				t.Error("Decode() = nil error, want failure")
			}
		})
	}
}

func TestWhitePixel(t *testing.T) {
	w := WhitePixel()
	if w.Width != 1 || w.Height != 1 {
		t.Errorf("dimensions = %dx%d, want 1x1", w.Width, w.Height)
	}
	if !bytes.Equal(w.Pixels, []byte{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("pixels = % x, want opaque white", w.Pixels)
	}
}
