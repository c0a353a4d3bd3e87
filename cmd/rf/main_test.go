package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/raster-foundry/raster-foundry-go-client/internal/config"
)

func TestTileAt(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		zoom     int
		wantX    int
		wantY    int
	}{
		{name: "origin", lat: 0, lng: 0, zoom: 1, wantX: 1, wantY: 1},
		{name: "antimeridian clamps to last column", lat: 0, lng: 180, zoom: 2, wantX: 3, wantY: 2},
		{name: "far north clamps to first row", lat: 89, lng: 0, zoom: 2, wantX: 2, wantY: 0},
		{name: "far south clamps to last row", lat: -89, lng: 0, zoom: 2, wantX: 2, wantY: 3},
		{name: "zoom zero single tile", lat: 45, lng: -120, zoom: 0, wantX: 0, wantY: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tileAt(tt.lat, tt.lng, tt.zoom)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("tileAt(%v, %v, %d) = (%d, %d), want (%d, %d)",
					tt.lat, tt.lng, tt.zoom, x, y, tt.wantX, tt.wantY)
			}
			n := 1 << uint(tt.zoom)
			if x < 0 || x >= n || y < 0 || y >= n {
				t.Errorf("tile (%d, %d) outside the %dx%d grid", x, y, n, n)
			}
		})
	}
}

func testTile(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test tile: %v", err)
	}
	return buf.Bytes()
}

func TestPreviewImage_ConvertsWhenEnabled(t *testing.T) {
	settings := config.DefaultSettings()
	settings.ConvertPreviewToJPG = true
	settings.TilePreviewMaxSize = 4

	out, err := previewImage(context.Background(), testTile(t), settings)
	if err != nil {
		t.Fatalf("previewImage: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a decodable JPEG: %v", err)
	}
	if b := img.Bounds(); b.Dx() > 4 || b.Dy() > 4 {
		t.Errorf("preview is %dx%d, want at most 4x4", b.Dx(), b.Dy())
	}
}

func TestPreviewImage_PassesThroughWhenDisabled(t *testing.T) {
	settings := config.DefaultSettings()
	settings.ConvertPreviewToJPG = false

	tile := testTile(t)
	out, err := previewImage(context.Background(), tile, settings)
	if err != nil {
		t.Fatalf("previewImage: %v", err)
	}
	if !bytes.Equal(out, tile) {
		t.Error("expected the raw tile bytes when conversion is disabled")
	}
}
