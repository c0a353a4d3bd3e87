package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestImageService_ResizeImage(t *testing.T) {
	svc := NewImageService()
	ctx := context.Background()

	tests := []struct {
		name       string
		srcW, srcH int
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{name: "downscale wide", srcW: 4, srcH: 2, maxW: 2, maxH: 2, wantW: 2, wantH: 1},
		{name: "downscale tall", srcW: 2, srcH: 4, maxW: 2, maxH: 2, wantW: 1, wantH: 2},
		{name: "already fits", srcW: 3, srcH: 3, maxW: 8, maxH: 8, wantW: 3, wantH: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.ResizeImage(ctx, pngBytes(t, tt.srcW, tt.srcH), tt.maxW, tt.maxH)
			if err != nil {
				t.Fatalf("ResizeImage: %v", err)
			}
			img, err := jpeg.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("output is not a decodable JPEG: %v", err)
			}
			bounds := img.Bounds()
			if bounds.Dx() != tt.wantW || bounds.Dy() != tt.wantH {
				t.Errorf("resized to %dx%d, want %dx%d",
					bounds.Dx(), bounds.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestImageService_ResizeImage_BadInput(t *testing.T) {
	svc := NewImageService()
	if _, err := svc.ResizeImage(context.Background(), []byte("not an image"), 64, 64); err == nil {
		t.Error("expected error for undecodable input")
	}
}
