package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageService provides image processing operations for tile previews.
//
// Rendered project tiles come back from the tile server as PNGs;
// ImageService resizes them to fit maximum dimensions and re-encodes
// them as JPEG for compact previews.
//
// Example usage:
//
//	svc := NewImageService()
//
//	tileData, _ := client.FetchTile(ctx, project, z, x, y)
//
//	// Resize to max 512x512 and convert to JPEG
//	preview, _ := svc.ResizeImage(ctx, tileData, 512, 512)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ResizeImage resizes an image to fit within the specified maximum
// dimensions.
//
// The aspect ratio is preserved. If the image is already smaller than
// the maximum dimensions, it will still be re-encoded as JPEG.
//
// Parameters:
//   - ctx: Context for cancellation (currently unused)
//   - data: Original image data (PNG, JPEG, etc.)
//   - maxWidth: Maximum width in pixels
//   - maxHeight: Maximum height in pixels
//
// Returns the resized image as JPEG-encoded bytes.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// Resize to fit within 512x512, maintaining aspect ratio
//	preview, err := svc.ResizeImage(ctx, tileData, 512, 512)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Calculate new dimensions maintaining aspect ratio
	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			// Height is the limiting factor
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			// Width is the limiting factor
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	// Create new image with calculated dimensions
	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	// Use Catmull-Rom for high-quality scaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	// Encode to JPEG with high quality
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
