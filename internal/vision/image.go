package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// EncodeJPEG re-encodes img as JPEG, downscaling so neither side exceeds
// maxSize.  Frames are shrunk before upload to keep recognizer round-trips
// cheap; detection quality is the sidecar's problem, not ours.
func EncodeJPEG(img image.Image, maxSize int) ([]byte, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if maxSize > 0 && (width > maxSize || height > maxSize) {
		var newW, newH int
		if width > height {
			newW = maxSize
			newH = height * maxSize / width
		} else {
			newH = maxSize
			newW = width * maxSize / height
		}
		resized := image.NewRGBA(image.Rect(0, 0, newW, newH))
		draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)
		img = resized
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// CropRegion copies the face region out of img.  Regions are clamped to the
// image bounds; a region fully outside them yields an empty image.
func CropRegion(img image.Image, r Region) image.Image {
	b := img.Bounds()
	rect := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H).Add(b.Min).Intersect(b)

	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Copy(out, image.Point{}, img, rect, draw.Src, nil)
	return out
}

// DecodeImage decodes JPEG, PNG, or BMP bytes.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
