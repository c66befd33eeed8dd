package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestProcessImageReencodesAsJPEG(t *testing.T) {
	data := encodePNG(t, 640, 480)

	result, err := ProcessImage(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessImage returned error: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Fatalf("expected image/jpeg output, got %s", result.MIME)
	}

	img, err := jpeg.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("output does not decode as JPEG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 640 || bounds.Dy() != 480 {
		t.Fatalf("small image should keep its size, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessImageDownscalesLargeImages(t *testing.T) {
	data := encodePNG(t, 2048, 1024)

	result, err := ProcessImage(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ProcessImage returned error: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("output does not decode as JPEG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != MaxImageDimension || bounds.Dy() != MaxImageDimension/2 {
		t.Fatalf("expected %dx%d, got %dx%d",
			MaxImageDimension, MaxImageDimension/2, bounds.Dx(), bounds.Dy())
	}
}

func TestProcessImageRejectsNonImages(t *testing.T) {
	if _, err := ProcessImage(bytes.NewReader([]byte("not an image at all"))); err == nil {
		t.Fatal("expected an error for non-image input")
	}
}

func TestProcessImageRejectsGIF(t *testing.T) {
	// GIF87a header; only JPEG and PNG are accepted
	gif := []byte("GIF87a\x01\x00\x01\x00\x80\x00\x00")
	if _, err := ProcessImage(bytes.NewReader(gif)); err == nil {
		t.Fatal("expected GIF input to be rejected")
	}
}
