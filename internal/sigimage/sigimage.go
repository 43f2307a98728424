// Package sigimage converts between stored signature text (base64 or data URI)
// and bitmaps ready to be embedded in a PDF.
package sigimage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrEmpty is returned when there is no signature data at all.
var ErrEmpty = errors.New("sigimage: empty signature")

// Decode turns raw base64 or a data URI ("data:image/png;base64,...") into an image.
// It never panics; on any failure the image is nil.
func Decode(s string) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("sigimage: decode panic: %v", r)
		}
	}()
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmpty
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
		if err != nil {
			return nil, fmt.Errorf("sigimage: base64: %w", err)
		}
	}
	img, _, err = image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("sigimage: image: %w", err)
	}
	return img, nil
}

// Load reads an image file. A missing file yields an error matching fs.ErrNotExist.
func Load(path string) (image.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("sigimage: %s: %w", path, err)
	}
	return img, nil
}

// Flatten draws img over an opaque white canvas of the same bounds.
func Flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// Thumbnail downscales img to at most maxWidth pixels wide, keeping the aspect ratio.
// Smaller images are returned unchanged.
func Thumbnail(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// EncodePNG flattens img and encodes it as an 8-bit PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Flatten(img)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeDataURI is the storage form of a signature.
func EncodeDataURI(img image.Image) (string, error) {
	b, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(b), nil
}

// IsBlank reports whether img has no visible stroke: every pixel is either
// fully transparent or white.
func IsBlank(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			if r != 0xffff || g != 0xffff || bl != 0xffff {
				return false
			}
		}
	}
	return true
}

// Normalize decodes a submitted signature and re-encodes it as a PNG data URI.
func Normalize(s string) (string, error) {
	img, err := Decode(s)
	if err != nil {
		return "", err
	}
	return EncodeDataURI(img)
}
