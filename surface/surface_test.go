// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/annotate/geom"
)

var red = color.RGBA{R: 255, A: 255}

func rectPath(x0, y0, x1, y1 float64) *geom.Path {
	p := geom.NewPath()
	p.Rectangle(geom.RectFromPoints(geom.Pt(x0, y0), geom.Pt(x1, y1)))
	return p
}

// solid reports whether the pixel is (nearly) fully covered by red.
func solid(img *image.RGBA, x, y int) bool {
	c := img.RGBAAt(x, y)
	return c.A >= 250 && c.R == c.A && c.G == 0 && c.B == 0
}

func empty(img *image.RGBA, x, y int) bool {
	return img.RGBAAt(x, y).A == 0
}

func TestImageSurfaceFillPath(t *testing.T) {
	s := NewImageSurface(Options{Width: 20, Height: 20})
	s.FillPath(rectPath(5, 5, 15, 15), FillStyle{Color: red})
	img := s.Snapshot()

	if !solid(img, 10, 10) {
		t.Errorf("pixel (10,10) = %v, want red", img.RGBAAt(10, 10))
	}
	if !empty(img, 2, 2) {
		t.Errorf("pixel (2,2) = %v, want transparent", img.RGBAAt(2, 2))
	}
	if !empty(img, 17, 17) {
		t.Errorf("pixel (17,17) = %v, want transparent", img.RGBAAt(17, 17))
	}
}

func TestImageSurfaceScaleAndOrigin(t *testing.T) {
	s := NewImageSurface(Options{Width: 20, Height: 20, Scale: 2, Origin: geom.Pt(5, 5)})
	if s.Scale() != 2 || s.Origin() != geom.Pt(5, 5) {
		t.Fatalf("Scale(), Origin() = %v, %v, want 2, (5,5)", s.Scale(), s.Origin())
	}
	s.FillPath(rectPath(5, 5, 10, 10), FillStyle{Color: red})
	img := s.Snapshot()

	if !solid(img, 4, 4) {
		t.Errorf("pixel (4,4) = %v, want red", img.RGBAAt(4, 4))
	}
	if !solid(img, 9, 9) {
		t.Errorf("pixel (9,9) = %v, want red", img.RGBAAt(9, 9))
	}
	if !empty(img, 15, 15) {
		t.Errorf("pixel (15,15) = %v, want transparent", img.RGBAAt(15, 15))
	}

	m := DeviceMatrix(s)
	if got := m.TransformPoint(geom.Pt(7, 8)); got != geom.Pt(4, 6) {
		t.Errorf("DeviceMatrix().TransformPoint((7,8)) = %v, want (4,6)", got)
	}
}

func TestImageSurfaceClip(t *testing.T) {
	s := NewImageSurface(Options{Width: 20, Height: 20})
	s.SetClip(geom.NewRect(0, 0, 10, 20))
	s.FillPath(rectPath(0, 0, 20, 20), FillStyle{Color: red})
	img := s.Snapshot()

	if !solid(img, 5, 5) {
		t.Errorf("inside clip = %v, want red", img.RGBAAt(5, 5))
	}
	if !empty(img, 15, 5) {
		t.Errorf("outside clip = %v, want transparent", img.RGBAAt(15, 5))
	}

	s.ResetClip()
	s.FillPath(rectPath(0, 0, 20, 20), FillStyle{Color: red})
	if img := s.Snapshot(); !solid(img, 15, 5) {
		t.Errorf("after ResetClip = %v, want red", img.RGBAAt(15, 5))
	}
}

func TestImageSurfaceClear(t *testing.T) {
	s := NewImageSurface(Options{Width: 20, Height: 20})
	s.FillPath(rectPath(0, 0, 20, 20), FillStyle{Color: red})
	s.Clear(geom.NewRect(0, 0, 10, 10))
	img := s.Snapshot()

	if !empty(img, 5, 5) {
		t.Errorf("cleared pixel = %v, want transparent", img.RGBAAt(5, 5))
	}
	if !solid(img, 15, 15) {
		t.Errorf("kept pixel = %v, want red", img.RGBAAt(15, 15))
	}
}

func TestImageSurfaceDrawImage(t *testing.T) {
	green := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(green.Pix); i += 4 {
		green.Pix[i+1], green.Pix[i+3] = 255, 255
	}
	want := color.RGBA{G: 255, A: 255}

	s := NewImageSurface(Options{Width: 10, Height: 10})
	s.DrawImage(green, geom.Pt(2, 2), nil)
	img := s.Snapshot()
	if got := img.RGBAAt(3, 3); got != want {
		t.Errorf("pixel (3,3) = %v, want %v", got, want)
	}
	if !empty(img, 1, 1) || !empty(img, 6, 6) {
		t.Errorf("pixels outside the image were drawn")
	}

	// Clipped to the top-left quarter of the image.
	s = NewImageSurface(Options{Width: 10, Height: 10})
	s.DrawImage(green, geom.Pt(2, 2), rectPath(2, 2, 4, 4))
	img = s.Snapshot()
	if got := img.RGBAAt(2, 2); got != want {
		t.Errorf("clipped pixel (2,2) = %v, want %v", got, want)
	}
	if !empty(img, 5, 5) {
		t.Errorf("pixel (5,5) = %v, want transparent", img.RGBAAt(5, 5))
	}
}

func TestImageSurfaceDrawImageKeepsSourceBounds(t *testing.T) {
	// A sub-image keeps its position relative to the source origin.
	full := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range full.Pix {
		full.Pix[i] = 255
	}
	sub := full.SubImage(image.Rect(6, 6, 8, 8))

	s := NewImageSurface(Options{Width: 10, Height: 10})
	s.DrawImage(sub, geom.Pt(0, 0), nil)
	img := s.Snapshot()
	if got := img.RGBAAt(7, 7); got.A != 255 {
		t.Errorf("pixel (7,7) alpha = %d, want 255", got.A)
	}
	if !empty(img, 2, 2) {
		t.Errorf("pixel (2,2) = %v, want transparent", img.RGBAAt(2, 2))
	}
}

func TestImageSurfaceDrawMask(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 3, 3))
	for i := range mask.Pix {
		mask.Pix[i] = 255
	}
	mask.Pix[0] = 0

	s := NewImageSurface(Options{Width: 10, Height: 10})
	s.DrawMask(mask, geom.Pt(1, 1), color.Black)
	img := s.Snapshot()

	tests := []struct {
		x, y  int
		alpha uint8
	}{
		{1, 1, 0},
		{2, 2, 255},
		{3, 3, 255},
		{4, 4, 0},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y).A; got != tt.alpha {
			t.Errorf("alpha at (%d,%d) = %d, want %d", tt.x, tt.y, got, tt.alpha)
		}
	}
}

func TestImageSurfaceDrawText(t *testing.T) {
	s := NewImageSurface(Options{Width: 40, Height: 24, Scale: 2})
	s.DrawText("W", DefaultFace(8), geom.Pt(2, 10), color.Black)
	img := s.Snapshot()

	inked := false
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			inked = true
			break
		}
	}
	if !inked {
		t.Error("DrawText() drew nothing")
	}
}

func TestImageSurfaceClosed(t *testing.T) {
	s := NewImageSurface(Options{Width: 10, Height: 10})
	if err := s.Close(); err != nil {
		t.Fatalf("Close() = %v, want nil", err)
	}
	s.FillPath(rectPath(0, 0, 10, 10), FillStyle{Color: red})
	if img := s.Snapshot(); !empty(img, 5, 5) {
		t.Errorf("closed surface was drawn on")
	}
}

func TestImageSurfaceFromImage(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	s := NewImageSurfaceFromImage(dst, 1, geom.Point{})
	s.FillPath(rectPath(0, 0, 8, 8), FillStyle{Color: red})
	if !solid(dst, 4, 4) {
		t.Errorf("backing image pixel = %v, want red", dst.RGBAAt(4, 4))
	}
	if s.Image() != dst {
		t.Error("Image() does not return the backing image")
	}
}

func TestCoverage(t *testing.T) {
	bounds := image.Rect(0, 0, 10, 10)
	tests := []struct {
		name    string
		path    *geom.Path
		m       geom.Matrix
		wantNil bool
		at      image.Point
	}{
		{"inside", rectPath(2, 2, 6, 6), geom.Identity(), false, image.Pt(4, 4)},
		{"translated", rectPath(2, 2, 6, 6), geom.Translate(2, 0), false, image.Pt(7, 4)},
		{"outside", rectPath(20, 20, 30, 30), geom.Identity(), true, image.Point{}},
		{"empty", geom.NewPath(), geom.Identity(), true, image.Point{}},
		{"nil", nil, geom.Identity(), true, image.Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coverage(tt.path, tt.m, bounds)
			if (got == nil) != tt.wantNil {
				t.Fatalf("Coverage() nil = %v, want %v", got == nil, tt.wantNil)
			}
			if got == nil {
				return
			}
			if !got.Bounds().In(bounds) {
				t.Errorf("Coverage().Bounds() = %v, want within %v", got.Bounds(), bounds)
			}
			if a := got.AlphaAt(tt.at.X, tt.at.Y).A; a < 250 {
				t.Errorf("coverage at %v = %d, want ~255", tt.at, a)
			}
		})
	}
}

func TestTextCoverage(t *testing.T) {
	mask := TextCoverage("Hi", DefaultFace(12), geom.Pt(1, 12), geom.Identity(), image.Rect(0, 0, 30, 16))
	if mask == nil {
		t.Fatal("TextCoverage() = nil")
	}
	if !slices.ContainsFunc(mask.Pix, func(a uint8) bool { return a > 0 }) {
		t.Error("TextCoverage() covered nothing")
	}
	if got := TextCoverage("", DefaultFace(12), geom.Point{}, geom.Identity(), image.Rect(0, 0, 4, 4)); got != nil {
		t.Errorf("TextCoverage(\"\") = %v, want nil", got)
	}
}

func TestLoadFace(t *testing.T) {
	face, err := LoadFace(goregular.TTF, 10)
	if err != nil {
		t.Fatalf("LoadFace() error = %v", err)
	}
	if face.Size() != 10 {
		t.Errorf("Size() = %v, want 10", face.Size())
	}

	for _, data := range [][]byte{nil, []byte("not a font")} {
		if _, err := LoadFace(data, 10); !errors.Is(err, ErrInvalidFont) {
			t.Errorf("LoadFace(%q) error = %v, want ErrInvalidFont", data, err)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if _, err := r.NewSurface(Options{}); !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("empty NewSurface() error = %v, want ErrNoBackendAvailable", err)
	}

	factory := func(opts Options) (Surface, error) { return NewImageSurface(opts), nil }
	r.Register("low", 1, factory, nil)
	r.Register("high", 5, factory, nil)
	r.Register("off", 9, factory, func() bool { return false })

	if got, want := r.List(), []string{"high", "low"}; !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	var notFound *BackendNotFoundError
	if _, err := r.NewSurfaceByName("missing", Options{}); !errors.As(err, &notFound) {
		t.Errorf("NewSurfaceByName(missing) error = %v, want BackendNotFoundError", err)
	}
	var unavailable *BackendUnavailableError
	if _, err := r.NewSurfaceByName("off", Options{}); !errors.As(err, &unavailable) {
		t.Errorf("NewSurfaceByName(off) error = %v, want BackendUnavailableError", err)
	}

	s, err := r.NewSurface(Options{Width: 3, Height: 4})
	if err != nil {
		t.Fatalf("NewSurface() error = %v", err)
	}
	if s.Width() != 3 || s.Height() != 4 || s.Scale() != 1 {
		t.Errorf("surface = %dx%d@%v, want 3x4@1", s.Width(), s.Height(), s.Scale())
	}

	r.Unregister("high")
	if got := r.List(); !slices.Equal(got, []string{"low"}) {
		t.Errorf("List() after Unregister = %v, want [low]", got)
	}
}

func TestGlobalImageBackend(t *testing.T) {
	if !slices.Contains(List(), ImageBackend) {
		t.Fatalf("List() = %v, want it to contain %q", List(), ImageBackend)
	}
	s, err := NewSurfaceByName(ImageBackend, Options{Width: 2, Height: 2, Scale: 2})
	if err != nil {
		t.Fatalf("NewSurfaceByName() error = %v", err)
	}
	if _, ok := s.(*ImageSurface); !ok {
		t.Errorf("NewSurfaceByName() = %T, want *ImageSurface", s)
	}
}

func TestDeviceFace(t *testing.T) {
	face := DefaultFace(10)
	if got := deviceFace(face, 1); got != face {
		t.Error("deviceFace(face, 1) should return face itself")
	}
	a := deviceFace(face, 2)
	if got := a.Size(); got != 20 {
		t.Errorf("deviceFace(face, 2).Size() = %v, want 20", got)
	}
	if b := deviceFace(face, 2); b != a {
		t.Error("deviceFace should reuse the face for a repeated size")
	}
}
