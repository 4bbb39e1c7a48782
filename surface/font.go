// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/annotate/internal/cache"
)

// ErrInvalidFont is returned when font data cannot be parsed.
var ErrInvalidFont = errors.New("surface: invalid font data")

type faceKey struct {
	src  *text.FontSource
	size float64
}

// faces holds faces resized for device scales.
var faces = cache.New[faceKey, text.Face](64)

var defaultSource = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// DefaultFontSource returns the shared Go Regular font source.
func DefaultFontSource() *text.FontSource {
	src, err := defaultSource()
	if err != nil {
		// goregular is compiled in; a parse failure is a build defect.
		panic(fmt.Sprintf("surface: default font: %v", err))
	}
	return src
}

// DefaultFace returns Go Regular at size points.
func DefaultFace(size float64) text.Face {
	return DefaultFontSource().Face(size)
}

// LoadFace parses TrueType or OpenType data and returns a face at size
// points.
func LoadFace(data []byte, size float64) (text.Face, error) {
	if len(data) == 0 {
		return nil, ErrInvalidFont
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	if size <= 0 {
		size = 12
	}
	return src.Face(size), nil
}
