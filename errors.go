package annotate

import "errors"

var (
	// ErrEmptyCanvas is returned when rendering a document that has no
	// base image or an empty canvas.
	ErrEmptyCanvas = errors.New("annotate: empty canvas")

	// ErrInvalidFont is returned by NewDocument when WithFontData holds
	// data that is not a usable font.
	ErrInvalidFont = errors.New("annotate: invalid font data")

	// ErrUnknownTool is returned by ParseTool for names that match no
	// tool.
	ErrUnknownTool = errors.New("annotate: unknown tool")
)
