package annotate

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/gogpu/annotate/surface"
)

// DocumentOption configures a Document during creation.
//
// Example:
//
//	doc, err := annotate.NewDocument(
//	    annotate.WithLocale(language.German),
//	    annotate.WithRepaintHandler(func(r annotate.RepaintTypes) { window.Update() }),
//	)
type DocumentOption func(*documentOptions)

type documentOptions struct {
	logger         *slog.Logger
	fontData       []byte
	locale         language.Tag
	surfaceFactory surface.Factory
	onRepaint      func(RepaintTypes)
	onHistory      func(undo, redo int)
	tools          map[Tool]ToolSettings
}

func defaultDocumentOptions() documentOptions {
	return documentOptions{
		surfaceFactory: func(opts surface.Options) (surface.Surface, error) {
			return surface.NewImageSurface(opts), nil
		},
		tools: defaultToolSettings(),
	}
}

// WithLogger sets the logger of the document. By default the package
// logger is used.
func WithLogger(l *slog.Logger) DocumentOption {
	return func(o *documentOptions) {
		o.logger = l
	}
}

// WithFontData sets the TrueType or OpenType font used for text and
// number items. By default Go Regular is used.
func WithFontData(data []byte) DocumentOption {
	return func(o *documentOptions) {
		o.fontData = data
	}
}

// WithLocale sets the language numbers are formatted for.
func WithLocale(tag language.Tag) DocumentOption {
	return func(o *documentOptions) {
		o.locale = tag
	}
}

// WithSurfaceFactory sets how raster layers are allocated. Use it to
// inject a surface backend.
func WithSurfaceFactory(f surface.Factory) DocumentOption {
	return func(o *documentOptions) {
		if f != nil {
			o.surfaceFactory = f
		}
	}
}

// WithRepaintHandler sets a function called whenever part of the document
// needs repainting.
func WithRepaintHandler(fn func(RepaintTypes)) DocumentOption {
	return func(o *documentOptions) {
		o.onRepaint = fn
	}
}

// WithHistoryHandler sets a function called with the new undo and redo
// depths whenever either changes.
func WithHistoryHandler(fn func(undo, redo int)) DocumentOption {
	return func(o *documentOptions) {
		o.onHistory = fn
	}
}

// WithToolSettings overrides the initial settings of tool.
func WithToolSettings(tool Tool, s ToolSettings) DocumentOption {
	return func(o *documentOptions) {
		if tool.Creates() {
			o.tools[tool] = s
		}
	}
}
