package annotate

import (
	"fmt"
	"image/color"
	"strings"
)

// Tool is an annotation tool.
type Tool uint8

const (
	NoTool Tool = iota
	SelectTool
	FreehandTool
	HighlighterTool
	LineTool
	ArrowTool
	RectangleTool
	EllipseTool
	BlurTool
	PixelateTool
	TextTool
	NumberTool

	toolCount
)

var toolNames = [toolCount]string{
	NoTool:          "none",
	SelectTool:      "select",
	FreehandTool:    "freehand",
	HighlighterTool: "highlighter",
	LineTool:        "line",
	ArrowTool:       "arrow",
	RectangleTool:   "rectangle",
	EllipseTool:     "ellipse",
	BlurTool:        "blur",
	PixelateTool:    "pixelate",
	TextTool:        "text",
	NumberTool:      "number",
}

// String returns the lower-case tool name.
func (t Tool) String() string {
	if t < toolCount {
		return toolNames[t]
	}
	return fmt.Sprintf("Tool(%d)", uint8(t))
}

// ParseTool returns the tool with the given name, ignoring case.
func ParseTool(name string) (Tool, error) {
	for t, n := range toolNames {
		if strings.EqualFold(n, name) {
			return Tool(t), nil
		}
	}
	return NoTool, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// Creates reports whether the tool draws new items.
func (t Tool) Creates() bool {
	return t > SelectTool && t < toolCount
}

// ToolOptions is a set of settings a tool uses.
type ToolOptions uint8

const (
	StrokeOption ToolOptions = 1 << iota
	FillOption
	StrengthOption
	FontOption
	TextOption
	NumberOption
	ShadowOption
)

// Has reports whether all of o are set.
func (opts ToolOptions) Has(o ToolOptions) bool {
	return opts&o == o
}

// Options returns the settings t uses.
func (t Tool) Options() ToolOptions {
	switch t {
	case FreehandTool, LineTool, ArrowTool:
		return StrokeOption | ShadowOption
	case HighlighterTool:
		return StrokeOption
	case RectangleTool, EllipseTool:
		return StrokeOption | FillOption | ShadowOption
	case BlurTool, PixelateTool:
		return StrengthOption
	case TextTool:
		return FontOption | TextOption | ShadowOption
	case NumberTool:
		return FillOption | FontOption | NumberOption | ShadowOption
	default:
		return 0
	}
}

// ToolSettings are the attribute values a tool gives new items.
type ToolSettings struct {
	StrokeWidth float64
	StrokeColor color.Color
	FillColor   color.Color
	// Strength is the blur or pixelate strength in [0, 1].
	Strength  float64
	FontColor color.Color
	// FontSize is in points.
	FontSize float64
	Shadow   bool
}

var (
	red    = color.RGBA{R: 255, A: 255}
	yellow = color.RGBA{R: 255, G: 255, A: 255}
	black  = color.RGBA{A: 255}
)

// DefaultToolSettings returns the factory settings of t. Settings a tool
// does not use are left zero.
func DefaultToolSettings(t Tool) ToolSettings {
	var s ToolSettings
	opts := t.Options()
	if opts.Has(StrokeOption) {
		switch t {
		case HighlighterTool:
			s.StrokeWidth, s.StrokeColor = 20, yellow
		case RectangleTool, EllipseTool:
			s.StrokeWidth, s.StrokeColor = 0, black
		default:
			s.StrokeWidth, s.StrokeColor = 4, red
		}
	}
	if opts.Has(FillOption) {
		s.FillColor = red
	}
	if opts.Has(StrengthOption) {
		s.Strength = 0.5
	}
	if opts.Has(FontOption) {
		s.FontColor, s.FontSize = black, 12
	}
	s.Shadow = opts.Has(ShadowOption)
	return s
}

// defaultToolSettings returns the factory settings of every tool.
func defaultToolSettings() map[Tool]ToolSettings {
	m := make(map[Tool]ToolSettings, toolCount)
	for t := FreehandTool; t < toolCount; t++ {
		m[t] = DefaultToolSettings(t)
	}
	return m
}
