package traits

import (
	"image/color"
	"math"
	"strings"

	"github.com/gogpu/gg/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/annotate/geom"
)

// TextKind identifies the variant held by a Text.
type TextKind uint8

const (
	TextString TextKind = iota
	TextNumber
)

// Text is either free text or a running number marker.
type Text struct {
	Kind   TextKind
	Value  string
	Number int
	Color  color.Color
	Face   text.Face
	// Lang formats numbers. The zero value means English.
	Lang language.Tag
}

// Label returns the string to draw. Numbers are formatted for Lang, with
// digit grouping.
func (t *Text) Label() string {
	if t.Kind == TextNumber {
		lang := t.Lang
		if lang == language.Und {
			lang = language.English
		}
		return message.NewPrinter(lang).Sprintf("%d", t.Number)
	}
	return t.Value
}

// Run is a piece of text drawn at a baseline origin.
type Run struct {
	Text     string
	Baseline geom.Point
}

// fontHeight is the height of one line box, without the line gap.
func fontHeight(m text.Metrics) float64 {
	return m.Ascent + m.Descent
}

// tabStop is the distance between tab stops: eight 'x' advances.
func tabStop(face text.Face) float64 {
	return max(1, math.Round(face.Advance("x")*8))
}

// Layout splits a string text into runs. Lines break at '\n' and tabs
// jump to the next tab stop. topLeft is the top-left of the text box.
func (t *Text) Layout(topLeft geom.Point) []Run {
	if t.Face == nil || t.Kind != TextString {
		return nil
	}
	m := t.Face.Metrics()
	stop := tabStop(t.Face)
	var runs []Run
	for i, line := range strings.Split(t.Value, "\n") {
		y := topLeft.Y + m.Ascent + float64(i)*m.LineHeight()
		x := topLeft.X
		for j, seg := range strings.Split(line, "\t") {
			if j > 0 {
				x = topLeft.X + (math.Floor((x-topLeft.X)/stop)+1)*stop
			}
			if seg != "" {
				runs = append(runs, Run{Text: seg, Baseline: geom.Pt(x, y)})
				x += t.Face.Advance(seg)
			}
		}
	}
	return runs
}

// Size returns the extent of a string text, at least one font height in
// each direction.
func (t *Text) Size() geom.Point {
	if t.Face == nil {
		return geom.Point{}
	}
	m := t.Face.Metrics()
	fh := fontHeight(m)
	lines := strings.Split(t.Value, "\n")
	var w float64
	for _, r := range t.Layout(geom.Point{}) {
		w = max(w, r.Baseline.X+t.Face.Advance(r.Text))
	}
	h := fh + float64(len(lines)-1)*m.LineHeight()
	return geom.Pt(max(w, fh), max(h, fh))
}

// NumberRadius returns the radius of the circle around a number marker.
func (t *Text) NumberRadius() float64 {
	if t.Face == nil {
		return 0
	}
	capHeight := t.Face.Metrics().CapHeight
	return max(capHeight*1.33, t.Face.Advance(t.Label())/2+capHeight*0.5)
}

// NumberBaseline returns where the label of a number marker centred at
// center starts.
func (t *Text) NumberBaseline(center geom.Point) geom.Point {
	if t.Face == nil {
		return center
	}
	adv := t.Face.Advance(t.Label())
	return geom.Pt(center.X-adv/2, center.Y+t.Face.Metrics().CapHeight/2)
}
