package annotate

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/annotate/geom"
)

var blue = color.RGBA{B: 255, A: 255}

func TestEditorCapabilities(t *testing.T) {
	tests := []struct {
		tool Tool
		pts  []geom.Point
		want Capabilities
	}{
		{RectangleTool, []geom.Point{geom.Pt(10, 10), geom.Pt(50, 50)}, EditStroke | EditFill | EditShadow},
		{HighlighterTool, []geom.Point{geom.Pt(10, 10), geom.Pt(50, 50)}, EditStroke},
		{BlurTool, []geom.Point{geom.Pt(10, 10), geom.Pt(50, 50)}, EditStrength},
		{NumberTool, []geom.Point{geom.Pt(10, 10)}, EditFill | EditFont | EditNumber | EditShadow},
		{TextTool, []geom.Point{geom.Pt(10, 10)}, EditFont | EditText | EditShadow},
	}
	for _, tt := range tests {
		t.Run(tt.tool.String(), func(t *testing.T) {
			d := newTestDocument(t)
			drawWith(t, d, tt.tool, tt.pts...)
			assert.Equal(t, tt.want, d.Editor().Capabilities())
		})
	}
}

func TestEditorSettersRespectCapabilities(t *testing.T) {
	d := newTestDocument(t)
	h := drawWith(t, d, RectangleTool, geom.Pt(10, 10), geom.Pt(50, 50))
	ed := d.Editor()

	assert.False(t, ed.SetText("x"))
	assert.False(t, ed.SetNumber(3))
	assert.False(t, ed.SetStrength(1))
	assert.False(t, ed.SetFontColor(blue))
	assert.False(t, ed.Modified())

	before := d.History().Traits(h).VisualRect()
	require.True(t, ed.SetStrokeWidth(6))
	assert.True(t, ed.Modified())
	assert.Equal(t, 6.0, ed.Item().Stroke.Width)
	assert.Zero(t, d.History().Traits(h).Stroke.Width, "the history item is untouched")
	assert.Less(t, ed.Item().VisualRect().Min.X, before.Min.X)

	require.True(t, ed.SetStrokeWidth(-3))
	assert.Zero(t, ed.Item().Stroke.Width)
	assert.False(t, ed.SetFontFace(nil))
}

func TestEditorCommitChanges(t *testing.T) {
	d := newTestDocument(t)
	a := drawWith(t, d, RectangleTool, geom.Pt(10, 10), geom.Pt(50, 50))
	ed := d.Editor()

	_, ok := ed.CommitChanges()
	assert.False(t, ok, "nothing to commit")

	require.True(t, ed.SetFillColor(blue))
	require.True(t, ed.SetShadow(false))
	b, ok := ed.CommitChanges()
	require.True(t, ok)

	hist := d.History()
	assert.Equal(t, 2, d.UndoCount())
	assert.Equal(t, blue, hist.Traits(b).Fill.Color)
	assert.False(t, hist.Traits(b).HasShadow())
	assert.Equal(t, red, hist.Traits(a).Fill.Color)
	assert.NotNil(t, hist.Traits(b).MousePath())

	sel, ok := d.Selected()
	require.True(t, ok)
	assert.Equal(t, b, sel)
	assert.False(t, ed.Modified())
}

func TestEditorScratchIsPainted(t *testing.T) {
	d := newTestDocument(t)
	drawWith(t, d, RectangleTool, geom.Pt(10, 10), geom.Pt(50, 50))
	require.Equal(t, red, d.AnnotationImage().RGBAAt(30, 30))

	require.True(t, d.Editor().SetFillColor(blue))
	assert.Equal(t, blue, d.AnnotationImage().RGBAAt(30, 30))

	require.True(t, d.CancelSelection())
	assert.Equal(t, red, d.AnnotationImage().RGBAAt(30, 30), "cancel drops the edit")
	assert.Equal(t, 1, d.UndoCount())
}

func TestEditorTransformTranslate(t *testing.T) {
	d := newTestDocument(t)
	drawWith(t, d, RectangleTool, geom.Pt(10, 10), geom.Pt(50, 50))
	ed := d.Editor()

	assert.False(t, ed.Transform(0, 0, 0))
	require.True(t, ed.Transform(5, -5, 0))
	assertRectInDelta(t, geom.RectFromPoints(geom.Pt(15, 5), geom.Pt(55, 45)), ed.Item().GeometryBounds(), 1e-9)
	assert.True(t, ed.Modified())
}

func TestEditorTransformResize(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		edges  Edges
		want   geom.Rect
	}{
		{"right", 10, 0, RightEdge, geom.RectFromPoints(geom.Pt(10, 10), geom.Pt(60, 50))},
		{"left", -10, 0, LeftEdge, geom.RectFromPoints(geom.Pt(0, 10), geom.Pt(50, 50))},
		{"bottom right", 10, 20, RightEdge | BottomEdge, geom.RectFromPoints(geom.Pt(10, 10), geom.Pt(60, 70))},
		{"top", 10, 10, TopEdge, geom.RectFromPoints(geom.Pt(10, 20), geom.Pt(50, 50))},
		{"collapsed", -40, 0, RightEdge, geom.RectFromPoints(geom.Pt(10, 10), geom.Pt(11, 50))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDocument(t)
			drawWith(t, d, RectangleTool, geom.Pt(10, 10), geom.Pt(50, 50))
			ed := d.Editor()

			require.True(t, ed.Transform(tt.dx, tt.dy, tt.edges))
			assertRectInDelta(t, tt.want, ed.Item().GeometryBounds(), 1e-9)
			assert.True(t, ed.Item().IsValid())
		})
	}
}

func TestEditorTransformTextOnlyMoves(t *testing.T) {
	d := newTestDocument(t)
	drawWith(t, d, TextTool, geom.Pt(20, 20))
	ed := d.Editor()
	require.True(t, ed.SetText("hi"))
	_, ok := ed.CommitChanges()
	require.True(t, ok)

	before := ed.Item().GeometryBounds()
	require.True(t, ed.Transform(5, 5, RightEdge))
	assertRectInDelta(t, before.Translated(geom.Pt(5, 5)), ed.Item().GeometryBounds(), 1e-9)
}

func TestEditorReset(t *testing.T) {
	d := newTestDocument(t)
	drawWith(t, d, RectangleTool, geom.Pt(10, 10), geom.Pt(50, 50))
	ed := d.Editor()

	assert.True(t, ed.Reset())
	assert.False(t, ed.Reset())
	assert.Nil(t, ed.Item())
	assert.Zero(t, ed.Capabilities())
	assert.False(t, ed.Transform(1, 1, 0))
	assert.False(t, ed.SetStrokeWidth(3))
}

func TestEditorNumberEdit(t *testing.T) {
	d := newTestDocument(t)
	drawWith(t, d, NumberTool, geom.Pt(20, 20))
	ed := d.Editor()

	require.True(t, ed.SetNumber(42))
	h, ok := ed.CommitChanges()
	require.True(t, ok)
	assert.Equal(t, 42, d.History().Traits(h).Text.Number)
	assert.Equal(t, "42", d.History().Traits(h).Text.Label())
}
