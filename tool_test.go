package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/annotate/geom"
)

func TestParseToolRoundTrip(t *testing.T) {
	for tool := NoTool; tool < toolCount; tool++ {
		got, err := ParseTool(tool.String())
		require.NoError(t, err)
		assert.Equal(t, tool, got)
	}

	got, err := ParseTool("ArRoW")
	require.NoError(t, err)
	assert.Equal(t, ArrowTool, got)
}

func TestParseToolUnknown(t *testing.T) {
	_, err := ParseTool("lasso")
	require.ErrorIs(t, err, ErrUnknownTool)
	assert.Contains(t, err.Error(), `"lasso"`)
}

func TestToolString(t *testing.T) {
	assert.Equal(t, "number", NumberTool.String())
	assert.Equal(t, "Tool(42)", Tool(42).String())
}

func TestToolCreates(t *testing.T) {
	assert.False(t, NoTool.Creates())
	assert.False(t, SelectTool.Creates())
	assert.False(t, toolCount.Creates())
	for tool := FreehandTool; tool < toolCount; tool++ {
		assert.True(t, tool.Creates(), tool.String())
	}
}

func TestToolOptions(t *testing.T) {
	tests := []struct {
		tool Tool
		want ToolOptions
	}{
		{SelectTool, 0},
		{FreehandTool, StrokeOption | ShadowOption},
		{HighlighterTool, StrokeOption},
		{ArrowTool, StrokeOption | ShadowOption},
		{EllipseTool, StrokeOption | FillOption | ShadowOption},
		{PixelateTool, StrengthOption},
		{TextTool, FontOption | TextOption | ShadowOption},
		{NumberTool, FillOption | FontOption | NumberOption | ShadowOption},
	}
	for _, tt := range tests {
		t.Run(tt.tool.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tool.Options())
		})
	}
}

func TestDefaultToolSettings(t *testing.T) {
	hl := DefaultToolSettings(HighlighterTool)
	assert.Equal(t, 20.0, hl.StrokeWidth)
	assert.Equal(t, yellow, hl.StrokeColor)
	assert.False(t, hl.Shadow)

	rect := DefaultToolSettings(RectangleTool)
	assert.Zero(t, rect.StrokeWidth)
	assert.Equal(t, red, rect.FillColor)
	assert.True(t, rect.Shadow)

	blur := DefaultToolSettings(BlurTool)
	assert.Equal(t, 0.5, blur.Strength)
	assert.Nil(t, blur.StrokeColor)

	num := DefaultToolSettings(NumberTool)
	assert.Equal(t, 12.0, num.FontSize)
	assert.Equal(t, black, num.FontColor)
}

func TestDocumentToolSettings(t *testing.T) {
	d := newTestDocument(t, WithToolSettings(SelectTool, ToolSettings{StrokeWidth: 9}))
	assert.Equal(t, ToolSettings{}, d.ToolSettings(SelectTool))

	s := d.ToolSettings(LineTool)
	s.StrokeWidth = 7
	d.SetToolSettings(LineTool, s)
	h := drawWith(t, d, LineTool, geom.Pt(10, 10), geom.Pt(40, 40))
	assert.Equal(t, 7.0, d.History().Traits(h).Stroke.Width)
}

func TestSetToolFinishesCreation(t *testing.T) {
	d := newTestDocument(t)
	d.SetTool(LineTool)
	require.True(t, d.Begin(geom.Pt(10, 10)))
	require.True(t, d.Continue(geom.Pt(40, 10), 0))

	d.SetTool(ArrowTool)
	assert.False(t, d.Creating())
	assert.Equal(t, ArrowTool, d.Tool())
	assert.True(t, d.IsCurrentItemValid())

	d.SetTool(toolCount)
	assert.Equal(t, ArrowTool, d.Tool())
}
