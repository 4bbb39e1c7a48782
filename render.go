package annotate

import (
	"image"
	"image/color"

	"github.com/gogpu/annotate/geom"
	"github.com/gogpu/annotate/history"
	"github.com/gogpu/annotate/internal/blend"
	"github.com/gogpu/annotate/internal/filter"
	"github.com/gogpu/annotate/surface"
	"github.com/gogpu/annotate/traits"
)

// RenderOptions selects the layers RenderToImage draws.
type RenderOptions struct {
	Images      bool
	Annotations bool
}

// RenderToImage renders the canvas at the document scale.
func (d *Document) RenderToImage(opts RenderOptions) (*image.RGBA, error) {
	if d.base == nil || d.canvas.IsEmpty() {
		return nil, ErrEmptyCanvas
	}
	s := d.allocSurface(d.canvas, d.scale)
	defer func() { _ = s.Close() }()

	if opts.Images {
		s.DrawImage(d.base, geom.Point{}, nil)
	}
	if opts.Annotations {
		d.renderItems(s, d.canvas, history.Handle{}, !opts.Images)
	}
	return s.Snapshot(), nil
}

// AnnotationImage returns the annotation layer of the canvas, repainting
// the regions marked since the last call.
func (d *Document) AnnotationImage() *image.RGBA {
	if d.layer == nil {
		return nil
	}
	if !d.dirty.IsEmpty() {
		d.log.Debug("repaint", "rects", len(d.dirty.Rects()), "bounds", d.dirty.Bounds())
		d.dirty.ForEach(func(r geom.Rect) {
			d.layer.SetClip(r)
			d.layer.Clear(r)
			d.renderItems(d.layer, r, history.Handle{}, true)
		})
		d.layer.ResetClip()
		d.dirty.Clear()
	}
	return d.layer.Snapshot()
}

type drawItem struct {
	h history.Handle
	t *traits.Traits
}

// renderItems paints the visible items before until, or all of them for
// the zero Handle, that intersect region. The selection is painted from
// its scratch copy while it has uncommitted edits. With withBase the base
// image is painted first when a highlighter needs something to darken.
func (d *Document) renderItems(s surface.Surface, region geom.Rect, until history.Handle, withBase bool) {
	var items []drawItem
	highlight := false
	for _, h := range d.hist.UndoList() {
		if !until.IsZero() && h == until {
			break
		}
		if !d.hist.ItemVisible(h) {
			continue
		}
		t := d.itemTraits(h)
		if !t.VisualRect().Intersects(region) {
			continue
		}
		highlight = highlight || t.Highlight != nil
		items = append(items, drawItem{h: h, t: t})
	}
	if highlight && withBase && d.base != nil {
		s.DrawImage(d.base, geom.Point{}, nil)
	}
	for _, it := range items {
		d.paintItem(s, it.h, it.t)
	}
}

// itemTraits returns what h paints as: its scratch copy while being
// edited, its own traits otherwise.
func (d *Document) itemTraits(h history.Handle) *traits.Traits {
	if sel, ok := d.editor.Selected(); ok && sel == h && d.editor.Modified() {
		return d.editor.temp
	}
	return d.hist.Traits(h)
}

// paintItem paints shadow, fill, stroke and text, in that order.
func (d *Document) paintItem(s surface.Surface, h history.Handle, t *traits.Traits) {
	if t.HasShadow() {
		d.paintShadow(s, t)
	}
	if f := t.Fill; f != nil {
		if f.Effect != nil {
			d.paintEffect(s, h, t)
		} else {
			s.FillPath(t.GeometryPath(), surface.FillStyle{Color: f.Color})
		}
	}
	if st := t.Stroke; st != nil {
		mode := blend.SourceOver
		if t.Highlight != nil {
			mode = blend.Darken
		}
		s.FillPath(st.Path, surface.FillStyle{Color: st.Color, Blend: mode})
	}
	if txt := t.Text; txt != nil && txt.Face != nil && txt.Color != nil {
		for _, r := range textRuns(t) {
			s.DrawText(r.Text, txt.Face, r.Baseline, txt.Color)
		}
	}
}

// textRuns lays out the text of t inside its text box.
func textRuns(t *traits.Traits) []traits.Run {
	bounds := t.GeometryBounds()
	if t.Text.Kind == traits.TextNumber {
		return []traits.Run{{Text: t.Text.Label(), Baseline: t.Text.NumberBaseline(bounds.Center())}}
	}
	return t.Text.Layout(bounds.Min)
}

// paintShadow paints the soft shadow of everything t paints, offset down
// and right.
func (d *Document) paintShadow(s surface.Surface, t *traits.Traits) {
	m := surface.DeviceMatrix(s)
	bounds := geom.TransformRect(m, t.VisualRect()).AlignedOut().Intersect(image.Rect(0, 0, s.Width(), s.Height()))
	if bounds.Empty() {
		return
	}
	shifted := m.Multiply(geom.Translate(traits.ShadowXOffset, traits.ShadowYOffset))

	coverage := image.NewAlpha(bounds)
	if f := t.Fill; f != nil && f.Effect == nil {
		filter.Accumulate(coverage, surface.Coverage(t.GeometryPath(), shifted, bounds), alphaOf(f.Color))
	}
	if st := t.Stroke; st != nil {
		filter.Accumulate(coverage, surface.Coverage(st.Path, shifted, bounds), alphaOf(st.Color))
	}
	if txt := t.Text; txt != nil && txt.Face != nil {
		a := alphaOf(txt.Color)
		for _, r := range textRuns(t) {
			filter.Accumulate(coverage, surface.TextCoverage(r.Text, txt.Face, r.Baseline, shifted, bounds), a)
		}
	}
	shadow := filter.DropShadow(coverage, traits.ShadowRadius*s.Scale())
	s.DrawMask(shadow, s.Origin(), color.Black)
}

// paintEffect paints the blur or pixelate effect of item h, computed from
// everything painted before it and clipped to its geometry.
func (d *Document) paintEffect(s surface.Surface, h history.Handle, t *traits.Traits) {
	img := t.Fill.Effect.Image(func() image.Image {
		return d.renderBefore(h)
	}, t.GeometryBounds(), d.scale)
	if img == nil {
		return
	}
	s.DrawImage(img, geom.Point{}, t.GeometryPath())
}

// renderBefore renders the base image and every visible item older than h
// into an image whose pixel origin is logical (0, 0).
func (d *Document) renderBefore(h history.Handle) image.Image {
	r := geom.Rect{Max: d.full.Union(geom.Rect{Max: d.canvas.Max}).Max}
	if r.IsEmpty() {
		return nil
	}
	s := d.allocSurface(r, d.scale)
	defer func() { _ = s.Close() }()

	if d.base != nil {
		s.DrawImage(d.base, geom.Point{}, nil)
	}
	d.renderItems(s, r, h, false)
	d.log.Debug("effect source rendered", "size", r.Size())
	return s.Snapshot()
}

func alphaOf(c color.Color) uint8 {
	if c == nil {
		return 0
	}
	_, _, _, a := c.RGBA()
	return uint8(a >> 8) //nolint:gosec // G115: a>>8 is always in [0, 255]
}
