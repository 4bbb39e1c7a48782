package annotate

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg/text"
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/gogpu/annotate/geom"
	"github.com/gogpu/annotate/history"
	"github.com/gogpu/annotate/internal/dirty"
	"github.com/gogpu/annotate/surface"
	"github.com/gogpu/annotate/traits"
)

// RepaintTypes tells a repaint handler which layers changed.
type RepaintTypes uint8

const (
	RepaintBaseImage RepaintTypes = 1 << iota
	RepaintAnnotations
)

// Document is an annotated screenshot: a base image, a canvas rect framing
// it, and the history of annotation items drawn over it.
//
// A Document is driven by one goroutine, the input loop of its host. It is
// not safe for concurrent use.
type Document struct {
	id  uuid.UUID
	log *slog.Logger

	newSurface surface.Factory
	onRepaint  func(RepaintTypes)
	onHistory  func(undo, redo int)

	fonts  *text.FontSource
	locale language.Tag
	tools  map[Tool]ToolSettings
	tool   Tool

	hist   *history.History
	editor *Editor

	base     *image.NRGBA
	baseCrop *image.NRGBA
	// full is the logical rect of the whole base image.
	full   geom.Rect
	canvas geom.Rect
	scale  float64

	layer surface.Surface
	dirty dirty.Region

	// counter is the number the next number marker gets.
	counter int
	create  *creation
}

// NewDocument creates an empty document. It fails only when WithFontData
// holds an unusable font.
func NewDocument(opts ...DocumentOption) (*Document, error) {
	o := defaultDocumentOptions()
	for _, opt := range opts {
		opt(&o)
	}

	fonts := surface.DefaultFontSource()
	if o.fontData != nil {
		face, err := surface.LoadFace(o.fontData, DefaultToolSettings(TextTool).FontSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
		}
		fonts = face.Source()
	}

	log := o.logger
	if log == nil {
		log = Logger()
	}
	id := uuid.New()

	d := &Document{
		id:         id,
		log:        log.With("document", id.String()),
		newSurface: o.surfaceFactory,
		onRepaint:  o.onRepaint,
		onHistory:  o.onHistory,
		fonts:      fonts,
		locale:     o.locale,
		tools:      o.tools,
		hist:       history.New(),
		scale:      1,
		counter:    1,
	}
	d.editor = &Editor{doc: d}
	return d, nil
}

// ID returns the unique id of the document, used to tag its log records.
func (d *Document) ID() uuid.UUID { return d.id }

// Close releases the raster layers.
func (d *Document) Close() error {
	if d.layer == nil {
		return nil
	}
	err := d.layer.Close()
	d.layer = nil
	return err
}

// Editor returns the selected-item editor.
func (d *Document) Editor() *Editor { return d.editor }

// History returns the item history. Treat the items as read-only.
func (d *Document) History() *history.History { return d.hist }

// Tool returns the active tool.
func (d *Document) Tool() Tool { return d.tool }

// SetTool changes the active tool. A creation in progress is finished.
func (d *Document) SetTool(t Tool) {
	if t >= toolCount {
		d.log.Warn("unknown tool", "tool", t)
		return
	}
	if d.create != nil {
		d.Finish()
	}
	d.tool = t
}

// ToolSettings returns the settings of t.
func (d *Document) ToolSettings(t Tool) ToolSettings {
	return d.tools[t]
}

// SetToolSettings replaces the settings of t. They apply to items created
// afterwards.
func (d *Document) SetToolSettings(t Tool, s ToolSettings) {
	if !t.Creates() {
		return
	}
	d.tools[t] = s
}

// face returns the document font at size points.
func (d *Document) face(size float64) text.Face {
	if size <= 0 {
		size = DefaultToolSettings(TextTool).FontSize
	}
	return d.fonts.Face(size)
}

// SetBaseImage installs the screenshot to annotate. The image covers the
// logical rect from (0, 0) to its size divided by scale. The history is
// cleared and the canvas framed to the whole image.
func (d *Document) SetBaseImage(img image.Image, scale float64) {
	if img == nil || img.Bounds().Empty() {
		d.log.Warn("rejected empty base image")
		return
	}
	if !(scale > 0) {
		d.log.Warn("rejected base image scale", "scale", scale)
		return
	}
	d.base = imaging.Clone(img)
	d.baseCrop = nil
	size := d.base.Bounds().Size()
	d.full = geom.Rect{Max: geom.Pt(float64(size.X)/scale, float64(size.Y)/scale)}

	d.create = nil
	d.editor.Reset()
	ch := d.hist.ClearLists()
	d.counter = 1
	d.SetCanvas(d.full, scale)
	d.historyChanged(ch)
}

// BaseImage returns the base image, or nil.
func (d *Document) BaseImage() image.Image {
	if d.base == nil {
		return nil
	}
	return d.base
}

// CanvasBaseImage returns the part of the base image under the canvas.
func (d *Document) CanvasBaseImage() image.Image {
	if d.base == nil {
		return nil
	}
	if d.canvas == d.full {
		return d.base
	}
	if d.baseCrop == nil {
		d.baseCrop = imaging.Crop(d.base, d.canvas.Scaled(d.scale).AlignedOut())
	}
	return d.baseCrop
}

// Canvas returns the logical canvas rect.
func (d *Document) Canvas() geom.Rect { return d.canvas }

// Scale returns the device scale of the canvas.
func (d *Document) Scale() float64 { return d.scale }

// ImageSize returns the canvas size in device pixels.
func (d *Document) ImageSize() image.Point {
	return geom.RawSize(d.canvas.Size(), d.scale)
}

// SetCanvas frames the document to rect at scale. An empty rect or a
// non-positive scale is ignored. The whole canvas is marked for repaint.
func (d *Document) SetCanvas(rect geom.Rect, scale float64) {
	rect = rect.Normalized()
	if rect.IsEmpty() || !(scale > 0) {
		d.log.Warn("rejected canvas", "rect", rect, "scale", scale)
		return
	}
	if d.layer == nil || rect != d.canvas || scale != d.scale {
		if d.layer != nil {
			_ = d.layer.Close()
		}
		d.layer = d.allocSurface(rect, scale)
		d.baseCrop = nil
		d.log.Debug("canvas changed", "rect", rect, "scale", scale)
	}
	d.canvas, d.scale = rect, scale
	d.dirty.Clear()
	d.dirty.MarkAll(rect)
	d.notifyRepaint(RepaintBaseImage | RepaintAnnotations)
}

// allocSurface returns a surface covering the logical rect at scale.
func (d *Document) allocSurface(rect geom.Rect, scale float64) surface.Surface {
	opts := surface.Options{
		Width:  max(1, geom.RawSize(rect.Size(), scale).X),
		Height: max(1, geom.RawSize(rect.Size(), scale).Y),
		Scale:  scale,
		Origin: rect.Min,
	}
	s, err := d.newSurface(opts)
	if err != nil || s == nil {
		d.log.Warn("surface factory failed, using image surface", "err", err)
		return surface.NewImageSurface(opts)
	}
	return s
}

// CropCanvas narrows the canvas to rect, given relative to the current
// canvas origin. The crop is recorded in the history, so Undo restores
// the previous canvas. It reports whether the canvas changed.
func (d *Document) CropCanvas(rect geom.Rect) bool {
	if d.create != nil {
		d.log.Warn("crop during creation ignored")
		return false
	}
	r := rect.Normalized().Translated(d.canvas.Min).Intersect(d.canvas)
	if r.IsEmpty() || r == d.canvas {
		d.log.Warn("rejected crop", "rect", rect)
		return false
	}
	d.commitSelection()

	path := geom.NewPath()
	path.Rectangle(r)
	t := &traits.Traits{Geometry: &traits.Geometry{Path: path}, Crop: &traits.Crop{}}
	t.Init()

	_, ch := d.hist.Push(t, d.lastCrop())
	d.SetCanvas(r, d.scale)
	d.historyChanged(ch)
	return true
}

// lastCrop returns the newest crop item on the undo sequence.
func (d *Document) lastCrop() history.Handle {
	undo := d.hist.UndoList()
	for i := len(undo) - 1; i >= 0; i-- {
		if t := d.hist.Traits(undo[i]); t.Crop != nil {
			return undo[i]
		}
	}
	return history.Handle{}
}

// reframe applies the canvas recorded by crop item h. With no live crop
// the canvas covers the whole base image.
func (d *Document) reframe(h history.Handle) {
	r := d.full
	if t := d.hist.Traits(h); t != nil {
		r = t.GeometryBounds()
	}
	if r.IsEmpty() {
		return
	}
	d.SetCanvas(r, d.scale)
}

// Undo moves the newest item to the redo sequence. It reports whether
// anything was undone.
func (d *Document) Undo() bool {
	if d.create != nil {
		d.log.Warn("undo during creation ignored")
		return false
	}
	cur := d.hist.Current()
	if cur.IsZero() {
		return false
	}
	d.markItem(cur)
	d.markReplaced(cur)
	t := d.hist.Traits(cur)
	d.hist.Undo()

	if t.Text != nil && t.Text.Kind == traits.TextNumber {
		d.counter = t.Text.Number
	}
	if t.Crop != nil {
		parent, _ := d.hist.Parent(cur)
		d.reframe(parent)
	}
	d.resyncSelection()
	d.invalidateEffects()
	d.historyChanged(history.Changes{Undo: true, Redo: true})
	return true
}

// Redo moves the next redo item back to the undo sequence. It reports
// whether anything was redone.
func (d *Document) Redo() bool {
	if d.create != nil {
		d.log.Warn("redo during creation ignored")
		return false
	}
	if !d.hist.Redo() {
		return false
	}
	cur := d.hist.Current()
	t := d.hist.Traits(cur)

	if t.Text != nil && t.Text.Kind == traits.TextNumber {
		d.counter = t.Text.Number + 1
	}
	if t.Crop != nil {
		d.reframe(cur)
	}
	d.markItem(cur)
	d.markReplaced(cur)
	d.resyncSelection()
	d.invalidateEffects()
	d.historyChanged(history.Changes{Undo: true, Redo: true})
	return true
}

// resyncSelection keeps the selection on the replace chain it belonged
// to: if the current item is the selection's parent or child it becomes
// the selection, otherwise the selection is dropped.
func (d *Document) resyncSelection() {
	sel, ok := d.editor.Selected()
	if !ok {
		return
	}
	cur := d.hist.Current()
	if cur == sel && d.hist.InUndo(sel) {
		return
	}
	parent, hasParent := d.hist.Parent(sel)
	child, hasChild := d.hist.Child(sel)
	d.deselect()
	if !cur.IsZero() && ((hasParent && parent == cur) || (hasChild && child == cur)) {
		d.editor.SetSelectedItem(cur)
	}
}

// invalidateEffects drops every effect cache. The content below an
// effect may have changed, so the effect areas are repainted.
func (d *Document) invalidateEffects() {
	undo, redo := d.hist.FilteredLists(func(h history.Handle) bool {
		t := d.hist.Traits(h)
		return t.Fill != nil && t.Fill.Effect != nil
	})
	for _, h := range redo {
		d.hist.Traits(h).Fill.Effect.Invalidate()
	}
	for _, h := range undo {
		d.hist.Traits(h).Fill.Effect.Invalidate()
		if d.hist.ItemVisible(h) {
			d.SetRepaintRegion(d.hist.RenderRect(h))
		}
	}
	if t := d.editor.temp; t != nil && t.Fill != nil && t.Fill.Effect != nil {
		t.Fill.Effect.Invalidate()
	}
}

// ClearAnnotations drops every item and frames the canvas to the whole
// base image.
func (d *Document) ClearAnnotations() {
	d.create = nil
	d.editor.Reset()
	ch := d.hist.ClearLists()
	d.counter = 1
	if !d.full.IsEmpty() {
		d.SetCanvas(d.full, d.scale)
	} else {
		d.SetRepaintRegionAll()
	}
	d.historyChanged(ch)
}

// UndoCount returns the depth of the undo sequence.
func (d *Document) UndoCount() int { return d.hist.UndoLen() }

// RedoCount returns the depth of the redo sequence.
func (d *Document) RedoCount() int { return d.hist.RedoLen() }

// IsCurrentItemValid reports whether there is a newest item and it is
// valid.
func (d *Document) IsCurrentItemValid() bool {
	cur := d.hist.Current()
	return !cur.IsZero() && d.hist.IsValid(cur)
}

// ItemAt returns the topmost visible item under rect.
func (d *Document) ItemAt(rect geom.Rect) (history.Handle, bool) {
	return d.hist.ItemAt(rect)
}

// NextNumber returns the number the next number marker gets.
func (d *Document) NextNumber() int { return d.counter }

// SetRepaintRegion marks rect for repaint. It is clipped to the canvas and
// grown by one device pixel on its leading edges.
func (d *Document) SetRepaintRegion(rect geom.Rect) {
	r := rect.Intersect(d.canvas)
	if r.IsEmpty() {
		return
	}
	px := geom.DPX(d.scale)
	d.dirty.MarkRect(r.Adjusted(-px, -px, 0, 0))
	d.notifyRepaint(RepaintAnnotations)
}

// SetRepaintRegionAll marks the whole canvas for repaint.
func (d *Document) SetRepaintRegionAll() {
	if d.canvas.IsEmpty() {
		return
	}
	d.dirty.MarkAll(d.canvas)
	d.notifyRepaint(RepaintAnnotations)
}

// markItem marks the area h paints for repaint, including the scratch
// copy when h is selected.
func (d *Document) markItem(h history.Handle) {
	d.SetRepaintRegion(d.hist.RenderRect(h))
	if sel, ok := d.editor.Selected(); ok && sel == h {
		d.SetRepaintRegion(d.editor.temp.VisualRect())
	}
}

// markReplaced marks the area of the item h replaces, which undo shows
// again and redo hides.
func (d *Document) markReplaced(h history.Handle) {
	if parent, ok := d.hist.Parent(h); ok {
		d.SetRepaintRegion(d.hist.RenderRect(parent))
	}
}

func (d *Document) notifyRepaint(t RepaintTypes) {
	if d.onRepaint != nil {
		d.onRepaint(t)
	}
}

func (d *Document) historyChanged(ch history.Changes) {
	if !ch.Undo && !ch.Redo {
		return
	}
	d.log.Debug("history changed", "undo", d.hist.UndoLen(), "redo", d.hist.RedoLen())
	if d.onHistory != nil {
		d.onHistory(d.hist.UndoLen(), d.hist.RedoLen())
	}
}
