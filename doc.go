// Package annotate is the document model of a screenshot annotator.
//
// # Overview
//
// A Document holds a base image, a canvas rect framing it, and an undoable
// history of annotation items: freehand and highlighter strokes, lines and
// arrows, rectangles and ellipses, blur and pixelate regions, text boxes
// and running number markers. Each item is a tuple of optional attributes
// (see package traits); edits never change an item in place but push a
// replacement, so Undo restores the previous version.
//
// # Quick Start
//
//	doc, err := annotate.NewDocument()
//	if err != nil {
//	    return err
//	}
//	doc.SetBaseImage(screenshot, 1)
//
//	doc.SetTool(annotate.ArrowTool)
//	doc.Begin(geom.Pt(10, 10))
//	doc.Continue(geom.Pt(120, 80), 0)
//	doc.Finish()
//
//	img, err := doc.RenderToImage(annotate.RenderOptions{Images: true, Annotations: true})
//
// # Input
//
// Creation follows Begin, any number of Continue calls, then Finish.
// Calls out of that order are ignored. SelectItem, DeleteSelectedItem and
// CancelSelection work on existing items; the Editor returned by
// Document.Editor changes the selected one and CommitChanges records the
// change.
//
// # Rendering
//
// Painting is lazy. Changes mark regions of the canvas dirty and notify
// the repaint handler; AnnotationImage repaints only the dirty regions of
// the annotation layer before returning it.
//
// # Logging
//
// annotate logs through log/slog and is silent by default. See SetLogger
// and WithLogger.
package annotate
