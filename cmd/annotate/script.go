package main

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/annotate"
	"github.com/gogpu/annotate/geom"
)

// errStepRejected reports a script step the document refused.
var errStepRejected = errors.New("step rejected")

// Bare-word steps.
const (
	actionUndo   = "undo"
	actionRedo   = "redo"
	actionDelete = "delete"
	actionCancel = "cancel"
)

// step is one entry of a replay script. It is either a bare word
// (undo, redo, delete, cancel) or a mapping holding exactly one of tool,
// crop, select and move. A script is a YAML sequence of steps:
//
//	# draw a rectangle, nudge it, then take the nudge back
//	- tool: rectangle
//	  points: [[10, 10], [90, 70]]
//	- select: [50, 40]
//	- move: [5, 0]
//	- undo
type step struct {
	Action string `yaml:"-"`

	Tool   string       `yaml:"tool"`
	Points [][2]float64 `yaml:"points"`
	Snap   bool         `yaml:"snap"`
	Center bool         `yaml:"center"`
	Text   string       `yaml:"text"`

	Crop   []float64 `yaml:"crop"`
	Select []float64 `yaml:"select"`
	Move   []float64 `yaml:"move"`

	line int
}

var stepKeys = map[string]bool{
	"tool": true, "points": true, "snap": true, "center": true, "text": true,
	"crop": true, "select": true, "move": true,
}

func (s *step) UnmarshalYAML(n *yaml.Node) error {
	s.line = n.Line
	if n.Kind == yaml.ScalarNode {
		switch n.Value {
		case actionUndo, actionRedo, actionDelete, actionCancel:
			s.Action = n.Value
			return nil
		}
		return fmt.Errorf("line %d: unknown step %q", n.Line, n.Value)
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: a step is a word or a mapping", n.Line)
	}
	for i := 0; i < len(n.Content); i += 2 {
		if k := n.Content[i]; !stepKeys[k.Value] {
			return fmt.Errorf("line %d: unknown key %q", k.Line, k.Value)
		}
	}

	type plain step
	var p plain
	if err := n.Decode(&p); err != nil {
		return err
	}
	*s = step(p)
	s.line = n.Line

	kinds := 0
	for _, set := range []bool{s.Tool != "", s.Crop != nil, s.Select != nil, s.Move != nil} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return fmt.Errorf("line %d: a step needs exactly one of tool, crop, select or move", n.Line)
	}
	return nil
}

// parseScript decodes a replay script. An empty script has no steps.
func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	if err := yaml.NewDecoder(r).Decode(&steps); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return steps, nil
}

// runScript applies steps to doc in order, stopping at the first one the
// document rejects.
func runScript(doc *annotate.Document, steps []step) error {
	for i, s := range steps {
		if err := s.apply(doc); err != nil {
			return fmt.Errorf("step %d (line %d): %w", i+1, s.line, err)
		}
	}
	return nil
}

func (s step) apply(doc *annotate.Document) error {
	switch {
	case s.Action == actionUndo:
		if !doc.Undo() {
			return fmt.Errorf("%w: nothing to undo", errStepRejected)
		}
	case s.Action == actionRedo:
		if !doc.Redo() {
			return fmt.Errorf("%w: nothing to redo", errStepRejected)
		}
	case s.Action == actionDelete:
		if !doc.DeleteSelectedItem() {
			return fmt.Errorf("%w: nothing selected", errStepRejected)
		}
	case s.Action == actionCancel:
		doc.CancelSelection()
	case s.Tool != "":
		return s.create(doc)
	case s.Crop != nil:
		if len(s.Crop) != 4 {
			return fmt.Errorf("%w: crop takes [x, y, w, h]", errStepRejected)
		}
		r := geom.NewRect(s.Crop[0], s.Crop[1], s.Crop[2], s.Crop[3])
		if !doc.CropCanvas(r) {
			return fmt.Errorf("%w: crop %v leaves no canvas", errStepRejected, r)
		}
	case s.Select != nil:
		if len(s.Select) != 2 {
			return fmt.Errorf("%w: select takes [x, y]", errStepRejected)
		}
		p := geom.Pt(s.Select[0], s.Select[1])
		if !doc.SelectItem(geom.NewRect(p.X-1, p.Y-1, 2, 2)) {
			return fmt.Errorf("%w: no item at %v", errStepRejected, p)
		}
	case s.Move != nil:
		if len(s.Move) != 2 {
			return fmt.Errorf("%w: move takes [dx, dy]", errStepRejected)
		}
		ed := doc.Editor()
		if !ed.Transform(s.Move[0], s.Move[1], 0) {
			return fmt.Errorf("%w: nothing selected to move", errStepRejected)
		}
		if _, ok := ed.CommitChanges(); !ok {
			return fmt.Errorf("%w: move not committed", errStepRejected)
		}
	}
	return nil
}

func (s step) create(doc *annotate.Document) error {
	tool, err := annotate.ParseTool(s.Tool)
	if err != nil {
		return err
	}
	if !tool.Creates() {
		return fmt.Errorf("%w: %s does not draw", errStepRejected, tool)
	}
	if len(s.Points) == 0 {
		return fmt.Errorf("%w: %s needs points", errStepRejected, tool)
	}
	var mods annotate.Modifiers
	if s.Snap {
		mods |= annotate.SnapModifier
	}
	if s.Center {
		mods |= annotate.CenterModifier
	}

	doc.SetTool(tool)
	if !doc.Begin(geom.Pt(s.Points[0][0], s.Points[0][1])) {
		return fmt.Errorf("%w: cannot begin %s", errStepRejected, tool)
	}
	for _, p := range s.Points[1:] {
		doc.Continue(geom.Pt(p[0], p[1]), mods)
	}
	doc.Finish()

	if s.Text != "" {
		ed := doc.Editor()
		if !ed.SetText(s.Text) {
			return fmt.Errorf("%w: %s takes no text", errStepRejected, tool)
		}
		if _, ok := ed.CommitChanges(); !ok {
			return fmt.Errorf("%w: text not committed", errStepRejected)
		}
	}
	if !doc.IsCurrentItemValid() {
		return fmt.Errorf("%w: degenerate %s", errStepRejected, tool)
	}
	return nil
}
