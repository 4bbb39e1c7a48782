package main

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeScreenshot(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	path := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "annotate dev\n", out)
}

func TestRenderCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	input := writeScreenshot(t, 100, 80)
	script := writeFile(t, "steps.yaml", `
- tool: rectangle
  points: [[10, 10], [50, 40]]
- tool: arrow
  points: [[60, 70], [90, 50]]
- crop: [0, 0, 80, 60]
`)
	output := filepath.Join(t.TempDir(), "out.png")

	out, err := execute(t, "render", "-i", input, "-s", script, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "80x60, 3 steps")

	img, err := imaging.Open(output)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 80, 60), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, color.NRGBAModel.Convert(img.At(30, 25)))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, color.NRGBAModel.Convert(img.At(75, 5)))
}

func TestRenderCommandScale(t *testing.T) {
	t.Chdir(t.TempDir())
	input := writeScreenshot(t, 100, 80)
	output := filepath.Join(t.TempDir(), "out.png")

	out, err := execute(t, "render", "-i", input, "-o", output, "--scale", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "100x80, 0 steps")
}

func TestRenderCommandErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	input := writeScreenshot(t, 20, 20)
	output := filepath.Join(t.TempDir(), "out.png")

	_, err := execute(t, "render", "-o", output)
	require.Error(t, err, "input is required")

	_, err = execute(t, "render", "-i", filepath.Join(t.TempDir(), "missing.png"), "-o", output)
	require.ErrorContains(t, err, "open input")

	bad := writeFile(t, "steps.yaml", "- undo\n")
	_, err = execute(t, "render", "-i", input, "-s", bad, "-o", output)
	require.ErrorIs(t, err, errStepRejected)

	_, err = execute(t, "render", "-i", input, "-o", output, "--scale", "0")
	require.ErrorContains(t, err, "invalid scale")
}
