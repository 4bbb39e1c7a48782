package main

import (
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/gogpu/annotate"
)

type renderFlags struct {
	input  string
	script string
	output string
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Apply a script to a screenshot and write the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, f)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", "", "screenshot to annotate")
	flags.StringVarP(&f.script, "script", "s", "", "YAML script of annotation steps")
	flags.StringVarP(&f.output, "output", "o", "annotated.png", "output image; the format follows the extension")
	flags.Float64(keyScale, 1, "device pixels per logical unit of the screenshot")
	_ = cmd.MarkFlagRequired("input")
	_ = a.cfg.BindPFlag(keyScale, flags.Lookup(keyScale))
	return cmd
}

func (a *app) render(cmd *cobra.Command, f renderFlags) error {
	opts, err := documentOptions(a.cfg)
	if err != nil {
		return err
	}
	scale := a.cfg.GetFloat64(keyScale)
	if !(scale > 0) {
		return fmt.Errorf("invalid scale %v", scale)
	}

	img, err := imaging.Open(f.input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	var steps []step
	if f.script != "" {
		r, err := os.Open(f.script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		steps, err = parseScript(r)
		_ = r.Close()
		if err != nil {
			return err
		}
	}

	doc, err := annotate.NewDocument(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = doc.Close() }()

	doc.SetBaseImage(img, scale)
	if err := runScript(doc, steps); err != nil {
		return err
	}
	out, err := doc.RenderToImage(annotate.RenderOptions{Images: true, Annotations: true})
	if err != nil {
		return err
	}
	if err := imaging.Save(out, f.output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	size := out.Bounds().Size()
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, %d steps)\n", f.output, size.X, size.Y, len(steps))
	return nil
}
