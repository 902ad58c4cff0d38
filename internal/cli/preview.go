package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cpwdesign/pkg/component"
	"github.com/matzehuels/cpwdesign/pkg/render/sink"
)

type previewOpts struct {
	output    string
	component string
	scale     float64
}

// previewCommand rasterises a single component, picked interactively unless
// --component names it.
func (c *CLI) previewCommand() *cobra.Command {
	opts := &previewOpts{}

	cmd := &cobra.Command{
		Use:   "preview <design.toml>",
		Short: "Rasterise one component of a design to PNG",
		Example: `  # Pick a component from a list
  cpwdesign preview chip.toml

  # Non-interactive
  cpwdesign preview chip.toml --component "RES 1" -o res1.png --scale 0.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG (defaults to <design>_<component>.png)")
	cmd.Flags().StringVarP(&opts.component, "component", "c", "", "component to preview (skips the picker)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0.25, "pixels per design unit")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, opts *previewOpts) error {
	logger := loggerFromContext(ctx)

	_, d, err := c.loadDesign(input)
	if err != nil {
		return err
	}
	if err := d.Generate(ctx); err != nil {
		logger.Warn("some components failed", "err", err)
	}

	var picked component.Generator
	if opts.component != "" {
		comp, ok := d.Component(opts.component)
		if !ok {
			return fmt.Errorf("no component %q in %s", opts.component, d.Name())
		}
		picked = comp
	} else {
		model, err := tea.NewProgram(NewComponentListModel(d.Components()), tea.WithContext(ctx)).Run()
		if err != nil {
			return fmt.Errorf("component picker: %w", err)
		}
		picked = model.(ComponentListModel).Selected
		if picked == nil {
			printInfo("Nothing selected")
			return nil
		}
	}

	path := opts.output
	if path == "" {
		path = fmt.Sprintf("%s_%s.png", basePath("", input), strings.ReplaceAll(picked.Name(), " ", "_"))
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rasterising %s...", picked.Name()))
	spinner.Start()
	data, err := previewPNG(ctx, picked, opts.scale)
	if err == nil {
		err = writeFile(c.Out, data, path)
	}
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Preview of %s failed", picked.Name()))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Preview of %s", StyleHighlight.Render(picked.Name())))
	printFile(path)
	return nil
}

// previewPNG draws a single generated component and rasterises it.
func previewPNG(ctx context.Context, comp component.Generator, scale float64) ([]byte, error) {
	canvas := sink.NewCanvas()
	if err := canvas.AddLayer(comp.Layer()); err != nil {
		return nil, err
	}
	if err := comp.Draw(ctx, canvas); err != nil {
		return nil, err
	}
	return sink.RenderPNG(canvas, sink.WithScale(scale))
}
