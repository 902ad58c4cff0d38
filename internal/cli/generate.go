package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type generateOpts struct {
	output  string
	formats string
	strict  bool
}

// generateCommand creates the generate command: load, generate, draw, write.
func (c *CLI) generateCommand() *cobra.Command {
	opts := &generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate <design.toml>",
		Short: "Generate the geometry of a design file",
		Long: `Generate every component of a design file and write the drawn geometry.

Components that fail to generate are reported and left out of the output.
With --strict any failure aborts before writing.`,
		Example: `  # SVG next to the design file
  cpwdesign generate chip.toml

  # Several formats with a common base name
  cpwdesign generate chip.toml -o out/chip -f svg,png,json,dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (defaults to the input path)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output formats: svg, png, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when any component fails to generate")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, input string, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	formats := parseFormats(opts.formats)
	if err := validateFormats(formats); err != nil {
		return err
	}

	f, d, err := c.loadDesign(input)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %d components...", f.Count()))
	spinner.Start()
	genErr := d.Generate(ctx)
	spinner.Stop()
	if genErr != nil {
		if spinner.Cancelled() || opts.strict {
			return genErr
		}
		printWarning("%v", genErr)
	}
	prog.done("Generated design", "design", d.Name(), "components", len(d.Components()))

	canvas, err := drawCanvas(ctx, d)
	if err != nil {
		return err
	}

	base := basePath(opts.output, input)
	var written []string
	for _, format := range formats {
		data, err := render(ctx, d, canvas, format)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		path := fmt.Sprintf("%s.%s", base, format)
		if err := writeFile(c.Out, data, path); err != nil {
			return err
		}
		logger.Debug("wrote output", "path", path, "bytes", len(data))
		written = append(written, path)
	}

	printSuccess("Design %s generated", StyleHighlight.Render(d.Name()))
	printStats(canvas.Len(), len(canvas.Layers()), genErr == nil)
	for _, p := range written {
		printFile(p)
	}
	printNextStep("Preview live", fmt.Sprintf("%s serve %s", appName, input))
	return nil
}
