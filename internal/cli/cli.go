// Package cli implements the cpwdesign command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cpwdesign/pkg/buildinfo"
	"github.com/matzehuels/cpwdesign/pkg/config"
	"github.com/matzehuels/cpwdesign/pkg/design"
	"github.com/matzehuels/cpwdesign/pkg/render/nodelink"
	"github.com/matzehuels/cpwdesign/pkg/render/sink"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "cpwdesign"

	formatSVG  = "svg"
	formatPNG  = "png"
	formatJSON = "json"
	formatDOT  = "dot"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatSVG: true, formatPNG: true, formatJSON: true, formatDOT: true}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), Out: os.Stdout}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "cpwdesign lays out coplanar waveguide circuits",
		Long:         `cpwdesign turns TOML design files into mask geometry for superconducting coplanar waveguide circuits: meandered resonators, feed lines with bonding pads and die outlines.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.meanderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Design Loading
// =============================================================================

// loadDesign reads a design file and builds its components, ungenerated.
func (c *CLI) loadDesign(path string) (*config.File, *design.Design, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	d, err := f.Design(c.Logger)
	if err != nil {
		return nil, nil, err
	}
	return f, d, nil
}

// drawCanvas draws every generated component of d onto a fresh canvas.
func drawCanvas(ctx context.Context, d *design.Design) (*sink.Canvas, error) {
	canvas := sink.NewCanvas()
	if err := d.Draw(ctx, canvas); err != nil {
		return nil, err
	}
	return canvas, nil
}

// =============================================================================
// Formats & Output
// =============================================================================

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'png', 'json' or 'dot')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, ...), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// render produces one output format for a drawn design.
func render(ctx context.Context, d *design.Design, canvas *sink.Canvas, format string) ([]byte, error) {
	switch format {
	case formatSVG:
		return sink.RenderSVG(canvas), nil
	case formatPNG:
		return sink.RenderPNG(canvas)
	case formatJSON:
		return sink.RenderJSON(canvas, sink.WithJSONDesign(d))
	case formatDOT:
		return []byte(nodelink.ToDOT(d, nodelink.Options{Detailed: true})), nil
	default:
		return nil, fmt.Errorf("invalid format: %s", format)
	}
}

// writeFile writes data to path, or to w when path is empty.
func writeFile(w io.Writer, data []byte, path string) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
