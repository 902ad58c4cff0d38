package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cpwdesign/pkg/component"
	"github.com/matzehuels/cpwdesign/pkg/design"
)

// inspectCommand generates a design and prints one table row per component.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <design.toml>",
		Short: "Show the components of a design file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, d, err := c.loadDesign(args[0])
			if err != nil {
				return err
			}
			if err := d.Generate(ctx); err != nil {
				loggerFromContext(ctx).Warn("some components failed", "err", err)
			}

			fmt.Fprintln(c.Out, StyleTitle.Render(d.Name()))
			fmt.Fprintln(c.Out, componentTable(d).Render())
			return nil
		},
	}
}

var componentHeaders = []string{"Component", "Kind", "Layer", "Sections", "Length", "Mismatch", "Status"}

// componentRows summarises every component of d in insertion order.
func componentRows(d *design.Design) [][]string {
	var rows [][]string
	for _, c := range d.Components() {
		status := "ok"
		if !c.Generated() {
			status = "failed"
		}
		mismatch := "-"
		if r, ok := c.(*component.Resonator); ok && r.Generated() {
			mismatch = fmt.Sprintf("%.2e", r.Mismatch())
		}
		rows = append(rows, []string{
			c.Name(),
			c.Kind(),
			c.Layer(),
			fmt.Sprintf("%d", len(c.Sections())),
			fmt.Sprintf("%.3f", c.ActualLength()),
			mismatch,
			status,
		})
	}
	return rows
}

func componentTable(d *design.Design) *table.Table {
	rows := componentRows(d)
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	statusCol := len(componentHeaders) - 1

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(componentHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == statusCol && row < len(rows) {
				if rows[row][col] == "ok" {
					return base.Foreground(colorGreen)
				}
				return base.Foreground(colorRed)
			}
			return base
		})
}
