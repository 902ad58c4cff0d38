package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cpwdesign/pkg/component"
)

type meanderOpts struct {
	length    float64
	maxHeight float64
	radius    float64
	coupling  float64
	spacer    float64
	used      float64
	end       string
	capLength float64
}

// meanderCommand runs the meander search on its own (debug tool).
func (c *CLI) meanderCommand() *cobra.Command {
	opts := &meanderOpts{}

	cmd := &cobra.Command{
		Use:   "meander",
		Short: "Solve a resonator meander without building geometry (debug tool)",
		Long: `Run the meander search for a resonator length budget and print the result.

The length already used before the meander defaults to the coupler, the
quarter-turn spacer arc and the spacer straight. Pass --used to override it.`,
		Example: `  # The 5 mm resonator from the examples
  cpwdesign meander --length 5000 --max-height 500 --end straight

  # Explicit budget
  cpwdesign meander --length 3240 --max-height 800 --used 445.3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMeander(cmd, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.length, "length", 5000, "target resonator length")
	cmd.Flags().Float64Var(&opts.maxHeight, "max-height", 500, "vertical span available to the meander")
	cmd.Flags().Float64Var(&opts.radius, "radius", 92.5, "turn radius")
	cmd.Flags().Float64Var(&opts.coupling, "coupling", 100, "coupler length")
	cmd.Flags().Float64Var(&opts.spacer, "spacer", 200, "coupling spacer length")
	cmd.Flags().Float64Var(&opts.used, "used", -1, "length used before the meander (derived when negative)")
	cmd.Flags().StringVar(&opts.end, "end", string(component.EndArc), "termination: arc, straight or none")
	cmd.Flags().Float64Var(&opts.capLength, "cap", 4, "end cap length (the CPW centre width)")

	return cmd
}

func (c *CLI) runMeander(cmd *cobra.Command, opts *meanderOpts) error {
	logger := loggerFromContext(cmd.Context())

	end, err := component.ParseEndStyle(opts.end)
	if err != nil {
		return err
	}
	used := opts.used
	if used < 0 {
		used = opts.coupling + 0.5*math.Pi*opts.radius + opts.spacer
	}
	logger.Debug("meander budget", "length", opts.length, "used", used, "end", end)

	m, err := component.SolveMeander(component.MeanderInput{
		Length:    opts.length,
		Used:      used,
		MaxHeight: opts.maxHeight,
		Radius:    opts.radius,
		End:       end,
		CapLength: opts.capLength,
	})
	if err != nil {
		return err
	}

	printSuccess("Meander found")
	printKeyValue("Loops", fmt.Sprintf("%d", m.N))
	printKeyValue("Height", fmt.Sprintf("%.4f", m.Height))
	printKeyValue("Last", fmt.Sprintf("%.4f", m.LastHeight))
	printKeyValue("Entry", fmt.Sprintf("%.4f", m.EntryHeight(opts.radius)))
	printKeyValue("Attempts", fmt.Sprintf("%d", m.Iterations))
	printDetail("each loop adds %.4f", math.Pi*opts.radius+m.Height)
	return nil
}
