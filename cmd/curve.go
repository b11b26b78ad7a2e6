package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JakeFAU/scroll-storyteller/pkg/storyteller"
)

// newCurveCmd creates the 'curve' subcommand.
func newCurveCmd() *cobra.Command {
	var (
		easing string
		steps  int
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Prints an easing curve as a table",
		Long: `Samples an easing function at evenly spaced points in [0,1]. With --all every
available easing is printed side by side.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be >= 1, got %d", steps)
			}
			curves := storyteller.Easings()
			if !all {
				e, err := storyteller.ParseEasing(easing)
				if err != nil {
					return err
				}
				curves = []storyteller.Easing{e}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprint(w, "t")
			for _, e := range curves {
				fmt.Fprintf(w, "\t%s", e)
			}
			fmt.Fprintln(w)
			for i := 0; i <= steps; i++ {
				t := float64(i) / float64(steps)
				fmt.Fprintf(w, "%.4f", t)
				for _, e := range curves {
					fmt.Fprintf(w, "\t%.4f", e.Apply(t))
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&easing, "easing", "linear", "easing name (linear, ease-in, ease-out, ease-in-out, ...)")
	cmd.Flags().IntVar(&steps, "steps", 10, "number of intervals between 0 and 1")
	cmd.Flags().BoolVar(&all, "all", false, "print every easing")
	return cmd
}
