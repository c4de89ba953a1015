package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdrpinto/gridastar/internal/gridfile"
	"github.com/pdrpinto/gridastar/internal/gridgen"
)

func (a *app) genCmd() *cobra.Command {
	p := gridgen.Params{}.Defaults()
	var markers bool

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random scenario in the text format",
		Long: `gen scatters wall clusters by random walk and prints the grid.
The same flags always print the same grid, so the output can be piped
into a file and solved later.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := gridgen.Generate(p)
			if err != nil {
				return err
			}
			a.logger.Debug("generated",
				zap.Int("width", p.Width),
				zap.Int("height", p.Height),
				zap.Uint64("seed", p.Seed),
				zap.Stringer("start", sc.Start),
				zap.Stringer("goal", sc.Goal))

			_, err = fmt.Fprint(cmd.OutOrStdout(), gridfile.FormatText(gridfile.Scenario{
				Grid:     sc.Grid,
				Start:    sc.Start,
				Goal:     sc.Goal,
				HasStart: markers,
				HasGoal:  markers,
			}))
			return err
		},
	}

	f := cmd.Flags()
	f.IntVar(&p.Width, "width", p.Width, "grid width")
	f.IntVar(&p.Height, "height", p.Height, "grid height")
	f.IntVar(&p.Clusters, "clusters", p.Clusters, "number of wall clusters")
	f.IntVar(&p.Steps, "steps", p.Steps, "random-walk steps per cluster")
	f.Float64Var(&p.Density, "density", p.Density, "chance a visited cell becomes a wall")
	f.Uint64Var(&p.Seed, "seed", 0, "random seed")
	f.BoolVar(&markers, "markers", true, "draw S and G markers")
	return cmd
}
