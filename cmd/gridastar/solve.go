package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/adapter"
	"github.com/pdrpinto/gridastar/internal/gridfile"
)

var errMissingEndpoint = errors.New("missing endpoint")

// parsePoint reads "x,y".
func parsePoint(s string) (gridastar.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return gridastar.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return gridastar.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return gridastar.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return gridastar.Point{X: x, Y: y}, nil
}

// endpoint prefers the flag value over the marker in the file.
func endpoint(name, flag string, fromFile gridastar.Point, inFile bool) (gridastar.Point, error) {
	if flag != "" {
		return parsePoint(flag)
	}
	if inFile {
		return fromFile, nil
	}
	return gridastar.Point{}, fmt.Errorf("%s: %w: pass --%s or mark it in the file", name, errMissingEndpoint, name)
}

func (a *app) solveCmd() *cobra.Command {
	var file, start, goal, algorithm, frontier, format string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find a path through a scenario file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "text" {
				return fmt.Errorf("unknown format %q", format)
			}
			sc, err := gridfile.Load(file)
			if err != nil {
				return err
			}
			s, err := endpoint("start", start, sc.Start, sc.HasStart)
			if err != nil {
				return err
			}
			g, err := endpoint("goal", goal, sc.Goal, sc.HasGoal)
			if err != nil {
				return err
			}

			resp, err := adapter.Solve(adapter.Request{
				Grid:      sc.Grid.Rows(),
				StartX:    s.X,
				StartY:    s.Y,
				EndX:      g.X,
				EndY:      g.Y,
				Algorithm: algorithm,
				Frontier:  frontier,
			})
			if err != nil {
				return err
			}
			a.logger.Debug("solved",
				zap.String("file", file),
				zap.Stringer("start", s),
				zap.Stringer("goal", g),
				zap.Bool("found", resp.Found),
				zap.Int("expanded", resp.Expanded),
				zap.Float64("execution_ms", resp.ExecutionTime))

			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			path := make([]gridastar.Point, len(resp.Path))
			for i, p := range resp.Path {
				path[i] = gridastar.Point{X: p.X, Y: p.Y}
			}
			fmt.Fprint(out, sc.Grid.Render(path))
			if !resp.Found {
				fmt.Fprintf(out, "no path from %s to %s (%d expanded)\n", s, g, resp.Expanded)
				return nil
			}
			fmt.Fprintf(out, "%s: %d cells, cost %.3f, %d expanded, %.3f ms\n",
				resp.Algorithm, len(resp.Path), resp.Cost, resp.Expanded, resp.ExecutionTime)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&file, "file", "f", "", "scenario file (.txt or .yaml)")
	f.StringVar(&start, "start", "", "start cell as x,y (default: S marker)")
	f.StringVar(&goal, "goal", "", "goal cell as x,y (default: G marker)")
	f.StringVarP(&algorithm, "algorithm", "a", "astar", "astar, dijkstra or bfs")
	f.StringVar(&frontier, "frontier", "scan", "scan or heap")
	f.StringVarP(&format, "format", "o", "text", "json or text")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
