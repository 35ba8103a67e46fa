// Command analyze prints Warnsdorff tour statistics for every configuration in
// the configs directory: grid size, the estimated maximum, the best start, how
// many starts reach it and the numbered tour itself.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/mcp-training/knightgrid/game/config"
	"github.com/wricardo/mcp-training/knightgrid/game/engine"
	"github.com/wricardo/mcp-training/knightgrid/game/service"
	"github.com/wricardo/mcp-training/knightgrid/game/view"
)

// StartStats summarizes Warnsdorff tour lengths over every start cell.
type StartStats struct {
	Best       int // longest tour from any start
	Worst      int // shortest tour from any start
	BestStarts int // starts whose tour reaches Best
	FullTours  int // starts whose tour visits every cell
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	configDir := "configs"
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		configDir = dir
	}
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	if err := run(configDir, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("analyze failed")
	}
}

func run(configDir string, out io.Writer) error {
	manager, err := config.NewManager(configDir)
	if err != nil {
		return err
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		return err
	}

	for _, info := range configs {
		fmt.Fprintf(out, "\n=== Analyzing %s ===\n", info.ConfigID)
		analyzeConfig(out, info)
	}
	return nil
}

func analyzeConfig(out io.Writer, info *service.ConfigInfo) {
	plan := engine.BestWarnsdorffTour(info.Rows, info.Cols)
	stats := startStats(info.Rows, info.Cols)
	cells := info.Rows * info.Cols

	fmt.Fprintf(out, "Name: %s\n", info.Name)
	fmt.Fprintf(out, "Grid Size: %d x %d (%d cells)\n", info.Rows, info.Cols, cells)
	fmt.Fprintf(out, "Maximum possible: %d\n", info.MaxMoves)
	fmt.Fprintf(out, "Best start: (%d, %d)\n", plan.Start.Row, plan.Start.Col)
	fmt.Fprintf(out, "Starts reaching the maximum: %d of %d\n", stats.BestStarts, cells)
	fmt.Fprintf(out, "Shortest tour from any start: %d\n", stats.Worst)

	if stats.FullTours > 0 {
		fmt.Fprintf(out, "✅ %d starts visit every cell\n", stats.FullTours)
	} else {
		fmt.Fprintf(out, "⚠️  No start visits every cell (%d unreachable by the heuristic)\n", cells-stats.Best)
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, view.RenderTour(plan))
}

// startStats runs WarnsdorffTour from every cell.
func startStats(rows, cols int) StartStats {
	stats := StartStats{}
	first := true

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			length := len(engine.WarnsdorffTour(rows, cols, engine.Position{Row: r, Col: c}))
			log.Debug().Int("row", r).Int("col", c).Int("length", length).Msg("tour from start")

			switch {
			case first || length > stats.Best:
				stats.Best, stats.BestStarts = length, 1
			case length == stats.Best:
				stats.BestStarts++
			}
			if first || length < stats.Worst {
				stats.Worst = length
			}
			if length == rows*cols {
				stats.FullTours++
			}
			first = false
		}
	}

	return stats
}
