// Command validate checks the game configuration JSON files in a directory
// (default ../configs). It checks:
//   - JSON structure
//   - the rules enforced when a config is loaded (name, description, grid and
//     cell size ranges, the game_over format)
//   - that the instructions message is present
//
// For each valid file it also reports how much of the grid a knight can reach
// from the top-left cell and the Warnsdorff estimate for the grid size.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/knightgrid/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
	}

	if config.Messages.Instructions == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required message: instructions")
	}

	if result.Valid {
		reachable, total := knightReach(config.Rows, config.Cols)
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d (cell %dpx)", config.Rows, config.Cols, config.CellSize))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Knight reach from (0, 0): %d/%d cells", reachable, total))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Maximum possible: %d", engine.EstimateMaxTour(config.Rows, config.Cols)))
	}

	return result
}

// knightReach flood-fills knight moves from (0, 0) and returns the number of
// cells reached out of the total.
func knightReach(rows, cols int) (int, int) {
	total := rows * cols
	if total == 0 {
		return 0, 0
	}

	visited := make(map[engine.Position]bool, total)
	queue := []engine.Position{{Row: 0, Col: 0}}
	visited[queue[0]] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range engine.KnightNeighbors(current, rows, cols) {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	return len(visited), total
}

// run validates every *.json file in configDir, writes the report to out and
// reports whether all files were valid.
func run(configDir string, out io.Writer) (bool, error) {
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		return false, fmt.Errorf("finding config files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no config files in %s", configDir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Fprintf(out, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(out, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(out, "  "+info)
			}
		} else {
			fmt.Fprintln(out, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Fprintln(out, "  ❌ "+err)
				}
			}
		}
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(out, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(out, "❌ Some configurations have errors")
	}
	return allValid, nil
}

// main validates ../configs, or the directory given as the first argument,
// and exits with non-zero status if any file is invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	allValid, err := run(configDir, os.Stdout)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if !allValid {
		os.Exit(1)
	}
}
