package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/knightgrid/game/engine"
	"github.com/wricardo/mcp-training/knightgrid/game/service"
)

func TestStartStats(t *testing.T) {
	tests := []struct {
		rows, cols int
		expected   StartStats
	}{
		{1, 1, StartStats{Best: 1, Worst: 1, BestStarts: 1, FullTours: 1}},
		{1, 4, StartStats{Best: 1, Worst: 1, BestStarts: 4, FullTours: 0}},
		{2, 3, StartStats{Best: 2, Worst: 1, BestStarts: 4, FullTours: 0}},
	}

	for _, tt := range tests {
		got := startStats(tt.rows, tt.cols)
		if got != tt.expected {
			t.Errorf("startStats(%d, %d) = %+v, want %+v", tt.rows, tt.cols, got, tt.expected)
		}
	}
}

func TestStartStats_ThreeByThree(t *testing.T) {
	stats := startStats(3, 3)

	if stats.Best != engine.EstimateMaxTour(3, 3) {
		t.Errorf("Expected best %d, got %d", engine.EstimateMaxTour(3, 3), stats.Best)
	}
	if stats.Worst != 1 {
		t.Errorf("Expected the isolated centre to give a tour of 1, got %d", stats.Worst)
	}
	if stats.FullTours != 0 {
		t.Errorf("Expected no full tours on 3x3, got %d", stats.FullTours)
	}
}

func TestAnalyzeConfig(t *testing.T) {
	info := &service.ConfigInfo{
		ConfigID: "tiny",
		Name:     "Tiny",
		Rows:     3,
		Cols:     3,
		MaxMoves: engine.EstimateMaxTour(3, 3),
	}

	var out bytes.Buffer
	analyzeConfig(&out, info)
	text := out.String()

	for _, want := range []string{
		"Name: Tiny",
		"Grid Size: 3 x 3 (9 cells)",
		"Maximum possible: 8",
		"Best start: (0, 0)",
		"No start visits every cell",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}
}

func TestRun_DefaultOnly(t *testing.T) {
	var out bytes.Buffer
	if err := run(t.TempDir(), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !strings.Contains(out.String(), "=== Analyzing default ===") {
		t.Errorf("Expected the built-in default to be analyzed:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Grid Size: 10 x 5") {
		t.Errorf("Expected default 10x5 grid:\n%s", out.String())
	}
}

func TestRun_ConfigDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "configs")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if err := run(file, &bytes.Buffer{}); err == nil {
		t.Error("Expected error when the config directory is a file")
	}
}
