package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/mcp-training/knightgrid/game/engine"
)

func createValidConfig(name string, rows, cols int) *engine.GameConfig {
	config := &engine.GameConfig{
		Name:        name,
		Description: "Test configuration",
		Rows:        rows,
		Cols:        cols,
		CellSize:    40,
	}
	config.Messages.Welcome = "Welcome!"
	config.Messages.GameOver = "Moves %d of %d"
	config.Messages.Rejected = "Nope"
	return config
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "default", createValidConfig("Default", 6, 6))

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if got := manager.GetDefault().Name; got != "Default" {
			t.Errorf("Expected default config 'Default', got %q", got)
		}
	})

	t.Run("non-existent directory falls back to built-in", func(t *testing.T) {
		manager, err := NewManager(filepath.Join(t.TempDir(), "missing"))
		if err != nil {
			t.Fatalf("NewManager should succeed without a directory, got: %v", err)
		}
		def := manager.GetDefault()
		if def.Rows != engine.DefaultRows || def.Cols != engine.DefaultCols {
			t.Errorf("Expected built-in %dx%d default, got %dx%d", engine.DefaultRows, engine.DefaultCols, def.Rows, def.Cols)
		}
	})

	t.Run("path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.json")
		if err := os.WriteFile(file, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewManager(file); err == nil {
			t.Error("Expected error when config path is a file")
		}
	})

	t.Run("first valid file becomes default", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "small", createValidConfig("Small", 5, 5))

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if got := manager.GetDefault().Name; got != "Small" {
			t.Errorf("Expected 'Small' as default, got %q", got)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "small", createValidConfig("Small", 5, 5))

	invalid := createValidConfig("Broken", 0, 5)
	writeConfigFile(t, dir, "broken", invalid)

	if err := os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	tests := []struct {
		name    string
		config  string
		wantErr error
	}{
		{"by name", "small", nil},
		{"with extension", "small.json", nil},
		{"missing", "nope", ErrConfigNotFound},
		{"invalid dimensions", "broken", ErrInvalidConfig},
		{"unparseable", "garbage", ErrInvalidConfig},
		{"path traversal", "../small", ErrConfigNotFound},
		{"built-in default", "default", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := manager.LoadConfig(tt.config)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if config == nil {
				t.Fatal("Expected config, got nil")
			}
		})
	}
}

func TestLoadConfig_Caches(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "small", createValidConfig("Small", 5, 5))

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	first, err := manager.LoadConfig("small")
	if err != nil {
		t.Fatal(err)
	}

	// Changing the file must not affect the cached copy until a refresh.
	writeConfigFile(t, dir, "small", createValidConfig("Changed", 7, 7))
	second, _ := manager.LoadConfig("small")
	if first != second {
		t.Error("Expected the cached config pointer")
	}

	manager.RefreshCache()
	third, err := manager.LoadConfig("small")
	if err != nil {
		t.Fatal(err)
	}
	if third.Name != "Changed" {
		t.Errorf("Expected reloaded config 'Changed', got %q", third.Name)
	}
}

func TestListConfigs(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "small", createValidConfig("Small", 5, 5))
	writeConfigFile(t, dir, "tiny", createValidConfig("Tiny", 3, 3))
	writeConfigFile(t, dir, "broken", createValidConfig("", 3, 3))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}

	// default (built-in), small, tiny
	if len(configs) != 3 {
		t.Fatalf("Expected 3 configs, got %d", len(configs))
	}

	want := []string{"default", "small", "tiny"}
	for i, id := range want {
		if configs[i].ConfigID != id {
			t.Errorf("configs[%d].ConfigID = %q, want %q", i, configs[i].ConfigID, id)
		}
	}

	tiny := configs[2]
	if tiny.Rows != 3 || tiny.Cols != 3 {
		t.Errorf("Expected 3x3, got %dx%d", tiny.Rows, tiny.Cols)
	}
	if tiny.MaxMoves != 8 {
		t.Errorf("Expected MaxMoves 8 for 3x3, got %d", tiny.MaxMoves)
	}
	if tiny.Filename != "tiny.json" {
		t.Errorf("Expected filename tiny.json, got %q", tiny.Filename)
	}
}

func TestSetDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "small", createValidConfig("Small", 5, 5))

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := manager.SetDefault("missing"); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}

	if err := manager.SetDefault("default"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if manager.GetDefault().Name != "default" {
		t.Errorf("Expected built-in default, got %q", manager.GetDefault().Name)
	}
}

func TestConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "small", createValidConfig("Small", 5, 5))

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 4 {
			case 0:
				manager.RefreshCache()
			case 1:
				_, _ = manager.ListConfigs()
			case 2:
				_ = manager.GetDefault()
			default:
				if _, err := manager.LoadConfig("small"); err != nil {
					t.Errorf("LoadConfig failed: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()
}
