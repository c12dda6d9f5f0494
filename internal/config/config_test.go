package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir:  "/home/user/.local/share/timestamper",
		LogDir:   "/home/user/.local/share/timestamper/log",
		Platform: "windows",
		Timezone: "Europe/Berlin",
		Journal:  JournalConfig{Type: "sqlite", DataDir: "/home/user/.local/share/timestamper"},
		Display:  DisplayConfig{Colour: "never"},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if *got != *original {
		t.Errorf("round trip = %+v, want %+v", got, original)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/ts")

	if cfg.BaseDir != "/data/ts" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/ts")
	}
	if cfg.LogDir != "/data/ts/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/ts/log")
	}
	if cfg.Platform != "auto" {
		t.Errorf("Platform = %q, want auto", cfg.Platform)
	}
	if cfg.Journal.Type != "sqlite" || cfg.Journal.DataDir != "/data/ts" {
		t.Errorf("Journal = %+v, want sqlite in /data/ts", cfg.Journal)
	}
	if cfg.Display.Colour != "auto" {
		t.Errorf("Display.Colour = %q, want auto", cfg.Display.Colour)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := NewConfig("/data/ts")
	cfg.Platform = "beos"
	cfg.Journal.Type = "postgres"
	cfg.Display.Colour = "sometimes"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, field := range []string{"platform", "journal.type", "display.colour"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Validate() error %q does not mention %s", err, field)
		}
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "timestamper.toml")

		if err := Init(path, NewConfig(dir)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "timestamper.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}
		if err := Init(path, cfg); err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "timestamper.toml")
		cfg := NewConfig(dir)
		cfg.Timezone = "America/New_York"

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.Timezone != "America/New_York" {
			t.Errorf("Timezone = %q, want %q", got.Timezone, "America/New_York")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		if _, err := ReadFromFile("/nonexistent/path/timestamper.toml"); err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := Load(filepath.Join(dir, "absent.toml"), dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if *cfg != *NewConfig(dir) {
			t.Errorf("Load() = %+v, want defaults", cfg)
		}
	})

	t.Run("partial file keeps other defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "timestamper.toml")
		if err := os.WriteFile(path, []byte("platform = \"windows\"\n\n[journal]\ntype = \"none\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path, dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Platform != "windows" {
			t.Errorf("Platform = %q, want windows", cfg.Platform)
		}
		if cfg.Journal.Type != "none" {
			t.Errorf("Journal.Type = %q, want none", cfg.Journal.Type)
		}
		if cfg.Display.Colour != "auto" {
			t.Errorf("Display.Colour = %q, want auto", cfg.Display.Colour)
		}
	})

	t.Run("invalid value is rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "timestamper.toml")
		if err := os.WriteFile(path, []byte("platform = \"amiga\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path, dir); err == nil {
			t.Fatal("Load() expected error for invalid platform")
		}
	})
}
