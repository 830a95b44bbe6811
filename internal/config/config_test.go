package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestManager_ReadWrite(t *testing.T) {
	cfg := NewConfig("station-01", "/var/lib/objectif")
	cfg.WorkspaceRoot = "/data/affaires"
	cfg.Adb.Path = "/opt/platform-tools/adb"

	var buf bytes.Buffer
	m := &Manager{}
	if err := m.Write(&buf, cfg); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestManager_Read_invalid(t *testing.T) {
	m := &Manager{}
	if _, err := m.Read(strings.NewReader("station_id = [broken")); err == nil {
		t.Error("Read() with invalid toml succeeded")
	}
}

func TestNewConfig_defaults(t *testing.T) {
	cfg := NewConfig("station-01", "/base")

	if cfg.LogDir != filepath.Join("/base", "log") {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.Adb.CaptureDelaySeconds != 3 || cfg.Adb.TimeoutSeconds != 30 {
		t.Errorf("Adb defaults = %+v", cfg.Adb)
	}
	if cfg.Thumbnails.MaxWidth != 256 || cfg.Thumbnails.Quality != 85 {
		t.Errorf("Thumbnails defaults = %+v", cfg.Thumbnails)
	}
}

func TestInit(t *testing.T) {
	t.Run("creates file and parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conf", "objectif.toml")
		cfg := NewConfig("station-01", "/base")

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.StationID != "station-01" {
			t.Errorf("StationID = %q, want station-01", got.StationID)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "objectif.toml")
		cfg := NewConfig("station-01", "/base")

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}
		if err := Init(path, cfg); err == nil {
			t.Error("second Init() succeeded, want already-exists error")
		}
	})
}

func TestSetWorkspace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "objectif.toml")
	if err := Init(path, NewConfig("station-01", "/base")); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	cfg, err := SetWorkspace(path, "/data/affaires")
	if err != nil {
		t.Fatalf("SetWorkspace() error = %v", err)
	}
	if cfg.WorkspaceRoot != "/data/affaires" {
		t.Errorf("returned WorkspaceRoot = %q", cfg.WorkspaceRoot)
	}

	reloaded, err := ReadFromFile(path)
	if err != nil {
		t.Fatalf("ReadFromFile() error = %v", err)
	}
	if reloaded.WorkspaceRoot != "/data/affaires" {
		t.Errorf("persisted WorkspaceRoot = %q", reloaded.WorkspaceRoot)
	}
	// Untouched fields survive the rewrite.
	if reloaded.StationID != "station-01" {
		t.Errorf("StationID = %q, want station-01", reloaded.StationID)
	}
}
