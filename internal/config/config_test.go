package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("default window = %dx%d, want 1280x720", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Geodesy.UTMZone != 33 {
		t.Errorf("default UTM zone = %d, want 33", cfg.Geodesy.UTMZone)
	}
	if cfg.Pose.HFov != 40 || cfg.Pose.VFov != 30 {
		t.Errorf("default fov = %f/%f, want 40/30", cfg.Pose.HFov, cfg.Pose.VFov)
	}
	if !cfg.Pose.Geocentric {
		t.Error("default pose should be geocentric")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %s, want info", cfg.Logging.Level)
	}
}

func TestLoadFromFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terravista.yaml")
	doc := `
geodesy:
  utm_zone: 17
pose:
  x: 630084
  y: 4833438
  z: 250
  yaw: 35.5
tiles:
  urls:
    - http://tiles.example/a.json
    - http://tiles.example/b.json
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.Geodesy.UTMZone != 17 {
		t.Errorf("utm zone = %d, want 17", cfg.Geodesy.UTMZone)
	}
	if cfg.Pose.X != 630084 || cfg.Pose.Yaw != 35.5 {
		t.Errorf("pose = %+v", cfg.Pose)
	}
	if len(cfg.Tiles.URLs) != 2 {
		t.Errorf("got %d tile urls, want 2", len(cfg.Tiles.URLs))
	}

	// Values the file does not mention keep their defaults.
	if cfg.Graphics.Width != 1280 {
		t.Errorf("width = %d, want default 1280", cfg.Graphics.Width)
	}
	if cfg.Pose.HFov != 40 {
		t.Errorf("hfov = %f, want default 40", cfg.Pose.HFov)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "terravista.yaml")

	cfg := Default()
	cfg.Geodesy.UTMZone = 52
	cfg.Pose.Pitch = -12.25
	cfg.Tiles.URLs = []string{"file:///data/tile0.json"}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if loaded.Geodesy.UTMZone != 52 {
		t.Errorf("utm zone = %d, want 52", loaded.Geodesy.UTMZone)
	}
	if loaded.Pose.Pitch != -12.25 {
		t.Errorf("pitch = %f, want -12.25", loaded.Pose.Pitch)
	}
	if len(loaded.Tiles.URLs) != 1 || loaded.Tiles.URLs[0] != "file:///data/tile0.json" {
		t.Errorf("tile urls = %v", loaded.Tiles.URLs)
	}
}
