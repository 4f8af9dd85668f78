// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Geodesy  GeodesyConfig  `yaml:"geodesy"`
	Pose     PoseConfig     `yaml:"pose"`
	Tiles    TilesConfig    `yaml:"tiles"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// GeodesyConfig holds the projection settings for the survey data.
type GeodesyConfig struct {
	UTMZone int `yaml:"utm_zone"`
}

// PoseConfig holds the surveyed camera pose: projected position in meters,
// angles in degrees.
type PoseConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Yaw   float64 `yaml:"yaw"`
	Pitch float64 `yaml:"pitch"`
	Roll  float64 `yaml:"roll"`
	HFov  float64 `yaml:"hfov"`
	VFov  float64 `yaml:"vfov"`

	// Geocentric selects whether yaw/pitch/roll are relative to the
	// geocentric navigation frame or the renderer's local frame.
	Geocentric bool `yaml:"geocentric"`
}

// TilesConfig holds the terrain tile sources, loaded in order.
type TilesConfig struct {
	URLs []string `yaml:"urls"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Geodesy: GeodesyConfig{
			UTMZone: 33,
		},
		Pose: PoseConfig{
			HFov:       40,
			VFov:       30,
			Geocentric: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
