package gameconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the default config file, relative to the working directory.
// TANK_CONFIG overrides it.
const ConfigPath = "config/game.yaml"

// Config is everything the game reads at startup.
type Config struct {
	Window   WindowConfig  `yaml:"window"`
	Map      MapConfig     `yaml:"map"`
	Assets   AssetConfig   `yaml:"assets"`
	Physics  PhysicsConfig `yaml:"physics"`
	Rules    RulesConfig   `yaml:"rules"`
	Camera   CameraConfig  `yaml:"camera"`
	Debug    DebugConfig   `yaml:"debug"`
	LogLevel string        `yaml:"log_level"`
	LogPath  string        `yaml:"log_path"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps"`
}

// MapConfig selects the maze. With an empty Path a map is generated from
// Seed, Width, Depth and CoinDensity.
type MapConfig struct {
	Path        string  `yaml:"path,omitempty"`
	Seed        int64   `yaml:"seed"`
	Width       int     `yaml:"width"`
	Depth       int     `yaml:"depth"`
	CoinDensity float32 `yaml:"coin_density"`
}

// AssetConfig names OBJ models. Missing files fall back to built-in boxes.
type AssetConfig struct {
	TankModel string `yaml:"tank_model,omitempty"`
	BallModel string `yaml:"ball_model,omitempty"`
}

// PhysicsConfig units: world units, milliseconds, degrees. The tank has
// fallen off and the round is lost below TankFallLimit; the ball despawns
// below BallFallLimit.
type PhysicsConfig struct {
	Gravity        [3]float32 `yaml:"gravity"`
	TankMass       float32    `yaml:"tank_mass"`
	BallMass       float32    `yaml:"ball_mass"`
	Thrust         float32    `yaml:"thrust"`
	TurnStep       float32    `yaml:"turn_step"`
	LaunchSpeed    float32    `yaml:"launch_speed"`
	LaunchLift     float32    `yaml:"launch_lift"`
	TankThreshold  float32    `yaml:"tank_threshold"`
	BallThreshold  float32    `yaml:"ball_threshold"`
	Damping        float32    `yaml:"damping"`
	FallingDamping float32    `yaml:"falling_damping"`
	TankFallLimit  float32    `yaml:"tank_fall_limit"`
	BallFallLimit  float32    `yaml:"ball_fall_limit"`
	TickMs         float32    `yaml:"tick_ms"`
}

// RulesConfig: TimeLimit is the round length in seconds, counted down on
// the tick clock while coins remain.
type RulesConfig struct {
	TimeLimit float32 `yaml:"time_limit"`
	CoinSpin  float32 `yaml:"coin_spin"` // degrees per tick
}

// CameraConfig distances are world units, angles degrees. Mouse motion is
// scaled by MouseSensitivity per pixel per millisecond of frame time; the
// wheel by ZoomStep per notch per millisecond.
type CameraConfig struct {
	Fovy              float32 `yaml:"fovy"`
	Near              float32 `yaml:"near"`
	Far               float32 `yaml:"far"`
	FollowDistance    float32 `yaml:"follow_distance"`
	FollowHeight      float32 `yaml:"follow_height"`
	FirstPersonHeight float32 `yaml:"first_person_height"`
	OverheadHeight    float32 `yaml:"overhead_height"`
	FreeDistance      float32 `yaml:"free_distance"`
	FreeMinDistance   float32 `yaml:"free_min_distance"`
	FreeMaxDistance   float32 `yaml:"free_max_distance"`
	MouseSensitivity  float32 `yaml:"mouse_sensitivity"`
	ZoomStep          float32 `yaml:"zoom_step"`
}

type DebugConfig struct {
	ShowBoxes bool `yaml:"show_boxes"`
	ShowFPS   bool `yaml:"show_fps"`
}

// Default returns the stock game settings.
func Default() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Tank Maze", FPS: 60},
		Map:    MapConfig{Seed: 0, Width: 12, Depth: 12, CoinDensity: 0.15},
		Physics: PhysicsConfig{
			Gravity:        [3]float32{0, -0.0001, 0},
			TankMass:       48000,
			BallMass:       1000,
			Thrust:         20,
			TurnStep:       0.3,
			LaunchSpeed:    0.3,
			LaunchLift:     0.15,
			TankThreshold:  14.5,
			BallThreshold:  15.5,
			Damping:        1.0 / 20,
			FallingDamping: 1.0 / 2,
			TankFallLimit:  -14.5,
			BallFallLimit:  -30,
			TickMs:         10,
		},
		Rules: RulesConfig{TimeLimit: 60, CoinSpin: 1},
		Camera: CameraConfig{
			Fovy:              90,
			Near:              0.1,
			Far:               1000,
			FollowDistance:    10,
			FollowHeight:      10,
			FirstPersonHeight: 3.5,
			OverheadHeight:    400,
			FreeDistance:      20,
			FreeMinDistance:   5,
			FreeMaxDistance:   20,
			MouseSensitivity:  0.1,
			ZoomStep:          0.2,
		},
		LogLevel: "info",
		LogPath:  "logs/game.log",
	}
}

// Load reads the YAML file at path on top of Default, so a partial file
// keeps defaults for what it omits. A missing file is not an error. A
// malformed one returns Default and the decode error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	p := c.Physics
	switch {
	case p.TankMass <= 0 || p.BallMass <= 0:
		return errors.New("physics: masses must be positive")
	case p.TickMs <= 0:
		return errors.New("physics: tick_ms must be positive")
	case p.Damping < 0 || p.Damping > 1 || p.FallingDamping < 0 || p.FallingDamping > 1:
		return errors.New("physics: damping fractions must be within [0, 1]")
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return errors.New("camera: need 0 < near < far")
	case c.Camera.Fovy <= 0 || c.Camera.Fovy >= 180:
		return errors.New("camera: fovy must be within (0, 180)")
	case c.Camera.FreeMinDistance <= 0 || c.Camera.FreeMaxDistance < c.Camera.FreeMinDistance:
		return errors.New("camera: need 0 < free_min_distance <= free_max_distance")
	case c.Rules.TimeLimit <= 0:
		return errors.New("rules: time_limit must be positive")
	}
	return nil
}
