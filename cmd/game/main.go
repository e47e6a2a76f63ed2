package main

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tank-maze/internal/debug"
	"tank-maze/internal/fonts"
	"tank-maze/internal/gameconfig"
	"tank-maze/internal/geometry"
	"tank-maze/internal/graphics"
	"tank-maze/internal/grid"
	"tank-maze/internal/input"
	"tank-maze/internal/logger"
	"tank-maze/internal/mapgen"
	"tank-maze/internal/scene"
	"tank-maze/internal/sim"
	"tank-maze/internal/vmath"
)

// Stand-in meshes when no OBJ model is configured or it fails to load. The
// hull's base rests at the tank's standing height.
var (
	tankHalf = vmath.V3(4, 1.5, 5)
	ballHalf = float32(0.5)
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tank-maze:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := gameconfig.LoadEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfgPath := gameconfig.Path()
	cfg, cfgErr := gameconfig.Load(cfgPath)
	if err := gameconfig.ApplyEnv(&cfg); err != nil {
		return err
	}

	base, err := logger.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer base.Sync()
	log := base.With(zap.String("session", uuid.NewString()))
	if cfgErr != nil {
		log.Warn("config unreadable, using defaults", zap.String("path", cfgPath), zap.Error(cfgErr))
	}

	g, err := loadGrid(cfg.Map, log)
	if err != nil {
		log.Error("map", zap.Error(err))
		return err
	}
	tank := loadMesh(cfg.Assets.TankModel, geometry.Hull(tankHalf), log)
	ball := loadMesh(cfg.Assets.BallModel, geometry.Cube(ballHalf), log)

	st, err := sim.New(cfg, g, tank, ball, log)
	if err != nil {
		log.Error("start", zap.Error(err))
		return err
	}

	hud := debug.New(cfg.Debug.ShowFPS)
	keys := input.DefaultBindings()
	keys.Sensitivity = cfg.Camera.MouseSensitivity
	keys.ZoomStep = cfg.Camera.ZoomStep
	var scn *scene.Scene
	var font rl.Font
	var stepErr error

	update := func(dtMs float32, w, h int) {
		if stepErr != nil {
			return
		}
		st.SetAspect(w, h)
		if err := st.Step(keys.Read(input.Raylib{}, input.Raylib{}, dtMs), dtMs); err != nil {
			stepErr = err
			log.Error("step", zap.Error(err))
		}
	}
	draw := func() {
		// GPU resources need the window, so they are created on the first frame.
		if scn == nil {
			scn = scene.New(st)
			if path, ok := fonts.First(fonts.BaseDirs()); ok {
				font = rl.LoadFont(path)
				hud.SetFont(font)
			}
		}
		scn.Draw(st)
		hud.Draw(st, base.Lines())
	}

	log.Info("game started",
		zap.Int("coins", g.Coins()),
		zap.Stringer("camera", st.Mode))
	graphics.Run(cfg.Window, scene.Background(), update, draw)

	if scn != nil {
		scn.Unload()
	}
	if font.Texture.ID != 0 {
		rl.UnloadFont(font)
	}
	log.Info("game closed", zap.Int("collected", st.Collected), zap.Stringer("outcome", st.Outcome))
	return stepErr
}

// loadGrid reads the configured map file, or generates one when no path is
// set.
func loadGrid(mc gameconfig.MapConfig, log *logger.Logger) (*grid.Grid, error) {
	var g *grid.Grid
	if mc.Path != "" {
		var err error
		if g, err = grid.LoadFile(mc.Path); err != nil {
			return nil, err
		}
	} else {
		opts := mapgen.DefaultOptions()
		opts.Width, opts.Depth = mc.Width, mc.Depth
		opts.Seed = mc.Seed
		opts.CoinDensity = mc.CoinDensity
		var err error
		if g, err = grid.New(mapgen.Generate(opts)); err != nil {
			return nil, err
		}
	}
	if g.Coins() == 0 {
		log.Warn("map has no coins", zap.String("path", mc.Path))
	}
	log.Info("map loaded",
		zap.String("path", mc.Path),
		zap.Int("width", g.Width()),
		zap.Int("depth", g.MaxDepth()),
		zap.Int("coins", g.Coins()),
		zap.String("checksum", fmt.Sprintf("%016x", g.Checksum())))
	return g, nil
}

func loadMesh(path string, fallback geometry.Mesh, log *logger.Logger) geometry.Mesh {
	if path == "" {
		return fallback
	}
	m, err := geometry.LoadOBJ(path)
	if err != nil {
		log.Warn("model unreadable, using built-in box", zap.String("path", path), zap.Error(err))
		return fallback
	}
	return m
}
