package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file (optional)")
		width      = flag.Int("width", DefaultWidth, "surface width in pixels")
		height     = flag.Int("height", DefaultHeight, "surface height in pixels")
		boids      = flag.Int("boids", DefaultBoids, "number of boids")
		img        = flag.String("image", "", "sprite image (png, jpeg, gif, bmp, webp); empty draws squares")
		seed       = flag.Int64("seed", 0, "random seed (0 uses the clock)")
		palette    = flag.String("palette", PaletteSolid, "boid colouring: solid or noise")
		col        = flag.String("color", "red", "square colour for the solid palette (name or #hex)")
		fadeIn     = flag.Int("fade_in", 0, "ticks over which boids fade in")
		headless   = flag.Bool("headless", false, "render without a window")
		frames     = flag.Int("frames", 0, "headless: stop after this many frames (0 runs until interrupted)")
		snapshot   = flag.String("snapshot", "", "headless: write the last frame to this PNG file")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[boids] ", log.LstdFlags|log.Lmicroseconds)

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			logger.Fatalf("load config: %v", err)
		}
	}
	// Flags given on the command line override the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "boids":
			cfg.Boids = *boids
		case "image":
			cfg.Image = *img
		case "seed":
			cfg.Seed = *seed
		case "palette":
			cfg.Palette = *palette
		case "color":
			cfg.Color = *col
		case "fade_in":
			cfg.FadeInTicks = *fadeIn
		case "headless":
			cfg.Headless = *headless
		case "frames":
			cfg.Frames = *frames
		case "snapshot":
			cfg.Snapshot = *snapshot
		}
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	opts := Options{Logger: logger}
	if cfg.Headless {
		if err := renderOffscreen(ctx, cfg, opts, logger); err != nil {
			logger.Fatalf("%v", err)
		}
		return
	}

	game, err := NewGame(ctx, cfg, opts)
	if err != nil {
		logger.Fatalf("init: %v", err)
	}

	// Set up Ebitengine game
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Boids")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS())

	// Run the game loop
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal(err)
	}
}

func renderOffscreen(ctx context.Context, cfg Config, opts Options, logger *log.Logger) error {
	raster := NewRasterSurface(cfg.Width, cfg.Height)
	opts.NewSurface = func(w, h int) Surface {
		raster.Resize(w, h)
		return raster
	}
	sim, err := NewSimulation(ctx, cfg, opts)
	if err != nil {
		return err
	}
	if err := RunHeadless(ctx, sim, cfg.Frames); err != nil {
		return err
	}
	if cfg.Snapshot == "" {
		return nil
	}
	if err := raster.SavePNG(cfg.Snapshot); err != nil {
		return err
	}
	logger.Printf("snapshot written to %s", cfg.Snapshot)
	return nil
}
