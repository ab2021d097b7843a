package main

import (
	"context"
	"image"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// ErrStopped is returned by Tick once Stop has been called.
var ErrStopped = errors.New("simulation stopped")

// RandomSource yields uniform floats in [0,1)
type RandomSource interface {
	Float64() float64
}

// Viewport reports the current size of whatever hosts the surface
type Viewport interface {
	Size() (width, height int)
}

// State of the simulation lifecycle
type State int

const (
	StateLoading State = iota // waiting for the sprite
	StateRunning
	StateFailed
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Options carries the collaborators of a Simulation. Nil fields get defaults.
type Options struct {
	Viewport   Viewport
	NewSurface func(width, height int) Surface
	Loader     ImageLoader
	Rand       RandomSource
	Logger     *log.Logger
}

type loadResult struct {
	img image.Image
	err error
}

// Simulation struct: owns the surface, the shared sprite and the boids
type Simulation struct {
	cfg      Config
	viewport Viewport
	surface  Surface
	rng      RandomSource
	logger   *log.Logger
	palette  Palette

	sprite   image.Image
	boids    []*Boid
	loaded   chan loadResult
	state    State
	err      error
	reported map[*Boid]bool // boids whose invalid direction was already logged

	TickCount int
}

// NewSimulation creates the surface at the viewport's size and starts loading
// the sprite. Boids are created on the first tick after the load completes.
func NewSimulation(ctx context.Context, cfg Config, opts Options) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:      cfg,
		viewport: opts.Viewport,
		rng:      opts.Rand,
		logger:   opts.Logger,
		loaded:   make(chan loadResult, 1),
		reported: make(map[*Boid]bool),
	}
	if s.viewport == nil {
		s.viewport = fixedViewport{cfg.Width, cfg.Height}
	}
	seed := cfg.seed()
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(seed))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	newSurface := opts.NewSurface
	if newSurface == nil {
		newSurface = func(w, h int) Surface { return NewRasterSurface(w, h) }
	}
	loader := opts.Loader
	if loader == nil {
		loader = FileLoader{}
	}

	base, err := ParseColor(cfg.Color)
	if err != nil {
		return nil, err
	}
	if s.palette, err = NewPalette(cfg.Palette, base, seed); err != nil {
		return nil, err
	}

	s.surface = newSurface(s.viewport.Size())

	if cfg.Image == "" {
		s.loaded <- loadResult{}
		return s, nil
	}
	loader.Load(ctx, cfg.Image, func(img image.Image, err error) {
		select {
		case s.loaded <- loadResult{img: img, err: err}:
		default:
			// a second completion is a loader bug; the first one wins
		}
	})
	return s, nil
}

// Tick runs one frame: clear the surface, then move and draw every boid in order.
func (s *Simulation) Tick() error {
	switch s.state {
	case StateLoading:
		if !s.pollLoad() {
			return s.err
		}
	case StateFailed:
		return s.err
	case StateStopped:
		return ErrStopped
	}

	s.surface.Clear()
	for i, b := range s.boids {
		if err := b.Update(); err != nil && !s.reported[b] {
			s.reported[b] = true
			s.logger.Printf("boid %d: %v", i, err)
		}
	}
	s.TickCount++
	return nil
}

// pollLoad consumes a finished sprite load without blocking. It reports
// whether the simulation is now running.
func (s *Simulation) pollLoad() bool {
	var res loadResult
	select {
	case res = <-s.loaded:
	default:
		return false
	}
	if res.err != nil {
		s.state = StateFailed
		s.err = errors.Wrap(res.err, "sprite load failed")
		s.logger.Printf("%v", s.err)
		return false
	}
	if res.img != nil {
		s.sprite = res.img
		s.logger.Printf("img loaded: %s (%dx%d)", s.cfg.Image, res.img.Bounds().Dx(), res.img.Bounds().Dy())
	}
	s.createBoids(s.cfg.Boids)
	s.state = StateRunning
	s.logger.Printf("simulation begins with %d boids", len(s.boids))
	return true
}

func (s *Simulation) createBoids(n int) {
	scale := Vector2{s.cfg.Scale, s.cfg.Scale}
	opts := []BoidOption{
		WithPalette(s.palette),
		WithScale(scale),
		WithOffscreenLimit(s.cfg.OffscreenLimit),
		WithFadeIn(s.cfg.FadeInTicks),
	}
	if s.sprite != nil {
		opts = append(opts, WithSprite(s.sprite))
	}
	s.boids = make([]*Boid, n)
	for i := range s.boids {
		s.boids[i] = NewBoid(s.surface, s.rng, opts...)
	}
}

// OnViewportResize resizes the surface to the viewport. Boids read the
// surface size on every tick so they are left alone.
func (s *Simulation) OnViewportResize() {
	w, h := s.viewport.Size()
	if cw, ch := s.surface.Size(); cw == w && ch == h {
		return
	}
	s.surface.Resize(w, h)
	s.logger.Printf("surface resized to %dx%d", w, h)
}

// Stop ends the frame loop. Further ticks return ErrStopped.
func (s *Simulation) Stop() {
	if s.state == StateStopped {
		return
	}
	s.state = StateStopped
	s.logger.Printf("simulation stopped after %d ticks", s.TickCount)
}

// Accessors for lifecycle state, the load error, the boids and the shared surface/sprite
func (s *Simulation) State() State { return s.state }
func (s *Simulation) Err() error { return s.err }
func (s *Simulation) Boids() []*Boid { return s.boids }
func (s *Simulation) Surface() Surface { return s.surface }
func (s *Simulation) Sprite() image.Image { return s.sprite }

// TickInterval is the fixed time between frames.
func (s *Simulation) TickInterval() time.Duration {
	return s.cfg.TickInterval
}

// fixedViewport never changes size
type fixedViewport struct {
	width, height int
}

func (v fixedViewport) Size() (int, int) { return v.width, v.height }

// windowViewport tracks the outside size Ebitengine hands to Layout
type windowViewport struct {
	width, height int
}

func (v *windowViewport) Size() (int, int) { return v.width, v.height }

// Game adapts a Simulation to ebiten.Game.
type Game struct {
	sim      *Simulation
	viewport *windowViewport
	ctx      context.Context
}

// NewGame builds a windowed simulation drawing onto an Ebitengine canvas.
func NewGame(ctx context.Context, cfg Config, opts Options) (*Game, error) {
	g := &Game{
		viewport: &windowViewport{cfg.Width, cfg.Height},
		ctx:      ctx,
	}
	opts.Viewport = g.viewport
	opts.NewSurface = func(w, h int) Surface { return newCanvasSurface(w, h) }
	sim, err := NewSimulation(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	g.sim = sim
	return g, nil
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		g.sim.Stop()
	}
	err := g.sim.Tick()
	if errors.Is(err, ErrStopped) {
		return ebiten.Termination
	}
	return err
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	if c, ok := g.sim.Surface().(*canvasSurface); ok {
		c.Present(screen)
	}
}

// Layout follows the window size so the canvas always fills it
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.viewport.width || outsideHeight != g.viewport.height {
		g.viewport.width, g.viewport.height = outsideWidth, outsideHeight
		g.sim.OnViewportResize()
	}
	return outsideWidth, outsideHeight
}
