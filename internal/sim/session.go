package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/landscape/internal/config"
	"github.com/san-kum/landscape/internal/fog"
	"github.com/san-kum/landscape/internal/hexgrid"
	"github.com/san-kum/landscape/internal/marker"
	"github.com/san-kum/landscape/internal/rng"
)

// Session bundles one grid, one marker and one fog overlay and advances them
// frame by frame. All mutation happens on the caller's goroutine.
type Session struct {
	Grid    *hexgrid.Grid
	Marker  *marker.Marker
	Overlay *fog.Overlay

	cfg       *config.Config
	rand      *rng.RNG
	frame     int
	frameMs   float64
	alive     bool
	timers    []*Timer
	events    []Event
	metrics   []Metric
	observers []Observer
}

// New builds a session from cfg. Terrain starts flat; scenarios shape it.
func New(cfg *config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg = cfg.Clone()

	g := hexgrid.New(cfg.Grid.Cols, cfg.Grid.Rows, cfg.Grid.Side)
	g.Seed(cfg.Seed)

	col, row := cfg.StartCell()
	m := marker.NewWithParams(g, hexgrid.C(col, row), cfg.Physics)
	m.Seed(cfg.Seed + 1)
	m.SetNoise(cfg.Noise)

	o := fog.New(g)
	o.Seed(cfg.Seed + 2)
	if cfg.Fog.Hidden {
		o.CoverAll()
	}

	return &Session{
		Grid:      g,
		Marker:    m,
		Overlay:   o,
		cfg:       cfg,
		rand:      rng.New(cfg.Seed + 3),
		frameMs:   cfg.FrameMs(),
		alive:     true,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

func (s *Session) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Session) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Session) Config() *config.Config { return s.cfg }
func (s *Session) FrameIndex() int        { return s.frame }
func (s *Session) FrameMs() float64       { return s.frameMs }
func (s *Session) Alive() bool            { return s.alive }

// Rand is the session's random source for scenario decisions.
func (s *Session) Rand() *rng.RNG { return s.rand }

// StartCell is the configured marker start.
func (s *Session) StartCell() hexgrid.Coord {
	col, row := s.cfg.StartCell()
	return hexgrid.C(col, row)
}

// Note records a named event on the current frame.
func (s *Session) Note(name string) {
	s.events = append(s.events, Event{Frame: s.frame, Name: name})
}

func (s *Session) Events() []Event {
	return append([]Event(nil), s.events...)
}

// Snapshot returns the current frame without advancing.
func (s *Session) Snapshot(withTrail bool) Frame {
	return Frame{
		Index:    s.frame,
		TimeMs:   float64(s.frame) * s.frameMs,
		Marker:   s.Marker.Snapshot(withTrail),
		Revealed: s.Overlay.PercentRevealed(),
	}
}

// Step fires the timers due this frame, advances the marker by one frame
// and notifies metrics and observers. It is a no-op after Teardown.
func (s *Session) Step() Frame {
	if !s.alive {
		return s.Snapshot(false)
	}
	s.frame++
	s.fireTimers()
	s.Marker.Update(s.frameMs)

	f := s.Snapshot(len(s.observers) > 0)
	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, o := range s.observers {
		o.OnFrame(f)
	}
	return f
}

// Run advances up to frames frames, stopping early on collapse when the
// config asks for it.
func (s *Session) Run(ctx context.Context, frames int) (*Result, error) {
	if !s.alive {
		return nil, ErrTornDown
	}
	if frames <= 0 {
		return nil, fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, frames)
	}

	result := &Result{
		Scenario:      s.cfg.Scenario,
		Seed:          s.cfg.Seed,
		Frames:        make([]Frame, 0, frames),
		Metrics:       make(map[string]float64),
		CollapseFrame: -1,
	}
	for _, m := range s.metrics {
		m.Reset()
	}
	firstEvent := len(s.events)
	defer func() {
		if len(s.events) > firstEvent {
			result.Events = append([]Event(nil), s.events[firstEvent:]...)
		}
	}()

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		f := s.Step()
		if !f.Marker.Position.IsValid() {
			s.finish(result)
			return result, &FrameError{Frame: f.Index, Wrapped: ErrUnstable}
		}
		result.Frames = append(result.Frames, f)
		result.FramesRun++

		if f.Marker.Terminal && !result.Collapsed {
			result.Collapsed = true
			result.CollapseFrame = f.Index
			if s.cfg.StopOnCollapse {
				break
			}
		}
		if !s.alive {
			break
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Session) finish(r *Result) {
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}

// Teardown marks the session dead. Pending timers become no-ops and Step
// stops advancing. Grid, marker and overlay remain readable.
func (s *Session) Teardown() {
	s.alive = false
	for _, t := range s.timers {
		t.stopped = true
	}
	s.timers = nil
}

// Restart rebuilds the initial state: flat terrain, reset fog, marker at
// rest on the start cell with its clock and equilibrium cleared, frame
// counter at zero and no timers. Scenarios re-apply their setup afterwards.
func (s *Session) Restart() {
	for _, t := range s.timers {
		t.stopped = true
	}
	s.timers = nil
	s.events = nil
	s.Grid.Reset()
	s.Overlay.Reset(s.cfg.Fog.Hidden)
	s.Marker.Reset(s.StartCell())
	s.Marker.SetNoise(s.cfg.Noise)
	s.frame = 0
	s.alive = true
}
