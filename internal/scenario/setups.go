package scenario

import (
	"github.com/san-kum/landscape/internal/geom"
	"github.com/san-kum/landscape/internal/hexgrid"
	"github.com/san-kum/landscape/internal/marker"
	"github.com/san-kum/landscape/internal/sim"
)

const (
	EventShock     = "shock"
	EventErode     = "erode"
	EventEscaped   = "escaped"
	EventRestored  = "restored"
	EventStranded  = "stranded"
	EventDiscovery = "discovery"
)

// shapeHome carves the basin around the start cell, rings it with ruins and
// records the bottom as the marker's equilibrium.
func shapeHome(s *sim.Session) hexgrid.Coord {
	cfg := s.Config()
	home := s.StartCell()

	s.Grid.ShapeBasin(home, cfg.Terrain.Radius, cfg.Terrain.Depth)
	if cfg.Terrain.RuinRing > 0 {
		for _, c := range s.Grid.Ring(home, cfg.Terrain.RuinRing) {
			s.Grid.SetTerminal(c, true)
		}
	}
	s.Marker.SetEquilibrium(s.Grid.ToPixel(home))
	if cfg.Fog.Hidden {
		s.Overlay.Reveal(home, cfg.Fog.Radius)
	}
	return home
}

func scheduleShocks(s *sim.Session) {
	cfg := s.Config()
	if cfg.Shock.Every <= 0 || cfg.Shock.Magnitude <= 0 {
		return
	}
	s.Every(cfg.Shock.Every, func(s *sim.Session) {
		kick := geom.FromAngle(s.Rand().Angle()).Scale(cfg.Shock.Magnitude)
		s.Marker.ApplyImpulse(kick.X, kick.Y)
		s.Note(EventShock)
	})
}

// scheduleErosion degrades the terrain around center after the configured
// delay, calling after with the repeating timer once per pass.
func scheduleErosion(s *sim.Session, center hexgrid.Coord, after func(s *sim.Session, t *sim.Timer)) {
	cfg := s.Config()
	e := cfg.Erosion
	if e.Intensity <= 0 || e.Every <= 0 {
		return
	}
	s.After(e.Delay, func(s *sim.Session) {
		var t *sim.Timer
		t = s.Every(e.Every, func(s *sim.Session) {
			if e.Radius > 0 {
				s.Grid.ErodeAround(center, e.Radius, e.Intensity)
			} else {
				s.Grid.ApplyErosion(e.Intensity)
			}
			s.Note(EventErode)
			if after != nil {
				after(s, t)
			}
		})
	})
}

func setupBasin(s *sim.Session) error {
	shapeHome(s)
	scheduleShocks(s)
	return nil
}

func setupNoise(s *sim.Session) error {
	shapeHome(s)
	scheduleShocks(s)
	return nil
}

func setupErosion(s *sim.Session) error {
	home := shapeHome(s)
	scheduleShocks(s)
	scheduleErosion(s, home, nil)
	return nil
}

// setupHysteresis carves a second, wider basin Offset columns east of home
// so the slope between them leads away from home. Home erodes until the
// marker leaves it; erosion then stops and home is carved back, but the
// marker stays in the second basin.
func setupHysteresis(s *sim.Session) error {
	cfg := s.Config()
	home := shapeHome(s)

	second := hexgrid.C(home.Col+cfg.Terrain.Offset, home.Row)
	if s.Grid.Contains(second) && cfg.Terrain.SecondDepth < 0 {
		radius := max(cfg.Terrain.Offset-cfg.Terrain.Radius-1, 1)
		s.Grid.ShapeBasin(second, radius, cfg.Terrain.SecondDepth)
	}

	restored := false
	scheduleErosion(s, home, func(s *sim.Session, t *sim.Timer) {
		c, ok := s.Marker.CurrentCell()
		if ok && hexgrid.Distance(c, home) <= cfg.Terrain.Radius {
			return
		}
		t.Stop()
		s.Note(EventEscaped)
		s.Grid.ShapeBasin(home, cfg.Terrain.Radius, cfg.Terrain.Depth)
		restored = true
		s.Note(EventRestored)
	})

	// After restoration, check periodically whether the marker came home.
	s.Every(max(cfg.Erosion.Every, 1), func(s *sim.Session) {
		if !restored {
			return
		}
		c, ok := s.Marker.CurrentCell()
		if ok && hexgrid.Distance(c, home) > cfg.Terrain.Radius && s.Marker.IsSettled(0.5) {
			s.Note(EventStranded)
			restored = false
		}
	})
	return nil
}

// setupFog hides the terrain, carves a wide basin at the grid centre and
// walks the marker downhill one cell at a time, revealing as it goes. When
// no revealed neighbour is lower it steps to a random hidden neighbour.
func setupFog(s *sim.Session) error {
	cfg := s.Config()
	start := s.StartCell()
	centre := hexgrid.C(s.Grid.Cols()/2, s.Grid.Rows()/2)

	s.Grid.ShapeBasin(centre, cfg.Terrain.Radius, cfg.Terrain.Depth)
	s.Marker.SetEquilibrium(s.Grid.ToPixel(centre))
	s.Marker.SetMode(marker.ModeDiscrete)
	s.Overlay.Reveal(start, cfg.Fog.Radius)

	s.Every(max(cfg.Move.Every, 1), func(s *sim.Session) {
		if s.Marker.IsMovingDiscrete() || s.Marker.IsTerminal() {
			return
		}
		here, ok := s.Marker.CurrentCell()
		if !ok {
			return
		}
		before := s.Overlay.RevealedCount()
		s.Overlay.Reveal(here, cfg.Fog.Radius)
		if s.Overlay.RevealedCount() > before {
			s.Note(EventDiscovery)
		}

		if next, ok := nextStep(s, here); ok {
			s.Marker.MoveTo(next, cfg.Move.DurationMs)
		}
	})
	return nil
}

// nextStep prefers the lowest revealed neighbour below here, then a random
// hidden neighbour.
func nextStep(s *sim.Session, here hexgrid.Coord) (hexgrid.Coord, bool) {
	if c, ok := s.Grid.Lowest(here); ok && s.Overlay.IsRevealed(c) {
		return c, true
	}
	var hidden []hexgrid.Coord
	for _, n := range s.Grid.Neighbors(here) {
		if !s.Overlay.IsRevealed(n) && !s.Grid.IsTerminal(n) {
			hidden = append(hidden, n)
		}
	}
	if len(hidden) == 0 {
		return hexgrid.Coord{}, false
	}
	return hidden[s.Rand().IntN(len(hidden))], true
}
