package sim

import (
	"github.com/san-kum/landscape/internal/marker"
)

// Frame is the read-only state published after each tick.
type Frame struct {
	Index    int             `json:"index"`
	TimeMs   float64         `json:"time_ms"`
	Marker   marker.Snapshot `json:"marker"`
	Revealed float64         `json:"revealed"`
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

// Event marks a scenario milestone such as an erosion phase ending.
type Event struct {
	Frame int    `json:"frame"`
	Name  string `json:"name"`
}

type Result struct {
	Scenario      string             `json:"scenario"`
	Seed          int64              `json:"seed"`
	Frames        []Frame            `json:"-"`
	Metrics       map[string]float64 `json:"metrics"`
	FramesRun     int                `json:"frames_run"`
	Collapsed     bool               `json:"collapsed"`
	CollapseFrame int                `json:"collapse_frame"`
	Events        []Event            `json:"events,omitempty"`
}

// Series extracts one scalar per recorded frame.
func (r *Result) Series(fn func(f Frame) float64) []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = fn(f)
	}
	return out
}

func Oscillation(f Frame) float64 { return f.Marker.Metrics.Oscillation }
func Recovery(f Frame) float64    { return f.Marker.Metrics.Recovery }
func Distance(f Frame) float64    { return f.Marker.Metrics.Distance }
func Speed(f Frame) float64       { return f.Marker.Velocity.Norm() }
