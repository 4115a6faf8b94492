package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/landscape/internal/config"
	"github.com/san-kum/landscape/internal/sim"
)

type ExportData struct {
	Scenario      string             `json:"scenario"`
	Seed          int64              `json:"seed"`
	FrameMs       float64            `json:"frame_ms"`
	FramesRun     int                `json:"frames_run"`
	Collapsed     bool               `json:"collapsed"`
	CollapseFrame int                `json:"collapse_frame"`
	Metrics       map[string]float64 `json:"metrics"`
	Events        []sim.Event        `json:"events,omitempty"`
	Frames        []sim.Frame        `json:"frames"`
}

func newExportData(cfg *config.Config, result *sim.Result) ExportData {
	return ExportData{
		Scenario:      result.Scenario,
		Seed:          result.Seed,
		FrameMs:       cfg.FrameMs(),
		FramesRun:     result.FramesRun,
		Collapsed:     result.Collapsed,
		CollapseFrame: result.CollapseFrame,
		Metrics:       result.Metrics,
		Events:        result.Events,
		Frames:        result.Frames,
	}
}

// ExportJSON writes the full run, frames included, to path. A path of "-"
// writes to stdout.
func ExportJSON(path string, cfg *config.Config, result *sim.Result) error {
	return writeTo(path, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(newExportData(cfg, result))
	})
}

// ExportCSV writes the frame table to path, or stdout for "-".
func ExportCSV(path string, result *sim.Result) error {
	return writeTo(path, func(w io.Writer) error {
		return WriteFramesCSV(w, result.Frames)
	})
}

func writeTo(path string, fn func(w io.Writer) error) error {
	if path == "-" || path == "" {
		return fn(os.Stdout)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteFramesCSV writes one row per frame under a fixed header.
func WriteFramesCSV(out io.Writer, frames []sim.Frame) error {
	w := csv.NewWriter(out)
	if err := w.Write(frameHeader); err != nil {
		return err
	}

	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, f := range frames {
		m := f.Marker
		row := []string{
			strconv.Itoa(f.Index),
			ff(f.TimeMs),
			ff(m.Position.X),
			ff(m.Position.Y),
			ff(m.Velocity.X),
			ff(m.Velocity.Y),
			strconv.Itoa(m.Cell.Col),
			strconv.Itoa(m.Cell.Row),
			strconv.FormatBool(m.OnGrid),
			strconv.FormatBool(m.Terminal),
			ff(m.Metrics.Oscillation),
			ff(m.Metrics.Recovery),
			ff(m.Metrics.Distance),
			ff(f.Revealed),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
