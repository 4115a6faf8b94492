package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/landscape/internal/config"
	"github.com/san-kum/landscape/internal/geom"
	"github.com/san-kum/landscape/internal/hexgrid"
	"github.com/san-kum/landscape/internal/marker"
	"github.com/san-kum/landscape/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var frameHeader = []string{
	"index", "time_ms", "x", "y", "vx", "vy", "col", "row", "on_grid",
	"terminal", "oscillation", "recovery", "distance", "revealed",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Scenario      string             `json:"scenario"`
	Timestamp     time.Time          `json:"timestamp"`
	Seed          int64              `json:"seed"`
	FramesRun     int                `json:"frames_run"`
	FrameMs       float64            `json:"frame_ms"`
	Collapsed     bool               `json:"collapsed"`
	CollapseFrame int                `json:"collapse_frame"`
	Metrics       map[string]float64 `json:"metrics"`
	Events        []sim.Event        `json:"events,omitempty"`
	Config        *config.Config     `json:"config"`
}

// Save writes metadata.json and frames.csv under a new run directory and
// returns the run ID.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d_%d", result.Scenario, result.Seed, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Scenario:      result.Scenario,
		Timestamp:     now,
		Seed:          result.Seed,
		FramesRun:     result.FramesRun,
		FrameMs:       cfg.FrameMs(),
		Collapsed:     result.Collapsed,
		CollapseFrame: result.CollapseFrame,
		Metrics:       result.Metrics,
		Events:        result.Events,
		Config:        cfg,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteFramesCSV(csvFile, result.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			log.Printf("storage: skipping %s: %v", entry.Name(), err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &meta, nil
}

// LoadFrames reads frames.csv back. Trails are not stored.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		f, err := parseFrame(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func parseFrame(record []string) (sim.Frame, error) {
	if len(record) != len(frameHeader) {
		return sim.Frame{}, fmt.Errorf("expected %d fields, got %d", len(frameHeader), len(record))
	}
	var (
		ints   [3]int
		floats [9]float64
		bools  [2]bool
		err    error
	)
	for i, idx := range []int{0, 6, 7} {
		if ints[i], err = strconv.Atoi(record[idx]); err != nil {
			return sim.Frame{}, err
		}
	}
	for i, idx := range []int{1, 2, 3, 4, 5, 10, 11, 12, 13} {
		if floats[i], err = strconv.ParseFloat(record[idx], 64); err != nil {
			return sim.Frame{}, err
		}
	}
	for i, idx := range []int{8, 9} {
		if bools[i], err = strconv.ParseBool(record[idx]); err != nil {
			return sim.Frame{}, err
		}
	}

	return sim.Frame{
		Index:  ints[0],
		TimeMs: floats[0],
		Marker: marker.Snapshot{
			Position: geom.V(floats[1], floats[2]),
			Velocity: geom.V(floats[3], floats[4]),
			Cell:     hexgrid.C(ints[1], ints[2]),
			OnGrid:   bools[0],
			Terminal: bools[1],
			Metrics: marker.Metrics{
				Oscillation: floats[5],
				Recovery:    floats[6],
				Distance:    floats[7],
			},
		},
		Revealed: floats[8],
	}, nil
}
