package marker

// MetricWindow is the number of most recent history samples the derived
// metrics are computed over. Metrics stay at their rest values until the
// history holds this many samples.
const MetricWindow = 30

// Params are the physical constants of continuous motion. Forces and
// friction are expressed per reference frame of FrameMs milliseconds; an
// update of dt milliseconds scales them by dt/FrameMs.
type Params struct {
	FrameMs          float64 `yaml:"frame_ms" json:"frame_ms"`
	Gravity          float64 `yaml:"gravity" json:"gravity"`
	Friction         float64 `yaml:"friction" json:"friction"`
	MaxSpeed         float64 `yaml:"max_speed" json:"max_speed"`
	LowSpeed         float64 `yaml:"low_speed" json:"low_speed"`
	Centering        float64 `yaml:"centering" json:"centering"`
	Recenter         float64 `yaml:"recenter" json:"recenter"`
	NoiseChance      float64 `yaml:"noise_chance" json:"noise_chance"`
	NoiseImpulse     float64 `yaml:"noise_impulse" json:"noise_impulse"`
	OscillationScale float64 `yaml:"oscillation_scale" json:"oscillation_scale"`
	TrailLen         int     `yaml:"trail_len" json:"trail_len"`
	HistoryLen       int     `yaml:"history_len" json:"history_len"`
}

func DefaultParams() Params {
	return Params{
		FrameMs:          1000.0 / 60.0,
		Gravity:          0.35,
		Friction:         0.92,
		MaxSpeed:         6,
		LowSpeed:         0.6,
		Centering:        0.15,
		Recenter:         0.5,
		NoiseChance:      0.3,
		NoiseImpulse:     4,
		OscillationScale: 25,
		TrailLen:         60,
		HistoryLen:       120,
	}
}

// normalized fills zero or out-of-range fields from the defaults.
func (p Params) normalized() Params {
	d := DefaultParams()
	if p.FrameMs <= 0 {
		p.FrameMs = d.FrameMs
	}
	if p.Friction <= 0 || p.Friction > 1 {
		p.Friction = d.Friction
	}
	if p.MaxSpeed <= 0 {
		p.MaxSpeed = d.MaxSpeed
	}
	if p.OscillationScale <= 0 {
		p.OscillationScale = d.OscillationScale
	}
	if p.TrailLen <= 0 {
		p.TrailLen = d.TrailLen
	}
	if p.HistoryLen < MetricWindow {
		p.HistoryLen = max(d.HistoryLen, MetricWindow)
	}
	return p
}
