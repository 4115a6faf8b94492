package analysis

import (
	"fmt"
	"strings"
)

// TrendThreshold is the Kendall tau above which a rolling indicator counts
// as rising.
const TrendThreshold = 0.3

// Warning summarises the early-warning indicators of one series.
type Warning struct {
	Samples       int     `json:"samples"`
	Window        int     `json:"window"`
	Variance      float64 `json:"variance"`
	Autocorr      float64 `json:"autocorr"`
	VarianceTrend float64 `json:"variance_trend"`
	AutocorrTrend float64 `json:"autocorr_trend"`
	Redness       float64 `json:"redness"`
	Alert         bool    `json:"alert"`
}

// Assess computes rolling variance and lag-1 autocorrelation over window
// samples and their Kendall trends. The alert fires when both indicators
// rise together. Non-finite samples are dropped; a window <= 0 uses half
// the series.
func Assess(series []float64, window int) Warning {
	series = finite(series)
	if window <= 0 {
		window = len(series) / 2
	}
	w := Warning{
		Samples:  len(series),
		Window:   window,
		Variance: Variance(series),
		Autocorr: Lag1Autocorrelation(series),
		Redness:  SpectralRedness(series),
	}
	if window < 3 || len(series) < window+2 {
		return w
	}

	w.VarianceTrend = KendallTau(Rolling(series, window, Variance))
	w.AutocorrTrend = KendallTau(Rolling(series, window, Lag1Autocorrelation))
	w.Alert = w.VarianceTrend > TrendThreshold && w.AutocorrTrend > TrendThreshold
	return w
}

func (w Warning) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "samples:          %d (window %d)\n", w.Samples, w.Window)
	fmt.Fprintf(&sb, "variance:         %.4f (trend %+.3f)\n", w.Variance, w.VarianceTrend)
	fmt.Fprintf(&sb, "autocorrelation:  %.4f (trend %+.3f)\n", w.Autocorr, w.AutocorrTrend)
	fmt.Fprintf(&sb, "redness:          %.3f\n", w.Redness)
	if w.Alert {
		sb.WriteString("status:           WARNING - resilience declining\n")
	} else {
		sb.WriteString("status:           stable\n")
	}
	return sb.String()
}
