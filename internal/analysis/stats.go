package analysis

import (
	"math"
)

func Mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

// Variance is the population variance; fewer than two samples give 0.
func Variance(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	mean := Mean(series)
	sum := 0.0
	for _, v := range series {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(series))
}

// Lag1Autocorrelation correlates each sample with its successor. A constant
// or too-short series gives 0.
func Lag1Autocorrelation(series []float64) float64 {
	if len(series) < 3 {
		return 0
	}
	mean := Mean(series)
	var num, den float64
	for i, v := range series {
		d := v - mean
		den += d * d
		if i > 0 {
			num += d * (series[i-1] - mean)
		}
	}
	if den < 1e-12 {
		return 0
	}
	return num / den
}

// Rolling applies fn to every full window of the series. The result has
// len(series)-window+1 entries, or none when the series is shorter than
// the window.
func Rolling(series []float64, window int, fn func([]float64) float64) []float64 {
	if window <= 0 || len(series) < window {
		return nil
	}
	out := make([]float64, 0, len(series)-window+1)
	for i := window; i <= len(series); i++ {
		out = append(out, fn(series[i-window:i]))
	}
	return out
}

// KendallTau is the rank correlation of the series against time, in
// [-1, 1]. Positive values mean an upward trend.
func KendallTau(series []float64) float64 {
	n := len(series)
	if n < 2 {
		return 0
	}
	var concordant, discordant int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			switch d := series[j] - series[i]; {
			case d > 0:
				concordant++
			case d < 0:
				discordant++
			}
		}
	}
	pairs := n * (n - 1) / 2
	return float64(concordant-discordant) / float64(pairs)
}

// Detrend subtracts the least-squares line from the series.
func Detrend(series []float64) []float64 {
	n := float64(len(series))
	out := make([]float64, len(series))
	if len(series) < 2 {
		copy(out, series)
		return out
	}
	var sx, sy, sxy, sxx float64
	for i, v := range series {
		x := float64(i)
		sx += x
		sy += v
		sxy += x * v
		sxx += x * x
	}
	slope := (n*sxy - sx*sy) / (n*sxx - sx*sx)
	intercept := (sy - slope*sx) / n
	for i, v := range series {
		out[i] = v - (intercept + slope*float64(i))
	}
	return out
}

func finite(series []float64) []float64 {
	out := make([]float64, 0, len(series))
	for _, v := range series {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
