// Package analysis provides early-warning indicators for regime shifts.
//
// Each tool works on a plain scalar series, typically the marker's distance
// from equilibrium or its speed, sampled once per frame:
//
//   - [Variance] and [Lag1Autocorrelation]: rising values signal critical
//     slowing down as a basin flattens
//   - [Rolling]: applies an indicator over a sliding window
//   - [KendallTau]: rank trend of a rolling indicator
//   - [SpectralRedness]: share of power in the low frequencies
//   - [Assess]: combines the above into a [Warning]
//
// # Early Warning
//
// A rising rolling variance and autocorrelation together are the classic
// precursor of a tipping point:
//
//	w := analysis.Assess(series, 60)
//	if w.Alert {
//	    // the basin is losing resilience
//	}
package analysis
