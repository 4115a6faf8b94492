package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X(k)|² for the non-negative frequencies of the
// mean-removed series, skipping the DC term.
func PowerSpectrum(series []float64) []float64 {
	if len(series) < 4 {
		return nil
	}
	mean := Mean(series)
	centred := make([]float64, len(series))
	for i, v := range series {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		a := cmplx.Abs(spectrum[i+1])
		ps[i] = a * a
	}
	return ps
}

// SpectralRedness is the share of spectral power in the lowest quarter of
// frequencies, in [0, 1]. Power shifting toward low frequencies accompanies
// critical slowing down. A flat or too-short series gives 0.
func SpectralRedness(series []float64) float64 {
	ps := PowerSpectrum(series)
	if len(ps) == 0 {
		return 0
	}
	cut := max(len(ps)/4, 1)
	var low, total float64
	for i, p := range ps {
		total += p
		if i < cut {
			low += p
		}
	}
	if total < 1e-12 {
		return 0
	}
	return low / total
}
