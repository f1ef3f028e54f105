package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the magnitude of the FFT of the mean removed
// signal, one value per frequency bin from 0 to Nyquist.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := stat.Mean(data, nil)
	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	coeff := fft.FFTReal(centred)
	ps := make([]float64, len(coeff)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(coeff[i])
	}
	return ps
}

// DominantFrequency returns the frequency (in cycles per unit time) of
// the largest non-zero bin of data sampled every dt. It returns 0 when
// the signal is constant, too short or not finite.
func DominantFrequency(data []float64, dt float64) float64 {
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
	}
	ps := PowerSpectrum(data)
	best, bestIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, bestIdx = ps[i], i
		}
	}
	if bestIdx == 0 || dt <= 0 {
		return 0
	}
	return float64(bestIdx) / (float64(len(data)) * dt)
}
