package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of bins 0..n/2 of a Hann-windowed,
// mean-removed series. Any length works; it need not be a power of two.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}
	mean := Mean(data)
	buf := make([]complex128, n)
	for i, v := range data {
		w := 1.0
		if n > 1 {
			w = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		}
		buf[i] = complex((v-mean)*w, 0)
	}
	spectrum := fft.FFT(buf)

	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency of the strongest non-DC bin of a
// series sampled at sampleRate, with its magnitude. A flat or too-short
// series reports zero.
func DominantFrequency(data []float64, sampleRate float64) (freq, magnitude float64) {
	ps := PowerSpectrum(data)
	best := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > magnitude {
			best, magnitude = k, ps[k]
		}
	}
	if best == 0 {
		return 0, 0
	}
	return float64(best) * sampleRate / float64(len(data)), magnitude
}
