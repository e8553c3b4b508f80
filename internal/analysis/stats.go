package analysis

import "math"

type Stats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// Summarize computes population statistics of a series.
func Summarize(data []float64) Stats {
	if len(data) == 0 {
		return Stats{}
	}
	s := Stats{Mean: Mean(data), Min: data[0], Max: data[0]}
	variance := 0.0
	for _, v := range data {
		d := v - s.Mean
		variance += d * d
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.StdDev = math.Sqrt(variance / float64(len(data)))
	return s
}
