// Package analysis characterizes the proximity graph over time.
//
//   - [PowerSpectrum]: windowed magnitude spectrum of an edge-count series
//   - [DominantFrequency]: strongest oscillation in that series
//   - [Summarize]: mean, deviation and range of a series
//   - [DegreeHistogram]: how connections are spread across particles
//
// # Periodicity
//
// With a fixed particle set the edge count drifts as particles bounce
// inside the box. A sharp spectral peak means the field is beating:
//
//	res, _ := sim.Run(ctx, 1024, nil)
//	freq, _ := analysis.DominantFrequency(res.EdgeCounts, 60)
package analysis
