package evo

import (
	"log/slog"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarizes one evaluated generation, measured before selection.
type GenerationStats struct {
	Generation int     `csv:"generation"`
	Size       int     `csv:"size"`
	Dead       int     `csv:"dead"`
	Survivors  int     `csv:"survivors"`
	Offspring  int     `csv:"offspring"`
	Best       float64 `csv:"best_fitness"`
	Worst      float64 `csv:"worst_fitness"`
	Mean       float64 `csv:"mean_fitness"`
	StdDev     float64 `csv:"stddev_fitness"`
	Elapsed    float64 `csv:"elapsed_seconds"` // Simulated time reported through Elapse
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("size", s.Size),
		slog.Int("dead", s.Dead),
		slog.Int("survivors", s.Survivors),
		slog.Int("offspring", s.Offspring),
		slog.Float64("best", s.Best),
		slog.Float64("worst", s.Worst),
		slog.Float64("mean", s.Mean),
		slog.Float64("stddev", s.StdDev),
		slog.Float64("elapsed", s.Elapsed),
	)
}

// computeStats summarizes the fitness of an evaluated population.
func computeStats(generation int, candidates []*Candidate, elapsed time.Duration) GenerationStats {
	s := GenerationStats{
		Generation: generation,
		Size:       len(candidates),
		Elapsed:    elapsed.Seconds(),
	}
	if len(candidates) == 0 {
		return s
	}

	fitnesses := make([]float64, len(candidates))
	for i, c := range candidates {
		fitnesses[i] = c.fitness
		if !c.alive {
			s.Dead++
		}
	}

	s.Best = floats.Max(fitnesses)
	s.Worst = floats.Min(fitnesses)
	s.Mean, s.StdDev = stat.MeanStdDev(fitnesses, nil)
	if math.IsNaN(s.StdDev) {
		s.StdDev = 0 // Undefined for a single candidate
	}
	return s
}
