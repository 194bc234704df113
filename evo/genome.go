// Package evo evolves fixed-topology feed-forward controllers: genomes, candidates and the
// population that ranks, truncates and breeds them each generation.
package evo

import (
	"fmt"
	"math/rand"
	"strings"
)

// Genome is a fixed-length, immutable vector of real-valued genes. Its length is
// determined by the topology it decodes into.
type Genome struct {
	genes []float64
}

// NewGenome creates a Genome holding a copy of genes.
func NewGenome(genes []float64) Genome {
	g := Genome{genes: make([]float64, len(genes))}
	copy(g.genes, genes)
	return g
}

// RandomGenome returns n genes drawn independently and uniformly from [-1, 1].
func RandomGenome(rng *rand.Rand, n int) Genome {
	g := Genome{genes: make([]float64, n)}
	for i := range g.genes {
		g.genes[i] = randomGene(rng)
	}
	return g
}

// Crossover builds a child by taking each gene from a or b with equal probability.
// Genes are copied, never blended, and no mutation is applied.
func Crossover(rng *rand.Rand, a, b Genome) (Genome, error) {
	if a.Len() != b.Len() {
		return Genome{}, fmt.Errorf("%w: %d vs %d genes", ErrLengthMismatch, a.Len(), b.Len())
	}

	child := Genome{genes: make([]float64, a.Len())}
	for i := range child.genes {
		if rng.Float64() < 0.5 {
			child.genes[i] = a.genes[i]
		} else {
			child.genes[i] = b.genes[i]
		}
	}
	return child, nil
}

// Mutate returns a copy of g in which every gene is, with probability rate, replaced by a
// fresh uniform sample from [-1, 1]. A rate of 0 returns an identical copy.
func (g Genome) Mutate(rng *rand.Rand, rate float64) (Genome, error) {
	if rate < 0 || rate > 1 {
		return Genome{}, fmt.Errorf("%w: mutation rate %v must be between 0 and 1", ErrConfiguration, rate)
	}

	mutated := NewGenome(g.genes)
	if rate == 0 {
		return mutated, nil
	}
	for i := range mutated.genes {
		if rng.Float64() < rate {
			mutated.genes[i] = randomGene(rng)
		}
	}
	return mutated, nil
}

// Len returns the number of genes.
func (g Genome) Len() int {
	return len(g.genes)
}

// At returns gene i.
func (g Genome) At(i int) float64 {
	return g.genes[i]
}

// Genes returns a copy of the gene vector.
func (g Genome) Genes() []float64 {
	out := make([]float64, len(g.genes))
	copy(out, g.genes)
	return out
}

// Equal reports whether both genomes hold the same genes in the same order.
func (g Genome) Equal(other Genome) bool {
	if len(g.genes) != len(other.genes) {
		return false
	}
	for i, v := range g.genes {
		if other.genes[i] != v {
			return false
		}
	}
	return true
}

func (g Genome) String() string {
	parts := make([]string, len(g.genes))
	for i, v := range g.genes {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "Genes: [" + strings.Join(parts, ",") + "]"
}

// randomGene draws uniformly from [-1, 1). The open upper end comes from rand.Float64 and
// has no measurable effect on the distribution.
func randomGene(rng *rand.Rand) float64 {
	return rng.Float64()*2 - 1
}
