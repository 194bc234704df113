package evo

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/baldhumanity/evodrive/evo/nn"
)

// Reproduction handles the creation of new candidates, either from scratch or through
// crossover of surviving parents.
type Reproduction struct {
	Topology     nn.Topology
	MutationRate float64 // Per-gene replacement probability applied after crossover; 0 disables it
	Baseline     float64 // Fitness assigned to freshly created candidates

	// Ancestors maps candidate ID to parent IDs for the most recent generation.
	Ancestors map[uuid.UUID][]uuid.UUID

	rng         *rand.Rand
	networkOpts []nn.Option
}

// NewReproduction creates a reproduction manager drawing all randomness from rng.
func NewReproduction(topology nn.Topology, rng *rand.Rand, opts ...nn.Option) *Reproduction {
	return &Reproduction{
		Topology:    topology.Clone(),
		Ancestors:   make(map[uuid.UUID][]uuid.UUID),
		rng:         rng,
		networkOpts: opts,
	}
}

// CreateNewPopulation creates popSize random candidates.
func (r *Reproduction) CreateNewPopulation(popSize int) ([]*Candidate, error) {
	candidates := make([]*Candidate, 0, popSize)
	ancestors := make(map[uuid.UUID][]uuid.UUID, popSize)
	for i := 0; i < popSize; i++ {
		c, err := RandomCandidate(r.rng, r.Topology, r.networkOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create candidate %d: %w", i, err)
		}
		c.fitness = r.Baseline
		candidates = append(candidates, c)
		ancestors[c.id] = []uuid.UUID{} // No parents for initial population
	}
	r.Ancestors = ancestors
	return candidates, nil
}

// Reproduce breeds count offspring from parents. Each child takes two parents chosen
// uniformly at random with replacement, so a parent may be paired with itself.
// Ancestry is only recorded once every child has been built.
func (r *Reproduction) Reproduce(parents []*Candidate, count, generation int) ([]*Candidate, error) {
	if len(parents) == 0 {
		return nil, fmt.Errorf("%w: no parents to breed from", ErrConfiguration)
	}

	offspring := make([]*Candidate, 0, count)
	for i := 0; i < count; i++ {
		parent1 := parents[r.rng.Intn(len(parents))]
		parent2 := parents[r.rng.Intn(len(parents))]

		child, err := r.breed(parent1, parent2)
		if err != nil {
			return nil, fmt.Errorf("failed to breed offspring %d: %w", i, err)
		}
		child.born = generation
		child.parents = []uuid.UUID{parent1.id, parent2.id}
		offspring = append(offspring, child)
	}

	ancestors := make(map[uuid.UUID][]uuid.UUID, len(parents)+len(offspring))
	for _, p := range parents {
		ancestors[p.id] = []uuid.UUID{p.id} // Survivors are their own ancestor
	}
	for _, c := range offspring {
		ancestors[c.id] = c.Parents()
	}
	r.Ancestors = ancestors
	return offspring, nil
}

// breed produces one child through crossover, the optional mutation hook and decoding.
func (r *Reproduction) breed(parent1, parent2 *Candidate) (*Candidate, error) {
	genome, err := Crossover(r.rng, parent1.genome, parent2.genome)
	if err != nil {
		return nil, err
	}
	if r.MutationRate > 0 {
		genome, err = genome.Mutate(r.rng, r.MutationRate)
		if err != nil {
			return nil, err
		}
	}
	network, err := nn.Decode(r.Topology, genome.genes, r.networkOpts...)
	if err != nil {
		return nil, err
	}
	return NewCandidate(genome, network, r.Baseline), nil
}
