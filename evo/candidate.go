package evo

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/baldhumanity/evodrive/evo/nn"
)

// Candidate couples a genome with the network decoded from it and the liveness and
// fitness recorded for the current generation. Only the owning Population changes
// liveness and fitness.
type Candidate struct {
	id      uuid.UUID
	genome  Genome
	network *nn.Network
	alive   bool
	fitness float64
	born    int
	parents []uuid.UUID
}

// CandidateSnapshot is a point-in-time copy of a candidate, safe to hand to observers.
type CandidateSnapshot struct {
	ID      uuid.UUID
	Genome  Genome
	Fitness float64
	Alive   bool
	Born    int         // Generation in which the candidate was created.
	Parents []uuid.UUID // Empty for candidates of the initial population.
}

// NewCandidate pairs a genome with its decoded network. The candidate starts alive with
// the given fitness baseline.
func NewCandidate(genome Genome, network *nn.Network, baseline float64) *Candidate {
	return &Candidate{
		id:      uuid.New(),
		genome:  genome,
		network: network,
		alive:   true,
		fitness: baseline,
	}
}

// RandomCandidate draws a random genome sized for topology and decodes its network.
func RandomCandidate(rng *rand.Rand, topology nn.Topology, opts ...nn.Option) (*Candidate, error) {
	if err := topology.Validate(); err != nil {
		return nil, err
	}
	genome := RandomGenome(rng, topology.ParameterCount())
	network, err := nn.Decode(topology, genome.genes, opts...)
	if err != nil {
		return nil, err
	}
	return NewCandidate(genome, network, 0), nil
}

// Decide feeds the sensor inputs through the candidate's network and returns its decision.
func (c *Candidate) Decide(inputs []float64) ([]float64, error) {
	return c.network.FeedForward(inputs)
}

// ID returns the unique identifier of the candidate.
func (c *Candidate) ID() uuid.UUID { return c.id }

// Alive reports whether the candidate is still being evaluated this generation.
func (c *Candidate) Alive() bool { return c.alive }

// Fitness returns the last fitness reported for the candidate.
func (c *Candidate) Fitness() float64 { return c.fitness }

// Genome returns the candidate's genome.
func (c *Candidate) Genome() Genome { return c.genome }

// Network returns the decoded network, for read-only introspection.
func (c *Candidate) Network() *nn.Network { return c.network }

// Born returns the generation in which the candidate was created.
func (c *Candidate) Born() int { return c.born }

// Parents returns the IDs of the candidate's parents.
func (c *Candidate) Parents() []uuid.UUID {
	out := make([]uuid.UUID, len(c.parents))
	copy(out, c.parents)
	return out
}

// Snapshot copies the candidate's current state.
func (c *Candidate) Snapshot() CandidateSnapshot {
	return CandidateSnapshot{
		ID:      c.id,
		Genome:  NewGenome(c.genome.genes),
		Fitness: c.fitness,
		Alive:   c.alive,
		Born:    c.born,
		Parents: c.Parents(),
	}
}

// reset prepares the candidate for a new evaluation phase.
func (c *Candidate) reset(baseline float64) {
	c.alive = true
	c.fitness = baseline
}
