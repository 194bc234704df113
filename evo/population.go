package evo

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Population holds the candidates under evaluation and drives the generation cycle:
// evaluate, rank, select, breed, reset.
//
// A Population is driven from a single goroutine. The host calls Decide for live
// candidates, reports results through ReportDeath and SetFitness, and calls
// AdvanceGeneration once ShouldAdvance reports true.
type Population struct {
	config       Config
	reproduction *Reproduction

	candidates []*Candidate
	members    map[*Candidate]struct{}
	generation int
	elapsed    time.Duration

	best      CandidateSnapshot
	bestFound bool

	reporters ReporterSet
	logger    *slog.Logger
	rng       *rand.Rand
}

// PopulationOption customizes a Population at construction.
type PopulationOption func(*Population)

// WithRand sets the random source used for genomes, selection and breeding.
// Runs are reproducible for a fixed source and fixed fitness reports.
func WithRand(rng *rand.Rand) PopulationOption {
	return func(p *Population) { p.rng = rng }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) PopulationOption {
	return func(p *Population) { p.logger = logger }
}

// WithReporter registers a reporter before the initial population is built.
func WithReporter(r Reporter) PopulationOption {
	return func(p *Population) { p.reporters.Add(r) }
}

// NewPopulation validates config and creates the initial population of random candidates.
// The population keeps its own copy of config; later changes to it have no effect.
func NewPopulation(config *Config, opts ...PopulationOption) (*Population, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is required", ErrConfiguration)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	networkOpts, err := config.networkOptions()
	if err != nil {
		return nil, err
	}

	p := &Population{config: config.clone()}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.rng == nil {
		seed := config.Evolution.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		p.rng = rand.New(rand.NewSource(seed))
	}

	p.reproduction = NewReproduction(p.config.Topology(), p.rng, networkOpts...)
	p.reproduction.MutationRate = p.config.Evolution.MutationRate
	p.reproduction.Baseline = p.config.Evolution.FitnessBaseline

	candidates, err := p.reproduction.CreateNewPopulation(p.config.Evolution.PopulationSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial population: %w", err)
	}
	p.setCandidates(candidates)

	p.logger.Info("created initial population",
		slog.Int("size", len(candidates)),
		slog.String("topology", config.Topology().String()),
		slog.Int("genes", config.Topology().ParameterCount()),
	)
	return p, nil
}

// AddReporter registers a reporter for generation and death notifications.
func (p *Population) AddReporter(r Reporter) {
	p.reporters.Add(r)
}

// OnGenerationAdvanced registers fn to be called once per completed generation advance.
func (p *Population) OnGenerationAdvanced(fn func(GenerationEvent)) {
	if fn != nil {
		p.reporters.Add(GenerationFunc(fn))
	}
}

// Decide returns the decision of a live candidate for the given sensor inputs.
func (p *Population) Decide(c *Candidate, inputs []float64) ([]float64, error) {
	if err := p.checkMember(c); err != nil {
		return nil, err
	}
	if !c.alive {
		return nil, ErrCandidateDead
	}
	return c.Decide(inputs)
}

// ReportDeath marks a candidate dead for the rest of the generation. Only the first
// report of a generation notifies reporters.
func (p *Population) ReportDeath(c *Candidate) error {
	if err := p.checkMember(c); err != nil {
		return err
	}
	if !c.alive {
		return nil
	}
	c.alive = false
	p.reporters.CandidateDied(c.Snapshot())
	return nil
}

// SetFitness records the fitness measured for a candidate, replacing any earlier value.
func (p *Population) SetFitness(c *Candidate, fitness float64) error {
	if err := p.checkMember(c); err != nil {
		return err
	}
	c.fitness = fitness
	return nil
}

// Elapse adds simulated time to the current generation's time budget.
func (p *Population) Elapse(dt time.Duration) {
	if dt > 0 {
		p.elapsed += dt
	}
}

// Elapsed returns the simulated time spent in the current generation.
func (p *Population) Elapsed() time.Duration {
	return p.elapsed
}

// ShouldAdvance reports whether the generation time budget is spent or every candidate is dead.
func (p *Population) ShouldAdvance() bool {
	budget := p.config.Evolution.GenerationTime
	if budget > 0 && p.elapsed >= budget {
		return true
	}
	return p.AliveCount() == 0
}

// AdvanceGeneration ranks the candidates by fitness, keeps the top half, breeds the
// population back to full size and starts a new generation. It either completes or
// returns an error with the population unchanged.
func (p *Population) AdvanceGeneration() error {
	popSize := p.config.Evolution.PopulationSize

	p.logger.Debug("ranking candidates", slog.Int("generation", p.generation))
	ranked := rankByFitness(p.candidates)
	stats := computeStats(p.generation, ranked, p.elapsed)

	survivors := make([]*Candidate, popSize/2)
	copy(survivors, ranked)

	p.logger.Debug("breeding offspring",
		slog.Int("survivors", len(survivors)),
		slog.Int("offspring", popSize-len(survivors)),
	)
	offspring, err := p.reproduction.Reproduce(survivors, popSize-len(survivors), p.generation+1)
	if err != nil {
		p.logger.Error("generation advance failed", slog.Int("generation", p.generation), slog.Any("error", err))
		return fmt.Errorf("advancing generation %d: %w", p.generation, err)
	}

	if !p.bestFound || ranked[0].fitness > p.best.Fitness {
		p.best = ranked[0].Snapshot()
		p.bestFound = true
		p.logger.Debug("new best candidate",
			slog.String("id", p.best.ID.String()),
			slog.Float64("fitness", p.best.Fitness),
		)
	}

	next := make([]*Candidate, 0, popSize)
	next = append(next, survivors...)
	next = append(next, offspring...)
	for _, c := range next {
		c.reset(p.config.Evolution.FitnessBaseline)
	}
	p.setCandidates(next)
	p.generation++
	p.elapsed = 0

	stats.Survivors = len(survivors)
	stats.Offspring = len(offspring)
	snapshots := make([]CandidateSnapshot, len(next))
	for i, c := range next {
		snapshots[i] = c.Snapshot()
	}
	p.reporters.GenerationAdvanced(GenerationEvent{
		Generation: p.generation,
		Stats:      stats,
		Candidates: snapshots,
	})
	return nil
}

// Config returns a copy of the configuration the population was created with.
func (p *Population) Config() Config {
	return p.config.clone()
}

// Ancestors returns the parent IDs of every current candidate, keyed by candidate ID.
// Survivors list themselves; candidates of the initial population have no parents.
func (p *Population) Ancestors() map[uuid.UUID][]uuid.UUID {
	out := make(map[uuid.UUID][]uuid.UUID, len(p.reproduction.Ancestors))
	for id, parents := range p.reproduction.Ancestors {
		out[id] = append([]uuid.UUID{}, parents...)
	}
	return out
}

// Generation returns the index of the generation being evaluated, starting at 0.
func (p *Population) Generation() int {
	return p.generation
}

// Candidates returns the current candidates. The slice is a copy; the candidates are not.
func (p *Population) Candidates() []*Candidate {
	out := make([]*Candidate, len(p.candidates))
	copy(out, p.candidates)
	return out
}

// Size returns the number of candidates.
func (p *Population) Size() int {
	return len(p.candidates)
}

// AliveCount returns the number of candidates not yet reported dead.
func (p *Population) AliveCount() int {
	n := 0
	for _, c := range p.candidates {
		if c.alive {
			n++
		}
	}
	return n
}

// Best returns the fittest candidate seen at any ranking so far, with the fitness it had
// then. ok is false before the first generation advance.
func (p *Population) Best() (best CandidateSnapshot, ok bool) {
	return p.best, p.bestFound
}

func (p *Population) setCandidates(candidates []*Candidate) {
	p.candidates = candidates
	p.members = make(map[*Candidate]struct{}, len(candidates))
	for _, c := range candidates {
		p.members[c] = struct{}{}
	}
}

func (p *Population) checkMember(c *Candidate) error {
	if c == nil {
		return fmt.Errorf("%w: nil candidate", ErrUnknownCandidate)
	}
	if _, ok := p.members[c]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCandidate, c.id)
	}
	return nil
}

// rankByFitness returns the candidates sorted by fitness, highest first. Candidates with
// equal fitness keep their relative order.
func rankByFitness(candidates []*Candidate) []*Candidate {
	ranked := make([]*Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].fitness > ranked[j].fitness
	})
	return ranked
}
