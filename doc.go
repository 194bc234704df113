// Package evodrive evolves fixed-topology feed-forward neural network controllers with a
// generational genetic algorithm.
//
// Each candidate carries a flat genome of real numbers that decodes into the weights and
// biases of a layered network. A host simulation, such as a top-down car on a track, feeds
// sensor readings to every live candidate, reports collisions and distance traveled, and
// asks the population to advance once the generation time budget is spent or every
// candidate has crashed. The fittest half survives and the rest of the population is bred
// from them by uniform crossover.
//
// The library lives in the evo package, with network decoding and evaluation in evo/nn.
//
// Basic usage:
//
//	// Load configuration
//	config, err := evo.LoadConfig("path/to/drive.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	// Create a new population
//	pop, err := evo.NewPopulation(config)
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//
//	// Step your simulation
//	for {
//		for _, c := range pop.Candidates() {
//			if !c.Alive() {
//				continue
//			}
//			out, _ := pop.Decide(c, sensors(c))
//			if crashed := move(c, out); crashed {
//				pop.ReportDeath(c)
//			}
//			pop.SetFitness(c, distance(c))
//		}
//		pop.Elapse(dt)
//		if pop.ShouldAdvance() {
//			if err := pop.AdvanceGeneration(); err != nil {
//				log.Fatalf("Error advancing generation: %v", err)
//			}
//		}
//	}
package evodrive
