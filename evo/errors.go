package evo

import "errors"

var (
	// ErrLengthMismatch is returned by Crossover for parents of different length.
	ErrLengthMismatch = errors.New("genome length mismatch")
	// ErrConfiguration wraps every invalid topology, population size or rate.
	ErrConfiguration = errors.New("config error")
	// ErrUnknownCandidate is returned for candidates that are not part of the current population,
	// including handles kept from a generation that has since been replaced.
	ErrUnknownCandidate = errors.New("candidate is not in the current population")
	// ErrCandidateDead is returned when a decision is requested from a dead candidate.
	ErrCandidateDead = errors.New("candidate is dead")
)
