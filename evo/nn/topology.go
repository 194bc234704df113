package nn

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidTopology is returned for topologies with fewer than two layers or a non-positive layer size.
	ErrInvalidTopology = errors.New("invalid topology")
	// ErrDecodeLength is returned when a gene vector does not match the parameter count of a topology.
	ErrDecodeLength = errors.New("gene count does not match topology")
	// ErrInputSize is returned when a feedforward input vector does not match the input layer width.
	ErrInputSize = errors.New("input size does not match input layer")
)

// Topology lists the neuron count of every layer, input layer first and output layer last.
type Topology []int

// Validate checks that the topology describes a usable feed-forward network.
func (t Topology) Validate() error {
	if len(t) < 2 {
		return fmt.Errorf("%w: need at least 2 layers, got %d", ErrInvalidTopology, len(t))
	}
	for i, size := range t {
		if size <= 0 {
			return fmt.Errorf("%w: layer %d has size %d", ErrInvalidTopology, i, size)
		}
	}
	return nil
}

// ParameterCount returns the number of genes needed to decode a network of this shape:
// one bias plus one weight per incoming connection for every neuron past the input layer.
func (t Topology) ParameterCount() int {
	count := 0
	for i := 1; i < len(t); i++ {
		count += t[i] + t[i]*t[i-1]
	}
	return count
}

// Inputs returns the width of the input layer.
func (t Topology) Inputs() int {
	if len(t) == 0 {
		return 0
	}
	return t[0]
}

// Outputs returns the width of the output layer.
func (t Topology) Outputs() int {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1]
}

// Clone returns an independent copy of the topology.
func (t Topology) Clone() Topology {
	c := make(Topology, len(t))
	copy(c, t)
	return c
}

func (t Topology) String() string {
	parts := make([]string, len(t))
	for i, size := range t {
		parts[i] = strconv.Itoa(size)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
