// Package nn builds layered, fully connected feed-forward networks from flat gene vectors
// and evaluates them.
package nn

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultWeight is the weight of every connection in a freshly built network.
	DefaultWeight = 1.0
	// DefaultBias is the bias of every neuron in a freshly built network.
	DefaultBias = 0.0
)

// Connection is a weighted edge from neuron From of the previous layer.
type Connection struct {
	From   int
	Weight float64
}

// Neuron is a read-only view of a single neuron.
// Inputs is empty for neurons of the input layer.
type Neuron struct {
	Bias   float64
	Output float64
	Inputs []Connection
}

// neuron stores incoming weights in previous-layer index order, so weights[j] is the
// weight of the connection from neuron j of the previous layer.
type neuron struct {
	bias    float64
	weights []float64
}

// layer keeps the last computed outputs next to its neurons so the next layer can
// consume them as a plain vector.
type layer struct {
	neurons []neuron
	outputs []float64
}

// Network is a layered feed-forward network matching a Topology.
// It is not safe for concurrent use: FeedForward overwrites the stored neuron outputs.
type Network struct {
	topology   Topology
	layers     []layer
	activation ActivationFunc
}

// Option configures a Network at build time.
type Option func(*Network)

// WithActivation replaces the default sigmoid activation.
func WithActivation(fn ActivationFunc) Option {
	return func(n *Network) {
		if fn != nil {
			n.activation = fn
		}
	}
}

// Build creates a network with the given topology. Every neuron past the input layer is
// connected to every neuron of the previous layer, in that layer's index order. Weights
// start at DefaultWeight and biases at DefaultBias.
func Build(topology Topology, opts ...Option) (*Network, error) {
	if err := topology.Validate(); err != nil {
		return nil, err
	}

	net := &Network{
		topology:   topology.Clone(),
		layers:     make([]layer, len(topology)),
		activation: Sigmoid,
	}
	for _, opt := range opts {
		opt(net)
	}

	for i, size := range topology {
		l := layer{
			neurons: make([]neuron, size),
			outputs: make([]float64, size),
		}
		for j := range l.neurons {
			l.neurons[j].bias = DefaultBias
			if i == 0 {
				continue
			}
			weights := make([]float64, topology[i-1])
			for k := range weights {
				weights[k] = DefaultWeight
			}
			l.neurons[j].weights = weights
		}
		net.layers[i] = l
	}
	return net, nil
}

// Decode builds a network for topology and assigns genes in order: layers 1..n-1, neurons
// in ascending index order and, for each neuron, its connection weights followed by its bias.
// Every gene must be consumed exactly once.
func Decode(topology Topology, genes []float64, opts ...Option) (*Network, error) {
	net, err := Build(topology, opts...)
	if err != nil {
		return nil, err
	}
	if expected := topology.ParameterCount(); len(genes) != expected {
		return nil, fmt.Errorf("%w: topology %v needs %d genes, got %d", ErrDecodeLength, topology, expected, len(genes))
	}

	idx := 0
	for i := 1; i < len(net.layers); i++ {
		for j := range net.layers[i].neurons {
			n := &net.layers[i].neurons[j]
			idx += copy(n.weights, genes[idx:])
			n.bias = genes[idx]
			idx++
		}
	}
	return net, nil
}

// FeedForward evaluates the network layer by layer and returns a copy of the output layer.
// Each neuron computes activation(sum(weight_j * previous_j) + bias).
func (n *Network) FeedForward(inputs []float64) ([]float64, error) {
	if len(inputs) != n.topology.Inputs() {
		return nil, fmt.Errorf("%w: got %d inputs, input layer has %d neurons", ErrInputSize, len(inputs), n.topology.Inputs())
	}

	copy(n.layers[0].outputs, inputs)
	for i := 1; i < len(n.layers); i++ {
		prev := n.layers[i-1].outputs
		cur := &n.layers[i]
		for j := range cur.neurons {
			nr := &cur.neurons[j]
			cur.outputs[j] = n.activation(floats.Dot(nr.weights, prev) + nr.bias)
		}
	}

	last := n.layers[len(n.layers)-1].outputs
	out := make([]float64, len(last))
	copy(out, last)
	return out, nil
}

// Topology returns a copy of the network shape.
func (n *Network) Topology() Topology {
	return n.topology.Clone()
}

// Neuron returns a copy of neuron index of the given layer, including the output of the
// most recent FeedForward call.
func (n *Network) Neuron(layerIndex, index int) (Neuron, error) {
	if layerIndex < 0 || layerIndex >= len(n.layers) {
		return Neuron{}, fmt.Errorf("layer %d out of range [0, %d)", layerIndex, len(n.layers))
	}
	l := n.layers[layerIndex]
	if index < 0 || index >= len(l.neurons) {
		return Neuron{}, fmt.Errorf("neuron %d out of range [0, %d) in layer %d", index, len(l.neurons), layerIndex)
	}

	nr := l.neurons[index]
	view := Neuron{Bias: nr.bias, Output: l.outputs[index]}
	if len(nr.weights) > 0 {
		view.Inputs = make([]Connection, len(nr.weights))
		for k, w := range nr.weights {
			view.Inputs[k] = Connection{From: k, Weight: w}
		}
	}
	return view, nil
}

// Outputs returns a copy of the outputs stored on layerIndex by the last FeedForward call.
func (n *Network) Outputs(layerIndex int) []float64 {
	if layerIndex < 0 || layerIndex >= len(n.layers) {
		return nil
	}
	src := n.layers[layerIndex].outputs
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// String lists the incoming weights of every non-input neuron, one line per neuron.
func (n *Network) String() string {
	var sb strings.Builder
	for i := 1; i < len(n.layers); i++ {
		for j, nr := range n.layers[i].neurons {
			fmt.Fprintf(&sb, "L(%d) N(%d) : %s bias=%g\n", i, j, formatFloats(nr.weights), nr.bias)
		}
	}
	return sb.String()
}

func formatFloats(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
