package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomGenes(rng *rand.Rand, n int) []float64 {
	genes := make([]float64, n)
	for i := range genes {
		genes[i] = rng.Float64()*2 - 1
	}
	return genes
}

func TestTopologyValidate(t *testing.T) {
	tests := []struct {
		name     string
		topology Topology
		wantErr  bool
	}{
		{"two layers", Topology{3, 2}, false},
		{"three layers", Topology{5, 4, 2}, false},
		{"empty", Topology{}, true},
		{"single layer", Topology{4}, true},
		{"zero sized layer", Topology{3, 0, 2}, true},
		{"negative layer", Topology{3, -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.topology.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTopology)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTopologyParameterCount(t *testing.T) {
	assert.Equal(t, 3*2+2, Topology{3, 2}.ParameterCount())
	assert.Equal(t, (2*2+2)+(1*2+1), Topology{2, 2, 1}.ParameterCount())
	assert.Equal(t, (4*5+4)+(2*4+2), Topology{5, 4, 2}.ParameterCount())
	assert.Equal(t, 5, Topology{5, 4, 2}.Inputs())
	assert.Equal(t, 2, Topology{5, 4, 2}.Outputs())
	assert.Equal(t, "[5 4 2]", Topology{5, 4, 2}.String())
}

func TestBuildDefaults(t *testing.T) {
	net, err := Build(Topology{3, 2, 1})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		n, err := net.Neuron(0, i)
		require.NoError(t, err)
		assert.Empty(t, n.Inputs, "input neurons have no connections")
	}

	for layer, prev := range map[int]int{1: 3, 2: 2} {
		size := net.Topology()[layer]
		for i := 0; i < size; i++ {
			n, err := net.Neuron(layer, i)
			require.NoError(t, err)
			assert.Equal(t, DefaultBias, n.Bias)
			require.Len(t, n.Inputs, prev)
			for k, c := range n.Inputs {
				assert.Equal(t, k, c.From, "connections follow previous-layer index order")
				assert.Equal(t, DefaultWeight, c.Weight)
			}
		}
	}
}

func TestBuildRejectsInvalidTopology(t *testing.T) {
	_, err := Build(Topology{4})
	assert.ErrorIs(t, err, ErrInvalidTopology)
}

func TestDecodeOrder(t *testing.T) {
	topology := Topology{2, 2, 1}
	genes := make([]float64, topology.ParameterCount())
	for i := range genes {
		genes[i] = float64(i + 1)
	}

	net, err := Decode(topology, genes)
	require.NoError(t, err)

	// Layer 1, neuron 0: weights 1,2 then bias 3.
	n, err := net.Neuron(1, 0)
	require.NoError(t, err)
	assert.Equal(t, []Connection{{From: 0, Weight: 1}, {From: 1, Weight: 2}}, n.Inputs)
	assert.Equal(t, 3.0, n.Bias)

	// Layer 1, neuron 1: weights 4,5 then bias 6.
	n, err = net.Neuron(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []Connection{{From: 0, Weight: 4}, {From: 1, Weight: 5}}, n.Inputs)
	assert.Equal(t, 6.0, n.Bias)

	// Layer 2, neuron 0: weights 7,8 then bias 9.
	n, err = net.Neuron(2, 0)
	require.NoError(t, err)
	assert.Equal(t, []Connection{{From: 0, Weight: 7}, {From: 1, Weight: 8}}, n.Inputs)
	assert.Equal(t, 9.0, n.Bias)
}

func TestDecodeConsumesAllGenes(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, topology := range []Topology{{1, 1}, {3, 2}, {5, 4, 2}, {2, 3, 3, 1}, {8, 6, 4, 2, 1}} {
		genes := randomGenes(rng, topology.ParameterCount())
		net, err := Decode(topology, genes)
		require.NoError(t, err, "topology %v", topology)

		var decoded []float64
		for layer := 1; layer < len(topology); layer++ {
			for i := 0; i < topology[layer]; i++ {
				n, err := net.Neuron(layer, i)
				require.NoError(t, err)
				for _, c := range n.Inputs {
					decoded = append(decoded, c.Weight)
				}
				decoded = append(decoded, n.Bias)
			}
		}
		assert.Equal(t, genes, decoded, "topology %v", topology)
	}
}

func TestDecodeLengthMismatch(t *testing.T) {
	topology := Topology{5, 4, 2}
	expected := topology.ParameterCount()

	for _, n := range []int{0, expected - 1, expected + 1} {
		_, err := Decode(topology, make([]float64, n))
		assert.ErrorIs(t, err, ErrDecodeLength, "length %d", n)
	}

	// The sum-plus-product count only agrees with the connection count for two layers.
	legacy := (5 + 4 + 2) + (5 * 4 * 2)
	_, err := Decode(topology, make([]float64, legacy))
	assert.ErrorIs(t, err, ErrDecodeLength)
}

func TestFeedForwardReferenceExample(t *testing.T) {
	net, err := Build(Topology{2, 2, 1})
	require.NoError(t, err)

	out, err := net.FeedForward([]float64{1, 1})
	require.NoError(t, err)
	require.Len(t, out, 1)

	hidden := Sigmoid(2)
	assert.InDelta(t, 0.88080, hidden, 1e-5)
	assert.InDelta(t, Sigmoid(2*hidden), out[0], 1e-12)
	assert.InDelta(t, 0.853409, out[0], 1e-6)

	assert.InDeltaSlice(t, []float64{hidden, hidden}, net.Outputs(1), 1e-12)
	assert.Equal(t, []float64{1, 1}, net.Outputs(0))
}

func TestFeedForwardInputSize(t *testing.T) {
	net, err := Build(Topology{3, 2})
	require.NoError(t, err)

	for _, inputs := range [][]float64{nil, {1}, {1, 2}, {1, 2, 3, 4}} {
		_, err := net.FeedForward(inputs)
		assert.ErrorIs(t, err, ErrInputSize)
	}
}

func TestFeedForwardDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	topology := Topology{5, 4, 3, 2}
	net, err := Decode(topology, randomGenes(rng, topology.ParameterCount()))
	require.NoError(t, err)

	inputs := randomGenes(rng, 5)
	first, err := net.FeedForward(inputs)
	require.NoError(t, err)

	// An unrelated evaluation in between must not leak into the next one.
	_, err = net.FeedForward(randomGenes(rng, 5))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := net.FeedForward(inputs)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFeedForwardReturnsCopy(t *testing.T) {
	net, err := Build(Topology{2, 1})
	require.NoError(t, err)

	out, err := net.FeedForward([]float64{0.5, 0.5})
	require.NoError(t, err)
	out[0] = 42
	assert.NotEqual(t, 42.0, net.Outputs(1)[0])
}

func TestSigmoidRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*60 - 30
		y := Sigmoid(x)
		assert.True(t, y > 0 && y < 1, "sigmoid(%v) = %v", x, y)
	}
	assert.Equal(t, 0.5, Sigmoid(0))
	assert.InDelta(t, 1-Sigmoid(3), Sigmoid(-3), 1e-15)

	// Saturating inputs stay inside the open interval.
	for _, x := range []float64{37, 40, 1000, math.MaxFloat64, -745, -800, -1000, -math.MaxFloat64} {
		y := Sigmoid(x)
		assert.True(t, y > 0 && y < 1, "sigmoid(%v) = %v", x, y)
	}
}

func TestWithActivation(t *testing.T) {
	fn, err := GetActivation("identity")
	require.NoError(t, err)

	net, err := Decode(Topology{2, 1}, []float64{2, 3, 1}, WithActivation(fn))
	require.NoError(t, err)
	out, err := net.FeedForward([]float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{6}, out)

	_, err = GetActivation("softsign")
	assert.Error(t, err)
}

func TestNeuronOutOfRange(t *testing.T) {
	net, err := Build(Topology{2, 1})
	require.NoError(t, err)

	_, err = net.Neuron(2, 0)
	assert.Error(t, err)
	_, err = net.Neuron(1, 1)
	assert.Error(t, err)
	assert.Nil(t, net.Outputs(-1))
}

func TestNetworkString(t *testing.T) {
	net, err := Decode(Topology{2, 1}, []float64{0.5, -1, 0.25})
	require.NoError(t, err)
	assert.Equal(t, "L(1) N(0) : [0.5,-1] bias=0.25\n", net.String())
}
