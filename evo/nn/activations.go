package nn

import (
	"fmt"
	"math"
)

// ActivationFunc squashes the weighted input sum of a neuron into its output.
type ActivationFunc func(x float64) float64

// ActivationFunctions maps function names to activation functions.
// This allows configuration to specify activations by name.
var ActivationFunctions = map[string]ActivationFunc{
	"sigmoid":  Sigmoid,
	"tanh":     Tanh,
	"relu":     ReLU,
	"identity": Identity,
}

// GetActivation retrieves an activation function by name.
func GetActivation(name string) (ActivationFunc, error) {
	if fn, ok := ActivationFunctions[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown activation function: %s", name)
}

// Bounds keeping Sigmoid strictly inside (0, 1) where float64 would round to 0 or 1.
var (
	sigmoidMin = math.SmallestNonzeroFloat64
	sigmoidMax = math.Nextafter(1, 0)
)

// Sigmoid is the logistic function 1 / (1 + e^-x). It is the default activation.
func Sigmoid(x float64) float64 {
	return math.Min(math.Max(1.0/(1.0+math.Exp(-x)), sigmoidMin), sigmoidMax)
}

// Tanh activation function.
func Tanh(x float64) float64 {
	return math.Tanh(x)
}

// ReLU (Rectified Linear Unit) activation function.
func ReLU(x float64) float64 {
	return math.Max(0, x)
}

// Identity activation function (linear).
func Identity(x float64) float64 {
	return x
}
