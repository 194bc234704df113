package evo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/baldhumanity/evodrive/evo/nn"
)

// Config stores the configuration parameters for a population.
type Config struct {
	Network   NetworkConfig   `yaml:"network"`
	Evolution EvolutionConfig `yaml:"evolution"`
}

// NetworkConfig holds the shape of the decoded networks.
type NetworkConfig struct {
	Topology   []int  `ini:"topology" delim:" " yaml:"topology"` // Layer sizes, input layer first
	Activation string `ini:"activation" yaml:"activation"`       // Name from nn.ActivationFunctions
}

// EvolutionConfig holds parameters of the generation cycle.
type EvolutionConfig struct {
	PopulationSize  int           `ini:"population_size" yaml:"population_size"`
	MutationRate    float64       `ini:"mutation_rate" yaml:"mutation_rate"`       // 0 disables mutation
	GenerationTime  time.Duration `ini:"generation_time" yaml:"generation_time"`   // 0 waits for every candidate to die
	FitnessBaseline float64       `ini:"fitness_baseline" yaml:"fitness_baseline"` // Fitness of a candidate before any report
	Seed            int64         `ini:"seed" yaml:"seed"`                         // 0 seeds from the clock
}

// DefaultConfig returns the configuration used for any value a file does not set.
func DefaultConfig() *Config {
	return &Config{
		Network: NetworkConfig{
			Topology:   []int{5, 4, 2},
			Activation: "sigmoid",
		},
		Evolution: EvolutionConfig{
			PopulationSize: 20,
			GenerationTime: 30 * time.Second,
		},
	}
}

// LoadConfig loads configuration parameters from an INI file, or from YAML when the file
// extension is .yaml or .yml. Values missing from the file keep their defaults.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
		}
	default:
		cfg, err := ini.Load(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
		}
		if err := cfg.Section("Network").MapTo(&config.Network); err != nil {
			return nil, fmt.Errorf("failed to map [Network] section: %w", err)
		}
		if err := cfg.Section("Evolution").MapTo(&config.Evolution); err != nil {
			return nil, fmt.Errorf("failed to map [Evolution] section: %w", err)
		}
	}

	config.Network.Activation = strings.ToLower(strings.TrimSpace(config.Network.Activation))
	if config.Network.Activation == "" {
		config.Network.Activation = "sigmoid"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks every parameter. All errors wrap ErrConfiguration.
func (c *Config) Validate() error {
	if err := c.Topology().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if _, err := nn.GetActivation(c.Network.Activation); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if c.Evolution.PopulationSize < 2 {
		return fmt.Errorf("%w: population_size must be at least 2, got %d", ErrConfiguration, c.Evolution.PopulationSize)
	}
	if c.Evolution.MutationRate < 0 || c.Evolution.MutationRate > 1 {
		return fmt.Errorf("%w: mutation_rate must be between 0 and 1", ErrConfiguration)
	}
	if c.Evolution.GenerationTime < 0 {
		return fmt.Errorf("%w: generation_time cannot be negative", ErrConfiguration)
	}
	return nil
}

// clone returns a copy that shares no slices with c.
func (c *Config) clone() Config {
	out := *c
	out.Network.Topology = append([]int(nil), c.Network.Topology...)
	return out
}

// Topology returns the configured layer sizes as an nn.Topology.
func (c *Config) Topology() nn.Topology {
	return nn.Topology(c.Network.Topology).Clone()
}

// networkOptions translates the network section into build options.
func (c *Config) networkOptions() ([]nn.Option, error) {
	act, err := nn.GetActivation(c.Network.Activation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return []nn.Option{nn.WithActivation(act)}, nil
}
