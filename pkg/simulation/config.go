package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lao-tseu-is-alive/go-flock/pkg/boids"
	"github.com/lao-tseu-is-alive/go-flock/pkg/geometry"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var configSchema string

const configSchemaURL = "config.schema.json"

// ErrInvalidConfig is returned when a configuration breaks one of the
// rules a flock needs to run.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds everything needed to build and run a flock.
type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth" yaml:"worldWidth"`
	WorldHeight float64 `json:"worldHeight" yaml:"worldHeight"`
	WorldDepth  float64 `json:"worldDepth" yaml:"worldDepth"` // only used by 3D flocks

	// Population
	NumBoids   int    `json:"numBoids" yaml:"numBoids"`
	Dimensions int    `json:"dimensions" yaml:"dimensions"` // 2 or 3
	Seed       uint64 `json:"seed" yaml:"seed"`             // 0 picks a random seed

	// Neighborhood radii
	GoalSeparation float64 `json:"goalSeparation" yaml:"goalSeparation"`
	GoalAlignment  float64 `json:"goalAlignment" yaml:"goalAlignment"`
	GoalCohesion   float64 `json:"goalCohesion" yaml:"goalCohesion"`

	// Agent limits
	MaxSpeed   float64 `json:"maxSpeed" yaml:"maxSpeed"`
	MaxForce   float64 `json:"maxForce" yaml:"maxForce"`
	TurnRadius float64 `json:"turnRadius" yaml:"turnRadius"`

	Weights boids.Weights[float64] `json:"weights" yaml:"weights"`

	// Target is the point every boid is attracted to, if any.
	Target *geometry.Vector3D[float64] `json:"target,omitempty" yaml:"target,omitempty"`

	// Scheduling
	Parallel bool `json:"parallel" yaml:"parallel"`
	Workers  int  `json:"workers" yaml:"workers"` // 0 means GOMAXPROCS

	// Wrap teleports boids leaving the world to the opposite edge.
	Wrap bool `json:"wrap" yaml:"wrap"`

	LogLevel string `json:"logLevel" yaml:"logLevel"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:     800,
		WorldHeight:    600,
		WorldDepth:     600,
		NumBoids:       250,
		Dimensions:     2,
		GoalSeparation: boids.DefaultGoalSeparation,
		GoalAlignment:  boids.DefaultGoalAlignment,
		GoalCohesion:   boids.DefaultGoalCohesion,
		MaxSpeed:       boids.DefaultMaxSpeed,
		MaxForce:       boids.DefaultMaxForce,
		TurnRadius:     boids.DefaultTurnRadius,
		Weights:        boids.DefaultWeights[float64](),
		Wrap:           true,
		LogLevel:       "info",
	}
}

// Validate checks the rules the schema cannot express.
func (c *Config) Validate() error {
	switch {
	case c.WorldWidth <= 0 || c.WorldHeight <= 0:
		return fmt.Errorf("%w: world must have a positive size, got %vx%v", ErrInvalidConfig, c.WorldWidth, c.WorldHeight)
	case c.Dimensions != 2 && c.Dimensions != 3:
		return fmt.Errorf("%w: dimensions must be 2 or 3, got %d", ErrInvalidConfig, c.Dimensions)
	case c.Dimensions == 3 && c.WorldDepth <= 0:
		return fmt.Errorf("%w: a 3D world needs a positive depth, got %v", ErrInvalidConfig, c.WorldDepth)
	case c.NumBoids < 0:
		return fmt.Errorf("%w: numBoids must not be negative, got %d", ErrInvalidConfig, c.NumBoids)
	case c.GoalSeparation < 0 || c.GoalAlignment < 0 || c.GoalCohesion < 0:
		return fmt.Errorf("%w: %w", ErrInvalidConfig, boids.ErrNegativeRadius)
	case c.MaxSpeed <= 0:
		return fmt.Errorf("%w: maxSpeed must be positive, got %v", ErrInvalidConfig, c.MaxSpeed)
	case c.MaxForce < 0:
		return fmt.Errorf("%w: maxForce must not be negative, got %v", ErrInvalidConfig, c.MaxForce)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Scheduler returns the scheduler selected by Parallel and Workers.
func (c *Config) Scheduler() boids.Scheduler {
	return boids.NewScheduler(c.Parallel, c.Workers)
}

// LoadConfig loads a JSON or YAML file (picked by extension), validates it
// against the embedded schema and applies it over DefaultConfig.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		if b, err = yamlToJSON(b); err != nil {
			return nil, err
		}
	}
	return ParseConfig(b)
}

// ParseConfig validates a JSON document against the schema and applies it
// over DefaultConfig.
func ParseConfig(b []byte) (*Config, error) {
	sch, err := jsonschema.CompileString(configSchemaURL, configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	var v interface{}
	if err := json.NewDecoder(bytes.NewReader(b)).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// yamlToJSON converts a YAML document so the same schema checks both formats.
func yamlToJSON(b []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode config yaml: %w", err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert config yaml: %w", err)
	}
	return out, nil
}
