package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBottomWidth = 150.0
	DefaultTopWidth    = 0.4 * DefaultBottomWidth
	DefaultHeight      = 300.0
	DefaultTopTemp     = 20.0
	DefaultBottomTemp  = 60.0
	DefaultDiffusivity = 0.001
	DefaultDt          = 0.1
	DefaultDx          = 1.0
	DefaultBlobCount   = 2
	DefaultBlobRadius  = 25.0
)

type Config struct {
	Container ContainerConfig `yaml:"container"`
	Thermal   ThermalConfig   `yaml:"thermal"`
	Fluid     FluidConfig     `yaml:"fluid"`
	Blobs     BlobConfig      `yaml:"blobs"`
	Collision string          `yaml:"collision"`
	Ticks     int             `yaml:"ticks"`
	Seed      int64           `yaml:"seed"`
}

// ContainerConfig describes the fluid chamber. Either width may be the
// larger one; the narrow-end orientation is not hardcoded anywhere.
type ContainerConfig struct {
	CenterX     float64 `yaml:"center_x"`
	TopY        float64 `yaml:"top_y"`
	TopWidth    float64 `yaml:"top_width"`
	BottomWidth float64 `yaml:"bottom_width"`
	Height      float64 `yaml:"height"`
}

type ThermalConfig struct {
	Diffusivity float64 `yaml:"diffusivity"`
	Dt          float64 `yaml:"dt"`
	Dx          float64 `yaml:"dx"`
	TopTemp     float64 `yaml:"top_temperature"`
	BottomTemp  float64 `yaml:"bottom_temperature"`
}

type FluidConfig struct {
	Gravity          float64 `yaml:"gravity"`
	AmbientDensity   float64 `yaml:"ambient_density"`
	ReferenceDensity float64 `yaml:"reference_density"`
	ReferenceTemp    float64 `yaml:"reference_temperature"`
	ExpansionCoeff   float64 `yaml:"expansion_coefficient"`
	HeatTransfer     float64 `yaml:"heat_transfer_coefficient"`
}

// BlobConfig controls spawning. Explicit positions win over randomized
// placement when present.
type BlobConfig struct {
	Count     int         `yaml:"count"`
	Radius    float64     `yaml:"radius"`
	Positions []BlobSpawn `yaml:"positions,omitempty"`
}

type BlobSpawn struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

func DefaultConfig() *Config {
	return &Config{
		Container: ContainerConfig{
			CenterX:     0,
			TopY:        0,
			TopWidth:    DefaultTopWidth,
			BottomWidth: DefaultBottomWidth,
			Height:      DefaultHeight,
		},
		Thermal: ThermalConfig{
			Diffusivity: DefaultDiffusivity,
			Dt:          DefaultDt,
			Dx:          DefaultDx,
			TopTemp:     DefaultTopTemp,
			BottomTemp:  DefaultBottomTemp,
		},
		Fluid: FluidConfig{
			Gravity:          9.81,
			AmbientDensity:   940,
			ReferenceDensity: 950,
			ReferenceTemp:    20.0,
			ExpansionCoeff:   -0.0004,
			HeatTransfer:     0.05,
		},
		Blobs: BlobConfig{
			Count:  DefaultBlobCount,
			Radius: DefaultBlobRadius,
		},
		Collision: "normal",
		Ticks:     2000,
		Seed:      42,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the simulation cannot be constructed
// from. Numerical stability of the diffusion constants is a separate
// discipline checked by DiffusionNumber and the test suite, not here.
func (c *Config) Validate() error {
	if c.Container.Height <= 0 {
		return fmt.Errorf("container height must be positive, got %f", c.Container.Height)
	}
	if c.Container.TopWidth <= 0 || c.Container.BottomWidth <= 0 {
		return fmt.Errorf("container widths must be positive, got top=%f bottom=%f",
			c.Container.TopWidth, c.Container.BottomWidth)
	}
	if c.Thermal.Diffusivity <= 0 {
		return fmt.Errorf("diffusivity must be positive, got %f", c.Thermal.Diffusivity)
	}
	if c.Thermal.Dt <= 0 || c.Thermal.Dx <= 0 {
		return fmt.Errorf("dt and dx must be positive, got dt=%f dx=%f", c.Thermal.Dt, c.Thermal.Dx)
	}
	if c.Fluid.HeatTransfer <= 0 || c.Fluid.HeatTransfer >= 1 {
		return fmt.Errorf("heat transfer coefficient must be in (0,1), got %f", c.Fluid.HeatTransfer)
	}
	if c.Fluid.ReferenceDensity <= 0 || c.Fluid.AmbientDensity <= 0 {
		return fmt.Errorf("densities must be positive")
	}
	if c.Collision != "normal" && c.Collision != "halfwidth" {
		return fmt.Errorf("unknown collision mode: %s", c.Collision)
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	if len(c.Blobs.Positions) == 0 && c.Blobs.Count <= 0 {
		return fmt.Errorf("blob count must be positive, got %d", c.Blobs.Count)
	}
	return nil
}

// DiffusionNumber returns alpha*dt/dx^2 for the configured constants. The
// explicit scheme is stable when this stays at or below 0.5.
func (c *Config) DiffusionNumber() float64 {
	return c.Thermal.Diffusivity * c.Thermal.Dt / (c.Thermal.Dx * c.Thermal.Dx)
}
