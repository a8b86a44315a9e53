// Package config loads application settings from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"github.com/Garsondee/little-boxes/internal/battle"
)

// EnvPrefix prefixes every environment override, e.g. LITTLEBOXES_SIM_SEED.
const EnvPrefix = "LITTLEBOXES"

// Config is the full application configuration.
type Config struct {
	Sim      SimConfig      `mapstructure:"sim"`
	Render   RenderConfig   `mapstructure:"render"`
	Scenario ScenarioConfig `mapstructure:"scenario"`
}

// SimConfig controls the battle itself.
type SimConfig struct {
	TPS    float64 `mapstructure:"tps"`
	Seed   int64   `mapstructure:"seed"`
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// RenderConfig holds rendering hints for the front ends.
type RenderConfig struct {
	Particles bool    `mapstructure:"particles"`
	Antialias bool    `mapstructure:"antialias"`
	Scale     float64 `mapstructure:"scale"`
}

// ScenarioConfig picks the layout to load: Path wins over a built-in Name.
type ScenarioConfig struct {
	Path string `mapstructure:"path"`
	Name string `mapstructure:"name"`
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("sim.tps", d.Sim.TPS)
	v.SetDefault("sim.seed", d.Sim.Seed)
	v.SetDefault("sim.width", d.Sim.Width)
	v.SetDefault("sim.height", d.Sim.Height)
	v.SetDefault("render.particles", d.Render.Particles)
	v.SetDefault("render.antialias", d.Render.Antialias)
	v.SetDefault("render.scale", d.Render.Scale)
	v.SetDefault("scenario.path", d.Scenario.Path)
	v.SetDefault("scenario.name", d.Scenario.Name)
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Sim:      SimConfig{TPS: battle.DefaultTPS, Seed: 1, Width: battle.DefaultWidth, Height: battle.DefaultHeight},
		Render:   RenderConfig{Particles: true, Antialias: true, Scale: 1},
		Scenario: ScenarioConfig{Name: "sandbox-demo"},
	}
}

// Load reads path (any format viper understands) over the defaults, then
// applies environment overrides. With an empty path it looks for
// littleboxes.yaml in the working directory. A missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("littleboxes")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the battle cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Sim.TPS <= 0:
		return fmt.Errorf("config: sim.tps must be positive, got %v", c.Sim.TPS)
	case c.Sim.Width <= 0 || c.Sim.Height <= 0:
		return fmt.Errorf("config: field must have positive size, got %vx%v", c.Sim.Width, c.Sim.Height)
	case c.Render.Scale <= 0:
		return fmt.Errorf("config: render.scale must be positive, got %v", c.Render.Scale)
	}
	return nil
}

// BattleOptions returns the battle options the sim settings imply.
func (c Config) BattleOptions() []battle.Option {
	return []battle.Option{
		battle.WithSeed(c.Sim.Seed),
		battle.WithField(c.Sim.Width, c.Sim.Height),
	}
}
