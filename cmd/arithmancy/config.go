package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/zephyrtronium/arithmancy"
)

// config is the contents of a --config file.
type config struct {
	// Defaults is false to start without the constants pi and e.
	Defaults *bool `yaml:"defaults"`
	// Constants are named constants to add.
	Constants map[string]float64 `yaml:"constants"`
	// Vars are variable bindings, overridden by --given.
	Vars map[string]float64 `yaml:"vars"`
}

func loadConfig(name string) (*config, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := yaml.UnmarshalWithOptions(b, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", name, err)
	}
	return &cfg, nil
}

// newEnv creates an Env with the default operators and the constants of cfg.
// A nil config gives the default constants.
func (cfg *config) newEnv(logger *slog.Logger) (*arithmancy.Env, error) {
	if cfg == nil {
		return arithmancy.NewEnv(arithmancy.WithLogger(logger)), nil
	}
	env := arithmancy.NewEnv(arithmancy.WithLogger(logger), arithmancy.WithoutDefaults())
	env.LoadDefaults()
	if cfg.Defaults == nil || *cfg.Defaults {
		env.ResetNamedConstants()
	}
	names := make([]string, 0, len(cfg.Constants))
	for k := range cfg.Constants {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if err := env.AddNamedConstant(k, cfg.Constants[k]); err != nil {
			return nil, fmt.Errorf("config constant: %w", err)
		}
	}
	return env, nil
}
