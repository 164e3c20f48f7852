package main

import (
	"github.com/BurntSushi/toml"
	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Config describes one profiling run. Values come from the defaults below,
// then an optional TOML file, then ECSPROF_* environment variables, then
// command-line flags.
type Config struct {
	Mode            string `toml:"mode" config:"ECSPROF_MODE"`
	OutputDir       string `toml:"output_dir" config:"ECSPROF_OUTPUT_DIR"`
	Rounds          int    `toml:"rounds" config:"ECSPROF_ROUNDS"`
	Iterations      int    `toml:"iterations" config:"ECSPROF_ITERATIONS"`
	Entities        int    `toml:"entities" config:"ECSPROF_ENTITIES"`
	InitialCapacity int    `toml:"initial_capacity" config:"ECSPROF_INITIAL_CAPACITY"`
	LogLevel        string `toml:"log_level" config:"ECSPROF_LOG_LEVEL"`
}

func defaultConfig() Config {
	return Config{
		Mode:            "mem",
		OutputDir:       ".",
		Rounds:          50,
		Iterations:      1000,
		Entities:        1000,
		InitialCapacity: 64,
		LogLevel:        "info",
	}
}

// loadConfig layers the TOML file at path (if any) and the environment over
// the defaults.
func loadConfig(path string, log zerolog.Logger) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, eris.Wrapf(err, "failed to decode config file %s", path)
		}
		for _, key := range md.Undecoded() {
			log.Warn().Str("key", key.String()).Msg("unknown config key")
		}
	}
	if err := config.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to read config from environment")
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Mode {
	case "mem", "cpu", "none":
	default:
		return eris.Errorf("unknown profile mode %q (want mem, cpu or none)", c.Mode)
	}
	if c.Rounds <= 0 || c.Iterations <= 0 || c.Entities <= 0 {
		return eris.New("rounds, iterations and entities must be positive")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return nil
}
