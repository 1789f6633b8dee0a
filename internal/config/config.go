package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides; nested keys are separated by a
// double underscore, e.g. AUGKIT__SINK_CONFIGS__KAFKA__TOPIC.
const EnvPrefix = "AUGKIT__"

type MetricsCfg struct {
	Addr string `koanf:"addr"` // empty disables the endpoint
}

type LogCfg struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

// Config is the runtime configuration of augprof.
type Config struct {
	SchemaVersion string `koanf:"schema_version"`

	// Pipeline is the path of the pipeline document.
	Pipeline string `koanf:"pipeline"`
	Samples  int    `koanf:"samples"`
	Seed     uint64 `koanf:"seed"`

	// Methods restricts tracking; empty tracks every method.
	Methods []string `koanf:"methods"`

	Sinks       []string                  `koanf:"sinks"`
	SinkConfigs map[string]map[string]any `koanf:"sink_configs"`

	Metrics MetricsCfg `koanf:"metrics"`
	Log     LogCfg     `koanf:"log"`
}

// Load merges YAML (if present) with environment overrides and applies
// defaults. A relative pipeline path is resolved against the directory of
// the YAML file.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	sv := k.String("schema_version")
	if sv != "" && sv != SupportedSchema {
		return Config{}, fmt.Errorf("config: schema_version %q not supported (want %s)", sv, SupportedSchema)
	}

	_ = k.Load(env.Provider(EnvPrefix, ".", envKey), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	applyDefaults(&cfg)
	if cfg.Pipeline != "" && path != "" && !filepath.IsAbs(cfg.Pipeline) {
		cfg.Pipeline = filepath.Join(filepath.Dir(path), cfg.Pipeline)
	}
	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func applyDefaults(c *Config) {
	if c.SchemaVersion == "" {
		c.SchemaVersion = SupportedSchema
	}
	if c.Samples <= 0 {
		c.Samples = 100
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
	if len(c.Sinks) == 0 {
		c.Sinks = []string{"stdout"}
	}
	if c.SinkConfigs == nil {
		c.SinkConfigs = map[string]map[string]any{}
	}
}
