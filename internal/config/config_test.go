package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, SupportedSchema, cfg.SchemaVersion)
	assert.Equal(t, 100, cfg.Samples)
	assert.Equal(t, uint64(1), cfg.Seed)
	assert.Equal(t, []string{"stdout"}, cfg.Sinks)
	assert.Empty(t, cfg.Metrics.Addr)
	assert.NotNil(t, cfg.SinkConfigs)
}

func TestLoad_YAMLAndRelativePipeline(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "augprof.yml", `schema_version: v1
pipeline: pipelines/flip.yml
samples: 16
seed: 42
methods: [call, apply]
sinks: [stdout, kafka]
sink_configs:
  kafka:
    brokers: [localhost:9092]
    topic: augkit.reports
metrics:
  addr: ":9100"
log:
  level: debug
  json: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pipelines", "flip.yml"), cfg.Pipeline)
	assert.Equal(t, 16, cfg.Samples)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, []string{"call", "apply"}, cfg.Methods)
	assert.Equal(t, []string{"stdout", "kafka"}, cfg.Sinks)
	assert.Equal(t, "augkit.reports", cfg.SinkConfigs["kafka"]["topic"])
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
	assert.Equal(t, LogCfg{Level: "debug", JSON: true}, cfg.Log)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "augprof.yml", "samples: 16\npipeline: /abs/pipeline.yml\n")
	t.Setenv("AUGKIT__SAMPLES", "7")
	t.Setenv("AUGKIT__METRICS__ADDR", ":9200")
	t.Setenv("AUGKIT__SINK_CONFIGS__KAFKA__TOPIC", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Samples)
	assert.Equal(t, ":9200", cfg.Metrics.Addr)
	assert.Equal(t, "from-env", cfg.SinkConfigs["kafka"]["topic"])
	assert.Equal(t, "/abs/pipeline.yml", cfg.Pipeline)
}

func TestLoad_InvalidSchema(t *testing.T) {
	path := writeFile(t, t.TempDir(), "augprof.yml", "schema_version: v2\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"v2"`)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "augprof.yml", "samples: [\n")
	_, err := Load(path)
	require.Error(t, err)
}
