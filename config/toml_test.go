package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ensureFiles(t *testing.T, rootDir string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := rootify(f, rootDir)
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
}

func TestEnsureRoot(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, EnsureRoot(tmpDir))
	require.NoError(t, WriteDefaultConfigFileIfNone(tmpDir))
	ensureFiles(t, tmpDir, "config", defaultConfigFilePath)

	data, err := os.ReadFile(filepath.Join(tmpDir, defaultConfigFilePath))
	require.NoError(t, err)
	checkConfig(t, string(data))
}

func TestWriteDefaultConfigFileIfNoneKeepsExisting(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureRoot(tmpDir))

	cfg := DefaultConfig()
	cfg.LogLevel = "error"
	require.NoError(t, WriteConfigFile(tmpDir, cfg))
	require.NoError(t, WriteDefaultConfigFileIfNone(tmpDir))

	data, err := os.ReadFile(filepath.Join(tmpDir, defaultConfigFilePath))
	require.NoError(t, err)
	assert.Contains(t, string(data), `log-level = "error"`)
}

// The rendered template must decode back into the values it was rendered
// from.
func TestConfigTemplateRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogFormat = "json"
	cfg.LogLevel = "debug"
	cfg.Evidence.CommitThreshold = "3/4"
	cfg.Evidence.ClientID = "07-tendermint-42"
	cfg.Instrumentation.Prometheus = true
	cfg.Instrumentation.Namespace = "relayer"
	cfg.Instrumentation.MetricsFile = "/var/lib/node_exporter/ics07.prom"

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, cfg.WriteToTemplate(path))

	var decoded struct {
		LogLevel  string `toml:"log-level"`
		LogFormat string `toml:"log-format"`
		Evidence  struct {
			CommitThreshold string `toml:"commit-threshold"`
			ClientID        string `toml:"client-id"`
		} `toml:"evidence"`
		Instrumentation struct {
			Prometheus  bool   `toml:"prometheus"`
			Namespace   string `toml:"namespace"`
			MetricsFile string `toml:"metrics-file"`
		} `toml:"instrumentation"`
	}
	meta, err := toml.DecodeFile(path, &decoded)
	require.NoError(t, err)
	assert.Empty(t, meta.Undecoded())

	assert.Equal(t, "debug", decoded.LogLevel)
	assert.Equal(t, "json", decoded.LogFormat)
	assert.Equal(t, "3/4", decoded.Evidence.CommitThreshold)
	assert.Equal(t, "07-tendermint-42", decoded.Evidence.ClientID)
	assert.True(t, decoded.Instrumentation.Prometheus)
	assert.Equal(t, "relayer", decoded.Instrumentation.Namespace)
	assert.Equal(t, "/var/lib/node_exporter/ics07.prom", decoded.Instrumentation.MetricsFile)
}

func checkConfig(t *testing.T, configFile string) {
	t.Helper()
	elems := []string{
		"log-level",
		"log-format",
		"[evidence]",
		"commit-threshold",
		"client-id",
		"[instrumentation]",
		"prometheus",
		"namespace",
		"metrics-file",
	}
	for _, e := range elems {
		assert.Contains(t, configFile, e)
	}
}
