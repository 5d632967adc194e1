package config

import (
	"bytes"
	"path/filepath"
	"text/template"

	tmos "github.com/tendermint/ics07/libs/os"
)

// defaultDirPerm is the default permissions used when creating directories.
const defaultDirPerm = 0700

var configTemplate *template.Template

func init() {
	var err error
	if configTemplate, err = template.New("configFileTemplate").Parse(defaultConfigTemplate); err != nil {
		panic(err)
	}
}

/****** these are for production settings ***********/

// EnsureRoot creates the root and config directories if they don't exist.
func EnsureRoot(rootDir string) error {
	if err := tmos.EnsureDir(rootDir, defaultDirPerm); err != nil {
		return err
	}
	return tmos.EnsureDir(filepath.Join(rootDir, defaultConfigDir), defaultDirPerm)
}

// WriteConfigFile renders config using the template and writes it to
// the config file under rootDir.
func WriteConfigFile(rootDir string, config *Config) error {
	return config.WriteToTemplate(filepath.Join(rootDir, defaultConfigFilePath))
}

// WriteToTemplate writes the config to the exact file specified by
// the path, in the default toml template and does not mangle the path
// or filename at all.
func (cfg *Config) WriteToTemplate(path string) error {
	var buffer bytes.Buffer

	if err := configTemplate.Execute(&buffer, cfg); err != nil {
		return err
	}

	return tmos.WriteFileAtomic(path, buffer.Bytes(), 0644)
}

// WriteDefaultConfigFileIfNone writes the default config unless a config
// file already exists under rootDir.
func WriteDefaultConfigFileIfNone(rootDir string) error {
	configFilePath := filepath.Join(rootDir, defaultConfigFilePath)
	if !tmos.FileExists(configFilePath) {
		return WriteConfigFile(rootDir, DefaultConfig())
	}
	return nil
}

// Note: any changes to the comments/variables/mapstructure
// must be reflected in the appropriate struct in config/config.go
const defaultConfigTemplate = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml

#######################################################################
###                   Main Base Config Options                      ###
#######################################################################

# Output level for logging: debug | info | error
log-level = "{{ .BaseConfig.LogLevel }}"

# Output format: 'plain' (colored text) or 'json'
log-format = "{{ .BaseConfig.LogFormat }}"

#######################################################################
###                  Evidence Configuration Options                 ###
#######################################################################
[evidence]

# Fraction of the validator set's voting power a commit must carry, strictly
# more than which it is accepted. Must lie within [1/3, 1].
commit-threshold = "{{ .Evidence.CommitThreshold }}"

# Client id the build command uses when --client-id is not given.
client-id = "{{ .Evidence.ClientID }}"

#######################################################################
###               Instrumentation Configuration Options             ###
#######################################################################
[instrumentation]

# When true, evidence metrics are collected and written to metrics-file, in
# the Prometheus text format, when a command finishes.
prometheus = {{ .Instrumentation.Prometheus }}

# Instrumentation namespace
namespace = "{{ .Instrumentation.Namespace }}"

# Path of the metrics file, relative to the home directory unless absolute.
# Point a node_exporter textfile collector at its directory to scrape it.
metrics-file = "{{ .Instrumentation.MetricsFile }}"
`
