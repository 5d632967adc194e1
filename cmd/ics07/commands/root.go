package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tendermint/ics07/config"
	"github.com/tendermint/ics07/ibc/tendermint"
	"github.com/tendermint/ics07/libs/cli"
	"github.com/tendermint/ics07/libs/log"
	tmos "github.com/tendermint/ics07/libs/os"
	"github.com/tendermint/ics07/light"
)

// ParseConfig retrieves the default environment configuration and
// validates it.
func ParseConfig(conf *config.Config) (*config.Config, error) {
	if err := viper.Unmarshal(conf); err != nil {
		return nil, err
	}

	conf.SetRoot(conf.RootDir)

	if err := conf.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("error in config file: %w", err)
	}
	return conf, nil
}

// RootCommand constructs the root command-line entry point of ics07.
func RootCommand(conf *config.Config, logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ics07",
		Short:         "Build and check ICS-07 Tendermint misbehaviour evidence",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == VersionCmd.Name() {
				return nil
			}

			if err := cli.BindFlagsLoadViper(cmd, args); err != nil {
				return err
			}

			pconf, err := ParseConfig(conf)
			if err != nil {
				return err
			}
			*conf = *pconf
			return log.OverrideWithNewLogger(logger, conf.LogFormat, conf.LogLevel)
		},
	}
	cmd.PersistentFlags().StringP(cli.HomeFlag, "", os.ExpandEnv(filepath.Join("$HOME", config.DefaultICS07Dir)), "directory for config and data")
	cmd.PersistentFlags().Bool(cli.TraceFlag, false, "print out full stack trace on errors")
	cmd.PersistentFlags().String("log-level", conf.LogLevel, "log level")
	cobra.OnInitialize(func() { cli.InitEnv("ICS07") })
	return cmd
}

// evidenceOptions configures misbehaviour validation from conf. The
// returned flush writes the collected metrics to the metrics file, and is a
// no-op unless instrumentation is enabled.
func evidenceOptions(conf *config.Config, logger log.Logger) (opts []tendermint.Option, flush func() error, err error) {
	threshold, err := conf.Evidence.Threshold()
	if err != nil {
		return nil, nil, err
	}
	cv, err := light.NewProdCommitValidator(threshold)
	if err != nil {
		return nil, nil, err
	}

	metrics := tendermint.NopMetrics()
	flush = func() error { return nil }
	if conf.Instrumentation.Prometheus {
		reg := prometheus.NewRegistry()
		metrics = tendermint.PrometheusMetricsWith(reg, conf.Instrumentation.Namespace)
		path := conf.MetricsFile()
		flush = func() error {
			if err := tmos.EnsureDir(filepath.Dir(path), 0700); err != nil {
				return err
			}
			if err := prometheus.WriteToTextfile(path, reg); err != nil {
				return fmt.Errorf("writing metrics: %w", err)
			}
			logger.Debug("wrote metrics", "path", path)
			return nil
		}
	}

	return []tendermint.Option{
		tendermint.WithCommitValidator(cv),
		tendermint.WithLogger(logger.With("module", "evidence")),
		tendermint.WithMetrics(metrics),
	}, flush, nil
}
