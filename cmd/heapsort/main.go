package main

import (
	"cmp"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/version"
	"github.com/weaveworks/common/logging"
	"gopkg.in/yaml.v2"

	"github.com/cortexproject/heapsort/pkg/sample"
	"github.com/cortexproject/heapsort/pkg/sorter"
	"github.com/cortexproject/heapsort/pkg/util/flagext"
	util_log "github.com/cortexproject/heapsort/pkg/util/log"
)

const configFileOption = "config.file"

// Config is the root config of the heapsort command.
type Config struct {
	LogLevel  logging.Level  `yaml:"log_level"`
	LogFormat logging.Format `yaml:"log_format"`

	Sample sample.Config `yaml:"sample"`
	Sorter sorter.Config `yaml:"sorter"`
}

// RegisterFlags registers flag.
func (c *Config) RegisterFlags(f *flag.FlagSet) {
	c.LogLevel.RegisterFlags(f)
	c.LogFormat.RegisterFlags(f)
	c.Sample.RegisterFlags(f)
	c.Sorter.RegisterFlags(f)
}

// Validate the config and returns an error if the validation
// doesn't pass
func (c *Config) Validate() error {
	if err := c.Sample.Validate(); err != nil {
		return errors.Wrap(err, "invalid sample config")
	}
	if err := c.Sorter.Validate(); err != nil {
		return errors.Wrap(err, "invalid sorter config")
	}
	return nil
}

// options are the command line switches that are not part of Config.
type options struct {
	printVersion bool
	printMetrics bool
}

func main() {
	cfg, opts, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if opts.printVersion {
		fmt.Fprintln(os.Stdout, version.Print("heapsort"))
		return
	}

	// Validate the config once both the config file has been loaded
	// and CLI flags parsed.
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error validating config: %v\n", err)
		os.Exit(1)
	}

	util_log.InitLogger(cfg.LogLevel, cfg.LogFormat)

	reg := prometheus.NewRegistry()
	reg.MustRegister(versioncollector.NewCollector("heapsort"))

	level.Debug(util_log.Logger).Log("msg", "Starting heapsort", "version", version.Info())

	err = run(cfg, os.Stdout, reg)
	util_log.CheckFatal("running heapsort", err)

	if opts.printMetrics {
		util_log.CheckFatal("printing metrics", writeMetrics(os.Stderr, reg))
	}
}

// parseConfig builds the config from flag defaults, then the file given by
// -config.file, then the flags explicitly set in args.
func parseConfig(fs *flag.FlagSet, args []string) (Config, options, error) {
	var (
		cfg  Config
		opts options
	)

	configFile := parseConfigFileParameter(args)

	// This sets default values from flags to the config.
	// It needs to be called before parsing the config file!
	cfg.RegisterFlags(fs)

	if configFile != "" {
		if err := LoadConfig(configFile, &cfg); err != nil {
			return Config{}, options{}, errors.Wrapf(err, "error loading config from %s", configFile)
		}
	}

	// Ignore -config.file here, since it was already parsed, but it's still present on command line.
	flagext.IgnoredFlag(fs, configFileOption, "Configuration file to load.")
	fs.BoolVar(&opts.printVersion, "version", false, "Print application version and exit.")
	fs.BoolVar(&opts.printMetrics, "metrics.print", false, "Print the collected metrics to stderr before exiting.")

	if err := fs.Parse(args); err != nil {
		return Config{}, options{}, err
	}

	return cfg, opts, nil
}

// run loads the values described by the sample config and prints them along
// with their sorted forms.
func run(cfg Config, w io.Writer, reg prometheus.Registerer) error {
	switch cfg.Sample.Kind {
	case sample.KindInt:
		values, err := cfg.Sample.Ints()
		if err != nil {
			return err
		}
		return sortAndPrint(cfg.Sorter, values, w, reg)
	case sample.KindFloat:
		values, err := cfg.Sample.Floats()
		if err != nil {
			return err
		}
		return sortAndPrint(cfg.Sorter, values, w, reg)
	case sample.KindString:
		values, err := cfg.Sample.Strings()
		if err != nil {
			return err
		}
		return sortAndPrint(cfg.Sorter, values, w, reg)
	default:
		return errors.Errorf("unsupported sample kind %q", cfg.Sample.Kind)
	}
}

func sortAndPrint[T cmp.Ordered](cfg sorter.Config, values []T, w io.Writer, reg prometheus.Registerer) error {
	s := sorter.New[T](cfg, util_log.Logger, reg)

	if _, err := fmt.Fprintf(w, "\n%-12s: %v\n", "Before", values); err != nil {
		return err
	}

	results, err := s.Run(values, w)
	if err != nil {
		return err
	}

	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%-12s: %v\n", directionLabel(r.Direction), r.Values); err != nil {
			return err
		}
	}
	return nil
}

func directionLabel(d sorter.Direction) string {
	if d == sorter.Ascending {
		return "Ascending"
	}
	return "Descending"
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrap(err, "failed to encode metrics")
		}
	}
	return nil
}

// Parse -config.file option via separate flag set, to avoid polluting default one and calling flag.Parse on it twice.
func parseConfigFileParameter(args []string) string {
	var configFile = ""
	// ignore errors and any output here. Any flag errors will be reported by main flag.Parse() call.
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&configFile, configFileOption, "", "") // usage not used in this function.

	// Try to find -config.file option in the flags. As Parsing stops on the first error, eg. unknown flag, we simply
	// try remaining parameters until we find config flag, or there are no params left.
	// (ContinueOnError just means that flag.Parse doesn't call panic or os.Exit, but it returns error, which we ignore)
	for len(args) > 0 {
		_ = fs.Parse(args)
		if configFile != "" {
			// found (!)
			break
		}
		args = args[1:]
	}

	return configFile
}

// LoadConfig read YAML-formatted config from filename into cfg.
func LoadConfig(filename string, cfg *Config) error {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "Error reading config file")
	}

	err = yaml.UnmarshalStrict(buf, cfg)
	if err != nil {
		return errors.Wrap(err, "Error parsing config file")
	}

	return nil
}
