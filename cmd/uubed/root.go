package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hupe1980/uubed"
)

// cli holds state shared by all subcommands of one invocation.
type cli struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    Config
	logger *uubed.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{cfg: DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "uubed",
		Short: "Position-safe embedding encoders",
		Long: `uubed encodes byte embeddings into position-safe strings (Q64, Mq64),
locality-sensitive hashes (SimHash), sparse index sets (top-k) and
Z-order keys.

Embeddings are given as hex (default) or comma-separated byte values.`,
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: c.setup,
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&c.logFormat, "log-format", "", "log format (text, json)")

	cmd.AddCommand(
		newEncodeCmd(c),
		newDecodeCmd(c),
		newBatchCmd(c),
		newInfoCmd(c),
	)

	return cmd
}

// setup loads the config file and applies flag overrides before any
// subcommand runs.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if c.configPath != "" {
		cfg, err := LoadConfig(c.configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
	}

	if c.logLevel != "" {
		c.cfg.Log.Level = c.logLevel
	}
	if c.logFormat != "" {
		c.cfg.Log.Format = c.logFormat
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.logger = c.cfg.Logger(cmd.ErrOrStderr())
	return nil
}

// codecFlags are the encoding parameters shared by encode and batch.
type codecFlags struct {
	method string
	planes int
	k      int
	levels []int
	format string
}

func (f *codecFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.method, "method", "m", "", "encoding method (q64, mq64, simhash, topk, zorder, zorder-ext)")
	fs.IntVar(&f.planes, "planes", uubed.DefaultPlanes, "SimHash planes (output bits)")
	fs.IntVarP(&f.k, "k", "k", uubed.DefaultK, "number of top-k indices")
	fs.IntSliceVar(&f.levels, "levels", nil, "Mq64 prefix levels in bytes")
	fs.StringVarP(&f.format, "format", "f", formatHex, "embedding format (hex, csv)")
}

// apply copies explicitly set flags into cfg.
func (f *codecFlags) apply(fs *pflag.FlagSet, cfg *Config) error {
	if fs.Changed("method") {
		m, err := uubed.ParseMethod(f.method)
		if err != nil {
			return err
		}
		cfg.Method = m
	}
	if fs.Changed("planes") {
		cfg.Planes = f.planes
	}
	if fs.Changed("k") {
		cfg.K = f.k
	}
	if fs.Changed("levels") {
		cfg.Levels = f.levels
	}
	if fs.Changed("format") {
		cfg.Format = f.format
	}
	return cfg.Validate()
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
