package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/TuftsBCB/microenv/smr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// app is the state shared by every command: the viper instance flags are
// bound to, and the configuration and logger built from it.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     smr.Config
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: smr.NewViper()}
	def := smr.DefaultConfig()

	root := &cobra.Command{
		Use:          "smr",
		Short:        "Compare residue microenvironments of designed and natural proteins",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML configuration file")
	flags.String("log-level", def.Log.Level, "log level (debug, info, warn, error)")
	flags.String("log-format", def.Log.Format, "log format (text or json)")
	a.bind("log.level", flags.Lookup("log-level"))
	a.bind("log.format", flags.Lookup("log-format"))

	root.AddCommand(
		newScoreCmd(a),
		newBatchCmd(a),
		newAlignCmd(a),
		newServeCmd(a),
	)
	return root
}

// bind makes a flag override the configuration key. Flags only take
// precedence when they are set on the command line.
func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// load builds the configuration and logger. It runs before every command.
func (a *app) load(logTo io.Writer) error {
	cfg, err := smr.LoadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, err := cfg.Log.Logger(logTo)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) engine() (*smr.Engine, error) {
	return smr.NewEngine(a.cfg, a.log)
}

// encode writes v to w as indented JSON or YAML.
func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("Unknown output format '%s' (use 'json' or 'yaml').", format)
}

func checkFormat(format string) error {
	if format != "json" && format != "yaml" {
		return fmt.Errorf("Unknown output format '%s' (use 'json' or 'yaml').",
			format)
	}
	return nil
}
