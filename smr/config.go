package smr

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/TuftsBCB/microenv/align"
	"github.com/TuftsBCB/microenv/interact"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables that override
// configuration keys. The key "hbond.angle_cutoff" is read from
// SMR_HBOND_ANGLE_CUTOFF.
const EnvPrefix = "SMR"

// Config holds every setting of an Engine and of the smr command.
type Config struct {
	Radius      float64           `mapstructure:"radius" json:"radius"`
	Workers     int               `mapstructure:"workers" json:"workers"`
	Alignment   AlignmentConfig   `mapstructure:"alignment" json:"alignment"`
	HBond       HBondConfig       `mapstructure:"hbond" json:"hbond"`
	Hydrophobic HydrophobicConfig `mapstructure:"hydrophobic" json:"hydrophobic"`
	SaltBridge  SaltBridgeConfig  `mapstructure:"salt_bridge" json:"salt_bridge"`
	Server      ServerConfig      `mapstructure:"server" json:"server"`
	Log         LogConfig         `mapstructure:"log" json:"log"`
}

// AlignmentConfig holds the scores of the residue alignment.
type AlignmentConfig struct {
	Match     float64 `mapstructure:"match" json:"match"`
	Mismatch  float64 `mapstructure:"mismatch" json:"mismatch"`
	GapOpen   float64 `mapstructure:"gap_open" json:"gap_open"`
	GapExtend float64 `mapstructure:"gap_extend" json:"gap_extend"`
}

// HBondConfig holds the hydrogen bond thresholds in Å and degrees.
type HBondConfig struct {
	DonorAcceptorCutoff float64 `mapstructure:"donor_acceptor_cutoff" json:"donor_acceptor_cutoff"`
	AngleCutoff         float64 `mapstructure:"angle_cutoff" json:"angle_cutoff"`
	DonorHydrogenCutoff float64 `mapstructure:"donor_hydrogen_cutoff" json:"donor_hydrogen_cutoff"`
}

// HydrophobicConfig holds the carbon-carbon contact cutoff in Å.
type HydrophobicConfig struct {
	Cutoff float64 `mapstructure:"cutoff" json:"cutoff"`
}

// SaltBridgeConfig holds the salt bridge distance window in Å.
type SaltBridgeConfig struct {
	Min float64 `mapstructure:"min" json:"min"`
	Max float64 `mapstructure:"max" json:"max"`
}

// ServerConfig holds the settings of the HTTP service.
type ServerConfig struct {
	Addr string `mapstructure:"addr" json:"addr"`
}

// LogConfig selects the level and format of log output.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// DefaultConfig returns the configuration used when nothing is overridden:
// an 8 Å radius, one worker per CPU, the default alignment scoring, the
// default interaction thresholds and an HTTP address on the loopback
// interface.
func DefaultConfig() Config {
	p := interact.DefaultParams()
	sc := align.DefaultScoring
	return Config{
		Radius:  DefaultRadius,
		Workers: runtime.NumCPU(),
		Alignment: AlignmentConfig{
			Match:     sc.Match,
			Mismatch:  sc.Mismatch,
			GapOpen:   sc.GapOpen,
			GapExtend: sc.GapExtend,
		},
		HBond: HBondConfig{
			DonorAcceptorCutoff: p.DonorAcceptorCutoff,
			AngleCutoff:         p.AngleCutoff,
			DonorHydrogenCutoff: p.DonorHydrogenCutoff,
		},
		Hydrophobic: HydrophobicConfig{Cutoff: p.HydrophobicCutoff},
		SaltBridge:  SaltBridgeConfig{Min: p.SaltBridgeMin, Max: p.SaltBridgeMax},
		Server:      ServerConfig{Addr: "127.0.0.1:8080"},
		Log:         LogConfig{Level: "info", Format: "text"},
	}
}

// NewViper returns a viper instance with every configuration key set to
// its default and environment overrides enabled.
func NewViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("radius", def.Radius)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("alignment.match", def.Alignment.Match)
	v.SetDefault("alignment.mismatch", def.Alignment.Mismatch)
	v.SetDefault("alignment.gap_open", def.Alignment.GapOpen)
	v.SetDefault("alignment.gap_extend", def.Alignment.GapExtend)
	v.SetDefault("hbond.donor_acceptor_cutoff", def.HBond.DonorAcceptorCutoff)
	v.SetDefault("hbond.angle_cutoff", def.HBond.AngleCutoff)
	v.SetDefault("hbond.donor_hydrogen_cutoff", def.HBond.DonorHydrogenCutoff)
	v.SetDefault("hydrophobic.cutoff", def.Hydrophobic.Cutoff)
	v.SetDefault("salt_bridge.min", def.SaltBridge.Min)
	v.SetDefault("salt_bridge.max", def.SaltBridge.Max)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads the configuration file at path (if path is not empty)
// into v and returns the resulting configuration. Values come from, in
// order of precedence: flags bound to v, environment variables, the
// configuration file and defaults.
func LoadConfig(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("Could not read config file '%s': %w",
				path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("Could not decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate returns an error if any setting is out of range.
func (cfg Config) Validate() error {
	if err := CheckRadius(cfg.Radius); err != nil {
		return err
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("At least one worker is required, but %d were "+
			"configured.", cfg.Workers)
	}
	if cfg.Alignment.GapOpen > 0 || cfg.Alignment.GapExtend > 0 {
		return fmt.Errorf("Gap scores must not be positive (open %f, "+
			"extend %f).", cfg.Alignment.GapOpen, cfg.Alignment.GapExtend)
	}
	if err := cfg.Params().Validate(); err != nil {
		return err
	}
	if _, err := cfg.Log.level(); err != nil {
		return err
	}
	if f := cfg.Log.Format; f != "text" && f != "json" {
		return fmt.Errorf("Unknown log format '%s' (use 'text' or 'json').", f)
	}
	return nil
}

// Scoring returns the alignment scores of the configuration.
func (cfg Config) Scoring() align.Scoring {
	return align.Scoring{
		Match:     cfg.Alignment.Match,
		Mismatch:  cfg.Alignment.Mismatch,
		GapOpen:   cfg.Alignment.GapOpen,
		GapExtend: cfg.Alignment.GapExtend,
	}
}

// Params returns the interaction thresholds of the configuration.
func (cfg Config) Params() interact.Params {
	return interact.Params{
		DonorAcceptorCutoff: cfg.HBond.DonorAcceptorCutoff,
		AngleCutoff:         cfg.HBond.AngleCutoff,
		DonorHydrogenCutoff: cfg.HBond.DonorHydrogenCutoff,
		HydrophobicCutoff:   cfg.Hydrophobic.Cutoff,
		SaltBridgeMin:       cfg.SaltBridge.Min,
		SaltBridgeMax:       cfg.SaltBridge.Max,
	}
}

func (lc LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		return 0, fmt.Errorf("Unknown log level '%s': %w", lc.Level, err)
	}
	return level, nil
}

// Logger returns a structured logger writing to w with the configured
// level and format.
func (lc LogConfig) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := lc.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch lc.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("Unknown log format '%s' (use 'text' or 'json').",
		lc.Format)
}
