// Package config loads the YAML configuration that drives the indicator engine
// and signal thresholds.
package config

import (
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-analyst/internal/indicator"
	"github.com/rxtech-lab/argo-analyst/internal/signal"
	"github.com/rxtech-lab/argo-analyst/internal/version"
	"github.com/rxtech-lab/argo-analyst/pkg/errors"
	"github.com/rxtech-lab/argo-analyst/pkg/utils"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the root of the configuration file.
type Config struct {
	Version    string           `yaml:"version" json:"version" jsonschema:"title=Version,description=Version of argo-analyst the file was written for,required" validate:"required"`
	Log        LogConfig        `yaml:"log" json:"log" jsonschema:"title=Logging"`
	Indicators IndicatorsConfig `yaml:"indicators" json:"indicators" jsonschema:"title=Indicators"`
	Signals    signal.Config    `yaml:"signals" json:"signals" jsonschema:"title=Signals"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level" json:"level" jsonschema:"title=Level,enum=debug,enum=info,enum=warn,enum=error,default=info" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development" json:"development" jsonschema:"title=Development,description=Use the console encoder"`
}

// IndicatorsConfig holds the parameters of every indicator.
type IndicatorsConfig struct {
	MA        MAConfig        `yaml:"ma" json:"ma"`
	MACD      MACDConfig      `yaml:"macd" json:"macd"`
	RSI       RSIConfig       `yaml:"rsi" json:"rsi"`
	Bollinger BollingerConfig `yaml:"bollinger" json:"bollinger"`
	KDJ       KDJConfig       `yaml:"kdj" json:"kdj"`
	CCI       PeriodConfig    `yaml:"cci" json:"cci"`
	DMI       PeriodConfig    `yaml:"dmi" json:"dmi"`
	VR        PeriodConfig    `yaml:"vr" json:"vr"`
	WilliamsR PeriodConfig    `yaml:"williams_r" json:"williams_r"`
}

// MAConfig lists the moving average windows, one MA column per period.
type MAConfig struct {
	Periods []int `yaml:"periods" json:"periods" jsonschema:"title=Periods" validate:"required,min=1,unique,dive,gt=0"`
}

// MACDConfig holds the fast, slow and signal EMA spans.
type MACDConfig struct {
	Fast   int `yaml:"fast" json:"fast" jsonschema:"default=12" validate:"gt=0,ltfield=Slow"`
	Slow   int `yaml:"slow" json:"slow" jsonschema:"default=26" validate:"gt=0"`
	Signal int `yaml:"signal" json:"signal" jsonschema:"default=9" validate:"gt=0"`
}

// RSIConfig lists the RSI windows, one RSI column per period.
type RSIConfig struct {
	Periods []int `yaml:"periods" json:"periods" jsonschema:"title=Periods" validate:"required,min=1,unique,dive,gte=2"`
}

// BollingerConfig is the band window and its standard deviation multiplier.
type BollingerConfig struct {
	Period     int     `yaml:"period" json:"period" jsonschema:"default=20" validate:"gt=0"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier" jsonschema:"default=2" validate:"gt=0"`
}

// KDJConfig holds the RSV window and the K and D smoothing periods.
type KDJConfig struct {
	RSVPeriod int `yaml:"rsv_period" json:"rsv_period" jsonschema:"default=9" validate:"gt=0"`
	KPeriod   int `yaml:"k_period" json:"k_period" jsonschema:"default=3" validate:"gt=0"`
	DPeriod   int `yaml:"d_period" json:"d_period" jsonschema:"default=3" validate:"gt=0"`
}

// PeriodConfig is the configuration of a single-window indicator.
type PeriodConfig struct {
	Period int `yaml:"period" json:"period" validate:"gte=2"`
}

// Default returns the documented configuration.
func Default() Config {
	return Config{
		Version: version.GetVersion(),
		Log:     LogConfig{Level: "info"},
		Indicators: IndicatorsConfig{
			MA:        MAConfig{Periods: []int{5, 10, 20, 60}},
			MACD:      MACDConfig{Fast: 12, Slow: 26, Signal: 9},
			RSI:       RSIConfig{Periods: []int{6, 12, 24}},
			Bollinger: BollingerConfig{Period: 20, Multiplier: 2},
			KDJ:       KDJConfig{RSVPeriod: 9, KPeriod: 3, DPeriod: 3},
			CCI:       PeriodConfig{Period: 14},
			DMI:       PeriodConfig{Period: 14},
			VR:        PeriodConfig{Period: 26},
			WilliamsR: PeriodConfig{Period: 14},
		},
		Signals: signal.DefaultConfig(),
	}
}

// Load reads a YAML config file. Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeConfigReadFailed, err, "failed to read config %s", path)
	}

	return Parse(data)
}

// Parse decodes and validates a YAML config document over the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfigParseFailed, "failed to parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks field constraints, version compatibility and that the RSI
// signal reads a computed RSI period.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if err := c.Signals.Validate(); err != nil {
		return err
	}

	if err := version.CheckVersionCompatibility(version.GetVersion(), c.Version); err != nil {
		return err
	}

	if !slices.Contains(c.Indicators.RSI.Periods, c.Signals.RSIPeriod) {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"signals.rsi_period %d is not one of the computed rsi periods %v", c.Signals.RSIPeriod, c.Indicators.RSI.Periods)
	}

	return nil
}

// Registry builds an indicator registry with every indicator configured.
func (c Config) Registry() (indicator.IndicatorRegistry, error) {
	ic := c.Indicators

	steps := []struct {
		ind    indicator.Indicator
		params []any
	}{
		{indicator.NewMA(), ints(ic.MA.Periods)},
		{indicator.NewMACD(), []any{ic.MACD.Fast, ic.MACD.Slow, ic.MACD.Signal}},
		{indicator.NewRSI(), ints(ic.RSI.Periods)},
		{indicator.NewBollingerBands(), []any{ic.Bollinger.Period, ic.Bollinger.Multiplier}},
		{indicator.NewKDJ(), []any{ic.KDJ.RSVPeriod, ic.KDJ.KPeriod, ic.KDJ.DPeriod}},
		{indicator.NewCCI(), []any{ic.CCI.Period}},
		{indicator.NewDMI(), []any{ic.DMI.Period}},
		{indicator.NewOBV(), nil},
		{indicator.NewVR(), []any{ic.VR.Period}},
		{indicator.NewWilliamsR(), []any{ic.WilliamsR.Period}},
	}

	registry := indicator.NewIndicatorRegistry()

	for _, step := range steps {
		if err := step.ind.Config(step.params...); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid %s parameters", step.ind.Name())
		}

		if err := registry.RegisterIndicator(step.ind); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Schema returns the JSON schema of the config file.
func Schema() (string, error) {
	return utils.GetSchemaFromConfig(Config{}, utils.Inline())
}

func ints(values []int) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}
