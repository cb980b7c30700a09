package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-quant/internal/analyzer"
	"github.com/rxtech-lab/argo-quant/internal/indicator"
	"github.com/rxtech-lab/argo-quant/internal/ledger/commission_fee"
	"github.com/rxtech-lab/argo-quant/internal/risk"
	"github.com/rxtech-lab/argo-quant/internal/signal"
	"github.com/rxtech-lab/argo-quant/internal/version"
	"github.com/rxtech-lab/argo-quant/pkg/errors"
)

type BacktestEngineV1Config struct {
	EngineVersion  string                     `yaml:"engine_version" json:"engine_version" jsonschema:"title=Engine Version,description=Engine version the configuration was written for. Major and minor must match the running engine"`
	InitialCapital float64                    `yaml:"initial_capital" json:"initial_capital" jsonschema:"title=Initial Capital,description=Starting cash of the backtest,exclusiveMinimum=0" validate:"gt=0"`
	MinHistoryBars int                        `yaml:"min_history_bars" json:"min_history_bars" jsonschema:"title=Min History Bars,description=Bars that are never traded at the start of a run,minimum=0" validate:"gte=0"`
	StartTime      optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start time for the backtest period"`
	EndTime        optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end time for the backtest period"`
	NotifyOnTrade  bool                       `yaml:"notify_on_trade" json:"notify_on_trade" jsonschema:"title=Notify On Trade,description=Send a notification for every entry and exit"`

	Indicators indicator.Config      `yaml:"indicators" json:"indicators" jsonschema:"title=Indicators"`
	Signal     signal.Config         `yaml:"signal" json:"signal" jsonschema:"title=Signal Rules"`
	Risk       risk.Config           `yaml:"risk" json:"risk" jsonschema:"title=Risk Management"`
	Analysis   analyzer.Config       `yaml:"analysis" json:"analysis" jsonschema:"title=Performance Analysis"`
	Commission commission_fee.Config `yaml:"commission" json:"commission" jsonschema:"title=Commission"`
}

// UnmarshalYAML implements custom unmarshaling for BacktestEngineV1Config.
// Omitted keys keep their DefaultConfig value. An entry or exit rule set that is
// present replaces the default rule set as a whole.
func (c *BacktestEngineV1Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type signalSection struct {
		Entry  *signal.RuleSet `yaml:"entry"`
		Exit   *signal.RuleSet `yaml:"exit"`
		Params signal.Params   `yaml:"params"`
	}

	type Config struct {
		EngineVersion  string                `yaml:"engine_version"`
		InitialCapital float64               `yaml:"initial_capital"`
		MinHistoryBars int                   `yaml:"min_history_bars"`
		StartTime      *time.Time            `yaml:"start_time"`
		EndTime        *time.Time            `yaml:"end_time"`
		NotifyOnTrade  bool                  `yaml:"notify_on_trade"`
		Indicators     indicator.Config      `yaml:"indicators"`
		Signal         signalSection         `yaml:"signal"`
		Risk           risk.Config           `yaml:"risk"`
		Analysis       analyzer.Config       `yaml:"analysis"`
		Commission     commission_fee.Config `yaml:"commission"`
	}

	defaults := DefaultConfig()

	config := Config{
		EngineVersion:  defaults.EngineVersion,
		InitialCapital: defaults.InitialCapital,
		MinHistoryBars: defaults.MinHistoryBars,
		NotifyOnTrade:  defaults.NotifyOnTrade,
		Indicators:     defaults.Indicators,
		Signal:         signalSection{Params: defaults.Signal.Params},
		Risk:           defaults.Risk,
		Analysis:       defaults.Analysis,
		Commission:     defaults.Commission,
	}

	if err := unmarshal(&config); err != nil {
		return err
	}

	c.EngineVersion = config.EngineVersion
	c.InitialCapital = config.InitialCapital
	c.MinHistoryBars = config.MinHistoryBars
	c.NotifyOnTrade = config.NotifyOnTrade
	c.Indicators = config.Indicators
	c.Risk = config.Risk
	c.Analysis = config.Analysis
	c.Commission = config.Commission

	c.Signal = defaults.Signal
	c.Signal.Params = config.Signal.Params

	if config.Signal.Entry != nil {
		c.Signal.Entry = *config.Signal.Entry
	}

	if config.Signal.Exit != nil {
		c.Signal.Exit = *config.Signal.Exit
	}

	c.StartTime = optional.None[time.Time]()
	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	c.EndTime = optional.None[time.Time]()
	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// Validate rejects a configuration before any bar is processed.
func (c BacktestEngineV1Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid backtest configuration", err)
	}

	if err := version.CheckVersionCompatibility(version.GetVersion(), c.EngineVersion); err != nil {
		return err
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && c.EndTime.Unwrap().Before(c.StartTime.Unwrap()) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "end_time is before start_time")
	}

	if err := c.Indicators.Validate(); err != nil {
		return err
	}

	if err := c.Signal.Validate(signal.DefaultConditionRegistry()); err != nil {
		return err
	}

	if err := c.Risk.Validate(); err != nil {
		return err
	}

	if _, err := commission_fee.NewCommissionFee(c.Commission); err != nil {
		return err
	}

	if _, err := analyzer.NewAnalyzer(c.Analysis); err != nil {
		return err
	}

	return nil
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			if strings.Contains(t.String(), "commission_fee.Broker") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: commission_fee.AllBrokers,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// DefaultConfig returns a complete working configuration.
func DefaultConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		EngineVersion:  version.GetVersion(),
		InitialCapital: 100000,
		MinHistoryBars: 0,
		StartTime:      optional.None[time.Time](),
		EndTime:        optional.None[time.Time](),
		Indicators:     indicator.DefaultConfig(),
		Signal:         signal.DefaultConfig(),
		Risk:           risk.DefaultConfig(),
		Analysis:       analyzer.DefaultConfig(),
		Commission:     commission_fee.DefaultConfig(),
	}
}

// TestConfig is a plain 3/5 moving average crossover with a 5% stop loss and a
// 6% trailing stop. Every other indicator is disabled.
func TestConfig() BacktestEngineV1Config {
	config := DefaultConfig()
	config.Indicators = indicator.Config{MAFast: 3, MASlow: 5}
	config.Signal = signal.CrossoverConfig()
	config.Risk = risk.Config{
		StopLossPct:      0.05,
		TrailingStopPct:  0.06,
		PositionFraction: 1,
		LotSize:          100,
	}

	return config
}

// EmptyConfig returns a BacktestEngineV1Config with default values
func EmptyConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		InitialCapital: 0,
		StartTime:      optional.None[time.Time](),
		EndTime:        optional.None[time.Time](),
		Commission:     commission_fee.DefaultConfig(),
	}
}
