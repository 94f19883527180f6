package proxy

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Named log targets, one per pipeline stage. These double as zap logger
// names and as the left-hand side of Filter entries.
const (
	TargetServe    = "app::serve"
	TargetAccept   = "app::accept"
	TargetValidate = "app::validate"
	TargetSkip     = "app::skip"
	TargetShutdown = "app::shutdown"
)

// LogConfig is the on-disk shape of a log configuration file: a default
// level plus an optional per-target filter expression.
type LogConfig struct {
	Level  string `json:"level"`
	Filter string `json:"filter,omitempty"`
}

// LoadLogConfig reads and parses a LogConfig from a JSON file.
func LoadLogConfig(path string) (LogConfig, error) {
	var cfg LogConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading log config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing log config %s: %w", path, err)
	}
	return cfg, nil
}

// Logger bundles the named sub-loggers the proxy loop writes events to.
type Logger struct {
	Serve    *zap.Logger
	Accept   *zap.Logger
	Validate *zap.Logger
	Skip     *zap.Logger
	Shutdown *zap.Logger
}

// NewLogger builds a Logger from cfg. An empty cfg.Level defaults to "info".
func NewLogger(cfg LogConfig) (*Logger, error) {
	var defaultLevel zapcore.Level
	levelStr := cfg.Level
	if levelStr == "" {
		levelStr = "info"
	}
	if err := defaultLevel.UnmarshalText([]byte(levelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	filter, err := ParseFilter(cfg.Filter)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoder := zapcore.NewJSONEncoder(encoderCfg)
	inner := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zapcore.DebugLevel)
	core := &filteringCore{core: inner, filter: filter, defaultLevel: defaultLevel}
	base := zap.New(core)

	return &Logger{
		Serve:    base.Named(TargetServe),
		Accept:   base.Named(TargetAccept),
		Validate: base.Named(TargetValidate),
		Skip:     base.Named(TargetSkip),
		Shutdown: base.Named(TargetShutdown),
	}, nil
}

// filteringCore wraps a zapcore.Core and enables entries per logger name
// according to filter, falling back to defaultLevel for unlisted names.
//
// Enabled is checked by zap before an Entry (and so a LoggerName) exists,
// so it must admit anything that the most permissive configured level
// would allow; the precise per-name decision happens in Check, once the
// Entry is available.
type filteringCore struct {
	core         zapcore.Core
	filter       Filter
	defaultLevel zapcore.Level
}

func (c *filteringCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.filter.minLevel(c.defaultLevel)
}

func (c *filteringCore) With(fields []zapcore.Field) zapcore.Core {
	return &filteringCore{core: c.core.With(fields), filter: c.filter, defaultLevel: c.defaultLevel}
}

func (c *filteringCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if ent.Level < c.filter.levelFor(ent.LoggerName, c.defaultLevel) {
		return ce
	}
	return c.core.Check(ent, ce)
}

func (c *filteringCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.core.Write(ent, fields)
}

func (c *filteringCore) Sync() error {
	return c.core.Sync()
}
