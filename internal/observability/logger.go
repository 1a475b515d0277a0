package observability

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"finitefield.org/hanko-seo/internal/seo"
)

const defaultLogLevel = "info"

type contextKey string

const loggerContextKey contextKey = "finitefield.org/hanko-seo/internal/observability/logger"

var noopLogger = zap.NewNop()

// LoggerOption adjusts the zap configuration before the logger is built.
type LoggerOption func(*zap.Config)

// WithOutputPaths replaces the default stdout sink.
func WithOutputPaths(paths ...string) LoggerOption {
	return func(cfg *zap.Config) {
		if len(paths) > 0 {
			cfg.OutputPaths = paths
		}
	}
}

// WithConsoleEncoding switches to the human-readable console encoder.
func WithConsoleEncoding() LoggerOption {
	return func(cfg *zap.Config) {
		cfg.Encoding = "console"
	}
}

// NewLogger constructs a zap logger emitting structured JSON at level. An
// empty or unknown level falls back to info.
func NewLogger(level string, opts ...LoggerOption) (*zap.Logger, error) {
	atomic := zap.NewAtomicLevel()
	if err := atomic.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil || strings.TrimSpace(level) == "" {
		_ = atomic.UnmarshalText([]byte(defaultLogLevel))
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		NameKey:    "logger",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		EncodeDuration: zapcore.StringDurationEncoder,
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		StacktraceKey:  "stacktrace",
	}

	cfg := zap.Config{
		Level:             atomic,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.Build()
}

// Warner adapts logger to the resolver's warning sink under the "seo" name.
func Warner(logger *zap.Logger) seo.Warner {
	if logger == nil {
		logger = noopLogger
	}
	return seo.LogWarner(logger.Named("seo"))
}

// WithLogger stores the logger in context for downstream handlers.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = noopLogger
	}
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext retrieves the logger from context, defaulting to a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return noopLogger
	}
	if logger, ok := ctx.Value(loggerContextKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return noopLogger
}
