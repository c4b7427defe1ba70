package logger

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/doeshing/agpt/internal/ports"
)

// ZapLogger adapts a zap.Logger to ports.Logger.
type ZapLogger struct {
	z *zap.Logger
}

// New builds a development logger at debug level on stderr when verbose is
// set, and a no-op logger otherwise.
func New(verbose bool) *ZapLogger {
	if !verbose {
		return NewNop()
	}
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	config.OutputPaths = []string{"stderr"}
	z, err := config.Build()
	if err != nil {
		return NewNop()
	}
	return &ZapLogger{z: z}
}

// NewNop returns a logger that discards everything.
func NewNop() *ZapLogger {
	return &ZapLogger{z: zap.NewNop()}
}

// Wrap adapts an existing zap logger.
func Wrap(z *zap.Logger) *ZapLogger {
	if z == nil {
		return NewNop()
	}
	return &ZapLogger{z: z}
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.z.Debug(msg, toFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.z.Info(msg, toFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.z.Warn(msg, toFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.z.Error(msg, append(toFields(fields), zap.Error(err))...)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.z.Sync()
}

// toFields converts a field map into zap fields in key order so output is stable.
func toFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

var _ ports.Logger = (*ZapLogger)(nil)
