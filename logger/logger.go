package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Log is the process-wide structured logger. It is a no-op logger until Init is called,
// so packages and tests can log without setup.
var Log = zap.NewNop().Sugar()

// Init builds the logger for the given environment and installs it as Log.
func Init(environment string) error {
	var cfg zap.Config
	switch strings.ToLower(environment) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = l.Sugar()
	return nil
}

// Sync flushes buffered entries
func Sync() {
	_ = Log.Sync()
}

// With returns a child logger carrying the given key/value pairs
func With(keysAndValues ...interface{}) *zap.SugaredLogger {
	return Log.With(keysAndValues...)
}
