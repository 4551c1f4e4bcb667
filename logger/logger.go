package logger

import (
	"encoding/json"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mager/tracklens/config"
)

// ProvideLogger provides a zap logger at the configured level
func ProvideLogger(cfg config.Config) *zap.SugaredLogger {
	rawJSON := []byte(`{
	  "level": "info",
	  "encoding": "json",
	  "outputPaths": ["stdout"],
	  "errorOutputPaths": ["stderr"],
	  "encoderConfig": {
	    "messageKey": "message",
	    "levelKey": "level",
	    "timeKey": "ts",
	    "timeEncoder": "iso8601",
	    "levelEncoder": "lowercase"
	  }
	}`)

	var zc zap.Config
	if err := json.Unmarshal(rawJSON, &zc); err != nil {
		panic(err)
	}
	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			panic(err)
		}
		zc.Level = level
	}
	logger := zap.Must(zc.Build())

	return logger.Sugar()
}

// NewTestLogger returns a new logger and observed logs for testing.
func NewTestLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zap.DebugLevel)
	return zap.New(core).Sugar(), recorded
}

var Options = ProvideLogger
