package contract

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// InitLogger builds the global zap logger from a level and format.
// The console format uses the development encoder; anything else logs JSON.
func InitLogger(level, format string) error {
	var zapCfg zap.Config
	if format == LogFormatConsole {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(lvl)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	zap.L().Fatal(msg, zap.Error(err))
}

// LogWarn logs a warning with its cause.
func LogWarn(msg string, err error) {
	zap.L().Warn(msg, zap.Error(err))
}
