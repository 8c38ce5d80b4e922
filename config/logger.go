package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger builds the global zap logger. Console output always; JSON file
// output rotated by lumberjack when LOG_FILE is set.
func InitLogger(cfg *Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zapConfig.Level = zap.NewAtomicLevelAt(level)
	}

	var logger *zap.Logger
	if cfg.LogFile != "" {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     30,
			Compress:   true,
		}
		consoleEncoder := zapcore.NewConsoleEncoder(zapConfig.EncoderConfig)
		if cfg.IsProduction() {
			consoleEncoder = zapcore.NewJSONEncoder(zapConfig.EncoderConfig)
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapConfig.Level),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			return nil, err
		}
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
