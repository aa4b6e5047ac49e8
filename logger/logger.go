package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *zap.SugaredLogger

// Config controls logger output. A zero value logs to the console only at
// info level.
type Config struct {
	File       string // log file path; empty disables file output
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
	Level      zapcore.Level
}

func init() {
	// console-only defaults until the config file has been read
	Init(Config{})
}

// Init initializes the logger after the config file has been read
func Init(cfg Config) {
	var core zapcore.Core

	consoleEncoderConfig := zapcore.EncoderConfig{
		TimeKey:      "time",
		LevelKey:     "level",
		CallerKey:    "caller",
		MessageKey:   "message",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.CapitalColorLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncoderConfig)

	consoleWriter := zapcore.AddSync(os.Stdout)

	if cfg.File != "" {
		lumberjackLogger := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}

		fileEncoderConfig := zapcore.EncoderConfig{
			TimeKey:      "time",
			LevelKey:     "level",
			CallerKey:    "caller",
			MessageKey:   "message",
			EncodeTime:   zapcore.ISO8601TimeEncoder,
			EncodeLevel:  zapcore.CapitalLevelEncoder,
			EncodeCaller: zapcore.ShortCallerEncoder,
		}

		fileEncoder := zapcore.NewConsoleEncoder(fileEncoderConfig)

		fileWriter := zapcore.AddSync(lumberjackLogger)

		// create a new zapcore using both outputs
		core = zapcore.NewTee(
			zapcore.NewCore(consoleEncoder, consoleWriter, cfg.Level),
			zapcore.NewCore(fileEncoder, fileWriter, cfg.Level),
		)
	} else {
		core = zapcore.NewCore(consoleEncoder, consoleWriter, cfg.Level)
	}

	// Create a Sugared Logger from the core
	if cfg.Level == zapcore.DebugLevel {
		// add caller if debug level
		log = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
	} else {
		log = zap.New(core).Sugar()
	}
}

func Debugf(template string, args ...any) {
	log.Debugf(template, args...)
}

func Infof(template string, args ...any) {
	log.Infof(template, args...)
}

func Infoln(args ...any) {
	log.Infoln(args...)
}

func Warnf(template string, args ...any) {
	log.Warnf(template, args...)
}

func Warnln(args ...any) {
	log.Warnln(args...)
}

func Errorf(template string, args ...any) {
	log.Errorf(template, args...)
}
