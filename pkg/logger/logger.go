package logger

import (
	"os"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures the process logger
type Options struct {
	Level      string
	Filename   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Stdout     bool
}

// ParseLevel maps a config string onto a zap level, defaulting to info
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a JSON zap logger. With a Filename set, output is rotated by
// lumberjack and optionally mirrored to stdout.
func New(opts Options) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var writeSyncer zapcore.WriteSyncer
	if opts.Filename != "" {
		rotating := &lumberjack.Logger{
			Filename:   opts.Filename,
			MaxSize:    defaultInt(opts.MaxSize, 100),
			MaxBackups: defaultInt(opts.MaxBackups, 5),
			MaxAge:     defaultInt(opts.MaxAge, 30),
			Compress:   true,
		}
		if opts.Stdout {
			writeSyncer = zapcore.NewMultiWriteSyncer(zapcore.AddSync(rotating), zapcore.AddSync(os.Stdout))
		} else {
			writeSyncer = zapcore.AddSync(rotating)
		}
	} else {
		writeSyncer = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writeSyncer, ParseLevel(opts.Level))
	return zap.New(core, zap.AddCaller())
}

func defaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
