// Package logflags configures the zap logger shared by the vcl commands.
package logflags

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Flags struct {
	Level   zapcore.Level
	Path    string
	Mode    string
	MaxSize int
}

func (l *Flags) SetFlags(fs *pflag.FlagSet) {
	l.Level = zapcore.WarnLevel
	fs.Var((*level)(&l.Level), "log.level", "logging level [debug,info,warn,error]")
	fs.StringVar(&l.Path, "log.path", "stderr", "path to send logs (values: stderr, stdout, path in file system)")
	fs.StringVar(&l.Mode, "log.mode", "append", "mode for writing to a log file [append,truncate,rotate]")
	fs.IntVar(&l.MaxSize, "log.maxsize", 100, "size in megabytes at which a rotated log file is rolled")
}

// Open builds a logger writing JSON lines to the configured destination.
func (l *Flags) Open() (*zap.Logger, error) {
	w, err := l.writer()
	if err != nil {
		return nil, err
	}
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), w, l.Level)
	return zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr))), nil
}

func (l *Flags) writer() (zapcore.WriteSyncer, error) {
	switch l.Path {
	case "", "stderr":
		return zapcore.Lock(os.Stderr), nil
	case "stdout":
		return zapcore.Lock(os.Stdout), nil
	}
	switch l.Mode {
	case "append", "":
		f, err := os.OpenFile(l.Path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		return zapcore.Lock(f), nil
	case "truncate":
		f, err := os.OpenFile(l.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return nil, err
		}
		return zapcore.Lock(f), nil
	case "rotate":
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   l.Path,
			MaxSize:    l.MaxSize,
			MaxBackups: 3,
		}), nil
	}
	return nil, fmt.Errorf("unknown log mode %q", l.Mode)
}

type level zapcore.Level

func (l *level) Set(s string) error {
	return (*zapcore.Level)(l).UnmarshalText([]byte(s))
}

func (l *level) String() string {
	return zapcore.Level(*l).String()
}

func (l *level) Type() string {
	return "level"
}
