package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// StderrHook writes warnings and errors to Err and everything else to Out.
// It does the writing itself, so the logger it is attached to should have its
// output set to io.Discard.
type StderrHook struct {
	Out io.Writer
	Err io.Writer

	mu sync.Mutex
}

func (h *StderrHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *StderrHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Bytes()
	if err != nil {
		return err
	}
	w := h.Out
	if entry.Level <= logrus.WarnLevel {
		w = h.Err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = w.Write(line)
	return err
}

// SetupLogger configures the global logger. An empty level means info. When
// file is set, every entry is also appended to that file, rotated by size.
func SetupLogger(level, file string) error {
	lvl := logrus.InfoLevel
	if level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return errors.Wrapf(err, "invalid log level %q", level)
		}
		lvl = parsed
	}

	hook := &StderrHook{Out: os.Stdout, Err: os.Stderr}
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return errors.Wrapf(err, "failed to create log directory for %s", file)
		}
		rotating := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // MB
			MaxBackups: 2,
			MaxAge:     28, // days
			Compress:   true,
		}
		hook.Out = io.MultiWriter(os.Stdout, rotating)
		hook.Err = io.MultiWriter(os.Stderr, rotating)
	}

	logrus.SetOutput(io.Discard)
	logrus.SetLevel(lvl)
	logrus.StandardLogger().ReplaceHooks(logrus.LevelHooks{})
	logrus.AddHook(hook)
	return nil
}
