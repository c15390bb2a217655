package logger

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStderrHookRoutesByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.DebugLevel)
	log.AddHook(&StderrHook{Out: &out, Err: &errOut})

	log.Info("hello")
	log.Warn("careful")
	log.Debug("details")

	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "details")
	assert.NotContains(t, out.String(), "careful")
	assert.Contains(t, errOut.String(), "careful")
}

func TestStderrHookConcurrentLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.AddHook(&StderrHook{Out: &out, Err: &errOut})

	const workers, lines = 8, 500
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < lines; j++ {
				log.Info("poll")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < lines; j++ {
				log.Warn("hotkey")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*lines, strings.Count(out.String(), "msg=poll"))
	assert.NotContains(t, out.String(), "msg=hotkey")
	assert.Equal(t, workers*lines, strings.Count(errOut.String(), "msg=hotkey"))
	assert.NotContains(t, errOut.String(), "msg=poll")
}

func TestSetupLogger(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
		logrus.StandardLogger().ReplaceHooks(logrus.LevelHooks{})
	})

	require.NoError(t, SetupLogger("", ""))
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	file := filepath.Join(t.TempDir(), "logs", "displaymode.log")
	require.NoError(t, SetupLogger("debug", file))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	logrus.Debug("written to file")
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")

	assert.Error(t, SetupLogger("loud", ""))
}
