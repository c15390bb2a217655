package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hamidzr/displaymode/internal/cli"
	"github.com/hamidzr/displaymode/internal/logger"
	"github.com/hamidzr/displaymode/model"
	"github.com/hamidzr/displaymode/pkg/hotkey"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := logger.SetupLogger("", ""); err != nil {
		logrus.Error(err)
	}
	stopProfiling := startProfiling()

	code := model.NoError
	// global hotkeys need the main thread, so everything else runs inside
	hotkey.Run(func() {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cmd := cli.InitCLI()
		if err := cmd.ExecuteContext(ctx); err != nil {
			var cause error
			code, cause = model.ExitCodeFromError(err)
			if code != model.UserCanceled {
				logrus.Error(cause)
			}
		}
	})

	stopProfiling()
	os.Exit(int(code))
}
