package cli

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hamidzr/displaymode/core"
	"github.com/hamidzr/displaymode/internal/config"
	"github.com/hamidzr/displaymode/model"
	"github.com/hamidzr/displaymode/pkg/hotkey"
	"github.com/hamidzr/displaymode/pkg/shortcut"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Bind shortcuts and watch displays until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			return a.runDaemon(cmd.Context(), hotkey.NewRegistrar())
		},
	}
}

// registrar is the part of hotkey.Registrar the daemon uses.
type registrar interface {
	Register(chord model.Chord, fn func()) error
	Len() int
	Close()
}

func (a *app) runDaemon(ctx context.Context, hotkeys registrar) error {
	if a.pidFile != "" {
		if err := createPidFile(a.pidFile); err != nil {
			return err
		}
		defer removePidFile(a.pidFile)
	}

	// the watcher needs the file to exist
	if _, err := os.Stat(a.store.Path()); os.IsNotExist(err) {
		settings, err := a.store.Load()
		if err != nil {
			return err
		}
		if err := a.store.Save(settings); err != nil {
			return err
		}
	}

	reload := make(chan struct{}, 1)
	err := config.Watch(a.store.Path(), func(event fsnotify.Event) {
		logrus.WithField("event", event.String()).Debug("settings file changed")
		select {
		case reload <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return err
	}

	dispatcher := core.NewDispatcher(a.session, core.DefaultFireInterval)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.serveShortcuts(ctx, hotkeys, dispatcher, reload)
	})
	g.Go(func() error {
		return a.pollDisplays(ctx)
	})
	logrus.WithField("settings", a.store.Path()).Info("daemon started")

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		logrus.Info("daemon stopped")
		return nil
	}
	return err
}

// serveShortcuts keeps the hotkeys in line with the settings file until ctx
// is done.
func (a *app) serveShortcuts(ctx context.Context, hotkeys registrar, dispatcher *core.Dispatcher, reload <-chan struct{}) error {
	defer hotkeys.Close()
	for {
		a.bindShortcuts(ctx, hotkeys, dispatcher)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-reload:
			hotkeys.Close()
		}
	}
}

func (a *app) bindShortcuts(ctx context.Context, hotkeys registrar, dispatcher *core.Dispatcher) {
	settings, err := a.store.Load()
	if err != nil {
		logrus.WithError(err).Error("failed to load settings, no shortcuts bound")
		return
	}
	for _, sc := range settings.Shortcuts {
		log := logrus.WithField("shortcut", sc.Keys)
		chord, err := shortcut.Parse(sc.Keys)
		if err != nil {
			log.WithError(err).Warn("skipping shortcut")
			continue
		}
		err = hotkeys.Register(chord, func() {
			if _, err := dispatcher.Fire(ctx, sc); err != nil {
				log.WithError(err).Error("shortcut failed")
			}
		})
		if errors.Is(err, model.ErrUnsupportedPlatform) {
			logrus.Warn("global shortcuts are not supported on this platform")
			return
		}
		if err != nil {
			log.WithError(err).Warn("failed to bind shortcut")
		}
	}
	logrus.Infof("bound %d of %d shortcuts", hotkeys.Len(), len(settings.Shortcuts))
}

// pollDisplays re-enumerates every poll interval and logs what changed.
func (a *app) pollDisplays(ctx context.Context) error {
	prev, err := a.session.Refresh(ctx)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		next, err := a.session.Refresh(ctx)
		if err != nil {
			logrus.WithError(err).Warn("failed to refresh displays")
			continue
		}
		if core.Changed(prev, next) {
			logChanges(prev, next)
		}
		prev = next
	}
}

func logChanges(prev, next core.Snapshot) {
	for _, d := range next.Displays {
		before, err := prev.Display(d.ID)
		log := logrus.WithFields(logrus.Fields{"display": d.ID, "name": d.Name})
		switch {
		case err != nil:
			log.Info("display connected")
		case d.Current != nil && (before.Current == nil || !before.Current.SameShape(*d.Current)):
			log.WithField("mode", d.Current.String()).Info("display mode changed")
		}
	}
	for _, d := range prev.Displays {
		if _, err := next.Display(d.ID); err != nil {
			logrus.WithFields(logrus.Fields{"display": d.ID, "name": d.Name}).Info("display disconnected")
		}
	}
}
