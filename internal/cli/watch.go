package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/structviz/pkg/errors"
)

// defaultDebounce is how long a file must stay unchanged before a re-render.
const defaultDebounce = 200 * time.Millisecond

// watchFile calls onChange each time path is written, after writes have
// settled for debounce. The parent directory is watched so that editors
// which save by renaming a temp file over path are picked up too.
//
// Failures from onChange are logged and watching continues. watchFile
// returns the context's error once ctx is done.
func (c *CLI) watchFile(ctx context.Context, path string, debounce time.Duration, onChange func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create file watcher")
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "watch %s", path)
	}
	c.Logger.Infof("Watching %s for changes (ctrl+c to stop)", path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return ctx.Err()
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return ctx.Err()
			}
			c.Logger.Warnf("File watcher error: %v", err)

		case <-fire:
			fire = nil
			c.Logger.Infof("Change detected: %s", path)
			if err := onChange(); err != nil {
				c.Logger.Errorf("Re-render failed: %s", errors.UserMessage(err))
			}
		}
	}
}
