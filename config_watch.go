package salinity

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is how long ConfigWatcher waits after the last file
// event before reloading.
const DefaultWatchDebounce = 250 * time.Millisecond

// ConfigWatcher reloads a config file when it changes on disk. Reloads are
// picked up with Poll, so a frame loop can apply them between frames without
// blocking.
type ConfigWatcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	reloads  chan Config
	stop     chan struct{}
	stopped  chan struct{}
}

// WatchConfig starts watching path. The containing directory is watched so
// editors that save by rename are seen.
func WatchConfig(path string, debounce time.Duration) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	cw := &ConfigWatcher{
		path:     path,
		debounce: debounce,
		watcher:  w,
		reloads:  make(chan Config, 1),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go cw.loop()
	return cw, nil
}

// Poll returns the most recent successfully loaded config, if one arrived
// since the last call.
func (cw *ConfigWatcher) Poll() (Config, bool) {
	select {
	case cfg := <-cw.reloads:
		return cfg, true
	default:
		return Config{}, false
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (cw *ConfigWatcher) Close() error {
	close(cw.stop)
	<-cw.stopped
	return nil
}

func (cw *ConfigWatcher) loop() {
	defer close(cw.stopped)
	defer cw.watcher.Close()

	base := filepath.Base(cw.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-cw.stop:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(cw.debounce)
			fire = timer.C

		case <-fire:
			timer, fire = nil, nil
			cfg, err := LoadConfig(cw.path)
			if err != nil {
				logger.Warn("config reload failed", "path", cw.path, "err", err)
				continue
			}
			logger.Info("config reloaded", "path", cw.path)
			cw.publish(cfg)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher", "err", err)
		}
	}
}

// publish replaces any reload the frame loop has not picked up yet.
func (cw *ConfigWatcher) publish(cfg Config) {
	select {
	case <-cw.reloads:
	default:
	}
	cw.reloads <- cfg
}
