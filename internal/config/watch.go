package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of write events editors produce when
// saving a file.
const watchDebounce = 200 * time.Millisecond

// Watcher reloads the config file when it changes on disk and hands the
// fresh config to a callback. Reloads that fail validation are reported but
// never replace the running config.
type Watcher struct {
	dataDir  string
	onChange func(*Config)
	onError  func(error)
	fsw      *fsnotify.Watcher
	done     chan struct{}
}

// Watch starts watching the config file in dataDir. onChange runs on the
// watcher goroutine; callers hand the result to their own scheduler (the app
// applies it via gui.Update). onError may be nil.
func Watch(dataDir string, onChange func(*Config), onError func(error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// watch the directory, not the file: editors replace files by rename,
	// which drops a file-level watch
	if err := fsw.Add(dataDir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		dataDir:  dataDir,
		onChange: onChange,
		onError:  onError,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	target := filepath.Join(w.dataDir, "config.yaml")
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != target {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				timer.Reset(watchDebounce)
			}
		case <-timerC:
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *Watcher) reload() {
	defaults := Default()
	defaults.DataDir = w.dataDir
	cfg, err := LoadFrom(defaults)
	if err != nil {
		if w.onError != nil {
			w.onError(err)
		}
		return
	}
	w.onChange(cfg)
}
