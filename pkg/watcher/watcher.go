// Package watcher reports changes to the directory data file so the chart
// can reload. It uses fsnotify and falls back to polling when notifications
// are unavailable.
package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is used when fsnotify cannot watch the file.
const DefaultPollInterval = 2 * time.Second

// Watcher signals on Changed after the watched file settles.
type Watcher struct {
	path     string
	debounce time.Duration
	poll     time.Duration
	log      logrus.FieldLogger

	changed   chan struct{}
	debouncer *Debouncer
	fs        *fsnotify.Watcher
	done      chan struct{}
	wg        sync.WaitGroup
	once      sync.Once
	polling   bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets the quiet period before a change is reported.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithPollInterval sets the fallback polling interval.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.poll = d }
}

// WithLogger routes watcher diagnostics to log.
func WithLogger(log logrus.FieldLogger) Option {
	return func(w *Watcher) { w.log = log }
}

// NewWatcher prepares a watcher for path. Call Start to begin watching.
func NewWatcher(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	w := &Watcher{
		path:    abs,
		poll:    DefaultPollInterval,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.log == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		l.SetLevel(logrus.WarnLevel)
		w.log = l
	}
	w.debouncer = NewDebouncer(w.debounce, w.notify)
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Changed delivers one value per settled burst of changes. Bursts that
// arrive before the previous value is received are merged.
func (w *Watcher) Changed() <-chan struct{} { return w.changed }

// Polling reports whether the watcher fell back to polling.
func (w *Watcher) Polling() bool { return w.polling }

// Start begins watching. The parent directory is watched so editors that
// replace the file on save are still seen.
func (w *Watcher) Start() error {
	if _, err := os.Stat(w.path); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err == nil {
		err = fw.Add(filepath.Dir(w.path))
		if err != nil {
			fw.Close()
		}
	}
	if err != nil {
		w.log.WithError(err).WithField("path", w.path).Warn("file notifications unavailable, polling")
		w.polling = true
		w.wg.Add(1)
		go w.pollLoop()
		return nil
	}
	w.fs = fw
	w.wg.Add(1)
	go w.eventLoop()
	return nil
}

// Stop ends watching and waits for the background goroutine.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.done)
		w.debouncer.Stop()
		if w.fs != nil {
			w.fs.Close()
		}
		w.wg.Wait()
	})
}

func (w *Watcher) notify() {
	select {
	case w.changed <- struct{}{}:
	default:
	}
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				w.debouncer.Trigger()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !errors.Is(err, fsnotify.ErrEventOverflow) {
				w.log.WithError(err).Warn("watch error")
			}
			w.debouncer.Trigger()
		}
	}
}

type stamp struct {
	mod  time.Time
	size int64
	ok   bool
}

func (w *Watcher) stat() stamp {
	info, err := os.Stat(w.path)
	if err != nil {
		return stamp{}
	}
	return stamp{mod: info.ModTime(), size: info.Size(), ok: true}
}

func (w *Watcher) pollLoop() {
	defer w.wg.Done()
	last := w.stat()
	t := time.NewTicker(w.poll)
	defer t.Stop()
	for {
		select {
		case <-w.done:
			return
		case <-t.C:
			if cur := w.stat(); cur != last {
				last = cur
				w.debouncer.Trigger()
			}
		}
	}
}
