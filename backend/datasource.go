package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gioui.org/x/explorer"
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

// Datasource loads forecasts and keeps every subscriber up to date with
// the most recent one. A forecast opened from a path is reloaded whenever
// the file changes on disk.
type Datasource struct {
	watcher *fsnotify.Watcher
	// watched is the cleaned absolute path currently followed, if any.
	watched RWBox[string]

	lock      sync.Mutex
	latest    Forecast
	loaded    bool
	subs      map[chan Forecast]struct{}
	closeOnce sync.Once
}

// NewDatasource starts watching for file changes until appCtx ends or
// Close is called.
func NewDatasource(appCtx context.Context) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	d := &Datasource{
		watcher: watcher,
		subs:    make(map[chan Forecast]struct{}),
	}
	go d.watch(appCtx)
	return d, nil
}

// Close stops watching files. Subscribers keep the last forecast.
func (d *Datasource) Close() error {
	var err error
	d.closeOnce.Do(func() {
		err = d.watcher.Close()
	})
	return err
}

// Latest returns the most recently published forecast.
func (d *Datasource) Latest() (Forecast, bool) {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.latest, d.loaded
}

// Forecasts streams forecasts as they are loaded, starting with the most
// recent one. A slow reader only ever sees the newest forecast. The
// channel is closed when ctx ends.
func (d *Datasource) Forecasts(ctx context.Context) <-chan Forecast {
	in := make(chan Forecast, 1)
	d.lock.Lock()
	if d.loaded {
		in <- d.latest
	}
	d.subs[in] = struct{}{}
	d.lock.Unlock()

	out := make(chan Forecast)
	go func() {
		defer close(out)
		defer func() {
			d.lock.Lock()
			defer d.lock.Unlock()
			delete(d.subs, in)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case f := <-in:
				select {
				case out <- f:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

func (d *Datasource) publish(f Forecast) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.latest, d.loaded = f, true
	for ch := range d.subs {
		// Replace any forecast the subscriber has not picked up yet.
		select {
		case <-ch:
		default:
		}
		ch <- f
	}
}

// Open loads the forecast at path and follows later changes to it. Any
// previously followed file is dropped.
func (d *Datasource) Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed resolving %q: %w", path, err)
	}
	abs = filepath.Clean(abs)
	var prev string
	d.watched.Write(func(w *string) {
		prev, *w = *w, abs
	})
	if prev != "" && filepath.Dir(prev) != filepath.Dir(abs) {
		if err := d.watcher.Remove(filepath.Dir(prev)); err != nil {
			log.WithError(err).WithField("path", prev).Debug("failed unwatching forecast directory")
		}
	}
	// Watching the directory catches editors and writers that replace the
	// file instead of writing it in place.
	if err := d.watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed watching %q: %w", abs, err)
	}
	d.reload(abs)
	return nil
}

// LoadFromReader publishes a forecast read once from r, which is closed.
// A followed file is no longer followed.
func (d *Datasource) LoadFromReader(name string, r io.ReadCloser) Forecast {
	d.watched.Write(func(w *string) { *w = "" })
	f, err := ParseForecast(r)
	err = errors.Join(err, r.Close())
	f.Path = name
	f.Err = err
	d.publish(f)
	return f
}

// LoadFromFile lets the user choose a forecast. Files the platform
// exposes by name are followed like Open; others are read once.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) error {
	file, err := expl.ChooseFile(".csv")
	if err != nil {
		return err
	}
	if named, ok := file.(interface{ Name() string }); ok {
		if _, err := os.Stat(named.Name()); err == nil {
			file.Close()
			return d.Open(named.Name())
		}
	}
	d.LoadFromReader("", file)
	return nil
}

func (d *Datasource) reload(path string) {
	logger := log.WithField("path", path)
	file, err := os.Open(path)
	if err != nil {
		logger.WithError(err).Warn("failed opening forecast")
		d.publish(Forecast{Path: path, Err: err})
		return
	}
	defer file.Close()
	f, err := ParseForecast(NewLineReader(file))
	f.Path = path
	f.Err = err
	if err != nil {
		logger.WithError(err).Warn("failed parsing forecast")
	} else {
		logger.WithField("samples", len(f.Values)).Debug("loaded forecast")
	}
	d.publish(f)
}

func (d *Datasource) watch(ctx context.Context) {
	defer d.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			var path string
			d.watched.Read(func(w *string) { path = *w })
			if path == "" || filepath.Clean(ev.Name) != path {
				continue
			}
			d.reload(path)
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("file watcher failed")
		}
	}
}
