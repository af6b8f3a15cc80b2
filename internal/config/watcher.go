// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// CONFIG FILE WATCHER
// =============================================================================

// Reload carries the result of re-reading the configuration after the
// config file changed on disk.
type Reload struct {
	Config *Config
	Err    error
}

// Watcher reloads the configuration when config.toml or config.json in
// the config directory changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	load     func() (*Config, error)
	reloads  chan Reload
	ctx      context.Context
	cancel   context.CancelFunc
	once     sync.Once
}

// NewWatcher watches dir (normally ConfigDir()). The directory is watched
// rather than the files so editors that replace files on save are seen.
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		watcher:  fw,
		debounce: debounce,
		load:     Load,
		reloads:  make(chan Reload, 1),
		ctx:      ctx,
		cancel:   cancel,
	}
	go w.run()
	return w, nil
}

// Reloads delivers one value per settled burst of config file changes.
// The channel is closed when the watcher stops.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		w.cancel()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.reloads)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isConfigFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

		case <-fire:
			fire = nil
			cfg, err := w.load()
			select {
			case w.reloads <- Reload{Config: cfg, Err: err}:
			case <-w.ctx.Done():
				return
			}
		}
	}
}

func isConfigFile(path string) bool {
	switch filepath.Base(path) {
	case "config.toml", "config.json":
		return true
	}
	return false
}
