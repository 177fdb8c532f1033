// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/buttonpad/watcher.go
// Summary: Hot reload of the pad definition file via fsnotify.

package buttonpad

import (
	"log"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a pad definition file and reloads it on change.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	mu       sync.RWMutex
	config   *PadConfig
	handlers []func(*PadConfig)
	done     chan struct{}
}

// NewWatcher loads the pad file and prepares to watch it for changes.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cfg, err := Load(path)
	if err != nil {
		w.Close()
		return nil, err
	}

	pw := &Watcher{
		path:    path,
		watcher: w,
		config:  cfg,
		done:    make(chan struct{}),
	}

	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}

	return pw, nil
}

// Start begins watching in the background.
func (w *Watcher) Start() {
	go w.watch()
}

// Stop ends the watch goroutine and releases the inotify handle.
func (w *Watcher) Stop() {
	close(w.done)
	w.watcher.Close()
}

// OnReload registers a handler called after a successful reload. The
// handler runs on the watcher goroutine; hop to the UI before touching
// widgets.
func (w *Watcher) OnReload(handler func(*PadConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Get returns the most recently loaded pad definition.
func (w *Watcher) Get() *PadConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

func (w *Watcher) watch() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Reload on write or create (some editors do atomic saves via rename)
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[BUTTONPAD] watcher error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		log.Printf("[BUTTONPAD] reload failed, keeping previous pad: %v", err)
		return
	}

	w.mu.Lock()
	w.config = cfg
	handlers := make([]func(*PadConfig), len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	log.Printf("[BUTTONPAD] pad reloaded from %s", w.path)

	for _, handler := range handlers {
		handler(cfg)
	}
}
