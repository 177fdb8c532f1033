// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: command/manager.go
// Summary: Registry that maps command IDs to handlers and fans out invocations.

package command

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
)

// ID identifies a registered command. Zero is reserved and never
// registers.
type ID int

// Info describes a registered command. ShortcutLabel is a display hint
// like "Ctrl+S" and is not interpreted by the manager.
type Info struct {
	ID            ID
	Name          string
	Description   string
	ShortcutLabel string
}

// Handler runs when its command is invoked.
type Handler func(Info) error

// Listener receives manager notifications. CommandInvoked fires after a
// successful invoke, CommandListChanged after register, unregister and
// close.
type Listener interface {
	CommandInvoked(Info)
	CommandListChanged()
}

var (
	ErrClosed         = errors.New("command manager closed")
	ErrUnknownCommand = errors.New("unknown command")
)

type entry struct {
	info    Info
	handler Handler
}

// Manager is a threadsafe command registry. Handlers and listeners run
// outside the manager's locks, so they may call back into it.
type Manager struct {
	mu        sync.RWMutex
	commands  map[ID]entry
	listeners []Listener
	closed    bool
}

// NewManager creates an empty command registry.
func NewManager() *Manager {
	return &Manager{
		commands: make(map[ID]entry),
	}
}

// Register binds a handler to info.ID, replacing any previous binding.
// A zero ID or nil handler is logged and ignored.
func (m *Manager) Register(info Info, h Handler) {
	if info.ID == 0 || h == nil {
		log.Printf("command: ignoring bad registration (id=%d, handler=%v)", info.ID, h != nil)
		return
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		log.Printf("command: register %d on closed manager", info.ID)
		return
	}
	m.commands[info.ID] = entry{info: info, handler: h}
	ls := m.snapshotLocked()
	m.mu.Unlock()

	for _, l := range ls {
		l.CommandListChanged()
	}
}

// Unregister removes a command. Unknown IDs are a no-op.
func (m *Manager) Unregister(id ID) {
	m.mu.Lock()
	if _, ok := m.commands[id]; !ok {
		m.mu.Unlock()
		return
	}
	delete(m.commands, id)
	ls := m.snapshotLocked()
	m.mu.Unlock()

	for _, l := range ls {
		l.CommandListChanged()
	}
}

// Invoke runs the handler bound to id and notifies listeners. The
// handler runs with no manager lock held.
func (m *Manager) Invoke(id ID) error {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrClosed
	}
	e, ok := m.commands[id]
	ls := m.snapshotLocked()
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("invoke %d: %w", id, ErrUnknownCommand)
	}
	if err := e.handler(e.info); err != nil {
		return fmt.Errorf("command %d (%s): %w", e.info.ID, e.info.Name, err)
	}
	for _, l := range ls {
		l.CommandInvoked(e.info)
	}
	return nil
}

// Info returns the registered description for id.
func (m *Manager) Info(id ID) (Info, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.commands[id]
	return e.info, ok
}

// Commands lists all registered commands ordered by ID.
func (m *Manager) Commands() []Info {
	m.mu.RLock()
	out := make([]Info, 0, len(m.commands))
	for _, e := range m.commands {
		out = append(out, e.info)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddListener subscribes l. Adding the same listener twice keeps a
// single subscription.
func (m *Manager) AddListener(l Listener) {
	if l == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.listeners {
		if existing == l {
			return
		}
	}
	m.listeners = append(m.listeners, l)
}

// RemoveListener unsubscribes l. Unknown listeners are a no-op.
func (m *Manager) RemoveListener(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.listeners {
		if existing == l {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			return
		}
	}
}

// Close empties the registry and rejects further invokes. Components
// holding a binding observe the closure through Closed or ErrClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.commands = make(map[ID]entry)
	ls := m.snapshotLocked()
	m.mu.Unlock()

	for _, l := range ls {
		l.CommandListChanged()
	}
}

// Closed reports whether Close has been called.
func (m *Manager) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

func (m *Manager) snapshotLocked() []Listener {
	ls := make([]Listener, len(m.listeners))
	copy(ls, m.listeners)
	return ls
}
