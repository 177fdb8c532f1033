// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/theme.go
// Summary: Color palette singleton with config overrides and terminal seeding.

package theme

import (
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelkit/config"
)

// HexColor is a color in "#rrggbb" form.
type HexColor string

// ToTcell converts the hex string to a tcell color. Malformed values
// yield tcell.ColorDefault.
func (h HexColor) ToTcell() tcell.Color {
	s := strings.TrimPrefix(string(h), "#")
	if len(s) != 6 {
		return tcell.ColorDefault
	}
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return tcell.ColorDefault
	}
	return tcell.NewHexColor(int32(v))
}

// ResolveColorName maps a color name like "silver" to a tcell color.
func ResolveColorName(name string) tcell.Color {
	if c, ok := tcell.ColorNames[strings.ToLower(name)]; ok {
		return c
	}
	return tcell.ColorDefault
}

// Manager resolves palette colors by section and key. Entries loaded
// from the system config's "theme" section, or set at runtime, win over
// the built-in defaults.
type Manager struct {
	mu        sync.RWMutex
	defaults  map[string]tcell.Color
	overrides map[string]tcell.Color
}

var (
	once sync.Once
	mgr  *Manager
)

// Get returns the process-wide theme manager, loading config overrides
// on first use.
func Get() *Manager {
	once.Do(func() {
		mgr = &Manager{
			defaults:  defaultPalette(),
			overrides: map[string]tcell.Color{},
		}
		mgr.loadConfig()
	})
	return mgr
}

// GetColor returns the palette entry for section/key, or fallback when
// the palette has no entry.
func (m *Manager) GetColor(section, key string, fallback tcell.Color) tcell.Color {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id := paletteKey(section, key)
	if c, ok := m.overrides[id]; ok {
		return c
	}
	if c, ok := m.defaults[id]; ok {
		return c
	}
	return fallback
}

// SetColor overrides a palette entry for the rest of the process.
func (m *Manager) SetColor(section, key string, c tcell.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[paletteKey(section, key)] = c
}

// SeedTerminal installs the terminal's reported default colors as the
// base surface palette. Explicit config entries still win.
func (m *Manager) SeedTerminal(fg, bg tcell.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults[paletteKey("ui", "surface_fg")] = fg
	m.defaults[paletteKey("ui", "surface_bg")] = bg
	m.defaults[paletteKey("ui", "text_fg")] = fg
	m.defaults[paletteKey("button", "face_fg")] = fg
	m.defaults[paletteKey("statusbar", "fg")] = fg
	m.defaults[paletteKey("statusbar", "bg")] = bg
}

func (m *Manager) loadConfig() {
	sec := config.System().Section("theme")
	for k, v := range sec {
		s, ok := v.(string)
		if !ok {
			continue
		}
		c := ParseColor(s)
		if c == tcell.ColorDefault {
			log.Printf("theme: unrecognized color %q for %q", s, k)
			continue
		}
		m.overrides[k] = c
	}
}

// ParseColor accepts "#rrggbb" hex or a named color.
func ParseColor(s string) tcell.Color {
	if strings.HasPrefix(s, "#") {
		return HexColor(s).ToTcell()
	}
	return ResolveColorName(s)
}

func paletteKey(section, key string) string {
	if section == "" {
		return key
	}
	return section + "." + key
}

func defaultPalette() map[string]tcell.Color {
	return map[string]tcell.Color{
		"ui.surface_bg":        tcell.ColorBlack,
		"ui.surface_fg":        tcell.ColorWhite,
		"ui.text_fg":           tcell.ColorWhite,
		"ui.focus_text_fg":     tcell.ColorSilver,
		"ui.focus_surface_bg":  tcell.NewHexColor(0x303030),
		"button.face_bg":       tcell.NewHexColor(0x3a3a3a),
		"button.face_fg":       tcell.ColorWhite,
		"button.over_bg":       tcell.NewHexColor(0x4e4e4e),
		"button.down_bg":       tcell.NewHexColor(0x1c1c1c),
		"button.down_fg":       tcell.ColorYellow,
		"button.toggle_on_fg":  tcell.ColorGreen,
		"button.disabled_fg":   tcell.NewHexColor(0x6c6c6c),
		"statusbar.bg":         tcell.NewHexColor(0x262626),
		"statusbar.fg":         tcell.ColorSilver,
		"statusbar.success_fg": tcell.ColorGreen,
		"statusbar.warning_fg": tcell.ColorYellow,
		"statusbar.error_fg":   tcell.ColorRed,
	}
}
