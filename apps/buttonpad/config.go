// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/buttonpad/config.go
// Summary: YAML pad definition: rows of buttons, commands, repeat settings.

package buttonpad

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/framegrace/texelkit/keys"
)

// PadConfig is the root of a pad definition file.
type PadConfig struct {
	Title    string       `yaml:"title,omitempty"`
	Commands []PadCommand `yaml:"commands,omitempty"`
	Rows     []PadRow     `yaml:"rows"`
}

// PadCommand declares an application command buttons can bind to.
type PadCommand struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// PadRow is one horizontal strip of buttons.
type PadRow struct {
	Buttons []PadButton `yaml:"buttons"`
}

// PadButton declares a single button. Kind selects the behavior:
// "momentary" (default), "toggle", "radio" (requires group), or
// "checkbox".
type PadButton struct {
	ID            string        `yaml:"id"`
	Label         string        `yaml:"label"`
	Kind          string        `yaml:"kind,omitempty"`
	Group         int           `yaml:"group,omitempty"`
	Command       string        `yaml:"command,omitempty"`
	Shortcut      string        `yaml:"shortcut,omitempty"`
	Tooltip       string        `yaml:"tooltip,omitempty"`
	Width         int           `yaml:"width,omitempty"`
	TriggerOnDown bool          `yaml:"trigger_on_down,omitempty"`
	Connected     []string      `yaml:"connected,omitempty"`
	Repeat        *RepeatConfig `yaml:"repeat,omitempty"`
}

// RepeatConfig enables auto-repeat while a button is held.
type RepeatConfig struct {
	InitialMs int `yaml:"initial_ms"`
	RepeatMs  int `yaml:"repeat_ms"`
	MinMs     int `yaml:"min_ms,omitempty"`
}

// Load reads and validates a pad definition.
func Load(path string) (*PadConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pad file: %w", err)
	}

	var cfg PadConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pad file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("pad validation failed: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (c *PadConfig) validate() error {
	if len(c.Rows) == 0 {
		return fmt.Errorf("at least one row is required")
	}

	commands := make(map[string]bool)
	cmdIDs := make(map[int]bool)
	for i, cmd := range c.Commands {
		if cmd.ID <= 0 {
			return fmt.Errorf("command %d: id must be positive", i)
		}
		if cmd.Name == "" {
			return fmt.Errorf("command %d: name is required", i)
		}
		if cmdIDs[cmd.ID] {
			return fmt.Errorf("duplicate command id: %d", cmd.ID)
		}
		if commands[cmd.Name] {
			return fmt.Errorf("duplicate command name: %q", cmd.Name)
		}
		cmdIDs[cmd.ID] = true
		commands[cmd.Name] = true
	}

	seen := make(map[string]bool)
	for ri, row := range c.Rows {
		if len(row.Buttons) == 0 {
			return fmt.Errorf("row %d has no buttons", ri)
		}
		for bi, btn := range row.Buttons {
			where := fmt.Sprintf("row %d button %d", ri, bi)
			if btn.ID == "" {
				return fmt.Errorf("%s: id is required", where)
			}
			if seen[btn.ID] {
				return fmt.Errorf("duplicate button id: %q", btn.ID)
			}
			seen[btn.ID] = true

			switch btn.Kind {
			case "", "momentary", "toggle", "radio", "checkbox":
			default:
				return fmt.Errorf("%s: unknown kind %q", where, btn.Kind)
			}
			if btn.Kind == "radio" && btn.Group == 0 {
				return fmt.Errorf("%s: radio buttons need a group", where)
			}
			if btn.Command != "" && !commands[btn.Command] {
				return fmt.Errorf("%s: unknown command %q", where, btn.Command)
			}
			if btn.Shortcut != "" {
				if _, err := keys.Parse(btn.Shortcut); err != nil {
					return fmt.Errorf("%s: %w", where, err)
				}
			}
			if btn.Repeat != nil && btn.Repeat.InitialMs <= 0 {
				return fmt.Errorf("%s: repeat.initial_ms must be positive", where)
			}
		}
	}

	return nil
}

func (c *PadConfig) applyDefaults() {
	if c.Title == "" {
		c.Title = "Button Pad"
	}
	for ri := range c.Rows {
		for bi := range c.Rows[ri].Buttons {
			btn := &c.Rows[ri].Buttons[bi]
			if btn.Kind == "" {
				btn.Kind = "momentary"
			}
			if btn.Label == "" {
				btn.Label = btn.ID
			}
			if btn.Repeat != nil && btn.Repeat.RepeatMs == 0 {
				btn.Repeat.RepeatMs = btn.Repeat.InitialMs
			}
		}
	}
}

// CreateDefaultPad writes a starter pad definition so a fresh install
// has something to show.
func CreateDefaultPad(path string) error {
	content := `# Button pad definition

title: "Texelkit Pad"

commands:
  - id: 1
    name: "Save"
    description: "Write the session to disk"
  - id: 2
    name: "Reload"
    description: "Reload the pad definition"

rows:
  - buttons:
      - id: save
        label: "Save"
        command: "Save"
        shortcut: "ctrl+s"
      - id: reload
        label: "Reload"
        command: "Reload"
        shortcut: "f5"
      - id: flash
        label: "Flash"
        tooltip: "Momentary button"

  - buttons:
      - id: power
        label: "Power"
        kind: toggle
        tooltip: "Sticks until clicked again"
      - id: mute
        label: "Mute"
        kind: checkbox

  - buttons:
      - id: low
        label: "Low"
        kind: radio
        group: 1
        connected: [right]
      - id: mid
        label: "Mid"
        kind: radio
        group: 1
        connected: [left, right]
      - id: high
        label: "High"
        kind: radio
        group: 1
        connected: [left]

  - buttons:
      - id: minus
        label: "-"
        width: 5
        trigger_on_down: true
        repeat: { initial_ms: 400, repeat_ms: 120, min_ms: 30 }
      - id: plus
        label: "+"
        width: 5
        trigger_on_down: true
        repeat: { initial_ms: 400, repeat_ms: 120, min_ms: 30 }
`

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create pad file: %w", err)
	}

	return nil
}

// Exists checks if a pad file exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
