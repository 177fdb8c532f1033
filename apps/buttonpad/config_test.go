package buttonpad

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePad(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pad.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write pad file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	content := `
title: "Mixer"

commands:
  - id: 1
    name: "Save"
    description: "Write the session"
  - id: 2
    name: "Reload"

rows:
  - buttons:
      - id: save
        label: "Save"
        command: "Save"
        shortcut: "ctrl+s"
        tooltip: "Save the session"
      - id: flash
  - buttons:
      - id: low
        label: "Low"
        kind: radio
        group: 3
        connected: [right]
      - id: high
        label: "High"
        kind: radio
        group: 3
        connected: [left]
  - buttons:
      - id: plus
        label: "+"
        width: 5
        trigger_on_down: true
        repeat: { initial_ms: 400, repeat_ms: 120, min_ms: 30 }
`

	cfg, err := Load(writePad(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Title != "Mixer" {
		t.Errorf("Title = %q, want Mixer", cfg.Title)
	}
	if len(cfg.Commands) != 2 {
		t.Fatalf("len(Commands) = %d, want 2", len(cfg.Commands))
	}
	if cfg.Commands[0].ID != 1 || cfg.Commands[0].Name != "Save" {
		t.Errorf("Commands[0] = {%d, %s}", cfg.Commands[0].ID, cfg.Commands[0].Name)
	}
	if cfg.Commands[0].Description != "Write the session" {
		t.Errorf("Description = %q", cfg.Commands[0].Description)
	}
	if len(cfg.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(cfg.Rows))
	}

	save := cfg.Rows[0].Buttons[0]
	if save.Command != "Save" || save.Shortcut != "ctrl+s" || save.Tooltip != "Save the session" {
		t.Errorf("save button = %+v", save)
	}

	low := cfg.Rows[1].Buttons[0]
	if low.Kind != "radio" || low.Group != 3 {
		t.Errorf("low = kind %q group %d", low.Kind, low.Group)
	}
	if len(low.Connected) != 1 || low.Connected[0] != "right" {
		t.Errorf("low.Connected = %v", low.Connected)
	}

	plus := cfg.Rows[2].Buttons[0]
	if plus.Width != 5 || !plus.TriggerOnDown {
		t.Errorf("plus = width %d triggerOnDown %v", plus.Width, plus.TriggerOnDown)
	}
	if plus.Repeat == nil || plus.Repeat.InitialMs != 400 || plus.Repeat.RepeatMs != 120 || plus.Repeat.MinMs != 30 {
		t.Errorf("plus.Repeat = %+v", plus.Repeat)
	}
}

func TestLoadDefaults(t *testing.T) {
	content := `
rows:
  - buttons:
      - id: flash
      - id: hold
        repeat: { initial_ms: 250 }
`

	cfg, err := Load(writePad(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Title != "Button Pad" {
		t.Errorf("Title = %q, want default Button Pad", cfg.Title)
	}

	flash := cfg.Rows[0].Buttons[0]
	if flash.Kind != "momentary" {
		t.Errorf("Kind = %q, want default momentary", flash.Kind)
	}
	if flash.Label != "flash" {
		t.Errorf("Label = %q, want button id", flash.Label)
	}

	hold := cfg.Rows[0].Buttons[1]
	if hold.Repeat.RepeatMs != 250 {
		t.Errorf("RepeatMs = %d, want initial_ms 250", hold.Repeat.RepeatMs)
	}
	if hold.Repeat.MinMs != 0 {
		t.Errorf("MinMs = %d, want 0", hold.Repeat.MinMs)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no rows",
			content: `title: "Empty"`,
			wantErr: "at least one row is required",
		},
		{
			name: "row without buttons",
			content: `
rows:
  - buttons: []
`,
			wantErr: "has no buttons",
		},
		{
			name: "button without id",
			content: `
rows:
  - buttons:
      - label: "Anonymous"
`,
			wantErr: "id is required",
		},
		{
			name: "duplicate button id",
			content: `
rows:
  - buttons:
      - id: twin
      - id: twin
`,
			wantErr: "duplicate button id",
		},
		{
			name: "unknown kind",
			content: `
rows:
  - buttons:
      - id: odd
        kind: springy
`,
			wantErr: "unknown kind",
		},
		{
			name: "radio without group",
			content: `
rows:
  - buttons:
      - id: lone
        kind: radio
`,
			wantErr: "radio buttons need a group",
		},
		{
			name: "unknown command",
			content: `
rows:
  - buttons:
      - id: save
        command: "Save"
`,
			wantErr: "unknown command",
		},
		{
			name: "bad shortcut",
			content: `
rows:
  - buttons:
      - id: save
        shortcut: "ctrl+foobar"
`,
			wantErr: "unknown key",
		},
		{
			name: "non-positive command id",
			content: `
commands:
  - id: 0
    name: "Save"
rows:
  - buttons:
      - id: save
`,
			wantErr: "id must be positive",
		},
		{
			name: "command without name",
			content: `
commands:
  - id: 1
rows:
  - buttons:
      - id: save
`,
			wantErr: "name is required",
		},
		{
			name: "duplicate command id",
			content: `
commands:
  - id: 1
    name: "Save"
  - id: 1
    name: "Reload"
rows:
  - buttons:
      - id: save
`,
			wantErr: "duplicate command id",
		},
		{
			name: "duplicate command name",
			content: `
commands:
  - id: 1
    name: "Save"
  - id: 2
    name: "Save"
rows:
  - buttons:
      - id: save
`,
			wantErr: "duplicate command name",
		},
		{
			name: "repeat without initial",
			content: `
rows:
  - buttons:
      - id: hold
        repeat: { repeat_ms: 100 }
`,
			wantErr: "initial_ms must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writePad(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/pad.yaml")
	if err == nil {
		t.Error("Load() expected error for nonexistent file, got nil")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	_, err := Load(writePad(t, "rows: ["))
	if err == nil || !strings.Contains(err.Error(), "failed to parse pad file") {
		t.Errorf("Load() error = %v", err)
	}
}

func TestCreateDefaultPad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pad.yaml")

	if err := CreateDefaultPad(path); err != nil {
		t.Fatalf("CreateDefaultPad() error = %v", err)
	}
	if !Exists(path) {
		t.Fatal("pad file was not created")
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("starter pad does not load: %v", err)
	}
	if len(cfg.Commands) != 2 {
		t.Errorf("len(Commands) = %d, want 2", len(cfg.Commands))
	}
	if len(cfg.Rows) == 0 {
		t.Fatal("starter pad has no rows")
	}

	kinds := make(map[string]bool)
	for _, row := range cfg.Rows {
		for _, btn := range row.Buttons {
			kinds[btn.Kind] = true
		}
	}
	for _, want := range []string{"momentary", "toggle", "radio", "checkbox"} {
		if !kinds[want] {
			t.Errorf("starter pad has no %s button", want)
		}
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()

	if Exists(filepath.Join(dir, "nonexistent.yaml")) {
		t.Error("Exists() = true for non-existent file")
	}

	path := filepath.Join(dir, "pad.yaml")
	os.WriteFile(path, []byte("rows: []"), 0644)
	if !Exists(path) {
		t.Error("Exists() = false for existing file")
	}
}
