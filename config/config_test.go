// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/framegrace/texelkit/config"
)

// useTempConfigHome points the config store at a fresh directory and
// reloads, so tests never touch the real user configuration.
func useTempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := config.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return dir
}

func TestTypedGetters(t *testing.T) {
	cfg := config.Config{
		"ui": map[string]interface{}{
			"name":   "pad",
			"count":  float64(3),
			"ratio":  1.5,
			"flag":   true,
			"numStr": "7",
			"boolSt": "true",
			"jsonN":  json.Number("42"),
		},
	}

	if got := cfg.GetString("ui", "name", "x"); got != "pad" {
		t.Errorf("GetString = %q", got)
	}
	if got := cfg.GetString("ui", "missing", "fallback"); got != "fallback" {
		t.Errorf("GetString missing = %q", got)
	}
	if got := cfg.GetString("ui", "count", "fallback"); got != "fallback" {
		t.Errorf("GetString wrong type = %q", got)
	}
	if got := cfg.GetInt("ui", "count", 0); got != 3 {
		t.Errorf("GetInt float64 = %d", got)
	}
	if got := cfg.GetInt("ui", "numStr", 0); got != 7 {
		t.Errorf("GetInt string = %d", got)
	}
	if got := cfg.GetInt("ui", "jsonN", 0); got != 42 {
		t.Errorf("GetInt json.Number = %d", got)
	}
	if got := cfg.GetInt("nope", "count", 9); got != 9 {
		t.Errorf("GetInt missing section = %d", got)
	}
	if got := cfg.GetFloat("ui", "ratio", 0); got != 1.5 {
		t.Errorf("GetFloat = %v", got)
	}
	if got := cfg.GetBool("ui", "flag", false); !got {
		t.Errorf("GetBool = %v", got)
	}
	if got := cfg.GetBool("ui", "boolSt", false); !got {
		t.Errorf("GetBool string = %v", got)
	}
	if got := cfg.GetBool("ui", "count", false); !got {
		t.Errorf("GetBool nonzero number = %v", got)
	}
}

func TestSectionAndTopLevel(t *testing.T) {
	cfg := config.Config{
		"activeTheme": "dark",
		"ui":          map[string]interface{}{"k": "v"},
	}
	if got := cfg.GetString("", "activeTheme", ""); got != "dark" {
		t.Errorf("top-level GetString = %q", got)
	}
	if cfg.Section("ui") == nil {
		t.Error("Section(ui) = nil")
	}
	if cfg.Section("missing") != nil {
		t.Error("Section(missing) != nil")
	}
}

func TestRegisterDefaultsDoesNotOverwrite(t *testing.T) {
	cfg := config.Config{
		"pad": map[string]interface{}{"rows": 5},
	}
	cfg.RegisterDefaults("pad", config.Section{"rows": 3, "cols": 4})
	if got := cfg.GetInt("pad", "rows", 0); got != 5 {
		t.Errorf("user value overwritten: rows = %d", got)
	}
	if got := cfg.GetInt("pad", "cols", 0); got != 4 {
		t.Errorf("default not filled: cols = %d", got)
	}

	cfg.RegisterDefaults("fresh", config.Section{"a": 1})
	if got := cfg.GetInt("fresh", "a", 0); got != 1 {
		t.Errorf("fresh section default = %d", got)
	}
}

func TestSystemDefaultsWithoutConfigFile(t *testing.T) {
	useTempConfigHome(t)

	sys := config.System()
	if got := sys.GetInt("button", "flash_ms", 0); got != 150 {
		t.Errorf("flash_ms default = %d", got)
	}
	if !sys.GetBool("input", "query_terminal_colors", false) {
		t.Error("query_terminal_colors default not set")
	}
	if got := sys.GetString("", "activeTheme", ""); got != "default" {
		t.Errorf("activeTheme default = %q", got)
	}
	if err := config.Err(); err != nil {
		t.Errorf("Err with missing file = %v, want nil", err)
	}
}

func TestSystemSaveAndReloadRoundTrip(t *testing.T) {
	dir := useTempConfigHome(t)

	sys := config.System()
	sys.RegisterDefaults("demo", config.Section{"greeting": "hello"})
	if err := config.SaveSystem(); err != nil {
		t.Fatalf("SaveSystem: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "texelkit", "texelkit.json")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	// In-memory edits vanish on reload; saved values survive.
	sys.Section("demo")["greeting"] = "changed"
	if err := config.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := config.System().GetString("demo", "greeting", ""); got != "hello" {
		t.Errorf("reloaded greeting = %q, want the saved value", got)
	}
}

func TestAppConfigDefaultsAndRoundTrip(t *testing.T) {
	useTempConfigHome(t)

	app := config.App("buttonpad")
	if got := app.GetString("buttonpad", "pad_file", ""); got != "pad.yaml" {
		t.Errorf("pad_file default = %q", got)
	}
	if !app.GetBool("buttonpad", "watch_pad", false) {
		t.Error("watch_pad default not set")
	}
	if !app.GetBool("buttonpad", "persist_state", false) {
		t.Error("persist_state default not set")
	}

	app.Section("buttonpad")["pad_file"] = "other.yaml"
	if err := config.SaveApp("buttonpad"); err != nil {
		t.Fatalf("SaveApp: %v", err)
	}
	if err := config.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := config.App("buttonpad").GetString("buttonpad", "pad_file", ""); got != "other.yaml" {
		t.Errorf("reloaded pad_file = %q", got)
	}
}

func TestCorruptSystemConfigDegradesToDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	root := filepath.Join(dir, "texelkit")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "texelkit.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := config.Reload(); err == nil {
		t.Fatal("Reload on corrupt file returned nil error")
	}
	if err := config.Err(); err == nil {
		t.Fatal("Err returned nil for corrupt file")
	}
	// The store still serves defaults.
	if got := config.System().GetInt("button", "flash_ms", 0); got != 150 {
		t.Errorf("flash_ms after corrupt load = %d", got)
	}
}

func TestAppDirAndStateDirCreate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	appDir, err := config.AppDir("buttonpad")
	if err != nil {
		t.Fatalf("AppDir: %v", err)
	}
	if fi, err := os.Stat(appDir); err != nil || !fi.IsDir() {
		t.Fatalf("AppDir %q not created: %v", appDir, err)
	}

	stateDir, err := config.StateDir()
	if err != nil {
		t.Fatalf("StateDir: %v", err)
	}
	if fi, err := os.Stat(stateDir); err != nil || !fi.IsDir() {
		t.Fatalf("StateDir %q not created: %v", stateDir, err)
	}

	if _, err := config.AppDir(""); err == nil {
		t.Fatal("AppDir with empty name should fail")
	}
}
