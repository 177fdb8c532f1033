// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/termcolors.go
// Summary: Queries the terminal for its default foreground and background.

package theme

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

// QueryTerminalColors asks the controlling terminal for its default
// foreground and background via OSC 10 and 11. Terminals that do not
// answer within the deadline get the White/Black fallback.
func QueryTerminalColors() (fg, bg tcell.Color, err error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return tcell.ColorWhite, tcell.ColorBlack, fmt.Errorf("open /dev/tty: %w", err)
	}
	defer tty.Close()

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return tcell.ColorWhite, tcell.ColorBlack, fmt.Errorf("MakeRaw: %w", err)
	}
	defer term.Restore(int(tty.Fd()), oldState)

	fg, err = queryOSCColor(tty, 10)
	if err != nil {
		fg = tcell.ColorWhite
	}
	bg, err = queryOSCColor(tty, 11)
	if err != nil {
		bg = tcell.ColorBlack
	}
	return fg, bg, nil
}

func queryOSCColor(tty *os.File, code int) (tcell.Color, error) {
	seq := fmt.Sprintf("\x1b]%d;?\a", code)
	if _, err := tty.WriteString(seq); err != nil {
		return tcell.ColorDefault, err
	}
	resp := make([]byte, 0, 64)
	buf := make([]byte, 1)
	deadline := time.Now().Add(500 * time.Millisecond)
	if err := tty.SetReadDeadline(deadline); err != nil {
		return tcell.ColorDefault, err
	}
	for {
		n, err := tty.Read(buf)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("read reply: %w", err)
		}
		resp = append(resp, buf[:n]...)
		if buf[0] == '\a' {
			break
		}
	}
	pattern := fmt.Sprintf(`\x1b\]%d;rgb:([0-9A-Fa-f]{4})/([0-9A-Fa-f]{4})/([0-9A-Fa-f]{4})`, code)
	m := regexp.MustCompile(pattern).FindStringSubmatch(string(resp))
	if len(m) != 4 {
		return tcell.ColorDefault, fmt.Errorf("unexpected reply: %q", resp)
	}
	// Replies carry 16-bit channels; tcell wants 8-bit.
	channel := func(s string) int32 {
		v, _ := strconv.ParseInt(s, 16, 32)
		return int32(v >> 8)
	}
	return tcell.NewRGBColor(channel(m[1]), channel(m[2]), channel(m[3])), nil
}
