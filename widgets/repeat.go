// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/repeat.go
// Summary: Auto-repeat timing configuration and acceleration curve.

package widgets

import "time"

// accelWindow is the hold time over which an accelerating repeat
// interval eases from its base spacing down to the configured floor.
const accelWindow = 4 * time.Second

// repeatConfig holds the auto-repeat timing set by SetRepeatSpeed. A
// non-positive initial delay disables auto-repeat; a positive floor
// enables acceleration.
type repeatConfig struct {
	initial time.Duration
	repeat  time.Duration
	min     time.Duration
}

func (rc repeatConfig) enabled() bool { return rc.initial > 0 }

// nextInterval returns the spacing before the next repeat fire given
// how long the button has been held. With a floor set, the interval
// eases quadratically from the base spacing toward the floor across
// the acceleration window; it never leaves the [floor, base] range and
// never increases as the hold grows.
func (rc repeatConfig) nextInterval(held time.Duration) time.Duration {
	iv := rc.repeat
	if iv < time.Millisecond {
		iv = time.Millisecond
	}
	if rc.min > 0 && rc.min < iv {
		t := float64(held) / float64(accelWindow)
		if t > 1 {
			t = 1
		}
		iv += time.Duration(t * t * float64(rc.min-iv))
		if iv < rc.min {
			iv = rc.min
		}
	}
	return iv
}
