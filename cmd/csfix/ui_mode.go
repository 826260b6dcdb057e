package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// switchMode is the auto|on|off value shared by --color and --ui.
type switchMode uint8

const (
	modeAuto switchMode = iota
	modeOn
	modeOff
)

var switchModeNames = [...]string{modeAuto: "auto", modeOn: "on", modeOff: "off"}

func (m switchMode) String() string { return switchModeNames[m] }

// parseSwitchMode reads the value of the named flag. Empty means auto.
func parseSwitchMode(flag, value string) (switchMode, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return modeAuto, nil
	}
	if i := slices.Index(switchModeNames[:], v); i >= 0 {
		return switchMode(i), nil
	}
	return modeAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// resolve settles auto with what was detected; on and off always win.
func (m switchMode) resolve(detected bool) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	}
	return detected
}

// liveProgress decides whether fix draws the progress view. In auto mode
// CI runs and dumb terminals get plain output.
func liveProgress(m switchMode, getenv func(string) string) bool {
	if m != modeAuto {
		return m.resolve(false)
	}
	if getenv("CI") != "" || getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal(os.Stdout) && isTerminal(os.Stderr)
}
