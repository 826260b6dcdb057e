package rule

import (
	"errors"
	"fmt"
	"strings"
)

// Level is a bitmask of coding standards a rule belongs to.
type Level uint8

const (
	LevelPSR0 Level = 1 << iota
	LevelPSR1
	LevelPSR2
	LevelSymfony
	LevelContrib
)

// Named selections. Each standard includes the ones it builds on.
const (
	PSR0    = LevelPSR0
	PSR1    = PSR0 | LevelPSR1
	PSR2    = PSR1 | LevelPSR2
	All     = PSR2 | LevelSymfony
	Contrib = LevelContrib
)

var ErrUnknownLevel = errors.New("unknown level")

var levelNames = []struct {
	name  string
	level Level
}{
	{"psr0", PSR0},
	{"psr1", PSR1},
	{"psr2", PSR2},
	{"all", All},
	{"symfony", All},
	{"contrib", Contrib},
}

// Intersects reports whether l and other share a standard.
func (l Level) Intersects(other Level) bool {
	return l&other != 0
}

// String renders the narrowest flag names set in l.
func (l Level) String() string {
	if l == 0 {
		return "none"
	}
	var parts []string
	for _, f := range []struct {
		name string
		bit  Level
	}{
		{"psr0", LevelPSR0},
		{"psr1", LevelPSR1},
		{"psr2", LevelPSR2},
		{"symfony", LevelSymfony},
		{"contrib", LevelContrib},
	} {
		if l&f.bit != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseLevel turns a name or a "name|name" / "name,name" list into a mask.
func ParseLevel(s string) (Level, error) {
	var out Level
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' || r == ' ' }) {
		l, err := lookupLevel(part)
		if err != nil {
			return 0, err
		}
		out |= l
	}
	return out, nil
}

// ParseLevels ORs several level names.
func ParseLevels(names []string) (Level, error) {
	var out Level
	for _, n := range names {
		l, err := ParseLevel(n)
		if err != nil {
			return 0, err
		}
		out |= l
	}
	return out, nil
}

func lookupLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, ln := range levelNames {
		if ln.name == name {
			return ln.level, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownLevel, name)
}
