package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()
	color.NoColor = true

	for _, v := range []string{"0.1.0", "1.2.3-rc.1+build.123", "2.0.0-alpha", "dev", "1.2"} {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() without colour = %q, want %q", got, v)
		}
	}
}
