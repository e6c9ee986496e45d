package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterCMakeArgs(t *testing.T) {
	tests := []struct {
		name   string
		extra  string
		skip   []string
		expect []string
	}{
		{"empty", "", DefaultSkipPrefixes, []string{}},
		{"whitespace only", "   ", DefaultSkipPrefixes, []string{}},
		{"keeps unrelated", "-DFOO=1 -DBAR=2", DefaultSkipPrefixes, []string{"-DFOO=1", "-DBAR=2"}},
		{"drops skip flag", "-DFOO=1 -DTINYUF2_PLATFORMIO_SKIP=1 -DBAR=2", DefaultSkipPrefixes, []string{"-DFOO=1", "-DBAR=2"}},
		{"drops skip prefix variants", "-DTINYUF2_PLATFORMIO_SKIP_BUILD=ON", DefaultSkipPrefixes, []string{}},
		{"empty prefix ignored", "-DFOO=1", []string{""}, []string{"-DFOO=1"}},
		{"no prefixes", "-DTINYUF2_PLATFORMIO_SKIP=1", nil, []string{"-DTINYUF2_PLATFORMIO_SKIP=1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCMakeArgs(tt.extra, tt.skip)
			assert.ElementsMatch(t, tt.expect, got)
			assert.Len(t, got, len(tt.expect))
		})
	}
}

func TestExtraCMakeArgs(t *testing.T) {
	t.Run("board defines only", func(t *testing.T) {
		got := ExtraCMakeArgs("", DefaultSkipPrefixes, "lolin_s2_mini")
		assert.Equal(t, "-DBOARD=lolin_s2_mini -DIDF_BOARD=lolin_s2_mini", got)
	})

	t.Run("filtered args precede board defines", func(t *testing.T) {
		got := ExtraCMakeArgs("-DTINYUF2_PLATFORMIO_SKIP=1 -DLOG=2", DefaultSkipPrefixes, "b")
		assert.Equal(t, "-DLOG=2 -DBOARD=b -DIDF_BOARD=b", got)
	})

	t.Run("conflicting board defines dropped", func(t *testing.T) {
		got := ExtraCMakeArgs("-DBOARD=other -DIDF_BOARD=other -DLOG=2", nil, "b")
		assert.Equal(t, "-DLOG=2 -DBOARD=b -DIDF_BOARD=b", got)
	})

	t.Run("caller prefixes not mutated", func(t *testing.T) {
		skip := []string{"-DX"}
		_ = ExtraCMakeArgs("-DX=1", skip, "b")
		assert.Equal(t, []string{"-DX"}, skip)
	})
}
