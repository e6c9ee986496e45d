package domain

import (
	"strings"

	"github.com/samber/lo"
)

// DefaultSkipPrefixes lists IDF_EXTRA_CMAKE_ARGS tokens dropped before invoking idf.py.
// These are flags the PlatformIO side uses to disable its own build and must not
// reach CMake.
var DefaultSkipPrefixes = []string{"-DTINYUF2_PLATFORMIO_SKIP"}

// BoardDefines returns the CMake definitions that select the board.
func BoardDefines(board string) []string {
	return []string{"-DBOARD=" + board, "-DIDF_BOARD=" + board}
}

// FilterCMakeArgs splits a whitespace-separated argument string and drops
// tokens starting with any of skipPrefixes.
func FilterCMakeArgs(extra string, skipPrefixes []string) []string {
	return lo.Reject(strings.Fields(extra), func(token string, _ int) bool {
		return lo.SomeBy(skipPrefixes, func(p string) bool {
			return p != "" && strings.HasPrefix(token, p)
		})
	})
}

// boardDefinePrefixes are caller definitions that would override the selected board.
var boardDefinePrefixes = []string{"-DBOARD=", "-DIDF_BOARD="}

// ExtraCMakeArgs returns the IDF_EXTRA_CMAKE_ARGS value for a board:
// the filtered caller arguments followed by the board definitions.
// Caller-supplied board definitions are always dropped.
func ExtraCMakeArgs(extra string, skipPrefixes []string, board string) string {
	prefixes := append(append([]string{}, skipPrefixes...), boardDefinePrefixes...)
	args := append(FilterCMakeArgs(extra, prefixes), BoardDefines(board)...)
	return strings.Join(args, " ")
}
