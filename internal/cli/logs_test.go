package cli

import (
	"testing"

	"github.com/runoshun/uf2idf/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLogsCommand_NoLog(t *testing.T) {
	useMockContainer(t, "lolin_s2_mini")

	_, _, err := execute("logs")

	assert.ErrorIs(t, err, domain.ErrNoLog)
}

func TestLogsCommand_NoBoard(t *testing.T) {
	useMockContainer(t, "")

	_, _, err := execute("logs", "--targets")

	assert.ErrorIs(t, err, domain.ErrBoardRequired)
}

func TestLogsCommand_RejectsArgs(t *testing.T) {
	useMockContainer(t, "lolin_s2_mini")

	_, _, err := execute("logs", "extra")

	assert.Error(t, err)
}
