package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// A bytes.Buffer is not a terminal, so output carries no escape codes.

func TestReporter_Field(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Field("PYTHONEXE", "/usr/bin/python3")
	r.Field("command", "python3 idf.py -B build/esp32s3 build")

	assert.Equal(t,
		"[uf2idf] PYTHONEXE: /usr/bin/python3\n[uf2idf] command: python3 idf.py -B build/esp32s3 build\n",
		buf.String())
}

func TestReporter_Info(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Info("Build ESP32-S3 bootloader")

	assert.Equal(t, "[uf2idf] Build ESP32-S3 bootloader\n", buf.String())
}

func TestReporter_EmptyValue(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf).Field("ESPTOOL_PORT", "")

	assert.Equal(t, "[uf2idf] ESPTOOL_PORT: \n", buf.String())
}
