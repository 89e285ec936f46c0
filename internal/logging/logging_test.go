package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "", "")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	logger.WithField(FieldItem, "Webhosting").Info("scheduled")
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "msg=scheduled")
	assert.Contains(t, out, "item=Webhosting")
	assert.NotContains(t, out, "hidden")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug", "JSON")
	require.NoError(t, err)

	logger.WithField(FieldRows, 2).Debug("generated")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "generated", line["msg"])
	assert.Equal(t, "debug", line["level"])
	assert.InDelta(t, 2, line[FieldRows], 0)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "text")
	assert.ErrorContains(t, err, "parsing log level")

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.ErrorContains(t, err, "unknown log format")
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Info("nothing") })
}
