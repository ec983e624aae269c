package obslog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadirahdurr/route-planner/internal/obslog"
)

func TestNewJSONHandlerEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := obslog.New(&buf, "info", false)
	require.NoError(t, err)

	logger.Info("mission started", "route_id", "route-1")
	assert.Contains(t, buf.String(), `"msg":"mission started"`)
	assert.Contains(t, buf.String(), `"route_id":"route-1"`)
}

func TestNewTextHandlerEmitsKeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := obslog.New(&buf, "debug", true)
	require.NoError(t, err)

	logger.Debug("candidate generated")
	assert.True(t, strings.Contains(buf.String(), "candidate generated"))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := obslog.New(&bytes.Buffer{}, "verbose", false)
	assert.Error(t, err)
}
