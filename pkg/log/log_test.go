package log

import (
	"bytes"
	"context"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	t.Cleanup(SetupTestLogger)
	return &buf
}

func TestConfigure_JSON(t *testing.T) {
	Configure("warn", FormatJSON)
	buf := captureOutput(t)

	L.Info("não aparece")
	L.WithField("account_id", "act_1").Warn("aviso")

	var entry map[string]any
	require.NoError(t, jsoniter.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "aviso", entry["message"])
	assert.Equal(t, "act_1", entry["account_id"])
	assert.Equal(t, "warning", entry["level"])
}

func TestConfigure_InvalidLevel(t *testing.T) {
	Configure("barulhento", "qualquer")
	t.Cleanup(SetupTestLogger)

	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	_, isText := logrus.StandardLogger().Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}

func TestForContext(t *testing.T) {
	Configure("debug", FormatJSON)
	buf := captureOutput(t)

	ctx, correlationID := WithCorrelationID(context.Background())
	ctx = WithViewID(ctx, "view-1")
	ForContext(ctx).Info("carga")

	var entry map[string]any
	require.NoError(t, jsoniter.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, correlationID, entry["correlation_id"])
	assert.Equal(t, "view-1", entry["view_id"])
	assert.Equal(t, correlationID, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}
