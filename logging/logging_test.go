package logging

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/etnz/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", zap.Int("n", 1))
	require.NoError(t, logger.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), `{"n": 1}`)

	_, err = New("loud", &buf)
	assert.Error(t, err)
}

func TestRejection(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	err := fmt.Errorf("withdrawal 7: %w", payments.ErrInsufficientFunds)
	Rejection(logger, payments.NewWithdrawal(3, 7, payments.A(2)), err)
	Rejection(logger, nil, &payments.ParseError{Line: 9, Err: payments.ErrMissingAmount})

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "transaction rejected", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "insufficient_funds", fields["kind"])
	assert.Equal(t, "withdrawal", fields["type"])
	assert.Equal(t, uint16(3), fields["client"])
	assert.Equal(t, uint32(7), fields["tx"])
	assert.NotContains(t, fields, "line")

	fields = entries[1].ContextMap()
	assert.Equal(t, "missing_amount", fields["kind"])
	assert.Equal(t, int64(9), fields["line"])
	assert.NotContains(t, fields, "client")
}

func TestSummary(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	report := payments.Report{
		Applied:    5,
		Rejected:   2,
		Malformed:  1,
		Rejections: map[string]int{"parse": 1, "insufficient_funds": 2},
	}
	Summary(zap.New(core), report, 3)

	entries := logs.FilterMessage("replay done").All()
	require.Len(t, entries, 1)
	assert.Equal(t, map[string]any{
		"applied":                     int64(5),
		"rejected":                    int64(2),
		"malformed":                   int64(1),
		"accounts":                    int64(3),
		"rejected_insufficient_funds": int64(2),
		"rejected_parse":              int64(1),
	}, entries[0].ContextMap())
}
