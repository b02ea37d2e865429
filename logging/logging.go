// Package logging builds the structured logger of the pay tool.
package logging

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/etnz/payments"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a console logger writing to w at the given level.
func New(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = "" // replays are short lived, timestamps are noise.
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

// Rejection logs a rejected or malformed record at warn level. tx is nil for
// malformed records.
func Rejection(logger *zap.Logger, tx payments.Transaction, err error) {
	fields := []zap.Field{
		zap.String("kind", payments.ErrorKind(err)),
		zap.Error(err),
	}
	if tx != nil {
		fields = append(fields,
			zap.String("type", string(tx.What())),
			zap.Uint16("client", uint16(tx.Client())),
			zap.Uint32("tx", uint32(tx.ID())),
		)
	}
	var perr *payments.ParseError
	if errors.As(err, &perr) {
		fields = append(fields, zap.Int("line", perr.Line))
	}
	logger.Warn("transaction rejected", fields...)
}

// Summary logs the outcome of a replay at info level.
func Summary(logger *zap.Logger, report payments.Report, accounts int) {
	fields := []zap.Field{
		zap.Int("applied", report.Applied),
		zap.Int("rejected", report.Rejected),
		zap.Int("malformed", report.Malformed),
		zap.Int("accounts", accounts),
	}
	for _, kind := range slices.Sorted(maps.Keys(report.Rejections)) {
		fields = append(fields, zap.Int("rejected_"+kind, report.Rejections[kind]))
	}
	logger.Info("replay done", fields...)
}
