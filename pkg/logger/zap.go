package logger

import (
	"context"

	"github.com/Gunvolt24/pricecache/pkg/ctxmeta"
	"go.uber.org/zap"
)

type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	loggerWrap := NewFromZap(logger, isProd)
	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

// NewFromZap — обёртка над готовым *zap.Logger (например, zaptest/observer в тестах).
func NewFromZap(logger *zap.Logger, isProd bool) *ZapLogger {
	return &ZapLogger{
		base:   logger,
		sugar:  logger.Sugar(),
		isProd: isProd,
	}
}

func (z *ZapLogger) Debugf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Debugf(format, args...)
}
func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.with(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.with(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }

// with — добавляет request_id / price_key / trace_id из контекста, если они есть.
func (z *ZapLogger) with(ctx context.Context) *zap.SugaredLogger {
	var fields []any
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		fields = append(fields, "request_id", rid)
	}
	if key, ok := ctxmeta.PriceKeyFromContext(ctx); ok {
		fields = append(fields, "price_key", key)
	}
	if tr, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		fields = append(fields, "trace_id", tr)
	}
	if len(fields) == 0 {
		return z.sugar
	}
	return z.sugar.With(fields...)
}
